package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophmarket/internal/server/config"
)

func testConfig(t *testing.T) *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.EndpointAddrHTTP = "127.0.0.1:0"
	cfg.DatabaseDSN = "sqlite:" + filepath.Join(t.TempDir(), "market.db")
	cfg.LogLevel = "error"
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func TestNewAppAndRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, err := NewApp(ctx, testConfig(t))
	require.NoError(t, err)
	assert.Nil(t, app.redis)

	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestNewAppBadDSN(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDSN = "mysql://localhost/x"

	_, err := NewApp(context.Background(), cfg)
	assert.Error(t, err)
}
