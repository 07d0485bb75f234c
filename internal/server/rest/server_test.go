package rest

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gophmarket/internal/logging"
)

func TestServeAndShutdown(t *testing.T) {
	srv, err := NewHTTPServer(testConfig(), logging.Nop{}, Deps{
		Users: stubUsers{}, Products: stubProducts{}, Favorites: stubFavorites{},
	})
	require.NoError(t, err)

	listen, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.serve(ctx, listen) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/", listen.Addr()))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "Marketplace API running", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitOrigins(" a, ,b "))
	assert.Nil(t, splitOrigins(""))
}
