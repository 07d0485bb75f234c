package rest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophmarket/internal/common"
	"github.com/dmitrijs2005/gophmarket/internal/dbx"
	"github.com/dmitrijs2005/gophmarket/internal/logging"
	"github.com/dmitrijs2005/gophmarket/internal/server/auth"
	"github.com/dmitrijs2005/gophmarket/internal/server/config"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophmarket/internal/server/repositories/repotest"
	"github.com/dmitrijs2005/gophmarket/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		EndpointAddrHTTP:            "127.0.0.1:0",
		SecretKey:                   testSecret,
		AccessTokenValidityDuration: time.Hour,
		PasswordHashCost:            bcrypt.MinCost,
		RequestTimeout:              5 * time.Second,
		ShutdownTimeout:             time.Second,
		CORSAllowedOrigins:          "*",
	}
}

// newSQLiteHandler wires the real services over a fresh in-memory database.
func newSQLiteHandler(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()

	db := repotest.OpenSQLite(t)
	rm, err := repomanager.NewRepositoryManager(dbx.DialectSQLite)
	require.NoError(t, err)

	srv, err := NewHTTPServer(cfg, logging.Nop{}, Deps{
		Users:     services.NewUserService(db, rm, auth.NewMemoryDenylist(), cfg),
		Products:  services.NewProductService(db, rm),
		Favorites: services.NewFavoriteService(db, rm),
		Images:    services.NewImageService(cfg),
		DB:        db,
	})
	require.NoError(t, err)
	return srv.Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID    int64   `json:"id"`
		Email string  `json:"email"`
		Name  *string `json:"name"`
	} `json:"user"`
}

type productResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	CreatedAt   string  `json:"createdAt"`
}

type pageResponse struct {
	Items []productResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Pages int               `json:"pages"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

func register(t *testing.T, h http.Handler, email, password string) authResponse {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/auth/register", "", map[string]any{
		"email": email, "password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[authResponse](t, rec)
}

func createProduct(t *testing.T, h http.Handler, token, title string, price float64) productResponse {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/products", token, map[string]any{
		"title":       title,
		"price":       price,
		"description": "About " + title,
		"image":       "https://picsum.photos/seed/1/400/300",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[productResponse](t, rec)
}

func newRequest(method, path, authorization string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
