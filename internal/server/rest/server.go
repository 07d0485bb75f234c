// Package rest exposes the marketplace over HTTP/JSON.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophmarket/internal/logging"
	"github.com/dmitrijs2005/gophmarket/internal/server/auth"
	"github.com/dmitrijs2005/gophmarket/internal/server/config"
	"github.com/dmitrijs2005/gophmarket/internal/server/models"
	"github.com/dmitrijs2005/gophmarket/internal/server/services"
)

// UserService is the authentication surface the handlers need.
type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, in services.LoginInput) (*services.AuthResult, error)
	Verify(ctx context.Context, token string) (*auth.Identity, error)
	Logout(ctx context.Context, id *auth.Identity) error
}

type ProductService interface {
	List(ctx context.Context, q services.ListQuery) (*models.ProductPage, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, in services.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id int64, in services.ProductPatchInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type FavoriteService interface {
	Add(ctx context.Context, userID, productID int64) (*models.Favorite, error)
	Remove(ctx context.Context, userID, productID int64) error
	ListForUser(ctx context.Context, userID int64) ([]*models.Product, error)
}

type ImageService interface {
	Enabled() bool
	PresignUpload(ctx context.Context, in services.ImageUploadInput) (*services.ImageUpload, error)
}

// Pinger reports store health. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps bundles what the HTTP layer calls into. Images and DB may be nil.
type Deps struct {
	Users     UserService
	Products  ProductService
	Favorites FavoriteService
	Images    ImageService
	DB        Pinger
}

type HTTPServer struct {
	address         string
	deps            Deps
	logger          logging.Logger
	metrics         *Metrics
	limiter         *RateLimiter
	corsOrigins     []string
	requestTimeout  time.Duration
	shutdownTimeout time.Duration
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, deps Deps) (*HTTPServer, error) {
	if deps.Users == nil || deps.Products == nil || deps.Favorites == nil {
		return nil, errors.New("rest: users, products and favorites services are required")
	}

	var limiter *RateLimiter
	if cfg.AuthRateLimit > 0 {
		limiter = NewRateLimiter(cfg.AuthRateLimit, time.Minute)
	}

	return &HTTPServer{
		address:         cfg.EndpointAddrHTTP,
		deps:            deps,
		logger:          l.With("module", "http_server"),
		metrics:         NewMetrics(),
		limiter:         limiter,
		corsOrigins:     splitOrigins(cfg.CORSAllowedOrigins),
		requestTimeout:  cfg.RequestTimeout,
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Run serves until ctx is cancelled, then drains in-flight requests for at
// most the shutdown timeout.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	if s.limiter != nil {
		go s.limiter.StartCleanup(ctx, time.Minute)
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownErr
}
