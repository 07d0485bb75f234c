package rest

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Handler builds the full middleware chain around the router.
func (s *HTTPServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		renderJSON(w, http.StatusNotFound, errorBody{Error: "Not found"})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		renderJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed"})
	})
	r.Use(s.metrics.Middleware)

	r.HandleFunc("/", s.index).Methods(http.MethodGet)
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	r.Handle("/auth/register", s.rateLimited(s.register)).Methods(http.MethodPost)
	r.Handle("/auth/login", s.rateLimited(s.login)).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.requireAuth(s.logout)).Methods(http.MethodPost)

	r.HandleFunc("/products", s.listProducts).Methods(http.MethodGet)
	r.HandleFunc("/products", s.requireAuth(s.createProduct)).Methods(http.MethodPost)
	r.HandleFunc("/products/{id:[0-9]+}", s.getProduct).Methods(http.MethodGet)
	r.HandleFunc("/products/{id:[0-9]+}", s.requireAuth(s.updateProduct)).Methods(http.MethodPut)
	r.HandleFunc("/products/{id:[0-9]+}", s.requireAuth(s.deleteProduct)).Methods(http.MethodDelete)

	r.HandleFunc("/favorites/{productId:[0-9]+}", s.requireAuth(s.addFavorite)).Methods(http.MethodPost)
	r.HandleFunc("/favorites/{productId:[0-9]+}", s.requireAuth(s.removeFavorite)).Methods(http.MethodDelete)
	r.HandleFunc("/me/favorites", s.requireAuth(s.listFavorites)).Methods(http.MethodGet)

	if s.deps.Images != nil && s.deps.Images.Enabled() {
		r.HandleFunc("/uploads/images", s.requireAuth(s.createImageUpload)).Methods(http.MethodPost)
	}

	var h http.Handler = r
	h = s.timeoutMiddleware(h)
	h = s.corsMiddleware(h)
	h = s.requestLogMiddleware(h)
	h = s.recoverMiddleware(h)
	return h
}

func (s *HTTPServer) rateLimited(h http.HandlerFunc) http.Handler {
	if s.limiter == nil {
		return h
	}
	return s.limiter.Middleware(h)
}
