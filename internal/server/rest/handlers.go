package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/gophmarket/internal/common"
)

func (s *HTTPServer) index(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Marketplace API running"))
}

// health pings the store with a short deadline of its own.
func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	if s.deps.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := s.deps.DB.PingContext(ctx); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err.Error())
			renderJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// pathID reads a numeric route variable. The route pattern already rejects
// non-digits; values that overflow int64 are treated as unknown ids.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrorNotFound
	}
	return id, nil
}
