package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophmarket/internal/common"
	"github.com/dmitrijs2005/gophmarket/internal/server/services"
)

type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// messages overrides the default text for a sentinel on a given endpoint.
type messages map[error]string

// writeError is the single place where service errors become HTTP statuses.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error, overrides messages) {
	status, body := s.classify(err)

	for sentinel, msg := range overrides {
		if errors.Is(err, sentinel) {
			body.Error = msg
			break
		}
	}

	if status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed", "error", err.Error(),
			"method", r.Method, "path", r.URL.Path, "request_id", requestIDFromContext(r.Context()))
	}

	renderJSON(w, status, body)
}

func (s *HTTPServer) classify(err error) (int, errorBody) {
	var verr *common.ValidationError

	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, errorBody{Error: "Validation failed", Fields: verr.Fields}
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, errorBody{Error: "Validation failed"}
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, errorBody{Error: "Already exists"}
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, errorBody{Error: "Not found"}
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, errorBody{Error: "Invalid credentials"}
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, errorBody{Error: "Token expired"}
	case errors.Is(err, common.ErrTokenRevoked), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, errorBody{Error: "Invalid token"}
	case errors.Is(err, services.ErrUploadsDisabled):
		return http.StatusNotFound, errorBody{Error: "Not found"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, errorBody{Error: "Request timed out"}
	default:
		return http.StatusInternalServerError, errorBody{Error: "Internal server error"}
	}
}
