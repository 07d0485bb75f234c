package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/dmitrijs2005/gophmarket/internal/common"
)

const maxBodyBytes = 1 << 20

func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a single JSON object from the request body into dst.
// Malformed bodies come back as validation errors so they render as 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return readJSON(w, r, dst, false)
}

// decodeOptionalJSON is decodeJSON for partial updates: an empty body leaves
// dst untouched.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return readJSON(w, r, dst, true)
}

func readJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &typeErr) && typeErr.Field != "":
			return common.NewValidationError(typeErr.Field, "type")
		case errors.As(err, &maxErr):
			return common.NewValidationError("body", "size")
		case errors.Is(err, io.EOF) && allowEmpty:
			return nil
		case errors.Is(err, io.EOF):
			return common.NewValidationError("body", "required")
		default:
			return common.NewValidationError("body", "json")
		}
	}
	return nil
}
