package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophmarket/internal/server/services"
)

func (s *HTTPServer) createImageUpload(w http.ResponseWriter, r *http.Request) {
	var in services.ImageUploadInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	res, err := s.deps.Images.PresignUpload(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	renderJSON(w, http.StatusCreated, res)
}
