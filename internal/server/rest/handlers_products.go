package rest

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/gophmarket/internal/server/services"
)

// listProducts never fails on bad paging input: unparsable values fall back
// to the defaults.
func (s *HTTPServer) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	res, err := s.deps.Products.List(r.Context(), services.ListQuery{
		Query: q.Get("q"),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	renderJSON(w, http.StatusOK, res)
}

func (s *HTTPServer) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	p, err := s.deps.Products.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	renderJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) createProduct(w http.ResponseWriter, r *http.Request) {
	var in services.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	p, err := s.deps.Products.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	renderJSON(w, http.StatusCreated, p)
}

func (s *HTTPServer) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	var in services.ProductPatchInput
	if err := decodeOptionalJSON(w, r, &in); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	p, err := s.deps.Products.Update(r.Context(), id, in)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	renderJSON(w, http.StatusOK, p)
}

func (s *HTTPServer) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	if err := s.deps.Products.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
