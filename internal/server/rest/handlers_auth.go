package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophmarket/internal/common"
	"github.com/dmitrijs2005/gophmarket/internal/server/services"
)

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	res, err := s.deps.Users.Register(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, messages{common.ErrorAlreadyExists: "Email already registered"})
		return
	}

	renderJSON(w, http.StatusCreated, res)
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	res, err := s.deps.Users.Login(r.Context(), in)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	renderJSON(w, http.StatusOK, res)
}

func (s *HTTPServer) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.deps.Users.Logout(r.Context(), identity(r)); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
