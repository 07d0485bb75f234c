package rest

import (
	"net/http"

	"github.com/dmitrijs2005/gophmarket/internal/common"
	"github.com/dmitrijs2005/gophmarket/internal/server/models"
)

func (s *HTTPServer) addFavorite(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		s.writeError(w, r, err, messages{common.ErrorNotFound: "Product not found"})
		return
	}

	fav, err := s.deps.Favorites.Add(r.Context(), identity(r).UserID, productID)
	if err != nil {
		s.writeError(w, r, err, messages{
			common.ErrorAlreadyExists: "Already favorited",
			common.ErrorNotFound:      "Product not found",
		})
		return
	}

	renderJSON(w, http.StatusCreated, fav)
}

func (s *HTTPServer) removeFavorite(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		s.writeError(w, r, err, messages{common.ErrorNotFound: "Favorite not found"})
		return
	}

	if err := s.deps.Favorites.Remove(r.Context(), identity(r).UserID, productID); err != nil {
		s.writeError(w, r, err, messages{common.ErrorNotFound: "Favorite not found"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) listFavorites(w http.ResponseWriter, r *http.Request) {
	items, err := s.deps.Favorites.ListForUser(r.Context(), identity(r).UserID)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	if items == nil {
		items = []*models.Product{}
	}

	renderJSON(w, http.StatusOK, items)
}
