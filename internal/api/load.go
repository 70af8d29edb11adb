package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type loadRequest struct {
	IDs []string `json:"ids"`
}

func handleLoadByID(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		doc, err := deps.Service.LoadByID(id)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

func handleLoadByIDs(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loadRequest
		if !decode(w, r, &req) {
			return
		}
		found, missing := deps.Service.LoadByIDs(req.IDs)
		writeJSON(w, http.StatusOK, map[string]any{
			"trades":      found,
			"missing_ids": missing,
		})
	}
}
