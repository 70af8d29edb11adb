package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kestrelfin/tradestore/internal/store"
)

type deleteRequest struct {
	Context store.Context `json:"context"`
}

type deleteBatchRequest struct {
	IDs     []string      `json:"ids"`
	Context store.Context `json:"context"`
}

func handleDeleteByID(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req deleteRequest
		if !decode(w, r, &req) {
			return
		}
		deleted, err := deps.Service.DeleteByID(id, req.Context)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
	}
}

func handleDeleteByIDs(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteBatchRequest
		if !decode(w, r, &req) {
			return
		}
		deleted, missing, err := deps.Service.DeleteByIDs(req.IDs, req.Context)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"deleted_count": deleted,
			"missing_ids":   missing,
		})
	}
}
