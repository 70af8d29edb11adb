package api

import (
	"net/http"

	"github.com/kestrelfin/tradestore/internal/document"
	"github.com/kestrelfin/tradestore/internal/store"
)

type saveRequest struct {
	Trade   document.Document `json:"trade"`
	Context store.Context     `json:"context"`
}

type partialRequest struct {
	ID      string            `json:"id"`
	Updates document.Document `json:"updates"`
	Context store.Context     `json:"context"`
}

func handleSaveNew(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveRequest
		if !decode(w, r, &req) {
			return
		}
		saved, err := deps.Service.SaveNew(req.Trade, req.Context)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
	}
}

func handleSaveUpdate(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveRequest
		if !decode(w, r, &req) {
			return
		}
		updated, err := deps.Service.SaveUpdate(req.Trade, req.Context)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func handleSavePartial(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req partialRequest
		if !decode(w, r, &req) {
			return
		}
		if req.ID == "" {
			httpError(w, http.StatusUnprocessableEntity, "validation_error", "id is required")
			return
		}
		merged, err := deps.Service.SavePartial(req.ID, req.Updates, req.Context)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, merged)
	}
}
