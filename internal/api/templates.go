package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kestrelfin/tradestore/internal/document"
)

func handleTemplateTypes(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"trade_types": deps.Templates.AvailableTypes(),
		})
	}
}

func handleTemplate(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tradeType := chi.URLParam(r, "type")
		skeleton, err := deps.Templates.NewTrade(tradeType)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, skeleton)
	}
}

type validateRequest struct {
	Trade document.Document `json:"trade"`
}

func handleValidate(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validateRequest
		if !decode(w, r, &req) {
			return
		}
		pipeline, err := deps.Validators.CreatePipeline(req.Trade)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pipeline.Validate(req.Trade))
	}
}
