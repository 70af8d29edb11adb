package api

import (
	"net/http"

	"github.com/kestrelfin/tradestore/internal/seed"
	"github.com/kestrelfin/tradestore/internal/store"
)

type purgeRequest struct {
	Context store.Context `json:"context"`
}

type seedRequest struct {
	Context store.Context `json:"context"`
	Count   int           `json:"count"`
}

func handlePurge(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req purgeRequest
		if !decode(w, r, &req) {
			return
		}
		n, err := deps.Service.Clear(req.Context)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message":        "store purged",
			"trades_deleted": n,
		})
	}
}

func handleSeed(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req seedRequest
		if !decode(w, r, &req) {
			return
		}
		count := req.Count
		if count == 0 {
			count = deps.SeedCount
		}
		if count < 1 || count > 100 {
			httpError(w, http.StatusUnprocessableEntity, "validation_error", "count must be between 1 and 100")
			return
		}

		ids := make([]string, 0, count)
		for _, doc := range seed.IRSwaps(count) {
			saved, err := deps.Service.SaveNew(doc, req.Context)
			if err != nil {
				serviceError(w, err)
				return
			}
			ids = append(ids, saved.ID())
		}

		writeJSON(w, http.StatusCreated, map[string]any{
			"message":        "store seeded",
			"trades_created": len(ids),
			"trade_ids":      ids,
		})
	}
}

func handleOperationLog(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := deps.Service.OperationLog()
		writeJSON(w, http.StatusOK, map[string]any{
			"entries": log,
			"count":   len(log),
		})
	}
}
