package api

import (
	"net/http"

	"github.com/kestrelfin/tradestore/internal/filter"
)

type listRequest struct {
	Filter filter.Expr `json:"filter"`
	Limit  *int        `json:"limit"`
	Offset *int        `json:"offset"`
}

func handleList(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req listRequest
		if !decode(w, r, &req) {
			return
		}
		limit, offset, ok := pagination(w, req)
		if !ok {
			return
		}

		trades, err := deps.Service.ListByFilter(req.Filter)
		if err != nil {
			serviceError(w, err)
			return
		}

		total := len(trades)
		if offset > 0 {
			if offset >= len(trades) {
				trades = trades[:0]
			} else {
				trades = trades[offset:]
			}
		}
		if limit > 0 && limit < len(trades) {
			trades = trades[:limit]
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"trades": trades,
			"count":  total,
		})
	}
}

func handleListCount(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req listRequest
		if !decode(w, r, &req) {
			return
		}
		count, err := deps.Service.CountByFilter(req.Filter)
		if err != nil {
			serviceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"count": count})
	}
}

func pagination(w http.ResponseWriter, req listRequest) (limit, offset int, ok bool) {
	if req.Limit != nil {
		if *req.Limit < 1 {
			httpError(w, http.StatusUnprocessableEntity, "validation_error", "limit must be >= 1")
			return 0, 0, false
		}
		limit = *req.Limit
	}
	if req.Offset != nil {
		if *req.Offset < 0 {
			httpError(w, http.StatusUnprocessableEntity, "validation_error", "offset must be >= 0")
			return 0, 0, false
		}
		offset = *req.Offset
	}
	return limit, offset, true
}
