// Package api exposes the trade store over HTTP: save, load, list,
// delete, template, validation, and admin endpoints. The handlers carry
// no business logic; they decode requests, call the service, and map
// domain errors to status codes.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kestrelfin/tradestore/internal/template"
	"github.com/kestrelfin/tradestore/internal/trade"
	"github.com/kestrelfin/tradestore/internal/validation"
)

const maxBodySize = 10 << 20 // 10MB

// Deps carries everything the handlers need.
type Deps struct {
	Service    *trade.Service
	Templates  *template.Factory
	Validators *validation.Factory
	Token      string
	// SeedCount is the default trade count for seed requests.
	SeedCount int
}

// NewHandler builds the router. Every route except /health requires the
// bearer token.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", handleHealth(deps))

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(deps.Token))

		r.Post("/save/new", handleSaveNew(deps))
		r.Post("/save/update", handleSaveUpdate(deps))
		r.Post("/save/partial", handleSavePartial(deps))

		r.Get("/load/{id}", handleLoadByID(deps))
		r.Post("/load", handleLoadByIDs(deps))

		r.Post("/list", handleList(deps))
		r.Post("/list/count", handleListCount(deps))

		r.Delete("/delete/{id}", handleDeleteByID(deps))
		r.Post("/delete", handleDeleteByIDs(deps))

		r.Get("/templates", handleTemplateTypes(deps))
		r.Get("/templates/{type}", handleTemplate(deps))
		r.Post("/validate", handleValidate(deps))

		r.Post("/admin/purge", handlePurge(deps))
		r.Post("/admin/seed", handleSeed(deps))
		r.Get("/admin/log", handleOperationLog(deps))
	})

	return r
}
