// Package trade implements the service layer over the in-memory store:
// audit-context validation, trade CRUD, batch resolution, and filter scans.
package trade

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kestrelfin/tradestore/internal/document"
	"github.com/kestrelfin/tradestore/internal/filter"
	"github.com/kestrelfin/tradestore/internal/store"
)

// Service orchestrates the document store, deep merge, and filter
// evaluator. All methods are safe for concurrent use.
type Service struct {
	store *store.Store
}

// NewService wires the service to an injected store instance.
func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

// validateContext checks all four audit fields before any state change.
func validateContext(ctx store.Context) error {
	for _, f := range []struct {
		name, value string
	}{
		{"user", ctx.User},
		{"agent", ctx.Agent},
		{"action", ctx.Action},
		{"intent", ctx.Intent},
	} {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: context %s cannot be empty", ErrInvalidContext, f.name)
		}
	}
	return nil
}

// SaveNew stores a trade that must not already exist and returns it
// unchanged.
func (s *Service) SaveNew(doc document.Document, ctx store.Context) (document.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	id := doc.ID()
	if id == "" {
		return nil, ErrMissingID
	}
	if s.store.Exists(id) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, id)
	}
	s.store.Save(id, doc, ctx)
	slog.Debug("trade saved", "trade_id", id, "user", ctx.User, "action", ctx.Action)
	return doc, nil
}

// SaveUpdate fully replaces an existing trade.
func (s *Service) SaveUpdate(doc document.Document, ctx store.Context) (document.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	id := doc.ID()
	if id == "" {
		return nil, ErrMissingID
	}
	if !s.store.Exists(id) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.store.Save(id, doc, ctx)
	slog.Debug("trade replaced", "trade_id", id, "user", ctx.User, "action", ctx.Action)
	return doc, nil
}

// SavePartial deep-merges updates onto the existing trade and stores the
// result. The read-merge-write sequence runs in one store critical
// section, so concurrent partial updates never lose writes.
func (s *Service) SavePartial(id string, updates document.Document, ctx store.Context) (document.Document, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	merged, ok := s.store.Mutate(id, func(existing document.Document) document.Document {
		return document.Merge(existing, updates)
	}, ctx)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	slog.Debug("trade merged", "trade_id", id, "user", ctx.User, "action", ctx.Action)
	return merged, nil
}

// LoadByID returns the trade stored under id.
func (s *Service) LoadByID(id string) (document.Document, error) {
	doc := s.store.Get(id)
	if doc == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return doc, nil
}

// LoadByIDs resolves each id independently, partitioning the input into
// found documents and missing ids. Duplicate inputs resolve independently
// against the same state, so a stored id listed twice appears twice in
// the results.
func (s *Service) LoadByIDs(ids []string) (found []document.Document, missing []string) {
	found = make([]document.Document, 0, len(ids))
	missing = []string{}
	for _, id := range ids {
		if doc := s.store.Get(id); doc != nil {
			found = append(found, doc)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}

// DeleteByID removes a trade, reporting whether anything was removed.
// Deleting an absent id is success; the operation is idempotent.
func (s *Service) DeleteByID(id string, ctx store.Context) (bool, error) {
	if err := validateContext(ctx); err != nil {
		return false, err
	}
	deleted := s.store.Delete(id, ctx)
	if deleted {
		slog.Debug("trade deleted", "trade_id", id, "user", ctx.User, "action", ctx.Action)
	}
	return deleted, nil
}

// DeleteByIDs deletes each id in turn, returning the deleted count and
// the ids that were not present. A repeated id deletes on its first
// occurrence; later occurrences of the same id are reported missing since
// the trade is already gone by the time they are processed.
func (s *Service) DeleteByIDs(ids []string, ctx store.Context) (deleted int, missing []string, err error) {
	if err := validateContext(ctx); err != nil {
		return 0, nil, err
	}
	missing = []string{}
	for _, id := range ids {
		if s.store.Delete(id, ctx) {
			deleted++
		} else {
			missing = append(missing, id)
		}
	}
	slog.Debug("trades deleted", "count", deleted, "missing", len(missing), "user", ctx.User)
	return deleted, missing, nil
}

// LoadByFilter scans all stored trades and keeps those matching the
// expression. A nil or empty expression matches everything.
func (s *Service) LoadByFilter(expr filter.Expr) ([]document.Document, error) {
	matches := []document.Document{}
	for _, doc := range s.store.GetAll() {
		ok, err := filter.Matches(doc, expr)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, doc)
		}
	}
	return matches, nil
}

// ListByFilter returns list items for trades matching the expression.
// For now list items are the full trade documents.
func (s *Service) ListByFilter(expr filter.Expr) ([]document.Document, error) {
	return s.LoadByFilter(expr)
}

// CountByFilter counts trades matching the expression. The count always
// equals len(LoadByFilter(expr)) for the same state.
func (s *Service) CountByFilter(expr filter.Expr) (int, error) {
	count := 0
	for _, doc := range s.store.GetAll() {
		ok, err := filter.Matches(doc, expr)
		if err != nil {
			return 0, err
		}
		if ok {
			count++
		}
	}
	return count, nil
}

// Clear wipes all trades and the operation log. Administrative surface
// used by test and seed tooling, not part of the steady-state API.
func (s *Service) Clear(ctx store.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	n := s.store.Len()
	s.store.Clear()
	slog.Info("store purged", "trades_deleted", n, "user", ctx.User, "intent", ctx.Intent)
	return n, nil
}

// OperationLog returns the full audit trail for inspection.
func (s *Service) OperationLog() []store.LogEntry {
	return s.store.OperationLog()
}

// Count returns the number of stored trades.
func (s *Service) Count() int {
	return s.store.Len()
}
