// Package store holds trade documents in memory behind a single mutex and
// records every successful mutation in an append-only operation log.
package store

import (
	"sync"
	"time"

	"github.com/kestrelfin/tradestore/internal/document"
)

// Operation names recorded in the log.
const (
	OpSave   = "save"
	OpDelete = "delete"
)

// Context is the audit metadata attached to every mutating call.
type Context struct {
	User   string `json:"user"`
	Agent  string `json:"agent"`
	Action string `json:"action"`
	Intent string `json:"intent"`
}

// LogEntry is one record of the operation log. Entries are never modified
// after being appended.
type LogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Context   Context   `json:"context"`
	Operation string    `json:"operation"`
	TradeID   string    `json:"trade_id"`
}

// Store is a concurrency-safe in-memory document store. Every method holds
// the store mutex for the duration of the call, so each individual call is
// atomic relative to all other callers. Documents are deep-copied on the
// way in and out; callers can never alias internal state.
type Store struct {
	mu     sync.Mutex
	trades map[string]document.Document
	log    []LogEntry
}

// New returns an empty store. One instance is constructed at process start
// and injected into the service layer.
func New() *Store {
	return &Store{trades: make(map[string]document.Document)}
}

// Save upserts the document under id and appends a save log entry.
func (s *Store) Save(id string, doc document.Document, ctx Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades[id] = doc.Clone()
	s.appendLog(OpSave, id, ctx)
}

// Get returns a copy of the document under id, or nil when absent.
func (s *Store) Get(id string) document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trades[id].Clone()
}

// Exists reports whether a document is stored under id.
func (s *Store) Exists(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.trades[id]
	return ok
}

// Delete removes the document under id. It returns true and appends a
// delete log entry only when something was actually removed.
func (s *Store) Delete(id string, ctx Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trades[id]; !ok {
		return false
	}
	delete(s.trades, id)
	s.appendLog(OpDelete, id, ctx)
	return true
}

// Mutate applies fn to the document under id and stores the result, all
// within one critical section. It returns the stored result and true, or
// nil and false when id is absent. Running the read-transform-write
// sequence under the lock keeps concurrent partial updates from losing
// writes to stale reads.
func (s *Store) Mutate(id string, fn func(document.Document) document.Document, ctx Context) (document.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.trades[id]
	if !ok {
		return nil, false
	}
	next := fn(existing.Clone())
	s.trades[id] = next.Clone()
	s.appendLog(OpSave, id, ctx)
	return next, true
}

// GetAll returns a snapshot of every stored document. Filter and count
// scans iterate this snapshot without holding the store lock.
func (s *Store) GetAll() []document.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]document.Document, 0, len(s.trades))
	for _, doc := range s.trades {
		out = append(out, doc.Clone())
	}
	return out
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.trades)
}

// Clear wipes all documents and the operation log. Administrative reset
// only; the steady-state API never truncates the log.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trades = make(map[string]document.Document)
	s.log = nil
}

// OperationLog returns a snapshot of the audit trail.
func (s *Store) OperationLog() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LogEntry, len(s.log))
	copy(out, s.log)
	return out
}

func (s *Store) appendLog(op, id string, ctx Context) {
	s.log = append(s.log, LogEntry{
		Timestamp: time.Now().UTC(),
		Context:   ctx,
		Operation: op,
		TradeID:   id,
	})
}
