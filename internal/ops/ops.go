// Package ops implements the domain operations: validated create, update,
// delete, and the task-specific verbs (duplicate, checklist conversion,
// time logging). It is the only write path into the store; referential
// integrity between collections lives here, not in the schema.
package ops

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/devboard-app/devboard/internal/store"
)

// Service exposes the domain operations over an entity store.
type Service struct {
	store *store.SQLiteStore
	log   zerolog.Logger

	// now is swappable for tests.
	now func() int64
}

// New builds a Service around the store.
func New(s *store.SQLiteStore, log zerolog.Logger) *Service {
	return &Service{
		store: s,
		log:   log,
		now:   func() int64 { return time.Now().UnixMilli() },
	}
}

// Store exposes the underlying store for read paths (live queries,
// saved-view resolution, search snapshots).
func (s *Service) Store() *store.SQLiteStore {
	return s.store
}
