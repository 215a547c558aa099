package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Tx is a transactional write scope spanning all collections. Typed write
// methods record which collections they touch; on commit the store
// publishes one event per touched collection.
//
// There is no foreign-key enforcement between entity tables: referential
// integrity (cascade deletes and the like) is upheld by the domain
// operations that compose these writes, not by the store.
type Tx struct {
	tx      *sqlx.Tx
	touched map[Collection]struct{}
	events  []Event
}

func (t *Tx) record(e Event) {
	t.touched[e.Collection] = struct{}{}
	t.events = append(t.events, e)
}

// WithTransaction runs fn inside a single database transaction. If fn
// returns an error the transaction is rolled back and no collection
// retains a partial effect; on commit, change events for every touched
// collection are published to the bus.
func (s *SQLiteStore) WithTransaction(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	t := &Tx{tx: tx, touched: make(map[Collection]struct{})}
	if err := fn(t); err != nil {
		tx.Rollback() //nolint:errcheck // original error takes precedence
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.bus.Publish(t.events...)
	return nil
}

// ClearAll wipes every collection. Used by replace-mode import.
func (t *Tx) ClearAll(ctx context.Context) error {
	for _, table := range []string{
		"task_tags", "note_tags", "project_tech",
		"tasks", "notes", "projects", "settings",
	} {
		if _, err := t.tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	for _, c := range AllCollections {
		t.record(Event{Collection: c, Op: "clear"})
	}
	return nil
}
