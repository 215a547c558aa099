package search

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/devboard-app/devboard/internal/store"
)

// Indexer keeps a current full-text index over the store, rebuilding it
// whenever a write touches projects, tasks, or notes. Rebuilds are full
// snapshots, not incremental updates.
type Indexer struct {
	store *store.SQLiteStore
	log   zerolog.Logger

	mu      sync.RWMutex
	current *Index
}

// NewIndexer builds an Indexer over the store. Call Rebuild (or Run) to
// populate the initial index.
func NewIndexer(s *store.SQLiteStore, log zerolog.Logger) *Indexer {
	return &Indexer{store: s, log: log}
}

// Current returns the latest built index, or nil before the first
// rebuild.
func (x *Indexer) Current() *Index {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.current
}

// Search queries the current index. Before the first rebuild it returns
// an empty result set.
func (x *Indexer) Search(q string) ([]Result, error) {
	idx := x.Current()
	if idx == nil {
		return []Result{}, nil
	}
	return idx.Search(q)
}

// Rebuild snapshots the store and swaps in a fresh index.
func (x *Indexer) Rebuild(ctx context.Context) error {
	projects, err := x.store.GetProjects(ctx)
	if err != nil {
		return err
	}
	tasks, err := x.store.GetTasks(ctx)
	if err != nil {
		return err
	}
	notes, err := x.store.GetNotes(ctx)
	if err != nil {
		return err
	}

	idx, err := Build(projects, tasks, notes)
	if err != nil {
		return err
	}

	x.mu.Lock()
	old := x.current
	x.current = idx
	x.mu.Unlock()

	if old != nil {
		old.Close() //nolint:errcheck // replaced index
	}
	x.log.Debug().
		Int("projects", len(projects)).
		Int("tasks", len(tasks)).
		Int("notes", len(notes)).
		Msg("search index rebuilt")
	return nil
}

// Run builds the initial index and then rebuilds after every change to
// the indexed collections until ctx is done. Bursts of events coalesce
// into one rebuild.
func (x *Indexer) Run(ctx context.Context) error {
	sub := x.store.Bus().Subscribe(store.Projects, store.Tasks, store.Notes)
	defer sub.Close()

	if err := x.Rebuild(ctx); err != nil {
		return err
	}

	for {
		select {
		case _, ok := <-sub.C():
			if !ok {
				return nil
			}
			drained := false
			for !drained {
				select {
				case _, ok := <-sub.C():
					if !ok {
						return nil
					}
				default:
					drained = true
				}
			}
			if err := x.Rebuild(ctx); err != nil {
				x.log.Error().Err(err).Msg("search index rebuild failed")
			}
		case <-ctx.Done():
			return nil
		}
	}
}
