// Package backup serializes the full store to a versioned payload and
// restores it under two policies: wholesale replacement or id-keyed
// merge. Import bypasses the domain operations' default-filling, since it
// restores complete records with their timestamps intact.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/store"
)

func nowMillis() int64 { return time.Now().UnixMilli() }

// SchemaVersion is the current export format version.
const SchemaVersion = 1

// Mode selects the restore policy.
type Mode string

const (
	// ModeReplace clears all collections before inserting payload records.
	ModeReplace Mode = "replace"
	// ModeMerge upserts payload records by id, preserving local records
	// absent from the payload. Settings is only touched if the payload
	// carries one: merge stays conservative for configuration.
	ModeMerge Mode = "merge"
)

// Reconciler reads and writes the store directly for import/export.
type Reconciler struct {
	store *store.SQLiteStore
	now   func() int64
}

// New builds a Reconciler over the store.
func New(s *store.SQLiteStore) *Reconciler {
	return &Reconciler{store: s, now: nowMillis}
}

// Export snapshots all four collections into a payload. Absent settings
// are replaced by the defaults so the payload is always complete.
func (r *Reconciler) Export(ctx context.Context) (*model.ExportPayload, error) {
	projects, err := r.store.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := r.store.GetTasks(ctx)
	if err != nil {
		return nil, err
	}
	notes, err := r.store.GetNotes(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := r.store.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		defaults := model.DefaultSettings()
		settings = &defaults
	}

	if projects == nil {
		projects = []model.Project{}
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	if notes == nil {
		notes = []model.Note{}
	}

	return &model.ExportPayload{
		SchemaVersion: SchemaVersion,
		ExportedAt:    r.now(),
		Projects:      projects,
		Tasks:         tasks,
		Notes:         notes,
		Settings:      settings,
	}, nil
}

// ExportJSON exports the store as an indented UTF-8 JSON document.
func (r *Reconciler) ExportJSON(ctx context.Context) ([]byte, error) {
	payload, err := r.Export(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export payload: %w", err)
	}
	return data, nil
}

// requiredKeys are the top-level payload keys that must be present.
var requiredKeys = []string{"schemaVersion", "projects", "tasks", "notes"}

// Parse decodes raw bytes into a payload, rejecting invalid JSON and
// missing top-level keys before any store mutation can begin.
func Parse(data []byte) (*model.ExportPayload, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, &MalformedPayloadError{Reason: "not a JSON object", Err: err}
	}
	for _, key := range requiredKeys {
		if _, ok := probe[key]; !ok {
			return nil, &MalformedPayloadError{Reason: fmt.Sprintf("missing %q", key)}
		}
	}

	var payload model.ExportPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &MalformedPayloadError{Reason: "invalid field", Err: err}
	}
	return &payload, nil
}

// Import restores the payload under the given mode. Each mode is one
// atomic transaction: a failure leaves no collection with a partial
// effect.
func (r *Reconciler) Import(ctx context.Context, payload *model.ExportPayload, mode Mode) error {
	if payload.SchemaVersion > SchemaVersion {
		return &SchemaVersionError{Found: payload.SchemaVersion, Supported: SchemaVersion}
	}

	switch mode {
	case ModeReplace:
		return r.store.WithTransaction(ctx, func(tx *store.Tx) error {
			if err := tx.ClearAll(ctx); err != nil {
				return err
			}
			if err := putAll(ctx, tx, payload); err != nil {
				return err
			}
			settings := payload.Settings
			if settings == nil {
				defaults := model.DefaultSettings()
				settings = &defaults
			}
			return tx.PutSettings(ctx, *settings)
		})
	case ModeMerge:
		return r.store.WithTransaction(ctx, func(tx *store.Tx) error {
			if err := putAll(ctx, tx, payload); err != nil {
				return err
			}
			if payload.Settings != nil {
				return tx.PutSettings(ctx, *payload.Settings)
			}
			return nil
		})
	default:
		return fmt.Errorf("unknown import mode %q", mode)
	}
}

// ImportJSON parses and restores raw payload bytes.
func (r *Reconciler) ImportJSON(ctx context.Context, data []byte, mode Mode) error {
	payload, err := Parse(data)
	if err != nil {
		return err
	}
	return r.Import(ctx, payload, mode)
}

// putAll upserts every payload record verbatim; payload primary keys are
// authoritative and timestamps are preserved as-is.
func putAll(ctx context.Context, tx *store.Tx, payload *model.ExportPayload) error {
	for _, p := range payload.Projects {
		if err := tx.PutProject(ctx, p); err != nil {
			return err
		}
	}
	for _, t := range payload.Tasks {
		if err := tx.PutTask(ctx, t); err != nil {
			return err
		}
	}
	for _, n := range payload.Notes {
		if err := tx.PutNote(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
