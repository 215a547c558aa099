package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/devboard-app/devboard/internal/model"
)

// PutSettings inserts or fully overwrites the settings singleton.
func (s *SQLiteStore) PutSettings(ctx context.Context, settings model.Settings) error {
	return s.WithTransaction(ctx, func(tx *Tx) error {
		return tx.PutSettings(ctx, settings)
	})
}

// PutSettings upserts the settings record within the transaction. The
// whole record is stored as one JSON document under its fixed key.
func (t *Tx) PutSettings(ctx context.Context, settings model.Settings) error {
	if settings.ID == "" {
		settings.ID = model.SettingsID
	}
	data, err := json.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	_, err = t.tx.ExecContext(ctx,
		"INSERT OR REPLACE INTO settings (id, data) VALUES (?, ?)",
		settings.ID, string(data),
	)
	if err != nil {
		return fmt.Errorf("upserting settings: %w", err)
	}

	t.record(Event{Collection: Settings, Op: "put", ID: settings.ID})
	return nil
}

// GetSettings retrieves the settings singleton. Absence yields (nil, nil);
// default-filling is the ops layer's job.
func (s *SQLiteStore) GetSettings(ctx context.Context) (*model.Settings, error) {
	var data string
	err := s.db.GetContext(ctx, &data,
		"SELECT data FROM settings WHERE id = ?", model.SettingsID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting settings: %w", err)
	}

	var settings model.Settings
	if err := json.Unmarshal([]byte(data), &settings); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	return &settings, nil
}
