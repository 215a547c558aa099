package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/devboard-app/devboard/internal/model"
)

// PutNote inserts or fully overwrites a note by primary key.
func (s *SQLiteStore) PutNote(ctx context.Context, note model.Note) error {
	return s.WithTransaction(ctx, func(tx *Tx) error {
		return tx.PutNote(ctx, note)
	})
}

// PutNote upserts a note within the transaction and rebuilds its tag
// index rows.
func (t *Tx) PutNote(ctx context.Context, note model.Note) error {
	tags, err := toJSON(note.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags for note %s: %w", note.NoteID, err)
	}
	linkedTaskIDs, err := toJSON(note.LinkedTaskIDs)
	if err != nil {
		return fmt.Errorf("encoding linked task ids for note %s: %w", note.NoteID, err)
	}

	_, err = t.tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO notes (
			note_id, project_id, title, content, tags, linked_task_ids,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		note.NoteID, note.ProjectID, note.Title, note.Content, tags, linkedTaskIDs,
		note.CreatedAt, note.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting note %s: %w", note.NoteID, err)
	}

	for _, tag := range note.Tags {
		_, err = t.tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO note_tags (note_id, tag) VALUES (?, ?)",
			note.NoteID, tag,
		)
		if err != nil {
			return fmt.Errorf("indexing tag %q for note %s: %w", tag, note.NoteID, err)
		}
	}

	t.record(Event{Collection: Notes, Op: "put", ID: note.NoteID})
	return nil
}

// DeleteNote removes a note by id.
func (t *Tx) DeleteNote(ctx context.Context, id string) error {
	if _, err := t.tx.ExecContext(ctx, "DELETE FROM notes WHERE note_id = ?", id); err != nil {
		return fmt.Errorf("deleting note %s: %w", id, err)
	}
	t.record(Event{Collection: Notes, Op: "delete", ID: id})
	return nil
}

// DeleteNotesByProject removes every note owned by the project.
func (t *Tx) DeleteNotesByProject(ctx context.Context, projectID string) error {
	if _, err := t.tx.ExecContext(ctx, "DELETE FROM notes WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("deleting notes of project %s: %w", projectID, err)
	}
	t.record(Event{Collection: Notes, Op: "delete"})
	return nil
}

// DeleteNote removes a note by id outside a broader transaction.
func (s *SQLiteStore) DeleteNote(ctx context.Context, id string) error {
	return s.WithTransaction(ctx, func(tx *Tx) error {
		return tx.DeleteNote(ctx, id)
	})
}

// GetNote retrieves a note by id. A missing id yields (nil, nil).
func (s *SQLiteStore) GetNote(ctx context.Context, id string) (*model.Note, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM notes WHERE note_id = ?", id)
	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting note %s: %w", id, err)
	}
	return &note, nil
}

// GetNotes retrieves all notes ordered by most recently updated.
func (s *SQLiteStore) GetNotes(ctx context.Context) ([]model.Note, error) {
	return s.queryNotes(ctx, "SELECT * FROM notes ORDER BY updated_at DESC")
}

// GetNotesByProject retrieves the notes owned by a project.
func (s *SQLiteStore) GetNotesByProject(ctx context.Context, projectID string) ([]model.Note, error) {
	return s.queryNotes(ctx,
		"SELECT * FROM notes WHERE project_id = ? ORDER BY updated_at DESC", projectID)
}

// GetNotesByTag retrieves notes carrying the given tag.
func (s *SQLiteStore) GetNotesByTag(ctx context.Context, tag string) ([]model.Note, error) {
	return s.queryNotes(ctx, `
		SELECT notes.* FROM notes
		JOIN note_tags ON note_tags.note_id = notes.note_id
		WHERE note_tags.tag = ?
		ORDER BY notes.updated_at DESC`, tag)
}

func (s *SQLiteStore) queryNotes(ctx context.Context, query string, args ...interface{}) ([]model.Note, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying notes: %w", err)
	}
	defer rows.Close()

	var notes []model.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}
	return notes, rows.Err()
}

func scanNote(row rowScanner) (model.Note, error) {
	var (
		note          model.Note
		tags          string
		linkedTaskIDs string
	)

	err := row.Scan(
		&note.NoteID, &note.ProjectID, &note.Title, &note.Content,
		&tags, &linkedTaskIDs, &note.CreatedAt, &note.UpdatedAt,
	)
	if err != nil {
		return model.Note{}, err
	}

	note.Tags = []string{}
	note.LinkedTaskIDs = []string{}
	if err := fromJSON(tags, &note.Tags); err != nil {
		return model.Note{}, err
	}
	if err := fromJSON(linkedTaskIDs, &note.LinkedTaskIDs); err != nil {
		return model.Note{}, err
	}

	return note, nil
}
