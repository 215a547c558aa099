package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/devboard-app/devboard/internal/model"
)

// PutTask inserts or fully overwrites a task by primary key.
func (s *SQLiteStore) PutTask(ctx context.Context, task model.Task) error {
	return s.WithTransaction(ctx, func(tx *Tx) error {
		return tx.PutTask(ctx, task)
	})
}

// PutTask upserts a task within the transaction and rebuilds its tag
// index rows.
func (t *Tx) PutTask(ctx context.Context, task model.Task) error {
	tags, err := toJSON(task.Tags)
	if err != nil {
		return fmt.Errorf("encoding tags for task %s: %w", task.TaskID, err)
	}
	dependencies, err := toJSON(task.Dependencies)
	if err != nil {
		return fmt.Errorf("encoding dependencies for task %s: %w", task.TaskID, err)
	}
	checklist, err := toJSON(task.Checklist)
	if err != nil {
		return fmt.Errorf("encoding checklist for task %s: %w", task.TaskID, err)
	}
	attachments, err := toJSON(task.Attachments)
	if err != nil {
		return fmt.Errorf("encoding attachments for task %s: %w", task.TaskID, err)
	}
	timeLogs, err := toJSON(task.TimeLogs)
	if err != nil {
		return fmt.Errorf("encoding time logs for task %s: %w", task.TaskID, err)
	}
	linkedNoteIDs, err := toJSON(task.LinkedNoteIDs)
	if err != nil {
		return fmt.Errorf("encoding linked note ids for task %s: %w", task.TaskID, err)
	}

	effort := ""
	if task.Effort != nil {
		data, err := json.Marshal(task.Effort)
		if err != nil {
			return fmt.Errorf("encoding effort for task %s: %w", task.TaskID, err)
		}
		effort = string(data)
	}

	_, err = t.tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO tasks (
			task_id, project_id, title, description, type, status, priority,
			severity, effort, start_date, due_date, tags, assignee,
			dependencies, blocked_reason, checklist, attachments, time_logs,
			linked_note_ids, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		task.TaskID, task.ProjectID, task.Title, task.Description,
		task.Type, task.Status, task.Priority,
		task.Severity, effort, task.StartDate, task.DueDate, tags, task.Assignee,
		dependencies, task.BlockedReason, checklist, attachments, timeLogs,
		linkedNoteIDs, task.CreatedAt, task.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting task %s: %w", task.TaskID, err)
	}

	for _, tag := range task.Tags {
		_, err = t.tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO task_tags (task_id, tag) VALUES (?, ?)",
			task.TaskID, tag,
		)
		if err != nil {
			return fmt.Errorf("indexing tag %q for task %s: %w", tag, task.TaskID, err)
		}
	}

	t.record(Event{Collection: Tasks, Op: "put", ID: task.TaskID})
	return nil
}

// DeleteTask removes a task by id.
func (t *Tx) DeleteTask(ctx context.Context, id string) error {
	if _, err := t.tx.ExecContext(ctx, "DELETE FROM tasks WHERE task_id = ?", id); err != nil {
		return fmt.Errorf("deleting task %s: %w", id, err)
	}
	t.record(Event{Collection: Tasks, Op: "delete", ID: id})
	return nil
}

// DeleteTasksByProject removes every task owned by the project.
func (t *Tx) DeleteTasksByProject(ctx context.Context, projectID string) error {
	if _, err := t.tx.ExecContext(ctx, "DELETE FROM tasks WHERE project_id = ?", projectID); err != nil {
		return fmt.Errorf("deleting tasks of project %s: %w", projectID, err)
	}
	t.record(Event{Collection: Tasks, Op: "delete"})
	return nil
}

// DeleteTask removes a task by id outside a broader transaction.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	return s.WithTransaction(ctx, func(tx *Tx) error {
		return tx.DeleteTask(ctx, id)
	})
}

// GetTask retrieves a task by id. A missing id yields (nil, nil).
func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*model.Task, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM tasks WHERE task_id = ?", id)
	task, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %s: %w", id, err)
	}
	return &task, nil
}

// GetTasks retrieves all tasks ordered by most recently updated.
func (s *SQLiteStore) GetTasks(ctx context.Context) ([]model.Task, error) {
	return s.queryTasks(ctx, "SELECT * FROM tasks ORDER BY updated_at DESC")
}

// GetTasksByProject retrieves the tasks owned by a project.
func (s *SQLiteStore) GetTasksByProject(ctx context.Context, projectID string) ([]model.Task, error) {
	return s.queryTasks(ctx,
		"SELECT * FROM tasks WHERE project_id = ? ORDER BY updated_at DESC", projectID)
}

// GetTasksByStatus retrieves tasks with the given status.
func (s *SQLiteStore) GetTasksByStatus(ctx context.Context, status string) ([]model.Task, error) {
	return s.queryTasks(ctx,
		"SELECT * FROM tasks WHERE status = ? ORDER BY updated_at DESC", status)
}

// GetTasksByType retrieves tasks with the given type.
func (s *SQLiteStore) GetTasksByType(ctx context.Context, taskType string) ([]model.Task, error) {
	return s.queryTasks(ctx,
		"SELECT * FROM tasks WHERE type = ? ORDER BY updated_at DESC", taskType)
}

// GetTasksByPriority retrieves tasks with the given priority.
func (s *SQLiteStore) GetTasksByPriority(ctx context.Context, priority string) ([]model.Task, error) {
	return s.queryTasks(ctx,
		"SELECT * FROM tasks WHERE priority = ? ORDER BY updated_at DESC", priority)
}

// GetTasksByTag retrieves tasks carrying the given tag.
func (s *SQLiteStore) GetTasksByTag(ctx context.Context, tag string) ([]model.Task, error) {
	return s.queryTasks(ctx, `
		SELECT tasks.* FROM tasks
		JOIN task_tags ON task_tags.task_id = tasks.task_id
		WHERE task_tags.tag = ?
		ORDER BY tasks.updated_at DESC`, tag)
}

// GetTasksDueBefore retrieves tasks with a due date on or before the given
// ISO date. Tasks without a due date are excluded.
func (s *SQLiteStore) GetTasksDueBefore(ctx context.Context, isoDate string) ([]model.Task, error) {
	return s.queryTasks(ctx,
		"SELECT * FROM tasks WHERE due_date != '' AND due_date <= ? ORDER BY due_date", isoDate)
}

func (s *SQLiteStore) queryTasks(ctx context.Context, query string, args ...interface{}) ([]model.Task, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

func scanTask(row rowScanner) (model.Task, error) {
	var (
		task          model.Task
		effort        string
		tags          string
		dependencies  string
		checklist     string
		attachments   string
		timeLogs      string
		linkedNoteIDs string
	)

	err := row.Scan(
		&task.TaskID, &task.ProjectID, &task.Title, &task.Description,
		&task.Type, &task.Status, &task.Priority,
		&task.Severity, &effort, &task.StartDate, &task.DueDate, &tags, &task.Assignee,
		&dependencies, &task.BlockedReason, &checklist, &attachments, &timeLogs,
		&linkedNoteIDs, &task.CreatedAt, &task.UpdatedAt,
	)
	if err != nil {
		return model.Task{}, err
	}

	if effort != "" {
		task.Effort = &model.Effort{}
		if err := json.Unmarshal([]byte(effort), task.Effort); err != nil {
			return model.Task{}, fmt.Errorf("decoding effort: %w", err)
		}
	}

	task.Tags = []string{}
	task.Dependencies = []string{}
	task.Checklist = []model.ChecklistItem{}
	task.Attachments = []model.Attachment{}
	task.TimeLogs = []model.TimeLog{}
	task.LinkedNoteIDs = []string{}
	for _, col := range []struct {
		raw string
		dst interface{}
	}{
		{tags, &task.Tags},
		{dependencies, &task.Dependencies},
		{checklist, &task.Checklist},
		{attachments, &task.Attachments},
		{timeLogs, &task.TimeLogs},
		{linkedNoteIDs, &task.LinkedNoteIDs},
	} {
		if err := fromJSON(col.raw, col.dst); err != nil {
			return model.Task{}, err
		}
	}

	return task, nil
}
