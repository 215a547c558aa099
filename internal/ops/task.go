package ops

import (
	"context"
	"fmt"
	"strings"

	"github.com/devboard-app/devboard/internal/ident"
	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/store"
)

// TaskInput is the caller-supplied portion of a new task.
type TaskInput struct {
	ProjectID     string
	Title         string
	Description   string
	Type          string
	Status        string
	Priority      string
	Severity      string
	Effort        *model.Effort
	StartDate     string
	DueDate       string
	Tags          []string
	Assignee      string
	Dependencies  []string
	BlockedReason string
	Checklist     []model.ChecklistItem
	Attachments   []model.Attachment
	TimeLogs      []model.TimeLog
	LinkedNoteIDs []string
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title         *string
	Description   *string
	Type          *string
	Status        *string
	Priority      *string
	Severity      *string
	Effort        **model.Effort
	StartDate     *string
	DueDate       *string
	Tags          *[]string
	Assignee      *string
	Dependencies  *[]string
	BlockedReason *string
	Checklist     *[]model.ChecklistItem
	Attachments   *[]model.Attachment
	TimeLogs      *[]model.TimeLog
	LinkedNoteIDs *[]string
}

// CreateTask validates the input, fills defaults, and persists the new
// task.
func (s *Service) CreateTask(ctx context.Context, in TaskInput) (*model.Task, error) {
	if strings.TrimSpace(in.ProjectID) == "" {
		return nil, model.Validation("task project", "must not be empty")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, model.Validation("task title", "must not be empty")
	}
	if err := validateEffort(in.Effort); err != nil {
		return nil, err
	}

	now := s.now()
	task := model.Task{
		TaskID:        ident.New(),
		ProjectID:     in.ProjectID,
		Title:         in.Title,
		Description:   in.Description,
		Type:          in.Type,
		Status:        in.Status,
		Priority:      in.Priority,
		Severity:      in.Severity,
		Effort:        in.Effort,
		StartDate:     in.StartDate,
		DueDate:       in.DueDate,
		Tags:          in.Tags,
		Assignee:      in.Assignee,
		Dependencies:  in.Dependencies,
		BlockedReason: in.BlockedReason,
		Checklist:     in.Checklist,
		Attachments:   in.Attachments,
		TimeLogs:      in.TimeLogs,
		LinkedNoteIDs: in.LinkedNoteIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	applyTaskDefaults(&task)

	if err := s.store.PutTask(ctx, task); err != nil {
		return nil, err
	}
	s.log.Debug().Str("task", task.TaskID).Str("project", task.ProjectID).Msg("task created")
	return &task, nil
}

// validateEffort rejects unknown size labels before the record reaches
// the store; a stored unknown label would make every later read fail in
// the effort codec.
func validateEffort(e *model.Effort) error {
	if e != nil && e.Kind == model.EffortLabel && !model.ValidEffortLabel(e.Label) {
		return model.Validation("task effort", fmt.Sprintf("unknown size label %q", e.Label))
	}
	return nil
}

func applyTaskDefaults(task *model.Task) {
	if task.Type == "" {
		task.Type = model.TaskTypeFeature
	}
	if task.Status == "" {
		task.Status = "Backlog"
	}
	if task.Priority == "" {
		task.Priority = model.PriorityP2
	}
	if task.Tags == nil {
		task.Tags = []string{}
	}
	if task.Dependencies == nil {
		task.Dependencies = []string{}
	}
	if task.Checklist == nil {
		task.Checklist = []model.ChecklistItem{}
	}
	if task.Attachments == nil {
		task.Attachments = []model.Attachment{}
	}
	if task.TimeLogs == nil {
		task.TimeLogs = []model.TimeLog{}
	}
	if task.LinkedNoteIDs == nil {
		task.LinkedNoteIDs = []string{}
	}
}

// UpdateTask merges the patch into the stored task and stamps UpdatedAt.
// A missing id is a soft no-op: UI edits may target a task deleted by a
// concurrent action, and that must not surface as an error.
func (s *Service) UpdateTask(ctx context.Context, id string, patch TaskPatch) error {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}

	applyTaskPatch(task, patch)
	if err := validateEffort(task.Effort); err != nil {
		return err
	}
	task.UpdatedAt = s.now()
	return s.store.PutTask(ctx, *task)
}

func applyTaskPatch(task *model.Task, patch TaskPatch) {
	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Type != nil {
		task.Type = *patch.Type
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Severity != nil {
		task.Severity = *patch.Severity
	}
	if patch.Effort != nil {
		task.Effort = *patch.Effort
	}
	if patch.StartDate != nil {
		task.StartDate = *patch.StartDate
	}
	if patch.DueDate != nil {
		task.DueDate = *patch.DueDate
	}
	if patch.Tags != nil {
		task.Tags = *patch.Tags
	}
	if patch.Assignee != nil {
		task.Assignee = *patch.Assignee
	}
	if patch.Dependencies != nil {
		task.Dependencies = *patch.Dependencies
	}
	if patch.BlockedReason != nil {
		task.BlockedReason = *patch.BlockedReason
	}
	if patch.Checklist != nil {
		task.Checklist = *patch.Checklist
	}
	if patch.Attachments != nil {
		task.Attachments = *patch.Attachments
	}
	if patch.TimeLogs != nil {
		task.TimeLogs = *patch.TimeLogs
	}
	if patch.LinkedNoteIDs != nil {
		task.LinkedNoteIDs = *patch.LinkedNoteIDs
	}
}

// DeleteTask removes a task by id.
func (s *Service) DeleteTask(ctx context.Context, id string) error {
	return s.store.DeleteTask(ctx, id)
}

// DuplicateTask creates a copy of the task with a new id, a " (Copy)"
// title suffix, and fresh timestamps. A missing source is a soft no-op
// returning (nil, nil).
func (s *Service) DuplicateTask(ctx context.Context, id string) (*model.Task, error) {
	src, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, nil
	}

	now := s.now()
	copyTask := *src
	copyTask.TaskID = ident.New()
	copyTask.Title = src.Title + " (Copy)"
	copyTask.CreatedAt = now
	copyTask.UpdatedAt = now

	if err := s.store.PutTask(ctx, copyTask); err != nil {
		return nil, err
	}
	return &copyTask, nil
}

// ConvertChecklistItemToTask promotes a checklist item into a standalone
// task in the same project, carrying over the source task's status,
// priority, and type, and removes the item from the source checklist.
// Both writes happen in one transaction: either the new task exists and
// the item is gone, or neither. Missing task or item is a soft no-op.
func (s *Service) ConvertChecklistItemToTask(ctx context.Context, taskID, itemID string) (*model.Task, error) {
	src, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if src == nil {
		return nil, nil
	}

	var item *model.ChecklistItem
	remaining := make([]model.ChecklistItem, 0, len(src.Checklist))
	for _, c := range src.Checklist {
		if c.ID == itemID {
			found := c
			item = &found
			continue
		}
		remaining = append(remaining, c)
	}
	if item == nil {
		return nil, nil
	}

	now := s.now()
	newTask := model.Task{
		TaskID:      ident.New(),
		ProjectID:   src.ProjectID,
		Title:       item.Text,
		Description: "Converted from checklist of: " + src.Title,
		Type:        src.Type,
		Status:      src.Status,
		Priority:    src.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyTaskDefaults(&newTask)

	updated := *src
	updated.Checklist = remaining
	updated.UpdatedAt = now

	err = s.store.WithTransaction(ctx, func(tx *store.Tx) error {
		if err := tx.PutTask(ctx, newTask); err != nil {
			return err
		}
		return tx.PutTask(ctx, updated)
	})
	if err != nil {
		return nil, err
	}
	return &newTask, nil
}

// StartTimeLog opens a timer on the task. If an open log already exists
// the call is a no-op, preserving the single-active-timer invariant.
func (s *Service) StartTimeLog(ctx context.Context, taskID string) error {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}
	if task.OpenTimeLog() != nil {
		return nil
	}

	task.TimeLogs = append(task.TimeLogs, model.TimeLog{
		ID:    ident.New(),
		Start: s.now(),
	})
	task.UpdatedAt = s.now()
	return s.store.PutTask(ctx, *task)
}

// StopTimeLog closes every open log on the task. Only one should ever be
// open, but closing all of them keeps the invariant even if the data
// drifted.
func (s *Service) StopTimeLog(ctx context.Context, taskID string) error {
	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return nil
	}

	now := s.now()
	closed := false
	for i := range task.TimeLogs {
		if task.TimeLogs[i].End == nil {
			end := now
			task.TimeLogs[i].End = &end
			closed = true
		}
	}
	if !closed {
		return nil
	}

	task.UpdatedAt = now
	return s.store.PutTask(ctx, *task)
}
