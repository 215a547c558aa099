// Package view resolves saved-view filter descriptors into concrete task
// sets. A SavedView is data, not code: resolution fetches the task set
// for the view's (optional) project scope and keeps tasks where every
// present predicate matches.
package view

import (
	"context"
	"strings"

	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/store"
)

// Resolve evaluates the saved view against the store. Dangling project,
// status, or tag references are tolerated and simply yield fewer results.
func Resolve(ctx context.Context, s *store.SQLiteStore, v model.SavedView) ([]model.Task, error) {
	var (
		tasks []model.Task
		err   error
	)
	if v.ProjectID != "" {
		tasks, err = s.GetTasksByProject(ctx, v.ProjectID)
	} else {
		tasks, err = s.GetTasks(ctx)
	}
	if err != nil {
		return nil, err
	}

	matched := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if Matches(v.Filter, task) {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

// Matches reports whether the task satisfies every present predicate.
// Absent predicates impose no constraint; present ones AND together.
func Matches(f model.SavedViewFilter, task model.Task) bool {
	if len(f.Status) > 0 && !contains(f.Status, task.Status) {
		return false
	}
	if len(f.Type) > 0 && !contains(f.Type, task.Type) {
		return false
	}
	if len(f.Priority) > 0 && !contains(f.Priority, task.Priority) {
		return false
	}
	if len(f.Tags) > 0 && !intersects(f.Tags, task.Tags) {
		return false
	}
	// Due-date bounds compare ISO date strings lexically; a task without
	// a due date fails any due-date predicate.
	if f.DueBefore != "" && (task.DueDate == "" || task.DueDate >= f.DueBefore) {
		return false
	}
	if f.DueAfter != "" && (task.DueDate == "" || task.DueDate <= f.DueAfter) {
		return false
	}
	if f.Text != "" && !strings.Contains(strings.ToLower(task.Title), strings.ToLower(f.Text)) {
		return false
	}
	return true
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func intersects(a, b []string) bool {
	for _, s := range a {
		if contains(b, s) {
			return true
		}
	}
	return false
}
