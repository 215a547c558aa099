// Package seed inserts demo data into an empty store.
package seed

import (
	"context"

	"github.com/devboard-app/devboard/internal/ident"
	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/ops"
)

// Demo creates a sample project with tasks and a note, unless the store
// already holds any project. Returns true if data was inserted.
func Demo(ctx context.Context, svc *ops.Service) (bool, error) {
	count, err := svc.Store().CountProjects(ctx)
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	project, err := svc.CreateProject(ctx, ops.ProjectInput{
		Name:        "DevBoard",
		Description: "Offline programmer project manager",
		TechStack:   []string{"React", "TypeScript", "Dexie"},
	})
	if err != nil {
		return false, err
	}

	_, err = svc.CreateTask(ctx, ops.TaskInput{
		ProjectID:   project.ProjectID,
		Title:       "Build Dexie schema",
		Description: "Define projects/tasks/notes tables + indexes.",
		Type:        model.TaskTypeFeature,
		Priority:    model.PriorityP1,
		Status:      "In Progress",
	})
	if err != nil {
		return false, err
	}

	task2, err := svc.CreateTask(ctx, ops.TaskInput{
		ProjectID:   project.ProjectID,
		Title:       "Design Kanban board",
		Description: "Dnd-kit columns with custom statuses.",
		Type:        model.TaskTypeFeature,
		Priority:    model.PriorityP2,
		Status:      "Backlog",
	})
	if err != nil {
		return false, err
	}

	tags := []string{"ui", "drag-drop"}
	checklist := []model.ChecklistItem{
		{ID: ident.New(), Text: "Define status columns", Done: true},
		{ID: ident.New(), Text: "Add drag handlers", Done: false},
	}
	err = svc.UpdateTask(ctx, task2.TaskID, ops.TaskPatch{
		Tags:      &tags,
		Checklist: &checklist,
	})
	if err != nil {
		return false, err
	}

	_, err = svc.CreateNote(ctx, ops.NoteInput{
		ProjectID: project.ProjectID,
		Title:     "Feature Spec - DevBoard",
		Content:   "# DevBoard\n\nOffline-first project manager for solo devs.\n\n## Goals\n- Fast\n- Local-first\n- Beautiful UX\n",
		Tags:      []string{"spec"},
	})
	if err != nil {
		return false, err
	}

	return true, nil
}
