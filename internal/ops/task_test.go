package ops_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/ops"
)

func TestCreateTask_Defaults(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreateProject(ctx, ops.ProjectInput{Name: "Host"})
	require.NoError(t, err)

	task, err := svc.CreateTask(ctx, ops.TaskInput{ProjectID: p.ProjectID, Title: "Do it"})
	require.NoError(t, err)

	assert.Equal(t, model.TaskTypeFeature, task.Type)
	assert.Equal(t, "Backlog", task.Status)
	assert.Equal(t, model.PriorityP2, task.Priority)
	assert.Equal(t, []string{}, task.Tags)
	assert.Equal(t, []model.ChecklistItem{}, task.Checklist)
	assert.Equal(t, []model.TimeLog{}, task.TimeLogs)
	assert.Nil(t, task.Effort)
	assert.Equal(t, task.CreatedAt, task.UpdatedAt)
}

func TestCreateTask_ExplicitValuesKept(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, ops.TaskInput{
		ProjectID: "p1",
		Title:     "Fix crash",
		Type:      model.TaskTypeBug,
		Status:    "In Progress",
		Priority:  model.PriorityP0,
		Effort:    model.LabelEffort("S"),
	})
	require.NoError(t, err)

	assert.Equal(t, model.TaskTypeBug, task.Type)
	assert.Equal(t, "In Progress", task.Status)
	assert.Equal(t, model.PriorityP0, task.Priority)
	require.NotNil(t, task.Effort)
	assert.Equal(t, "S", task.Effort.Label)
}

func TestCreateTask_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, ops.TaskInput{Title: "no project"})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = svc.CreateTask(ctx, ops.TaskInput{ProjectID: "p1", Title: " "})
	require.ErrorAs(t, err, &verr)
}

func TestCreateTask_UnknownEffortLabelRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateTask(ctx, ops.TaskInput{
		ProjectID: "p1",
		Title:     "Sized wrong",
		Effort:    model.LabelEffort("MEDIUM"),
	})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	// Nothing reached the store, so reads keep working.
	tasks, err := svc.Store().GetTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestUpdateTask_UnknownEffortLabelRejected(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, ops.TaskInput{ProjectID: "p1", Title: "Sized"})
	require.NoError(t, err)

	bad := model.LabelEffort("HUGE")
	err = svc.UpdateTask(ctx, task.TaskID, ops.TaskPatch{Effort: &bad})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)

	got, err := svc.Store().GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	assert.Nil(t, got.Effort)
}

func TestUpdateTask_PartialPatch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, ops.TaskInput{ProjectID: "p1", Title: "Original", Description: "desc"})
	require.NoError(t, err)

	status := "Done"
	require.NoError(t, svc.UpdateTask(ctx, task.TaskID, ops.TaskPatch{Status: &status}))

	got, err := svc.Store().GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, "Done", got.Status)
	assert.Equal(t, "Original", got.Title)
	assert.Equal(t, "desc", got.Description)
}

func TestUpdateTask_CanClearEffort(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, ops.TaskInput{
		ProjectID: "p1", Title: "Sized", Effort: model.PointsEffort(8),
	})
	require.NoError(t, err)

	var cleared *model.Effort
	require.NoError(t, svc.UpdateTask(ctx, task.TaskID, ops.TaskPatch{Effort: &cleared}))

	got, err := svc.Store().GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	assert.Nil(t, got.Effort)
}

func TestUpdateTask_MissingIsSoftNoop(t *testing.T) {
	svc := newTestService(t)
	title := "ghost"
	require.NoError(t, svc.UpdateTask(context.Background(), "missing", ops.TaskPatch{Title: &title}))
}

func TestDuplicateTask(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	src, err := svc.CreateTask(ctx, ops.TaskInput{
		ProjectID: "p1",
		Title:     "Ship it",
		Priority:  model.PriorityP1,
		Tags:      []string{"release"},
		Checklist: []model.ChecklistItem{{ID: "c1", Text: "step", Done: true}},
	})
	require.NoError(t, err)

	dup, err := svc.DuplicateTask(ctx, src.TaskID)
	require.NoError(t, err)
	require.NotNil(t, dup)

	assert.NotEqual(t, src.TaskID, dup.TaskID)
	assert.Equal(t, "Ship it (Copy)", dup.Title)
	assert.Equal(t, src.Priority, dup.Priority)
	assert.Equal(t, src.Tags, dup.Tags)
	assert.Equal(t, src.Checklist, dup.Checklist)

	all, err := svc.Store().GetTasksByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDuplicateTask_MissingIsSoftNil(t *testing.T) {
	svc := newTestService(t)

	dup, err := svc.DuplicateTask(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, dup)
}

func TestConvertChecklistItemToTask(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	src, err := svc.CreateTask(ctx, ops.TaskInput{
		ProjectID: "p1",
		Title:     "Parent",
		Type:      model.TaskTypeBug,
		Status:    "In Progress",
		Priority:  model.PriorityP1,
		Checklist: []model.ChecklistItem{
			{ID: "c1", Text: "first step"},
			{ID: "c2", Text: "second step"},
		},
	})
	require.NoError(t, err)

	created, err := svc.ConvertChecklistItemToTask(ctx, src.TaskID, "c2")
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "second step", created.Title)
	assert.Equal(t, "Converted from checklist of: Parent", created.Description)
	assert.Equal(t, model.TaskTypeBug, created.Type)
	assert.Equal(t, "In Progress", created.Status)
	assert.Equal(t, model.PriorityP1, created.Priority)
	assert.Equal(t, "p1", created.ProjectID)

	parent, err := svc.Store().GetTask(ctx, src.TaskID)
	require.NoError(t, err)
	require.Len(t, parent.Checklist, 1)
	assert.Equal(t, "c1", parent.Checklist[0].ID)

	all, err := svc.Store().GetTasksByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestConvertChecklistItemToTask_MissingItemIsSoftNil(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	src, err := svc.CreateTask(ctx, ops.TaskInput{
		ProjectID: "p1",
		Title:     "Parent",
		Checklist: []model.ChecklistItem{{ID: "c1", Text: "only"}},
	})
	require.NoError(t, err)

	created, err := svc.ConvertChecklistItemToTask(ctx, src.TaskID, "nope")
	require.NoError(t, err)
	assert.Nil(t, created)

	// Nothing changed.
	parent, err := svc.Store().GetTask(ctx, src.TaskID)
	require.NoError(t, err)
	assert.Len(t, parent.Checklist, 1)
	all, err := svc.Store().GetTasksByProject(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestTimeLog_SingleActiveTimer(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, ops.TaskInput{ProjectID: "p1", Title: "Timed"})
	require.NoError(t, err)

	require.NoError(t, svc.StartTimeLog(ctx, task.TaskID))
	// Second start is a no-op while a log is open.
	require.NoError(t, svc.StartTimeLog(ctx, task.TaskID))

	got, err := svc.Store().GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	require.Len(t, got.TimeLogs, 1)
	assert.Nil(t, got.TimeLogs[0].End)
	require.NotNil(t, got.OpenTimeLog())

	require.NoError(t, svc.StopTimeLog(ctx, task.TaskID))
	got, err = svc.Store().GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	require.Len(t, got.TimeLogs, 1)
	require.NotNil(t, got.TimeLogs[0].End)
	assert.GreaterOrEqual(t, *got.TimeLogs[0].End, got.TimeLogs[0].Start)
	assert.Nil(t, got.OpenTimeLog())

	// Start again after stopping opens a second log.
	require.NoError(t, svc.StartTimeLog(ctx, task.TaskID))
	got, err = svc.Store().GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	assert.Len(t, got.TimeLogs, 2)
}

func TestStopTimeLog_ClosesAllOpenLogs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Seed drifted data with two open logs.
	task, err := svc.CreateTask(ctx, ops.TaskInput{
		ProjectID: "p1",
		Title:     "Drifted",
		TimeLogs: []model.TimeLog{
			{ID: "l1", Start: 100},
			{ID: "l2", Start: 200},
		},
	})
	require.NoError(t, err)

	require.NoError(t, svc.StopTimeLog(ctx, task.TaskID))

	got, err := svc.Store().GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	for _, l := range got.TimeLogs {
		assert.NotNil(t, l.End, "log %s left open", l.ID)
	}
}

func TestStopTimeLog_NoOpenLogIsNoop(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	task, err := svc.CreateTask(ctx, ops.TaskInput{ProjectID: "p1", Title: "Idle"})
	require.NoError(t, err)

	before, err := svc.Store().GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	require.NoError(t, svc.StopTimeLog(ctx, task.TaskID))
	after, err := svc.Store().GetTask(ctx, task.TaskID)
	require.NoError(t, err)
	assert.Equal(t, before.UpdatedAt, after.UpdatedAt)
}
