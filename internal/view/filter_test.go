package view_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/view"
	"github.com/devboard-app/devboard/tests/testutil"
)

func filterTask(id string) model.Task {
	return model.Task{
		TaskID:    id,
		ProjectID: "p1",
		Title:     "Fix login crash",
		Type:      model.TaskTypeBug,
		Status:    "In Progress",
		Priority:  model.PriorityP1,
		Tags:      []string{"auth", "crash"},
		DueDate:   "2026-09-15",
	}
}

func TestMatches_EmptyFilterMatchesEverything(t *testing.T) {
	assert.True(t, view.Matches(model.SavedViewFilter{}, filterTask("t1")))
	assert.True(t, view.Matches(model.SavedViewFilter{}, model.Task{}))
}

func TestMatches_PredicatesANDTogether(t *testing.T) {
	task := filterTask("t1")

	f := model.SavedViewFilter{
		Status:   []string{"In Progress", "Review"},
		Type:     []string{model.TaskTypeBug},
		Priority: []string{model.PriorityP1},
		Tags:     []string{"auth"},
	}
	assert.True(t, view.Matches(f, task))

	// One failing predicate rejects the task even if the rest match.
	f.Status = []string{"Done"}
	assert.False(t, view.Matches(f, task))
}

func TestMatches_TagsIntersect(t *testing.T) {
	task := filterTask("t1")

	// Any shared tag is enough.
	assert.True(t, view.Matches(model.SavedViewFilter{Tags: []string{"crash", "unknown"}}, task))
	assert.False(t, view.Matches(model.SavedViewFilter{Tags: []string{"unknown"}}, task))
}

func TestMatches_DueDateBounds(t *testing.T) {
	task := filterTask("t1") // due 2026-09-15

	assert.True(t, view.Matches(model.SavedViewFilter{DueBefore: "2026-10-01"}, task))
	assert.False(t, view.Matches(model.SavedViewFilter{DueBefore: "2026-09-15"}, task), "bound is exclusive")
	assert.True(t, view.Matches(model.SavedViewFilter{DueAfter: "2026-09-01"}, task))
	assert.False(t, view.Matches(model.SavedViewFilter{DueAfter: "2026-09-15"}, task), "bound is exclusive")

	// A task without a due date fails any due-date predicate.
	undated := filterTask("t2")
	undated.DueDate = ""
	assert.False(t, view.Matches(model.SavedViewFilter{DueBefore: "2099-01-01"}, undated))
	assert.False(t, view.Matches(model.SavedViewFilter{DueAfter: "1970-01-01"}, undated))
}

func TestMatches_TextIsCaseInsensitiveSubstring(t *testing.T) {
	task := filterTask("t1")

	assert.True(t, view.Matches(model.SavedViewFilter{Text: "LOGIN"}, task))
	assert.True(t, view.Matches(model.SavedViewFilter{Text: "crash"}, task))
	assert.False(t, view.Matches(model.SavedViewFilter{Text: "payments"}, task))
}

func TestResolve_ProjectScope(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	inScope := filterTask("t1")
	outOfScope := filterTask("t2")
	outOfScope.ProjectID = "p2"
	require.NoError(t, s.PutTask(ctx, inScope))
	require.NoError(t, s.PutTask(ctx, outOfScope))

	scoped, err := view.Resolve(ctx, s, model.SavedView{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "t1", scoped[0].TaskID)

	global, err := view.Resolve(ctx, s, model.SavedView{})
	require.NoError(t, err)
	assert.Len(t, global, 2)
}

func TestResolve_DanglingReferencesYieldFewerResults(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.PutTask(ctx, filterTask("t1")))

	// Unknown project scope.
	byProject, err := view.Resolve(ctx, s, model.SavedView{ProjectID: "deleted-project"})
	require.NoError(t, err)
	assert.Empty(t, byProject)

	// Status that no longer exists in the workspace.
	byStatus, err := view.Resolve(ctx, s, model.SavedView{
		Filter: model.SavedViewFilter{Status: []string{"Retired Column"}},
	})
	require.NoError(t, err)
	assert.Empty(t, byStatus)
}
