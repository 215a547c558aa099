package backup_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devboard-app/devboard/internal/backup"
	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/store"
	"github.com/devboard-app/devboard/tests/testutil"
)

func seedProject(id, name string) model.Project {
	return model.Project{
		ProjectID: id,
		Name:      name,
		Slug:      name,
		Status:    model.ProjectStatusActive,
		TechStack: []string{"Go"},
		RepoLinks: []model.RepoLink{},
		CreatedAt: 1000,
		UpdatedAt: 1000,
	}
}

func seedTask(id, projectID string) model.Task {
	return model.Task{
		TaskID:        id,
		ProjectID:     projectID,
		Title:         "Task " + id,
		Type:          model.TaskTypeFeature,
		Status:        "Backlog",
		Priority:      model.PriorityP2,
		Effort:        model.PointsEffort(3),
		Tags:          []string{"seed"},
		Dependencies:  []string{},
		Checklist:     []model.ChecklistItem{},
		Attachments:   []model.Attachment{},
		TimeLogs:      []model.TimeLog{},
		LinkedNoteIDs: []string{},
		CreatedAt:     1000,
		UpdatedAt:     1000,
	}
}

func seedStore(t *testing.T, s *store.SQLiteStore) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, s.PutProject(ctx, seedProject("p1", "alpha")))
	require.NoError(t, s.PutTask(ctx, seedTask("t1", "p1")))
	require.NoError(t, s.PutNote(ctx, model.Note{
		NoteID: "n1", ProjectID: "p1", Title: "Note",
		Tags: []string{}, LinkedTaskIDs: []string{}, CreatedAt: 1000, UpdatedAt: 1000,
	}))
	settings := model.DefaultSettings()
	settings.Theme = "dark"
	require.NoError(t, s.PutSettings(ctx, settings))
}

func TestExport_DefaultsSettingsWhenAbsent(t *testing.T) {
	s := testutil.NewTestStore(t)

	payload, err := backup.New(s).Export(context.Background())
	require.NoError(t, err)

	assert.Equal(t, backup.SchemaVersion, payload.SchemaVersion)
	assert.NotZero(t, payload.ExportedAt)
	assert.NotNil(t, payload.Projects)
	assert.NotNil(t, payload.Tasks)
	assert.NotNil(t, payload.Notes)
	require.NotNil(t, payload.Settings)
	assert.Equal(t, "system", payload.Settings.Theme)
}

func TestExportImportReplace_RoundTripIdentity(t *testing.T) {
	src := testutil.NewTestStore(t)
	seedStore(t, src)
	ctx := context.Background()

	data, err := backup.New(src).ExportJSON(ctx)
	require.NoError(t, err)

	dst := testutil.NewTestStore(t)
	// Pre-populate the destination to prove replace wipes it.
	require.NoError(t, dst.PutProject(ctx, seedProject("stale", "stale")))

	require.NoError(t, backup.New(dst).ImportJSON(ctx, data, backup.ModeReplace))

	projects, err := dst.GetProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, seedProject("p1", "alpha"), projects[0])

	task, err := dst.GetTask(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, seedTask("t1", "p1"), *task)
	assert.Equal(t, int64(1000), task.CreatedAt, "timestamps survive restore")

	note, err := dst.GetNote(ctx, "n1")
	require.NoError(t, err)
	assert.NotNil(t, note)

	settings, err := dst.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, "dark", settings.Theme)
}

func TestImportMerge_PreservesLocalRecords(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	local := seedProject("local", "local-only")
	require.NoError(t, s.PutProject(ctx, local))

	incoming := seedProject("p1", "incoming")
	payload := &model.ExportPayload{
		SchemaVersion: backup.SchemaVersion,
		Projects:      []model.Project{incoming},
		Tasks:         []model.Task{},
		Notes:         []model.Note{},
	}
	require.NoError(t, backup.New(s).Import(ctx, payload, backup.ModeMerge))

	projects, err := s.GetProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	kept, err := s.GetProject(ctx, "local")
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, local, *kept)
}

func TestImportMerge_Idempotent(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	r := backup.New(s)

	payload := &model.ExportPayload{
		SchemaVersion: backup.SchemaVersion,
		Projects:      []model.Project{seedProject("p1", "alpha")},
		Tasks:         []model.Task{seedTask("t1", "p1")},
		Notes:         []model.Note{},
	}
	require.NoError(t, r.Import(ctx, payload, backup.ModeMerge))
	require.NoError(t, r.Import(ctx, payload, backup.ModeMerge))

	projects, err := s.GetProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
	tasks, err := s.GetTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestImportMerge_LeavesSettingsWhenPayloadHasNone(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	local := model.DefaultSettings()
	local.Theme = "dark"
	require.NoError(t, s.PutSettings(ctx, local))

	payload := &model.ExportPayload{
		SchemaVersion: backup.SchemaVersion,
		Projects:      []model.Project{},
		Tasks:         []model.Task{},
		Notes:         []model.Note{},
	}
	require.NoError(t, backup.New(s).Import(ctx, payload, backup.ModeMerge))

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, "dark", settings.Theme)
}

func TestImportReplace_DefaultsSettingsWhenPayloadHasNone(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	local := model.DefaultSettings()
	local.Theme = "dark"
	require.NoError(t, s.PutSettings(ctx, local))

	payload := &model.ExportPayload{
		SchemaVersion: backup.SchemaVersion,
		Projects:      []model.Project{},
		Tasks:         []model.Task{},
		Notes:         []model.Note{},
	}
	require.NoError(t, backup.New(s).Import(ctx, payload, backup.ModeReplace))

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, "system", settings.Theme)
}

func TestImport_NewerSchemaRejectedWithoutMutation(t *testing.T) {
	s := testutil.NewTestStore(t)
	seedStore(t, s)
	ctx := context.Background()

	before, err := backup.New(s).Export(ctx)
	require.NoError(t, err)

	payload := &model.ExportPayload{
		SchemaVersion: backup.SchemaVersion + 1,
		Projects:      []model.Project{seedProject("intruder", "intruder")},
		Tasks:         []model.Task{},
		Notes:         []model.Note{},
	}
	err = backup.New(s).Import(ctx, payload, backup.ModeReplace)
	var verr *backup.SchemaVersionError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, backup.SchemaVersion+1, verr.Found)

	after, err := backup.New(s).Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Projects, after.Projects)
	assert.Equal(t, before.Tasks, after.Tasks)
	assert.Equal(t, before.Notes, after.Notes)
	assert.Equal(t, before.Settings, after.Settings)
}

func TestImportJSON_MalformedPayloadRejectedWithoutMutation(t *testing.T) {
	s := testutil.NewTestStore(t)
	seedStore(t, s)
	ctx := context.Background()
	r := backup.New(s)

	cases := map[string]string{
		"not json":      "{nope",
		"not an object": `[1,2,3]`,
		"missing tasks": `{"schemaVersion":1,"projects":[],"notes":[]}`,
		"wrong field":   `{"schemaVersion":"one","projects":[],"tasks":[],"notes":[]}`,
	}
	for name, raw := range cases {
		err := r.ImportJSON(ctx, []byte(raw), backup.ModeReplace)
		var merr *backup.MalformedPayloadError
		require.ErrorAs(t, err, &merr, "case %s", name)
	}

	// The store is untouched after every rejection.
	projects, err := s.GetProjects(ctx)
	require.NoError(t, err)
	assert.Len(t, projects, 1)
	tasks, err := s.GetTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestImport_UnknownModeRejected(t *testing.T) {
	s := testutil.NewTestStore(t)

	payload := &model.ExportPayload{
		SchemaVersion: backup.SchemaVersion,
		Projects:      []model.Project{},
		Tasks:         []model.Task{},
		Notes:         []model.Note{},
	}
	err := backup.New(s).Import(context.Background(), payload, backup.Mode("sideways"))
	require.Error(t, err)
}
