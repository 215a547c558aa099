package search_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/search"
	"github.com/devboard-app/devboard/tests/testutil"
)

func buildTestIndex(t *testing.T) *search.Index {
	t.Helper()

	projects := []model.Project{
		{ProjectID: "p1", Name: "DevBoard", Description: "offline project tracker", TechStack: []string{"Go", "SQLite"}},
	}
	tasks := []model.Task{
		{TaskID: "t1", ProjectID: "p1", Title: "Build Dexie schema", Description: "define tables and indexes"},
		{TaskID: "t2", ProjectID: "p1", Title: "Design Kanban board", Description: "columns follow the Dexie status list"},
		{TaskID: "t3", ProjectID: "p1", Title: "Write release notes", Tags: []string{"docs"}},
	}
	notes := []model.Note{
		{NoteID: "n1", ProjectID: "p1", Title: "Meeting minutes", Content: "discussed schema migration"},
	}

	ix, err := search.Build(projects, tasks, notes)
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() }) //nolint:errcheck // test cleanup
	return ix
}

func TestSearch_EmptyQueryYieldsNoResults(t *testing.T) {
	ix := buildTestIndex(t)

	for _, q := range []string{"", "   ", "\t"} {
		results, err := ix.Search(q)
		require.NoError(t, err)
		assert.Empty(t, results, "query %q", q)
	}
}

func TestSearch_TitleMatchOutranksContentMatch(t *testing.T) {
	ix := buildTestIndex(t)

	results, err := ix.Search("Dexie")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(results), 2)

	// "Dexie" in the title beats "Dexie" in the description.
	assert.Equal(t, "t1", results[0].ID)
	assert.Equal(t, search.SourceTask, results[0].Source)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearch_PrefixMatches(t *testing.T) {
	ix := buildTestIndex(t)

	results, err := ix.Search("kanb")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "t2", results[0].ID)
}

func TestSearch_FuzzyMatchesTypo(t *testing.T) {
	ix := buildTestIndex(t)

	// "kanbam" is one substitution away from "kanban".
	results, err := ix.Search("kanbam")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "t2", results[0].ID)
}

func TestSearch_CoversAllSources(t *testing.T) {
	ix := buildTestIndex(t)

	results, err := ix.Search("schema")
	require.NoError(t, err)

	sources := map[string]bool{}
	for _, r := range results {
		sources[r.Source] = true
	}
	assert.True(t, sources[search.SourceTask])
	assert.True(t, sources[search.SourceNote])
}

func TestSearch_TagsAreIndexed(t *testing.T) {
	ix := buildTestIndex(t)

	results, err := ix.Search("docs")
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "t3", results[0].ID)
}

func TestSearch_ReturnsAllMatches(t *testing.T) {
	tasks := make([]model.Task, 0, 80)
	for i := 0; i < 80; i++ {
		tasks = append(tasks, model.Task{
			TaskID:    fmt.Sprintf("t%d", i),
			ProjectID: "p1",
			Title:     fmt.Sprintf("Migration step %d", i),
		})
	}
	ix, err := search.Build(nil, tasks, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ix.Close() }) //nolint:errcheck // test cleanup

	results, err := ix.Search("migration")
	require.NoError(t, err)
	assert.Len(t, results, 80)
}

func TestIndexer_RebuildsOnWrite(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	x := search.NewIndexer(s, zerolog.Nop())
	done := make(chan struct{})
	go func() {
		defer close(done)
		x.Run(ctx) //nolint:errcheck // run loop exits on cancel
	}()

	// Before the first rebuild lands, Search degrades to empty results.
	require.Eventually(t, func() bool { return x.Current() != nil }, time.Second, 10*time.Millisecond)

	require.NoError(t, s.PutTask(ctx, model.Task{
		TaskID: "t1", ProjectID: "p1", Title: "Investigate flaky import",
		Tags: []string{}, Dependencies: []string{}, Checklist: []model.ChecklistItem{},
		Attachments: []model.Attachment{}, TimeLogs: []model.TimeLog{}, LinkedNoteIDs: []string{},
	}))

	require.Eventually(t, func() bool {
		results, err := x.Search("flaky")
		return err == nil && len(results) == 1
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("indexer run loop did not stop after cancel")
	}
}
