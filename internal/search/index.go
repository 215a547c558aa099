// Package search builds an in-memory full-text index over the current
// snapshot of projects, tasks, and notes. The index is rebuilt wholesale
// when the underlying entities change; corpus size is one user's local
// workspace, so a full rebuild stays cheap.
package search

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/devboard-app/devboard/internal/model"
)

// Document source kinds.
const (
	SourceProject = "project"
	SourceTask    = "task"
	SourceNote    = "note"
)

// Document is the uniform shape every entity flattens into before
// indexing.
type Document struct {
	ID        string
	Title     string
	Content   string
	Tags      []string
	ProjectID string
	Source    string
}

// Result is one ranked search hit.
type Result struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	ProjectID string  `json:"projectId"`
	Source    string  `json:"source"`
	Score     float64 `json:"score"`
}

// Index holds the bleve index plus a side map resolving hit ids back to
// their stored fields.
type Index struct {
	idx  bleve.Index
	docs map[string]Document
}

// titleBoost weights title matches twice as high as content or tag
// matches.
const titleBoost = 2.0

// Build flattens the given entities and indexes title, content, and tags.
func Build(projects []model.Project, tasks []model.Task, notes []model.Note) (*Index, error) {
	docs := Flatten(projects, tasks, notes)

	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating search index: %w", err)
	}

	batch := idx.NewBatch()
	byID := make(map[string]Document, len(docs))
	for _, doc := range docs {
		byID[doc.ID] = doc
		err := batch.Index(doc.ID, map[string]interface{}{
			"title":   doc.Title,
			"content": doc.Content,
			"tags":    doc.Tags,
		})
		if err != nil {
			return nil, fmt.Errorf("indexing document %s: %w", doc.ID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		idx.Close() //nolint:errcheck // index is discarded
		return nil, fmt.Errorf("applying index batch: %w", err)
	}

	return &Index{idx: idx, docs: byID}, nil
}

// Flatten converts entities into the uniform document shape.
func Flatten(projects []model.Project, tasks []model.Task, notes []model.Note) []Document {
	docs := make([]Document, 0, len(projects)+len(tasks)+len(notes))
	for _, p := range projects {
		docs = append(docs, Document{
			ID:        p.ProjectID,
			Title:     p.Name,
			Content:   p.Description,
			Tags:      p.TechStack,
			ProjectID: p.ProjectID,
			Source:    SourceProject,
		})
	}
	for _, t := range tasks {
		docs = append(docs, Document{
			ID:        t.TaskID,
			Title:     t.Title,
			Content:   t.Description,
			Tags:      t.Tags,
			ProjectID: t.ProjectID,
			Source:    SourceTask,
		})
	}
	for _, n := range notes {
		docs = append(docs, Document{
			ID:        n.NoteID,
			Title:     n.Title,
			Content:   n.Content,
			Tags:      n.Tags,
			ProjectID: n.ProjectID,
			Source:    SourceNote,
		})
	}
	return docs
}

// Search returns ranked hits for the query, best score first. An empty or
// whitespace-only query yields an empty result set, not match-all.
func (ix *Index) Search(q string) ([]Result, error) {
	q = strings.TrimSpace(q)
	if q == "" || len(ix.docs) == 0 {
		return []Result{}, nil
	}

	terms := strings.Fields(strings.ToLower(q))
	fields := []struct {
		name  string
		boost float64
	}{
		{"title", titleBoost},
		{"content", 1.0},
		{"tags", 1.0},
	}

	var clauses []query.Query
	for _, term := range terms {
		for _, f := range fields {
			prefix := query.NewPrefixQuery(term)
			prefix.SetField(f.name)
			prefix.SetBoost(f.boost)
			clauses = append(clauses, prefix)

			match := query.NewMatchQuery(term)
			match.SetField(f.name)
			match.SetBoost(f.boost)
			match.SetFuzziness(fuzziness(term))
			clauses = append(clauses, match)
		}
	}

	// Every document is a candidate: results are ranked, never truncated.
	req := bleve.NewSearchRequestOptions(query.NewDisjunctionQuery(clauses), len(ix.docs), 0, false)
	res, err := ix.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", q, err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		doc, ok := ix.docs[hit.ID]
		if !ok {
			continue
		}
		results = append(results, Result{
			ID:        doc.ID,
			Title:     doc.Title,
			ProjectID: doc.ProjectID,
			Source:    doc.Source,
			Score:     hit.Score,
		})
	}
	return results, nil
}

// Close releases the underlying index.
func (ix *Index) Close() error {
	return ix.idx.Close()
}

// fuzziness scales edit-distance tolerance to roughly 0.2 of the term
// length, capped at the engine maximum of 2.
func fuzziness(term string) int {
	f := len(term) / 5
	if f > 2 {
		f = 2
	}
	return f
}
