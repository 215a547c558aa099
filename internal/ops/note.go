package ops

import (
	"context"
	"regexp"
	"strings"

	"github.com/devboard-app/devboard/internal/ident"
	"github.com/devboard-app/devboard/internal/model"
)

// NoteInput is the caller-supplied portion of a new note.
type NoteInput struct {
	ProjectID string
	Title     string
	Content   string
	Tags      []string
}

// NotePatch is a partial update. Nil fields are left untouched.
type NotePatch struct {
	Title         *string
	Content       *string
	Tags          *[]string
	LinkedTaskIDs *[]string
}

// CreateNote validates the input and persists the new note.
func (s *Service) CreateNote(ctx context.Context, in NoteInput) (*model.Note, error) {
	if strings.TrimSpace(in.ProjectID) == "" {
		return nil, model.Validation("note project", "must not be empty")
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, model.Validation("note title", "must not be empty")
	}

	now := s.now()
	note := model.Note{
		NoteID:        ident.New(),
		ProjectID:     in.ProjectID,
		Title:         in.Title,
		Content:       in.Content,
		Tags:          in.Tags,
		LinkedTaskIDs: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}

	if err := s.store.PutNote(ctx, note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote merges the patch into the stored note and stamps UpdatedAt.
// A missing id is a soft no-op.
func (s *Service) UpdateNote(ctx context.Context, id string, patch NotePatch) error {
	note, err := s.store.GetNote(ctx, id)
	if err != nil {
		return err
	}
	if note == nil {
		return nil
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Tags != nil {
		note.Tags = *patch.Tags
	}
	if patch.LinkedTaskIDs != nil {
		note.LinkedTaskIDs = *patch.LinkedTaskIDs
	}
	note.UpdatedAt = s.now()

	return s.store.PutNote(ctx, *note)
}

// DeleteNote removes a note by id.
func (s *Service) DeleteNote(ctx context.Context, id string) error {
	return s.store.DeleteNote(ctx, id)
}

var wikiLinkPattern = regexp.MustCompile(`\[\[([^\]]+)\]\]`)

// ExtractWikiLinks returns the titles referenced by [[Title]] tokens in
// markdown content, in order of appearance.
func ExtractWikiLinks(content string) []string {
	matches := wikiLinkPattern.FindAllStringSubmatch(content, -1)
	titles := make([]string, 0, len(matches))
	for _, m := range matches {
		titles = append(titles, strings.TrimSpace(m[1]))
	}
	return titles
}

// Backlinks returns the notes in the same project whose content contains
// a wiki link matching the note's title (case-insensitive exact match).
// Backlinks are computed on read and never persisted, so they go stale
// silently if this note is renamed.
func (s *Service) Backlinks(ctx context.Context, noteID string) ([]model.Note, error) {
	note, err := s.store.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, nil
	}

	siblings, err := s.store.GetNotesByProject(ctx, note.ProjectID)
	if err != nil {
		return nil, err
	}

	var backlinks []model.Note
	for _, candidate := range siblings {
		if candidate.NoteID == note.NoteID {
			continue
		}
		for _, title := range ExtractWikiLinks(candidate.Content) {
			if strings.EqualFold(title, note.Title) {
				backlinks = append(backlinks, candidate)
				break
			}
		}
	}
	return backlinks, nil
}
