package model

// Note is a markdown document owned by one project. Content may contain
// [[Title]] wiki-link tokens referencing other notes by title. Backlinks
// are derived from content on read and never persisted, so they go stale
// silently when a referenced note is renamed.
type Note struct {
	NoteID        string   `json:"noteId" db:"note_id"`
	ProjectID     string   `json:"projectId" db:"project_id"`
	Title         string   `json:"title" db:"title"`
	Content       string   `json:"content" db:"content"`
	Tags          []string `json:"tags" db:"-"`
	LinkedTaskIDs []string `json:"linkedTaskIds" db:"-"`
	CreatedAt     int64    `json:"createdAt" db:"created_at"`
	UpdatedAt     int64    `json:"updatedAt" db:"updated_at"`
}
