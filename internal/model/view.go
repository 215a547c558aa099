package model

// SavedViewFilter is a serializable filter descriptor over tasks. Absent
// fields impose no constraint; present fields are combined with implicit
// AND. Referenced projects, statuses, and tags are never re-validated, so
// dangling references simply yield fewer results.
type SavedViewFilter struct {
	Status    []string `json:"status,omitempty"`
	Type      []string `json:"type,omitempty"`
	Priority  []string `json:"priority,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	DueBefore string   `json:"dueBefore,omitempty"` // ISO date, exclusive compare by string
	DueAfter  string   `json:"dueAfter,omitempty"`
	Text      string   `json:"text,omitempty"` // case-insensitive substring on title
}

// SavedView is a named, optionally project-scoped filter persisted inside
// the settings record.
type SavedView struct {
	ViewID    string          `json:"viewId"`
	Name      string          `json:"name"`
	ProjectID string          `json:"projectId,omitempty"`
	Filter    SavedViewFilter `json:"filter"`
}
