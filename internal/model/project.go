package model

// Project status constants.
const (
	ProjectStatusActive   = "active"
	ProjectStatusPaused   = "paused"
	ProjectStatusArchived = "archived"
)

// RepoLink points a project at a source repository.
type RepoLink struct {
	ID   string `json:"id"`
	Type string `json:"type"` // "github", "gitlab", "local", "other"
	URL  string `json:"url"`
}

// Project is the top-level grouping entity. Tasks and notes belong to
// exactly one project. The slug is derived from the name at creation time
// and is not recomputed on rename unless a new slug is passed explicitly.
type Project struct {
	ProjectID   string     `json:"projectId" db:"project_id"`
	Name        string     `json:"name" db:"name"`
	Slug        string     `json:"slug" db:"slug"`
	Description string     `json:"description" db:"description"`
	Status      string     `json:"status" db:"status"`
	TechStack   []string   `json:"techStack" db:"-"`
	RepoLinks   []RepoLink `json:"repoLinks" db:"-"`
	CreatedAt   int64      `json:"createdAt" db:"created_at"` // epoch milliseconds
	UpdatedAt   int64      `json:"updatedAt" db:"updated_at"`
}
