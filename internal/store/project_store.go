package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/devboard-app/devboard/internal/model"
)

// PutProject inserts or fully overwrites a project by primary key.
func (s *SQLiteStore) PutProject(ctx context.Context, p model.Project) error {
	return s.WithTransaction(ctx, func(tx *Tx) error {
		return tx.PutProject(ctx, p)
	})
}

// PutProject upserts a project within the transaction and rebuilds its
// tech-stack index rows.
func (t *Tx) PutProject(ctx context.Context, p model.Project) error {
	techStack, err := toJSON(p.TechStack)
	if err != nil {
		return fmt.Errorf("encoding tech stack for project %s: %w", p.ProjectID, err)
	}
	repoLinks, err := toJSON(p.RepoLinks)
	if err != nil {
		return fmt.Errorf("encoding repo links for project %s: %w", p.ProjectID, err)
	}

	_, err = t.tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO projects (
			project_id, name, slug, description, status,
			tech_stack, repo_links, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ProjectID, p.Name, p.Slug, p.Description, p.Status,
		techStack, repoLinks, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upserting project %s: %w", p.ProjectID, err)
	}

	// REPLACE cascaded away old project_tech rows; reinsert from the record.
	for _, tech := range p.TechStack {
		_, err = t.tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO project_tech (project_id, tech) VALUES (?, ?)",
			p.ProjectID, tech,
		)
		if err != nil {
			return fmt.Errorf("indexing tech %q for project %s: %w", tech, p.ProjectID, err)
		}
	}

	t.record(Event{Collection: Projects, Op: "put", ID: p.ProjectID})
	return nil
}

// DeleteProject removes a project row. Tasks and notes referencing it are
// untouched; cascading is the caller's job.
func (t *Tx) DeleteProject(ctx context.Context, id string) error {
	if _, err := t.tx.ExecContext(ctx, "DELETE FROM projects WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("deleting project %s: %w", id, err)
	}
	t.record(Event{Collection: Projects, Op: "delete", ID: id})
	return nil
}

// GetProject retrieves a project by id. A missing id yields (nil, nil).
func (s *SQLiteStore) GetProject(ctx context.Context, id string) (*model.Project, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM projects WHERE project_id = ?", id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %s: %w", id, err)
	}
	return &p, nil
}

// GetProjects retrieves all projects ordered by most recently updated.
func (s *SQLiteStore) GetProjects(ctx context.Context) ([]model.Project, error) {
	return s.queryProjects(ctx, "SELECT * FROM projects ORDER BY updated_at DESC")
}

// GetProjectsByStatus retrieves projects with the given status.
func (s *SQLiteStore) GetProjectsByStatus(ctx context.Context, status string) ([]model.Project, error) {
	return s.queryProjects(ctx,
		"SELECT * FROM projects WHERE status = ? ORDER BY updated_at DESC", status)
}

// GetProjectsByTech retrieves projects whose tech stack contains tech.
func (s *SQLiteStore) GetProjectsByTech(ctx context.Context, tech string) ([]model.Project, error) {
	return s.queryProjects(ctx, `
		SELECT projects.* FROM projects
		JOIN project_tech ON project_tech.project_id = projects.project_id
		WHERE project_tech.tech = ?
		ORDER BY projects.updated_at DESC`, tech)
}

// CountProjects returns the number of projects.
func (s *SQLiteStore) CountProjects(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM projects"); err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) queryProjects(ctx context.Context, query string, args ...interface{}) ([]model.Project, error) {
	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// rowScanner covers both sqlx.Row and sqlx.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (model.Project, error) {
	var (
		p         model.Project
		techStack string
		repoLinks string
	)

	err := row.Scan(
		&p.ProjectID, &p.Name, &p.Slug, &p.Description, &p.Status,
		&techStack, &repoLinks, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return model.Project{}, err
	}

	p.TechStack = []string{}
	p.RepoLinks = []model.RepoLink{}
	if err := fromJSON(techStack, &p.TechStack); err != nil {
		return model.Project{}, fmt.Errorf("decoding tech stack: %w", err)
	}
	if err := fromJSON(repoLinks, &p.RepoLinks); err != nil {
		return model.Project{}, fmt.Errorf("decoding repo links: %w", err)
	}

	return p, nil
}

var _ rowScanner = (*sqlx.Row)(nil)
var _ rowScanner = (*sqlx.Rows)(nil)
