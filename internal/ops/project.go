package ops

import (
	"context"
	"strings"

	"github.com/devboard-app/devboard/internal/ident"
	"github.com/devboard-app/devboard/internal/model"
	"github.com/devboard-app/devboard/internal/store"
)

// ProjectInput is the caller-supplied portion of a new project.
type ProjectInput struct {
	Name        string
	Description string
	Status      string
	TechStack   []string
	RepoLinks   []model.RepoLink
}

// ProjectPatch is a partial update. Nil fields are left untouched.
type ProjectPatch struct {
	Name        *string
	Slug        *string
	Description *string
	Status      *string
	TechStack   *[]string
	RepoLinks   *[]model.RepoLink
}

// CreateProject validates the input, fills defaults, derives the slug,
// and persists the new project.
func (s *Service) CreateProject(ctx context.Context, in ProjectInput) (*model.Project, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, model.Validation("project name", "must not be empty")
	}

	now := s.now()
	p := model.Project{
		ProjectID:   ident.New(),
		Name:        in.Name,
		Slug:        Slugify(in.Name),
		Description: in.Description,
		Status:      in.Status,
		TechStack:   in.TechStack,
		RepoLinks:   in.RepoLinks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Status == "" {
		p.Status = model.ProjectStatusActive
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	if p.RepoLinks == nil {
		p.RepoLinks = []model.RepoLink{}
	}

	if err := s.store.PutProject(ctx, p); err != nil {
		return nil, err
	}
	s.log.Debug().Str("project", p.ProjectID).Str("slug", p.Slug).Msg("project created")
	return &p, nil
}

// UpdateProject merges the patch into the stored project and stamps
// UpdatedAt. A missing id is a soft no-op.
func (s *Service) UpdateProject(ctx context.Context, id string, patch ProjectPatch) error {
	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return nil
	}

	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.TechStack != nil {
		p.TechStack = *patch.TechStack
	}
	if patch.RepoLinks != nil {
		p.RepoLinks = *patch.RepoLinks
	}
	p.UpdatedAt = s.now()

	return s.store.PutProject(ctx, *p)
}

// DeleteProject removes the project and, first, every task and note that
// references it, all inside one transaction.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	err := s.store.WithTransaction(ctx, func(tx *store.Tx) error {
		if err := tx.DeleteTasksByProject(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteNotesByProject(ctx, id); err != nil {
			return err
		}
		return tx.DeleteProject(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Debug().Str("project", id).Msg("project deleted with cascade")
	return nil
}
