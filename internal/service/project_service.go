package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"project_space/internal/models"
	"project_space/internal/repository"

	"github.com/google/uuid"
)

// ProjectFilter narrows List; empty fields match everything.
type ProjectFilter struct {
	Search string
	Status string
}

type ProjectService struct {
	projects repository.Projects
	now      func() time.Time
}

func NewProjectService(repo repository.Projects) *ProjectService {
	return &ProjectService{projects: repo, now: time.Now}
}

// Create stores a new project owned by the caller.
func (s *ProjectService) Create(ctx context.Context, owner models.Identity, in ProjectInput) (models.Project, error) {
	if err := ValidateProject(&in); err != nil {
		return models.Project{}, err
	}
	ownerID, err := uuid.Parse(canonicalID(owner.ID))
	if err != nil {
		return models.Project{}, ErrUnauthenticated
	}

	now := s.now().UTC()
	p := models.Project{
		ID:        uuid.New(),
		Owner:     models.Owner{ID: ownerID, Name: owner.Name, Email: owner.Email},
		CreatedAt: now,
	}
	applyInput(&p, in, now)

	if err := s.projects.Create(ctx, p); err != nil {
		// the token outlived its user
		if errors.Is(err, repository.ErrMissingOwner) {
			return models.Project{}, ErrUnauthenticated
		}
		return models.Project{}, err
	}
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, f ProjectFilter) ([]models.Project, error) {
	return s.projects.List(ctx, repository.ProjectQuery{
		Search: strings.TrimSpace(f.Search),
		Status: strings.TrimSpace(f.Status),
	})
}

func (s *ProjectService) Get(ctx context.Context, id string) (models.Project, error) {
	pid, err := parseProjectID(id)
	if err != nil {
		return models.Project{}, err
	}
	p, err := s.projects.GetByID(ctx, pid)
	if err != nil {
		return models.Project{}, err
	}
	if p == nil {
		return models.Project{}, ErrNotFound
	}
	return *p, nil
}

// Update replaces every mutable field of the project. The payload is
// validated before the store is touched.
func (s *ProjectService) Update(ctx context.Context, caller models.Identity, id string, in ProjectInput) (models.Project, error) {
	if err := ValidateProject(&in); err != nil {
		return models.Project{}, err
	}
	p, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		return models.Project{}, err
	}

	applyInput(&p, in, s.now().UTC())
	if err := s.projects.Update(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// Delete removes the project and returns the number of deleted records.
func (s *ProjectService) Delete(ctx context.Context, caller models.Identity, id string) (int64, error) {
	p, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		return 0, err
	}
	return s.projects.Delete(ctx, p.ID)
}

// loadOwned fetches the project and checks the caller owns it.
// Existence is always checked first: a missing project is ErrNotFound
// for every caller, never ErrForbidden.
func (s *ProjectService) loadOwned(ctx context.Context, caller models.Identity, id string) (models.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.Project{}, err
	}
	if !isOwner(p, caller) {
		return models.Project{}, ErrForbidden
	}
	return p, nil
}

// parseProjectID rejects an absent id and maps ids that cannot exist to ErrNotFound.
func parseProjectID(id string) (uuid.UUID, error) {
	id = strings.TrimSpace(id)
	if id == "" || id == "undefined" {
		return uuid.Nil, ErrMissingID
	}
	pid, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, ErrNotFound
	}
	return pid, nil
}

// applyInput copies a validated payload onto p.
func applyInput(p *models.Project, in ProjectInput, now time.Time) {
	due, _ := parseDate(string(in.DueDate))
	p.Name = in.Name
	p.Description = in.Description
	p.DueDate = due
	p.Status = in.Status
	p.ImageID = in.ImageID
	p.ImageURL = in.ImageURL
	p.UpdatedAt = now
}
