package repository

import (
	"context"
	"database/sql"
	"errors"

	"project_space/internal/models"

	"github.com/google/uuid"
)

var (
	// ErrDuplicate reports a unique constraint violation.
	ErrDuplicate    = errors.New("duplicate record")
	// ErrMissingOwner is returned when a project references a user that does not exist.
	ErrMissingOwner = errors.New("project owner does not exist")
)

type Users interface {
	Create(ctx context.Context, u models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProjectQuery filters List. Empty fields are ignored.
type ProjectQuery struct {
	Search string
	Status string
}

type Projects interface {
	Create(ctx context.Context, p models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, q ProjectQuery) ([]models.Project, error)
	Update(ctx context.Context, p models.Project) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

type Repository struct {
	Users    Users
	Projects Projects
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:    NewUserSQLite(db),
		Projects: NewProjectSQLite(db),
	}
}
