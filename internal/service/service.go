package service

import (
	"context"

	"project_space/internal/models"
	"project_space/internal/repository"
)

type Authorization interface {
	Register(ctx context.Context, in RegisterInput) (models.User, error)
	Login(ctx context.Context, in LoginInput) (string, models.Identity, error)
	ParseToken(accessToken string) (models.Identity, error)
}

// Projects exposes project CRUD with ownership enforcement on mutation.
type Projects interface {
	Create(ctx context.Context, owner models.Identity, in ProjectInput) (models.Project, error)
	List(ctx context.Context, f ProjectFilter) ([]models.Project, error)
	Get(ctx context.Context, id string) (models.Project, error)
	Update(ctx context.Context, caller models.Identity, id string, in ProjectInput) (models.Project, error)
	Delete(ctx context.Context, caller models.Identity, id string) (int64, error)
}

// Files proxies uploads to the image host.
type Files interface {
	UploadImage(ctx context.Context, f FileUpload) (models.Image, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Projects
	Files
}

// NewService wires the repository layer and external collaborators into
// concrete services.
func NewService(repos *repository.Repository, tokens *TokenManager, images ImageHost) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, tokens),
		Projects:      NewProjectService(repos.Projects),
		Files:         NewFileService(images),
	}
}
