package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"project_space/internal/models"
	"project_space/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = bcrypt.DefaultCost // 10 rounds

// AuthService handles user auth logic
type AuthService struct {
	users  repository.Users
	tokens *TokenManager
	now    func() time.Time
}

func NewAuthService(repo repository.Users, tokens *TokenManager) *AuthService {
	return &AuthService{users: repo, tokens: tokens, now: time.Now}
}

// Register validates the payload, rejects a taken email and stores the
// user with a bcrypt hash of the password.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (models.User, error) {
	in.normalize()
	if err := validateStruct(&in); err != nil {
		return models.User{}, err
	}

	existing, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return models.User{}, err
	}
	if existing != nil {
		return models.User{}, ErrEmailInUse
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return models.User{}, err
	}

	now := s.now().UTC()
	u := models.User{
		ID:           uuid.New(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.User{}, ErrEmailInUse
		}
		return models.User{}, err
	}
	return u, nil
}

// Login checks credentials and returns a signed access token with the
// identity it carries. Unknown email and wrong password are
// indistinguishable: both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, models.Identity, error) {
	in.normalize()
	if err := validateStruct(&in); err != nil {
		return "", models.Identity{}, err
	}

	u, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return "", models.Identity{}, err
	}
	if u == nil {
		return "", models.Identity{}, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, in.Password); err != nil {
		return "", models.Identity{}, ErrInvalidCredentials
	}

	id := u.Identity()
	token, err := s.tokens.Issue(id)
	if err != nil {
		return "", models.Identity{}, err
	}
	return token, id, nil
}

// ParseToken resolves an access token into the caller's identity.
func (s *AuthService) ParseToken(accessToken string) (models.Identity, error) {
	return s.tokens.Verify(accessToken)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
