package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"project_space/internal/models"
)

type UserSQLite struct {
	db *sql.DB
}

func NewUserSQLite(db *sql.DB) *UserSQLite {
	return &UserSQLite{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserSQLite)(nil)

const (
	insertUserSQL        = `INSERT INTO users (id, name, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`
	selectUserByEmailSQL = `SELECT id, name, email, password_hash, created_at, updated_at FROM users WHERE email = ?`
)

// Create inserts a new user. A taken email yields ErrDuplicate.
func (r *UserSQLite) Create(ctx context.Context, u models.User) error {
	_, err := r.db.ExecContext(ctx, insertUserSQL,
		u.ID.String(),
		u.Name,
		u.Email,
		u.PasswordHash,
		formatTimestamp(u.CreatedAt),
		formatTimestamp(u.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user %q: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("insert user %q: %w", u.Email, err)
	}
	return nil
}

// GetByEmail fetches a user by exact email. Returns (nil, nil) if not found.
func (r *UserSQLite) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var (
		u  models.User
		id string
	)
	err := r.db.QueryRowContext(ctx, selectUserByEmailSQL, email).
		Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	if u.ID, err = parseID(id); err != nil {
		return nil, fmt.Errorf("select user %q: %w", email, err)
	}
	return &u, nil
}
