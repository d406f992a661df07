package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"project_space/internal/models"

	"github.com/google/uuid"
)

type ProjectSQLite struct {
	db *sql.DB
}

func NewProjectSQLite(db *sql.DB) *ProjectSQLite { return &ProjectSQLite{db: db} }

var _ Projects = (*ProjectSQLite)(nil)

const (
	insertProjectSQL = `INSERT INTO projects (id, name, description, due_date, status, image_id, image_url, owner_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	updateProjectSQL = `UPDATE projects SET name = ?, description = ?, due_date = ?, status = ?, image_id = ?, image_url = ?, updated_at = ? WHERE id = ?`
	deleteProjectSQL = `DELETE FROM projects WHERE id = ?`

	// owner is populated with name/email; a dangling reference keeps its id.
	selectProjectsSQL = `SELECT p.id, p.name, p.description, p.due_date, p.status, p.image_id, p.image_url, ` +
		`p.owner_id, COALESCE(u.name, ''), COALESCE(u.email, ''), p.created_at, p.updated_at ` +
		`FROM projects p LEFT JOIN users u ON u.id = p.owner_id`
	selectProjectByIDSQL = selectProjectsSQL + ` WHERE p.id = ?`

	searchCond = `(` + foldFunc + `(p.name) LIKE ? ESCAPE '\' OR ` + foldFunc + `(p.description) LIKE ? ESCAPE '\')`
)

// Create inserts p as-is; the caller assigns id, owner and timestamps.
func (r *ProjectSQLite) Create(ctx context.Context, p models.Project) error {
	_, err := r.db.ExecContext(ctx, insertProjectSQL,
		p.ID.String(),
		p.Name,
		p.Description,
		formatTimestamp(p.DueDate),
		p.Status,
		p.ImageID,
		p.ImageURL,
		p.Owner.ID.String(),
		formatTimestamp(p.CreatedAt),
		formatTimestamp(p.UpdatedAt),
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("insert project %s for %s: %w", p.ID, p.Owner.ID, ErrMissingOwner)
	}
	if err != nil {
		return fmt.Errorf("insert project %s: %w", p.ID, err)
	}
	return nil
}

// GetByID returns (nil, nil) if no project has the id.
func (r *ProjectSQLite) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, selectProjectByIDSQL, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select project %s: %w", id, err)
	}
	return &p, nil
}

// List returns projects matching q ordered by due date ascending.
// Search is a case-insensitive substring match on name or description,
// folding non-ASCII letters too.
func (r *ProjectSQLite) List(ctx context.Context, q ProjectQuery) ([]models.Project, error) {
	var (
		conds []string
		args  []any
	)

	if s := strings.TrimSpace(q.Search); s != "" {
		pattern := "%" + escapeLike(foldCase(s)) + "%"
		conds = append(conds, searchCond)
		args = append(args, pattern, pattern)
	}
	if q.Status != "" {
		conds = append(conds, "p.status = ?")
		args = append(args, q.Status)
	}

	query := selectProjectsSQL
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY p.due_date ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]models.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return out, nil
}

// Update replaces the mutable fields of p. The owner column is never written.
func (r *ProjectSQLite) Update(ctx context.Context, p models.Project) error {
	_, err := r.db.ExecContext(ctx, updateProjectSQL,
		p.Name,
		p.Description,
		formatTimestamp(p.DueDate),
		p.Status,
		p.ImageID,
		p.ImageURL,
		formatTimestamp(p.UpdatedAt),
		p.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update project %s: %w", p.ID, err)
	}
	return nil
}

// Delete removes the project and reports how many rows went away.
func (r *ProjectSQLite) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteProjectSQL, id.String())
	if err != nil {
		return 0, fmt.Errorf("delete project %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected for project %s: %w", id, err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (models.Project, error) {
	var (
		p           models.Project
		id, ownerID string
	)
	err := row.Scan(
		&id, &p.Name, &p.Description, &p.DueDate, &p.Status, &p.ImageID, &p.ImageURL,
		&ownerID, &p.Owner.Name, &p.Owner.Email, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return models.Project{}, err
	}
	if p.ID, err = parseID(id); err != nil {
		return models.Project{}, err
	}
	if p.Owner.ID, err = parseID(ownerID); err != nil {
		return models.Project{}, err
	}
	p.DueDate = p.DueDate.UTC()
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
