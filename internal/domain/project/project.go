// Package project provides project (chat agent) and prompt management,
// always scoped to the owning user. The ownership lookup here is the
// authorization gate the chat orchestrator relies on.
package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mgarrido/chatforge/pkg/uuid"
)

// ErrNotFound covers both "project does not exist" and "project belongs to
// someone else" — callers must not be able to tell the two apart.
var ErrNotFound = errors.New("project not found or access denied")

// Project is a user-owned agent definition.
type Project struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateInput defines the fields for project creation.
type CreateInput struct {
	UserID      string
	Name        string
	Description string
}

// UpdateInput defines the mutable project fields.
type UpdateInput struct {
	Name        string
	Description string
}

// ListInput defines pagination for project listings.
type ListInput struct {
	Skip  int
	Limit int
}

// Service provides project and prompt operations.
type Service struct {
	db *sql.DB
}

// NewService creates a project Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// Create inserts a new project owned by input.UserID.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Project, error) {
	id := uuid.NewV7().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO project (id, user_id, name, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, id, input.UserID, input.Name, nullString(input.Description), now.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	return s.Find(ctx, id, input.UserID)
}

// Find returns the project only when it exists AND is owned by userID;
// otherwise ErrNotFound. Missing and not-owned are deliberately conflated.
func (s *Service) Find(ctx context.Context, projectID, userID string) (*Project, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, description, created_at
		FROM project
		WHERE id = ? AND user_id = ?
	`, projectID, userID)

	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return p, nil
}

// List returns the user's projects, newest first, with the total count.
func (s *Service) List(ctx context.Context, userID string, input ListInput) ([]*Project, int, error) {
	if input.Limit <= 0 {
		input.Limit = 100
	}

	var total int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM project WHERE user_id = ?", userID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, description, created_at
		FROM project
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, userID, input.Limit, input.Skip)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var projects []*Project
	for rows.Next() {
		p, scanErr := scanProject(rows)
		if scanErr != nil {
			return nil, 0, fmt.Errorf("scan project: %w", scanErr)
		}
		projects = append(projects, p)
	}
	return projects, total, rows.Err()
}

// Update changes name/description of an owned project.
func (s *Service) Update(ctx context.Context, projectID, userID string, input UpdateInput) (*Project, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE project
		SET name = ?, description = ?
		WHERE id = ? AND user_id = ?
	`, input.Name, nullString(input.Description), projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrNotFound
	}
	return s.Find(ctx, projectID, userID)
}

// Delete removes an owned project; prompts, sessions and messages go with
// it via ON DELETE CASCADE.
func (s *Service) Delete(ctx context.Context, projectID, userID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM project WHERE id = ? AND user_id = ?", projectID, userID)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*Project, error) {
	var (
		p         Project
		desc      sql.NullString
		createdAt string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &desc, &createdAt); err != nil {
		return nil, err
	}
	if desc.Valid {
		p.Description = &desc.String
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
