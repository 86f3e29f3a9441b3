package project

import (
	"context"
	"fmt"
	"time"

	"github.com/mgarrido/chatforge/pkg/uuid"
)

// Prompt is one ordered system instruction attached to a project. Prompt
// order is creation order and it is semantically significant: it becomes
// message order at the start of every conversation turn.
type Prompt struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePrompt appends a prompt to an owned project.
func (s *Service) CreatePrompt(ctx context.Context, projectID, userID, content string) (*Prompt, error) {
	if _, err := s.Find(ctx, projectID, userID); err != nil {
		return nil, err
	}

	p := &Prompt{
		ID:        uuid.NewV7().String(),
		ProjectID: projectID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO prompt (id, project_id, content, created_at)
		VALUES (?, ?, ?, ?)
	`, p.ID, p.ProjectID, p.Content, p.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("create prompt: %w", err)
	}
	return p, nil
}

// ListPrompts returns an owned project's prompts in creation order, with
// the total count.
func (s *Service) ListPrompts(ctx context.Context, projectID, userID string) ([]*Prompt, int, error) {
	if _, err := s.Find(ctx, projectID, userID); err != nil {
		return nil, 0, err
	}
	prompts, err := s.ListPromptsByProject(ctx, projectID)
	if err != nil {
		return nil, 0, err
	}
	return prompts, len(prompts), nil
}

// ListPromptsByProject returns a project's prompts ascending by creation
// time without an ownership check. The context assembler calls this after
// the orchestrator has already verified ownership.
func (s *Service) ListPromptsByProject(ctx context.Context, projectID string) ([]*Prompt, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, content, created_at
		FROM prompt
		WHERE project_id = ?
		ORDER BY created_at ASC, id ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list prompts: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var prompts []*Prompt
	for rows.Next() {
		var (
			p         Prompt
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.ProjectID, &p.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan prompt: %w", err)
		}
		p.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		prompts = append(prompts, &p)
	}
	return prompts, rows.Err()
}

// DeletePrompt removes a prompt, verifying ownership through the parent
// project in one statement.
func (s *Service) DeletePrompt(ctx context.Context, promptID, userID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM prompt
		WHERE id = ? AND project_id IN (SELECT id FROM project WHERE user_id = ?)
	`, promptID, userID)
	if err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
