package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mgarrido/chatforge/pkg/uuid"
)

// SessionStore owns session creation/lookup and the append-only message
// log within each session.
type SessionStore struct {
	db *sql.DB
}

// NewSessionStore creates a SessionStore backed by the given DB.
func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// ResolveOrCreate implements the lenient-resume policy: if sessionID names
// a session belonging to projectID it is returned; an empty, unknown, or
// foreign sessionID silently falls through to creating a fresh session.
// This never fails with "not found" — callers detect a recreation by
// comparing the returned id against the one they supplied.
func (s *SessionStore) ResolveOrCreate(ctx context.Context, projectID, sessionID string) (*Session, error) {
	if sessionID != "" {
		sess, err := s.find(ctx, projectID, sessionID)
		if err == nil {
			return sess, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("resolve session: %w", err)
		}
	}

	sess := &Session{
		ID:        uuid.NewV7().String(),
		ProjectID: projectID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_session (id, project_id, created_at)
		VALUES (?, ?, ?)
	`, sess.ID, sess.ProjectID, sess.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *SessionStore) find(ctx context.Context, projectID, sessionID string) (*Session, error) {
	var (
		sess      Session
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, project_id, created_at
		FROM chat_session
		WHERE id = ? AND project_id = ?
	`, sessionID, projectID).Scan(&sess.ID, &sess.ProjectID, &createdAt)
	if err != nil {
		return nil, err
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &sess, nil
}

// FindForUser returns the session only when its parent project is owned by
// userID; otherwise ErrSessionNotFound. Like the project lookup, missing
// and not-owned are conflated.
func (s *SessionStore) FindForUser(ctx context.Context, sessionID, userID string) (*Session, error) {
	var (
		sess      Session
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT cs.id, cs.project_id, cs.created_at
		FROM chat_session cs
		JOIN project p ON p.id = cs.project_id
		WHERE cs.id = ? AND p.user_id = ?
	`, sessionID, userID).Scan(&sess.ID, &sess.ProjectID, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return &sess, nil
}

// ListSessions returns a project's sessions, newest first.
func (s *SessionStore) ListSessions(ctx context.Context, projectID string) ([]*Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, project_id, created_at
		FROM chat_session
		WHERE project_id = ?
		ORDER BY created_at DESC, id DESC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var sessions []*Session
	for rows.Next() {
		var (
			sess      Session
			createdAt string
		)
		if err := rows.Scan(&sess.ID, &sess.ProjectID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		sessions = append(sessions, &sess)
	}
	return sessions, rows.Err()
}

// AppendMessage appends one immutable message, timestamped at append time,
// and makes it durable before returning. Each call is a single atomic
// insert; concurrent appends to the same session interleave by timestamp,
// they are never merged or reordered.
func (s *SessionStore) AppendMessage(ctx context.Context, sessionID, role, content string) (*Message, error) {
	msg := &Message{
		ID:        uuid.NewV7().String(),
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO message (id, session_id, role, content, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, msg.ID, msg.SessionID, msg.Role, msg.Content, msg.Timestamp.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return msg, nil
}

// ListMessages returns a session's messages in ascending timestamp order,
// optionally filtering out the given roles. Always a fresh read — message
// history is never cached on the Session value.
func (s *SessionStore) ListMessages(ctx context.Context, sessionID string, excludeRoles ...string) ([]*Message, error) {
	query := `
		SELECT id, session_id, role, content, timestamp
		FROM message
		WHERE session_id = ?`
	args := []any{sessionID}

	if len(excludeRoles) > 0 {
		query += " AND role NOT IN (?" + strings.Repeat(", ?", len(excludeRoles)-1) + ")"
		for _, r := range excludeRoles {
			args = append(args, r)
		}
	}
	query += " ORDER BY timestamp ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var messages []*Message
	for rows.Next() {
		var (
			msg Message
			ts  string
		)
		if err := rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &ts); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
		messages = append(messages, &msg)
	}
	return messages, rows.Err()
}
