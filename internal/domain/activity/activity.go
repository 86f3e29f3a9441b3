// Package activity provides the append-only activity log. Auth and chat
// publish entries on the event bus; the Recorder consumes them off the
// request path and persists them. Entries are never updated or deleted.
package activity

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mgarrido/chatforge/internal/infra/eventbus"
	"github.com/mgarrido/chatforge/pkg/uuid"
)

// Event bus topics carrying activity entries.
const (
	TopicAuth     = "auth.event"
	TopicChatTurn = "chat.turn"
)

// Entry is the payload published on the bus and persisted by the Recorder.
type Entry struct {
	UserID     string
	Action     string // e.g. "register", "login", "chat.turn"
	EntityType string // optional: "project", "session"
	EntityID   string // optional
	Detail     string // optional free text
}

// Event is a persisted activity entry.
type Event struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Action     string    `json:"action"`
	EntityType *string   `json:"entity_type,omitempty"`
	EntityID   *string   `json:"entity_id,omitempty"`
	Detail     *string   `json:"detail,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Recorder persists activity entries.
type Recorder struct {
	db *sql.DB
}

// NewRecorder creates a Recorder backed by the given DB.
func NewRecorder(db *sql.DB) *Recorder {
	return &Recorder{db: db}
}

// Record appends one activity event.
func (r *Recorder) Record(ctx context.Context, e Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_event (id, user_id, action, entity_type, entity_id, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.NewV7().String(), e.UserID, e.Action,
		nullString(e.EntityType), nullString(e.EntityID), nullString(e.Detail),
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// Start consumes activity topics from the bus until ctx is cancelled.
// Intended to run in its own goroutine. Persistence failures are dropped:
// the activity log is best-effort and must never fail a request.
func (r *Recorder) Start(ctx context.Context, bus eventbus.EventBus) {
	authCh := bus.Subscribe(TopicAuth)
	chatCh := bus.Subscribe(TopicChatTurn)

	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-authCh:
			r.consume(ctx, evt)
		case evt := <-chatCh:
			r.consume(ctx, evt)
		}
	}
}

func (r *Recorder) consume(ctx context.Context, evt eventbus.Event) {
	entry, ok := evt.Payload.(Entry)
	if !ok {
		return
	}
	_ = r.Record(ctx, entry)
}

// ListByUser returns the most recent events for a user, newest first.
func (r *Recorder) ListByUser(ctx context.Context, userID string, limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, action, entity_type, entity_id, detail, created_at
		FROM activity_event
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var events []*Event
	for rows.Next() {
		var (
			e         Event
			et, ei, d sql.NullString
			createdAt string
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &et, &ei, &d, &createdAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		e.EntityType = nullStringPtr(et)
		e.EntityID = nullStringPtr(ei)
		e.Detail = nullStringPtr(d)
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		events = append(events, &e)
	}
	return events, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
