// Package chat implements the conversation pipeline: session storage,
// context assembly, and the orchestrator that ties ownership checks,
// provider dispatch, and persistence together.
package chat

import (
	"errors"
	"time"
)

// ErrSessionNotFound covers both "session does not exist" and "session
// belongs to someone else's project".
var ErrSessionNotFound = errors.New("session not found or access denied")

// Session is a durable conversation thread scoped to one project.
type Session struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Message is one immutable turn in a session's append-only log. Messages
// within a session are totally ordered by Timestamp (id breaks ties) and
// replayed into model context in that order.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"` // llm.RoleSystem | llm.RoleUser | llm.RoleAssistant
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
