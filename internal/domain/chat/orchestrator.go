package chat

import (
	"context"
	"fmt"

	"github.com/mgarrido/chatforge/internal/domain/activity"
	"github.com/mgarrido/chatforge/internal/domain/project"
	"github.com/mgarrido/chatforge/internal/infra/eventbus"
	"github.com/mgarrido/chatforge/internal/infra/llm"
)

// ProjectFinder is the ownership gate the orchestrator uses. It must
// return project.ErrNotFound for both missing and not-owned projects.
type ProjectFinder interface {
	Find(ctx context.Context, projectID, userID string) (*project.Project, error)
}

// Turn is the result of one completed conversation turn.
type Turn struct {
	Session          *Session
	UserMessage      *Message
	AssistantMessage *Message
}

// Orchestrator coordinates one conversation turn end to end: ownership
// check, session resolution, context assembly, provider dispatch, and
// persistence of both sides of the exchange.
type Orchestrator struct {
	projects  ProjectFinder
	sessions  *SessionStore
	assembler *Assembler
	provider  llm.Provider
	bus       eventbus.EventBus // optional
}

// NewOrchestrator creates an Orchestrator. The provider variant was
// selected once at startup by llm.New; it is never chosen per call.
func NewOrchestrator(projects ProjectFinder, sessions *SessionStore, assembler *Assembler, provider llm.Provider) *Orchestrator {
	return &Orchestrator{projects: projects, sessions: sessions, assembler: assembler, provider: provider}
}

// NewOrchestratorWithBus additionally publishes a chat.turn activity entry
// after each completed turn.
func NewOrchestratorWithBus(projects ProjectFinder, sessions *SessionStore, assembler *Assembler, provider llm.Provider, bus eventbus.EventBus) *Orchestrator {
	return &Orchestrator{projects: projects, sessions: sessions, assembler: assembler, provider: provider, bus: bus}
}

// GenerateResponse runs one conversation turn and returns the session plus
// the two messages it appended.
//
// Provider failure is contained, not propagated: any Generate error is
// converted into an assistant message stating the error, persisted and
// returned exactly like a genuine reply. Only ownership failures
// (project.ErrNotFound) and persistence failures escape as errors.
//
// The user message is made durable before dispatch, so a provider timeout
// or a later persistence failure never loses what the user said.
func (o *Orchestrator) GenerateResponse(ctx context.Context, projectID, userID, userText, sessionID string) (*Turn, error) {
	proj, err := o.projects.Find(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}

	session, err := o.sessions.ResolveOrCreate(ctx, projectID, sessionID)
	if err != nil {
		return nil, err
	}

	// Assemble against the pre-append state: the new user turn is part
	// of the assembled list but not yet a persisted message.
	messages, err := o.assembler.Build(ctx, proj, session, userText)
	if err != nil {
		return nil, err
	}

	userMsg, err := o.sessions.AppendMessage(ctx, session.ID, llm.RoleUser, userText)
	if err != nil {
		return nil, err
	}

	content, genErr := o.provider.Generate(ctx, messages, llm.GenerateOptions{})
	if genErr != nil {
		content = fmt.Sprintf("I apologize, but I encountered an error: %s", genErr.Error())
	}

	assistantMsg, err := o.sessions.AppendMessage(ctx, session.ID, llm.RoleAssistant, content)
	if err != nil {
		return nil, err
	}

	o.publishTurn(userID, proj.ID, session.ID)

	return &Turn{Session: session, UserMessage: userMsg, AssistantMessage: assistantMsg}, nil
}

func (o *Orchestrator) publishTurn(userID, projectID, sessionID string) {
	if o.bus == nil {
		return
	}
	o.bus.Publish(activity.TopicChatTurn, activity.Entry{
		UserID:     userID,
		Action:     "chat.turn",
		EntityType: "project",
		EntityID:   projectID,
		Detail:     "session " + sessionID,
	})
}
