package chat

import (
	"context"
	"fmt"

	"github.com/mgarrido/chatforge/internal/domain/project"
	"github.com/mgarrido/chatforge/internal/infra/llm"
)

// PromptSource is what the assembler needs from the project domain.
type PromptSource interface {
	ListPromptsByProject(ctx context.Context, projectID string) ([]*project.Prompt, error)
}

// HistorySource is what the assembler needs from the session store.
type HistorySource interface {
	ListMessages(ctx context.Context, sessionID string, excludeRoles ...string) ([]*Message, error)
}

// Assembler deterministically reconstructs the canonical ordered message
// list for one conversation turn. The sequence is always
//
//	[system prompts or default] ++ [prior non-system turns] ++ [new user turn]
//
// and is rebuilt fresh on every call — never cached — so prompt edits
// affect only future turns.
type Assembler struct {
	prompts PromptSource
	history HistorySource
}

// NewAssembler creates an Assembler.
func NewAssembler(prompts PromptSource, history HistorySource) *Assembler {
	return &Assembler{prompts: prompts, history: history}
}

// Build returns the provider-agnostic message list for the given project,
// session and new user text. Both reads hit the store directly: associated
// collections are never assumed to be materialized on the entities.
func (a *Assembler) Build(ctx context.Context, proj *project.Project, session *Session, userText string) ([]llm.Message, error) {
	prompts, err := a.prompts.ListPromptsByProject(ctx, proj.ID)
	if err != nil {
		return nil, fmt.Errorf("assemble context: %w", err)
	}

	var messages []llm.Message

	// One system entry per prompt, creation order, content verbatim.
	// With zero prompts a single synthesized default takes their place;
	// the two paths are mutually exclusive.
	for _, p := range prompts {
		messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: p.Content})
	}
	if len(prompts) == 0 {
		messages = append(messages, llm.Message{
			Role:    llm.RoleSystem,
			Content: fmt.Sprintf("You are a helpful assistant for %s.", proj.Name),
		})
	}

	// Prior turns, chronological, excluding system entries: those are
	// re-derived from prompts above, never replayed from history.
	history, err := a.history.ListMessages(ctx, session.ID, llm.RoleSystem)
	if err != nil {
		return nil, fmt.Errorf("assemble context: %w", err)
	}
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userText})
	return messages, nil
}
