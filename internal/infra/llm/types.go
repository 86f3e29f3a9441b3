// Package llm defines the vendor-agnostic LLM provider abstraction.
// Adapters (OpenAI, OpenRouter, Groq) implement the Provider interface so
// the conversation pipeline is never coupled to a specific vendor.
package llm

// Message roles. Closed set — the message table enforces the same values.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single conversation turn as sent over the wire.
type Message struct {
	Role    string `json:"role"` // "system" | "user" | "assistant"
	Content string `json:"content"`
}

// GenerateOptions override the process-wide generation defaults for one
// call. Zero values mean "use the configured default".
type GenerateOptions struct {
	Model       string
	Temperature float32
	MaxTokens   int
}
