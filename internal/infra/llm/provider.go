package llm

import "context"

// Provider is the uniform contract every vendor adapter implements.
//
// Generate translates the canonical ordered message list into the vendor
// request shape, dispatches it, and returns the assistant text. A response
// that succeeds but carries null/empty content yields "" with a nil error;
// every failure (timeout, non-2xx, malformed payload) is a *ProviderError.
//
// ValidateConnection performs a minimal authenticated call with a short
// fixed timeout and reduces any failure to false — it never surfaces
// provider errors.
type Provider interface {
	Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error)
	ValidateConnection(ctx context.Context) bool
}
