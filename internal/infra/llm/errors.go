package llm

import "fmt"

// ErrorKind classifies provider failures.
type ErrorKind string

// Provider failure kinds.
const (
	ErrKindTimeout   ErrorKind = "timeout"   // request deadline exceeded
	ErrKindTransport ErrorKind = "transport" // connection-level failure
	ErrKindHTTP      ErrorKind = "http"      // non-2xx response
	ErrKindMalformed ErrorKind = "malformed" // 2xx but response shape unusable
)

// ProviderError is the single error type the adapters fail with. The
// orchestrator absorbs it into a degraded assistant reply; everything it
// needs for the user-visible cause is carried here.
type ProviderError struct {
	Provider string    // "openai" | "openrouter" | "groq"
	Kind     ErrorKind
	Status   int    // HTTP status, for ErrKindHTTP
	Body     string // response body, for ErrKindHTTP
	Field    string // missing/invalid field, for ErrKindMalformed
	cause    error
}

func (e *ProviderError) Error() string {
	switch e.Kind {
	case ErrKindTimeout:
		return fmt.Sprintf("%s API timeout: %v", e.Provider, e.cause)
	case ErrKindHTTP:
		return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.Status, e.Body)
	case ErrKindMalformed:
		return fmt.Sprintf("unexpected %s API response format: missing %s", e.Provider, e.Field)
	default:
		return fmt.Sprintf("unexpected error calling %s: %v", e.Provider, e.cause)
	}
}

func (e *ProviderError) Unwrap() error { return e.cause }

func timeoutError(provider string, cause error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: ErrKindTimeout, cause: cause}
}

func transportError(provider string, cause error) *ProviderError {
	return &ProviderError{Provider: provider, Kind: ErrKindTransport, cause: cause}
}

func httpError(provider string, status int, body string) *ProviderError {
	return &ProviderError{Provider: provider, Kind: ErrKindHTTP, Status: status, Body: body}
}

func malformedError(provider, field string) *ProviderError {
	return &ProviderError{Provider: provider, Kind: ErrKindMalformed, Field: field}
}
