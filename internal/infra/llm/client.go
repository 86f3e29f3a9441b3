// Shared HTTP core for the chat-completions adapters. All three supported
// vendors speak the same wire dialect: POST {model, messages, temperature,
// max_tokens} to <base>/chat/completions with bearer auth, reply text at
// choices[0].message.content. The adapters differ only in base URL,
// credential, extra headers and default model, so they wrap this client.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	mimeJSON            = "application/json"

	// validateTimeout bounds ValidateConnection independently of the
	// configured generation timeout.
	validateTimeout = 5 * time.Second
)

// chatClient implements Provider against an OpenAI-compatible endpoint.
type chatClient struct {
	provider string // vendor name used in error messages
	baseURL  string
	apiKey   string
	headers  map[string]string // extra vendor headers, may be nil

	model       string
	temperature float32
	maxTokens   int

	httpClient *http.Client
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Generate performs a non-streaming chat completion.
func (c *chatClient) Generate(ctx context.Context, messages []Message, opts GenerateOptions) (string, error) {
	model := opts.Model
	if model == "" {
		model = c.model
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	body, err := json.Marshal(chatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", transportError(c.provider, fmt.Errorf("marshal request: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", transportError(c.provider, fmt.Errorf("build request: %w", err))
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", timeoutError(c.provider, err)
		}
		return "", transportError(c.provider, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(c.provider, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", httpError(c.provider, resp.StatusCode, string(respBody))
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", malformedError(c.provider, "valid JSON body")
	}
	if len(parsed.Choices) == 0 {
		return "", malformedError(c.provider, "choices[0]")
	}

	// Null content on a successful response is a valid empty reply,
	// not an error.
	content := parsed.Choices[0].Message.Content
	if content == nil {
		return "", nil
	}
	return *content, nil
}

// ValidateConnection lists the vendor's models as a minimal authenticated
// probe. Any failure — including timeout — reduces to false.
func (c *chatClient) ValidateConnection(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return false
	}
	req.Header.Set(headerAuthorization, "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close() //nolint:errcheck

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (c *chatClient) setHeaders(req *http.Request) {
	req.Header.Set(headerContentType, mimeJSON)
	req.Header.Set(headerAuthorization, "Bearer "+c.apiKey)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
}

// isTimeout reports whether err is a deadline/timeout failure rather than
// a generic transport error.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}
