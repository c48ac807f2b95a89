package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"trippo/internal/types"
)

// Sampling settings shared by every provider: moderate creativity, bounded output.
const (
	Temperature = 0.7
	MaxTokens   = 2000
)

var (
	// ErrTransport marks failures where the completion call itself did not succeed
	// and sending it again may help.
	ErrTransport = errors.New("completion transport error")
	// ErrRejected marks calls the provider refused (bad credentials, malformed request).
	// Repeating them cannot succeed.
	ErrRejected = errors.New("completion request rejected")
)

// Completer sends a single prompt to a text-generation service and returns the raw reply.
// This interface allows for swapping providers (OpenAI, Gemini, a hosted proxy) per deployment.
type Completer interface {
	Complete(ctx context.Context, session types.Session, prompt string) (string, error)
}

// Settings selects and configures a provider.
type Settings struct {
	Provider string
	APIKey   string
	Model    string
	ProxyURL string
}

// New builds the Completer named by s.Provider.
func New(ctx context.Context, s Settings) (Completer, error) {
	switch s.Provider {
	case "openai":
		return NewOpenAIProvider(s.APIKey, s.Model), nil
	case "gemini":
		return NewGeminiProvider(ctx, s.APIKey, s.Model)
	case "proxy":
		return NewProxyProvider(s.ProxyURL, s.Model), nil
	default:
		return nil, fmt.Errorf("unsupported completion provider %q: use openai, gemini or proxy", s.Provider)
	}
}

func transportErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrTransport, fmt.Sprintf(format, args...))
}

func rejectedErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrRejected, fmt.Sprintf(format, args...))
}

// statusErr classifies a failed HTTP status: timeouts, rate limits and 5xx are transient.
func statusErr(provider string, status int) error {
	if status == http.StatusRequestTimeout || status == http.StatusTooManyRequests || status >= http.StatusInternalServerError {
		return transportErr("%s: status %d", provider, status)
	}
	return rejectedErr("%s: status %d", provider, status)
}
