package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trippo/internal/types"
)

// proxyClient is shared by every proxy request; the timeout guards against stalled connections
// while context cancellation is still honoured via NewRequestWithContext.
var proxyClient = &http.Client{Timeout: 60 * time.Second}

type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ProxyProvider posts chat-completion shaped requests to a hosted endpoint that holds the
// real provider credentials. The caller's session token is forwarded as the bearer.
type ProxyProvider struct {
	url    string
	model  string
	client *http.Client
}

func NewProxyProvider(url, model string) *ProxyProvider {
	return &ProxyProvider{url: url, model: model, client: proxyClient}
}

func (p *ProxyProvider) Complete(ctx context.Context, session types.Session, prompt string) (string, error) {
	if strings.TrimSpace(session.Token) == "" {
		return "", rejectedErr("proxy: missing session token")
	}
	reqBody, err := json.Marshal(chatRequest{
		Model:       p.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("proxy: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("proxy: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+session.Token)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", transportErr("proxy: do request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportErr("proxy: read response: %v", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", statusErr("proxy", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", transportErr("proxy: unmarshal response: %v", err)
	}
	if cr.Error != nil {
		return "", transportErr("proxy: api error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", transportErr("proxy: empty choices array")
	}
	return cr.Choices[0].Message.Content, nil
}
