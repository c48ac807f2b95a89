package ai

import (
	"context"
	"errors"

	openai "github.com/sashabaranov/go-openai"

	"trippo/internal/types"
)

const defaultOpenAIModel = openai.GPT3Dot5Turbo

// OpenAIProvider implements Completer with the chat completions API.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

func NewOpenAIProvider(apiKey, model string) *OpenAIProvider {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIProvider{client: openai.NewClient(apiKey), model: model}
}

// Complete sends prompt as a single user message.
func (p *OpenAIProvider) Complete(ctx context.Context, _ types.Session, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}},
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode > 0 && errors.Is(statusErr("openai", apiErr.HTTPStatusCode), ErrRejected) {
			return "", rejectedErr("openai chat completion: %v", err)
		}
		return "", transportErr("openai chat completion: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", transportErr("openai returned empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
