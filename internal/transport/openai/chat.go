package openai

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/kaverma/forumdex/internal/domain"
)

// ChatClient generates answer text via the chat-completions API.
type ChatClient struct {
	client    *openai.Client
	model     string
	maxTokens int
	logger    *zap.Logger
}

// ChatConfig holds the chat provider settings.
type ChatConfig struct {
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	Logger    *zap.Logger
}

// NewChatClient creates an OpenAI-compatible chat-completion client.
func NewChatClient(cfg *ChatConfig) *ChatClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &ChatClient{
		client:    openai.NewClientWithConfig(clientCfg),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
		logger:    cfg.Logger,
	}
}

// Complete sends a system+user prompt pair and returns the completion text.
// All errors are wrapped with domain.ErrAnswerProviderError for correct 502 mapping.
func (c *ChatClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", parseChatError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrAnswerProviderError)
	}

	return resp.Choices[0].Message.Content, nil
}

func parseChatError(err error) error {
	wrap := domain.ErrAnswerProviderError

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("chat API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("chat API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("chat request failed: %w", wrap)
}
