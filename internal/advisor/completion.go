package advisor

import (
	"context"
	"fmt"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"

	"github.com/stratfolio/stratfolio/internal/config"
	"github.com/stratfolio/stratfolio/internal/inference"
)

// Usage reports token consumption for a single completion.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Completer issues a single system+user completion against an LLM provider.
type Completer interface {
	Complete(ctx context.Context, operation, systemPrompt, userPrompt string) (string, Usage, error)
}

// NewCompleter builds a Completer for the configured provider.
func NewCompleter(cfg config.LLMConfig, inferenceLogger *inference.Logger) (Completer, error) {
	switch cfg.Provider {
	case "openai":
		return &OpenAICompleter{cfg: cfg, inferenceLogger: inferenceLogger}, nil
	case "anthropic":
		return &AnthropicCompleter{cfg: cfg, inferenceLogger: inferenceLogger}, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

// OpenAICompleter calls the OpenAI chat completions API.
type OpenAICompleter struct {
	cfg             config.LLMConfig
	inferenceLogger *inference.Logger
}

func (c *OpenAICompleter) Complete(ctx context.Context, operation, systemPrompt, userPrompt string) (string, Usage, error) {
	client := openai.NewClient(c.cfg.APIKey)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	startTime := time.Now()
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	latency := time.Since(startTime)

	if c.inferenceLogger != nil {
		usage := struct {
			PromptTokens     int
			CompletionTokens int
			TotalTokens      int
		}{}
		if err == nil {
			usage.PromptTokens = resp.Usage.PromptTokens
			usage.CompletionTokens = resp.Usage.CompletionTokens
			usage.TotalTokens = resp.Usage.TotalTokens
		}
		c.inferenceLogger.LogOpenAICall(ctx, c.cfg.Model, operation, usage, latency, err, nil)
	}

	if err != nil {
		return "", Usage{}, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", Usage{}, fmt.Errorf("no response from openai")
	}

	usage := Usage{
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}

	return resp.Choices[0].Message.Content, usage, nil
}

// AnthropicCompleter calls the Anthropic messages API.
type AnthropicCompleter struct {
	cfg             config.LLMConfig
	inferenceLogger *inference.Logger
}

func (c *AnthropicCompleter) Complete(ctx context.Context, operation, systemPrompt, userPrompt string) (string, Usage, error) {
	client := anthropic.NewClient(option.WithAPIKey(c.cfg.APIKey))

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   int64(c.cfg.MaxTokens),
		Temperature: anthropic.Float(float64(c.cfg.Temperature)),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	startTime := time.Now()
	message, err := client.Messages.New(ctx, req)
	latency := time.Since(startTime)

	if c.inferenceLogger != nil {
		usage := struct {
			InputTokens  int
			OutputTokens int
		}{}
		if err == nil {
			usage.InputTokens = int(message.Usage.InputTokens)
			usage.OutputTokens = int(message.Usage.OutputTokens)
		}
		c.inferenceLogger.LogAnthropicCall(ctx, c.cfg.Model, operation, usage, latency, err, nil)
	}

	if err != nil {
		return "", Usage{}, fmt.Errorf("anthropic api error: %w", err)
	}

	if len(message.Content) == 0 {
		return "", Usage{}, fmt.Errorf("no response from anthropic")
	}

	usage := Usage{
		InputTokens:  int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
		TotalTokens:  int(message.Usage.InputTokens + message.Usage.OutputTokens),
	}

	return message.Content[0].Text, usage, nil
}
