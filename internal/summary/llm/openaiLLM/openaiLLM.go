package openaiLLM

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/customHttpClient"
	"github.com/akolanti/DocSummarizer/internal/summary/llm"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type llmClient struct {
	client    openai.Client
	modelName string
	logger    *logger_i.Logger
}

// NewProvider builds the chat completions provider. The SDK retries are off:
// each chunk gets exactly one attempt.
func NewProvider(cfg config.SummarizerConfig, opts ...option.RequestOption) (llm.Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is not set")
	}
	requestOptions := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(customHttpClient.GetClient(config.LLMConnectionTimeout)),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		requestOptions = append(requestOptions, option.WithBaseURL(cfg.BaseURL))
	}
	requestOptions = append(requestOptions, opts...)

	logger := logger_i.NewLogger("llm_openai")
	logger.Info("OpenAI client created", "model", cfg.Model)
	return &llmClient{
		client:    openai.NewClient(requestOptions...),
		modelName: cfg.Model,
		logger:    logger,
	}, nil
}

func (c *llmClient) Generate(ctx context.Context, systemPrompt string, userContent string, maxTokens int64, temperature float64) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userContent),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	}

	completion, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("no choices returned from OpenAI")
	}
	c.logger.ForContext(ctx).Debug("Completion received", "model", completion.Model, "finishReason", completion.Choices[0].FinishReason)
	return completion.Choices[0].Message.Content, nil
}
