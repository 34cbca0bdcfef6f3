package gemini

import (
	"context"
	"errors"
	"fmt"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/customHttpClient"
	"github.com/akolanti/DocSummarizer/internal/summary/llm"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
	logger    *logger_i.Logger
}

func NewProvider(ctx context.Context, cfg config.SummarizerConfig) (llm.Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini api key is not set")
	}
	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: customHttpClient.GetClient(config.LLMConnectionTimeout),
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	c, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	logger := logger_i.NewLogger("llm_gemini")
	logger.Info("Gemini client created", "model", cfg.Model)
	return &llmClient{client: c, modelName: cfg.Model, logger: logger}, nil
}

func (c *llmClient) Generate(ctx context.Context, systemPrompt string, userContent string, maxTokens int64, temperature float64) (string, error) {
	contentConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemPrompt}},
		},
		MaxOutputTokens: int32(maxTokens),
		Temperature:     genai.Ptr(float32(temperature)),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(userContent), contentConfig)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 {
		return "", errors.New("no candidates returned from Gemini")
	}
	return result.Text(), nil
}
