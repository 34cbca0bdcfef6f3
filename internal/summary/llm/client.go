package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
	"github.com/akolanti/DocSummarizer/internal/metrics"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
)

const (
	callChunkSummary = "chunk_summary"
	callShortSummary = "short_summary"
	callSearch       = "search"
)

// Client issues the three prompt shapes the pipeline needs. A failed call is
// logged and replaced by a fixed placeholder, it never returns an error.
type Client struct {
	provider Provider
	cfg      config.SummarizerConfig
	logger   *logger_i.Logger
}

func NewClient(provider Provider, cfg config.SummarizerConfig) *Client {
	return &Client{
		provider: provider,
		cfg:      cfg,
		logger:   logger_i.NewLogger("Summarization Client"),
	}
}

func (c *Client) SummarizeChunk(ctx context.Context, chunk string) string {
	p := c.cfg.Prompts
	return c.generate(ctx, callChunkSummary, p.ChunkSystem, p.ChunkPrefix+chunk,
		c.cfg.ChunkMaxTokens, commonModels.ChunkSummaryFallback)
}

func (c *Client) ShortSummary(ctx context.Context, fullSummary string) string {
	p := c.cfg.Prompts
	return c.generate(ctx, callShortSummary, p.ShortSystem, p.ShortPrefix+fullSummary,
		c.cfg.ShortMaxTokens, commonModels.ShortSummaryFallback)
}

func (c *Client) Search(ctx context.Context, text string, query string) string {
	p := c.cfg.Prompts
	return c.generate(ctx, callSearch, p.SearchSystem, fmt.Sprintf(p.SearchTemplate, query, text),
		c.cfg.SearchMaxTokens, commonModels.SearchFallback)
}

func (c *Client) generate(ctx context.Context, call string, system string, content string, maxTokens int64, fallback string) string {
	log := c.logger.ForContext(ctx)

	callCtx := ctx
	if c.cfg.CallTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.cfg.CallTimeout)
		defer cancel()
	}

	start := time.Now()
	out, err := c.provider.Generate(callCtx, system, content, maxTokens, c.cfg.Temperature)
	metrics.CaptureExecutionMetrics("llm_"+call, time.Since(start))

	if err == nil && strings.TrimSpace(out) == "" {
		err = errors.New("empty completion")
	}
	if err != nil {
		sumErr := &commonModels.SummarizationError{Call: call, Err: err}
		log.Error("Remote generation failed, using placeholder", "error", sumErr, "contentLength", len(content))
		metrics.IncrementSummarizationFallback(call)
		return fallback
	}
	return strings.TrimSpace(out)
}
