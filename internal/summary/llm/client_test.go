package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
)

type generateCall struct {
	system      string
	content     string
	maxTokens   int64
	temperature float64
}

type MockProvider struct {
	OnGenerate func(ctx context.Context, system, content string, maxTokens int64, temperature float64) (string, error)
	calls      []generateCall
}

func (m *MockProvider) Generate(ctx context.Context, system, content string, maxTokens int64, temperature float64) (string, error) {
	m.calls = append(m.calls, generateCall{system, content, maxTokens, temperature})
	if m.OnGenerate != nil {
		return m.OnGenerate(ctx, system, content, maxTokens, temperature)
	}
	return "mocked response", nil
}

func TestClient_CallShapes(t *testing.T) {
	cfg := config.Default().Summarizer
	tests := []struct {
		name        string
		call        func(c *Client) string
		wantSystem  string
		wantContent string
		wantTokens  int64
	}{
		{
			name:        "Chunk_Summary",
			call:        func(c *Client) string { return c.SummarizeChunk(context.Background(), "chunk text") },
			wantSystem:  "You are a helpful assistant that summarizes legal documents.",
			wantContent: "Summarize this legal document:\n\nchunk text",
			wantTokens:  500,
		},
		{
			name:        "Short_Summary",
			call:        func(c *Client) string { return c.ShortSummary(context.Background(), "full summary") },
			wantSystem:  "You are a helpful assistant that provides concise summaries.",
			wantContent: "Provide a one-line summary of this text:\n\nfull summary",
			wantTokens:  50,
		},
		{
			name:        "Search",
			call:        func(c *Client) string { return c.Search(context.Background(), "doc text", "rent") },
			wantSystem:  "You are a helpful assistant for searching documents.",
			wantContent: "Search the following document for this text: 'rent' and provide related information:\n\ndoc text",
			wantTokens:  1000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := &MockProvider{
				OnGenerate: func(ctx context.Context, s, c string, n int64, temp float64) (string, error) {
					return "\n  generated text \t", nil
				},
			}
			client := NewClient(mock, cfg)

			if got := tt.call(client); got != "generated text" {
				t.Errorf("output not trimmed: %q", got)
			}
			if len(mock.calls) != 1 {
				t.Fatalf("expected 1 call, got %d", len(mock.calls))
			}
			call := mock.calls[0]
			if call.system != tt.wantSystem {
				t.Errorf("system = %q, want %q", call.system, tt.wantSystem)
			}
			if call.content != tt.wantContent {
				t.Errorf("content = %q, want %q", call.content, tt.wantContent)
			}
			if call.maxTokens != tt.wantTokens {
				t.Errorf("maxTokens = %d, want %d", call.maxTokens, tt.wantTokens)
			}
			if call.temperature != 0.5 {
				t.Errorf("temperature = %v, want 0.5", call.temperature)
			}
		})
	}
}

func TestClient_FallbackOnError(t *testing.T) {
	failing := &MockProvider{
		OnGenerate: func(ctx context.Context, s, c string, n int64, temp float64) (string, error) {
			return "", errors.New("401 unauthorized")
		},
	}
	client := NewClient(failing, config.Default().Summarizer)
	ctx := context.Background()

	if got := client.SummarizeChunk(ctx, "x"); got != commonModels.ChunkSummaryFallback {
		t.Errorf("chunk fallback = %q", got)
	}
	if got := client.ShortSummary(ctx, "x"); got != commonModels.ShortSummaryFallback {
		t.Errorf("short fallback = %q", got)
	}
	if got := client.Search(ctx, "x", "q"); got != commonModels.SearchFallback {
		t.Errorf("search fallback = %q", got)
	}
}

func TestClient_EmptyCompletionFallsBack(t *testing.T) {
	blank := &MockProvider{
		OnGenerate: func(ctx context.Context, s, c string, n int64, temp float64) (string, error) {
			return "   ", nil
		},
	}
	client := NewClient(blank, config.Default().Summarizer)
	if got := client.SummarizeChunk(context.Background(), "x"); got != commonModels.ChunkSummaryFallback {
		t.Errorf("expected fallback for blank completion, got %q", got)
	}
}

func TestClient_CallTimeout(t *testing.T) {
	cfg := config.Default().Summarizer
	cfg.CallTimeout = 20 * time.Millisecond

	slow := &MockProvider{
		OnGenerate: func(ctx context.Context, s, c string, n int64, temp float64) (string, error) {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(2 * time.Second):
				return "too late", nil
			}
		},
	}
	client := NewClient(slow, cfg)

	start := time.Now()
	got := client.SummarizeChunk(context.Background(), "x")
	if got != commonModels.ChunkSummaryFallback {
		t.Errorf("expected fallback after timeout, got %q", got)
	}
	if time.Since(start) > time.Second {
		t.Error("call timeout was not applied")
	}
}

func TestClient_CustomPrompts(t *testing.T) {
	cfg := config.Default().Summarizer
	cfg.Prompts.ChunkSystem = "You are a generic assistant."
	cfg.Prompts.ChunkPrefix = ""

	mock := &MockProvider{}
	NewClient(mock, cfg).SummarizeChunk(context.Background(), "raw")

	if mock.calls[0].system != "You are a generic assistant." || !strings.HasPrefix(mock.calls[0].content, "raw") {
		t.Errorf("custom prompts not used: %+v", mock.calls[0])
	}
}
