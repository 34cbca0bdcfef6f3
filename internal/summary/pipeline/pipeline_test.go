package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
	"github.com/akolanti/DocSummarizer/internal/summary/llm"
)

// MockExtractor reads the stored file back, so document content is the text.
type MockExtractor struct {
	OnExtract func(ctx context.Context, path string) (string, error)

	mu    sync.Mutex
	paths []string
}

func (m *MockExtractor) Extract(ctx context.Context, path string) (string, error) {
	m.mu.Lock()
	m.paths = append(m.paths, path)
	m.mu.Unlock()
	if m.OnExtract != nil {
		return m.OnExtract(ctx, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if strings.HasPrefix(string(data), "%CORRUPT") {
		return "", &commonModels.ExtractionError{Path: path, Err: errors.New("malformed xref")}
	}
	return string(data), nil
}

type MockProvider struct {
	OnGenerate func(system, content string) (string, error)

	mu       sync.Mutex
	contents []string
}

func (m *MockProvider) Generate(ctx context.Context, system, content string, maxTokens int64, temperature float64) (string, error) {
	m.mu.Lock()
	m.contents = append(m.contents, content)
	m.mu.Unlock()
	if m.OnGenerate != nil {
		return m.OnGenerate(system, content)
	}
	return echoSummary(system, content), nil
}

func (m *MockProvider) chunkCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for _, c := range m.contents {
		if strings.HasPrefix(c, config.ChunkUserPrefix) {
			out = append(out, strings.TrimPrefix(c, config.ChunkUserPrefix))
		}
	}
	return out
}

// echoSummary is deterministic: the chunk summary is the first word of the
// chunk, the short summary is a fixed line.
func echoSummary(system, content string) string {
	if system == config.ShortSystemPrompt {
		return "one line"
	}
	body := strings.TrimPrefix(content, config.ChunkUserPrefix)
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return "empty"
	}
	return fields[0]
}

func newTestService(t *testing.T, provider llm.Provider, extractor *MockExtractor) (Service, config.Config) {
	t.Helper()
	cfg := config.Default()
	cfg.Pipeline.UploadDir = t.TempDir()
	return NewService(extractor, llm.NewClient(provider, cfg.Summarizer), cfg), cfg
}

func assertUploadDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("upload dir not cleaned, %d entries left", len(entries))
	}
}

func TestProcessFile_Success(t *testing.T) {
	extractor := &MockExtractor{}
	svc, cfg := newTestService(t, &MockProvider{}, extractor)

	result := svc.ProcessFile(context.Background(), commonModels.NewDocumentFromBytes("my lease.txt", []byte("Tenant pays rent monthly.")))

	if result.Filename != "my_lease.txt" {
		t.Errorf("filename = %q", result.Filename)
	}
	if result.FullSummary != "Tenant" {
		t.Errorf("full summary = %q", result.FullSummary)
	}
	if result.ShortSummary != "one line" {
		t.Errorf("short summary = %q", result.ShortSummary)
	}
	for _, p := range extractor.paths {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("temp file %s still exists", p)
		}
	}
	assertUploadDirEmpty(t, cfg.Pipeline.UploadDir)
}

func TestProcessFile_Idempotent(t *testing.T) {
	svc, _ := newTestService(t, &MockProvider{}, &MockExtractor{})
	doc := commonModels.NewDocumentFromBytes("a.txt", []byte("Landlord repairs the roof."))

	first := svc.ProcessFile(context.Background(), doc)
	second := svc.ProcessFile(context.Background(), doc)
	if first != second {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}

func TestProcessFile_NoExtractableText(t *testing.T) {
	provider := &MockProvider{}
	svc, _ := newTestService(t, provider, &MockExtractor{})

	result := svc.ProcessFile(context.Background(), commonModels.NewDocumentFromBytes("scan.pdf", nil))
	if result.FullSummary != "" || result.ShortSummary != "one line" {
		t.Errorf("unexpected result %+v", result)
	}
	if calls := provider.chunkCalls(); len(calls) != 0 {
		t.Errorf("expected no chunk calls, got %d", len(calls))
	}
	if len(provider.contents) != 1 || provider.contents[0] != config.ShortUserPrefix {
		t.Errorf("expected exactly one short summary call over empty text, got %q", provider.contents)
	}
}

func TestProcessFile_ExtractionFailure(t *testing.T) {
	provider := &MockProvider{}
	svc, cfg := newTestService(t, provider, &MockExtractor{})

	result := svc.ProcessFile(context.Background(), commonModels.NewDocumentFromBytes("bad.pdf", []byte("%CORRUPT")))
	if result.FullSummary != "" || result.ShortSummary != commonModels.ErrorProcessingFile {
		t.Errorf("unexpected result %+v", result)
	}
	if len(provider.contents) != 0 {
		t.Error("remote service called for a failed extraction")
	}
	assertUploadDirEmpty(t, cfg.Pipeline.UploadDir)
}

func TestProcessFile_RemoteFailure(t *testing.T) {
	failing := &MockProvider{
		OnGenerate: func(system, content string) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	extractor := &MockExtractor{}
	svc, cfg := newTestService(t, failing, extractor)

	result := svc.ProcessFile(context.Background(), commonModels.NewDocumentFromBytes("a.txt", []byte("some text")))
	if result.FullSummary != commonModels.ChunkSummaryFallback {
		t.Errorf("full summary = %q", result.FullSummary)
	}
	if result.ShortSummary != commonModels.ShortSummaryFallback {
		t.Errorf("short summary = %q", result.ShortSummary)
	}
	if len(extractor.paths) != 1 {
		t.Fatalf("expected one extraction, got %d", len(extractor.paths))
	}
	if _, err := os.Stat(extractor.paths[0]); !os.IsNotExist(err) {
		t.Error("temp file not deleted after remote failure")
	}
	assertUploadDirEmpty(t, cfg.Pipeline.UploadDir)
}

func TestProcessFile_LargeDocument(t *testing.T) {
	var n int
	var mu sync.Mutex
	provider := &MockProvider{
		OnGenerate: func(system, content string) (string, error) {
			if system == config.ShortSystemPrompt {
				return "short", nil
			}
			mu.Lock()
			defer mu.Unlock()
			n++
			return fmt.Sprintf("  part%d ", n), nil
		},
	}
	svc, _ := newTestService(t, provider, &MockExtractor{})
	text := strings.Repeat("a", 3000) + strings.Repeat("b", 3000) + strings.Repeat("c", 1000)

	result := svc.ProcessFile(context.Background(), commonModels.NewDocumentFromBytes("big.txt", []byte(text)))

	calls := provider.chunkCalls()
	if len(calls) != 3 {
		t.Fatalf("expected 3 chunk calls, got %d", len(calls))
	}
	wantChunks := []string{strings.Repeat("a", 3000), strings.Repeat("b", 3000), strings.Repeat("c", 1000)}
	for i, want := range wantChunks {
		if calls[i] != want {
			t.Errorf("chunk %d out of order or wrong size (len %d)", i, len(calls[i]))
		}
	}
	if result.FullSummary != "part1 part2 part3" {
		t.Errorf("full summary = %q", result.FullSummary)
	}
	if last := provider.contents[len(provider.contents)-1]; last != config.ShortUserPrefix+"part1 part2 part3" {
		t.Errorf("short summary input = %q", last)
	}
}

func TestProcessFile_ParallelChunksKeepOrder(t *testing.T) {
	provider := &MockProvider{}
	cfg := config.Default()
	cfg.Pipeline.UploadDir = t.TempDir()
	cfg.Summarizer.ChunkSize = 5
	cfg.Summarizer.ChunkConcurrency = 4
	svc := NewService(&MockExtractor{}, llm.NewClient(provider, cfg.Summarizer), cfg)

	// every 5 character chunk is a single word
	result := svc.ProcessFile(context.Background(), commonModels.NewDocumentFromBytes("p.txt", []byte("aaaa bbbb cccc dddd eeee ffff ")))
	if result.FullSummary != "aaaa bbbb cccc dddd eeee ffff" {
		t.Errorf("parallel summaries out of order: %q", result.FullSummary)
	}
}

func TestProcessBatch_OrderAndDegradedDocument(t *testing.T) {
	svc, cfg := newTestService(t, &MockProvider{}, &MockExtractor{})
	docs := []commonModels.Document{
		commonModels.NewDocumentFromBytes("same.txt", []byte("first doc")),
		commonModels.NewDocumentFromBytes("same.txt", []byte("second doc")),
		commonModels.NewDocumentFromBytes("broken.pdf", []byte("%CORRUPT body")),
		commonModels.NewDocumentFromBytes("third.txt", []byte("third doc")),
	}

	results, err := svc.ProcessBatch(context.Background(), docs)
	if err != nil {
		t.Fatalf("ProcessBatch failed: %v", err)
	}
	if len(results) != len(docs) {
		t.Fatalf("expected %d results, got %d", len(docs), len(results))
	}

	want := []string{"first", "second", "", "third"}
	for i, w := range want {
		if results[i].FullSummary != w {
			t.Errorf("result %d full summary = %q, want %q", i, results[i].FullSummary, w)
		}
	}
	if results[2].ShortSummary != commonModels.ErrorProcessingFile {
		t.Errorf("corrupt doc short summary = %q", results[2].ShortSummary)
	}
	if results[0].Filename != "same.txt" || results[1].Filename != "same.txt" {
		t.Error("repeated filenames not preserved")
	}
	assertUploadDirEmpty(t, cfg.Pipeline.UploadDir)
}

func TestProcessBatch_NoDocuments(t *testing.T) {
	extractor := &MockExtractor{}
	svc, cfg := newTestService(t, &MockProvider{}, extractor)

	_, err := svc.ProcessBatch(context.Background(), nil)
	var inputErr *commonModels.InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if len(extractor.paths) != 0 {
		t.Error("work attempted for an empty batch")
	}
	assertUploadDirEmpty(t, cfg.Pipeline.UploadDir)
}

func TestProcessBatch_CancelledContext(t *testing.T) {
	svc, _ := newTestService(t, &MockProvider{}, &MockExtractor{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ProcessBatch(ctx, []commonModels.Document{commonModels.NewDocumentFromBytes("a.txt", []byte("x"))})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestProcessCombined(t *testing.T) {
	provider := &MockProvider{}
	svc, cfg := newTestService(t, provider, &MockExtractor{})
	docs := []commonModels.Document{
		commonModels.NewDocumentFromBytes("a.txt", []byte("A has apples.")),
		commonModels.NewDocumentFromBytes("b.txt", []byte("B has bananas.")),
	}

	result, err := svc.ProcessCombined(context.Background(), docs, "fruit?")
	if err != nil {
		t.Fatalf("ProcessCombined failed: %v", err)
	}
	if result.Filename != "Combined Summary" {
		t.Errorf("filename = %q", result.Filename)
	}

	calls := provider.chunkCalls()
	if len(calls) != 1 {
		t.Fatalf("expected one chunk call, got %d", len(calls))
	}
	input := calls[0]
	if !strings.HasPrefix(input, "User Input: fruit?") {
		t.Errorf("combined input does not start with the query: %q", input)
	}
	a, b := strings.Index(input, "A has apples."), strings.Index(input, "B has bananas.")
	if a < 0 || b < 0 || a > b {
		t.Errorf("documents missing or out of order: %q", input)
	}
	if !strings.Contains(input, "--- Document: a.txt ---") {
		t.Errorf("source header missing: %q", input)
	}
	assertUploadDirEmpty(t, cfg.Pipeline.UploadDir)
}

func TestProcessCombined_SkipsFailedDocument(t *testing.T) {
	provider := &MockProvider{}
	svc, _ := newTestService(t, provider, &MockExtractor{})
	docs := []commonModels.Document{
		commonModels.NewDocumentFromBytes("ok.txt", []byte("Valid text.")),
		commonModels.NewDocumentFromBytes("bad.pdf", []byte("%CORRUPT")),
	}

	if _, err := svc.ProcessCombined(context.Background(), docs, "anything"); err != nil {
		t.Fatalf("ProcessCombined failed: %v", err)
	}
	input := provider.chunkCalls()[0]
	if strings.Contains(input, "bad.pdf") || !strings.Contains(input, "Valid text.") {
		t.Errorf("unexpected combined input %q", input)
	}
}

func TestProcessCombined_InputErrors(t *testing.T) {
	docs := []commonModels.Document{commonModels.NewDocumentFromBytes("a.txt", []byte("x"))}
	tests := []struct {
		name  string
		docs  []commonModels.Document
		query string
		field string
	}{
		{"No_Documents", nil, "q", "files"},
		{"Blank_Query", docs, "   ", "searchText"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := &MockExtractor{}
			svc, _ := newTestService(t, &MockProvider{}, extractor)

			_, err := svc.ProcessCombined(context.Background(), tt.docs, tt.query)
			var inputErr *commonModels.InputError
			if !errors.As(err, &inputErr) || inputErr.Field != tt.field {
				t.Fatalf("expected InputError on %s, got %v", tt.field, err)
			}
			if len(extractor.paths) != 0 {
				t.Error("extraction attempted before validation")
			}
		})
	}
}

func TestCombineTexts(t *testing.T) {
	got := combineTexts(" q ", []source{{"x.pdf", "one"}, {"y.pdf", "two"}})
	want := "User Input: q\n\n--- Document: x.pdf ---\none\n\n--- Document: y.pdf ---\ntwo"
	if got != want {
		t.Errorf("combineTexts = %q, want %q", got, want)
	}
}

func TestSearchBatch(t *testing.T) {
	provider := &MockProvider{
		OnGenerate: func(system, content string) (string, error) {
			if strings.Contains(content, "'rent'") {
				return "rent is due monthly", nil
			}
			return "", errors.New("unexpected prompt")
		},
	}
	svc, cfg := newTestService(t, provider, &MockExtractor{})
	docs := []commonModels.Document{
		commonModels.NewDocumentFromBytes("lease.txt", []byte("Rent is 100.")),
		commonModels.NewDocumentFromBytes("broken.pdf", []byte("%CORRUPT")),
		commonModels.NewDocumentFromBytes("empty.txt", nil),
	}

	results, err := svc.SearchBatch(context.Background(), docs, "rent")
	if err != nil {
		t.Fatalf("SearchBatch failed: %v", err)
	}
	want := []commonModels.SearchResult{
		{Filename: "lease.txt", Result: "rent is due monthly"},
		{Filename: "broken.pdf", Result: commonModels.ErrorProcessingFile},
		{Filename: "empty.txt", Result: commonModels.NoExtractableText},
	}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("result %d = %+v, want %+v", i, results[i], want[i])
		}
	}
	assertUploadDirEmpty(t, cfg.Pipeline.UploadDir)
}

func TestSummarizeText(t *testing.T) {
	svc, _ := newTestService(t, &MockProvider{}, &MockExtractor{})

	result := svc.SummarizeText(context.Background(), "notes.txt", "Deposit returned within 30 days.")
	if result.Filename != "notes.txt" || result.FullSummary != "Deposit" || result.ShortSummary != "one line" {
		t.Errorf("unexpected result %+v", result)
	}
}
