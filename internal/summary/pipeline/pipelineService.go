package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
	"github.com/akolanti/DocSummarizer/internal/metrics"
	"github.com/akolanti/DocSummarizer/internal/summary/extract"
	"github.com/akolanti/DocSummarizer/internal/summary/llm"
	"github.com/akolanti/DocSummarizer/internal/upload"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
	"golang.org/x/sync/errgroup"
)

// Service is what the worker pool and the mcp tool call; callers never see the
// extractor or the remote client directly.
type Service interface {
	ProcessFile(ctx context.Context, doc commonModels.Document) commonModels.SummaryResult
	ProcessBatch(ctx context.Context, docs []commonModels.Document) ([]commonModels.SummaryResult, error)
	ProcessCombined(ctx context.Context, docs []commonModels.Document, query string) (commonModels.SummaryResult, error)
	SearchBatch(ctx context.Context, docs []commonModels.Document, query string) ([]commonModels.SearchResult, error)
	SummarizeText(ctx context.Context, name string, text string) commonModels.SummaryResult
}

type service struct {
	extractor        extract.Extractor
	client           *llm.Client
	uploadDir        string
	chunkSize        int
	chunkConcurrency int
	extractWorkers   int
	logger           *logger_i.Logger
}

func NewService(extractor extract.Extractor, client *llm.Client, cfg config.Config) Service {
	return &service{
		extractor:        extractor,
		client:           client,
		uploadDir:        cfg.Pipeline.UploadDir,
		chunkSize:        cfg.Summarizer.ChunkSize,
		chunkConcurrency: cfg.Summarizer.ChunkConcurrency,
		extractWorkers:   cfg.Pipeline.ExtractWorkers,
		logger:           logger_i.NewLogger("Pipeline"),
	}
}

// ProcessFile never fails: extraction problems come back as a placeholder
// short summary with an empty full summary.
func (s *service) ProcessFile(ctx context.Context, doc commonModels.Document) commonModels.SummaryResult {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("single_file_pipeline", time.Since(start)) }()

	store, err := upload.NewTempStore(s.uploadDir)
	if err != nil {
		s.logger.ForContext(ctx).Error("Temp storage unavailable", "error", err)
		return failedResult(doc)
	}
	defer s.closeStore(store)

	metrics.AddDocumentsProcessed("single", 1)
	return s.processFile(ctx, store, doc)
}

func (s *service) ProcessBatch(ctx context.Context, docs []commonModels.Document) ([]commonModels.SummaryResult, error) {
	if err := validateDocuments(docs); err != nil {
		return nil, err
	}
	store, err := upload.NewTempStore(s.uploadDir)
	if err != nil {
		return nil, err
	}
	defer s.closeStore(store)

	results := make([]commonModels.SummaryResult, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, s.processFile(ctx, store, doc))
	}
	metrics.AddDocumentsProcessed("per_file", len(docs))
	return results, nil
}

func (s *service) ProcessCombined(ctx context.Context, docs []commonModels.Document, query string) (commonModels.SummaryResult, error) {
	if err := validateDocuments(docs); err != nil {
		return commonModels.SummaryResult{}, err
	}
	if err := validateQuery(query); err != nil {
		return commonModels.SummaryResult{}, err
	}
	store, err := upload.NewTempStore(s.uploadDir)
	if err != nil {
		return commonModels.SummaryResult{}, err
	}
	defer s.closeStore(store)

	texts := s.extractAll(ctx, store, docs)
	if err := ctx.Err(); err != nil {
		return commonModels.SummaryResult{}, err
	}

	sources := make([]source, 0, len(docs))
	for i, doc := range docs {
		if texts[i].ok {
			sources = append(sources, source{name: upload.SanitizeFilename(doc.Name), text: texts[i].text})
		}
	}

	result := commonModels.SummaryResult{Filename: commonModels.CombinedSummaryFilename}
	result.FullSummary, result.ShortSummary = s.summarize(ctx, combineTexts(query, sources))
	metrics.AddDocumentsProcessed("combined", len(docs))
	return result, nil
}

func (s *service) SearchBatch(ctx context.Context, docs []commonModels.Document, query string) ([]commonModels.SearchResult, error) {
	if err := validateDocuments(docs); err != nil {
		return nil, err
	}
	if err := validateQuery(query); err != nil {
		return nil, err
	}
	store, err := upload.NewTempStore(s.uploadDir)
	if err != nil {
		return nil, err
	}
	defer s.closeStore(store)

	results := make([]commonModels.SearchResult, 0, len(docs))
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results = append(results, s.searchFile(ctx, store, doc, query))
	}
	metrics.AddDocumentsProcessed("search", len(docs))
	return results, nil
}

func (s *service) SummarizeText(ctx context.Context, name string, text string) commonModels.SummaryResult {
	result := commonModels.SummaryResult{Filename: upload.SanitizeFilename(name)}
	result.FullSummary, result.ShortSummary = s.summarize(ctx, text)
	return result
}

func (s *service) processFile(ctx context.Context, store *upload.TempStore, doc commonModels.Document) commonModels.SummaryResult {
	text, err := s.extractDocument(ctx, store, doc)
	if err != nil {
		return failedResult(doc)
	}
	result := commonModels.SummaryResult{Filename: upload.SanitizeFilename(doc.Name)}
	result.FullSummary, result.ShortSummary = s.summarize(ctx, text)
	return result
}

func (s *service) searchFile(ctx context.Context, store *upload.TempStore, doc commonModels.Document, query string) commonModels.SearchResult {
	result := commonModels.SearchResult{Filename: upload.SanitizeFilename(doc.Name)}
	text, err := s.extractDocument(ctx, store, doc)
	if err != nil {
		result.Result = commonModels.ErrorProcessingFile
		return result
	}
	chunks := s.split(text)
	if len(chunks) == 0 {
		result.Result = commonModels.NoExtractableText
		return result
	}
	answers := s.mapChunks(chunks, func(c string) string { return s.client.Search(ctx, c, query) })
	result.Result = strings.TrimSpace(strings.Join(answers, " "))
	return result
}

type extracted struct {
	text string
	ok   bool
}

// extractAll runs extraction on a bounded pool; slot i always holds docs[i].
func (s *service) extractAll(ctx context.Context, store *upload.TempStore, docs []commonModels.Document) []extracted {
	texts := make([]extracted, len(docs))
	var g errgroup.Group
	g.SetLimit(s.workers())
	for i, doc := range docs {
		g.Go(func() error {
			text, err := s.extractDocument(ctx, store, doc)
			if err == nil {
				texts[i] = extracted{text: text, ok: true}
			}
			return nil
		})
	}
	_ = g.Wait()
	return texts
}

// extractDocument persists the upload, extracts it and always deletes the copy.
func (s *service) extractDocument(ctx context.Context, store *upload.TempStore, doc commonModels.Document) (string, error) {
	log := s.logger.ForContext(ctx).With("document", doc.Name)

	path, err := store.Save(doc)
	if err != nil {
		log.Error("Could not persist upload", "error", err)
		metrics.IncrementExtractionFailure()
		return "", err
	}
	defer store.Remove(path)

	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		log.Warn("Extraction failed, degrading document", "error", err)
		metrics.IncrementExtractionFailure()
		return "", err
	}
	return text, nil
}

func (s *service) closeStore(store *upload.TempStore) {
	if err := store.Close(); err != nil {
		s.logger.Error("failed to remove request dir", "dir", store.Dir(), "error", err)
	}
}

func (s *service) workers() int {
	if s.extractWorkers <= 0 {
		return config.ExtractWorkers
	}
	return s.extractWorkers
}

func failedResult(doc commonModels.Document) commonModels.SummaryResult {
	return commonModels.SummaryResult{
		Filename:     upload.SanitizeFilename(doc.Name),
		FullSummary:  "",
		ShortSummary: commonModels.ErrorProcessingFile,
	}
}
