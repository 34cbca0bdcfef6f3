package extract

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
	"github.com/akolanti/DocSummarizer/internal/metrics"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
)

// Extractor turns a stored document into plain text.
type Extractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

type rawPage struct {
	Number  int
	Content string
}

type FileExtractor struct {
	pageTimeout time.Duration
	logger      *logger_i.Logger
}

func NewFileExtractor(cfg config.PipelineConfig) *FileExtractor {
	timeout := cfg.PageTimeout
	if timeout <= 0 {
		timeout = config.PageTimeout
	}
	return &FileExtractor{
		pageTimeout: timeout,
		logger:      logger_i.NewLogger("Text Extractor"),
	}
}

func GetDocType(docPath string) commonModels.DocType {
	ext := strings.ToLower(filepath.Ext(docPath))
	switch ext {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".odt", ".rtf":
		return commonModels.DOCX
	case ".txt":
		return commonModels.TXT
	default:
		return commonModels.ERR
	}
}

// Extract returns the text of every page in page order, pages joined by a
// newline. Pages without text add nothing. Failures are *ExtractionError.
func (e *FileExtractor) Extract(ctx context.Context, path string) (string, error) {
	log := e.logger.ForContext(ctx)
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("extraction", time.Since(start)) }()

	var (
		pages []rawPage
		err   error
	)
	switch docType := GetDocType(path); docType {
	case commonModels.PDF:
		pages, err = e.extractPDF(ctx, path, log)
	case commonModels.DOCX, commonModels.TXT:
		pages, err = extractDocxTxtRtf(path)
	default:
		err = fmt.Errorf("unsupported content type for %q", filepath.Ext(path))
	}
	if err != nil {
		log.Error("Extraction failed", "path", path, "error", err)
		return "", &commonModels.ExtractionError{Path: filepath.Base(path), Err: err}
	}

	var sb strings.Builder
	for _, page := range pages {
		if page.Content == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(page.Content)
	}
	log.Debug("Extracted document", "path", path, "pages", len(pages), "length", sb.Len())
	return sb.String(), nil
}
