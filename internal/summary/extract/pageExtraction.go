package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/akolanti/DocSummarizer/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// keep pdfcpu from writing a config dir into the user's home
	model.ConfigPath = "disable"
}

func validatePDF(path string) error {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.ValidateFile(path, conf)
}

func (e *FileExtractor) extractPDF(ctx context.Context, path string, log *logger_i.Logger) ([]rawPage, error) {
	log.Debug("Extracting pdf", "path", path)
	if err := validatePDF(path); err != nil {
		return nil, fmt.Errorf("invalid pdf: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat pdf: %w", err)
	}

	reader, err := openReader(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pdf: %w", err)
	}

	var pages []rawPage
	numPages := reader.NumPage()
	log.Debug("Walking pdf pages", "path", path, "pages", numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			log.Debug("Skipping null page", "page", i)
			continue
		}

		content, err := e.protectExtract(ctx, page)
		if err != nil {
			// scanned or broken pages contribute nothing
			log.Warn("Error parsing page content", "page", i, "error", err)
			continue
		}

		pages = append(pages, rawPage{
			Number:  i,
			Content: content,
		})
	}
	return pages, nil
}

func openReader(file *os.File, size int64) (reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()
	return pdf.NewReader(file, size)
}

// extractDocxTxtRtf reads a .odt, .docx, .rtf or plaintext file as a single page.
func extractDocxTxtRtf(path string) ([]rawPage, error) {
	text, err := cat.File(path)
	if err != nil {
		return nil, fmt.Errorf("failed to extract document: %w", err)
	}
	return []rawPage{
		{
			Number:  1,
			Content: text,
		},
	}, nil
}

func (e *FileExtractor) protectExtract(ctx context.Context, page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{"", fmt.Errorf("page extract panic: %v", r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	select {
	case r := <-resChan:
		return r.content, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	case <-time.After(e.pageTimeout):
		return "", errors.New("page extraction timeout")
	}
}
