package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/akolanti/DocSummarizer/internal/adapter/utils"
	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
	"github.com/akolanti/DocSummarizer/pkg/logger_i"
	"golang.org/x/text/unicode/norm"
)

// TempStore holds the transient copies of uploaded documents for one request.
type TempStore struct {
	dir    string
	logger *logger_i.Logger
}

// NewTempStore creates a request scoped directory under root.
func NewTempStore(root string) (*TempStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	dir, err := os.MkdirTemp(root, "request-*")
	if err != nil {
		return nil, fmt.Errorf("create request dir: %w", err)
	}
	return &TempStore{dir: dir, logger: logger_i.NewLogger("TempStore")}, nil
}

func (s *TempStore) Dir() string {
	return s.dir
}

// Save copies the document to a unique file inside the store and returns its path.
// The original extension is kept so the extractor can pick a reader.
func (s *TempStore) Save(doc commonModels.Document) (string, error) {
	if doc.Open == nil {
		return "", fmt.Errorf("document %q has no content", doc.Name)
	}
	src, err := doc.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", doc.Name, err)
	}
	defer src.Close()

	name := SanitizeFilename(doc.Name)
	if name == "" {
		name = "document" + strings.ToLower(filepath.Ext(doc.Name))
	}
	path := filepath.Join(s.dir, utils.GetNewUUID()+"-"+name)

	dst, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		s.Remove(path)
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := dst.Close(); err != nil {
		s.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return path, nil
}

func (s *TempStore) Remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("failed to remove temp file", "path", path, "error", err)
	}
}

// Close removes the request directory and anything still in it.
func (s *TempStore) Close() error {
	return os.RemoveAll(s.dir)
}

// SanitizeFilename reduces an uploaded name to a safe ascii file name: accents
// are folded, path separators become spaces, only letters, digits, '_', '.'
// and '-' survive, whitespace runs become '_' and leading/trailing '.' and '_'
// are dropped.
func SanitizeFilename(name string) string {
	var ascii strings.Builder
	for _, r := range norm.NFKD.String(name) {
		if r < unicode.MaxASCII {
			ascii.WriteRune(r)
		}
	}

	cleaned := strings.NewReplacer("/", " ", "\\", " ").Replace(ascii.String())
	cleaned = strings.Join(strings.Fields(cleaned), "_")

	var safe strings.Builder
	for _, r := range cleaned {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '.', r == '-':
			safe.WriteRune(r)
		}
	}
	return strings.Trim(safe.String(), "._")
}
