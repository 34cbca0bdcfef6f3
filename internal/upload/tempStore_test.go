package upload

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"contract.pdf", "contract.pdf"},
		{"My Lease 2024.pdf", "My_Lease_2024.pdf"},
		{"../../etc/passwd", "etc_passwd"},
		{`C:\Users\me\résumé.pdf`, "C_Users_me_resume.pdf"},
		{"  spaced   out  .txt", "spaced_out_.txt"},
		{"<script>alert(1)</script>.pdf", "scriptalert1_script.pdf"},
		{"日本語.pdf", "pdf"},
		{"...", ""},
	}

	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTempStore_SaveAndRemove(t *testing.T) {
	store, err := NewTempStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewTempStore failed: %v", err)
	}
	defer store.Close()

	path, err := store.Save(commonModels.NewDocumentFromBytes("lease agreement.pdf", []byte("content")))
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if filepath.Dir(path) != store.Dir() {
		t.Errorf("file saved outside the request dir: %s", path)
	}
	if !strings.HasSuffix(path, "-lease_agreement.pdf") {
		t.Errorf("sanitized name not kept in %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "content" {
		t.Fatalf("saved content mismatch: %q, %v", data, err)
	}

	store.Remove(path)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file still exists after Remove")
	}
	// removing twice is harmless
	store.Remove(path)
}

func TestTempStore_SameNameDoesNotCollide(t *testing.T) {
	store, err := NewTempStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewTempStore failed: %v", err)
	}
	defer store.Close()

	a, _ := store.Save(commonModels.NewDocumentFromBytes("same.pdf", []byte("a")))
	b, _ := store.Save(commonModels.NewDocumentFromBytes("same.pdf", []byte("b")))
	if a == b {
		t.Fatal("two uploads with the same name share a path")
	}
}

func TestTempStore_OpenFailure(t *testing.T) {
	store, err := NewTempStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewTempStore failed: %v", err)
	}
	defer store.Close()

	doc := commonModels.Document{
		Name: "x.pdf",
		Open: func() (io.ReadCloser, error) { return nil, errors.New("multipart gone") },
	}
	if _, err := store.Save(doc); err == nil {
		t.Fatal("expected error when upload cannot be opened")
	}
	entries, _ := os.ReadDir(store.Dir())
	if len(entries) != 0 {
		t.Errorf("expected empty dir, found %d entries", len(entries))
	}
}

func TestTempStore_CloseRemovesDir(t *testing.T) {
	store, err := NewTempStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewTempStore failed: %v", err)
	}
	_, _ = store.Save(commonModels.NewDocumentFromBytes("left.txt", []byte("over")))

	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := os.Stat(store.Dir()); !os.IsNotExist(err) {
		t.Error("request dir still exists after Close")
	}
}
