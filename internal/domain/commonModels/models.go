package commonModels

import (
	"bytes"
	"io"
	"os"
)

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"

const (
	// placeholders rendered in place of content that could not be produced
	ErrorProcessingFile     = "Error processing this file."
	NoExtractableText       = "No extractable text found in this file."
	ChunkSummaryFallback    = "An error occurred while summarizing the document."
	ShortSummaryFallback    = "An error occurred while generating the short summary."
	SearchFallback          = "An error occurred while searching the document."
	CombinedSummaryFilename = "Combined Summary"
)

// Document is an uploaded file owned by the request that received it.
type Document struct {
	Name string
	Open func() (io.ReadCloser, error)
}

func NewDocumentFromBytes(name string, content []byte) Document {
	return Document{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

func NewDocumentFromFile(name string, path string) Document {
	return Document{
		Name: name,
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}
}

type SummaryResult struct {
	Filename     string `json:"filename"`
	FullSummary  string `json:"full_summary"`
	ShortSummary string `json:"short_summary"`
}

type SearchResult struct {
	Filename string `json:"filename"`
	Result   string `json:"result"`
}
