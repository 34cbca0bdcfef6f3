package pipeline

import (
	"context"
	"strings"

	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
	"github.com/akolanti/DocSummarizer/internal/summary/chunk"
	"golang.org/x/sync/errgroup"
)

type source struct {
	name string
	text string
}

// combineTexts builds the combined-mode input: the user query first, then
// each document under a header naming it, in the given order.
func combineTexts(query string, sources []source) string {
	var sb strings.Builder
	sb.WriteString("User Input: ")
	sb.WriteString(strings.TrimSpace(query))
	sb.WriteString("\n\n")
	for _, src := range sources {
		sb.WriteString("--- Document: ")
		sb.WriteString(src.name)
		sb.WriteString(" ---\n")
		sb.WriteString(src.text)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}

func (s *service) split(text string) []string {
	return chunk.Split(text, s.chunkSize)
}

// summarize returns the full summary (chunk summaries space joined, in chunk
// order) and the one line summary derived from it. Text with no chunks still
// gets its short summary call, over an empty full summary.
func (s *service) summarize(ctx context.Context, text string) (string, string) {
	chunks := s.split(text)
	if len(chunks) == 0 {
		s.logger.ForContext(ctx).Warn("No extractable text, condensing an empty summary")
		return "", s.client.ShortSummary(ctx, "")
	}

	s.logger.ForContext(ctx).Debug("Summarizing", "chunks", len(chunks))
	partials := s.mapChunks(chunks, func(c string) string { return s.client.SummarizeChunk(ctx, c) })
	full := strings.TrimSpace(strings.Join(partials, " "))
	return full, s.client.ShortSummary(ctx, full)
}

// mapChunks applies fn to every chunk. With chunk concurrency above one the
// calls overlap, but out[i] is always fn(chunks[i]).
func (s *service) mapChunks(chunks []string, fn func(string) string) []string {
	out := make([]string, len(chunks))
	if s.chunkConcurrency <= 1 || len(chunks) == 1 {
		for i, c := range chunks {
			out[i] = fn(c)
		}
		return out
	}

	var g errgroup.Group
	g.SetLimit(s.chunkConcurrency)
	for i, c := range chunks {
		g.Go(func() error {
			out[i] = fn(c)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func validateDocuments(docs []commonModels.Document) error {
	if len(docs) == 0 {
		return &commonModels.InputError{Field: "files", Message: "no documents supplied"}
	}
	return nil
}

func validateQuery(query string) error {
	if strings.TrimSpace(query) == "" {
		return &commonModels.InputError{Field: "searchText", Message: "query text is required"}
	}
	return nil
}
