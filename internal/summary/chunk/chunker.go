package chunk

import "github.com/akolanti/DocSummarizer/internal/config"

// Split cuts text into consecutive pieces of at most size characters.
// Characters are runes, so multibyte text is never cut mid-rune.
// A non-positive size falls back to config.ChunkSize.
func Split(text string, size int) []string {
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = config.ChunkSize
	}

	runes := []rune(text)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
