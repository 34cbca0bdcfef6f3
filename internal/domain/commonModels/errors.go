package commonModels

import "fmt"

// ExtractionError means a document could not be opened or parsed.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// SummarizationError wraps a failed remote generation call.
type SummarizationError struct {
	Call string
	Err  error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization call %s: %v", e.Call, e.Err)
}

func (e *SummarizationError) Unwrap() error { return e.Err }

// InputError is returned before any work when a request is incomplete.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
