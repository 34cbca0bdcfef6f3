package jobModel

import (
	"time"

	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
)

type JobStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	JobTypeSingle   JobType = "Single"
	JobTypePerFile  JobType = "PerFile"
	JobTypeCombined JobType = "Combined"
	JobTypeSearch   JobType = "Search"
)

// Job is one pipeline run submitted to the worker pool. Reply is buffered so a
// worker never blocks on a caller that already went away.
type Job struct {
	Id          string
	TraceId     string
	JobType     JobType
	Documents   []commonModels.Document
	Query       string
	CreatedTime time.Time
	Reply       chan Result
}

type Result struct {
	JobId     string
	Status    JobStatus
	Summaries []commonModels.SummaryResult
	Searches  []commonModels.SearchResult
	Err       error
	EndTime   time.Time
}
