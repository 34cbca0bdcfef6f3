package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/akolanti/DocSummarizer/internal/config"
	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
	"github.com/akolanti/DocSummarizer/internal/domain/jobModel"
	"github.com/akolanti/DocSummarizer/internal/metrics"
	"github.com/akolanti/DocSummarizer/internal/summary/pipeline"
)

func (p *Pool) executeJob(job jobModel.Job) {
	start := time.Now()
	result := jobModel.Result{JobId: job.Id, Status: jobModel.JobStatusError}
	defer func() {
		metrics.CaptureJobMetrics(string(result.Status), time.Since(start))
	}()

	ctxTrace := config.WithTraceID(context.Background(), job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, p.jobTimeout())
	defer cancel()

	log := p.logger.ForContext(ctx)
	log.Debug("Processing job", "jobId", job.Id, "jobType", job.JobType, "documents", len(job.Documents))

	result = p.safeExecute(ctx, job)
	result.JobId = job.Id
	result.EndTime = time.Now()
	if result.Err != nil {
		result.Status = jobModel.JobStatusError
		log.Warn("Job failed", "jobId", job.Id, "error", result.Err)
	} else if result.Status == "" {
		result.Status = jobModel.JobStatusComplete
	}

	// Reply is buffered with room for exactly this send
	job.Reply <- result
}

// safeExecute keeps a panicking job from taking its worker down with it.
func (p *Pool) safeExecute(ctx context.Context, job jobModel.Job) (result jobModel.Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.ForContext(ctx).Error("Job panicked", "jobId", job.Id, "panic", r)
			result = jobModel.Result{Status: jobModel.JobStatusError, Err: fmt.Errorf("job %s panicked: %v", job.Id, r)}
		}
	}()
	return p.executor.Execute(ctx, job)
}

func (p *Pool) jobTimeout() time.Duration {
	if p.cfg.JobTimeout > 0 {
		return p.cfg.JobTimeout
	}
	return config.JobTimeout
}

// PipelineExecutor maps each job type onto a pipeline mode.
type PipelineExecutor struct {
	service pipeline.Service
}

func NewPipelineExecutor(service pipeline.Service) *PipelineExecutor {
	return &PipelineExecutor{service: service}
}

func (e *PipelineExecutor) Execute(ctx context.Context, job jobModel.Job) jobModel.Result {
	var result jobModel.Result

	switch job.JobType {
	case jobModel.JobTypeSingle:
		if len(job.Documents) == 0 {
			result.Err = &commonModels.InputError{Field: "file", Message: "no document supplied"}
			break
		}
		result.Summaries = []commonModels.SummaryResult{e.service.ProcessFile(ctx, job.Documents[0])}

	case jobModel.JobTypePerFile:
		result.Summaries, result.Err = e.service.ProcessBatch(ctx, job.Documents)

	case jobModel.JobTypeCombined:
		combined, err := e.service.ProcessCombined(ctx, job.Documents, job.Query)
		if err == nil {
			result.Summaries = []commonModels.SummaryResult{combined}
		}
		result.Err = err

	case jobModel.JobTypeSearch:
		result.Searches, result.Err = e.service.SearchBatch(ctx, job.Documents, job.Query)

	default:
		result.Err = fmt.Errorf("unknown job type %q", job.JobType)
	}

	if result.Err == nil {
		result.Status = jobModel.JobStatusComplete
	}
	return result
}
