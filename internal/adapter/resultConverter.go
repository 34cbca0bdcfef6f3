package adapter

import (
	"strings"

	"github.com/akolanti/DocSummarizer/internal/api"
	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
)

func ToSummaryResponse(result commonModels.SummaryResult) api.SummaryResponse {
	return api.SummaryResponse{
		Filename:     result.Filename,
		FullSummary:  result.FullSummary,
		ShortSummary: result.ShortSummary,
	}
}

func ToSummaryResponses(results []commonModels.SummaryResult) []api.SummaryResponse {
	out := make([]api.SummaryResponse, 0, len(results))
	for _, r := range results {
		out = append(out, ToSummaryResponse(r))
	}
	return out
}

func ToSearchResponses(results []commonModels.SearchResult) []api.SearchResponse {
	out := make([]api.SearchResponse, 0, len(results))
	for _, r := range results {
		out = append(out, api.SearchResponse{Filename: r.Filename, Result: r.Result})
	}
	return out
}

func ToErrorResponse(code int, message string, traceId string) api.ErrorResponse {
	return api.ErrorResponse{Code: code, Message: message, TraceId: traceId}
}

// ToSummaryText renders the plain text download, one section per result.
func ToSummaryText(results []commonModels.SummaryResult) string {
	sections := make([]string, 0, len(results))
	for _, r := range results {
		sections = append(sections, "Summary for "+r.Filename+":\n"+r.FullSummary+"\n")
	}
	return strings.Join(sections, "\n")
}

func ToSearchText(results []commonModels.SearchResult) string {
	sections := make([]string, 0, len(results))
	for _, r := range results {
		sections = append(sections, "Results for "+r.Filename+":\n"+r.Result+"\n")
	}
	return strings.Join(sections, "\n")
}
