package adapter

import (
	"testing"

	"github.com/akolanti/DocSummarizer/internal/domain/commonModels"
)

func TestToSummaryText(t *testing.T) {
	tests := []struct {
		name    string
		results []commonModels.SummaryResult
		want    string
	}{
		{"Empty", nil, ""},
		{
			"Single",
			[]commonModels.SummaryResult{{Filename: "a.pdf", FullSummary: "alpha"}},
			"Summary for a.pdf:\nalpha\n",
		},
		{
			"Multiple",
			[]commonModels.SummaryResult{{Filename: "a.pdf", FullSummary: "alpha"}, {Filename: "b.pdf", FullSummary: ""}},
			"Summary for a.pdf:\nalpha\n\nSummary for b.pdf:\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSummaryText(tt.results); got != tt.want {
				t.Errorf("ToSummaryText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToSearchText(t *testing.T) {
	got := ToSearchText([]commonModels.SearchResult{{Filename: "a.pdf", Result: "rent"}, {Filename: "b.pdf", Result: "none"}})
	want := "Results for a.pdf:\nrent\n\nResults for b.pdf:\nnone\n"
	if got != want {
		t.Errorf("ToSearchText = %q, want %q", got, want)
	}
}

func TestToSummaryResponses_KeepsOrder(t *testing.T) {
	in := []commonModels.SummaryResult{{Filename: "x"}, {Filename: "x"}, {Filename: "y"}}
	out := ToSummaryResponses(in)
	if len(out) != 3 || out[0].Filename != "x" || out[2].Filename != "y" {
		t.Errorf("unexpected responses %+v", out)
	}
}
