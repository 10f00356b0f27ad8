package report

import (
	"math"
	"strings"
	"testing"

	"github.com/Bibz-a/World-Happiness-Analysis/internal/analysis"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/index"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/insight"
)

func TestComparison(t *testing.T) {
	rows := []index.ComparisonRow{
		{Country: "Norway", Region: "Western Europe", Composite: 9.1, CompositeRank: 1,
			OriginalScore: 7.5, HasScore: true, ScoreDiff: 1.6,
			OriginalRank: 2, HasRank: true, RankDifference: 1},
		{Country: "Chad", Composite: 1.2, CompositeRank: 2},
	}
	out := Comparison(rows, 0)
	if !strings.Contains(out, "[COMPOSITE INDEX]") {
		t.Fatalf("missing header: %s", out)
	}
	if !strings.Contains(out, "#1 Norway (Western Europe): composite 9.100") {
		t.Fatalf("missing norway line: %s", out)
	}
	if !strings.Contains(out, "rank moved +1") {
		t.Fatalf("missing rank diff: %s", out)
	}
	// Chad has no original score or rank, so neither field renders.
	if strings.Contains(out, "Chad (") || strings.Count(out, "original") != 1 {
		t.Fatalf("chad line rendered absent fields: %s", out)
	}

	if limited := Comparison(rows, 1); strings.Contains(limited, "Chad") {
		t.Fatalf("limit not applied: %s", limited)
	}
}

func TestStatisticsEmpty(t *testing.T) {
	out := Statistics(index.Stats{Count: 0, Mean: math.NaN()})
	if !strings.Contains(out, "no composite values") {
		t.Fatalf("empty stats output = %s", out)
	}
}

func TestFindings(t *testing.T) {
	fs := []insight.Finding{
		{ID: "1", Rule: "a", Text: "first insight"},
		{ID: "2", Rule: "b", Text: "second insight"},
	}
	out := Findings(fs, []string{"rule c failed: kaboom"})
	if !strings.Contains(out, "1. first insight") || !strings.Contains(out, "2. second insight") {
		t.Fatalf("numbered findings missing: %s", out)
	}
	if !strings.Contains(out, "[NOTES]") || !strings.Contains(out, "kaboom") {
		t.Fatalf("diagnostics missing: %s", out)
	}

	if empty := Findings(nil, nil); !strings.Contains(empty, "no insights generated") {
		t.Fatalf("empty findings output = %s", empty)
	}
}

func TestRegionsAndCorrelations(t *testing.T) {
	out := Regions([]analysis.RegionSummary{{Region: "Western Europe", Mean: 7.1, Std: 0.3, Count: 4}})
	if !strings.Contains(out, "Western Europe: mean 7.100, std 0.300 (n=4)") {
		t.Fatalf("regions output = %s", out)
	}
	out = Correlations([]analysis.PairCorr{{Column: "Freedom", R: 0.82, Rho: 0.79}})
	if !strings.Contains(out, "Freedom: r=0.820, rho=0.790") {
		t.Fatalf("correlations output = %s", out)
	}
}
