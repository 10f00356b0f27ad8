// Package report renders computed results as compact markdown suitable for
// terminals or saved report files.
package report

import (
	"fmt"
	"strings"

	"github.com/Bibz-a/World-Happiness-Analysis/internal/analysis"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/index"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/insight"
)

// Comparison renders the composite-vs-original table, at most limit rows
// (0 = all).
func Comparison(rows []index.ComparisonRow, limit int) string {
	var b strings.Builder
	b.WriteString("[COMPOSITE INDEX]\n")
	if limit <= 0 || limit > len(rows) {
		limit = len(rows)
	}
	for _, r := range rows[:limit] {
		b.WriteString(fmt.Sprintf("- #%d %s", r.CompositeRank, safeVal(r.Country)))
		if r.Region != "" {
			b.WriteString(fmt.Sprintf(" (%s)", safeVal(r.Region)))
		}
		b.WriteString(fmt.Sprintf(": composite %.3f", r.Composite))
		if r.HasScore {
			b.WriteString(fmt.Sprintf(", original %.3f (diff %+.3f)", r.OriginalScore, r.ScoreDiff))
		}
		if r.HasRank {
			b.WriteString(fmt.Sprintf(", rank moved %+d", r.RankDifference))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Statistics renders the composite summary statistics.
func Statistics(s index.Stats) string {
	var b strings.Builder
	b.WriteString("[INDEX STATISTICS]\n")
	if s.Count == 0 {
		b.WriteString("- no composite values\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("- count %d\n", s.Count))
	b.WriteString(fmt.Sprintf("- mean %.3f, median %.3f, std %.3f\n", s.Mean, s.Median, s.Std))
	b.WriteString(fmt.Sprintf("- min %.3f, p25 %.3f, p75 %.3f, max %.3f\n", s.Min, s.P25, s.P75, s.Max))
	return b.String()
}

// Regions renders per-region aggregates.
func Regions(rs []analysis.RegionSummary) string {
	var b strings.Builder
	b.WriteString("[REGIONAL SUMMARY]\n")
	for _, r := range rs {
		b.WriteString(fmt.Sprintf("- %s: mean %.3f, std %.3f (n=%d)\n",
			safeVal(r.Region), r.Mean, r.Std, r.Count))
	}
	return b.String()
}

// Correlations renders per-column correlations with the score.
func Correlations(pairs []analysis.PairCorr) string {
	var b strings.Builder
	b.WriteString("[CORRELATIONS WITH SCORE]\n")
	for _, p := range pairs {
		b.WriteString(fmt.Sprintf("- %s: r=%.3f, rho=%.3f\n", safeVal(p.Column), p.R, p.Rho))
	}
	return b.String()
}

// Findings renders the numbered insight list plus any rule diagnostics.
func Findings(fs []insight.Finding, diagnostics []string) string {
	var b strings.Builder
	b.WriteString("[INSIGHTS]\n")
	if len(fs) == 0 {
		b.WriteString("- no insights generated\n")
	}
	for i, f := range fs {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, f.Text))
	}
	if len(diagnostics) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, d := range diagnostics {
			b.WriteString("- ")
			b.WriteString(d)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func safeVal(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/")
}
