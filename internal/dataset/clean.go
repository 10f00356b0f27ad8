package dataset

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Bibz-a/World-Happiness-Analysis/internal/stats"
)

// FillStrategy selects how missing numeric cells are handled by Clean.
type FillStrategy string

const (
	FillMean   FillStrategy = "mean"
	FillMedian FillStrategy = "median"
	FillZero   FillStrategy = "zero"
	FillDrop   FillStrategy = "drop"
)

// CleanOptions controls Clean.
type CleanOptions struct {
	CountryColumn string
	RegionColumn  string
	Fill          FillStrategy
}

// DefaultCleanOptions matches the upstream dataset conventions.
func DefaultCleanOptions() CleanOptions {
	return CleanOptions{
		CountryColumn: "Country",
		RegionColumn:  "Region",
		Fill:          FillMean,
	}
}

// ValidationReport summarizes a dataset after cleaning.
type ValidationReport struct {
	TotalRows     int
	TotalColumns  int
	MissingValues map[string]int
}

// Clean returns a cleaned copy of ds: country names are trimmed and
// title-cased, region names trimmed, missing numeric cells filled per the
// strategy, and exact duplicate rows removed. The input is not modified.
func Clean(ds *Dataset, opt CleanOptions) (*Dataset, error) {
	switch opt.Fill {
	case FillMean, FillMedian, FillZero, FillDrop, "":
	default:
		return nil, fmt.Errorf("unknown fill strategy %q", opt.Fill)
	}
	out := ds.Clone()

	title := cases.Title(language.English)
	for i := range out.Rows {
		if c, ok := out.Rows[i].Text[opt.CountryColumn]; ok {
			out.Rows[i].Text[opt.CountryColumn] = title.String(strings.TrimSpace(c))
		}
		if r, ok := out.Rows[i].Text[opt.RegionColumn]; ok {
			out.Rows[i].Text[opt.RegionColumn] = strings.TrimSpace(r)
		}
	}

	if opt.Fill != "" {
		fillMissing(out, opt.Fill)
	}
	return dedupe(out), nil
}

// Validate reports row/column totals and per-column missing counts for the
// numeric columns of ds.
func Validate(ds *Dataset) ValidationReport {
	rep := ValidationReport{
		TotalRows:     ds.Len(),
		TotalColumns:  len(ds.Columns),
		MissingValues: make(map[string]int),
	}
	for _, name := range ds.Columns {
		miss := 0
		for _, r := range ds.Rows {
			_, num := r.Num[name]
			_, txt := r.Text[name]
			if !num && !txt {
				miss++
			}
		}
		rep.MissingValues[name] = miss
	}
	return rep
}

func fillMissing(ds *Dataset, strategy FillStrategy) {
	for _, name := range ds.Columns {
		vals := ds.ColumnValues(name)
		if len(vals) == 0 || len(vals) == ds.Len() {
			continue
		}
		// Columns holding any text are treated as non-numeric and skipped.
		if hasText(ds, name) {
			continue
		}
		var fill float64
		switch strategy {
		case FillMedian:
			fill = stats.Median(vals)
		case FillZero:
			fill = 0
		case FillDrop:
			kept := ds.Select(func(i int) bool {
				_, ok := ds.Rows[i].Num[name]
				return ok
			})
			ds.Rows = kept.Rows
			continue
		default: // mean
			fill = stats.Mean(vals)
		}
		for i := range ds.Rows {
			if _, ok := ds.Rows[i].Num[name]; !ok {
				ds.Rows[i].Num[name] = fill
			}
		}
	}
}

func hasText(ds *Dataset, name string) bool {
	for _, r := range ds.Rows {
		if _, ok := r.Text[name]; ok {
			return true
		}
	}
	return false
}

func dedupe(ds *Dataset) *Dataset {
	seen := make(map[string]bool, ds.Len())
	return ds.Select(func(i int) bool {
		key := rowKey(ds.Rows[i], ds.Columns)
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
}

func rowKey(r Row, cols []string) string {
	parts := make([]string, 0, len(cols))
	for _, c := range cols {
		if v, ok := r.Num[c]; ok {
			parts = append(parts, fmt.Sprintf("%s=%v", c, v))
		} else if s, ok := r.Text[c]; ok {
			parts = append(parts, fmt.Sprintf("%s=%s", c, s))
		}
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}
