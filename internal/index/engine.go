// Package index computes the composite happiness index: min-max
// normalization of the six indicator columns, weighted aggregation to a
// 0-10 score, and rank derivation. All operations are pure; weights travel
// with the call instead of living on mutable engine state.
package index

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Bibz-a/World-Happiness-Analysis/internal/dataset"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/stats"
)

// Canonical indicator columns, in presentation order.
var Indicators = []string{
	"Economy (GDP per Capita)",
	"Family",
	"Health (Life Expectancy)",
	"Freedom",
	"Trust (Government Corruption)",
	"Generosity",
}

// Well-known column names shared with the insight rules and the analyzer.
const (
	ColCountry   = "Country"
	ColRegion    = "Region"
	ColScore     = "Happiness Score"
	ColRank      = "Happiness Rank"
	ColComposite = "Composite_Happiness_Index"
	ColCompRank  = "Composite_Rank"

	// NormalizedSuffix is appended to an indicator name for its derived
	// [0,1] column.
	NormalizedSuffix = "_normalized"

	// weightTolerance is how far the weight sum may drift from 1.0 before
	// every weight is rescaled.
	weightTolerance = 0.01

	// spreadEpsilon below which a column counts as zero-variance and every
	// row normalizes to 0.5.
	spreadEpsilon = 1e-12
)

// ConfigError reports an invalid weight map: an unknown indicator name or a
// negative weight. Bad maps are rejected eagerly, never clamped.
type ConfigError struct {
	Indicator string
	Reason    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("weight config: %s: %s", e.Indicator, e.Reason)
}

// Weights maps each canonical indicator to its share of the composite.
// Construct through NewWeights or DefaultWeights so the sum invariant holds.
type Weights map[string]float64

// DefaultWeights gives every indicator an equal 1/6 share.
func DefaultWeights() Weights {
	w := make(Weights, len(Indicators))
	for _, ind := range Indicators {
		w[ind] = 1.0 / float64(len(Indicators))
	}
	return w
}

// NewWeights validates m and returns a normalized copy. Keys are matched
// against the canonical indicator names case-insensitively (viper lowercases
// map keys read from config files) and values must be non-negative. When the
// sum deviates from 1.0 by more than 0.01 every weight is divided by the
// sum. The map replaces the defaults entirely: indicators not present get
// weight zero, so callers supply every weight they care about.
func NewWeights(m map[string]float64) (Weights, error) {
	if len(m) == 0 {
		return DefaultWeights(), nil
	}
	w := make(Weights, len(m))
	var sum float64
	for name, v := range m {
		ind, ok := canonicalIndicator(name)
		if !ok {
			return nil, &ConfigError{Indicator: name, Reason: "unknown indicator"}
		}
		if _, dup := w[ind]; dup {
			return nil, &ConfigError{Indicator: name, Reason: "duplicate indicator"}
		}
		if v < 0 {
			return nil, &ConfigError{Indicator: name, Reason: fmt.Sprintf("negative weight %v", v)}
		}
		w[ind] = v
		sum += v
	}
	if sum == 0 {
		return nil, &ConfigError{Indicator: "(all)", Reason: "weights sum to zero"}
	}
	if math.Abs(sum-1.0) > weightTolerance {
		for k, v := range w {
			w[k] = v / sum
		}
	}
	return w, nil
}

// canonicalIndicator resolves name to its canonical spelling, ignoring case
// and surrounding whitespace.
func canonicalIndicator(name string) (string, bool) {
	trimmed := strings.TrimSpace(name)
	for _, ind := range Indicators {
		if strings.EqualFold(ind, trimmed) {
			return ind, true
		}
	}
	return "", false
}

// Result is a derived dataset plus any degenerate-input warnings recorded
// while producing it.
type Result struct {
	Data     *dataset.Dataset
	Warnings []string
}

// Normalize adds an "<indicator>_normalized" column in [0,1] for each
// canonical indicator present in ds. A zero-spread column maps every row to
// 0.5 and records a warning. Absent indicators are skipped without error.
func Normalize(ds *dataset.Dataset) Result {
	out := ds.Clone()
	var warnings []string
	for _, ind := range Indicators {
		vals := ds.ColumnValues(ind)
		if len(vals) == 0 {
			continue
		}
		mn := stats.Min(vals)
		mx := stats.Max(vals)
		col := ind + NormalizedSuffix
		out.AddColumn(col)
		if mx-mn <= spreadEpsilon {
			warnings = append(warnings, fmt.Sprintf("indicator %q has zero spread; normalized to 0.5", ind))
			for i := range out.Rows {
				if _, ok := out.Rows[i].Num[ind]; ok {
					out.Rows[i].Num[col] = 0.5
				}
			}
			continue
		}
		for i := range out.Rows {
			if v, ok := out.Rows[i].Num[ind]; ok {
				out.Rows[i].Num[col] = (v - mn) / (mx - mn)
			}
		}
	}
	return Result{Data: out, Warnings: warnings}
}

// Composite normalizes ds if needed and adds the Composite_Happiness_Index
// and Composite_Rank columns. Per row the composite is
// 10 * sum(weight_i * normalized_i) over the indicators available in that
// row, capped at 10; a missing indicator contributes zero weight rather than
// triggering a per-row renormalization. Rows with no indicators at all
// score 0.
func Composite(ds *dataset.Dataset, w Weights) Result {
	res := Normalize(ds)
	out := res.Data
	out.AddColumn(ColComposite)
	out.AddColumn(ColCompRank)

	for i := range out.Rows {
		var score float64
		for _, ind := range Indicators {
			if v, ok := out.Rows[i].Num[ind+NormalizedSuffix]; ok {
				score += v * w[ind]
			}
		}
		// Weight sums inside the 0.01 tolerance are kept as supplied, so the
		// raw score can edge past 1. Clamp to keep the index within [0,10].
		if score > 1 {
			score = 1
		}
		out.Rows[i].Num[ColComposite] = score * 10
	}

	// Rank 1 = highest composite; equal scores keep input order.
	order := make([]int, len(out.Rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return out.Rows[order[a]].Num[ColComposite] > out.Rows[order[b]].Num[ColComposite]
	})
	for rank, i := range order {
		out.Rows[i].Num[ColCompRank] = float64(rank + 1)
	}
	return Result{Data: out, Warnings: res.Warnings}
}

// ComparisonRow pairs a row's composite results with the dataset's original
// score and rank where those columns exist.
type ComparisonRow struct {
	Country        string
	Region         string
	OriginalScore  float64
	HasScore       bool
	Composite      float64
	CompositeRank  int
	OriginalRank   int
	HasRank        bool
	RankDifference int
	ScoreDiff      float64
}

// CompareWithOriginal projects the identifier columns plus the composite
// columns of a dataset produced by Composite, sorted by composite
// descending. Rank_Difference and Score_Difference appear only when the
// original rank/score columns exist; their absence is not an error.
func CompareWithOriginal(ds *dataset.Dataset) []ComparisonRow {
	rows := make([]ComparisonRow, 0, ds.Len())
	for i := range ds.Rows {
		comp, ok := ds.Numeric(i, ColComposite)
		if !ok {
			continue
		}
		cr := ComparisonRow{Composite: comp}
		if c, ok := ds.Label(i, ColCountry); ok {
			cr.Country = c
		}
		if r, ok := ds.Label(i, ColRegion); ok {
			cr.Region = r
		}
		if rank, ok := ds.Numeric(i, ColCompRank); ok {
			cr.CompositeRank = int(rank)
		}
		if s, ok := ds.Numeric(i, ColScore); ok {
			cr.OriginalScore = s
			cr.HasScore = true
			cr.ScoreDiff = comp - s
		}
		if r, ok := ds.Numeric(i, ColRank); ok {
			cr.OriginalRank = int(r)
			cr.HasRank = true
			cr.RankDifference = cr.OriginalRank - cr.CompositeRank
		}
		rows = append(rows, cr)
	}
	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].Composite > rows[b].Composite
	})
	return rows
}

// Stats summarizes the composite column. All fields are NaN when the
// dataset is empty or the column is absent; Count is the number of values.
type Stats struct {
	Count  int
	Mean   float64
	Median float64
	Std    float64
	Min    float64
	Max    float64
	P25    float64
	P75    float64
}

// Statistics describes the Composite_Happiness_Index column of ds.
func Statistics(ds *dataset.Dataset) Stats {
	vals := ds.ColumnValues(ColComposite)
	return Stats{
		Count:  len(vals),
		Mean:   stats.Mean(vals),
		Median: stats.Median(vals),
		Std:    stats.SampleStd(vals),
		Min:    stats.Min(vals),
		Max:    stats.Max(vals),
		P25:    stats.Quantile(vals, 0.25),
		P75:    stats.Quantile(vals, 0.75),
	}
}
