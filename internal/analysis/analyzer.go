// Package analysis provides descriptive statistics over a cleaned dataset:
// top/bottom rankings, per-region aggregates, and per-column correlation
// with the happiness score. Pure; nothing here writes to the dataset.
package analysis

import (
	"math"
	"sort"

	"github.com/Bibz-a/World-Happiness-Analysis/internal/dataset"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/index"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/stats"
)

// RegionSummary aggregates a score column within one region.
type RegionSummary struct {
	Region string
	Mean   float64
	Std    float64
	Count  int
}

// PairCorr holds the Pearson and Spearman correlations of one column
// against the score.
type PairCorr struct {
	Column string
	R      float64
	Rho    float64
}

// TopCountries returns the n rows with the highest score values as a new
// dataset, ties kept in input order.
func TopCountries(ds *dataset.Dataset, scoreColumn string, n int) *dataset.Dataset {
	return rankedHead(ds, scoreColumn, n, true)
}

// BottomCountries returns the n rows with the lowest score values.
func BottomCountries(ds *dataset.Dataset, scoreColumn string, n int) *dataset.Dataset {
	return rankedHead(ds, scoreColumn, n, false)
}

func rankedHead(ds *dataset.Dataset, scoreColumn string, n int, desc bool) *dataset.Dataset {
	type scored struct {
		idx int
		val float64
	}
	var rows []scored
	for i := range ds.Rows {
		if v, ok := ds.Numeric(i, scoreColumn); ok {
			rows = append(rows, scored{idx: i, val: v})
		}
	}
	sort.SliceStable(rows, func(a, b int) bool {
		if desc {
			return rows[a].val > rows[b].val
		}
		return rows[a].val < rows[b].val
	})
	if n > len(rows) {
		n = len(rows)
	}
	out := &dataset.Dataset{Columns: append([]string(nil), ds.Columns...)}
	for _, s := range rows[:n] {
		out.Rows = append(out.Rows, ds.Rows[s.idx])
	}
	return out
}

// RegionalSummary computes mean, sample stddev, and count of scoreColumn
// per region, sorted by mean descending. Rows without a region label are
// skipped; an absent region column yields an empty slice.
func RegionalSummary(ds *dataset.Dataset, scoreColumn string) []RegionSummary {
	byRegion := make(map[string][]float64)
	var order []string
	for i := range ds.Rows {
		region, okR := ds.Label(i, index.ColRegion)
		v, okV := ds.Numeric(i, scoreColumn)
		if !okR || !okV {
			continue
		}
		if _, seen := byRegion[region]; !seen {
			order = append(order, region)
		}
		byRegion[region] = append(byRegion[region], v)
	}
	out := make([]RegionSummary, 0, len(order))
	for _, region := range order {
		vals := byRegion[region]
		out = append(out, RegionSummary{
			Region: region,
			Mean:   stats.Mean(vals),
			Std:    stats.SampleStd(vals),
			Count:  len(vals),
		})
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Mean > out[b].Mean })
	return out
}

// CorrelationsWithScore computes the Pearson and Spearman correlations of
// every other numeric column against scoreColumn over paired non-missing
// rows, sorted by |r| descending. Columns with fewer than two usable pairs
// or zero variance are dropped.
func CorrelationsWithScore(ds *dataset.Dataset, scoreColumn string) []PairCorr {
	var out []PairCorr
	for _, name := range ds.Columns {
		if name == scoreColumn {
			continue
		}
		var a, b []float64
		for i := range ds.Rows {
			va, okA := ds.Numeric(i, name)
			vb, okB := ds.Numeric(i, scoreColumn)
			if okA && okB {
				a = append(a, va)
				b = append(b, vb)
			}
		}
		if r, ok := stats.Pearson(a, b); ok {
			rho, _ := stats.Spearman(a, b)
			out = append(out, PairCorr{Column: name, R: r, Rho: rho})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := math.Abs(out[i].R), math.Abs(out[j].R)
		if ai == aj {
			return out[i].Column < out[j].Column
		}
		return ai > aj
	})
	return out
}
