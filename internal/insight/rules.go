// Package insight runs a fixed battery of independent rule evaluators over
// a cleaned dataset. Each rule is a pure function producing zero or more
// findings; the battery is a data value, so reordering or extending it is a
// list edit, not a control-flow change.
package insight

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Bibz-a/World-Happiness-Analysis/internal/dataset"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/index"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/stats"
)

// OutlierMethod selects the outlier detection variant.
type OutlierMethod string

const (
	MethodIQR    OutlierMethod = "iqr"
	MethodZScore OutlierMethod = "zscore"
)

// How many example entity names a finding quotes.
const sampleSize = 5

// Config carries the thresholds of the default rule battery. Zero value is
// not useful; start from DefaultConfig.
type Config struct {
	GDPThreshold        float64
	GenerosityThreshold float64
	HappinessThreshold  float64
	StabilityThreshold  float64
	OutlierMethod       OutlierMethod
	ZScoreThreshold     float64
}

// DefaultConfig mirrors the upstream dashboard defaults.
func DefaultConfig() Config {
	return Config{
		GDPThreshold:        1.0,
		GenerosityThreshold: 0.3,
		HappinessThreshold:  5.0,
		StabilityThreshold:  0.5,
		OutlierMethod:       MethodIQR,
		ZScoreThreshold:     3.0,
	}
}

// Rule pairs a name with a pure evaluator. Evaluators must not mutate ds.
type Rule struct {
	Name string
	Eval func(ds *dataset.Dataset) []Finding
}

// DefaultBattery returns the fixed rule sequence. Output order of
// GenerateAll follows this slice exactly.
func DefaultBattery(cfg Config) []Rule {
	return []Rule{
		{
			Name: "high_gdp_low_happiness",
			Eval: func(ds *dataset.Dataset) []Finding {
				return HighValueLowOutcome(ds, "high_gdp_low_happiness",
					index.Indicators[0], index.ColScore,
					cfg.GDPThreshold, cfg.HappinessThreshold)
			},
		},
		{
			Name: "happiness_stability",
			Eval: func(ds *dataset.Dataset) []Finding {
				return StabilityClassification(ds, "happiness_stability",
					index.ColCountry, index.ColScore, "Year", cfg.StabilityThreshold)
			},
		},
		{
			Name: "happiness_outliers",
			Eval: func(ds *dataset.Dataset) []Finding {
				return OutlierDetection(ds, "happiness_outliers",
					index.ColScore, cfg.OutlierMethod, cfg.ZScoreThreshold)
			},
		},
		{
			Name: "freedom_happiness_correlation",
			Eval: func(ds *dataset.Dataset) []Finding {
				return CorrelationClassification(ds, "freedom_happiness_correlation",
					"Freedom", index.ColScore)
			},
		},
		{
			Name: "high_generosity_low_happiness",
			Eval: func(ds *dataset.Dataset) []Finding {
				return HighValueLowOutcome(ds, "high_generosity_low_happiness",
					"Generosity", index.ColScore,
					cfg.GenerosityThreshold, cfg.HappinessThreshold)
			},
		},
	}
}

// GenerateAll evaluates every rule in order and concatenates the findings.
// A panic inside one evaluator is recovered, recorded as a diagnostic, and
// never stops the rest of the battery.
func GenerateAll(ds *dataset.Dataset, battery []Rule) (findings []Finding, diagnostics []string) {
	for _, rule := range battery {
		fs, diag := runRule(ds, rule)
		findings = append(findings, fs...)
		if diag != "" {
			diagnostics = append(diagnostics, diag)
		}
	}
	return findings, diagnostics
}

func runRule(ds *dataset.Dataset, rule Rule) (fs []Finding, diag string) {
	defer func() {
		if r := recover(); r != nil {
			fs = nil
			diag = fmt.Sprintf("rule %s failed: %v", rule.Name, r)
		}
	}()
	return rule.Eval(ds), ""
}

// HighValueLowOutcome selects rows where valueColumn >= valueThreshold and
// outcomeColumn <= outcomeThreshold. It emits one count-based finding with
// the qualifying rows attached; no matches still produce a finding with an
// empty sub-table. Missing columns or an empty dataset produce nothing.
func HighValueLowOutcome(ds *dataset.Dataset, rule, valueColumn, outcomeColumn string, valueThreshold, outcomeThreshold float64) []Finding {
	if ds.Len() == 0 || !ds.HasColumn(valueColumn) || !ds.HasColumn(outcomeColumn) {
		return nil
	}
	sel := ds.Select(func(i int) bool {
		v, okV := ds.Numeric(i, valueColumn)
		o, okO := ds.Numeric(i, outcomeColumn)
		return okV && okO && v >= valueThreshold && o <= outcomeThreshold
	})
	var text string
	if sel.Len() > 0 {
		text = fmt.Sprintf("%d entities have high %s (>=%g) but low %s (<=%g): %s",
			sel.Len(), valueColumn, valueThreshold, outcomeColumn, outcomeThreshold,
			sampleNames(sel))
	} else {
		text = fmt.Sprintf("No entities with %s >=%g and %s <=%g.",
			valueColumn, valueThreshold, outcomeColumn, outcomeThreshold)
	}
	return []Finding{newFinding(rule, text, sel)}
}

// StabilityClassification splits groups into stable and volatile by the
// sample standard deviation of valueColumn across their time-indexed rows.
// Groups without at least two distinct year values are skipped; if the year
// column is absent or no group qualifies, no finding is produced.
func StabilityClassification(ds *dataset.Dataset, rule, groupColumn, valueColumn, yearColumn string, stabilityThreshold float64) []Finding {
	if !ds.HasColumn(yearColumn) || !ds.HasColumn(groupColumn) || !ds.HasColumn(valueColumn) {
		return nil
	}
	type series struct {
		years map[float64]bool
		vals  []float64
	}
	byGroup := make(map[string]*series)
	var order []string
	for i := range ds.Rows {
		g, okG := ds.Label(i, groupColumn)
		y, okY := ds.Numeric(i, yearColumn)
		v, okV := ds.Numeric(i, valueColumn)
		if !okG || !okY || !okV {
			continue
		}
		s := byGroup[g]
		if s == nil {
			s = &series{years: make(map[float64]bool)}
			byGroup[g] = s
			order = append(order, g)
		}
		s.years[y] = true
		s.vals = append(s.vals, v)
	}

	var stable, volatile []string
	for _, g := range order {
		s := byGroup[g]
		if len(s.years) < 2 {
			continue
		}
		if sd := stats.SampleStd(s.vals); sd <= stabilityThreshold {
			stable = append(stable, g)
		} else {
			volatile = append(volatile, g)
		}
	}
	if len(stable)+len(volatile) == 0 {
		return nil
	}
	text := fmt.Sprintf("%s stability (std threshold %g): %d stable (e.g. %s), %d volatile (e.g. %s)",
		valueColumn, stabilityThreshold,
		len(stable), head(stable), len(volatile), head(volatile))
	return []Finding{newFinding(rule, text, nil)}
}

// OutlierDetection flags rows whose valueColumn falls outside the IQR
// fences [Q1 - 1.5*IQR, Q3 + 1.5*IQR], or, with the zscore method, rows
// where |v - mean| / std exceeds zThreshold. It emits one finding naming a
// sample of outliers plus the full outlier sub-table; no outliers means no
// finding.
func OutlierDetection(ds *dataset.Dataset, rule, valueColumn string, method OutlierMethod, zThreshold float64) []Finding {
	vals := ds.ColumnValues(valueColumn)
	if len(vals) == 0 {
		return nil
	}
	var lo, hi float64
	switch method {
	case MethodZScore:
		mean := stats.Mean(vals)
		std := stats.SampleStd(vals)
		if math.IsNaN(std) || std == 0 {
			return nil
		}
		if zThreshold <= 0 {
			zThreshold = 3
		}
		lo = mean - zThreshold*std
		hi = mean + zThreshold*std
	default:
		q1 := stats.Quantile(vals, 0.25)
		q3 := stats.Quantile(vals, 0.75)
		iqr := q3 - q1
		lo = q1 - 1.5*iqr
		hi = q3 + 1.5*iqr
	}
	sel := ds.Select(func(i int) bool {
		v, ok := ds.Numeric(i, valueColumn)
		return ok && (v < lo || v > hi)
	})
	if sel.Len() == 0 {
		return nil
	}
	text := fmt.Sprintf("%d %s outliers (%s method): %s",
		sel.Len(), valueColumn, method, sampleNames(sel))
	return []Finding{newFinding(rule, text, sel)}
}

// CorrelationClassification reports the Pearson correlation between two
// columns over rows where both are present, classified as strong
// (|r| >= 0.7), moderate (|r| >= 0.4), or weak, with the sign noted. Fewer
// than three paired observations produce no finding.
func CorrelationClassification(ds *dataset.Dataset, rule, columnA, columnB string) []Finding {
	var a, b []float64
	for i := range ds.Rows {
		va, okA := ds.Numeric(i, columnA)
		vb, okB := ds.Numeric(i, columnB)
		if okA && okB {
			a = append(a, va)
			b = append(b, vb)
		}
	}
	if len(a) < 3 {
		return nil
	}
	r, ok := stats.Pearson(a, b)
	if !ok {
		return nil
	}
	text := fmt.Sprintf("%s %s %s-%s correlation (r=%.2f)",
		classifyMagnitude(r), classifySign(r), columnA, columnB, r)
	return []Finding{newFinding(rule, text, nil)}
}

func classifyMagnitude(r float64) string {
	switch abs := math.Abs(r); {
	case abs >= 0.7:
		return "Strong"
	case abs >= 0.4:
		return "Moderate"
	default:
		return "Weak"
	}
}

func classifySign(r float64) string {
	if r < 0 {
		return "negative"
	}
	return "positive"
}

// sampleNames quotes up to sampleSize country labels from a sub-table,
// falling back to row numbers when the label column is absent.
func sampleNames(ds *dataset.Dataset) string {
	names := make([]string, 0, sampleSize)
	for i := range ds.Rows {
		if len(names) == sampleSize {
			break
		}
		if c, ok := ds.Label(i, index.ColCountry); ok {
			names = append(names, c)
		} else {
			names = append(names, fmt.Sprintf("row %d", i+1))
		}
	}
	return strings.Join(names, ", ")
}

func head(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	if len(sorted) > sampleSize {
		sorted = sorted[:sampleSize]
	}
	return strings.Join(sorted, ", ")
}
