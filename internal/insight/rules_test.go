package insight

import (
	"strings"
	"testing"

	"github.com/Bibz-a/World-Happiness-Analysis/internal/dataset"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/index"
)

func scoresDataset(scores []float64) *dataset.Dataset {
	ds := dataset.New(index.ColCountry, index.ColScore)
	for i, s := range scores {
		row := dataset.NewRow()
		row.Text[index.ColCountry] = string(rune('A' + i))
		row.Num[index.ColScore] = s
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

func TestHighValueLowOutcome(t *testing.T) {
	ds := dataset.New(index.ColCountry, "Value", "Outcome")
	add := func(country string, value, outcome float64) {
		row := dataset.NewRow()
		row.Text[index.ColCountry] = country
		row.Num["Value"] = value
		row.Num["Outcome"] = outcome
		ds.Rows = append(ds.Rows, row)
	}
	add("A", 1.5, 4.0)
	add("B", 0.5, 7.0)

	fs := HighValueLowOutcome(ds, "test_rule", "Value", "Outcome", 1.0, 5.0)
	if len(fs) != 1 {
		t.Fatalf("findings = %d, want 1", len(fs))
	}
	f := fs[0]
	if f.Rule != "test_rule" {
		t.Fatalf("rule tag = %q", f.Rule)
	}
	if f.Table == nil || f.Table.Len() != 1 {
		t.Fatalf("sub-table = %+v, want exactly one row", f.Table)
	}
	if c, _ := f.Table.Label(0, index.ColCountry); c != "A" {
		t.Fatalf("qualifying row = %q, want A", c)
	}
	if !strings.Contains(f.Text, "1 entities") || !strings.Contains(f.Text, "A") {
		t.Fatalf("finding text = %q", f.Text)
	}
}

func TestHighValueLowOutcomeNoMatches(t *testing.T) {
	ds := dataset.New(index.ColCountry, "Value", "Outcome")
	row := dataset.NewRow()
	row.Text[index.ColCountry] = "B"
	row.Num["Value"] = 0.5
	row.Num["Outcome"] = 7.0
	ds.Rows = append(ds.Rows, row)

	fs := HighValueLowOutcome(ds, "r", "Value", "Outcome", 1.0, 5.0)
	if len(fs) != 1 {
		t.Fatalf("findings = %d, want 1 (count-zero finding)", len(fs))
	}
	if fs[0].Table == nil || fs[0].Table.Len() != 0 {
		t.Fatalf("sub-table should be empty, got %+v", fs[0].Table)
	}
	if !strings.Contains(fs[0].Text, "No entities") {
		t.Fatalf("finding text = %q", fs[0].Text)
	}
}

func TestHighValueLowOutcomeMissingColumn(t *testing.T) {
	ds := scoresDataset([]float64{5})
	if fs := HighValueLowOutcome(ds, "r", "Nope", index.ColScore, 1, 5); fs != nil {
		t.Fatalf("expected nil findings for missing column, got %v", fs)
	}
}

func TestOutlierDetectionIQR(t *testing.T) {
	ds := scoresDataset([]float64{1, 2, 3, 4, 5, 100})
	fs := OutlierDetection(ds, "r", index.ColScore, MethodIQR, 0)
	if len(fs) != 1 {
		t.Fatalf("findings = %d, want 1", len(fs))
	}
	tbl := fs[0].Table
	if tbl.Len() != 1 {
		t.Fatalf("outlier rows = %d, want exactly 1", tbl.Len())
	}
	if v, _ := tbl.Numeric(0, index.ColScore); v != 100 {
		t.Fatalf("outlier value = %f, want 100", v)
	}
}

func TestOutlierDetectionZScore(t *testing.T) {
	// A tight cluster plus one extreme point; with threshold 2 the extreme
	// point exceeds mean + 2*std.
	scores := []float64{5, 5.1, 4.9, 5.05, 4.95, 5, 5.1, 4.9, 20}
	ds := scoresDataset(scores)
	fs := OutlierDetection(ds, "r", index.ColScore, MethodZScore, 2)
	if len(fs) != 1 {
		t.Fatalf("findings = %d, want 1", len(fs))
	}
	if fs[0].Table.Len() != 1 {
		t.Fatalf("outlier rows = %d, want 1", fs[0].Table.Len())
	}
	if v, _ := fs[0].Table.Numeric(0, index.ColScore); v != 20 {
		t.Fatalf("outlier value = %f, want 20", v)
	}
}

func TestOutlierDetectionNoOutliers(t *testing.T) {
	ds := scoresDataset([]float64{1, 2, 3, 4, 5})
	if fs := OutlierDetection(ds, "r", index.ColScore, MethodIQR, 0); fs != nil {
		t.Fatalf("expected no findings, got %v", fs)
	}
}

func TestCorrelationClassificationStrong(t *testing.T) {
	ds := dataset.New("X", "Y")
	for _, x := range []float64{1, 2, 3, 4, 5} {
		row := dataset.NewRow()
		row.Num["X"] = x
		row.Num["Y"] = 2*x + 1
		ds.Rows = append(ds.Rows, row)
	}
	fs := CorrelationClassification(ds, "r", "X", "Y")
	if len(fs) != 1 {
		t.Fatalf("findings = %d, want 1", len(fs))
	}
	if !strings.Contains(fs[0].Text, "Strong") || !strings.Contains(fs[0].Text, "positive") {
		t.Fatalf("finding text = %q", fs[0].Text)
	}
	if !strings.Contains(fs[0].Text, "r=1.00") {
		t.Fatalf("finding text missing coefficient: %q", fs[0].Text)
	}
}

func TestCorrelationClassificationTooFewPairs(t *testing.T) {
	ds := dataset.New("X", "Y")
	for _, x := range []float64{1, 2} {
		row := dataset.NewRow()
		row.Num["X"] = x
		row.Num["Y"] = x
		ds.Rows = append(ds.Rows, row)
	}
	if fs := CorrelationClassification(ds, "r", "X", "Y"); fs != nil {
		t.Fatalf("expected no findings under 3 pairs, got %v", fs)
	}
}

func TestClassifyMagnitude(t *testing.T) {
	cases := []struct {
		r    float64
		want string
	}{
		{0.9, "Strong"},
		{-0.75, "Strong"},
		{0.5, "Moderate"},
		{-0.41, "Moderate"},
		{0.39, "Weak"},
		{0, "Weak"},
	}
	for _, c := range cases {
		if got := classifyMagnitude(c.r); got != c.want {
			t.Fatalf("classifyMagnitude(%v) = %q, want %q", c.r, got, c.want)
		}
	}
}

func TestStabilityClassification(t *testing.T) {
	ds := dataset.New(index.ColCountry, index.ColScore, "Year")
	add := func(country string, year, score float64) {
		row := dataset.NewRow()
		row.Text[index.ColCountry] = country
		row.Num["Year"] = year
		row.Num[index.ColScore] = score
		ds.Rows = append(ds.Rows, row)
	}
	// Steady: sample std ~0.07. Swingy: sample std ~1.41.
	add("Steady", 2015, 5.0)
	add("Steady", 2016, 5.1)
	add("Swingy", 2015, 4.0)
	add("Swingy", 2016, 6.0)
	// OneYear has a single distinct year and is skipped.
	add("OneYear", 2015, 3.0)
	add("OneYear", 2015, 9.0)

	fs := StabilityClassification(ds, "stab", index.ColCountry, index.ColScore, "Year", 0.5)
	if len(fs) != 1 {
		t.Fatalf("findings = %d, want 1", len(fs))
	}
	text := fs[0].Text
	if !strings.Contains(text, "1 stable") || !strings.Contains(text, "Steady") {
		t.Fatalf("finding text = %q", text)
	}
	if !strings.Contains(text, "1 volatile") || !strings.Contains(text, "Swingy") {
		t.Fatalf("finding text = %q", text)
	}
	if strings.Contains(text, "OneYear") {
		t.Fatalf("single-year group should be skipped: %q", text)
	}
}

func TestStabilityNoYearColumn(t *testing.T) {
	ds := scoresDataset([]float64{5, 6})
	if fs := StabilityClassification(ds, "stab", index.ColCountry, index.ColScore, "Year", 0.5); fs != nil {
		t.Fatalf("expected no findings without year column, got %v", fs)
	}
}

func TestGenerateAllEmptyDataset(t *testing.T) {
	fs, diags := GenerateAll(dataset.New(), DefaultBattery(DefaultConfig()))
	if len(fs) != 0 {
		t.Fatalf("findings = %d, want 0", len(fs))
	}
	if len(diags) != 0 {
		t.Fatalf("diagnostics = %v, want none", diags)
	}
}

func TestGenerateAllOrderIsDeterministic(t *testing.T) {
	ds := dataset.New(index.ColCountry, index.Indicators[0], "Generosity", "Freedom", index.ColScore)
	add := func(country string, gdp, gen, freedom, score float64) {
		row := dataset.NewRow()
		row.Text[index.ColCountry] = country
		row.Num[index.Indicators[0]] = gdp
		row.Num["Generosity"] = gen
		row.Num["Freedom"] = freedom
		row.Num[index.ColScore] = score
		ds.Rows = append(ds.Rows, row)
	}
	add("A", 1.5, 0.5, 0.6, 4.0)
	add("B", 0.4, 0.1, 0.3, 6.0)
	add("C", 1.1, 0.4, 0.5, 4.5)
	add("D", 0.2, 0.05, 0.2, 7.2)

	fs, _ := GenerateAll(ds, DefaultBattery(DefaultConfig()))
	var rules []string
	for _, f := range fs {
		rules = append(rules, f.Rule)
	}
	want := []string{
		"high_gdp_low_happiness",
		"freedom_happiness_correlation",
		"high_generosity_low_happiness",
	}
	if len(rules) != len(want) {
		t.Fatalf("rules = %v, want %v", rules, want)
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Fatalf("rule[%d] = %q, want %q", i, rules[i], want[i])
		}
	}
	// Each finding carries a unique ID.
	ids := map[string]bool{}
	for _, f := range fs {
		if f.ID == "" || ids[f.ID] {
			t.Fatalf("duplicate or empty finding ID: %q", f.ID)
		}
		ids[f.ID] = true
	}
}

func TestGenerateAllIsolatesPanics(t *testing.T) {
	ds := scoresDataset([]float64{1, 2, 3})
	battery := []Rule{
		{Name: "boom", Eval: func(*dataset.Dataset) []Finding { panic("kaboom") }},
		{Name: "ok", Eval: func(d *dataset.Dataset) []Finding {
			return []Finding{newFinding("ok", "fine", nil)}
		}},
	}
	fs, diags := GenerateAll(ds, battery)
	if len(fs) != 1 || fs[0].Rule != "ok" {
		t.Fatalf("findings = %+v, want only the ok rule", fs)
	}
	if len(diags) != 1 || !strings.Contains(diags[0], "boom") {
		t.Fatalf("diagnostics = %v", diags)
	}
}

func TestOutlierZScoreDegenerate(t *testing.T) {
	ds := scoresDataset([]float64{5, 5, 5})
	if fs := OutlierDetection(ds, "r", index.ColScore, MethodZScore, 3); fs != nil {
		t.Fatalf("zero-variance zscore should produce no findings, got %v", fs)
	}
	if fs := OutlierDetection(ds, "r", index.ColScore, MethodIQR, 0); fs != nil {
		t.Fatalf("zero-variance iqr should produce no findings, got %v", fs)
	}
}
