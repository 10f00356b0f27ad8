package insight

import (
	"github.com/google/uuid"

	"github.com/Bibz-a/World-Happiness-Analysis/internal/dataset"
)

// Finding is one natural-language statement produced by a rule, tagged with
// the rule that produced it and optionally carrying the qualifying rows.
// Findings are immutable once returned.
type Finding struct {
	ID    string
	Rule  string
	Text  string
	Table *dataset.Dataset
}

func newFinding(rule, text string, table *dataset.Dataset) Finding {
	return Finding{
		ID:    uuid.NewString(),
		Rule:  rule,
		Text:  text,
		Table: table,
	}
}
