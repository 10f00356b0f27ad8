package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Bibz-a/World-Happiness-Analysis/internal/index"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/report"
	"github.com/spf13/cobra"
)

var (
	idxWeightArgs []string
	idxTopN       int
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Compute the composite happiness index and its statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadCleanDataset()
		if err != nil {
			return err
		}

		wm := cfg.Weights
		if len(idxWeightArgs) > 0 {
			wm, err = parseWeightArgs(idxWeightArgs)
			if err != nil {
				return err
			}
		}
		weights, err := index.NewWeights(wm)
		if err != nil {
			return err
		}

		res := index.Composite(ds, weights)
		for _, w := range res.Warnings {
			fmt.Printf("⚠ Warning: %s\n", w)
		}

		topN := cfg.TopN
		if idxTopN > 0 {
			topN = idxTopN
		}
		fmt.Print(report.Comparison(index.CompareWithOriginal(res.Data), topN))
		fmt.Println()
		fmt.Print(report.Statistics(index.Statistics(res.Data)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringArrayVarP(&idxWeightArgs, "weight", "w", nil, "indicator weight as 'Name=0.2' (repeatable; replaces config weights)")
	indexCmd.Flags().IntVar(&idxTopN, "top", 0, "rows to show in the composite table (default from config)")
}

// parseWeightArgs turns repeated 'Indicator Name=0.2' flags into a weight
// map. Validation of names and values happens in index.NewWeights.
func parseWeightArgs(args []string) (map[string]float64, error) {
	m := make(map[string]float64, len(args))
	for _, a := range args {
		name, val, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --weight %q (want 'Name=0.2')", a)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --weight value in %q: %w", a, err)
		}
		m[strings.TrimSpace(name)] = f
	}
	return m, nil
}
