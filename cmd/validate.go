package cmd

import (
	"fmt"
	"sort"

	"github.com/Bibz-a/World-Happiness-Analysis/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	valFill    string
	valCleaned string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Clean the dataset and print a validation summary",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := dataset.LoadCSV(cfg.DataPath, 0)
		if err != nil {
			return err
		}
		opt := dataset.DefaultCleanOptions()
		if valFill != "" {
			opt.Fill = dataset.FillStrategy(valFill)
		} else if cfg.FillStrategy != "" {
			opt.Fill = dataset.FillStrategy(cfg.FillStrategy)
		}
		clean, err := dataset.Clean(raw, opt)
		if err != nil {
			return err
		}

		rep := dataset.Validate(clean)
		fmt.Printf("✓ Cleaned %d rows (%d before cleaning)\n", clean.Len(), raw.Len())
		fmt.Printf("  Columns: %d\n", rep.TotalColumns)
		total := 0
		cols := make([]string, 0, len(rep.MissingValues))
		for c := range rep.MissingValues {
			cols = append(cols, c)
		}
		sort.Strings(cols)
		for _, c := range cols {
			if n := rep.MissingValues[c]; n > 0 {
				fmt.Printf("  Missing in %s: %d\n", c, n)
				total += n
			}
		}
		fmt.Printf("  Missing values total: %d\n", total)

		if valCleaned != "" {
			if err := dataset.WriteCSV(clean, valCleaned); err != nil {
				return err
			}
			fmt.Printf("✓ Wrote cleaned data to %s\n", valCleaned)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&valFill, "fill", "", "missing-value strategy: 'mean'|'median'|'zero'|'drop' (default from config)")
	validateCmd.Flags().StringVarP(&valCleaned, "output", "o", "", "optional path to write the cleaned CSV")
}
