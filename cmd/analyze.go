package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/Bibz-a/World-Happiness-Analysis/internal/analysis"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/index"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/insight"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/report"
	"github.com/spf13/cobra"
)

var (
	anaOutputPath   string
	anaInsightsPath string
	anaTopN         int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full pipeline: clean, index, analyze, and generate insights",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadCleanDataset()
		if err != nil {
			return err
		}
		fmt.Printf("✓ Loaded %d rows from %s\n", ds.Len(), cfg.DataPath)

		weights, err := index.NewWeights(cfg.Weights)
		if err != nil {
			return err
		}
		res := index.Composite(ds, weights)
		for _, w := range res.Warnings {
			fmt.Fprintf(os.Stderr, "⚠ Warning: %s\n", w)
		}

		topN := cfg.TopN
		if anaTopN > 0 {
			topN = anaTopN
		}

		var b strings.Builder
		b.WriteString(report.Comparison(index.CompareWithOriginal(res.Data), topN))
		b.WriteString("\n")
		b.WriteString(report.Statistics(index.Statistics(res.Data)))
		b.WriteString("\n")
		b.WriteString(report.Regions(analysis.RegionalSummary(ds, index.ColScore)))
		b.WriteString("\n")
		b.WriteString(report.Correlations(analysis.CorrelationsWithScore(ds, index.ColScore)))
		b.WriteString("\n")

		ic, err := insightConfig()
		if err != nil {
			return err
		}
		findings, diags := insight.GenerateAll(ds, insight.DefaultBattery(ic))
		insightsMD := report.Findings(findings, diags)
		b.WriteString(insightsMD)

		if anaInsightsPath != "" {
			if err := os.WriteFile(anaInsightsPath, []byte(insightsMD), 0o644); err != nil {
				return fmt.Errorf("write insights: %w", err)
			}
			fmt.Printf("✓ Wrote insights to %s\n", anaInsightsPath)
		}
		if anaOutputPath != "" {
			if err := os.WriteFile(anaOutputPath, []byte(b.String()), 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Printf("✓ Wrote analysis to %s\n", anaOutputPath)
			return nil
		}
		fmt.Println(b.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVarP(&anaOutputPath, "output", "o", "", "optional path to write the full analysis (Markdown)")
	analyzeCmd.Flags().StringVar(&anaInsightsPath, "insights-out", "", "optional path to write just the insights section")
	analyzeCmd.Flags().IntVar(&anaTopN, "top", 0, "rows to show in the composite table (default from config)")
}

// insightConfig maps the loaded global config onto the rule battery config.
// An unrecognized outlier_method is rejected rather than silently falling
// back to IQR.
func insightConfig() (insight.Config, error) {
	ic := insight.DefaultConfig()
	if cfg.GDPThreshold > 0 {
		ic.GDPThreshold = cfg.GDPThreshold
	}
	if cfg.GenerosityThreshold > 0 {
		ic.GenerosityThreshold = cfg.GenerosityThreshold
	}
	if cfg.HappinessThreshold > 0 {
		ic.HappinessThreshold = cfg.HappinessThreshold
	}
	if cfg.StabilityThreshold > 0 {
		ic.StabilityThreshold = cfg.StabilityThreshold
	}
	switch cfg.OutlierMethod {
	case "":
	case string(insight.MethodIQR), string(insight.MethodZScore):
		ic.OutlierMethod = insight.OutlierMethod(cfg.OutlierMethod)
	default:
		return ic, fmt.Errorf("unsupported outlier_method in config: %s (use 'iqr'|'zscore')", cfg.OutlierMethod)
	}
	if cfg.ZScoreThreshold > 0 {
		ic.ZScoreThreshold = cfg.ZScoreThreshold
	}
	return ic, nil
}
