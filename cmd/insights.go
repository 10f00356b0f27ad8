package cmd

import (
	"fmt"
	"os"

	"github.com/Bibz-a/World-Happiness-Analysis/internal/insight"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/report"
	"github.com/spf13/cobra"
)

var (
	insOutputPath string
	insMethod     string
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Run the rule-based insight battery over the cleaned dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadCleanDataset()
		if err != nil {
			return err
		}

		ic, err := insightConfig()
		if err != nil {
			return err
		}
		switch insMethod {
		case "":
		case string(insight.MethodIQR), string(insight.MethodZScore):
			ic.OutlierMethod = insight.OutlierMethod(insMethod)
		default:
			return fmt.Errorf("unsupported --method: %s (use 'iqr'|'zscore')", insMethod)
		}

		findings, diags := insight.GenerateAll(ds, insight.DefaultBattery(ic))
		md := report.Findings(findings, diags)
		if insOutputPath != "" {
			if err := os.WriteFile(insOutputPath, []byte(md), 0o644); err != nil {
				return fmt.Errorf("write insights: %w", err)
			}
			fmt.Printf("✓ Wrote insights to %s\n", insOutputPath)
			return nil
		}
		fmt.Print(md)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
	insightsCmd.Flags().StringVarP(&insOutputPath, "output", "o", "", "optional path to write insights (Markdown)")
	insightsCmd.Flags().StringVar(&insMethod, "method", "", "outlier method: 'iqr'|'zscore' (default from config)")
}
