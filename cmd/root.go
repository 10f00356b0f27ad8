package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/Bibz-a/World-Happiness-Analysis/internal/config"
	"github.com/Bibz-a/World-Happiness-Analysis/internal/dataset"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile  string
	dataPath string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "happiness",
	Short: "Happiness CLI: composite index and rule-based insights over the World Happiness dataset",
	Long:  `Happiness is a CLI tool that normalizes the six happiness indicator columns, combines them into a weighted 0-10 composite index with ranks, and runs a battery of rule-based insight evaluators over the cleaned dataset.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.happiness/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "path to the dataset CSV (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{}
	}
	cfg = c
	// The --data flag wins even when the config failed to load.
	if dataPath != "" {
		cfg.DataPath = dataPath
	}
}

// loadCleanDataset reads the configured CSV and returns its cleaned copy.
func loadCleanDataset() (*dataset.Dataset, error) {
	ds, err := dataset.LoadCSV(cfg.DataPath, 0)
	if err != nil {
		return nil, err
	}
	opt := dataset.DefaultCleanOptions()
	if cfg.FillStrategy != "" {
		opt.Fill = dataset.FillStrategy(cfg.FillStrategy)
	}
	return dataset.Clean(ds, opt)
}
