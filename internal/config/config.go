package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataPath     string             `mapstructure:"data_path" yaml:"data_path"`
	FillStrategy string             `mapstructure:"fill_strategy" yaml:"fill_strategy"`
	Weights      map[string]float64 `mapstructure:"weights" yaml:"weights"`

	// Insight rule thresholds
	GDPThreshold        float64 `mapstructure:"gdp_threshold" yaml:"gdp_threshold"`
	GenerosityThreshold float64 `mapstructure:"generosity_threshold" yaml:"generosity_threshold"`
	HappinessThreshold  float64 `mapstructure:"happiness_threshold" yaml:"happiness_threshold"`
	StabilityThreshold  float64 `mapstructure:"stability_threshold" yaml:"stability_threshold"`
	OutlierMethod       string  `mapstructure:"outlier_method" yaml:"outlier_method"`
	ZScoreThreshold     float64 `mapstructure:"zscore_threshold" yaml:"zscore_threshold"`

	// Presentation
	TopN int `mapstructure:"top_n" yaml:"top_n"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.happiness/config.yaml, creating the directory if
// necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".happiness")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("HAPPINESS")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data_path", filepath.Join("data", "raw", "WorldHappiness.csv"))
	v.SetDefault("fill_strategy", "mean")
	v.SetDefault("gdp_threshold", 1.0)
	v.SetDefault("generosity_threshold", 0.3)
	v.SetDefault("happiness_threshold", 5.0)
	v.SetDefault("stability_threshold", 0.5)
	v.SetDefault("outlier_method", "iqr")
	v.SetDefault("zscore_threshold", 3.0)
	v.SetDefault("top_n", 10)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".happiness")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
