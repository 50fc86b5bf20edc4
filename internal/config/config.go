package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/nanostat"
)

// Global configuration structure.
type Global struct {
	// OutputDir is where report artefacts (table, chart, data dump) land.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	// IgnoreSamples holds glob patterns for sample names to drop after
	// aggregation, e.g. "undetermined_*".
	IgnoreSamples []string `mapstructure:"ignore_samples" yaml:"ignore_samples"`
	// ReportTitle is the page title used for rendered charts.
	ReportTitle string `mapstructure:"report_title" yaml:"report_title"`

	// Display-unit scaling for count columns.
	BaseCountPrefix         string  `mapstructure:"base_count_prefix" yaml:"base_count_prefix"`
	BaseCountDesc           string  `mapstructure:"base_count_desc" yaml:"base_count_desc"`
	BaseCountMultiplier     float64 `mapstructure:"base_count_multiplier" yaml:"base_count_multiplier"`
	LongReadCountPrefix     string  `mapstructure:"long_read_count_prefix" yaml:"long_read_count_prefix"`
	LongReadCountDesc       string  `mapstructure:"long_read_count_desc" yaml:"long_read_count_desc"`
	LongReadCountMultiplier float64 `mapstructure:"long_read_count_multiplier" yaml:"long_read_count_multiplier"`
}

// Scaling converts the configured display units into the column builder's
// form.
func (c *Global) Scaling() nanostat.Scaling {
	return nanostat.Scaling{
		BaseCountPrefix:         c.BaseCountPrefix,
		BaseCountDesc:           c.BaseCountDesc,
		BaseCountMultiplier:     c.BaseCountMultiplier,
		LongReadCountPrefix:     c.LongReadCountPrefix,
		LongReadCountDesc:       c.LongReadCountDesc,
		LongReadCountMultiplier: c.LongReadCountMultiplier,
	}
}

// Save writes the given configuration to the cfgFile path. If cfgFile is
// empty, it writes to ~/.multiqc/config.yaml, creating the directory if
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
		dir := filepath.Join(home, ".multiqc")
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
	v.SetEnvPrefix("MULTIQC")
	v.AutomaticEnv()

	// Defaults match the stock MultiQC display units.
	v.SetDefault("output_dir", "multiqc_report")
	v.SetDefault("ignore_samples", []string{})
	v.SetDefault("report_title", "MultiQC Report")
	v.SetDefault("base_count_prefix", "Mb")
	v.SetDefault("base_count_desc", "millions")
	v.SetDefault("base_count_multiplier", 1e-6)
	v.SetDefault("long_read_count_prefix", "K")
	v.SetDefault("long_read_count_desc", "thousands")
	v.SetDefault("long_read_count_multiplier", 1e-3)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".multiqc")
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
