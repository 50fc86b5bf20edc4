package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/Australian-Structural-Biology-Computing/MultiQC/internal/config"
)

var (
	// Global flags
	cfgFile string
	verbose bool

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "multiqc",
	Short: "MultiQC: aggregate long-read sequencing QC reports",
	Long:  `MultiQC scans a directory of NanoStat reports, merges per-sample statistics across report layouts, and writes a general-stats table, a reads-by-quality chart and a flat data dump.`,
}

// Execute is the entry point called by main.main()
func Execute() {
	// Initialize configuration and logging before executing commands
	cobra.OnInitialize(loadConfig)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.multiqc/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func loadConfig() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to defaults via activeConfig
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		return
	}
	cfg = c
}

// activeConfig returns the loaded configuration, loading it on demand for
// code paths (tests, completion) that bypass cobra's initializers.
func activeConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	if c, err := cfgpkg.Load(cfgFile); err == nil {
		cfg = c
		return c
	}
	return &cfgpkg.Global{OutputDir: "multiqc_report", ReportTitle: "MultiQC Report"}
}
