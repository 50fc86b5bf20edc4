package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/discovery"
	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/nanostat"
	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/report"
	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/utils"
)

var (
	runOutDir  string
	runIgnore  []string
	runNoXLSX  bool
	runNoChart bool
)

var runCmd = &cobra.Command{
	Use:   "run <dir>",
	Short: "Aggregate NanoStat reports under <dir> and write report artefacts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := activeConfig()
		outDir := c.OutputDir
		if runOutDir != "" {
			outDir = runOutDir
		}
		ignore := append(append([]string{}, c.IgnoreSamples...), runIgnore...)

		sources, err := discovery.Find(args[0])
		if err != nil {
			return err
		}

		store := nanostat.NewStore()
		srcBySample := make(map[string]string)
		dropped := 0
		for _, src := range sources {
			rec, err := parseReportFile(src.Path)
			if err != nil {
				if errors.Is(err, nanostat.ErrUnrecognized) {
					slog.Debug("unrecognized NanoStat layout, skipping", "file", src.Path)
				} else {
					// A corrupt report is rejected whole; one bad file must
					// not take the run down.
					slog.Error("rejecting corrupt report", "file", src.Path, "err", err)
				}
				dropped++
				continue
			}
			if conflicts := store.Merge(src.Sample, rec); len(conflicts) > 0 {
				slog.Warn("duplicate sample data found, overwriting",
					"sample", src.Sample, "file", src.Path, "fields", len(conflicts))
			}
			srcBySample[src.Sample] = src.Path
		}
		if dropped > 0 {
			slog.Info("skipped input files", "count", dropped)
		}

		if err := store.Finalize(ignore); err != nil {
			return err
		}
		slog.Info("found reports", "count", store.Len())

		cols := nanostat.BuildColumns(store, c.Scaling())
		rows, variant, err := nanostat.BuildHistogram(store)
		if err != nil {
			return fmt.Errorf("quality histogram: %w", err)
		}

		if err := utils.EnsureDir(outDir); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := writeArtefacts(outDir, store, cols, rows, variant, srcBySample, dropped, c.ReportTitle); err != nil {
			return err
		}

		sums, err := report.Summarize(store, cols)
		if err != nil {
			return err
		}
		if len(sums) > 0 {
			fmt.Println("Across samples:")
			for _, s := range sums {
				fmt.Printf("  %-32s n=%d mean=%.4g median=%.4g\n", s.Title, s.N, s.Mean, s.Median)
			}
		}
		return nil
	},
}

func parseReportFile(path string) (*nanostat.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return nanostat.Parse(f)
}

func writeArtefacts(outDir string, store *nanostat.Store, cols []nanostat.Column,
	rows map[string]nanostat.Buckets, variant nanostat.Variant,
	srcBySample map[string]string, dropped int, pageTitle string) error {

	dump := filepath.Join(outDir, "multiqc_nanostat.txt")
	if err := report.WriteDataDump(dump, store); err != nil {
		return err
	}
	fmt.Printf("✓ Wrote data dump to %s\n", dump)

	// Only samples that survived finalization belong in the provenance files.
	sources := make(map[string]string)
	for _, sample := range store.SampleNames() {
		if path, ok := srcBySample[sample]; ok {
			sources[sample] = path
		}
	}
	if err := report.WriteSources(filepath.Join(outDir, "multiqc_sources.txt"), sources); err != nil {
		return err
	}
	if err := report.WriteManifest(filepath.Join(outDir, "multiqc_run.json"), report.NewManifest(store, sources, dropped)); err != nil {
		return err
	}

	table := filepath.Join(outDir, "general_stats.tsv")
	f, err := os.Create(table)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	if err := report.WriteTableTSV(f, store, cols); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close table: %w", err)
	}
	fmt.Printf("✓ Wrote general stats table to %s\n", table)

	if !runNoXLSX {
		xlsx := filepath.Join(outDir, "general_stats.xlsx")
		if err := report.WriteTableXLSX(xlsx, store, cols); err != nil {
			return err
		}
		fmt.Printf("✓ Wrote general stats workbook to %s\n", xlsx)
	}

	if !runNoChart && len(rows) > 0 {
		chart := filepath.Join(outDir, "nanostat_quality_dist.html")
		cf, err := os.Create(chart)
		if err != nil {
			return fmt.Errorf("create chart: %w", err)
		}
		if err := report.RenderQualityChart(cf, rows, variant, pageTitle); err != nil {
			cf.Close()
			return err
		}
		if err := cf.Close(); err != nil {
			return fmt.Errorf("close chart: %w", err)
		}
		fmt.Printf("✓ Wrote quality distribution chart to %s\n", chart)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVarP(&runOutDir, "outdir", "o", "", "output directory (overrides config)")
	runCmd.Flags().StringSliceVar(&runIgnore, "ignore-samples", nil, "glob patterns of sample names to drop (repeatable)")
	runCmd.Flags().BoolVar(&runNoXLSX, "no-xlsx", false, "skip the XLSX table")
	runCmd.Flags().BoolVar(&runNoChart, "no-chart", false, "skip the quality distribution chart")
}
