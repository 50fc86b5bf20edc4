package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/nanostat"
)

// execute runs the root command with args, resetting run flags that persist
// Changed state across invocations.
func execute(t *testing.T, args ...string) error {
	t.Helper()
	runOutDir = ""
	runIgnore = nil
	runNoXLSX = false
	runNoChart = false
	if f := runCmd.Flags(); f != nil {
		for _, name := range []string{"outdir", "ignore-samples", "no-xlsx", "no-chart"} {
			if fl := f.Lookup(name); fl != nil {
				fl.Changed = false
			}
		}
	}
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func writeFixture(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

const alignedReport = `General summary:
Mean read length:        9,741.6
Mean read quality:           9.5
Number of reads:         1,000.0
Total bases:         2,000,000.0
Total bases aligned: 1,900,000.0
>Q5:	900 (90.0%)
>Q7:	700 (70.0%)
>Q10:	400 (40.0%)
>Q12:	200 (20.0%)
>Q15:	50 (5.0%)
`

const seqSummaryReport = `General summary:
Active channels: 512
Number of reads: 2,000
>Q5:	1800 (90.0%)
>Q7:	1400 (70.0%)
>Q10:	800 (40.0%)
>Q12:	400 (20.0%)
>Q15:	100 (5.0%)
`

func TestRunEndToEnd(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "report")
	writeFixture(t, in, "sample1_NanoStats.txt", alignedReport)
	writeFixture(t, in, "sample2_NanoStats.txt", seqSummaryReport)
	writeFixture(t, in, "mystery.txt", "Number of reads: 5\n") // no discriminator, dropped
	writeFixture(t, in, "broken.txt", "Active channels: 512\nNumber of reads: oops\n")

	require.NoError(t, execute(t, "run", in, "-o", out, "--no-xlsx"))

	dump, err := os.ReadFile(filepath.Join(out, "multiqc_nanostat.txt"))
	require.NoError(t, err)
	require.Contains(t, string(dump), "Total bases aligned (aligned)")
	require.Contains(t, string(dump), "Active channels (seq-summary)")

	table, err := os.ReadFile(filepath.Join(out, "general_stats.tsv"))
	require.NoError(t, err)
	require.Contains(t, string(table), "sample1")
	require.Contains(t, string(table), "sample2")

	chart, err := os.ReadFile(filepath.Join(out, "nanostat_quality_dist.html"))
	require.NoError(t, err)
	require.Contains(t, string(chart), "Reads by quality")

	sourcesOut, err := os.ReadFile(filepath.Join(out, "multiqc_sources.txt"))
	require.NoError(t, err)
	require.Contains(t, string(sourcesOut), "sample1_NanoStats.txt")

	manifest, err := os.ReadFile(filepath.Join(out, "multiqc_run.json"))
	require.NoError(t, err)
	require.Contains(t, string(manifest), `"samples": 2`)
	require.Contains(t, string(manifest), `"dropped_streams": 2`)
}

func TestRunNoUsableInput(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "report")
	writeFixture(t, in, "mystery.txt", "Number of reads: 5\n")

	err := execute(t, "run", in, "-o", out)
	require.ErrorIs(t, err, nanostat.ErrNoData)

	_, statErr := os.Stat(filepath.Join(out, "general_stats.tsv"))
	require.True(t, os.IsNotExist(statErr), "no table should be written without usable input")
}

func TestRunIgnoreSamplesToEmptyIsFatal(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "report")
	writeFixture(t, in, "sample1_NanoStats.txt", alignedReport)

	err := execute(t, "run", in, "-o", out, "--ignore-samples", "sample*")
	require.ErrorIs(t, err, nanostat.ErrNoData)
}

func TestListReports(t *testing.T) {
	in := t.TempDir()
	writeFixture(t, in, "sample1_NanoStats.txt", alignedReport)
	require.NoError(t, execute(t, "list", in))
}
