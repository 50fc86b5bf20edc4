package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/nanostat"
)

// RenderQualityChart renders the per-sample quality buckets as a stacked bar
// chart (HTML). Series follow the fixed bucket order so the legend is stable
// across runs; the title names the variant the counts came from.
func RenderQualityChart(w io.Writer, rows map[string]nanostat.Buckets, variant nanostat.Variant, pageTitle string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: pageTitle,
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("NanoStat: Reads by quality (%s)", variant),
			Subtitle: "Number of Reads",
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "# Reads"}),
	)

	samples := sortedSamples(rows)
	bar.SetXAxis(samples)
	for _, label := range nanostat.BucketLabels {
		data := make([]opts.BarData, len(samples))
		for i, sample := range samples {
			data[i] = opts.BarData{Value: rows[sample][label]}
		}
		bar.AddSeries("Reads "+label, data, charts.WithBarChartOpts(opts.BarChart{Stack: "reads"}))
	}

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
