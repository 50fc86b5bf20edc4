package report

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/nanostat"
)

// ColumnSummary is a cross-sample digest of one visible table column, in
// display units.
type ColumnSummary struct {
	Title  string
	N      int
	Mean   float64
	Median float64
}

// Summarize computes mean and median across samples for each visible column.
// Columns with no values in any sample are skipped.
func Summarize(store *nanostat.Store, cols []nanostat.Column) ([]ColumnSummary, error) {
	var out []ColumnSummary
	for _, c := range VisibleColumns(cols) {
		var values []float64
		for _, sample := range store.SampleNames() {
			if v, ok := store.Sample(sample)[c.Key]; ok {
				if c.Modify != nil {
					v = c.Modify(v)
				}
				values = append(values, v)
			}
		}
		if len(values) == 0 {
			continue
		}
		mean, err := stats.Mean(values)
		if err != nil {
			return nil, fmt.Errorf("summarize %q: %w", c.Title, err)
		}
		median, err := stats.Median(values)
		if err != nil {
			return nil, fmt.Errorf("summarize %q: %w", c.Title, err)
		}
		out = append(out, ColumnSummary{Title: c.Title, N: len(values), Mean: mean, Median: median})
	}
	return out, nil
}
