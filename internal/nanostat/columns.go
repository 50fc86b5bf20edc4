package nanostat

import "fmt"

// Column describes one general-stats table column. The table renderer applies
// Modify and Format without interpreting field names.
type Column struct {
	Key         string
	Title       string
	Description string
	Min         *float64
	Max         *float64
	Suffix      string
	Format      string
	Scale       string
	SharedKey   string
	Modify      func(float64) float64
	Hidden      bool
	Placement   float64
}

// Scaling carries the configured display-unit conversions applied to raw
// counts, mirroring the host config (base counts shown as Mb, read counts as
// thousands, and so on).
type Scaling struct {
	BaseCountPrefix         string
	BaseCountDesc           string
	BaseCountMultiplier     float64
	LongReadCountPrefix     string
	LongReadCountDesc       string
	LongReadCountMultiplier float64
}

// DefaultScaling matches the stock MultiQC display units.
func DefaultScaling() Scaling {
	return Scaling{
		BaseCountPrefix:         "Mb",
		BaseCountDesc:           "millions",
		BaseCountMultiplier:     1e-6,
		LongReadCountPrefix:     "K",
		LongReadCountDesc:       "thousands",
		LongReadCountMultiplier: 1e-3,
	}
}

func f64(v float64) *float64 { return &v }

// baseTemplates is the static per-statistic column table. Statistics without
// an entry (the ">Q*" counts) still get a column, but a bare hidden one.
func baseTemplates(sc Scaling) map[string]Column {
	baseCount := func(x float64) float64 { return x * sc.BaseCountMultiplier }
	readCount := func(x float64) float64 { return x * sc.LongReadCountMultiplier }

	return map[string]Column{
		"Average percent identity": {
			Title:       "Mean Identity",
			Description: "Average percent identity",
			Max:         f64(100),
			Suffix:      "%",
			Scale:       "YlGn",
		},
		"Active channels": {
			Title:       "Active channels",
			Description: "Active channels",
			Scale:       "YlGn",
		},
		"Mean read length": {
			Title:       fmt.Sprintf("Mean length (%s)", sc.BaseCountPrefix),
			Description: fmt.Sprintf("Mean read length (%s)", sc.BaseCountDesc),
			Suffix:      "bp",
			Scale:       "YlGn",
			Modify:      baseCount,
			SharedKey:   "base_count",
		},
		"Mean read quality": {
			Title:       "Mean Qual",
			Description: "Mean read quality (Phred scale)",
			Scale:       "YlGn",
			SharedKey:   "phred_score",
		},
		"Median percent identity": {
			Title:       "Median Identity",
			Description: "Median percent identity",
			Min:         f64(0),
			Max:         f64(100),
			Suffix:      "%",
			Scale:       "YlGn",
		},
		"Median read length": {
			Title:       fmt.Sprintf("Median length (%s)", sc.BaseCountPrefix),
			Description: fmt.Sprintf("Median read length (%s)", sc.BaseCountDesc),
			Suffix:      "bp",
			Modify:      baseCount,
			SharedKey:   "base_count",
			Scale:       "YlGn",
		},
		"Median read quality": {
			Title:       "Median Qual",
			Description: "Median read quality (Phred scale)",
			SharedKey:   "phred_score",
			Scale:       "YlGn",
		},
		"Number of reads": {
			Title:       fmt.Sprintf("# Reads (%s)", sc.LongReadCountPrefix),
			Description: fmt.Sprintf("Number of reads (%s)", sc.LongReadCountDesc),
			Modify:      readCount,
			SharedKey:   "long_read_count",
			Scale:       "YlGn",
		},
		"Read length N50": {
			Title:       "Read N50",
			Description: "Read length N50",
			Format:      "{:,g}",
			Suffix:      "bp",
			Scale:       "YlGn",
		},
		"Total bases": {
			Title:       fmt.Sprintf("Total Bases (%s)", sc.BaseCountPrefix),
			Description: fmt.Sprintf("Total bases (%s)", sc.BaseCountDesc),
			Modify:      baseCount,
			SharedKey:   "base_count",
			Scale:       "YlGn",
		},
		"Total bases aligned": {
			Title:       fmt.Sprintf("Aligned Bases (%s)", sc.BaseCountPrefix),
			Description: fmt.Sprintf("Total bases aligned (%s)", sc.BaseCountDesc),
			Modify:      baseCount,
			SharedKey:   "base_count",
			Scale:       "YlGn",
		},
	}
}

// BuildColumns derives the table columns for every composite key present in
// the store, in stable vocabulary order.
//
// Visibility policy: the aligned-variant column for a statistic is shown;
// once it exists, the same statistic from any other variant is hidden.
// Otherwise the first variant present is shown. Cumulative ">Q*" counts are
// always hidden: they feed the quality histogram, not the table.
func BuildColumns(store *Store, sc Scaling) []Column {
	templates := baseTemplates(sc)
	ordered := append(append([]string{}, summaryFields...), thresholdFields...)

	var cols []Column
	emitted := make(map[string]bool)
	for i, name := range ordered {
		alignedKey := Key(name, VariantAligned)
		for vi, variant := range variantPriority {
			key := Key(name, variant)
			if !store.Has(key) {
				continue
			}
			col := templates[name]
			if col.Title == "" {
				col.Title = name
			}
			col.Key = key
			col.Title = fmt.Sprintf("%s (%s)", col.Title, variant)
			col.Placement = 1000.0 + float64(i)

			visible := vi == 0 || !emitted[alignedKey]
			if isThresholdField(name) {
				visible = false
			}
			col.Hidden = col.Hidden || !visible

			emitted[key] = true
			cols = append(cols, col)
		}
	}
	return cols
}
