// Package report renders the finalized aggregate into its output artefacts:
// the general-stats table, the reads-by-quality chart, the flat data dump and
// the run manifest. It applies column metadata mechanically and never
// interprets field names.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/nanostat"
)

// VisibleColumns filters the column set down to what the table shows.
func VisibleColumns(cols []nanostat.Column) []nanostat.Column {
	var out []nanostat.Column
	for _, c := range cols {
		if !c.Hidden {
			out = append(out, c)
		}
	}
	return out
}

func headerLabel(col nanostat.Column) string {
	if col.Suffix != "" {
		return fmt.Sprintf("%s [%s]", col.Title, col.Suffix)
	}
	return col.Title
}

// cellValue applies the column's display scaling and formats the result.
func cellValue(col nanostat.Column, v float64) string {
	if col.Modify != nil {
		v = col.Modify(v)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteTableTSV writes the visible columns for every sample as
// tab-separated text, one row per sample.
func WriteTableTSV(w io.Writer, store *nanostat.Store, cols []nanostat.Column) error {
	visible := VisibleColumns(cols)

	header := make([]string, 0, len(visible)+1)
	header = append(header, "Sample")
	for _, c := range visible {
		header = append(header, headerLabel(c))
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return fmt.Errorf("write table header: %w", err)
	}

	for _, sample := range store.SampleNames() {
		fields := store.Sample(sample)
		row := make([]string, 0, len(visible)+1)
		row = append(row, sample)
		for _, c := range visible {
			if v, ok := fields[c.Key]; ok {
				row = append(row, cellValue(c, v))
			} else {
				row = append(row, "")
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return fmt.Errorf("write table row: %w", err)
		}
	}
	return nil
}

// WriteTableXLSX writes the same table as a spreadsheet.
func WriteTableXLSX(path string, store *nanostat.Store, cols []nanostat.Column) error {
	visible := VisibleColumns(cols)

	f := excelize.NewFile()
	defer f.Close()
	const sheet = "General Stats"
	f.SetSheetName("Sheet1", sheet)

	setCell := func(col, row int, value any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, value)
	}

	if err := setCell(1, 1, "Sample"); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i, c := range visible {
		if err := setCell(i+2, 1, headerLabel(c)); err != nil {
			return fmt.Errorf("write xlsx header: %w", err)
		}
	}

	for r, sample := range store.SampleNames() {
		if err := setCell(1, r+2, sample); err != nil {
			return fmt.Errorf("write xlsx row: %w", err)
		}
		fields := store.Sample(sample)
		for i, c := range visible {
			v, ok := fields[c.Key]
			if !ok {
				continue
			}
			if c.Modify != nil {
				v = c.Modify(v)
			}
			if err := setCell(i+2, r+2, v); err != nil {
				return fmt.Errorf("write xlsx row: %w", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}
