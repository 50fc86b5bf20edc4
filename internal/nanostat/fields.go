package nanostat

import (
	"fmt"
	"html"
	"strings"
)

// Variant identifies which NanoStat output layout a report was produced
// under. The tool emits different key sets depending on whether it was run
// against an alignment or a sequencing summary.
type Variant string

const (
	VariantAligned      Variant = "aligned"
	VariantSeqSummary   Variant = "seq-summary"
	VariantUnrecognized Variant = "unrecognized"
)

// variantPriority orders variants for column visibility and for choosing the
// histogram baseline: aligned data wins when both layouts exist for a sample.
var variantPriority = []Variant{VariantAligned, VariantSeqSummary, VariantUnrecognized}

// Discriminator fields used to classify a report's layout.
const (
	fieldTotalBasesAligned = "Total bases aligned"
	fieldActiveChannels    = "Active channels"
	fieldNumberOfReads     = "Number of reads"
)

// summaryFields is the numeric-summary vocabulary, in table placement order.
var summaryFields = []string{
	"Active channels",
	"Number of reads",
	"Total bases",
	"Total bases aligned",
	"Read length N50",
	"Mean read length",
	"Median read length",
	"Median read quality",
	"Mean read quality",
	"Average percent identity",
	"Median percent identity",
}

// thresholdFields is the cumulative read-quality vocabulary, ascending. Each
// value is the number of reads with quality above the threshold.
var thresholdFields = []string{">Q5", ">Q7", ">Q10", ">Q12", ">Q15"}

type fieldKind int

const (
	kindSummary fieldKind = iota
	kindThreshold
)

// fieldKinds maps every recognized field name to how its value is parsed.
// Adding a field to a future report version is a change here, not in the
// parser.
var fieldKinds = func() map[string]fieldKind {
	m := make(map[string]fieldKind, len(summaryFields)+len(thresholdFields))
	for _, name := range summaryFields {
		m[name] = kindSummary
	}
	for _, name := range thresholdFields {
		m[name] = kindThreshold
	}
	return m
}()

// Key builds the composite key a field is stored under. Namespacing by
// variant keeps identically named statistics from different layouts apart.
func Key(name string, v Variant) string {
	return fmt.Sprintf("%s (%s)", name, v)
}

// canonicalName normalizes a raw report key before vocabulary lookup.
// Reports that passed through an HTML-escaping pipeline carry "&gt;Q5"
// instead of ">Q5"; both must resolve to the same field.
func canonicalName(raw string) string {
	return html.UnescapeString(strings.TrimSpace(raw))
}

func isThresholdField(name string) bool {
	return fieldKinds[name] == kindThreshold && strings.HasPrefix(name, ">")
}
