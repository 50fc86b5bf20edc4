package nanostat

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrUnrecognized marks a report that carries neither layout discriminator.
// Such a stream is dropped by the caller and contributes nothing.
var ErrUnrecognized = errors.New("report layout not recognized")

// Record is the parsed form of one NanoStat report: recognized fields by base
// name, plus the layout the report was classified as. Threshold counts are
// stored as whole-valued float64s alongside the summary statistics so the
// per-sample store stays a single flat mapping.
type Record struct {
	Variant Variant
	Values  map[string]float64
}

// Parse reads one NanoStat report and returns its Record.
//
// Each line is treated as "key: value"; only the first colon splits, so
// values containing further colons are kept intact. Unknown keys are ignored
// for forward compatibility. A malformed value under a recognized key fails
// the whole stream: a half-parsed report must not be merged.
func Parse(r io.Reader) (*Record, error) {
	values := make(map[string]float64)

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		parts := strings.SplitN(strings.TrimSpace(sc.Text()), ":", 3)
		if len(parts) < 2 {
			continue
		}
		name := canonicalName(parts[0])
		raw := strings.TrimSpace(parts[1])

		kind, ok := fieldKinds[name]
		if !ok {
			continue
		}
		switch kind {
		case kindSummary:
			v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
			if err != nil {
				return nil, fmt.Errorf("field %q: bad numeric value %q", name, raw)
			}
			values[name] = v
		case kindThreshold:
			// Value looks like "4023348 (99.9%) 3514.3Mb"; the count is the
			// first token.
			tokens := strings.Fields(raw)
			if len(tokens) == 0 {
				return nil, fmt.Errorf("field %q: empty value", name)
			}
			n, err := strconv.ParseInt(tokens[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("field %q: bad read count %q", name, tokens[0])
			}
			values[name] = float64(n)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	variant := classify(values)
	if variant == VariantUnrecognized {
		return nil, ErrUnrecognized
	}
	return &Record{Variant: variant, Values: values}, nil
}

// classify infers the report layout from the fields found. "Total bases
// aligned" only appears in alignment mode; "Active channels" only in
// sequencing-summary mode.
func classify(values map[string]float64) Variant {
	if _, ok := values[fieldTotalBasesAligned]; ok {
		return VariantAligned
	}
	if _, ok := values[fieldActiveChannels]; ok {
		return VariantSeqSummary
	}
	return VariantUnrecognized
}
