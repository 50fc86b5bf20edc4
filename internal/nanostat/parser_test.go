package nanostat_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/nanostat"
)

func TestParseAligned(t *testing.T) {
	in := strings.Join([]string{
		"General summary:",
		"Mean read length:              9,741.6",
		"Mean read quality:                 9.5",
		"Number of reads:              47,359.0",
		"Total bases:             461,351,872.0",
		"Total bases aligned:     400,117,333.0",
		">Q5:	46994 (99.2%) 459.2Mb",
	}, "\n")
	rec, err := nanostat.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.Variant != nanostat.VariantAligned {
		t.Fatalf("variant = %q, want aligned", rec.Variant)
	}
	if got := rec.Values["Total bases aligned"]; got != 400117333.0 {
		t.Fatalf("Total bases aligned = %v", got)
	}
	if got := rec.Values["Mean read length"]; got != 9741.6 {
		t.Fatalf("Mean read length = %v", got)
	}
	if got := rec.Values[">Q5"]; got != 46994 {
		t.Fatalf(">Q5 = %v", got)
	}
}

func TestParseSeqSummary(t *testing.T) {
	in := "Active channels: 512\nNumber of reads: 1,000\n"
	rec, err := nanostat.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.Variant != nanostat.VariantSeqSummary {
		t.Fatalf("variant = %q, want seq-summary", rec.Variant)
	}
	if got := rec.Values["Number of reads"]; got != 1000 {
		t.Fatalf("Number of reads = %v", got)
	}
}

func TestParseUnrecognized(t *testing.T) {
	in := "Number of reads: 1,000\nTotal bases: 5,000\n"
	_, err := nanostat.Parse(strings.NewReader(in))
	if !errors.Is(err, nanostat.ErrUnrecognized) {
		t.Fatalf("err = %v, want ErrUnrecognized", err)
	}
}

func TestParseMalformedNumberFailsStream(t *testing.T) {
	in := "Active channels: 512\nNumber of reads: twelve\n"
	if _, err := nanostat.Parse(strings.NewReader(in)); err == nil {
		t.Fatal("expected parse error for malformed numeric value")
	}
}

func TestParseMalformedThresholdFailsStream(t *testing.T) {
	in := "Active channels: 512\n>Q5: lots\n"
	if _, err := nanostat.Parse(strings.NewReader(in)); err == nil {
		t.Fatal("expected parse error for malformed read count")
	}
}

func TestParseIgnoresUnknownKeysAndExtraColons(t *testing.T) {
	in := strings.Join([]string{
		"Run started: 2023-01-05 12:30:45",
		"Some future field: 42",
		"Active channels: 508",
	}, "\n")
	rec, err := nanostat.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rec.Values) != 1 {
		t.Fatalf("values = %v, want only Active channels", rec.Values)
	}
}

func TestParseHTMLEscapedThresholdKeys(t *testing.T) {
	in := "Active channels: 512\n&gt;Q10: 400 (40.0%)\n"
	rec, err := nanostat.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := rec.Values[">Q10"]; got != 400 {
		t.Fatalf(">Q10 = %v, want 400", got)
	}
}
