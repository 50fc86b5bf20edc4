package nanostat_test

import (
	"strings"
	"testing"

	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/nanostat"
)

func TestHistogramEndToEnd(t *testing.T) {
	in := strings.Join([]string{
		"Number of reads: 1,000",
		"&gt;Q5: 900",
		"&gt;Q7: 700",
		"&gt;Q10: 400",
		"&gt;Q12: 200",
		"&gt;Q15: 50",
		"Active channels: 512",
	}, "\n")
	rec, err := nanostat.Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.Variant != nanostat.VariantSeqSummary {
		t.Fatalf("variant = %q, want seq-summary", rec.Variant)
	}

	store := nanostat.NewStore()
	store.Merge("S1", rec)

	rows, variant, err := nanostat.BuildHistogram(store)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if variant != nanostat.VariantSeqSummary {
		t.Fatalf("chart variant = %q, want seq-summary", variant)
	}
	want := nanostat.Buckets{
		"<Q5":    100,
		"Q5-7":   200,
		"Q7-10":  300,
		"Q10-12": 200,
		"Q12-15": 150,
		">Q15":   50,
	}
	got := rows["S1"]
	var sum int64
	for _, label := range nanostat.BucketLabels {
		if got[label] != want[label] {
			t.Fatalf("bucket %q = %d, want %d", label, got[label], want[label])
		}
		sum += got[label]
	}
	if sum != 1000 {
		t.Fatalf("bucket sum = %d, want total reads 1000", sum)
	}
}

func TestHistogramNonMonotonicCountsFail(t *testing.T) {
	store := nanostat.NewStore()
	store.Merge("bad", record(nanostat.VariantSeqSummary, map[string]float64{
		"Number of reads": 100,
		">Q5":             120,
		">Q7":             80,
		">Q10":            60,
		">Q12":            40,
		">Q15":            20,
	}))
	_, _, err := nanostat.BuildHistogram(store)
	if err == nil {
		t.Fatal("expected data-integrity error for cumulative count above total")
	}
	if !strings.Contains(err.Error(), "bad") {
		t.Fatalf("error should name the sample: %v", err)
	}
}

func TestHistogramSkipsSamplesWithoutReadTotal(t *testing.T) {
	store := nanostat.NewStore()
	store.Merge("noreads", record(nanostat.VariantAligned, map[string]float64{"Total bases": 100}))
	rows, _, err := nanostat.BuildHistogram(store)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %v, want none", rows)
	}
}

func TestHistogramPrefersAlignedVariant(t *testing.T) {
	aligned := map[string]float64{
		"Number of reads": 10, ">Q5": 10, ">Q7": 10, ">Q10": 10, ">Q12": 10, ">Q15": 10,
	}
	summary := map[string]float64{
		"Number of reads": 99, ">Q5": 99, ">Q7": 99, ">Q10": 99, ">Q12": 99, ">Q15": 0,
	}
	store := nanostat.NewStore()
	store.Merge("S1", record(nanostat.VariantAligned, aligned))
	store.Merge("S1", record(nanostat.VariantSeqSummary, summary))

	rows, variant, err := nanostat.BuildHistogram(store)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	if variant != nanostat.VariantAligned {
		t.Fatalf("variant = %q, want aligned", variant)
	}
	if got := rows["S1"][">Q15"]; got != 10 {
		t.Fatalf(">Q15 bucket = %d, want aligned value 10", got)
	}
}

func TestHistogramMissingThresholdFails(t *testing.T) {
	store := nanostat.NewStore()
	store.Merge("partial", record(nanostat.VariantSeqSummary, map[string]float64{
		"Number of reads": 100,
		">Q5":             90,
	}))
	if _, _, err := nanostat.BuildHistogram(store); err == nil {
		t.Fatal("expected error for missing threshold counts")
	}
}
