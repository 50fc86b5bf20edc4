package nanostat

import "fmt"

// BucketLabels is the fixed quality-bucket order, ascending, so chart legends
// are identical across runs regardless of input order.
var BucketLabels = []string{"<Q5", "Q5-7", "Q7-10", "Q10-12", "Q12-15", ">Q15"}

// Buckets holds one sample's read counts per quality bucket, keyed by
// BucketLabels entries.
type Buckets map[string]int64

// BuildHistogram converts each sample's cumulative ">Qx" counts into
// non-overlapping buckets by successive subtraction: reads below Q5 are the
// total minus reads above Q5, reads between Q5 and Q7 are reads above Q5
// minus reads above Q7, and so on; reads above Q15 pass through unchanged.
//
// The baseline comes from the first variant (in priority order) that carries
// a read total for the sample; samples with none contribute no row. The
// returned Variant is the one that served the most samples and names the
// chart. Cumulative counts must be non-increasing as the threshold rises; a
// negative bucket means the source report is internally inconsistent and
// fails the whole derivation rather than plotting a lie.
func BuildHistogram(store *Store) (map[string]Buckets, Variant, error) {
	rows := make(map[string]Buckets)
	variantUse := make(map[Variant]int)

	for _, sample := range store.SampleNames() {
		fields := store.Sample(sample)

		variant, total, ok := readsTotal(fields)
		if !ok {
			continue
		}
		variantUse[variant]++

		buckets := make(Buckets, len(BucketLabels))
		prev := total
		for i, name := range thresholdFields {
			v, ok := fields[Key(name, variant)]
			if !ok {
				return nil, VariantUnrecognized, fmt.Errorf("sample %q: missing %q count for %s data", sample, name, variant)
			}
			above := int64(v)
			n := prev - above
			if n < 0 {
				return nil, VariantUnrecognized, fmt.Errorf("sample %q: negative read count in bucket %q (%d above %s exceeds remaining %d)",
					sample, BucketLabels[i], above, name, prev)
			}
			buckets[BucketLabels[i]] = n
			prev = above
		}
		if prev < 0 {
			return nil, VariantUnrecognized, fmt.Errorf("sample %q: negative read count above Q15", sample)
		}
		buckets[BucketLabels[len(BucketLabels)-1]] = prev
		rows[sample] = buckets
	}

	return rows, dominantVariant(variantUse), nil
}

// readsTotal finds the sample's read total under the highest-priority variant
// that has one.
func readsTotal(fields map[string]float64) (Variant, int64, bool) {
	for _, variant := range variantPriority {
		if v, ok := fields[Key(fieldNumberOfReads, variant)]; ok {
			return variant, int64(v), true
		}
	}
	return VariantUnrecognized, 0, false
}

func dominantVariant(use map[Variant]int) Variant {
	best := VariantUnrecognized
	bestN := 0
	for _, variant := range variantPriority {
		if use[variant] > bestN {
			best = variant
			bestN = use[variant]
		}
	}
	return best
}
