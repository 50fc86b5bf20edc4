package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/nanostat"
	"github.com/Australian-Structural-Biology-Computing/MultiQC/internal/utils"
)

// RunManifest records provenance for one aggregation run.
type RunManifest struct {
	RunID          string            `json:"run_id"`
	CreatedAt      time.Time         `json:"created_at"`
	Samples        int               `json:"samples"`
	DroppedStreams int               `json:"dropped_streams"`
	Sources        map[string]string `json:"sources"`
}

// NewManifest builds the manifest for a finalized store. sources maps sample
// name to the report file it came from; dropped counts unrecognized streams.
func NewManifest(store *nanostat.Store, sources map[string]string, dropped int) RunManifest {
	return RunManifest{
		RunID:          uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		Samples:        store.Len(),
		DroppedStreams: dropped,
		Sources:        sources,
	}
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m RunManifest) error {
	b, err := utils.PrettyJSON(m)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(path, b)
}

// WriteDataDump writes the full finalized store, hidden fields included, as a
// flat TSV with one row per sample. Columns are the union of every sample's
// composite keys, sorted, so re-runs on the same data diff cleanly.
func WriteDataDump(path string, store *nanostat.Store) error {
	var keys []string
	for _, sample := range store.SampleNames() {
		keys = append(keys, lo.Keys(store.Sample(sample))...)
	}
	keys = lo.Uniq(keys)
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Sample\t" + strings.Join(keys, "\t") + "\n")
	for _, sample := range store.SampleNames() {
		fields := store.Sample(sample)
		b.WriteString(sample)
		for _, k := range keys {
			b.WriteByte('\t')
			if v, ok := fields[k]; ok {
				b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
			}
		}
		b.WriteByte('\n')
	}
	if err := utils.SafeWriteFile(path, []byte(b.String())); err != nil {
		return fmt.Errorf("write data dump: %w", err)
	}
	return nil
}

// WriteSources writes the sample-to-file provenance as TSV.
func WriteSources(path string, sources map[string]string) error {
	samples := lo.Keys(sources)
	sort.Strings(samples)

	var b strings.Builder
	b.WriteString("Sample\tSource\n")
	for _, sample := range samples {
		fmt.Fprintf(&b, "%s\t%s\n", sample, sources[sample])
	}
	if err := utils.SafeWriteFile(path, []byte(b.String())); err != nil {
		return fmt.Errorf("write sources: %w", err)
	}
	return nil
}

func sortedSamples(rows map[string]nanostat.Buckets) []string {
	samples := lo.Keys(rows)
	sort.Strings(samples)
	return samples
}
