package nanostat

import (
	"errors"
	"path/filepath"
	"sort"

	"github.com/samber/lo"
)

// ErrNoData signals that no usable sample survived finalization. Downstream
// rendering cannot produce anything meaningful, so the run must abort.
var ErrNoData = errors.New("no usable NanoStat data after filtering")

// Store accumulates parsed reports keyed by sample name. Fields are held
// under composite "name (variant)" keys so the two report layouts never
// collide for a sample. Mutated only by Merge/Finalize; read-only afterwards.
type Store struct {
	samples map[string]map[string]float64
}

func NewStore() *Store {
	return &Store{samples: make(map[string]map[string]float64)}
}

// Merge folds one parsed record into the sample's entry and returns the
// composite keys that were overwritten, sorted. A non-empty return is the
// merge-conflict signal: overwriting is deliberate (re-running on refreshed
// reports), but the caller must be able to surface it.
func (s *Store) Merge(sample string, rec *Record) []string {
	incoming := make(map[string]float64, len(rec.Values))
	for name, v := range rec.Values {
		incoming[Key(name, rec.Variant)] = v
	}

	existing, ok := s.samples[sample]
	if !ok {
		s.samples[sample] = incoming
		return nil
	}

	conflicts := lo.Intersect(lo.Keys(existing), lo.Keys(incoming))
	sort.Strings(conflicts)
	for k, v := range incoming {
		existing[k] = v
	}
	return conflicts
}

// Finalize drops samples matching any of the ignore globs and seals the
// store. Returns ErrNoData if nothing is left.
func (s *Store) Finalize(ignoreGlobs []string) error {
	for name := range s.samples {
		for _, pattern := range ignoreGlobs {
			if ok, _ := filepath.Match(pattern, name); ok {
				delete(s.samples, name)
				break
			}
		}
	}
	if len(s.samples) == 0 {
		return ErrNoData
	}
	return nil
}

func (s *Store) Len() int {
	return len(s.samples)
}

// SampleNames returns sample names in sorted order so every derived output
// is stable across runs.
func (s *Store) SampleNames() []string {
	names := lo.Keys(s.samples)
	sort.Strings(names)
	return names
}

// Sample returns the composite-keyed values for one sample, or nil.
func (s *Store) Sample(name string) map[string]float64 {
	return s.samples[name]
}

// Has reports whether any sample carries the given composite key.
func (s *Store) Has(key string) bool {
	for _, fields := range s.samples {
		if _, ok := fields[key]; ok {
			return true
		}
	}
	return false
}
