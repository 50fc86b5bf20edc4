// Package discovery locates NanoStat report files on disk and derives sample
// names from their filenames. The aggregation core itself never touches the
// filesystem; it is handed one reader per source found here.
package discovery

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Source is one discovered report file and the sample it belongs to.
type Source struct {
	Sample string
	Path   string
}

// candidateExts limits the walk to plain-text report files.
var candidateExts = map[string]bool{
	".txt":   true,
	".log":   true,
	".tsv":   true,
	".stats": true,
}

// sniffMarkers are line prefixes that identify a NanoStat report. This is a
// cheap pre-filter only; real field recognition happens in the parser.
var sniffMarkers = []string{
	"General summary",
	"Number of reads:",
	"Active channels:",
	"Total bases aligned:",
}

// sniffLimit caps how much of a candidate file is read when sniffing.
const sniffLimit = 8 << 10

// Find walks root and returns every file that looks like a NanoStat report,
// sorted by path via the walk order.
func Find(root string) ([]Source, error) {
	var sources []Source
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !candidateExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		ok, err := looksLikeReport(path)
		if err != nil {
			return err
		}
		if ok {
			sources = append(sources, Source{Sample: CleanSampleName(path), Path: path})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return sources, nil
}

func looksLikeReport(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, sniffLimit)
	n, err := f.Read(buf)
	if n == 0 && err != nil {
		return false, nil
	}
	head := buf[:n]
	for _, marker := range sniffMarkers {
		if bytes.Contains(head, []byte(marker)) {
			return true, nil
		}
	}
	return false, nil
}

// sampleSuffixes are tool-generated filename suffixes stripped when deriving
// a sample name, longest first.
var sampleSuffixes = []string{"nanostats", "nanostat", "stats", "summary"}

// CleanSampleName derives a sample name from a report path:
// "run1/sample1_NanoStats.txt" becomes "sample1".
func CleanSampleName(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	for {
		trimmed := strings.TrimRight(name, "._- ")
		lower := strings.ToLower(trimmed)
		matched := false
		for _, suffix := range sampleSuffixes {
			if strings.HasSuffix(lower, suffix) && len(trimmed) > len(suffix) {
				trimmed = trimmed[:len(trimmed)-len(suffix)]
				matched = true
				break
			}
		}
		name = strings.TrimRight(trimmed, "._- ")
		if !matched {
			return name
		}
	}
}
