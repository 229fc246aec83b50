// Package similarity provides the normalized string-similarity metrics used by
// fuzzy search and by the segmentation scorer. Every metric maps a pair of
// strings to [0, 1], where 1 means identical.
package similarity

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/pmezard/go-difflib/difflib"
)

// Func scores a against b. Implementations must return a value in [0, 1].
type Func func(a, b string) float64

// DefaultMetric is the metric used when none is configured.
const DefaultMetric = "ratio"

// Ratio is the matching-blocks ratio 2*M/T over runes, where M is the number
// of runes in matching blocks and T the total length of both strings.
// Two empty strings score 1.
func Ratio(a, b string) float64 {
	m := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return m.Ratio()
}

// edlibMetrics maps metric names to go-edlib algorithms. Hamming is left out:
// it is undefined for strings of different length.
var edlibMetrics = map[string]edlib.Algorithm{
	"levenshtein":   edlib.Levenshtein,
	"damerau":       edlib.DamerauLevenshtein,
	"osa":           edlib.OSADamerauLevenshtein,
	"lcs":           edlib.Lcs,
	"jaro":          edlib.Jaro,
	"jaro-winkler":  edlib.JaroWinkler,
	"cosine":        edlib.Cosine,
	"jaccard":       edlib.Jaccard,
	"sorensen-dice": edlib.SorensenDice,
	"qgram":         edlib.Qgram,
}

// ByName resolves a metric by name. The empty name selects DefaultMetric.
func ByName(name string) (Func, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == DefaultMetric {
		return Ratio, nil
	}
	algo, ok := edlibMetrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown similarity metric %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return edlibFunc(algo), nil
}

// Names lists every metric ByName accepts, default first.
func Names() []string {
	names := make([]string, 0, len(edlibMetrics))
	for n := range edlibMetrics {
		names = append(names, n)
	}
	sort.Strings(names)
	return append([]string{DefaultMetric}, names...)
}

func edlibFunc(algo edlib.Algorithm) Func {
	return func(a, b string) float64 {
		if a == b {
			return 1
		}
		s, err := edlib.StringsSimilarity(a, b, algo)
		if err != nil {
			return 0
		}
		return clamp(float64(s))
	}
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
