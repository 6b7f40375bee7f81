package confusion

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrTooFewMatrices rejects comparison requests over fewer than two matrices.
var ErrTooFewMatrices = errors.New("comparison needs at least 2 matrices")

// Score is the per-matrix outcome of a comparison.
//
// Overall ranks whole-matrix agreement (accuracy and chance-corrected
// agreement), Class ranks averaged per-class performance. The exact weighting
// is an implementation detail of this package and may change between
// versions; callers should treat scores as opaque ranking keys.
type Score struct {
	Overall float64 `json:"overall"`
	Class   float64 `json:"class"`
}

// Comparison ranks named confusion matrices best-to-worst.
type Comparison struct {
	Scores map[string]Score
	Sorted []string
	Best   string
}

// Compare scores each named matrix and orders them best-to-worst.
//
// Ties are broken by name so that the ordering is deterministic.
func Compare(matrices map[string]*Matrix) (*Comparison, error) {
	if len(matrices) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewMatrices, len(matrices))
	}

	scores := make(map[string]Score, len(matrices))
	names := make([]string, 0, len(matrices))
	for name, m := range matrices {
		names = append(names, name)
		scores[name] = Score{
			Overall: round5((m.Accuracy() + math.Max(m.Kappa(), 0)) / 2),
			Class:   round5(m.F1Macro()),
		}
	}

	sort.Slice(names, func(i, j int) bool {
		si, sj := scores[names[i]], scores[names[j]]
		ti, tj := si.Overall+si.Class, sj.Overall+sj.Class
		if ti != tj {
			return ti > tj
		}
		return names[i] < names[j]
	})

	return &Comparison{
		Scores: scores,
		Sorted: names,
		Best:   names[0],
	}, nil
}

func round5(v float64) float64 {
	return math.Round(v*100000) / 100000
}
