package confusion

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Kind selects the curve family to sweep.
type Kind string

const (
	ROC Kind = "ROC"
	PR  Kind = "PR"
)

// ErrUnknownCurveKind rejects curve kinds other than ROC and PR.
var ErrUnknownCurveKind = errors.New("unknown curve kind")

// Curve is a threshold sweep over per-class probability scores.
//
// Thresholds is the sweep grid shared by all classes, ascending and covering
// [0, 1]. Area maps each class to the area under its curve (one-vs-rest).
type Curve struct {
	Kind       Kind
	Classes    []string
	Thresholds []float64
	Area       map[string]float64
}

// NewCurve sweeps ROC or PR curves per class and integrates their area.
//
// actual holds one label per sample; probs one row per sample with one
// probability column per class. When classes is empty, the vocabulary is the
// sorted set of labels in actual, and must then match the probability row
// width. A ROC sweep rejects classes that are one-sided in actual (all
// samples or none); a PR sweep over a class with no positive samples has
// area 0.
func NewCurve(kind Kind, actual []string, probs [][]float64, classes []string) (*Curve, error) {
	switch kind {
	case ROC, PR:
	default:
		return nil, fmt.Errorf("%w: %q (supported: ROC, PR)", ErrUnknownCurveKind, kind)
	}

	if len(actual) == 0 {
		return nil, fmt.Errorf("%w: actual vector should not be empty", ErrInvalidVector)
	}
	if len(probs) != len(actual) {
		return nil, fmt.Errorf(
			"%w: %d probability rows for %d samples",
			ErrInvalidVector, len(probs), len(actual),
		)
	}

	if len(classes) == 0 {
		seen := map[string]bool{}
		for _, l := range actual {
			seen[l] = true
		}
		for l := range seen {
			classes = append(classes, l)
		}
		sort.Strings(classes)
	}

	for n, row := range probs {
		if len(row) != len(classes) {
			return nil, fmt.Errorf(
				"%w: probability row %d has %d columns for %d classes",
				ErrInvalidVector, n, len(row), len(classes),
			)
		}
	}

	c := &Curve{
		Kind:       kind,
		Classes:    append([]string(nil), classes...),
		Thresholds: thresholdGrid(probs),
		Area:       make(map[string]float64, len(classes)),
	}

	for i, class := range classes {
		scores := make([]float64, len(actual))
		positive := make([]bool, len(actual))
		positives := 0
		for n := range actual {
			scores[n] = probs[n][i]
			positive[n] = actual[n] == class
			if positive[n] {
				positives += 1
			}
		}

		switch kind {
		case ROC:
			// a one-sided class has no defined TPR/FPR sweep
			if positives == 0 || positives == len(positive) {
				return nil, fmt.Errorf(
					"%w: class %q needs both positive and negative samples for a ROC sweep",
					ErrInvalidVector, class,
				)
			}
			c.Area[class] = rocArea(scores, positive)
		case PR:
			c.Area[class] = prArea(c.Thresholds, scores, positive)
		}
	}

	return c, nil
}

// thresholdGrid is the ascending sweep grid: every distinct probability value
// plus the [0, 1] bounds.
func thresholdGrid(probs [][]float64) []float64 {
	seen := map[float64]bool{0: true, 1: true}
	for _, row := range probs {
		for _, p := range row {
			seen[p] = true
		}
	}
	grid := make([]float64, 0, len(seen))
	for p := range seen {
		grid = append(grid, p)
	}
	sort.Float64s(grid)
	return grid
}

// rocArea delegates the sweep to gonum's stat.ROC and integrates TPR over
// FPR.
func rocArea(scores []float64, positive []bool) float64 {
	// stat.ROC wants scores ascending with classes aligned.
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return scores[order[a]] < scores[order[b]] })

	y := make([]float64, len(scores))
	classes := make([]bool, len(scores))
	for rank, i := range order {
		y[rank] = scores[i]
		classes[rank] = positive[i]
	}

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}

// prArea sweeps precision/recall over the threshold grid and integrates
// precision over recall.
func prArea(thresholds []float64, scores []float64, positive []bool) float64 {
	actualPositive := 0
	for _, p := range positive {
		if p {
			actualPositive += 1
		}
	}
	if actualPositive == 0 {
		return 0
	}

	// Descending thresholds give ascending recall, as Trapezoidal wants.
	recall := make([]float64, 0, len(thresholds))
	precision := make([]float64, 0, len(thresholds))
	for k := len(thresholds) - 1; 0 <= k; k -= 1 {
		t := thresholds[k]
		tp, predictedPositive := 0, 0
		for n, s := range scores {
			if s < t {
				continue
			}
			predictedPositive += 1
			if positive[n] {
				tp += 1
			}
		}
		prec := 1.0
		if predictedPositive > 0 {
			prec = float64(tp) / float64(predictedPositive)
		}
		recall = append(recall, float64(tp)/float64(actualPositive))
		precision = append(precision, prec)
	}

	return integrate.Trapezoidal(recall, precision)
}
