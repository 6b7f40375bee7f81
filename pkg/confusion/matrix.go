// Package confusion is the analytics engine behind the API: confusion
// matrices and their summary statistics, matrix-to-matrix comparison,
// multi-label encoding and ROC/PR curves.
//
// Numeric heavy lifting (threshold sweeps, curve integration) is delegated
// to gonum; rendering to gonum/plot and html/template. Handlers treat this
// package as an opaque, versioned dependency.
package confusion

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
)

var (
	// ErrInvalidVector rejects empty or length-mismatched label vectors.
	ErrInvalidVector = errors.New("invalid vector")

	// ErrUnknownClass is returned for lookups of a class out of the vocabulary.
	ErrUnknownClass = errors.New("unknown class")
)

// Matrix is a confusion matrix over string class labels.
//
// Table[i][j] counts samples with actual class Classes[i] predicted as
// Classes[j]. The source vectors are retained so that a stored matrix can be
// rebuilt and re-scored after deserialization.
type Matrix struct {
	Classes   []string
	Table     [][]int
	Actual    []string
	Predicted []string

	total int
}

// New tallies actual vs predicted label vectors into a Matrix.
//
// The vectors must be non-empty and of equal length. The class vocabulary is
// the sorted union of labels observed in both vectors; labels need not be
// known up-front.
func New(actual, predicted []string) (*Matrix, error) {
	if len(actual) == 0 || len(predicted) == 0 {
		return nil, fmt.Errorf("%w: vectors should not be empty", ErrInvalidVector)
	}
	if len(actual) != len(predicted) {
		return nil, fmt.Errorf(
			"%w: actual and predicted lengths differ (%d != %d)",
			ErrInvalidVector, len(actual), len(predicted),
		)
	}

	seen := map[string]bool{}
	for _, l := range actual {
		seen[l] = true
	}
	for _, l := range predicted {
		seen[l] = true
	}
	classes := make([]string, 0, len(seen))
	for l := range seen {
		classes = append(classes, l)
	}
	sort.Strings(classes)

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	table := make([][]int, len(classes))
	for i := range table {
		table[i] = make([]int, len(classes))
	}
	for n := range actual {
		table[index[actual[n]]][index[predicted[n]]] += 1
	}

	return &Matrix{
		Classes:   classes,
		Table:     table,
		Actual:    append([]string(nil), actual...),
		Predicted: append([]string(nil), predicted...),
		total:     len(actual),
	}, nil
}

func (m *Matrix) sampleCount() int {
	if m.total == 0 {
		for _, row := range m.Table {
			for _, c := range row {
				m.total += c
			}
		}
	}
	return m.total
}

// Accuracy is the share of samples on the table diagonal.
func (m *Matrix) Accuracy() float64 {
	hit := 0
	for i := range m.Table {
		hit += m.Table[i][i]
	}
	return float64(hit) / float64(m.sampleCount())
}

// counts of true positive, predicted positive and actual positive for the
// i-th class.
func (m *Matrix) classCounts(i int) (tp, predicted, actual int) {
	tp = m.Table[i][i]
	for j := range m.Classes {
		predicted += m.Table[j][i]
		actual += m.Table[i][j]
	}
	return tp, predicted, actual
}

// PrecisionMacro is the macro-averaged positive predictive value.
//
// A class never predicted contributes zero to the average.
func (m *Matrix) PrecisionMacro() float64 {
	sum := 0.0
	for i := range m.Classes {
		tp, predicted, _ := m.classCounts(i)
		if predicted > 0 {
			sum += float64(tp) / float64(predicted)
		}
	}
	return sum / float64(len(m.Classes))
}

// RecallMacro is the macro-averaged true positive rate.
func (m *Matrix) RecallMacro() float64 {
	sum := 0.0
	for i := range m.Classes {
		tp, _, actual := m.classCounts(i)
		if actual > 0 {
			sum += float64(tp) / float64(actual)
		}
	}
	return sum / float64(len(m.Classes))
}

// F1Macro is the macro-averaged harmonic mean of per-class precision and
// recall.
func (m *Matrix) F1Macro() float64 {
	sum := 0.0
	for i := range m.Classes {
		tp, predicted, actual := m.classCounts(i)
		if predicted+actual > 0 {
			sum += 2 * float64(tp) / float64(predicted+actual)
		}
	}
	return sum / float64(len(m.Classes))
}

// f1 of the i-th class. zero when the class is absent on both axes.
func (m *Matrix) classF1(i int) float64 {
	tp, predicted, actual := m.classCounts(i)
	if predicted+actual == 0 {
		return 0
	}
	return 2 * float64(tp) / float64(predicted+actual)
}

// Kappa is Cohen's kappa: agreement beyond chance.
func (m *Matrix) Kappa() float64 {
	n := float64(m.sampleCount())
	po := m.Accuracy()
	pe := 0.0
	for i := range m.Classes {
		_, predicted, actual := m.classCounts(i)
		pe += (float64(actual) / n) * (float64(predicted) / n)
	}
	if pe == 1 {
		return 0
	}
	return (po - pe) / (1 - pe)
}

// serialized form of a stored matrix object. Vectors are enough: the table
// and stats are recomputed on load.
type object struct {
	ActualVector    []string `json:"actual_vector"`
	PredictedVector []string `json:"predicted_vector"`
}

// WriteObject serializes the matrix to w.
func (m *Matrix) WriteObject(w io.Writer) error {
	return json.NewEncoder(w).Encode(object{
		ActualVector:    m.Actual,
		PredictedVector: m.Predicted,
	})
}

// ReadObject rebuilds a matrix serialized by WriteObject.
func ReadObject(r io.Reader) (*Matrix, error) {
	var obj object
	if err := json.NewDecoder(r).Decode(&obj); err != nil {
		return nil, err
	}
	return New(obj.ActualVector, obj.PredictedVector)
}
