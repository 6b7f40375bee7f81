package confusion

import (
	"fmt"
	"sort"
	"strconv"
)

// MultiLabel holds multi-hot encoded actual/predicted label-set vectors.
//
// Each sample may belong to several classes at once. The encoding and the
// per-class / per-sample binary matrices are computed once at construction;
// nothing here is ever persisted.
type MultiLabel struct {
	Classes           []string
	ActualMultihot    [][]int
	PredictedMultihot [][]int

	classIndex map[string]int
}

// NewMultiLabel multi-hot encodes label-set vectors against a class
// vocabulary.
//
// When classes is empty, the vocabulary is the sorted union of all labels
// seen in both vectors.
func NewMultiLabel(actual, predicted [][]string, classes []string) (*MultiLabel, error) {
	if len(actual) == 0 || len(predicted) == 0 {
		return nil, fmt.Errorf("%w: vectors should not be empty", ErrInvalidVector)
	}
	if len(actual) != len(predicted) {
		return nil, fmt.Errorf(
			"%w: actual and predicted lengths differ (%d != %d)",
			ErrInvalidVector, len(actual), len(predicted),
		)
	}

	if len(classes) == 0 {
		seen := map[string]bool{}
		for _, sample := range actual {
			for _, l := range sample {
				seen[l] = true
			}
		}
		for _, sample := range predicted {
			for _, l := range sample {
				seen[l] = true
			}
		}
		for l := range seen {
			classes = append(classes, l)
		}
		sort.Strings(classes)
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("%w: no classes", ErrInvalidVector)
	}

	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}

	encode := func(samples [][]string) ([][]int, error) {
		rows := make([][]int, len(samples))
		for n, sample := range samples {
			row := make([]int, len(classes))
			for _, l := range sample {
				i, ok := index[l]
				if !ok {
					return nil, fmt.Errorf("%w: %q is not in the class vocabulary", ErrUnknownClass, l)
				}
				row[i] = 1
			}
			rows[n] = row
		}
		return rows, nil
	}

	actualHot, err := encode(actual)
	if err != nil {
		return nil, err
	}
	predictedHot, err := encode(predicted)
	if err != nil {
		return nil, err
	}

	return &MultiLabel{
		Classes:           append([]string(nil), classes...),
		ActualMultihot:    actualHot,
		PredictedMultihot: predictedHot,
		classIndex:        index,
	}, nil
}

// ByClass builds the binary confusion matrix of one class across all
// samples.
func (ml *MultiLabel) ByClass(class string) (*Matrix, error) {
	i, ok := ml.classIndex[class]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}

	actual := make([]string, len(ml.ActualMultihot))
	predicted := make([]string, len(ml.PredictedMultihot))
	for n := range ml.ActualMultihot {
		actual[n] = strconv.Itoa(ml.ActualMultihot[n][i])
		predicted[n] = strconv.Itoa(ml.PredictedMultihot[n][i])
	}
	return New(actual, predicted)
}

// BySample builds the binary confusion matrix of one sample across all
// classes.
func (ml *MultiLabel) BySample(n int) (*Matrix, error) {
	if n < 0 || len(ml.ActualMultihot) <= n {
		return nil, fmt.Errorf("%w: sample %d out of range", ErrInvalidVector, n)
	}

	actual := make([]string, len(ml.Classes))
	predicted := make([]string, len(ml.Classes))
	for i := range ml.Classes {
		actual[i] = strconv.Itoa(ml.ActualMultihot[n][i])
		predicted[i] = strconv.Itoa(ml.PredictedMultihot[n][i])
	}
	return New(actual, predicted)
}
