package confusion_test

import (
	"testing"

	"github.com/openscilab/pycm-api/pkg/confusion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMultiLabel(t *testing.T) {
	actual := [][]string{{"cat"}, {"cat", "dog"}}
	predicted := [][]string{{"cat", "dog"}, {"dog"}}

	t.Run("label sets are multi-hot encoded against the vocabulary", func(t *testing.T) {
		ml, err := confusion.NewMultiLabel(actual, predicted, []string{"cat", "dog"})
		require.NoError(t, err)

		assert.Equal(t, [][]int{{1, 0}, {1, 1}}, ml.ActualMultihot)
		assert.Equal(t, [][]int{{1, 1}, {0, 1}}, ml.PredictedMultihot)
	})

	t.Run("missing vocabulary is derived from the samples", func(t *testing.T) {
		ml, err := confusion.NewMultiLabel(actual, predicted, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"cat", "dog"}, ml.Classes)
	})

	t.Run("per-class matrix tallies the class column over samples", func(t *testing.T) {
		ml, err := confusion.NewMultiLabel(actual, predicted, []string{"cat", "dog"})
		require.NoError(t, err)

		m, err := ml.ByClass("cat")
		require.NoError(t, err)
		// actual cat column: [1 1], predicted: [1 0]
		assert.InDelta(t, 0.5, m.Accuracy(), 1e-9)
	})

	t.Run("per-sample matrix tallies one multihot row pair", func(t *testing.T) {
		ml, err := confusion.NewMultiLabel(actual, predicted, []string{"cat", "dog"})
		require.NoError(t, err)

		m, err := ml.BySample(1)
		require.NoError(t, err)
		// sample 1: actual [1 1], predicted [0 1]
		assert.InDelta(t, 0.5, m.Accuracy(), 1e-9)
	})

	t.Run("labels out of the vocabulary are rejected", func(t *testing.T) {
		_, err := confusion.NewMultiLabel(actual, predicted, []string{"cat"})
		assert.ErrorIs(t, err, confusion.ErrUnknownClass)
	})

	t.Run("unknown class and out-of-range sample lookups fail", func(t *testing.T) {
		ml, err := confusion.NewMultiLabel(actual, predicted, []string{"cat", "dog"})
		require.NoError(t, err)

		_, err = ml.ByClass("bird")
		assert.ErrorIs(t, err, confusion.ErrUnknownClass)

		_, err = ml.BySample(99)
		assert.ErrorIs(t, err, confusion.ErrInvalidVector)
	})

	t.Run("length mismatch is rejected", func(t *testing.T) {
		_, err := confusion.NewMultiLabel(actual, predicted[:1], nil)
		assert.ErrorIs(t, err, confusion.ErrInvalidVector)
	})
}
