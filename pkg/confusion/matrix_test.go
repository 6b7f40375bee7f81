package confusion_test

import (
	"bytes"
	"testing"

	"github.com/openscilab/pycm-api/pkg/confusion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("binary vectors yield known counts and metrics", func(t *testing.T) {
		actual := []string{"0", "1", "0", "1", "1", "0", "1", "0"}
		predicted := []string{"0", "1", "1", "1", "1", "0", "0", "0"}

		m, err := confusion.New(actual, predicted)
		require.NoError(t, err)

		assert.Equal(t, []string{"0", "1"}, m.Classes)
		assert.Equal(t, [][]int{{3, 1}, {1, 3}}, m.Table)

		assert.InDelta(t, 0.75, m.Accuracy(), 1e-9)
		assert.InDelta(t, 0.75, m.PrecisionMacro(), 1e-9)
		assert.InDelta(t, 0.75, m.RecallMacro(), 1e-9)
		assert.InDelta(t, 0.75, m.F1Macro(), 1e-9)
		assert.InDelta(t, 0.5, m.Kappa(), 1e-9)
	})

	t.Run("string labels need no pre-enumeration", func(t *testing.T) {
		m, err := confusion.New(
			[]string{"cat", "dog", "cat", "bird"},
			[]string{"cat", "cat", "dog", "bird"},
		)
		require.NoError(t, err)

		assert.Equal(t, []string{"bird", "cat", "dog"}, m.Classes)
		assert.InDelta(t, 0.5, m.Accuracy(), 1e-9)
	})

	t.Run("empty vectors are rejected", func(t *testing.T) {
		_, err := confusion.New(nil, nil)
		assert.ErrorIs(t, err, confusion.ErrInvalidVector)
	})

	t.Run("length mismatch is rejected", func(t *testing.T) {
		_, err := confusion.New([]string{"a", "b"}, []string{"a"})
		assert.ErrorIs(t, err, confusion.ErrInvalidVector)
	})
}

func TestObjectRoundtrip(t *testing.T) {
	t.Run("a stored matrix rebuilds with the same table", func(t *testing.T) {
		m, err := confusion.New(
			[]string{"x", "y", "y", "x"},
			[]string{"x", "x", "y", "x"},
		)
		require.NoError(t, err)

		buf := &bytes.Buffer{}
		require.NoError(t, m.WriteObject(buf))

		loaded, err := confusion.ReadObject(buf)
		require.NoError(t, err)

		assert.Equal(t, m.Classes, loaded.Classes)
		assert.Equal(t, m.Table, loaded.Table)
		assert.InDelta(t, m.Accuracy(), loaded.Accuracy(), 1e-9)
	})

	t.Run("garbage input does not load", func(t *testing.T) {
		_, err := confusion.ReadObject(bytes.NewBufferString("not an object"))
		assert.Error(t, err)
	})
}
