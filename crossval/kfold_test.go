package crossval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

func TestKFoldSplitWDBCShape(t *testing.T) {
	// The study's configuration: 569 rows, 5 folds.
	kf := NewKFold(5, 42)
	folds, err := kf.Split(569)
	require.NoError(t, err)
	require.Len(t, folds, 5)

	wantSizes := []int{114, 114, 114, 114, 113}
	seen := make(map[int]int)
	for i, fold := range folds {
		assert.Len(t, fold.Test, wantSizes[i], "fold %d test size", i)
		assert.Len(t, fold.Train, 569-wantSizes[i], "fold %d train size", i)

		testSet := make(map[int]bool, len(fold.Test))
		for _, idx := range fold.Test {
			testSet[idx] = true
			seen[idx]++
		}
		for _, idx := range fold.Train {
			assert.False(t, testSet[idx], "fold %d: index %d in both splits", i, idx)
		}
	}

	// Disjoint and exhaustive: every row tests in exactly one fold.
	require.Len(t, seen, 569)
	for idx := 0; idx < 569; idx++ {
		assert.Equal(t, 1, seen[idx], "index %d", idx)
	}
}

func TestKFoldDeterminism(t *testing.T) {
	first, err := NewKFold(5, 42).Split(569)
	require.NoError(t, err)
	second, err := NewKFold(5, 42).Split(569)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same seed must reproduce the partition bit-identically")

	other, err := NewKFold(5, 43).Split(569)
	require.NoError(t, err)
	assert.NotEqual(t, first, other, "a different seed should permute differently")
}

func TestKFoldShuffles(t *testing.T) {
	folds, err := NewKFold(2, 1).Split(100)
	require.NoError(t, err)

	// The first fold's test set should not just be 0..49.
	identity := true
	for i, idx := range folds[0].Test {
		if idx != i {
			identity = false
			break
		}
	}
	assert.False(t, identity, "partition must come from a permutation, not row order")
}

func TestKFoldValidation(t *testing.T) {
	tests := []struct {
		name    string
		nSplits int
		n       int
	}{
		{name: "zero folds", nSplits: 0, n: 10},
		{name: "negative folds", nSplits: -1, n: 10},
		{name: "more folds than samples", nSplits: 11, n: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewKFold(tt.nSplits, 1).Split(tt.n)
			require.Error(t, err)

			var ve *errors.ValidationError
			assert.True(t, errors.As(err, &ve))
		})
	}
}

func TestKFoldEqualSizes(t *testing.T) {
	// No remainder: all folds the same size.
	folds, err := NewKFold(5, 7).Split(100)
	require.NoError(t, err)
	for i, fold := range folds {
		assert.Len(t, fold.Test, 20, "fold %d", i)
	}
}
