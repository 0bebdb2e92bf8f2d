// Package crossval implements the k-fold partitioner, the cross-validation
// harness shared by every model in the study, and the hyperparameter grid
// sweep that drives it.
//
// One partition is built per experiment run and shared read-only across all
// models and hyperparameter values, so every result row is computed on
// identical splits.
package crossval

import (
	"math/rand/v2"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

// Fold is one train/test assignment of row indices. Every row appears in
// the Test set of exactly one fold and in the Train set of all others.
type Fold struct {
	Train []int
	Test  []int
}

// KFold splits row indices into NSplits folds after a seeded pseudo-random
// permutation. The same seed always produces the identical partition.
type KFold struct {
	NSplits int
	Seed    uint64
}

// NewKFold creates a splitter with the given fold count and seed.
func NewKFold(nSplits int, seed uint64) *KFold {
	return &KFold{NSplits: nSplits, Seed: seed}
}

// Split partitions [0, n) into NSplits folds. The permutation is sliced
// into contiguous ranges of floor(n/k) rows; the first n%k folds take one
// extra row, so 569 rows over 5 folds yield sizes 114,114,114,114,113.
func (kf *KFold) Split(n int) ([]Fold, error) {
	if kf.NSplits <= 0 {
		return nil, errors.NewValidationError("n_splits", "must be positive", kf.NSplits)
	}
	if kf.NSplits > n {
		return nil, errors.NewValidationError("n_splits", "cannot exceed the number of samples", kf.NSplits)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	r := rand.New(rand.NewPCG(kf.Seed, kf.Seed))
	r.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	foldSize := n / kf.NSplits
	remainder := n % kf.NSplits

	folds := make([]Fold, kf.NSplits)
	start := 0
	for i := range folds {
		size := foldSize
		if i < remainder {
			size++
		}

		test := make([]int, size)
		copy(test, indices[start:start+size])

		train := make([]int, 0, n-size)
		train = append(train, indices[:start]...)
		train = append(train, indices[start+size:]...)

		folds[i] = Fold{Train: train, Test: test}
		start += size
	}
	return folds, nil
}
