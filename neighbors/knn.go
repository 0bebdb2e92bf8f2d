// Package neighbors implements the k-nearest-neighbors classifier used in
// the study. Distances are Euclidean over standardized features; no
// parameters are trained beyond retaining the training data.
package neighbors

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/core/model"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

// KNNClassifier classifies by majority vote among the K nearest training
// rows.
type KNNClassifier struct {
	model.BaseEstimator

	k      int
	x      *mat.Dense
	labels []dataset.Diagnosis
}

// NewKNNClassifier creates a classifier voting over k neighbors. A k larger
// than the training set is clamped at fit time.
func NewKNNClassifier(k int) *KNNClassifier {
	return &KNNClassifier{k: k}
}

// K returns the configured neighbor count.
func (c *KNNClassifier) K() int {
	return c.k
}

// Fit retains a copy of the training data.
func (c *KNNClassifier) Fit(X mat.Matrix, y []dataset.Diagnosis) error {
	if c.k < 1 {
		return errors.NewValidationError("k", "must be at least 1", c.k)
	}
	n, _ := X.Dims()
	if n == 0 {
		return errors.Wrap(errors.ErrEmptyData, "KNNClassifier.Fit")
	}
	if n != len(y) {
		return errors.NewDimensionError("KNNClassifier.Fit", n, len(y), 0)
	}

	c.x = mat.DenseCopyOf(X)
	c.labels = make([]dataset.Diagnosis, len(y))
	copy(c.labels, y)
	c.SetFitted()
	return nil
}

// Predict classifies each row of X by majority vote among the k nearest
// training rows. A split vote (possible for even k) is broken
// deterministically in favor of the class of the single nearest neighbor.
func (c *KNNClassifier) Predict(X mat.Matrix) ([]dataset.Diagnosis, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("KNNClassifier", "Predict")
	}

	r, cols := X.Dims()
	_, trained := c.x.Dims()
	if cols != trained {
		return nil, errors.NewDimensionError("KNNClassifier.Predict", trained, cols, 1)
	}

	n, _ := c.x.Dims()
	k := c.k
	if k > n {
		k = n
	}

	out := make([]dataset.Diagnosis, r)
	dists := make([]float64, n)
	order := make([]int, n)
	query := make([]float64, cols)
	row := make([]float64, cols)

	for i := 0; i < r; i++ {
		mat.Row(query, i, X)
		for t := 0; t < n; t++ {
			mat.Row(row, t, c.x)
			dists[t] = floats.Distance(query, row, 2)
			order[t] = t
		}
		// Index is the secondary key so equal distances rank identically
		// on every run.
		sort.Slice(order, func(a, b int) bool {
			da, db := dists[order[a]], dists[order[b]]
			if da == db {
				return order[a] < order[b]
			}
			return da < db
		})

		var votes [dataset.NumClasses]int
		for _, t := range order[:k] {
			votes[c.labels[t]]++
		}

		switch {
		case votes[dataset.Malignant] > votes[dataset.Benign]:
			out[i] = dataset.Malignant
		case votes[dataset.Benign] > votes[dataset.Malignant]:
			out[i] = dataset.Benign
		default:
			out[i] = c.labels[order[0]]
		}
	}
	return out, nil
}
