package neighbors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

// Two well-separated 1-D clusters: benign near 0, malignant near 10.
func clusterData() (*mat.Dense, []dataset.Diagnosis) {
	X := mat.NewDense(6, 1, []float64{0, 0.5, 1, 9, 9.5, 10})
	y := []dataset.Diagnosis{
		dataset.Benign, dataset.Benign, dataset.Benign,
		dataset.Malignant, dataset.Malignant, dataset.Malignant,
	}
	return X, y
}

func TestKNNPredict(t *testing.T) {
	X, y := clusterData()

	for _, k := range []int{1, 3, 5} {
		clf := NewKNNClassifier(k)
		require.NoError(t, clf.Fit(X, y))

		got, err := clf.Predict(mat.NewDense(2, 1, []float64{0.2, 9.8}))
		require.NoError(t, err)
		assert.Equal(t, []dataset.Diagnosis{dataset.Benign, dataset.Malignant}, got, "k=%d", k)
	}
}

func TestKNNTieBreak(t *testing.T) {
	// k=2 with one neighbor per class: the nearest neighbor decides.
	X := mat.NewDense(2, 1, []float64{0, 10})
	y := []dataset.Diagnosis{dataset.Benign, dataset.Malignant}

	clf := NewKNNClassifier(2)
	require.NoError(t, clf.Fit(X, y))

	got, err := clf.Predict(mat.NewDense(2, 1, []float64{1, 9}))
	require.NoError(t, err)
	assert.Equal(t, dataset.Benign, got[0], "query nearer the benign point")
	assert.Equal(t, dataset.Malignant, got[1], "query nearer the malignant point")
}

func TestKNNBoundaryK(t *testing.T) {
	X, y := clusterData()

	t.Run("k=1", func(t *testing.T) {
		clf := NewKNNClassifier(1)
		require.NoError(t, clf.Fit(X, y))
		got, err := clf.Predict(mat.NewDense(1, 1, []float64{0.4}))
		require.NoError(t, err)
		assert.Equal(t, dataset.Benign, got[0])
	})

	t.Run("k beyond training size is clamped", func(t *testing.T) {
		clf := NewKNNClassifier(100)
		require.NoError(t, clf.Fit(X, y))

		// All six rows vote; 3-3 tie falls back to the nearest neighbor.
		got, err := clf.Predict(mat.NewDense(1, 1, []float64{9.9}))
		require.NoError(t, err)
		assert.Equal(t, dataset.Malignant, got[0])
	})
}

func TestKNNErrors(t *testing.T) {
	X, y := clusterData()

	t.Run("invalid k", func(t *testing.T) {
		clf := NewKNNClassifier(0)
		err := clf.Fit(X, y)
		require.Error(t, err)

		var ve *errors.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("predict before fit", func(t *testing.T) {
		clf := NewKNNClassifier(3)
		_, err := clf.Predict(X)
		require.Error(t, err)

		var nfe *errors.NotFittedError
		assert.True(t, errors.As(err, &nfe))
	})

	t.Run("label length mismatch", func(t *testing.T) {
		clf := NewKNNClassifier(3)
		assert.Error(t, clf.Fit(X, y[:3]))
	})

	t.Run("feature mismatch at predict", func(t *testing.T) {
		clf := NewKNNClassifier(3)
		require.NoError(t, clf.Fit(X, y))
		_, err := clf.Predict(mat.NewDense(1, 2, []float64{1, 2}))
		assert.Error(t, err)
	})
}

func TestKNNDoesNotAliasTrainingData(t *testing.T) {
	X, y := clusterData()
	clf := NewKNNClassifier(1)
	require.NoError(t, clf.Fit(X, y))

	// Mutating the caller's matrix must not change fitted behavior.
	X.Set(0, 0, 1e9)
	got, err := clf.Predict(mat.NewDense(1, 1, []float64{0.1}))
	require.NoError(t, err)
	assert.Equal(t, dataset.Benign, got[0])
}
