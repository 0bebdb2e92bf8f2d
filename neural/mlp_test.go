package neural

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

func blobs(n int, seed uint64) (*mat.Dense, []dataset.Diagnosis) {
	r := rand.New(rand.NewPCG(seed, seed))
	X := mat.NewDense(2*n, 2, nil)
	y := make([]dataset.Diagnosis, 2*n)
	for i := 0; i < n; i++ {
		X.Set(i, 0, -1+r.NormFloat64()*0.2)
		X.Set(i, 1, -1+r.NormFloat64()*0.2)
		y[i] = dataset.Benign

		X.Set(n+i, 0, 1+r.NormFloat64()*0.2)
		X.Set(n+i, 1, 1+r.NormFloat64()*0.2)
		y[n+i] = dataset.Malignant
	}
	return X, y
}

func TestMLPLearnsBlobs(t *testing.T) {
	X, y := blobs(40, 9)

	clf := NewMLPClassifier(WithHidden(6, 3), WithSeed(42))
	require.NoError(t, clf.Fit(X, y))

	got, err := clf.Predict(X)
	require.NoError(t, err)

	correct := 0
	for i := range got {
		if got[i] == y[i] {
			correct++
		}
	}
	assert.GreaterOrEqual(t, correct, 78, "well-separated blobs should be learned")
}

func TestMLPProbaRowsSumToOne(t *testing.T) {
	X, y := blobs(20, 17)

	clf := NewMLPClassifier(WithSeed(42))
	require.NoError(t, clf.Fit(X, y))

	proba, err := clf.PredictProba(X)
	require.NoError(t, err)

	r, c := proba.Dims()
	require.Equal(t, dataset.NumClasses, c)
	for i := 0; i < r; i++ {
		assert.InDelta(t, 1.0, proba.At(i, 0)+proba.At(i, 1), 1e-9, "row %d", i)
	}
}

func TestMLPDeterminism(t *testing.T) {
	X, y := blobs(25, 3)

	train := func() *mat.Dense {
		clf := NewMLPClassifier(WithHidden(5, 4), WithSeed(11), WithEpochs(50))
		require.NoError(t, clf.Fit(X, y))
		proba, err := clf.PredictProba(X)
		require.NoError(t, err)
		return proba
	}

	first := train()
	second := train()
	assert.True(t, mat.Equal(first, second), "same seed must reproduce bit-identical outputs")
}

func TestMLPOptions(t *testing.T) {
	clf := NewMLPClassifier(WithHidden(16, 8), WithLearningRate(0.05), WithMomentum(0.8), WithEpochs(10), WithSeed(2))
	assert.Equal(t, [2]int{16, 8}, clf.Hidden())
	assert.Equal(t, 0.05, clf.learningRate)
	assert.Equal(t, 0.8, clf.momentum)
	assert.Equal(t, 10, clf.epochs)

	defaults := NewMLPClassifier()
	assert.Equal(t, DefaultHidden, defaults.Hidden())
}

func TestMLPErrors(t *testing.T) {
	X, y := blobs(10, 1)

	t.Run("invalid hidden widths", func(t *testing.T) {
		clf := NewMLPClassifier(WithHidden(0, 4))
		err := clf.Fit(X, y)
		require.Error(t, err)

		var ve *errors.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("predict before fit", func(t *testing.T) {
		clf := NewMLPClassifier()
		_, err := clf.Predict(X)
		require.Error(t, err)

		var nfe *errors.NotFittedError
		assert.True(t, errors.As(err, &nfe))
	})

	t.Run("feature mismatch", func(t *testing.T) {
		clf := NewMLPClassifier(WithEpochs(5))
		require.NoError(t, clf.Fit(X, y))
		_, err := clf.Predict(mat.NewDense(1, 3, nil))
		assert.Error(t, err)
	})
}
