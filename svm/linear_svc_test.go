package svm

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

// separableData draws two linearly separable 2-D clusters.
func separableData(n int, seed uint64) (*mat.Dense, []dataset.Diagnosis) {
	r := rand.New(rand.NewPCG(seed, seed))
	X := mat.NewDense(2*n, 2, nil)
	y := make([]dataset.Diagnosis, 2*n)
	for i := 0; i < n; i++ {
		X.Set(i, 0, -3+r.NormFloat64()*0.5)
		X.Set(i, 1, -3+r.NormFloat64()*0.5)
		y[i] = dataset.Benign

		X.Set(n+i, 0, 3+r.NormFloat64()*0.5)
		X.Set(n+i, 1, 3+r.NormFloat64()*0.5)
		y[n+i] = dataset.Malignant
	}
	return X, y
}

func TestLinearSVCSeparable(t *testing.T) {
	X, y := separableData(50, 13)

	clf := NewLinearSVC(WithSeed(42))
	require.NoError(t, clf.Fit(X, y))

	got, err := clf.Predict(X)
	require.NoError(t, err)

	correct := 0
	for i := range got {
		if got[i] == y[i] {
			correct++
		}
	}
	assert.GreaterOrEqual(t, correct, 98, "separable clusters should be almost perfectly split")
}

func TestLinearSVCDecisionSign(t *testing.T) {
	X, y := separableData(30, 5)

	clf := NewLinearSVC(WithSeed(42))
	require.NoError(t, clf.Fit(X, y))

	scores, err := clf.Decision(mat.NewDense(2, 2, []float64{-3, -3, 3, 3}))
	require.NoError(t, err)
	assert.Negative(t, scores[0])
	assert.Positive(t, scores[1])
}

func TestLinearSVCDeterminism(t *testing.T) {
	X, y := separableData(40, 21)

	first := NewLinearSVC(WithSeed(7), WithCost(5))
	second := NewLinearSVC(WithSeed(7), WithCost(5))
	require.NoError(t, first.Fit(X, y))
	require.NoError(t, second.Fit(X, y))

	assert.Equal(t, first.weights, second.weights)
	assert.Equal(t, first.bias, second.bias)
}

func TestLinearSVCOptions(t *testing.T) {
	clf := NewLinearSVC(WithCost(0.5), WithEpochs(10), WithSeed(3))
	assert.Equal(t, 0.5, clf.cost)
	assert.Equal(t, 10, clf.epochs)
	assert.Equal(t, uint64(3), clf.seed)

	defaults := NewLinearSVC()
	assert.Equal(t, DefaultCost, defaults.cost)
	assert.Equal(t, DefaultEpochs, defaults.epochs)
}

func TestLinearSVCErrors(t *testing.T) {
	X, y := separableData(10, 2)

	t.Run("invalid cost", func(t *testing.T) {
		clf := NewLinearSVC(WithCost(-1))
		err := clf.Fit(X, y)
		require.Error(t, err)

		var ve *errors.ValidationError
		assert.True(t, errors.As(err, &ve))
	})

	t.Run("predict before fit", func(t *testing.T) {
		clf := NewLinearSVC()
		_, err := clf.Predict(X)
		require.Error(t, err)

		var nfe *errors.NotFittedError
		assert.True(t, errors.As(err, &nfe))
	})

	t.Run("label length mismatch", func(t *testing.T) {
		clf := NewLinearSVC()
		assert.Error(t, clf.Fit(X, y[:5]))
	})
}
