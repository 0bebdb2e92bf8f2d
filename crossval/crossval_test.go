package crossval

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/core/model"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/neighbors"
)

// separable builds two distant clusters that any sane classifier splits
// perfectly.
func separable(n int, seed uint64) (*mat.Dense, []dataset.Diagnosis) {
	r := rand.New(rand.NewPCG(seed, seed))
	X := mat.NewDense(2*n, 2, nil)
	y := make([]dataset.Diagnosis, 2*n)
	for i := 0; i < n; i++ {
		X.Set(i, 0, r.NormFloat64())
		X.Set(i, 1, r.NormFloat64())
		y[i] = dataset.Benign

		X.Set(n+i, 0, 50+r.NormFloat64())
		X.Set(n+i, 1, 50+r.NormFloat64())
		y[n+i] = dataset.Malignant
	}
	return X, y
}

func knnFactory(k int) Factory {
	return func() model.Classifier { return neighbors.NewKNNClassifier(k) }
}

func TestRunSeparableData(t *testing.T) {
	X, y := separable(50, 4)

	folds, err := NewKFold(5, 42).Split(100)
	require.NoError(t, err)

	res, err := Run("knn k=3", folds, X, y, knnFactory(3))
	require.NoError(t, err)

	require.Len(t, res.Folds, 5)
	assert.Equal(t, 1.0, res.Mean.Accuracy)
	assert.Equal(t, 1.0, res.Mean.Sensitivity)
	assert.Equal(t, 1.0, res.Mean.Specificity)

	// Per-fold matrices cover the whole dataset once.
	total := 0
	for _, fold := range res.Folds {
		total += fold.Matrix.Total()
	}
	assert.Equal(t, 100, total)
}

func TestRunIdempotence(t *testing.T) {
	X, y := separable(30, 8)

	folds, err := NewKFold(5, 42).Split(60)
	require.NoError(t, err)

	first, err := Run("knn", folds, X, y, knnFactory(5))
	require.NoError(t, err)
	second, err := Run("knn", folds, X, y, knnFactory(5))
	require.NoError(t, err)

	assert.Equal(t, first.Mean, second.Mean)
	for i := range first.Folds {
		assert.Equal(t, first.Folds[i].Metrics, second.Folds[i].Metrics, "fold %d", i)
	}
}

func TestRunScalesPerFold(t *testing.T) {
	// A classifier that records what it sees: training data must arrive
	// standardized with statistics from its own fold.
	X, y := separable(20, 15)
	folds, err := NewKFold(4, 9).Split(40)
	require.NoError(t, err)

	var seen []*mat.Dense
	factory := func() model.Classifier {
		return &recordingClassifier{seen: &seen}
	}

	_, err = Run("recorder", folds, X, y, factory)
	require.NoError(t, err)
	require.Len(t, seen, 4)

	for i, train := range seen {
		r, c := train.Dims()
		assert.Equal(t, 30, r, "fold %d training rows", i)
		// Column means of the scaled training split are ~0.
		for j := 0; j < c; j++ {
			sum := 0.0
			for row := 0; row < r; row++ {
				sum += train.At(row, j)
			}
			assert.InDelta(t, 0, sum/float64(r), 1e-9, "fold %d column %d", i, j)
		}
	}
}

type recordingClassifier struct {
	model.BaseEstimator
	seen *[]*mat.Dense
}

func (rc *recordingClassifier) Fit(X mat.Matrix, y []dataset.Diagnosis) error {
	*rc.seen = append(*rc.seen, mat.DenseCopyOf(X))
	rc.SetFitted()
	return nil
}

func (rc *recordingClassifier) Predict(X mat.Matrix) ([]dataset.Diagnosis, error) {
	r, _ := X.Dims()
	out := make([]dataset.Diagnosis, r)
	return out, nil
}

func TestRunErrors(t *testing.T) {
	X, y := separable(10, 1)

	t.Run("no folds", func(t *testing.T) {
		_, err := Run("knn", nil, X, y, knnFactory(1))
		assert.Error(t, err)
	})

	t.Run("label length mismatch", func(t *testing.T) {
		folds, err := NewKFold(2, 1).Split(20)
		require.NoError(t, err)
		_, err = Run("knn", folds, X, y[:5], knnFactory(1))
		assert.Error(t, err)
	})
}

func TestSweep(t *testing.T) {
	X, y := separable(30, 6)
	folds, err := NewKFold(5, 42).Split(60)
	require.NoError(t, err)

	points := make([]Point, 0, 5)
	for k := 1; k <= 5; k++ {
		points = append(points, Point{
			Label:   fmt.Sprintf("k=%d", k),
			Value:   float64(k),
			Factory: knnFactory(k),
		})
	}

	results, err := Sweep("knn", folds, X, y, points)
	require.NoError(t, err)
	require.Len(t, results, 5)

	for i, res := range results {
		assert.Equal(t, float64(i+1), res.Value)
		assert.Equal(t, 1.0, res.Mean.Accuracy, "point %s", res.Label)
	}

	best, err := BestByAccuracy(results)
	require.NoError(t, err)
	// All tie at 1.0; the earliest grid point wins.
	assert.Equal(t, 1.0, best.Value)
}

func TestSweepErrors(t *testing.T) {
	X, y := separable(10, 2)
	folds, err := NewKFold(2, 1).Split(20)
	require.NoError(t, err)

	_, err = Sweep("knn", folds, X, y, nil)
	assert.Error(t, err)

	_, err = BestByAccuracy(nil)
	assert.Error(t, err)
}
