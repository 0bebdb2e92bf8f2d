// Package naivebayes implements a kernel-density naive Bayes classifier:
// each feature's class-conditional distribution is a Gaussian kernel
// density estimate over the training values, and classes are scored by log
// prior plus the sum of per-feature log densities.
package naivebayes

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/core/model"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

// densityFloor keeps a zero kernel sum out of the log.
const densityFloor = 1e-300

// fallbackBandwidth is used when a class's feature values are constant and
// the plug-in bandwidth collapses to zero.
const fallbackBandwidth = 1e-3

// KernelNB is a naive Bayes classifier with per-(class, feature) Gaussian
// kernel density estimates.
type KernelNB struct {
	model.BaseEstimator

	nFeatures int
	logPrior  [dataset.NumClasses]float64
	// samples[c][j] holds the training values of feature j in class c.
	samples [dataset.NumClasses][][]float64
	// bandwidth[c][j] is the KDE bandwidth for feature j in class c.
	bandwidth [dataset.NumClasses][]float64
}

// NewKernelNB creates an unfitted kernel naive Bayes classifier.
func NewKernelNB() *KernelNB {
	return &KernelNB{}
}

// Fit estimates class priors and per-feature kernel densities.
func (c *KernelNB) Fit(X mat.Matrix, y []dataset.Diagnosis) error {
	n, cols := X.Dims()
	if n == 0 {
		return errors.Wrap(errors.ErrEmptyData, "KernelNB.Fit")
	}
	if n != len(y) {
		return errors.NewDimensionError("KernelNB.Fit", n, len(y), 0)
	}

	var classCount [dataset.NumClasses]int
	for _, label := range y {
		classCount[label]++
	}
	for class, count := range classCount {
		if count == 0 {
			return errors.NewValueError("KernelNB.Fit", "training data has no "+dataset.Diagnosis(class).String()+" samples")
		}
		c.logPrior[class] = math.Log(float64(count) / float64(n))
	}

	c.nFeatures = cols
	for class := range c.samples {
		c.samples[class] = make([][]float64, cols)
		c.bandwidth[class] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			c.samples[class][j] = make([]float64, 0, classCount[class])
		}
	}

	for i := 0; i < n; i++ {
		class := y[i]
		for j := 0; j < cols; j++ {
			c.samples[class][j] = append(c.samples[class][j], X.At(i, j))
		}
	}

	for class := range c.samples {
		for j := 0; j < cols; j++ {
			c.bandwidth[class][j] = nrd0(c.samples[class][j])
		}
	}

	c.SetFitted()
	return nil
}

// Predict returns the class maximizing log prior plus summed per-feature
// log kernel densities.
func (c *KernelNB) Predict(X mat.Matrix) ([]dataset.Diagnosis, error) {
	proba, err := c.logScores(X)
	if err != nil {
		return nil, err
	}

	r, _ := proba.Dims()
	out := make([]dataset.Diagnosis, r)
	for i := 0; i < r; i++ {
		if proba.At(i, int(dataset.Malignant)) > proba.At(i, int(dataset.Benign)) {
			out[i] = dataset.Malignant
		} else {
			out[i] = dataset.Benign
		}
	}
	return out, nil
}

// PredictProba normalizes the class scores into probabilities per row.
func (c *KernelNB) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	scores, err := c.logScores(X)
	if err != nil {
		return nil, err
	}

	r, _ := scores.Dims()
	out := mat.NewDense(r, dataset.NumClasses, nil)
	for i := 0; i < r; i++ {
		// Shift by the row max before exponentiating for stability.
		maxScore := math.Max(scores.At(i, 0), scores.At(i, 1))
		p0 := math.Exp(scores.At(i, 0) - maxScore)
		p1 := math.Exp(scores.At(i, 1) - maxScore)
		out.Set(i, 0, p0/(p0+p1))
		out.Set(i, 1, p1/(p0+p1))
	}
	return out, nil
}

func (c *KernelNB) logScores(X mat.Matrix) (*mat.Dense, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("KernelNB", "Predict")
	}
	r, cols := X.Dims()
	if cols != c.nFeatures {
		return nil, errors.NewDimensionError("KernelNB.Predict", c.nFeatures, cols, 1)
	}

	scores := mat.NewDense(r, dataset.NumClasses, nil)
	for i := 0; i < r; i++ {
		for class := 0; class < dataset.NumClasses; class++ {
			score := c.logPrior[class]
			for j := 0; j < cols; j++ {
				score += math.Log(c.density(class, j, X.At(i, j)) + densityFloor)
			}
			scores.Set(i, class, score)
		}
	}
	return scores, nil
}

// density evaluates the Gaussian KDE of feature j in the given class at v.
func (c *KernelNB) density(class, j int, v float64) float64 {
	values := c.samples[class][j]
	h := c.bandwidth[class][j]
	kernel := distuv.Normal{Mu: 0, Sigma: 1}

	sum := 0.0
	for _, x := range values {
		sum += kernel.Prob((v - x) / h)
	}
	return sum / (float64(len(values)) * h)
}

// nrd0 is Silverman's rule-of-thumb bandwidth as implemented by R's
// bw.nrd0: 0.9 * min(sd, IQR/1.34) * n^(-1/5), with fallbacks for
// degenerate spreads.
func nrd0(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return fallbackBandwidth
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	sd := stat.StdDev(sorted, nil)
	iqr := stat.Quantile(0.75, stat.Empirical, sorted, nil) - stat.Quantile(0.25, stat.Empirical, sorted, nil)

	spread := math.Min(sd, iqr/1.34)
	if spread <= 0 {
		spread = math.Max(sd, math.Abs(sorted[0]))
	}
	if spread <= 0 {
		return fallbackBandwidth
	}
	return 0.9 * spread * math.Pow(float64(n), -0.2)
}
