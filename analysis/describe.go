// Package analysis produces the exploratory half of the study: descriptive
// statistics per feature, the feature correlation matrix, and a principal
// component analysis of the standardized measurements.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

// FeatureSummary is the five-number summary plus mean and standard
// deviation of one feature column.
type FeatureSummary struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe summarizes each column of X. names must have one entry per
// column.
func Describe(X mat.Matrix, names []string) ([]FeatureSummary, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "analysis.Describe")
	}
	if len(names) != c {
		return nil, errors.NewDimensionError("analysis.Describe", c, len(names), 1)
	}

	summaries := make([]FeatureSummary, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		mean, std := stat.MeanStdDev(col, nil)

		sorted := make([]float64, r)
		copy(sorted, col)
		sort.Float64s(sorted)

		summaries[j] = FeatureSummary{
			Name:   names[j],
			Mean:   mean,
			StdDev: std,
			Min:    sorted[0],
			Q1:     stat.Quantile(0.25, stat.Empirical, sorted, nil),
			Median: stat.Quantile(0.5, stat.Empirical, sorted, nil),
			Q3:     stat.Quantile(0.75, stat.Empirical, sorted, nil),
			Max:    sorted[r-1],
		}
	}
	return summaries, nil
}

// Correlation returns the Pearson correlation matrix of X's columns.
func Correlation(X mat.Matrix) (*mat.SymDense, error) {
	r, c := X.Dims()
	if r < 2 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "analysis.Correlation")
	}

	corr := mat.NewSymDense(c, nil)
	stat.CorrelationMatrix(corr, X, nil)
	return corr, nil
}

// LabelCorrelations returns each column's Pearson correlation with the
// numeric diagnosis encoding, in column order.
func LabelCorrelations(X mat.Matrix, y *mat.VecDense) ([]float64, error) {
	r, c := X.Dims()
	if r != y.Len() {
		return nil, errors.NewDimensionError("analysis.LabelCorrelations", r, y.Len(), 0)
	}

	labels := make([]float64, r)
	for i := 0; i < r; i++ {
		labels[i] = y.AtVec(i)
	}

	out := make([]float64, c)
	col := make([]float64, r)
	for j := 0; j < c; j++ {
		mat.Col(col, j, X)
		out[j] = stat.Correlation(col, labels, nil)
	}
	return out, nil
}
