package crossval

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/metrics"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

// Point is one hyperparameter configuration in a sweep. Label names the
// configuration for reporting ("k=10", "C=5", "hidden=8,4"); Value is the
// numeric coordinate used when the sweep is plotted, where one exists.
type Point struct {
	Label   string
	Value   float64
	Factory Factory
}

// SweepResult is the cross-validated outcome of one grid point.
type SweepResult struct {
	Label string
	Value float64
	Mean  metrics.Triple
}

// Sweep cross-validates every grid point over the same shared folds and
// records one (parameters, mean triple) row per point, uniformly for every
// model type. Points run sequentially in grid order.
func Sweep(name string, folds []Fold, X mat.Matrix, labels []dataset.Diagnosis, points []Point) ([]SweepResult, error) {
	if len(points) == 0 {
		return nil, errors.NewValueError("crossval.Sweep", "no grid points")
	}

	results := make([]SweepResult, 0, len(points))
	for _, p := range points {
		res, err := Run(name+" "+p.Label, folds, X, labels, p.Factory)
		if err != nil {
			return nil, errors.Wrapf(err, "sweep point %s", p.Label)
		}
		results = append(results, SweepResult{Label: p.Label, Value: p.Value, Mean: res.Mean})

		log.Info().
			Str("model", name).
			Str("point", p.Label).
			Float64("accuracy", res.Mean.Accuracy).
			Float64("sensitivity", res.Mean.Sensitivity).
			Float64("specificity", res.Mean.Specificity).
			Msg("sweep point evaluated")
	}
	return results, nil
}

// BestByAccuracy returns the sweep row with the highest mean accuracy.
// Earlier rows win ties, so a sweep over increasing k prefers the smaller k.
func BestByAccuracy(results []SweepResult) (SweepResult, error) {
	if len(results) == 0 {
		return SweepResult{}, errors.NewValueError("crossval.BestByAccuracy", "no results")
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Mean.Accuracy > best.Mean.Accuracy {
			best = r
		}
	}
	return best, nil
}
