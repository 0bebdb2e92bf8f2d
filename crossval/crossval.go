package crossval

import (
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/core/model"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/metrics"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/preprocessing"
)

// Factory builds a fresh, unfitted classifier. The harness calls it once
// per fold so no training state survives between folds.
type Factory func() model.Classifier

// FoldOutcome is the evaluation of one fold: its confusion matrix and the
// derived metric triple. Outcomes are immutable once returned.
type FoldOutcome struct {
	Fold    int
	Matrix  *metrics.ConfusionMatrix
	Metrics metrics.Triple
}

// Result aggregates one model configuration over all folds.
type Result struct {
	Name  string
	Folds []FoldOutcome
	Mean  metrics.Triple
}

// Run cross-validates one model configuration over the given folds.
//
// Per fold, a StandardScaler is fitted on the training split only and
// applied to both splits, so no test-fold statistic can leak into
// training. Folds are evaluated sequentially in order.
func Run(name string, folds []Fold, X mat.Matrix, labels []dataset.Diagnosis, factory Factory) (*Result, error) {
	if len(folds) == 0 {
		return nil, errors.NewValueError("crossval.Run", "no folds")
	}
	n, _ := X.Dims()
	if n != len(labels) {
		return nil, errors.NewDimensionError("crossval.Run", n, len(labels), 0)
	}

	result := &Result{Name: name, Folds: make([]FoldOutcome, 0, len(folds))}
	triples := make([]metrics.Triple, 0, len(folds))

	for i, fold := range folds {
		trainX, trainY := subset(X, labels, fold.Train)
		testX, testY := subset(X, labels, fold.Test)

		scaler := preprocessing.NewStandardScaler()
		scaledTrain, err := scaler.FitTransform(trainX)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d: scaling training split", i)
		}
		scaledTest, err := scaler.Transform(testX)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d: scaling test split", i)
		}

		clf := factory()
		if err := clf.Fit(scaledTrain, trainY); err != nil {
			return nil, errors.Wrapf(err, "fold %d: fitting %s", i, name)
		}
		predicted, err := clf.Predict(scaledTest)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d: predicting with %s", i, name)
		}

		cm, err := metrics.NewConfusionMatrix(predicted, testY)
		if err != nil {
			return nil, errors.Wrapf(err, "fold %d: evaluating %s", i, name)
		}

		triple := cm.Triple()
		triples = append(triples, triple)
		result.Folds = append(result.Folds, FoldOutcome{Fold: i, Matrix: cm, Metrics: triple})

		log.Debug().
			Str("model", name).
			Int("fold", i).
			Int("test_size", cm.Total()).
			Float64("accuracy", triple.Accuracy).
			Float64("sensitivity", triple.Sensitivity).
			Float64("specificity", triple.Specificity).
			Msg("fold evaluated")
	}

	result.Mean = metrics.MeanTriple(triples)
	return result, nil
}

// subset copies the given rows of X and the matching labels.
func subset(X mat.Matrix, labels []dataset.Diagnosis, rows []int) (*mat.Dense, []dataset.Diagnosis) {
	_, c := X.Dims()
	out := mat.NewDense(len(rows), c, nil)
	outLabels := make([]dataset.Diagnosis, len(rows))
	for i, row := range rows {
		for j := 0; j < c; j++ {
			out.Set(i, j, X.At(row, j))
		}
		outLabels[i] = labels[row]
	}
	return out, outLabels
}
