package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
)

// Classifier is the contract every model in the study implements. A
// classifier is stateless across folds: the cross-validation harness builds
// a fresh instance per fold and fits it on that fold's training split only.
type Classifier interface {
	// Fit trains on the given feature matrix and labels. Rows of X
	// correspond to entries of y.
	Fit(X mat.Matrix, y []dataset.Diagnosis) error

	// Predict returns one diagnosis per row of X.
	Predict(X mat.Matrix) ([]dataset.Diagnosis, error)
}

// ProbabilisticClassifier is implemented by models that expose calibrated
// (or at least ordered) class membership scores.
type ProbabilisticClassifier interface {
	Classifier

	// PredictProba returns an (n x 2) matrix of class probabilities with
	// columns ordered [benign, malignant]. Rows sum to 1.
	PredictProba(X mat.Matrix) (*mat.Dense, error)
}
