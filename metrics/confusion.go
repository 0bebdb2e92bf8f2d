// Package metrics implements the evaluation side of the study: the 2x2
// confusion matrix and the (accuracy, sensitivity, specificity) triple.
//
// Malignant is the positive class throughout: sensitivity is the true
// positive rate for malignant, specificity the true negative rate for
// benign.
package metrics

import (
	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

// ConfusionMatrix is a predicted x actual count table over the two
// diagnosis values. Both rows and both columns are always allocated, so a
// fold in which one predicted class never appears is zero-padded by
// construction rather than shrinking to a 1x2 table.
type ConfusionMatrix struct {
	counts [dataset.NumClasses][dataset.NumClasses]int
}

// NewConfusionMatrix tabulates predictions against true labels. The two
// slices must be non-empty and of equal length.
func NewConfusionMatrix(predicted, actual []dataset.Diagnosis) (*ConfusionMatrix, error) {
	if len(predicted) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "metrics: NewConfusionMatrix")
	}
	if len(predicted) != len(actual) {
		return nil, errors.NewDimensionError("NewConfusionMatrix", len(actual), len(predicted), 0)
	}

	var cm ConfusionMatrix
	for i := range predicted {
		cm.counts[predicted[i]][actual[i]]++
	}
	return &cm, nil
}

// Count returns the number of samples predicted as p whose true label is a.
func (cm *ConfusionMatrix) Count(p, a dataset.Diagnosis) int {
	return cm.counts[p][a]
}

// Total returns the number of tabulated samples, i.e. the fold's test-set
// size.
func (cm *ConfusionMatrix) Total() int {
	total := 0
	for _, row := range cm.counts {
		for _, c := range row {
			total += c
		}
	}
	return total
}

// TruePositives counts malignant samples predicted malignant.
func (cm *ConfusionMatrix) TruePositives() int {
	return cm.counts[dataset.Malignant][dataset.Malignant]
}

// TrueNegatives counts benign samples predicted benign.
func (cm *ConfusionMatrix) TrueNegatives() int {
	return cm.counts[dataset.Benign][dataset.Benign]
}

// FalsePositives counts benign samples predicted malignant.
func (cm *ConfusionMatrix) FalsePositives() int {
	return cm.counts[dataset.Malignant][dataset.Benign]
}

// FalseNegatives counts malignant samples predicted benign.
func (cm *ConfusionMatrix) FalseNegatives() int {
	return cm.counts[dataset.Benign][dataset.Malignant]
}

// Accuracy is the trace over the total count.
func (cm *ConfusionMatrix) Accuracy() float64 {
	return float64(cm.TruePositives()+cm.TrueNegatives()) / float64(cm.Total())
}

// Sensitivity is TP/(TP+FN). A fold with no malignant samples makes the
// rate undefined; a warning is raised and 0 reported.
func (cm *ConfusionMatrix) Sensitivity() float64 {
	tp, fn := cm.TruePositives(), cm.FalseNegatives()
	if tp+fn == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("sensitivity", "no malignant samples in fold", 0))
		return 0
	}
	return float64(tp) / float64(tp+fn)
}

// Specificity is TN/(TN+FP). A fold with no benign samples makes the rate
// undefined; a warning is raised and 0 reported.
func (cm *ConfusionMatrix) Specificity() float64 {
	tn, fp := cm.TrueNegatives(), cm.FalsePositives()
	if tn+fp == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("specificity", "no benign samples in fold", 0))
		return 0
	}
	return float64(tn) / float64(tn+fp)
}

// Triple derives all three rates at once.
func (cm *ConfusionMatrix) Triple() Triple {
	return Triple{
		Accuracy:    cm.Accuracy(),
		Sensitivity: cm.Sensitivity(),
		Specificity: cm.Specificity(),
	}
}

// Triple bundles the three evaluation rates for one (model, fold) pair or
// their cross-fold mean. All values are fractions in [0, 1].
type Triple struct {
	Accuracy    float64
	Sensitivity float64
	Specificity float64
}

// MeanTriple averages triples component-wise. The mean is commutative, so
// fold completion order does not affect the result.
func MeanTriple(triples []Triple) Triple {
	if len(triples) == 0 {
		return Triple{}
	}
	var sum Triple
	for _, t := range triples {
		sum.Accuracy += t.Accuracy
		sum.Sensitivity += t.Sensitivity
		sum.Specificity += t.Specificity
	}
	n := float64(len(triples))
	return Triple{
		Accuracy:    sum.Accuracy / n,
		Sensitivity: sum.Sensitivity / n,
		Specificity: sum.Specificity / n,
	}
}
