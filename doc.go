// Package fnadiag is a reproducible classification study of the Wisconsin
// Diagnostic Breast Cancer dataset (569 fine-needle-aspirate samples, 30
// cell-nucleus measurements, benign/malignant diagnosis).
//
// The repository is organised as a set of small library packages plus one
// batch entry point:
//
//   - dataset: strict WDBC loader and diagnosis label codec
//   - preprocessing: feature standardization fit on training folds only
//   - analysis: descriptive statistics, correlation matrix, PCA
//   - crossval: seeded 5-fold partitioner, cross-validation harness,
//     hyperparameter grid sweep
//   - neighbors, naivebayes, svm, neural: the four classifiers under study
//   - metrics: confusion matrices and the accuracy/sensitivity/specificity
//     triple
//   - report: result tables, terminal curves and PNG plots
//
// Run the full experiment with:
//
//	go run ./cmd/fnadiag data/wdbc.data
//
// Every source of randomness (fold permutation, SVM and network training,
// weight initialization) is derived from a fixed seed, so repeated runs
// produce identical fold assignments and identical metric triples.
package fnadiag
