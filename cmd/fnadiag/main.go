// Command fnadiag runs the full diagnostics study: it loads the WDBC
// dataset, prints exploratory summaries, cross-validates the four
// classifiers on one shared seeded 5-fold partition, sweeps their
// hyperparameter grids, and writes result tables and plots.
//
// Usage:
//
//	fnadiag [path/to/wdbc.data]
//
// The only input is the data path (default data/wdbc.data); everything
// else is fixed by the experiment's seed so repeated runs are identical.
package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	zl "github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/analysis"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/core/model"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/crossval"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/naivebayes"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/neighbors"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/neural"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/log"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/preprocessing"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/report"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/svm"
)

const (
	defaultDataPath = "data/wdbc.data"
	outDir          = "out"

	// seed fixes the fold permutation and every model's trainer.
	seed = 42

	numFolds = 5
	maxK     = 30
)

func main() {
	log.Setup("info")

	path := defaultDataPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	if err := run(path); err != nil {
		zl.Fatal().Err(err).Msg("experiment failed")
	}
}

func run(path string) error {
	ds, err := dataset.LoadFile(path)
	if err != nil {
		return err
	}
	benign, malignant := ds.CountByClass()
	zl.Info().
		Int("observations", ds.N()).
		Int("features", dataset.NumFeatures).
		Int("benign", benign).
		Int("malignant", malignant).
		Msg("dataset loaded")

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	X := ds.X()
	labels := ds.Labels()

	if err := explore(ds, X); err != nil {
		return err
	}

	folds, err := crossval.NewKFold(numFolds, seed).Split(ds.N())
	if err != nil {
		return err
	}

	knnSweep, err := sweepKNN(folds, X, labels)
	if err != nil {
		return err
	}
	if err := sweepSVMCost(folds, X, labels); err != nil {
		return err
	}
	if err := sweepHiddenLayers(folds, X, labels); err != nil {
		return err
	}

	return finalComparison(folds, X, labels, knnSweep)
}

// explore prints the descriptive half of the study and writes its plots.
func explore(ds *dataset.Dataset, X *mat.Dense) error {
	names := dataset.FeatureNames()
	summaries, err := analysis.Describe(X, names)
	if err != nil {
		return err
	}
	fmt.Println("Feature summary")
	report.WriteFeatureSummaries(os.Stdout, summaries)

	// Correlation and PCA work on globally standardized features; the
	// classifier pipeline never sees this matrix.
	scaled, err := preprocessing.NewStandardScaler().FitTransform(X)
	if err != nil {
		return err
	}

	corr, err := analysis.Correlation(scaled)
	if err != nil {
		return err
	}
	if err := report.SaveCorrelationHeatmap(corr, filepath.Join(outDir, "correlation.png")); err != nil {
		return err
	}

	labelCorr, err := analysis.LabelCorrelations(X, ds.Y())
	if err != nil {
		return err
	}
	order := make([]int, len(labelCorr))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return math.Abs(labelCorr[order[a]]) > math.Abs(labelCorr[order[b]])
	})
	for _, j := range order[:3] {
		zl.Info().
			Str("feature", names[j]).
			Float64("correlation", labelCorr[j]).
			Msg("feature most correlated with diagnosis")
	}

	pca, err := analysis.NewPCA(scaled)
	if err != nil {
		return err
	}
	ratios := pca.ExplainedVarianceRatio()
	zl.Info().
		Float64("pc1", ratios[0]).
		Float64("pc2", ratios[1]).
		Msg("explained variance of leading components")

	scores, err := pca.Project(scaled, 2)
	if err != nil {
		return err
	}
	return report.SavePCAScatter(scores, ds.Labels(), filepath.Join(outDir, "pca.png"))
}

func sweepKNN(folds []crossval.Fold, X *mat.Dense, labels []dataset.Diagnosis) ([]crossval.SweepResult, error) {
	points := make([]crossval.Point, 0, maxK)
	for k := 1; k <= maxK; k++ {
		points = append(points, crossval.Point{
			Label: fmt.Sprintf("k=%d", k),
			Value: float64(k),
			Factory: func() model.Classifier {
				return neighbors.NewKNNClassifier(k)
			},
		})
	}

	results, err := crossval.Sweep("knn", folds, X, labels, points)
	if err != nil {
		return nil, err
	}

	report.WriteSweepTable(os.Stdout, "KNN neighbor sweep", results)
	fmt.Println(report.SweepCurve(results, "mean accuracy (%) by k"))

	best, err := crossval.BestByAccuracy(results)
	if err != nil {
		return nil, err
	}
	zl.Info().Str("params", best.Label).Float64("accuracy", best.Mean.Accuracy).Msg("best KNN configuration")

	if err := report.SaveSweepPlot(results, "k", filepath.Join(outDir, "knn_sweep.png")); err != nil {
		return nil, err
	}
	return results, nil
}

func sweepSVMCost(folds []crossval.Fold, X *mat.Dense, labels []dataset.Diagnosis) error {
	costs := []float64{0.1, 1, 5, 10}
	points := make([]crossval.Point, 0, len(costs))
	for _, c := range costs {
		points = append(points, crossval.Point{
			Label: fmt.Sprintf("C=%g", c),
			Value: c,
			Factory: func() model.Classifier {
				return svm.NewLinearSVC(svm.WithCost(c), svm.WithSeed(seed))
			},
		})
	}

	results, err := crossval.Sweep("svm", folds, X, labels, points)
	if err != nil {
		return err
	}
	report.WriteSweepTable(os.Stdout, "Linear SVM cost sweep", results)
	return nil
}

func sweepHiddenLayers(folds []crossval.Fold, X *mat.Dense, labels []dataset.Diagnosis) error {
	layouts := [][2]int{{16, 8}, {8, 4}, {5, 4}, {4, 2}}
	points := make([]crossval.Point, 0, len(layouts))
	for _, layout := range layouts {
		points = append(points, crossval.Point{
			Label: fmt.Sprintf("hidden=%d,%d", layout[0], layout[1]),
			Value: float64(layout[0]),
			Factory: func() model.Classifier {
				return neural.NewMLPClassifier(neural.WithHidden(layout[0], layout[1]), neural.WithSeed(seed))
			},
		})
	}

	results, err := crossval.Sweep("mlp", folds, X, labels, points)
	if err != nil {
		return err
	}
	report.WriteSweepTable(os.Stdout, "Neural network hidden-layer sweep", results)
	return nil
}

// finalComparison cross-validates the headline configuration of each model
// on the shared folds and prints the comparison table.
func finalComparison(folds []crossval.Fold, X *mat.Dense, labels []dataset.Diagnosis, knnSweep []crossval.SweepResult) error {
	bestKNN, err := crossval.BestByAccuracy(knnSweep)
	if err != nil {
		return err
	}
	bestK := int(bestKNN.Value)

	configs := []struct {
		name    string
		factory crossval.Factory
	}{
		{
			name:    fmt.Sprintf("KNN (k=%d)", bestK),
			factory: func() model.Classifier { return neighbors.NewKNNClassifier(bestK) },
		},
		{
			name:    "Kernel Naive Bayes",
			factory: func() model.Classifier { return naivebayes.NewKernelNB() },
		},
		{
			name:    "Linear SVM (C=5)",
			factory: func() model.Classifier { return svm.NewLinearSVC(svm.WithSeed(seed)) },
		},
		{
			name: fmt.Sprintf("Neural Net (%d,%d)", neural.DefaultHidden[0], neural.DefaultHidden[1]),
			factory: func() model.Classifier {
				return neural.NewMLPClassifier(neural.WithSeed(seed))
			},
		},
	}

	results := make([]*crossval.Result, 0, len(configs))
	for _, cfg := range configs {
		res, err := crossval.Run(cfg.name, folds, X, labels, cfg.factory)
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	fmt.Println("Cross-validated model comparison")
	report.WriteModelTable(os.Stdout, results)
	return nil
}
