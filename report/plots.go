package report

import (
	"image/color"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/crossval"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

// SaveSweepPlot writes a line chart of mean accuracy against the sweep
// coordinate (e.g. KNN's k).
func SaveSweepPlot(results []crossval.SweepResult, xLabel, path string) error {
	p := plot.New()
	p.Title.Text = "Cross-validated accuracy"
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "accuracy (%)"

	pts := make(plotter.XYs, len(results))
	for i, res := range results {
		pts[i].X = res.Value
		pts[i].Y = res.Mean.Accuracy * 100
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "report: building sweep line")
	}
	p.Add(line, plotter.NewGrid())

	return errors.Wrap(p.Save(6*vg.Inch, 4*vg.Inch, path), "report: saving sweep plot")
}

// SavePCAScatter writes the first two principal component scores colored
// by diagnosis.
func SavePCAScatter(scores *mat.Dense, labels []dataset.Diagnosis, path string) error {
	r, c := scores.Dims()
	if c < 2 {
		return errors.NewDimensionError("report.SavePCAScatter", 2, c, 1)
	}
	if r != len(labels) {
		return errors.NewDimensionError("report.SavePCAScatter", r, len(labels), 0)
	}

	var benign, malignant plotter.XYs
	for i := 0; i < r; i++ {
		pt := plotter.XY{X: scores.At(i, 0), Y: scores.At(i, 1)}
		if labels[i] == dataset.Malignant {
			malignant = append(malignant, pt)
		} else {
			benign = append(benign, pt)
		}
	}

	p := plot.New()
	p.Title.Text = "PCA of standardized measurements"
	p.X.Label.Text = "PC1"
	p.Y.Label.Text = "PC2"

	benignScatter, err := plotter.NewScatter(benign)
	if err != nil {
		return errors.Wrap(err, "report: benign scatter")
	}
	benignScatter.GlyphStyle.Color = color.RGBA{B: 210, G: 120, A: 255}

	malignantScatter, err := plotter.NewScatter(malignant)
	if err != nil {
		return errors.Wrap(err, "report: malignant scatter")
	}
	malignantScatter.GlyphStyle.Color = color.RGBA{R: 200, A: 255}

	p.Add(benignScatter, malignantScatter)
	p.Legend.Add("benign", benignScatter)
	p.Legend.Add("malignant", malignantScatter)

	return errors.Wrap(p.Save(6*vg.Inch, 5*vg.Inch, path), "report: saving PCA scatter")
}

// corrGrid adapts a correlation matrix to plotter.GridXYZ.
type corrGrid struct {
	m *mat.SymDense
}

func (g corrGrid) Dims() (c, r int) {
	n, _ := g.m.Dims()
	return n, n
}

func (g corrGrid) Z(c, r int) float64 { return g.m.At(r, c) }
func (g corrGrid) X(c int) float64    { return float64(c) }
func (g corrGrid) Y(r int) float64    { return float64(r) }

// SaveCorrelationHeatmap writes the feature correlation matrix as a
// heatmap.
func SaveCorrelationHeatmap(corr *mat.SymDense, path string) error {
	p := plot.New()
	p.Title.Text = "Feature correlation"
	p.X.Label.Text = "feature index"
	p.Y.Label.Text = "feature index"

	hm := plotter.NewHeatMap(corrGrid{m: corr}, palette.Heat(16, 1))
	// Correlations live in [-1, 1]; pin the palette so runs are comparable.
	hm.Min = -1
	hm.Max = 1
	p.Add(hm)

	return errors.Wrap(p.Save(6*vg.Inch, 6*vg.Inch, path), "report: saving correlation heatmap")
}
