package analysis

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

// PCA holds the principal components of a (standardized) feature matrix.
type PCA struct {
	vectors *mat.Dense
	vars    []float64
}

// NewPCA computes the principal components of X. Pass standardized data;
// the WDBC measurements span several orders of magnitude and raw PCA would
// be dominated by the area columns.
func NewPCA(X mat.Matrix) (*PCA, error) {
	r, c := X.Dims()
	if r < 2 || c == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "analysis.NewPCA")
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(X, nil); !ok {
		return nil, errors.NewValueError("analysis.NewPCA", "principal component decomposition failed")
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)
	return &PCA{
		vectors: &vectors,
		vars:    pc.VarsTo(nil),
	}, nil
}

// NumComponents returns the number of retained components.
func (p *PCA) NumComponents() int {
	return len(p.vars)
}

// ExplainedVarianceRatio returns each component's share of total variance,
// in decreasing order.
func (p *PCA) ExplainedVarianceRatio() []float64 {
	total := 0.0
	for _, v := range p.vars {
		total += v
	}
	out := make([]float64, len(p.vars))
	for i, v := range p.vars {
		out[i] = v / total
	}
	return out
}

// Project maps X onto the first k components, returning an (n x k) score
// matrix.
func (p *PCA) Project(X mat.Matrix, k int) (*mat.Dense, error) {
	if k < 1 || k > p.NumComponents() {
		return nil, errors.NewValidationError("k", "must be between 1 and the number of components", k)
	}
	_, c := X.Dims()
	vr, _ := p.vectors.Dims()
	if c != vr {
		return nil, errors.NewDimensionError("PCA.Project", vr, c, 1)
	}

	var scores mat.Dense
	scores.Mul(X, p.vectors.Slice(0, vr, 0, k))
	return &scores, nil
}
