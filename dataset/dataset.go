// Package dataset loads and validates the Wisconsin Diagnostic Breast
// Cancer table: one row per fine-needle-aspirate sample, columns
// [id, diagnosis(B|M), 30 numeric cell-nucleus measurements], no header.
//
// The loader fails fast on any malformed row. The identifier column is
// discarded; it carries no modeling signal.
package dataset

import (
	"encoding/csv"
	"io"
	"math"
	"os"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

// NumFeatures is the number of measurement columns per observation:
// 10 cell-nucleus measurements, each as mean, standard error and worst.
const NumFeatures = 30

// numColumns is id + diagnosis + the feature block.
const numColumns = 2 + NumFeatures

var measurements = [...]string{
	"radius", "texture", "perimeter", "area", "smoothness",
	"compactness", "concavity", "concave_points", "symmetry",
	"fractal_dimension",
}

var suffixes = [...]string{"mean", "se", "worst"}

// FeatureNames returns the 30 feature column names in file order:
// the 10 measurements with suffix _mean, then _se, then _worst.
func FeatureNames() []string {
	names := make([]string, 0, NumFeatures)
	for _, suffix := range suffixes {
		for _, m := range measurements {
			names = append(names, m+"_"+suffix)
		}
	}
	return names
}

// Dataset is an immutable collection of observations. Accessors return
// copies so callers cannot mutate the loaded data.
type Dataset struct {
	x      *mat.Dense
	labels []Diagnosis
}

// Load reads and validates WDBC-format CSV data.
func Load(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // arity checked per row for a better error

	var (
		features []float64
		labels   []Diagnosis
		row      int
	)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "dataset: reading input")
		}
		row++

		if len(record) != numColumns {
			return nil, errors.NewParseError(row, 0,
				"expected "+strconv.Itoa(numColumns)+" fields, got "+strconv.Itoa(len(record)))
		}

		label, err := ParseDiagnosis(record[1])
		if err != nil {
			return nil, errors.NewParseError(row, 2, "bad diagnosis label "+strconv.Quote(record[1]))
		}
		labels = append(labels, label)

		for j, field := range record[2:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, errors.NewParseError(row, j+3, "non-numeric feature value "+strconv.Quote(field))
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.NewParseError(row, j+3, "feature value must be finite")
			}
			features = append(features, v)
		}
	}

	if row == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "dataset: no observations")
	}

	return &Dataset{
		x:      mat.NewDense(row, NumFeatures, features),
		labels: labels,
	}, nil
}

// LoadFile reads and validates a WDBC-format file.
func LoadFile(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "dataset: opening "+path)
	}
	defer f.Close()
	return Load(f)
}

// N returns the number of observations.
func (d *Dataset) N() int {
	n, _ := d.x.Dims()
	return n
}

// X returns a copy of the feature matrix (N x 30).
func (d *Dataset) X() *mat.Dense {
	return mat.DenseCopyOf(d.x)
}

// Labels returns a copy of the categorical labels in row order.
func (d *Dataset) Labels() []Diagnosis {
	out := make([]Diagnosis, len(d.labels))
	copy(out, d.labels)
	return out
}

// Y returns the numeric label encoding (malignant 1, benign 0) as a
// column vector, for use in correlation and PCA.
func (d *Dataset) Y() *mat.VecDense {
	y := mat.NewVecDense(len(d.labels), nil)
	for i, label := range d.labels {
		y.SetVec(i, label.Numeric())
	}
	return y
}

// CountByClass returns the number of benign and malignant observations.
func (d *Dataset) CountByClass() (benign, malignant int) {
	for _, label := range d.labels {
		if label == Malignant {
			malignant++
		} else {
			benign++
		}
	}
	return benign, malignant
}
