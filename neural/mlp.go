// Package neural implements the feed-forward network used in the study: a
// multi-layer perceptron with exactly two hidden layers, sigmoid units
// throughout, and a two-unit output giving complementary class scores.
// Training is plain momentum backpropagation over one-hot targets.
//
// All randomness (weight initialization, per-epoch sample order) derives
// from the configured seed, so training is bit-reproducible.
package neural

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/LDPStardust/FNADiagnosticsAnalysis/core/model"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/dataset"
	"github.com/LDPStardust/FNADiagnosticsAnalysis/pkg/errors"
)

const (
	// DefaultLearningRate is the backpropagation step size.
	DefaultLearningRate = 0.1
	// DefaultMomentum is the velocity retention factor.
	DefaultMomentum = 0.6
	// DefaultEpochs is the number of training passes.
	DefaultEpochs = 200
)

// DefaultHidden is the hidden layout used for the headline result.
var DefaultHidden = [2]int{8, 4}

// MLPClassifier is a 30-in, two-hidden-layer, 2-out sigmoid network.
type MLPClassifier struct {
	model.BaseEstimator

	hidden       [2]int
	learningRate float64
	momentum     float64
	epochs       int
	seed         uint64

	// weights[l][i][j] connects unit j of layer l to unit i of layer l+1;
	// one bias per destination unit. Layer sizes are in, h1, h2, 2.
	weights  [3][][]float64
	biases   [3][]float64
	velocity [3][][]float64

	nFeatures int
}

// MLPOption configures an MLPClassifier.
type MLPOption func(*MLPClassifier)

// WithHidden sets the two hidden-layer widths.
func WithHidden(first, second int) MLPOption {
	return func(m *MLPClassifier) { m.hidden = [2]int{first, second} }
}

// WithLearningRate sets the backpropagation step size.
func WithLearningRate(lr float64) MLPOption {
	return func(m *MLPClassifier) { m.learningRate = lr }
}

// WithMomentum sets the velocity retention factor.
func WithMomentum(momentum float64) MLPOption {
	return func(m *MLPClassifier) { m.momentum = momentum }
}

// WithEpochs sets the number of training passes.
func WithEpochs(epochs int) MLPOption {
	return func(m *MLPClassifier) { m.epochs = epochs }
}

// WithSeed sets the seed for weight initialization and sample order.
func WithSeed(seed uint64) MLPOption {
	return func(m *MLPClassifier) { m.seed = seed }
}

// NewMLPClassifier creates an MLP with the study defaults.
func NewMLPClassifier(opts ...MLPOption) *MLPClassifier {
	m := &MLPClassifier{
		hidden:       DefaultHidden,
		learningRate: DefaultLearningRate,
		momentum:     DefaultMomentum,
		epochs:       DefaultEpochs,
		seed:         1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Hidden returns the configured hidden-layer widths.
func (m *MLPClassifier) Hidden() [2]int {
	return m.hidden
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Fit trains the network by per-sample momentum backpropagation.
func (m *MLPClassifier) Fit(X mat.Matrix, y []dataset.Diagnosis) error {
	if m.hidden[0] < 1 || m.hidden[1] < 1 {
		return errors.NewValidationError("hidden", "layer widths must be at least 1", m.hidden)
	}
	if m.learningRate <= 0 {
		return errors.NewValidationError("learning_rate", "must be positive", m.learningRate)
	}
	if m.momentum < 0 || m.momentum >= 1 {
		return errors.NewValidationError("momentum", "must be in [0, 1)", m.momentum)
	}
	if m.epochs <= 0 {
		return errors.NewValidationError("epochs", "must be positive", m.epochs)
	}

	n, cols := X.Dims()
	if n == 0 {
		return errors.Wrap(errors.ErrEmptyData, "MLPClassifier.Fit")
	}
	if n != len(y) {
		return errors.NewDimensionError("MLPClassifier.Fit", n, len(y), 0)
	}

	m.nFeatures = cols
	r := rand.New(rand.NewPCG(m.seed, m.seed))
	sizes := [4]int{cols, m.hidden[0], m.hidden[1], dataset.NumClasses}
	for l := 0; l < 3; l++ {
		m.weights[l] = initLayer(r, sizes[l+1], sizes[l])
		m.velocity[l] = zeroLayer(sizes[l+1], sizes[l])
		m.biases[l] = make([]float64, sizes[l+1])
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	input := make([]float64, cols)

	for epoch := 0; epoch < m.epochs; epoch++ {
		r.Shuffle(n, func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		for _, idx := range order {
			mat.Row(input, idx, X)

			var target [dataset.NumClasses]float64
			target[y[idx]] = 1

			m.backprop(input, target)
		}
	}

	m.SetFitted()
	return nil
}

// backprop runs one forward/backward pass and applies the weight update.
func (m *MLPClassifier) backprop(input []float64, target [dataset.NumClasses]float64) {
	activations := m.forward(input)

	// Output deltas for squared error through the sigmoid.
	layers := [4][]float64{input, activations[0], activations[1], activations[2]}
	deltas := [3][]float64{}
	out := activations[2]
	deltas[2] = make([]float64, len(out))
	for i, a := range out {
		deltas[2][i] = (a - target[i]) * a * (1 - a)
	}

	for l := 1; l >= 0; l-- {
		current := activations[l]
		deltas[l] = make([]float64, len(current))
		for i, a := range current {
			sum := 0.0
			for k := range deltas[l+1] {
				sum += deltas[l+1][k] * m.weights[l+1][k][i]
			}
			deltas[l][i] = sum * a * (1 - a)
		}
	}

	for l := 0; l < 3; l++ {
		prev := layers[l]
		for i := range m.weights[l] {
			grad := deltas[l][i]
			for j := range m.weights[l][i] {
				v := m.momentum*m.velocity[l][i][j] - m.learningRate*grad*prev[j]
				m.velocity[l][i][j] = v
				m.weights[l][i][j] += v
			}
			m.biases[l][i] -= m.learningRate * grad
		}
	}
}

// forward returns the activations of the two hidden layers and the output
// layer for one input vector.
func (m *MLPClassifier) forward(input []float64) [3][]float64 {
	var activations [3][]float64
	current := input
	for l := 0; l < 3; l++ {
		next := make([]float64, len(m.weights[l]))
		for i, row := range m.weights[l] {
			sum := m.biases[l][i]
			for j, w := range row {
				sum += w * current[j]
			}
			next[i] = sigmoid(sum)
		}
		activations[l] = next
		current = next
	}
	return activations
}

// Predict returns the class of the larger output unit for each row.
func (m *MLPClassifier) Predict(X mat.Matrix) ([]dataset.Diagnosis, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}

	r, _ := proba.Dims()
	out := make([]dataset.Diagnosis, r)
	for i := 0; i < r; i++ {
		if proba.At(i, int(dataset.Malignant)) > proba.At(i, int(dataset.Benign)) {
			out[i] = dataset.Malignant
		} else {
			out[i] = dataset.Benign
		}
	}
	return out, nil
}

// PredictProba normalizes the two output activations into complementary
// class probabilities per row.
func (m *MLPClassifier) PredictProba(X mat.Matrix) (*mat.Dense, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MLPClassifier", "PredictProba")
	}
	r, cols := X.Dims()
	if cols != m.nFeatures {
		return nil, errors.NewDimensionError("MLPClassifier.PredictProba", m.nFeatures, cols, 1)
	}

	out := mat.NewDense(r, dataset.NumClasses, nil)
	input := make([]float64, cols)
	for i := 0; i < r; i++ {
		mat.Row(input, i, X)
		activations := m.forward(input)
		raw := activations[2]
		total := raw[0] + raw[1]
		if total == 0 {
			out.Set(i, 0, 0.5)
			out.Set(i, 1, 0.5)
			continue
		}
		out.Set(i, 0, raw[0]/total)
		out.Set(i, 1, raw[1]/total)
	}
	return out, nil
}

// initLayer draws weights uniformly from [-1/sqrt(fanIn), 1/sqrt(fanIn)].
func initLayer(r *rand.Rand, rows, cols int) [][]float64 {
	scale := 1 / math.Sqrt(float64(cols))
	w := make([][]float64, rows)
	for i := range w {
		w[i] = make([]float64, cols)
		for j := range w[i] {
			w[i][j] = (2*r.Float64() - 1) * scale
		}
	}
	return w
}

func zeroLayer(rows, cols int) [][]float64 {
	w := make([][]float64, rows)
	for i := range w {
		w[i] = make([]float64, cols)
	}
	return w
}
