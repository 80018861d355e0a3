// predict/model.go
package predict

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrModelUnavailable is returned when no artifact could be loaded.
var ErrModelUnavailable = errors.New("prediction model unavailable")

// Model kinds understood by Predict.
const (
	KindLinear = "linear"
	KindForest = "forest"
)

// Artifact is the on-disk msgpack form of a trained model: label encoders,
// a standard scaler and the regressor itself.
type Artifact struct {
	Version  int                 `msgpack:"version"`
	Columns  []string            `msgpack:"columns"`
	Encoders map[string][]string `msgpack:"encoders"` // column -> classes, index is the code
	Scaler   Scaler              `msgpack:"scaler"`
	Model    Regressor           `msgpack:"model"`
}

// Scaler standardises features: (x - mean) / scale.
type Scaler struct {
	Mean  []float64 `msgpack:"mean"`
	Scale []float64 `msgpack:"scale"`
}

// Regressor is either a linear model (Coef, Intercept) or a forest of regression trees.
type Regressor struct {
	Kind      string    `msgpack:"kind"`
	Coef      []float64 `msgpack:"coef,omitempty"`
	Intercept float64   `msgpack:"intercept,omitempty"`
	Trees     []Tree    `msgpack:"trees,omitempty"`
}

// Tree is a regression tree in flattened array form. Node i is a leaf when
// Left[i] < 0; otherwise go left when x[Feature[i]] <= Threshold[i].
type Tree struct {
	Feature   []int     `msgpack:"feature"`
	Threshold []float64 `msgpack:"threshold"`
	Left      []int     `msgpack:"left"`
	Right     []int     `msgpack:"right"`
	Value     []float64 `msgpack:"value"`
}

// Model is a validated, ready-to-use artifact.
type Model struct {
	art     Artifact
	classes map[string]map[string]int
}

// Load reads and validates an artifact from path.
func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads and validates an artifact from r.
func Decode(r io.Reader) (*Model, error) {
	var art Artifact
	if err := msgpack.NewDecoder(r).Decode(&art); err != nil {
		return nil, fmt.Errorf("failed to decode model artifact: %w", err)
	}
	return New(art)
}

// Encode writes art to w in the artifact format.
func Encode(w io.Writer, art Artifact) error {
	return msgpack.NewEncoder(w).Encode(art)
}

// New validates art and indexes its encoders.
func New(art Artifact) (*Model, error) {
	n := len(FeatureColumns)
	if !slices.Equal(art.Columns, FeatureColumns) {
		return nil, fmt.Errorf("model columns %v do not match %v", art.Columns, FeatureColumns)
	}
	if len(art.Scaler.Mean) != n || len(art.Scaler.Scale) != n {
		return nil, fmt.Errorf("scaler expects %d/%d features, want %d", len(art.Scaler.Mean), len(art.Scaler.Scale), n)
	}

	switch art.Model.Kind {
	case KindLinear:
		if len(art.Model.Coef) != n {
			return nil, fmt.Errorf("linear model has %d coefficients, want %d", len(art.Model.Coef), n)
		}
	case KindForest:
		if len(art.Model.Trees) == 0 {
			return nil, fmt.Errorf("forest model has no trees")
		}
		for i, t := range art.Model.Trees {
			if err := t.validate(n); err != nil {
				return nil, fmt.Errorf("tree %d: %w", i, err)
			}
		}
	default:
		return nil, fmt.Errorf("unknown model kind %q", art.Model.Kind)
	}

	m := &Model{art: art, classes: make(map[string]map[string]int)}
	for col, classes := range art.Encoders {
		idx := make(map[string]int, len(classes))
		for i, c := range classes {
			idx[c] = i
		}
		m.classes[col] = idx
	}
	return m, nil
}

func (t Tree) validate(nFeatures int) error {
	nodes := len(t.Value)
	if nodes == 0 || len(t.Feature) != nodes || len(t.Threshold) != nodes || len(t.Left) != nodes || len(t.Right) != nodes {
		return fmt.Errorf("inconsistent node arrays")
	}
	for i := 0; i < nodes; i++ {
		if t.Left[i] < 0 {
			continue
		}
		if t.Left[i] >= nodes || t.Right[i] < 0 || t.Right[i] >= nodes || t.Left[i] <= i || t.Right[i] <= i {
			return fmt.Errorf("node %d has invalid children", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d splits on unknown feature %d", i, t.Feature[i])
		}
	}
	return nil
}

// Encode maps a categorical value to its class index; unseen values map to 0.
func (m *Model) Encode(column, value string) float64 {
	return float64(m.classes[column][value])
}

// Vector label-encodes and standard-scales f in FeatureColumns order.
func (m *Model) Vector(f Features) []float64 {
	x := make([]float64, len(FeatureColumns))
	for i, col := range FeatureColumns {
		if slices.Contains(CategoricalColumns, col) {
			x[i] = m.Encode(col, f.categorical(col))
		} else {
			x[i] = f.numeric(col)
		}
		scale := m.art.Scaler.Scale[i]
		if scale == 0 {
			scale = 1
		}
		x[i] = (x[i] - m.art.Scaler.Mean[i]) / scale
	}
	return x
}

// Predict returns the model's predicted total emissions for f.
func (m *Model) Predict(f Features) float64 {
	x := m.Vector(f)
	switch m.art.Model.Kind {
	case KindForest:
		var sum float64
		for _, t := range m.art.Model.Trees {
			sum += t.predict(x)
		}
		return sum / float64(len(m.art.Model.Trees))
	}
	y := m.art.Model.Intercept
	for i, c := range m.art.Model.Coef {
		y += c * x[i]
	}
	return y
}

func (t Tree) predict(x []float64) float64 {
	i := 0
	for t.Left[i] >= 0 {
		if x[t.Feature[i]] <= t.Threshold[i] {
			i = t.Left[i]
		} else {
			i = t.Right[i]
		}
	}
	return t.Value[i]
}

// Kind reports the regressor type.
func (m *Model) Kind() string {
	return m.art.Model.Kind
}
