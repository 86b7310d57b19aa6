package recommend

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// threeClassModel favours "Networking Engineer" for networking scores and
// "Project Manager" for project management scores.
func threeClassModel() *LinearModel {
	return &LinearModel{
		Classes: []string{"Database Administrator", "Networking Engineer", "Project Manager"},
		Mean:    []float64{50, 50, 50, 50, 50, 50, 50, 50},
		Scale:   []float64{10, 10, 10, 10, 10, 10, 10, 10},
		Weights: [][]float64{
			{1, 0, 0, 0, 0, 0, 0, 0},
			{0, 0, 0, 0, 1, 0, 0, 0},
			{0, 0, 0, 0, 0, 0, 0, 1},
		},
		Bias: []float64{0, 0, 0},
	}
}

func writeModel(t *testing.T, m any) string {
	t.Helper()
	data, err := json.Marshal(m)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestLinearModel_Predict(t *testing.T) {
	m := threeClassModel()
	require.NoError(t, m.Validate())

	tests := []struct {
		name     string
		features []float64
		want     string
	}{
		{"networking", []float64{50, 50, 50, 50, 95, 50, 50, 50}, "Networking Engineer"},
		{"databases", []float64{90, 50, 50, 50, 60, 50, 50, 50}, "Database Administrator"},
		{"management", []float64{40, 50, 50, 50, 40, 50, 50, 100}, "Project Manager"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := m.Predict(tt.features)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Category)
			assert.Greater(t, p.Confidence, 1.0/3)

			var total float64
			for _, prob := range p.Probabilities {
				total += prob
			}
			assert.InDelta(t, 1.0, total, 1e-9)
			assert.Equal(t, p.Confidence, p.Probabilities[tt.want])
		})
	}
}

func TestLinearModel_PredictTieTakesFirstClass(t *testing.T) {
	m := threeClassModel()
	p, err := m.Predict([]float64{50, 50, 50, 50, 50, 50, 50, 50})
	require.NoError(t, err)
	assert.Equal(t, "Database Administrator", p.Category)
	assert.InDelta(t, 1.0/3, p.Confidence, 1e-9)
}

func TestLinearModel_PredictWrongFeatureCount(t *testing.T) {
	_, err := threeClassModel().Predict([]float64{1, 2, 3})
	assert.ErrorContains(t, err, "expected 8 features")
}

func TestSoftmax_LargeLogitsStayFinite(t *testing.T) {
	probs := softmax([]float64{1000, 999, -1000})
	for _, p := range probs {
		assert.False(t, math.IsNaN(p))
	}
	assert.Equal(t, 0, argmax(probs))
}

func TestLoadModel(t *testing.T) {
	path := writeModel(t, threeClassModel())

	m, err := LoadModel(path)
	require.NoError(t, err)
	assert.Len(t, m.Classes, 3)
}

func TestLoadModel_DefaultClasses(t *testing.T) {
	weights := make([][]float64, len(DefaultClasses))
	for i := range weights {
		weights[i] = make([]float64, FeatureCount)
		weights[i][i%FeatureCount] = 1
	}
	path := writeModel(t, map[string]any{
		"mean":    make([]float64, FeatureCount),
		"scale":   []float64{1, 1, 1, 1, 1, 1, 1, 1},
		"weights": weights,
		"bias":    make([]float64, len(DefaultClasses)),
	})

	m, err := LoadModel(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultClasses, m.Classes)
	assert.Len(t, m.Classes, 13)
}

func TestLoadModel_Errors(t *testing.T) {
	bad := threeClassModel()
	bad.Weights = bad.Weights[:2]

	zeroScale := threeClassModel()
	zeroScale.Scale[3] = 0

	tests := []struct {
		name    string
		path    func(t *testing.T) string
		wantErr string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }, "read model"},
		{"not json", func(t *testing.T) string {
			path := filepath.Join(t.TempDir(), "model.json")
			require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))
			return path
		}, "decode model"},
		{"row count mismatch", func(t *testing.T) string { return writeModel(t, bad) }, "weight rows"},
		{"zero scale", func(t *testing.T) string { return writeModel(t, zeroScale) }, "scale[3] is zero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadModel(tt.path(t))
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
