// Package recommend predicts a career category from quiz scores.
//
// The classifier is a pre-trained softmax model exported as JSON: a feature
// scaler (mean, scale), a weight matrix with one row per class and a bias per
// class. Training happens elsewhere; this package only runs inference.
package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// FeatureCount is the number of quiz sections fed to the classifier.
const FeatureCount = 8

// DefaultClasses are the category names used when a model file does not list its own.
var DefaultClasses = []string{
	"AI ML Specialist",
	"API Integration Specialist",
	"Application Support Engineer",
	"Business Analyst",
	"Cyber Security Specialist",
	"Data Scientist",
	"Database Administrator",
	"Graphics Designer",
	"Hardware Engineer",
	"Helpdesk Engineer",
	"Information Security Specialist",
	"Networking Engineer",
	"Project Manager",
}

// Prediction is the classifier output for one set of scores.
type Prediction struct {
	Category      string
	Confidence    float64
	Probabilities map[string]float64
}

// Predictor turns a feature vector into a Prediction.
type Predictor interface {
	Predict(features []float64) (Prediction, error)
}

// LinearModel is a standardized multinomial logistic regression.
type LinearModel struct {
	Classes []string    `json:"classes"`
	Mean    []float64   `json:"mean"`
	Scale   []float64   `json:"scale"`
	Weights [][]float64 `json:"weights"`
	Bias    []float64   `json:"bias"`
}

// LoadModel reads and validates a model file.
func LoadModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	var m LinearModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", path, err)
	}
	if len(m.Classes) == 0 {
		m.Classes = DefaultClasses
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks that all dimensions agree.
func (m *LinearModel) Validate() error {
	if len(m.Mean) != FeatureCount || len(m.Scale) != FeatureCount {
		return fmt.Errorf("scaler must have %d features, got mean=%d scale=%d", FeatureCount, len(m.Mean), len(m.Scale))
	}
	for i, s := range m.Scale {
		if s == 0 {
			return fmt.Errorf("scale[%d] is zero", i)
		}
	}
	if len(m.Weights) != len(m.Classes) || len(m.Bias) != len(m.Classes) {
		return fmt.Errorf("expected %d weight rows and biases, got %d and %d", len(m.Classes), len(m.Weights), len(m.Bias))
	}
	for i, row := range m.Weights {
		if len(row) != FeatureCount {
			return fmt.Errorf("weights[%d] has %d columns, want %d", i, len(row), FeatureCount)
		}
	}
	return nil
}

// Predict standardizes the features, applies the linear layer and returns the argmax class.
func (m *LinearModel) Predict(features []float64) (Prediction, error) {
	if len(features) != FeatureCount {
		return Prediction{}, fmt.Errorf("expected %d features, got %d", FeatureCount, len(features))
	}

	scaled := make([]float64, FeatureCount)
	for i, x := range features {
		scaled[i] = (x - m.Mean[i]) / m.Scale[i]
	}

	logits := make([]float64, len(m.Classes))
	for k, row := range m.Weights {
		z := m.Bias[k]
		for i, w := range row {
			z += w * scaled[i]
		}
		logits[k] = z
	}

	probs := softmax(logits)
	best := argmax(probs)
	if best < 0 {
		return Prediction{}, errors.New("model produced no finite scores")
	}

	byClass := make(map[string]float64, len(probs))
	for k, p := range probs {
		byClass[m.Classes[k]] = p
	}
	return Prediction{
		Category:      m.Classes[best],
		Confidence:    probs[best],
		Probabilities: byClass,
	}, nil
}

func softmax(logits []float64) []float64 {
	maxLogit := math.Inf(-1)
	for _, z := range logits {
		if z > maxLogit {
			maxLogit = z
		}
	}

	out := make([]float64, len(logits))
	var sum float64
	for i, z := range logits {
		out[i] = math.Exp(z - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// argmax returns the first index of the largest finite value, or -1.
func argmax(values []float64) int {
	best := -1
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if best < 0 || v > values[best] {
			best = i
		}
	}
	return best
}
