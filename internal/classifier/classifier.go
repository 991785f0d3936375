// Package classifier evaluates pre-trained binary classifiers exported as
// plain artifacts (coefficients, intercept, optional standard scaler).
package classifier

import (
	"errors"
	"fmt"
	"math"
)

// Kinds of supported classifiers.
const (
	KindLinearSVM          = "linear_svm"
	KindLogisticRegression = "logistic_regression"
)

// ErrFeatureCount is returned when an input vector has the wrong length.
var ErrFeatureCount = errors.New("feature count mismatch")

// Prediction is the outcome of a single classification.
type Prediction struct {
	Label int
	// Positive is true when Label is the second (disease) class.
	Positive bool
	// Score is the raw decision function value.
	Score float64
	// Probability of the positive class, when the model defines one.
	Probability *float64
}

// Classifier is an opaque trained model with a stable predict contract.
// Implementations are safe for concurrent use.
type Classifier interface {
	NumFeatures() int
	FeatureNames() []string
	Predict(x []float64) (Prediction, error)
}

type linear struct {
	kind     string
	names    []string
	coef     []float64
	bias     float64
	mean     []float64
	scale    []float64
	negative int
	positive int
}

// New builds a classifier from a decoded artifact.
func New(a Artifact) (Classifier, error) {
	if err := a.check(); err != nil {
		return nil, err
	}
	c := &linear{
		kind:     a.Kind,
		names:    append([]string(nil), a.Features...),
		coef:     append([]float64(nil), a.Coefficients...),
		bias:     a.Intercept,
		negative: 0,
		positive: 1,
	}
	if len(a.Classes) == 2 {
		c.negative, c.positive = a.Classes[0], a.Classes[1]
	}
	if a.Scaler != nil {
		c.mean = append([]float64(nil), a.Scaler.Mean...)
		c.scale = append([]float64(nil), a.Scaler.Scale...)
	}
	return c, nil
}

func (c *linear) NumFeatures() int { return len(c.coef) }

func (c *linear) FeatureNames() []string { return append([]string(nil), c.names...) }

func (c *linear) Predict(x []float64) (Prediction, error) {
	if len(x) != len(c.coef) {
		return Prediction{}, fmt.Errorf("%w: got %d, want %d", ErrFeatureCount, len(x), len(c.coef))
	}
	score := c.bias
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Prediction{}, fmt.Errorf("feature %d is not finite", i)
		}
		if c.mean != nil {
			s := c.scale[i]
			if s == 0 {
				s = 1
			}
			v = (v - c.mean[i]) / s
		}
		score += c.coef[i] * v
	}
	p := Prediction{Score: score, Label: c.negative}
	if score > 0 {
		p.Label = c.positive
		p.Positive = true
	}
	if c.kind == KindLogisticRegression {
		prob := sigmoid(score)
		p.Probability = &prob
	}
	return p, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
