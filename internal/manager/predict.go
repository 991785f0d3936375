package manager

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"medpredict/internal/features"
	"medpredict/pkg/types"
)

// Predict encodes the submitted values for the requested disease, runs the
// bound classifier and builds the result message.
func (m *Manager) Predict(ctx context.Context, req types.PredictRequest) (types.PredictResponse, error) {
	var resp types.PredictResponse
	schema, ok := features.Lookup(req.Disease)
	if !ok {
		return resp, diseaseNotFoundError{id: req.Disease}
	}
	modelID := req.Model
	if modelID == "" {
		m.mu.RLock()
		modelID = m.bindings[req.Disease]
		bindErr := m.badBindings[req.Disease]
		m.mu.RUnlock()
		if modelID == "" {
			if bindErr != nil {
				return resp, bindErr
			}
			return resp, modelNotFoundError{id: "(none bound to " + req.Disease + ")"}
		}
	}
	mdl, ok := m.getModelByID(modelID)
	if !ok {
		return resp, ErrModelNotFound(modelID)
	}
	if mdl.Disease != req.Disease {
		return resp, &InvalidInputError{Msg: fmt.Sprintf("model %s serves %s, not %s", modelID, mdl.Disease, req.Disease)}
	}

	// Encode before loading so bad input never costs a model load.
	vec, err := schema.Encode(features.NormalizeValues(req.Values))
	if err != nil {
		predictionsTotal.WithLabelValues(req.Disease, "invalid").Inc()
		var verr *features.ValidationError
		if errors.As(err, &verr) {
			return resp, &InvalidInputError{Msg: verr.Error(), Fields: verr.Fields}
		}
		return resp, err
	}

	inst, release, err := m.acquire(ctx, modelID)
	if err != nil {
		return resp, err
	}
	defer release()

	pred, err := inst.Classifier.Predict(vec)
	if err != nil {
		predictionsTotal.WithLabelValues(req.Disease, "error").Inc()
		return resp, fmt.Errorf("predict %s: %w", modelID, err)
	}

	outcome := "negative"
	if pred.Positive {
		outcome = "positive"
	}
	predictionsTotal.WithLabelValues(req.Disease, outcome).Inc()
	m.mu.Lock()
	inst.predictions++
	m.predictionsTotal++
	pub := m.publisher
	m.mu.Unlock()
	pub.Publish(Event{Name: "predict", ModelID: modelID, Fields: map[string]any{"disease": req.Disease, "outcome": outcome}})

	return types.PredictResponse{
		ID:          uuid.NewString(),
		Disease:     req.Disease,
		Model:       modelID,
		Label:       pred.Label,
		Positive:    pred.Positive,
		Score:       pred.Score,
		Probability: pred.Probability,
		Message:     schema.Message(pred.Positive),
		Features:    vec,
	}, nil
}
