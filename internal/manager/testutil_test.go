package manager

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"medpredict/internal/registry"
	"medpredict/pkg/types"
)

// lungOrder mirrors the lung_cancer training order.
var lungOrder = []string{
	"gender", "age", "smoking", "yellow_fingers", "anxiety",
	"peer_pressure", "chronic_disease", "fatigue", "allergy", "wheezing",
	"alcohol", "coughing", "shortness_breath", "swallowing", "chest_pain",
}

// writeArtifact writes a JSON classifier artifact into dir.
func writeArtifact(t *testing.T, dir, name string, doc map[string]any) string {
	t.Helper()
	b, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, b, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

// smokingArtifact predicts lung cancer exactly when the patient smokes.
func smokingArtifact(id string) map[string]any {
	coef := make([]float64, len(lungOrder))
	coef[2] = 2
	return map[string]any{
		"id":           id,
		"disease":      "lung_cancer",
		"kind":         "linear_svm",
		"features":     lungOrder,
		"coefficients": coef,
		"intercept":    -1,
		"help":         map[string]string{"smoking": "<i>Current</i> smoker"},
	}
}

// glucoseArtifact predicts diabetes when glucose exceeds 140.
func glucoseArtifact(id string) map[string]any {
	return map[string]any{
		"id":           id,
		"disease":      "diabetes",
		"kind":         "logistic_regression",
		"coefficients": []float64{0, 0.1, 0, 0, 0, 0, 0, 0},
		"intercept":    -14,
	}
}

func scanDir(t *testing.T, dir string) []types.Model {
	t.Helper()
	reg, err := registry.LoadDir(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	return reg
}

func newTestManager(t *testing.T, cfg ManagerConfig, artifacts map[string]map[string]any) *Manager {
	t.Helper()
	dir := t.TempDir()
	for name, doc := range artifacts {
		writeArtifact(t, dir, name, doc)
	}
	cfg.Registry = scanDir(t, dir)
	return NewWithConfig(cfg)
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func lungValues(smoking string) map[string]any {
	return map[string]any{"age": 61, "gender": "Male", "smoking": smoking}
}
