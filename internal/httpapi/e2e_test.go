package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"medpredict/internal/manager"
	"medpredict/internal/registry"
	"medpredict/pkg/types"
)

// newLiveServer wires a real manager over a temp artifact directory.
func newLiveServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	art := `{"id":"pima-lr","disease":"diabetes","kind":"logistic_regression",` +
		`"features":["pregnancies","glucose","blood_pressure","skin_thickness","insulin","bmi","pedigree","age"],` +
		`"coefficients":[0,0.1,0,0,0,0,0,0],"intercept":-14,"help":{"glucose":"<b>mg/dL</b> after 2h"}}`
	if err := os.WriteFile(filepath.Join(dir, "pima-lr.json"), []byte(art), 0o644); err != nil {
		t.Fatal(err)
	}
	reg, err := registry.LoadDir(dir)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	mgr := manager.NewWithConfig(manager.ManagerConfig{Registry: reg})
	t.Cleanup(func() { _ = mgr.Close() })
	srv := httptest.NewServer(NewMux(mgr))
	t.Cleanup(srv.Close)
	return srv
}

func TestLive_PredictJSON(t *testing.T) {
	srv := newLiveServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/predict", "application/json",
		strings.NewReader(`{"disease":"diabetes","values":{"glucose":190,"age":40}}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status=%d", resp.StatusCode)
	}
	var pr types.PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		t.Fatal(err)
	}
	if !pr.Positive || pr.Model != "pima-lr" || len(pr.Features) != 8 || pr.Features[1] != 190 || pr.Features[7] != 40 {
		t.Fatalf("unexpected response: %+v", pr)
	}
	if pr.Message != "The model predicts that the patient may have Diabetes" {
		t.Fatalf("message=%q", pr.Message)
	}

	resp2, err := http.Post(srv.URL+"/api/v1/predict", "application/json",
		strings.NewReader(`{"disease":"diabetes","values":{"glucose":"sweet","age":500}}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d", resp2.StatusCode)
	}
	var er types.ErrorResponse
	if err := json.NewDecoder(resp2.Body).Decode(&er); err != nil {
		t.Fatal(err)
	}
	if er.Fields["glucose"] == "" || er.Fields["age"] == "" {
		t.Fatalf("expected field errors for glucose and age, got %v", er.Fields)
	}
}

func TestLive_FormRoundTrip(t *testing.T) {
	srv := newLiveServer(t)

	resp, err := http.PostForm(srv.URL+"/diseases/diabetes", url.Values{"glucose": {"80"}})
	if err != nil {
		t.Fatal(err)
	}
	page := readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(page, "The model predicts that the patient is healthy") {
		t.Fatalf("status=%d, negative result missing", resp.StatusCode)
	}

	// The model is loaded now, so its help text replaces the built-in one.
	resp, err = http.Get(srv.URL + "/diseases/diabetes")
	if err != nil {
		t.Fatal(err)
	}
	page = readBody(t, resp)
	if resp.StatusCode != http.StatusOK || !strings.Contains(page, "mg/dL after 2h") || strings.Contains(page, "<b>mg/dL") {
		t.Fatalf("status=%d, artifact help not rendered as plain text", resp.StatusCode)
	}

	// Lung cancer has a form but no bound model here.
	resp, err = http.Get(srv.URL + "/diseases/lung_cancer")
	if err != nil {
		t.Fatal(err)
	}
	_ = readBody(t, resp)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unbound disease status=%d", resp.StatusCode)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}
