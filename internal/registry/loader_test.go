package registry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

const lungArtifact = `{"id":"lung-v1","disease":"lung_cancer","kind":"linear_svm","coefficients":[1,2,3],"intercept":0,"version":"1"}`

func TestScanner_ScanFiltersArtifacts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lung.json", lungArtifact)
	writeFile(t, dir, "diab.YAML", "id: diab\ndisease: diabetes\nkind: logistic_regression\ncoefficients: [1]\nintercept: 0\n")
	writeFile(t, dir, "notes.txt", "not a model")
	writeFile(t, dir, "parkinsons_model.sav", "pickle bytes")
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	models, err := NewScanner().Scan(dir)
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(models) != 2 {
		t.Fatalf("expected 2 models, got %d: %+v", len(models), models)
	}
	if models[0].ID != "diab" || models[1].ID != "lung-v1" {
		t.Fatalf("unexpected order: %+v", models)
	}
	m := models[1]
	if m.Disease != "lung_cancer" || m.Kind != "linear_svm" || m.NumFeatures != 3 || m.Version != "1" {
		t.Fatalf("unexpected model: %+v", m)
	}
	if !filepath.IsAbs(m.Path) {
		t.Fatalf("path not absolute: %s", m.Path)
	}
}

func TestScanner_ReportsSkippedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", lungArtifact)
	writeFile(t, dir, "b.json", lungArtifact)
	writeFile(t, dir, "broken.json", `{"disease":"x"}`)

	var skipped []string
	s := &Scanner{OnSkip: func(path string, err error) {
		skipped = append(skipped, filepath.Base(path)+": "+err.Error())
	}}
	models, err := s.Scan(dir)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(models) != 1 {
		t.Fatalf("expected 1 model, got %+v", models)
	}
	if len(skipped) != 2 {
		t.Fatalf("expected 2 skipped files, got %v", skipped)
	}
	joined := strings.Join(skipped, "\n")
	if !strings.Contains(joined, "duplicate model id") || !strings.Contains(joined, "broken.json") {
		t.Fatalf("unexpected skip reports: %s", joined)
	}
}

func TestScanner_ExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	sub := filepath.Join(home, "models")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, sub, "x.json", lungArtifact)
	models, err := NewScanner().Scan("~/models")
	if err != nil {
		t.Fatalf("scan error: %v", err)
	}
	if len(models) != 1 || models[0].ID != "lung-v1" {
		t.Fatalf("unexpected models: %+v", models)
	}
}

func TestLoadDirMissing(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}
