package classifier

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Extensions lists the artifact file extensions understood by DecodeFile.
var Extensions = []string{".json", ".yaml", ".yml", ".toml"}

// Scaler is a standard scaler fitted alongside the model.
type Scaler struct {
	Mean  []float64 `json:"mean" yaml:"mean" toml:"mean"`
	Scale []float64 `json:"scale" yaml:"scale" toml:"scale"`
}

// Artifact is the on-disk form of an exported classifier.
type Artifact struct {
	ID           string            `json:"id" yaml:"id" toml:"id"`
	Disease      string            `json:"disease" yaml:"disease" toml:"disease"`
	Kind         string            `json:"kind" yaml:"kind" toml:"kind"`
	Version      string            `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Description  string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Features     []string          `json:"features,omitempty" yaml:"features,omitempty" toml:"features,omitempty"`
	Coefficients []float64         `json:"coefficients" yaml:"coefficients" toml:"coefficients"`
	Intercept    float64           `json:"intercept" yaml:"intercept" toml:"intercept"`
	Classes      []int             `json:"classes,omitempty" yaml:"classes,omitempty" toml:"classes,omitempty"`
	Scaler       *Scaler           `json:"scaler,omitempty" yaml:"scaler,omitempty" toml:"scaler,omitempty"`
	Help         map[string]string `json:"help,omitempty" yaml:"help,omitempty" toml:"help,omitempty"`
}

//go:embed artifact.schema.json
var artifactSchema []byte

// DecodeFile reads an artifact, validates its document shape and decodes it.
// The format is chosen by extension.
func DecodeFile(path string) (Artifact, error) {
	var a Artifact
	b, err := os.ReadFile(path)
	if err != nil {
		return a, err
	}
	var doc map[string]any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return a, fmt.Errorf("%s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &doc); err != nil {
			return a, fmt.Errorf("%s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &doc); err != nil {
			return a, fmt.Errorf("%s: %w", path, err)
		}
	default:
		return a, fmt.Errorf("unsupported artifact extension: %s", ext)
	}
	if err := validateDocument(doc); err != nil {
		return a, fmt.Errorf("%s: %w", path, err)
	}
	// Round-trip through JSON so every format shares one set of decoding rules.
	norm, err := json.Marshal(doc)
	if err != nil {
		return a, fmt.Errorf("%s: %w", path, err)
	}
	if err := json.Unmarshal(norm, &a); err != nil {
		return a, fmt.Errorf("%s: %w", path, err)
	}
	if a.ID == "" {
		a.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return a, a.check()
}

// LoadFile decodes an artifact and builds its classifier.
func LoadFile(path string) (Artifact, Classifier, error) {
	a, err := DecodeFile(path)
	if err != nil {
		return a, nil, err
	}
	c, err := New(a)
	return a, c, err
}

func validateDocument(doc map[string]any) error {
	if doc == nil {
		return fmt.Errorf("empty artifact document")
	}
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(artifactSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("artifact validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// check enforces the cross-field rules a JSON Schema cannot express.
func (a Artifact) check() error {
	switch a.Kind {
	case KindLinearSVM, KindLogisticRegression:
	default:
		return fmt.Errorf("artifact %s: unsupported kind %q", a.ID, a.Kind)
	}
	n := len(a.Coefficients)
	if n == 0 {
		return fmt.Errorf("artifact %s: no coefficients", a.ID)
	}
	if len(a.Features) > 0 && len(a.Features) != n {
		return fmt.Errorf("artifact %s: %d feature names for %d coefficients", a.ID, len(a.Features), n)
	}
	if a.Scaler != nil && (len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n) {
		return fmt.Errorf("artifact %s: scaler length does not match %d coefficients", a.ID, n)
	}
	if len(a.Classes) != 0 && len(a.Classes) != 2 {
		return fmt.Errorf("artifact %s: expected 2 classes, got %d", a.ID, len(a.Classes))
	}
	return nil
}
