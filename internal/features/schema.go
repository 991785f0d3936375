package features

import (
	"fmt"
	"sort"
	"strings"

	"medpredict/pkg/types"
)

// Schema is the form definition of one disease plus the feature order of its model.
type Schema struct {
	Disease         string
	Title           string
	Button          string
	PositiveMessage string
	NegativeMessage string
	Groups          []string
	Fields          []Field
	// Order lists field keys in the order the model was trained on.
	Order []string
}

// ValidationError collects per-field input problems.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Field returns the field with the given key.
func (s *Schema) Field(key string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// NumFeatures is the length of the encoded vector.
func (s *Schema) NumFeatures() int { return len(s.Order) }

// FieldsInGroup returns the fields of group g in display order.
func (s *Schema) FieldsInGroup(g string) []Field {
	var out []Field
	for _, f := range s.Fields {
		if f.Group == g {
			out = append(out, f)
		}
	}
	return out
}

// Validate checks that Order and Fields describe the same set of keys.
func (s *Schema) Validate() error {
	if s.Disease == "" {
		return fmt.Errorf("schema without disease id")
	}
	byKey := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Key == "" {
			return fmt.Errorf("%s: field without key", s.Disease)
		}
		if byKey[f.Key] {
			return fmt.Errorf("%s: duplicate field %q", s.Disease, f.Key)
		}
		byKey[f.Key] = true
		if f.Kind == KindChoice && len(f.Options) == 0 {
			return fmt.Errorf("%s: choice field %q has no options", s.Disease, f.Key)
		}
	}
	seen := make(map[string]bool, len(s.Order))
	for _, k := range s.Order {
		if !byKey[k] {
			return fmt.Errorf("%s: order references unknown field %q", s.Disease, k)
		}
		if seen[k] {
			return fmt.Errorf("%s: field %q appears twice in order", s.Disease, k)
		}
		seen[k] = true
	}
	if len(seen) != len(byKey) {
		return fmt.Errorf("%s: %d fields but %d ordered features", s.Disease, len(byKey), len(seen))
	}
	return nil
}

// Encode builds the feature vector in model order. Unknown keys are ignored.
// All field problems are reported together as a *ValidationError.
func (s *Schema) Encode(values map[string]string) ([]float64, error) {
	out := make([]float64, 0, len(s.Order))
	var verr *ValidationError
	for _, key := range s.Order {
		f, ok := s.Field(key)
		if !ok {
			return nil, fmt.Errorf("%s: order references unknown field %q", s.Disease, key)
		}
		v, err := f.Parse(values[key])
		if err != nil {
			if verr == nil {
				verr = &ValidationError{Fields: map[string]string{}}
			}
			verr.Fields[key] = err.Error()
			continue
		}
		out = append(out, v)
	}
	if verr != nil {
		return nil, verr
	}
	return out, nil
}

// Message returns the result text for a prediction.
func (s *Schema) Message(positive bool) string {
	if positive {
		if s.PositiveMessage != "" {
			return s.PositiveMessage
		}
		return "The model predicts that the patient may have " + s.Title
	}
	if s.NegativeMessage != "" {
		return s.NegativeMessage
	}
	return "The model predicts that the patient is healthy"
}

// WithHelp returns a copy whose field help texts are replaced by the
// non-empty entries of help. Texts are reduced to plain text first.
func (s *Schema) WithHelp(help map[string]string) *Schema {
	cp := *s
	cp.Fields = make([]Field, len(s.Fields))
	copy(cp.Fields, s.Fields)
	for i := range cp.Fields {
		if h := PlainText(help[cp.Fields[i].Key]); h != "" {
			cp.Fields[i].Help = h
		}
	}
	return &cp
}

// Info projects the schema onto its API representation.
func (s *Schema) Info(model string) types.DiseaseInfo {
	info := types.DiseaseInfo{
		ID:     s.Disease,
		Title:  s.Title,
		Model:  model,
		Groups: append([]string(nil), s.Groups...),
		Order:  append([]string(nil), s.Order...),
	}
	for _, f := range s.Fields {
		fi := types.FieldInfo{
			Key:     f.Key,
			Label:   f.Label,
			Help:    f.Help,
			Group:   f.Group,
			Kind:    string(f.Kind),
			Min:     f.Min,
			Max:     f.Max,
			Step:    f.Step,
			Default: f.Default,
		}
		for _, o := range f.Choices() {
			fi.Options = append(fi.Options, types.OptionInfo{Label: o.Label, Value: o.Value})
		}
		info.Fields = append(info.Fields, fi)
	}
	return info
}
