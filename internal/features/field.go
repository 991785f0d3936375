package features

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the widget type of a field.
type Kind string

const (
	KindNumber Kind = "number"
	KindSlider Kind = "slider"
	KindYesNo  Kind = "yesno"
	KindChoice Kind = "choice"
)

// Option is one selectable value of a choice field.
type Option struct {
	Label string
	Value float64
}

var yesNoOptions = []Option{{Label: "Yes", Value: 1}, {Label: "No", Value: 0}}

// Field describes one form input and how it turns into a feature value.
type Field struct {
	Key   string
	Label string
	Help  string
	Group string
	Kind  Kind
	Min   *float64
	Max   *float64
	// Step is the input granularity; zero means any.
	Step float64
	// Default is used when the submitted value is missing or blank.
	Default string
	Options []Option
}

var (
	errRequired   = errors.New("is required")
	errNotNumber  = errors.New("must be a number")
	errNotFinite  = errors.New("must be a finite number")
	errNotInteger = errors.New("must be a whole number")
	errNoChoice   = errors.New("is not a valid choice")
)

// Choices returns the selectable options. Yes/no fields get Yes and No.
func (f Field) Choices() []Option {
	if f.Kind == KindYesNo {
		return yesNoOptions
	}
	return f.Options
}

// Parse converts a raw submitted value into the feature value.
func (f Field) Parse(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = f.Default
	}
	if raw == "" {
		return 0, errRequired
	}
	switch f.Kind {
	case KindNumber, KindSlider:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, errNotNumber
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errNotFinite
		}
		if f.wholeNumbers() && v != math.Trunc(v) {
			return 0, errNotInteger
		}
		if f.Min != nil && v < *f.Min {
			return 0, fmt.Errorf("must be at least %s", formatFloat(*f.Min))
		}
		if f.Max != nil && v > *f.Max {
			return 0, fmt.Errorf("must be at most %s", formatFloat(*f.Max))
		}
		return v, nil
	case KindYesNo:
		switch strings.ToLower(raw) {
		case "yes", "y", "true", "1":
			return 1, nil
		case "no", "n", "false", "0":
			return 0, nil
		}
		return 0, errNoChoice
	case KindChoice:
		for _, o := range f.Options {
			if strings.EqualFold(o.Label, raw) {
				return o.Value, nil
			}
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			for _, o := range f.Options {
				if o.Value == v {
					return v, nil
				}
			}
		}
		return 0, errNoChoice
	default:
		return 0, fmt.Errorf("unsupported field kind %q", f.Kind)
	}
}

// wholeNumbers reports whether the field only takes integers: sliders, and
// numbers stepping by a whole amount.
func (f Field) wholeNumbers() bool {
	return f.Kind == KindSlider || (f.Step >= 1 && f.Step == math.Trunc(f.Step))
}

// Selected reports whether raw selects option o, falling back to the default.
// Used by the form renderer to keep submitted choices.
func (f Field) Selected(raw string, o Option) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = f.Default
	}
	if strings.EqualFold(raw, o.Label) {
		return true
	}
	v, err := f.Parse(raw)
	return err == nil && v == o.Value
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func ptr(v float64) *float64 { return &v }
