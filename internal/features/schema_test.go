package features

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinSchemasValidate(t *testing.T) {
	want := map[string]int{
		"parkinsons":    22,
		"lung_cancer":   15,
		"heart_disease": 13,
		"diabetes":      8,
	}
	all := All()
	require.Len(t, all, len(want))
	for _, s := range all {
		require.NoError(t, s.Validate(), s.Disease)
		assert.Equal(t, want[s.Disease], s.NumFeatures(), s.Disease)
		for _, f := range s.Fields {
			assert.Contains(t, s.Groups, f.Group, "%s.%s", s.Disease, f.Key)
		}
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("lung_cancer")
	require.True(t, ok)
	assert.Equal(t, "Lung Cancer", s.Title)
	_, ok = Lookup("flu")
	assert.False(t, ok)
}

func TestLungCancerEncodeUsesModelOrder(t *testing.T) {
	s, _ := Lookup("lung_cancer")
	values := map[string]string{
		"age":              "63",
		"gender":           "Female",
		"smoking":          "Yes",
		"alcohol":          "No",
		"peer_pressure":    "No",
		"chronic_disease":  "Yes",
		"fatigue":          "No",
		"allergy":          "No",
		"wheezing":         "Yes",
		"coughing":         "Yes",
		"shortness_breath": "No",
		"swallowing":       "No",
		"chest_pain":       "Yes",
		"yellow_fingers":   "Yes",
		"anxiety":          "No",
		"unrelated":        "ignored",
	}
	got, err := s.Encode(values)
	require.NoError(t, err)
	// gender, age, smoking, yellow_fingers, anxiety, peer_pressure, chronic_disease,
	// fatigue, allergy, wheezing, alcohol, coughing, shortness_breath, swallowing, chest_pain
	want := []float64{0, 63, 1, 1, 0, 0, 1, 0, 0, 1, 0, 1, 0, 0, 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("vector mismatch (-want +got):\n%s", diff)
	}
}

func TestBuiltinModelOrder(t *testing.T) {
	want := map[string][]string{
		"parkinsons": {
			"mdvp_fo", "mdvp_fhi", "mdvp_flo", "mdvp_jitter", "mdvp_jitter_abs",
			"mdvp_rap", "mdvp_ppq", "jitter_ddp", "mdvp_shimmer", "mdvp_shimmer_db",
			"shimmer_apq3", "shimmer_apq5", "mdvp_apq", "shimmer_dda", "nhr",
			"hnr", "rpde", "dfa", "spread1", "spread2", "d2", "ppe",
		},
		"heart_disease": {
			"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg",
			"thalach", "exang", "oldpeak", "slope", "ca", "thal",
		},
		"diabetes": {
			"pregnancies", "glucose", "blood_pressure", "skin_thickness",
			"insulin", "bmi", "pedigree", "age",
		},
	}
	for disease, order := range want {
		s, ok := Lookup(disease)
		require.True(t, ok, disease)
		if diff := cmp.Diff(order, s.Order); diff != "" {
			t.Fatalf("%s order mismatch (-want +got):\n%s", disease, diff)
		}
	}
}

func TestHeartDiseaseEncodeUsesModelOrder(t *testing.T) {
	s, _ := Lookup("heart_disease")
	got, err := s.Encode(map[string]string{
		"thal":     "Reversible defect",
		"ca":       "2",
		"slope":    "Flat",
		"oldpeak":  "2.3",
		"exang":    "Yes",
		"thalach":  "150",
		"restecg":  "Left ventricular hypertrophy",
		"fbs":      "No",
		"chol":     "233",
		"trestbps": "145",
		"cp":       "Asymptomatic",
		"sex":      "Female",
		"age":      "63",
	})
	require.NoError(t, err)
	want := []float64{63, 0, 3, 145, 233, 0, 2, 150, 1, 2.3, 1, 2, 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("vector mismatch (-want +got):\n%s", diff)
	}
}

func TestDiabetesPregnanciesWholeNumber(t *testing.T) {
	s, _ := Lookup("diabetes")
	_, err := s.Encode(map[string]string{"pregnancies": "2.5"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{"pregnancies": "must be a whole number"}, verr.Fields)

	vec, err := s.Encode(map[string]string{"pregnancies": "2", "bmi": "33.6"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, vec[0])
	assert.Equal(t, 33.6, vec[5])
}

func TestEncodeDefaults(t *testing.T) {
	s, _ := Lookup("lung_cancer")
	got, err := s.Encode(nil)
	require.NoError(t, err)
	// Male, 50, every yes/no select on its first option (Yes).
	want := []float64{1, 50, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	assert.Equal(t, want, got)

	p, _ := Lookup("parkinsons")
	vec, err := p.Encode(map[string]string{"mdvp_fo": "119.992", "ppe": "0.284654"})
	require.NoError(t, err)
	require.Len(t, vec, 22)
	assert.Equal(t, 119.992, vec[0])
	assert.Equal(t, 0.284654, vec[21])
	assert.Equal(t, 0.0, vec[10])
}

func TestEncodeCollectsAllFieldErrors(t *testing.T) {
	s, _ := Lookup("lung_cancer")
	_, err := s.Encode(map[string]string{
		"age":     "150",
		"gender":  "Robot",
		"smoking": "maybe",
	})
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"age":     "must be at most 100",
		"gender":  "is not a valid choice",
		"smoking": "is not a valid choice",
	}, verr.Fields)
	assert.Contains(t, err.Error(), "age must be at most 100")
}

func TestFieldParse(t *testing.T) {
	cases := []struct {
		name    string
		field   Field
		raw     string
		want    float64
		wantErr bool
	}{
		{"number", Field{Kind: KindNumber}, " 1.5 ", 1.5, false},
		{"number negative", Field{Kind: KindNumber}, "-4.2", -4.2, false},
		{"number garbage", Field{Kind: KindNumber}, "abc", 0, true},
		{"number nan", Field{Kind: KindNumber}, "NaN", 0, true},
		{"number inf", Field{Kind: KindNumber}, "+Inf", 0, true},
		{"number below min", Field{Kind: KindNumber, Min: ptr(0)}, "-1", 0, true},
		{"required", Field{Kind: KindNumber}, "", 0, true},
		{"default", Field{Kind: KindNumber, Default: "7"}, "  ", 7, false},
		{"slider fraction", Field{Kind: KindSlider, Min: ptr(0), Max: ptr(10)}, "2.5", 0, true},
		{"slider ok", Field{Kind: KindSlider, Min: ptr(0), Max: ptr(10)}, "10", 10, false},
		{"whole step fraction", Field{Kind: KindNumber, Step: 1}, "2.5", 0, true},
		{"whole step ok", Field{Kind: KindNumber, Step: 1}, "3", 3, false},
		{"fine step fraction", Field{Kind: KindNumber, Step: 0.1}, "2.5", 2.5, false},
		{"yes", Field{Kind: KindYesNo}, "YES", 1, false},
		{"no", Field{Kind: KindYesNo}, "no", 0, false},
		{"true", Field{Kind: KindYesNo}, "true", 1, false},
		{"zero", Field{Kind: KindYesNo}, "0", 0, false},
		{"choice label", Field{Kind: KindChoice, Options: []Option{{"A", 3}, {"B", 5}}}, "b", 5, false},
		{"choice value", Field{Kind: KindChoice, Options: []Option{{"A", 3}, {"B", 5}}}, "3", 3, false},
		{"choice unknown", Field{Kind: KindChoice, Options: []Option{{"A", 3}}}, "4", 0, true},
		{"unknown kind", Field{Kind: "date"}, "x", 0, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.field.Parse(c.raw)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestFieldSelected(t *testing.T) {
	f := sexField("sex", "Sex", "")
	assert.True(t, f.Selected("", Option{Label: "Male", Value: 1}))
	assert.True(t, f.Selected("0", Option{Label: "Female", Value: 0}))
	assert.False(t, f.Selected("Female", Option{Label: "Male", Value: 1}))
}

func TestValidateRejectsBrokenSchemas(t *testing.T) {
	base := func() *Schema {
		return &Schema{
			Disease: "x",
			Fields:  []Field{{Key: "a", Kind: KindNumber}, {Key: "b", Kind: KindYesNo}},
			Order:   []string{"b", "a"},
		}
	}
	require.NoError(t, base().Validate())

	s := base()
	s.Order = []string{"a"}
	assert.Error(t, s.Validate(), "missing ordered feature")

	s = base()
	s.Order = []string{"a", "a"}
	assert.Error(t, s.Validate(), "duplicate order")

	s = base()
	s.Order = []string{"a", "c"}
	assert.Error(t, s.Validate(), "unknown key")

	s = base()
	s.Fields = append(s.Fields, Field{Key: "a"})
	assert.Error(t, s.Validate(), "duplicate field")

	s = base()
	s.Fields[0].Kind = KindChoice
	assert.Error(t, s.Validate(), "choice without options")
}

func TestMessage(t *testing.T) {
	s, _ := Lookup("parkinsons")
	assert.Equal(t, "The model predicts that the patient may have Parkinson's Disease", s.Message(true))
	assert.Equal(t, "The model predicts that the patient is healthy", s.Message(false))
}

func TestWithHelpSanitizesAndCopies(t *testing.T) {
	s, _ := Lookup("parkinsons")
	cp := s.WithHelp(map[string]string{
		"nhr": `<b>Noise</b> & harmonics <script>alert(1)</script>`,
		"hnr": "   ",
	})
	f, _ := cp.Field("nhr")
	assert.Equal(t, "Noise & harmonics", f.Help)
	f, _ = cp.Field("hnr")
	assert.Equal(t, "Harmonics-to-noise ratio", f.Help)

	orig, _ := s.Field("nhr")
	assert.Equal(t, "Noise-to-harmonics ratio", orig.Help, "built-in schema must not change")
}

func TestInfo(t *testing.T) {
	s, _ := Lookup("lung_cancer")
	info := s.Info("lung-v1")
	assert.Equal(t, "lung_cancer", info.ID)
	assert.Equal(t, "lung-v1", info.Model)
	assert.Equal(t, s.Order, info.Order)
	require.Len(t, info.Fields, 15)
	for _, f := range info.Fields {
		if f.Key == "smoking" {
			assert.Len(t, f.Options, 2)
		}
	}
}

func TestNormalizeValues(t *testing.T) {
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(`{"a":1.5,"b":true,"c":"Yes","d":null,"e":42}`), &decoded))
	got := NormalizeValues(decoded)
	want := map[string]string{"a": "1.5", "b": "Yes", "c": "Yes", "d": "", "e": "42"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	assert.Equal(t, "No", NormalizeValues(map[string]any{"x": false})["x"])
	assert.Equal(t, "7", NormalizeValues(map[string]any{"x": 7})["x"])
}
