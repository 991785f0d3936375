package features

import "fmt"

var builtin = []*Schema{
	parkinsonsSchema(),
	lungCancerSchema(),
	heartDiseaseSchema(),
	diabetesSchema(),
}

func init() {
	for _, s := range builtin {
		if err := s.Validate(); err != nil {
			panic(fmt.Sprintf("features: invalid built-in schema: %v", err))
		}
	}
}

// Lookup returns the built-in schema for a disease id.
func Lookup(disease string) (*Schema, bool) {
	for _, s := range builtin {
		if s.Disease == disease {
			return s, true
		}
	}
	return nil, false
}

// All returns the built-in schemas in display order.
func All() []*Schema {
	out := make([]*Schema, len(builtin))
	copy(out, builtin)
	return out
}

func number(key, label, help, group string) Field {
	return Field{Key: key, Label: label, Help: help, Group: group, Kind: KindNumber, Default: "0"}
}

func yesNo(key, label, group string) Field {
	return Field{Key: key, Label: label, Group: group, Kind: KindYesNo, Default: "Yes"}
}

func sexField(key, label, group string) Field {
	return Field{
		Key: key, Label: label, Group: group, Kind: KindChoice, Default: "Male",
		Options: []Option{{Label: "Male", Value: 1}, {Label: "Female", Value: 0}},
	}
}

func ageSlider(group string) Field {
	return Field{
		Key: "age", Label: "Age", Help: "Patient age", Group: group, Kind: KindSlider,
		Min: ptr(20), Max: ptr(100), Step: 1, Default: "50",
	}
}

func parkinsonsSchema() *Schema {
	const (
		freq    = "MDVP Frequency Features"
		shimmer = "MDVP Shimmer Features"
		extra   = "Additional Voice Measures"
	)
	s := &Schema{
		Disease: "parkinsons",
		Title:   "Parkinson's Disease",
		Button:  "Predict Parkinson's Disease",
		Groups:  []string{freq, shimmer, extra},
		Fields: []Field{
			number("mdvp_fo", "MDVP:Fo(Hz)", "Average vocal fundamental frequency", freq),
			number("mdvp_fhi", "MDVP:Fhi(Hz)", "Maximum vocal fundamental frequency", freq),
			number("mdvp_flo", "MDVP:Flo(Hz)", "Minimum vocal fundamental frequency", freq),
			number("mdvp_jitter", "MDVP:Jitter(%)", "Frequency perturbation", freq),
			number("mdvp_jitter_abs", "MDVP:Jitter(Abs)", "Absolute frequency perturbation", freq),
			number("mdvp_rap", "MDVP:RAP", "Relative amplitude perturbation", freq),
			number("mdvp_ppq", "MDVP:PPQ", "Five-point period perturbation quotient", freq),
			number("jitter_ddp", "Jitter:DDP", "Average difference of differences", freq),

			number("mdvp_shimmer", "MDVP:Shimmer", "Amplitude perturbation", shimmer),
			number("mdvp_shimmer_db", "MDVP:Shimmer(dB)", "Shimmer in dB", shimmer),
			number("shimmer_apq3", "Shimmer:APQ3", "Three-point amplitude perturbation", shimmer),
			number("shimmer_apq5", "Shimmer:APQ5", "Five-point amplitude perturbation", shimmer),
			number("mdvp_apq", "MDVP:APQ", "Amplitude perturbation quotient", shimmer),
			number("shimmer_dda", "Shimmer:DDA", "Average amplitude differences", shimmer),

			number("nhr", "NHR", "Noise-to-harmonics ratio", extra),
			number("hnr", "HNR", "Harmonics-to-noise ratio", extra),
			number("rpde", "RPDE", "Recurrence period density entropy", extra),
			number("dfa", "DFA", "Detrended fluctuation analysis", extra),
			number("spread1", "spread1", "Nonlinear measure of fundamental frequency variation", extra),
			number("spread2", "spread2", "Nonlinear measure of fundamental frequency variation", extra),
			number("d2", "D2", "Correlation dimension", extra),
			number("ppe", "PPE", "Pitch period entropy", extra),
		},
	}
	// Display order happens to match the training order here.
	for _, f := range s.Fields {
		s.Order = append(s.Order, f.Key)
	}
	return s
}

func lungCancerSchema() *Schema {
	const (
		personal  = "Personal Information"
		primary   = "Primary Symptoms"
		secondary = "Secondary Symptoms"
	)
	return &Schema{
		Disease: "lung_cancer",
		Title:   "Lung Cancer",
		Button:  "Predict Lung Cancer",
		Groups:  []string{personal, primary, secondary},
		Fields: []Field{
			ageSlider(personal),
			sexField("gender", "Gender", personal),
			yesNo("smoking", "Smoking", personal),
			yesNo("alcohol", "Alcohol Consuming", personal),
			yesNo("peer_pressure", "Peer Pressure", personal),

			yesNo("chronic_disease", "Chronic Disease", primary),
			yesNo("fatigue", "Fatigue", primary),
			yesNo("allergy", "Allergy", primary),
			yesNo("wheezing", "Wheezing", primary),
			yesNo("coughing", "Coughing", primary),

			yesNo("shortness_breath", "Shortness of Breath", secondary),
			yesNo("swallowing", "Difficulty Swallowing", secondary),
			yesNo("chest_pain", "Chest Pain", secondary),
			yesNo("yellow_fingers", "Yellow Fingers", secondary),
			yesNo("anxiety", "Anxiety", secondary),
		},
		Order: []string{
			"gender", "age", "smoking", "yellow_fingers", "anxiety",
			"peer_pressure", "chronic_disease", "fatigue", "allergy", "wheezing",
			"alcohol", "coughing", "shortness_breath", "swallowing", "chest_pain",
		},
	}
}

func heartDiseaseSchema() *Schema {
	const (
		personal = "Personal Information"
		clinical = "Clinical Measurements"
		exercise = "Exercise Test"
	)
	return &Schema{
		Disease: "heart_disease",
		Title:   "Heart Disease",
		Button:  "Predict Heart Disease",
		Groups:  []string{personal, clinical, exercise},
		Fields: []Field{
			ageSlider(personal),
			sexField("sex", "Sex", personal),
			{
				Key: "cp", Label: "Chest Pain Type", Group: personal, Kind: KindChoice, Default: "Typical angina",
				Options: []Option{
					{Label: "Typical angina", Value: 0},
					{Label: "Atypical angina", Value: 1},
					{Label: "Non-anginal pain", Value: 2},
					{Label: "Asymptomatic", Value: 3},
				},
			},
			{Key: "trestbps", Label: "Resting Blood Pressure", Help: "mm Hg on admission", Group: clinical, Kind: KindNumber, Min: ptr(0), Default: "120"},
			{Key: "chol", Label: "Serum Cholesterol", Help: "mg/dl", Group: clinical, Kind: KindNumber, Min: ptr(0), Default: "200"},
			yesNo("fbs", "Fasting Blood Sugar > 120 mg/dl", clinical),
			{
				Key: "restecg", Label: "Resting ECG", Group: clinical, Kind: KindChoice, Default: "Normal",
				Options: []Option{
					{Label: "Normal", Value: 0},
					{Label: "ST-T wave abnormality", Value: 1},
					{Label: "Left ventricular hypertrophy", Value: 2},
				},
			},
			{
				Key: "ca", Label: "Major Vessels Colored", Help: "Number of major vessels colored by fluoroscopy",
				Group: clinical, Kind: KindSlider, Min: ptr(0), Max: ptr(4), Step: 1, Default: "0",
			},
			{
				Key: "thal", Label: "Thalassemia", Group: clinical, Kind: KindChoice, Default: "Normal",
				Options: []Option{
					{Label: "Normal", Value: 1},
					{Label: "Fixed defect", Value: 2},
					{Label: "Reversible defect", Value: 3},
				},
			},
			{Key: "thalach", Label: "Maximum Heart Rate", Help: "Maximum heart rate achieved", Group: exercise, Kind: KindNumber, Min: ptr(0), Default: "150"},
			yesNo("exang", "Exercise Induced Angina", exercise),
			{Key: "oldpeak", Label: "ST Depression", Help: "ST depression induced by exercise relative to rest", Group: exercise, Kind: KindNumber, Default: "0"},
			{
				Key: "slope", Label: "Slope of Peak Exercise ST", Group: exercise, Kind: KindChoice, Default: "Upsloping",
				Options: []Option{
					{Label: "Upsloping", Value: 0},
					{Label: "Flat", Value: 1},
					{Label: "Downsloping", Value: 2},
				},
			},
		},
		Order: []string{
			"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg",
			"thalach", "exang", "oldpeak", "slope", "ca", "thal",
		},
	}
}

func diabetesSchema() *Schema {
	const (
		personal = "Personal Information"
		labs     = "Lab Results"
	)
	return &Schema{
		Disease: "diabetes",
		Title:   "Diabetes",
		Button:  "Predict Diabetes",
		Groups:  []string{personal, labs},
		Fields: []Field{
			{Key: "pregnancies", Label: "Pregnancies", Help: "Number of times pregnant", Group: personal, Kind: KindNumber, Min: ptr(0), Step: 1, Default: "0"},
			{Key: "age", Label: "Age", Help: "Patient age", Group: personal, Kind: KindSlider, Min: ptr(1), Max: ptr(120), Step: 1, Default: "30"},
			{Key: "bmi", Label: "BMI", Help: "Body mass index", Group: personal, Kind: KindNumber, Min: ptr(0), Default: "0"},
			{Key: "pedigree", Label: "Diabetes Pedigree Function", Help: "Family history score", Group: personal, Kind: KindNumber, Min: ptr(0), Default: "0"},
			{Key: "glucose", Label: "Glucose", Help: "Plasma glucose concentration", Group: labs, Kind: KindNumber, Min: ptr(0), Default: "0"},
			{Key: "blood_pressure", Label: "Blood Pressure", Help: "Diastolic blood pressure (mm Hg)", Group: labs, Kind: KindNumber, Min: ptr(0), Default: "0"},
			{Key: "skin_thickness", Label: "Skin Thickness", Help: "Triceps skin fold thickness (mm)", Group: labs, Kind: KindNumber, Min: ptr(0), Default: "0"},
			{Key: "insulin", Label: "Insulin", Help: "2-hour serum insulin (mu U/ml)", Group: labs, Kind: KindNumber, Min: ptr(0), Default: "0"},
		},
		Order: []string{
			"pregnancies", "glucose", "blood_pressure", "skin_thickness",
			"insulin", "bmi", "pedigree", "age",
		},
	}
}
