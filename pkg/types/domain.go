package types

// Model represents a classifier artifact discovered on disk.
type Model struct {
	// Stable identifier for the model.
	// example: parkinsons-svm
	ID string `json:"id" example:"parkinsons-svm"`
	// Disease the model was trained for.
	// example: parkinsons
	Disease string `json:"disease" example:"parkinsons"`
	// Classifier family (linear_svm, logistic_regression).
	// example: linear_svm
	Kind string `json:"kind" example:"linear_svm"`
	// Absolute path to the artifact file on disk.
	// example: /srv/models/parkinsons.json
	Path string `json:"path" example:"/srv/models/parkinsons.json"`
	// Number of features the model expects.
	// example: 22
	NumFeatures int `json:"num_features" example:"22"`
	// Optional artifact version string.
	// example: 2024-03-01
	Version string `json:"version,omitempty" example:"2024-03-01"`
}
