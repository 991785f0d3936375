package types

// PredictRequest represents a prediction request payload.
type PredictRequest struct {
	// Disease identifier.
	// example: lung_cancer
	Disease string `json:"disease"`
	// Optional model identifier. If empty, the model bound to the disease is used.
	Model string `json:"model,omitempty"`
	// Field values keyed by form field key. Numbers, strings and booleans are accepted.
	Values map[string]any `json:"values"`
}

// PredictResponse is returned by POST /api/v1/predict.
type PredictResponse struct {
	// Per-prediction identifier, useful for correlating logs. Nothing is stored under it.
	ID string `json:"id"`
	// example: lung_cancer
	Disease string `json:"disease"`
	// Model that produced the prediction.
	Model string `json:"model"`
	// Predicted class label (0 or 1 for the bundled schemas).
	Label int `json:"label"`
	// Whether the label is the positive (disease) class.
	Positive bool `json:"positive"`
	// Raw decision function value.
	Score float64 `json:"score"`
	// Probability of the positive class when the model provides one.
	Probability *float64 `json:"probability,omitempty"`
	// Human readable result message.
	Message string `json:"message"`
	// Encoded feature vector in model order.
	Features []float64 `json:"features"`
}

// OptionInfo is one selectable choice of a field.
type OptionInfo struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// FieldInfo describes a single form field.
type FieldInfo struct {
	Key     string       `json:"key"`
	Label   string       `json:"label"`
	Help    string       `json:"help,omitempty"`
	Group   string       `json:"group,omitempty"`
	Kind    string       `json:"kind"`
	Min     *float64     `json:"min,omitempty"`
	Max     *float64     `json:"max,omitempty"`
	Step    float64      `json:"step,omitempty"`
	Default string       `json:"default,omitempty"`
	Options []OptionInfo `json:"options,omitempty"`
}

// DiseaseInfo describes a predictable disease and its form.
type DiseaseInfo struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Model  string      `json:"model"`
	Groups []string    `json:"groups"`
	Fields []FieldInfo `json:"fields"`
	// Model feature order, as field keys.
	Order []string `json:"order"`
}

// DiseasesResponse wraps the list returned by GET /api/v1/diseases.
type DiseasesResponse struct {
	Diseases []DiseaseInfo `json:"diseases"`
}

// ModelsResponse wraps the list of models returned by GET /models.
type ModelsResponse struct {
	Models []Model `json:"models"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// example: 400
	Code int `json:"code" example:"400"`
	// Per-field validation messages, keyed by field key.
	Fields map[string]string `json:"fields,omitempty"`
}

// ModelStatus summarizes a loaded model for /status.
type ModelStatus struct {
	ModelID  string `json:"model_id"`
	Disease  string `json:"disease"`
	State    string `json:"state"`
	LastUsed int64  `json:"last_used_unix"`
	// Current queue length for incoming requests.
	QueueLen int `json:"queue_len"`
	// Number of in-flight predictions.
	Inflight      int    `json:"inflight"`
	MaxQueueDepth int    `json:"max_queue_depth"`
	Predictions   uint64 `json:"predictions"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	Models []ModelStatus `json:"models"`
	// Overall manager state (loading, ready, error).
	State          string `json:"state"`
	Error          string `json:"error,omitempty"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	ServerTimeUnix int64  `json:"server_time_unix"`
	LoadsTotal     uint64 `json:"loads_total"`
	EvictionsTotal uint64 `json:"evictions_total"`
	// Predictions served since start, across all models.
	PredictionsTotal uint64 `json:"predictions_total"`
	RegisteredModels int    `json:"registered_models"`
}
