package manager

import (
	"time"

	"medpredict/internal/classifier"
	"medpredict/internal/features"
)

// State represents lifecycle state of the manager/instances.
type State string

const (
	StateReady    State = "ready"
	StateLoading  State = "loading"
	StateError    State = "error"
	StateDraining State = "draining"
)

// Instance is a loaded classifier (one per model id).
type Instance struct {
	ID       string
	Disease  string
	State    State
	LastUsed time.Time
	// Schema carries artifact help overrides merged into the built-in form.
	Schema     *features.Schema
	Classifier classifier.Classifier
	Artifact   classifier.Artifact

	predictions uint64
	// pins counts requests between ensure and admission; pinned instances are not evicted.
	pins int
	// loaded is closed once loading finished, successfully or not.
	loaded  chan struct{}
	loadErr error
	// Queueing primitives
	genCh   chan struct{} // buffered to MaxConcurrent: in-flight predictions
	queueCh chan struct{} // buffered: queue slots
}
