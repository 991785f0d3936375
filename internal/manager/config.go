package manager

import (
	"time"

	"github.com/rs/zerolog"

	"medpredict/pkg/types"
)

// Defaults applied when corresponding ManagerConfig fields are unset.
const (
	defaultMaxQueueDepth = 32
	defaultMaxConcurrent = 4
	defaultMaxWait       = 5 * time.Second
	defaultDrainTimeout  = 5 * time.Second
)

// ManagerConfig encapsulates all tunables for Manager construction.
type ManagerConfig struct {
	Registry []types.Model
	// Bindings maps disease id to model id. Diseases without an entry use the
	// first registered model (by id) trained for them.
	Bindings      map[string]string
	MaxQueueDepth int
	MaxConcurrent int
	MaxWait       time.Duration
	// MaxLoaded caps the number of resident classifiers; 0 means unlimited.
	MaxLoaded    int
	DrainTimeout time.Duration
	Publisher    EventPublisher
	Logger       *zerolog.Logger
}

// NewWithConfig constructs a Manager from ManagerConfig.
func NewWithConfig(cfg ManagerConfig) *Manager {
	m := &Manager{
		state:     StateLoading,
		registry:  append([]types.Model(nil), cfg.Registry...),
		instances: make(map[string]*Instance),
		maxLoaded: cfg.MaxLoaded,
		publisher: cfg.Publisher,
		startTime: time.Now(),
	}
	if cfg.MaxQueueDepth <= 0 {
		m.maxQueueDepth = defaultMaxQueueDepth
	} else {
		m.maxQueueDepth = cfg.MaxQueueDepth
	}
	if cfg.MaxConcurrent <= 0 {
		m.maxConcurrent = defaultMaxConcurrent
	} else {
		m.maxConcurrent = cfg.MaxConcurrent
	}
	if cfg.MaxWait <= 0 {
		m.maxWait = defaultMaxWait
	} else {
		m.maxWait = cfg.MaxWait
	}
	if cfg.DrainTimeout <= 0 {
		m.drainTimeout = defaultDrainTimeout
	} else {
		m.drainTimeout = cfg.DrainTimeout
	}
	if m.publisher == nil {
		m.publisher = noopPublisher{}
	}
	if cfg.Logger != nil {
		m.log = *cfg.Logger
	} else {
		m.log = zerolog.Nop()
	}
	m.bindings, m.badBindings = bindModels(m.registry, cfg.Bindings)
	for _, d := range sortedKeys(m.badBindings) {
		m.log.Error().Err(m.badBindings[d]).Str("disease", d).Msg("ignoring disease binding")
	}
	return m
}
