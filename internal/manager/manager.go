package manager

import (
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"medpredict/internal/features"
	"medpredict/pkg/types"
)

type Manager struct {
	mu        sync.RWMutex
	state     State
	err       string
	registry  []types.Model
	bindings  map[string]string
	instances map[string]*Instance

	// badBindings holds configured bindings that were rejected, by disease.
	badBindings map[string]error

	maxQueueDepth int
	maxConcurrent int
	maxWait       time.Duration
	maxLoaded     int
	drainTimeout  time.Duration

	publisher EventPublisher
	log       zerolog.Logger
	startTime time.Time

	loadsTotal       uint64
	evictionsTotal   uint64
	predictionsTotal uint64
}

// New constructs a Manager with package defaults.
func New(reg []types.Model, bindings map[string]string) *Manager {
	return NewWithConfig(ManagerConfig{Registry: reg, Bindings: bindings})
}

// SetEventPublisher replaces the event sink. Passing nil drops events.
func (m *Manager) SetEventPublisher(p EventPublisher) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p == nil {
		p = noopPublisher{}
	}
	m.publisher = p
}

// Ready reports whether at least one classifier can serve predictions.
func (m *Manager) Ready() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, inst := range m.instances {
		if inst.State == StateReady {
			return true
		}
	}
	return m.state == StateReady
}

func (m *Manager) ListModels() []types.Model {
	m.mu.RLock()
	defer m.mu.RUnlock()
	// return a shallow copy to avoid external mutation
	out := make([]types.Model, len(m.registry))
	copy(out, m.registry)
	return out
}

// Bindings returns a copy of the disease to model mapping.
func (m *Manager) Bindings() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.bindings))
	for k, v := range m.bindings {
		out[k] = v
	}
	return out
}

// Diseases lists the forms that have a model bound, in built-in order.
// Help text from loaded artifacts replaces the built-in help.
func (m *Manager) Diseases() []types.DiseaseInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []types.DiseaseInfo
	for _, s := range features.All() {
		id, ok := m.bindings[s.Disease]
		if !ok {
			continue
		}
		schema := s
		if inst := m.instances[id]; inst != nil && inst.Schema != nil {
			schema = inst.Schema
		}
		out = append(out, schema.Info(id))
	}
	return out
}

// Schema returns the form of a disease as served by its bound model.
func (m *Manager) Schema(disease string) (*features.Schema, string, error) {
	s, ok := features.Lookup(disease)
	if !ok {
		return nil, "", diseaseNotFoundError{id: disease}
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.bindings[disease]
	if !ok {
		if err := m.badBindings[disease]; err != nil {
			return nil, "", err
		}
		return nil, "", modelNotFoundError{id: "(none bound to " + disease + ")"}
	}
	if inst := m.instances[id]; inst != nil && inst.Schema != nil {
		return inst.Schema, id, nil
	}
	return s, id, nil
}

func sortedIDs(instances map[string]*Instance) []string {
	ids := make([]string, 0, len(instances))
	for id := range instances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func sortedKeys(in map[string]error) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
