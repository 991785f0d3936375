package manager

import (
	"context"
	"fmt"
	"sort"
	"time"

	"medpredict/internal/classifier"
	"medpredict/internal/features"
)

// EnsureInstance loads the classifier for modelID if it is not resident yet.
// Concurrent callers for the same model share a single load.
func (m *Manager) EnsureInstance(ctx context.Context, modelID string) error {
	_, err := m.ensure(ctx, modelID, false)
	return err
}

// ensure makes modelID resident and returns its instance. With pin set the
// instance is pinned before m.mu is released, so it cannot be evicted until
// the caller unpins it.
func (m *Manager) ensure(ctx context.Context, modelID string, pin bool) (*Instance, error) {
	mdl, ok := m.getModelByID(modelID)
	if !ok {
		return nil, ErrModelNotFound(modelID)
	}

	m.mu.Lock()
	for {
		inst, existed := m.instances[modelID]
		if !existed {
			break
		}
		switch inst.State {
		case StateReady:
			inst.LastUsed = time.Now()
			if pin {
				inst.pins++
			}
			m.mu.Unlock()
			return inst, nil
		case StateDraining:
			m.mu.Unlock()
			return nil, tooBusyError{modelID: modelID}
		}
		loaded := inst.loaded
		m.mu.Unlock()
		select {
		case <-loaded:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		m.mu.Lock()
		if inst.loadErr != nil {
			m.mu.Unlock()
			return nil, inst.loadErr
		}
		// Loaded by someone else; look again in case it was evicted meanwhile.
	}
	if m.maxLoaded > 0 {
		m.evictForRoomLocked()
	}
	inst := &Instance{
		ID:       modelID,
		Disease:  mdl.Disease,
		State:    StateLoading,
		LastUsed: time.Now(),
		loaded:   make(chan struct{}),
		genCh:    make(chan struct{}, m.maxConcurrent),
		queueCh:  make(chan struct{}, m.maxQueueDepth),
	}
	m.instances[modelID] = inst
	pub := m.publisher
	m.mu.Unlock()

	pub.Publish(Event{Name: "load_start", ModelID: modelID, Fields: map[string]any{"path": mdl.Path}})
	start := time.Now()
	art, clf, err := classifier.LoadFile(mdl.Path)
	var schema *features.Schema
	if err == nil {
		schema, err = checkSchema(mdl.Disease, art, clf)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	defer close(inst.loaded)
	if err != nil {
		inst.loadErr = err
		delete(m.instances, modelID)
		m.err = err.Error()
		modelLoadsTotal.WithLabelValues(modelID, "error").Inc()
		m.log.Error().Err(err).Str("model", modelID).Msg("model load failed")
		m.publisher.Publish(Event{Name: "load_error", ModelID: modelID, Fields: map[string]any{"error": err.Error()}})
		return nil, err
	}
	inst.Artifact = art
	inst.Classifier = clf
	inst.Schema = schema
	inst.State = StateReady
	inst.LastUsed = time.Now()
	if pin {
		inst.pins++
	}
	m.loadsTotal++
	m.state = StateReady
	m.err = ""
	modelLoadsTotal.WithLabelValues(modelID, "ok").Inc()
	m.log.Debug().Str("model", modelID).Str("disease", mdl.Disease).Dur("dur", time.Since(start)).Msg("model loaded")
	m.publisher.Publish(Event{Name: "load_done", ModelID: modelID, Fields: map[string]any{"disease": mdl.Disease}})
	return inst, nil
}

func (m *Manager) unpin(inst *Instance) {
	m.mu.Lock()
	inst.pins--
	m.mu.Unlock()
}

// Preload loads every bound model. Failures are collected; the manager is
// ready when at least one model loaded.
func (m *Manager) Preload(ctx context.Context) []error {
	var errs []error
	m.mu.RLock()
	for _, d := range sortedKeys(m.badBindings) {
		errs = append(errs, m.badBindings[d])
	}
	m.mu.RUnlock()
	for _, id := range uniqueValues(m.Bindings()) {
		if err := m.EnsureInstance(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
	}
	m.mu.Lock()
	if len(m.bindings) == 0 {
		m.state = StateError
		m.err = "no models bound to any disease"
	} else if len(errs) > 0 && !m.anyReadyLocked() {
		m.state = StateError
	}
	m.mu.Unlock()
	return errs
}

// checkSchema verifies that the artifact produces vectors of the length and
// order the disease form encodes, and merges artifact help into the form.
func checkSchema(disease string, art classifier.Artifact, clf classifier.Classifier) (*features.Schema, error) {
	s, ok := features.Lookup(disease)
	if !ok {
		return nil, schemaMismatchError{msg: fmt.Sprintf("model %s: no form for disease %q", art.ID, disease)}
	}
	if art.Disease != disease {
		return nil, schemaMismatchError{msg: fmt.Sprintf("model %s: artifact disease %q, registered as %q", art.ID, art.Disease, disease)}
	}
	if clf.NumFeatures() != s.NumFeatures() {
		return nil, schemaMismatchError{msg: fmt.Sprintf("model %s expects %d features, %s form provides %d", art.ID, clf.NumFeatures(), disease, s.NumFeatures())}
	}
	if names := clf.FeatureNames(); len(names) > 0 {
		for i, name := range names {
			if name != s.Order[i] {
				return nil, schemaMismatchError{msg: fmt.Sprintf("model %s feature %d is %q, %s form encodes %q", art.ID, i, name, disease, s.Order[i])}
			}
		}
	}
	if len(art.Help) > 0 {
		s = s.WithHelp(art.Help)
	}
	return s, nil
}

func (m *Manager) anyReadyLocked() bool {
	for _, inst := range m.instances {
		if inst.State == StateReady {
			return true
		}
	}
	return false
}

func uniqueValues(in map[string]string) []string {
	seen := make(map[string]bool, len(in))
	var out []string
	for _, v := range in {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
