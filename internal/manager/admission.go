package manager

import (
	"context"
	"time"
)

// beginPrediction reserves a queue slot and then an in-flight slot on a
// resident model. Returns a release func to be deferred.
func (m *Manager) beginPrediction(ctx context.Context, modelID string) (func(), error) {
	m.mu.RLock()
	inst := m.instances[modelID]
	m.mu.RUnlock()
	if inst == nil {
		return func() {}, modelNotFoundError{id: modelID}
	}
	return m.admit(ctx, inst)
}

// acquire makes modelID resident and admits one prediction on it. The
// instance stays pinned until it holds a queue slot, so a concurrent load of
// another model cannot evict it in between.
func (m *Manager) acquire(ctx context.Context, modelID string) (*Instance, func(), error) {
	inst, err := m.ensure(ctx, modelID, true)
	if err != nil {
		return nil, nil, err
	}
	release, err := m.admit(ctx, inst)
	m.unpin(inst)
	if err != nil {
		return nil, nil, err
	}
	return inst, release, nil
}

func (m *Manager) admit(ctx context.Context, inst *Instance) (func(), error) {
	m.mu.RLock()
	draining := inst.State == StateDraining
	m.mu.RUnlock()
	// If draining, reject new work to allow graceful unload
	if draining {
		return func() {}, tooBusyError{modelID: inst.ID}
	}
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}

	timer := time.NewTimer(m.maxWait)
	defer timer.Stop()
	select {
	case inst.queueCh <- struct{}{}:
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timer.C:
		return func() {}, tooBusyError{modelID: inst.ID}
	}

	acquired := false
	defer func() {
		if !acquired {
			<-inst.queueCh
		}
	}()
	select {
	case inst.genCh <- struct{}{}:
		acquired = true
		m.mu.Lock()
		inst.LastUsed = time.Now()
		m.mu.Unlock()
		return func() { <-inst.genCh; <-inst.queueCh }, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timer.C:
		return func() {}, tooBusyError{modelID: inst.ID}
	}
}
