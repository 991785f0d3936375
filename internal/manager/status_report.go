package manager

import (
	"time"

	"medpredict/pkg/types"
)

// Status builds a detailed status response for /status.
func (m *Manager) Status() types.StatusResponse {
	m.mu.RLock()
	defer m.mu.RUnlock()
	now := time.Now()
	resp := types.StatusResponse{
		State:            string(m.state),
		Error:            m.err,
		UptimeSeconds:    int64(now.Sub(m.startTime).Seconds()),
		ServerTimeUnix:   now.Unix(),
		LoadsTotal:       m.loadsTotal,
		EvictionsTotal:   m.evictionsTotal,
		PredictionsTotal: m.predictionsTotal,
		RegisteredModels: len(m.registry),
	}
	resp.Models = make([]types.ModelStatus, 0, len(m.instances))
	for _, id := range sortedIDs(m.instances) {
		inst := m.instances[id]
		resp.Models = append(resp.Models, types.ModelStatus{
			ModelID:       inst.ID,
			Disease:       inst.Disease,
			State:         string(inst.State),
			LastUsed:      inst.LastUsed.Unix(),
			QueueLen:      len(inst.queueCh),
			Inflight:      len(inst.genCh),
			MaxQueueDepth: cap(inst.queueCh),
			Predictions:   inst.predictions,
		})
	}
	return resp
}
