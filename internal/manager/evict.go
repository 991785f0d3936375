package manager

// evictForRoomLocked drops least recently used idle instances until a new one
// fits under maxLoaded. Busy, pinned or loading instances are never evicted,
// so the cap can be exceeded temporarily. Caller holds m.mu.
func (m *Manager) evictForRoomLocked() {
	for len(m.instances) >= m.maxLoaded {
		var lru *Instance
		for _, inst := range m.instances {
			if inst.State != StateReady || inst.pins > 0 || len(inst.genCh) > 0 || len(inst.queueCh) > 0 {
				continue
			}
			if lru == nil || inst.LastUsed.Before(lru.LastUsed) {
				lru = inst
			}
		}
		if lru == nil {
			return
		}
		delete(m.instances, lru.ID)
		m.evictionsTotal++
		m.log.Debug().Str("model", lru.ID).Msg("model evicted")
		m.publisher.Publish(Event{Name: "evict", ModelID: lru.ID, Fields: map[string]any{"last_used": lru.LastUsed}})
	}
}
