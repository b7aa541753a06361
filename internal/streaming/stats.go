package streaming

// Stats is an aggregate snapshot of the store for progress reporting.
type Stats struct {
	Active     int     `json:"active"`
	LOD        int     `json:"lod"`
	Unloaded   int     `json:"unloaded"`
	Meshed     int     `json:"meshed"`
	Loaded     int     `json:"loaded"`
	Expected   int     `json:"expected"`
	Percent    float64 `json:"percent"`
	Loading    bool    `json:"loading"`
	LoadTaskID string  `json:"loadTaskId,omitempty"`
	Tick       uint64  `json:"tick"`
}

// Progress returns loaded/expected as a percentage clamped to 100.
func Progress(loaded, expected int) float64 {
	if expected <= 0 {
		return 100
	}
	return min(float64(loaded)/float64(expected), 1) * 100
}

// Stats counts entries per state. Expected is the initial bulk-load volume.
func (cs *ChunkStore) Stats() Stats {
	var s Stats
	cs.mu.RLock()
	for _, mc := range cs.chunks {
		switch mc.State {
		case StateActive:
			s.Active++
			if mc.FullMesh != nil {
				s.Meshed++
			}
		case StateLOD:
			s.LOD++
		case StateUnloaded:
			s.Unloaded++
		}
	}
	s.Loaded = len(cs.chunks)
	cs.mu.RUnlock()
	s.Expected = cs.cfg.ExpectedChunks()
	s.Percent = Progress(s.Loaded, s.Expected)
	return s
}
