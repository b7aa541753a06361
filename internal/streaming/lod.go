package streaming

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lebowski36/Voxel-Castle/internal/meshing"
	"github.com/lebowski36/Voxel-Castle/internal/world"
)

// targetState maps a normalized center distance to a state. Boundaries are
// inclusive. The second result is false beyond the unload radius, where the
// entry is left for eviction.
func (cs *ChunkStore) targetState(d float64) (LODState, bool) {
	switch {
	case d <= cs.cfg.ActiveRadius:
		return StateActive, true
	case d <= cs.cfg.LODRadius:
		return StateLOD, true
	case d <= cs.cfg.UnloadRadius:
		return StateUnloaded, true
	default:
		return StateUnloaded, false
	}
}

func (cs *ChunkStore) buildLOD(c *world.Chunk) *meshing.Mesh {
	defer cs.prof.Track("meshing.BuildLODMesh")()
	return meshing.BuildLODMesh(c, float32(cs.voxelSize))
}

func (cs *ChunkStore) buildFull(c *world.Chunk) *meshing.Mesh {
	defer cs.prof.Track("meshing.BuildFullMesh")()
	return meshing.BuildFullMesh(c, float32(cs.voxelSize))
}

func (cs *ChunkStore) regenerate(coord world.ChunkCoord) *world.Chunk {
	defer cs.prof.Track("world.Generate")()
	return cs.gen.Generate(coord, cs.chunkSize)
}

// UpdateLOD evaluates every entry once against the observer position and
// applies state transitions. Returns the number of entries that changed state.
// There is no hysteresis: an entry sitting exactly on a boundary may change
// state on consecutive ticks if the observer jitters across it.
func (cs *ChunkStore) UpdateLOD(pos mgl64.Vec3) int {
	defer cs.prof.Track("streaming.UpdateLOD")()
	cs.mu.Lock()
	defer cs.mu.Unlock()

	changed := 0
	for _, mc := range cs.chunks {
		target, ok := cs.targetState(cs.centerDistance(mc.Coord, pos))
		if !ok || target == mc.State {
			continue
		}
		cs.transition(mc, target)
		changed++
	}
	if changed > 0 {
		cs.modCount++
	}
	return changed
}

// transition moves mc to target, regenerating or freeing data as required.
func (cs *ChunkStore) transition(mc *ManagedChunk, target LODState) {
	switch target {
	case StateActive:
		// Edits are never persisted, so the grid always comes from the generator.
		mc.Chunk = cs.regenerate(mc.Coord)
		mc.LODMesh = nil
		mc.FullMesh = nil
	case StateLOD:
		grid := mc.Chunk
		if grid == nil {
			grid = cs.regenerate(mc.Coord)
		}
		mc.LODMesh = cs.buildLOD(grid)
		mc.Chunk = nil
		mc.FullMesh = nil
	case StateUnloaded:
		mc.Chunk = nil
		mc.LODMesh = nil
		mc.FullMesh = nil
	}
	mc.State = target
	mc.Revision++
}

// SyncMeshes builds full meshes for Active entries that lack one, at most
// limit per call (0 means no limit), nearest first. Returns the number built.
func (cs *ChunkStore) SyncMeshes(pos mgl64.Vec3, limit int) int {
	defer cs.prof.Track("streaming.SyncMeshes")()
	cs.mu.Lock()
	defer cs.mu.Unlock()

	var pending []*ManagedChunk
	for _, mc := range cs.chunks {
		if mc.State == StateActive && mc.Chunk != nil && mc.FullMesh == nil {
			pending = append(pending, mc)
		}
	}
	if len(pending) == 0 {
		return 0
	}
	sortByDistance(pending, func(mc *ManagedChunk) float64 { return cs.centerDistance(mc.Coord, pos) })
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	for _, mc := range pending {
		mc.FullMesh = cs.buildFull(mc.Chunk)
		mc.Revision++
	}
	return len(pending)
}
