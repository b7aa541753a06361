package streaming

import (
	"log"
	"sort"
	"sync"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lebowski36/Voxel-Castle/internal/config"
	"github.com/lebowski36/Voxel-Castle/internal/profiling"
	"github.com/lebowski36/Voxel-Castle/internal/world"
)

// DefaultSpawnHeight is returned by SpawnHeight when the spawn chunk is not resident.
const DefaultSpawnHeight = 10.0

// ChunkStore maps chunk coordinates to managed chunks and owns their LOD
// transitions. A single stage mutates it per tick; readers take the read lock.
type ChunkStore struct {
	chunks   map[world.ChunkCoord]*ManagedChunk
	mu       sync.RWMutex
	modCount uint64 // increases on any add, remove or state change

	cfg       config.StreamingConfig
	chunkSize int
	voxelSize float64
	gen       *world.TerrainGenerator
	prof      *profiling.Profiler
}

// NewChunkStore creates an empty store. prof may be nil.
func NewChunkStore(cfg *config.Config, gen *world.TerrainGenerator, prof *profiling.Profiler) *ChunkStore {
	return &ChunkStore{
		chunks:    make(map[world.ChunkCoord]*ManagedChunk),
		cfg:       cfg.Streaming,
		chunkSize: cfg.World.ChunkSize,
		voxelSize: cfg.World.VoxelSize,
		gen:       gen,
		prof:      prof,
	}
}

// ChunkSize returns the voxel edge length of stored chunks.
func (cs *ChunkStore) ChunkSize() int {
	return cs.chunkSize
}

// VoxelSize returns the voxel edge length in world units.
func (cs *ChunkStore) VoxelSize() float64 {
	return cs.voxelSize
}

// Generator returns the terrain generator used for regeneration.
func (cs *ChunkStore) Generator() *world.TerrainGenerator {
	return cs.gen
}

// ObserverChunk returns the chunk coordinate containing pos.
func (cs *ChunkStore) ObserverChunk(pos mgl64.Vec3) world.ChunkCoord {
	return world.ChunkCoordAt(pos, cs.chunkSize, cs.voxelSize)
}

// centerDistance is the distance from the chunk center to pos in chunk edge lengths.
func (cs *ChunkStore) centerDistance(coord world.ChunkCoord, pos mgl64.Vec3) float64 {
	edge := float64(cs.chunkSize) * cs.voxelSize
	return coord.Center(cs.chunkSize, cs.voxelSize).Sub(pos).Len() / edge
}

// GetChunk returns the entry at coord.
func (cs *ChunkStore) GetChunk(coord world.ChunkCoord) (*ManagedChunk, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	mc, ok := cs.chunks[coord]
	return mc, ok
}

// HasChunk reports whether coord has an entry.
func (cs *ChunkStore) HasChunk(coord world.ChunkCoord) bool {
	cs.mu.RLock()
	_, ok := cs.chunks[coord]
	cs.mu.RUnlock()
	return ok
}

// Len returns the number of entries.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// GetModCount returns the modification counter.
func (cs *ChunkStore) GetModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// GetAllChunks returns every entry ordered by coordinate.
func (cs *ChunkStore) GetAllChunks() []*ManagedChunk {
	cs.mu.RLock()
	out := make([]*ManagedChunk, 0, len(cs.chunks))
	for _, mc := range cs.chunks {
		out = append(out, mc)
	}
	cs.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return lessCoord(out[i].Coord, out[j].Coord) })
	return out
}

// Range calls fn for every entry under the read lock until fn returns false.
// fn must not call back into the store.
func (cs *ChunkStore) Range(fn func(*ManagedChunk) bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for _, mc := range cs.chunks {
		if !fn(mc) {
			return
		}
	}
}

func lessCoord(a, b world.ChunkCoord) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

// AddChunk inserts a freshly generated chunk, assigning its initial state
// from its distance to pos. An existing entry is left untouched.
func (cs *ChunkStore) AddChunk(c *world.Chunk, pos mgl64.Vec3) bool {
	mc := cs.newManaged(c, pos)
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[c.Coord]; ok {
		return false
	}
	cs.chunks[c.Coord] = mc
	cs.modCount++
	return true
}

// Publish inserts the results of a bulk load in one step under a single
// write lock. Coordinates already present are skipped.
func (cs *ChunkStore) Publish(chunks []*world.Chunk, pos mgl64.Vec3) int {
	defer cs.prof.Track("streaming.Publish")()
	entries := make([]*ManagedChunk, 0, len(chunks))
	for _, c := range chunks {
		if c != nil {
			entries = append(entries, cs.newManaged(c, pos))
		}
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	added := 0
	for _, mc := range entries {
		if _, ok := cs.chunks[mc.Coord]; ok {
			continue
		}
		cs.chunks[mc.Coord] = mc
		added++
	}
	if added > 0 {
		cs.modCount++
	}
	return added
}

// newManaged wraps c in an entry whose state is taken directly from its
// distance, without going through the transition rules.
func (cs *ChunkStore) newManaged(c *world.Chunk, pos mgl64.Vec3) *ManagedChunk {
	mc := &ManagedChunk{Coord: c.Coord}
	target, _ := cs.targetState(cs.centerDistance(c.Coord, pos))
	switch target {
	case StateActive:
		mc.State = StateActive
		mc.Chunk = c
	case StateLOD:
		mc.State = StateLOD
		mc.LODMesh = cs.buildLOD(c)
	default:
		mc.State = StateUnloaded
	}
	mc.Revision = 1
	return mc
}

// EvictFarChunks removes every entry whose chunk-space distance to center
// exceeds the unload radius. Returns the number removed.
func (cs *ChunkStore) EvictFarChunks(center world.ChunkCoord) int {
	defer cs.prof.Track("streaming.Evict")()
	removed := 0
	cs.mu.Lock()
	for coord := range cs.chunks {
		if coord.DistanceTo(center) > cs.cfg.UnloadRadius {
			delete(cs.chunks, coord)
			removed++
		}
	}
	if removed > 0 {
		cs.modCount++
	}
	cs.mu.Unlock()
	if removed > 0 {
		log.Printf("[Stream] evicted %d chunks around %v", removed, center)
	}
	return removed
}

// SpawnHeight returns the world-space Y on top of the highest solid voxel
// in chunk (0,0,0), or DefaultSpawnHeight if that chunk or its grid is absent.
func (cs *ChunkStore) SpawnHeight() float64 {
	mc, ok := cs.GetChunk(world.ChunkCoord{})
	if !ok || mc.Chunk == nil {
		return DefaultSpawnHeight
	}
	y, ok := mc.Chunk.HighestSolid()
	if !ok {
		return DefaultSpawnHeight
	}
	return float64(y+1) * cs.voxelSize
}
