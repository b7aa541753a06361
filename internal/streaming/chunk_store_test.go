package streaming

import (
	"crypto/sha256"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lebowski36/Voxel-Castle/internal/config"
	"github.com/lebowski36/Voxel-Castle/internal/world"
)

// newTestStore returns a store with small chunks so tests generate quickly.
func newTestStore(t testing.TB, chunkSize int) *ChunkStore {
	t.Helper()
	cfg := config.Default()
	cfg.World.ChunkSize = chunkSize
	gen := world.NewTerrainGenerator(cfg.World.Seed, cfg.Terrain)
	return NewChunkStore(cfg, gen, nil)
}

// centerOf returns the world-space center of coord for the store's geometry.
func centerOf(cs *ChunkStore, coord world.ChunkCoord) mgl64.Vec3 {
	return coord.Center(cs.chunkSize, cs.voxelSize)
}

// insertActive places an Active entry regardless of distance.
func insertActive(cs *ChunkStore, coord world.ChunkCoord) *ManagedChunk {
	mc := &ManagedChunk{Coord: coord, State: StateActive, Chunk: cs.regenerate(coord), Revision: 1}
	cs.chunks[coord] = mc
	return mc
}

func gridHash(c *world.Chunk) [32]byte {
	buf := make([]byte, len(c.Voxels()))
	for i, v := range c.Voxels() {
		buf[i] = byte(v)
	}
	return sha256.Sum256(buf)
}

func assertInvariant(t *testing.T, cs *ChunkStore) {
	t.Helper()
	for _, mc := range cs.GetAllChunks() {
		if !mc.Valid() {
			t.Fatalf("entry %v in state %v violates residency: grid=%v lod=%v full=%v",
				mc.Coord, mc.State, mc.Chunk != nil, mc.LODMesh != nil, mc.FullMesh != nil)
		}
	}
}

// TestScenarioDefaults follows the reference scenario with full-size chunks:
// observer in chunk (0,0,0), radii 2.5/5/8.
func TestScenarioDefaults(t *testing.T) {
	cs := newTestStore(t, world.DefaultChunkSize)
	origin := world.ChunkCoord{}
	pos := centerOf(cs, origin)

	a := cs.Generator().Generate(origin, cs.chunkSize)
	b := cs.Generator().Generate(origin, cs.chunkSize)
	if gridHash(a) != gridHash(b) {
		t.Fatal("generating chunk (0,0,0) twice produced different grids")
	}

	if !cs.AddChunk(a, pos) {
		t.Fatal("AddChunk failed for a new coordinate")
	}
	far := world.ChunkCoord{X: 6}
	gone := world.ChunkCoord{X: 9}
	insertActive(cs, far)
	insertActive(cs, gone)

	cs.EvictFarChunks(cs.ObserverChunk(pos))
	cs.UpdateLOD(pos)

	if mc, ok := cs.GetChunk(origin); !ok || mc.State != StateActive {
		t.Fatalf("chunk (0,0,0) should be Active, got %+v", mc)
	}
	if mc, ok := cs.GetChunk(far); !ok || mc.State != StateUnloaded {
		t.Fatalf("chunk at distance 6 should be Unloaded, got %+v", mc)
	}
	if cs.HasChunk(gone) {
		t.Fatal("chunk at distance 9 should have been evicted")
	}
	assertInvariant(t, cs)
}

func TestAddChunkInitialState(t *testing.T) {
	cs := newTestStore(t, 8)
	pos := centerOf(cs, world.ChunkCoord{})
	cases := []struct {
		coord world.ChunkCoord
		want  LODState
	}{
		{world.ChunkCoord{}, StateActive},
		{world.ChunkCoord{X: 2}, StateActive},
		{world.ChunkCoord{X: 4}, StateLOD},
		{world.ChunkCoord{Z: -5}, StateLOD},
		{world.ChunkCoord{Y: 7}, StateUnloaded},
	}
	for _, tc := range cases {
		cs.AddChunk(cs.regenerate(tc.coord), pos)
		mc, _ := cs.GetChunk(tc.coord)
		if mc.State != tc.want {
			t.Errorf("%v: initial state %v, want %v", tc.coord, mc.State, tc.want)
		}
	}
	assertInvariant(t, cs)

	if cs.AddChunk(cs.regenerate(world.ChunkCoord{}), pos) {
		t.Error("AddChunk should not replace an existing entry")
	}
}

// TestActiveBoundaryInclusive places the observer so a chunk center sits at
// exactly the active radius.
func TestActiveBoundaryInclusive(t *testing.T) {
	cs := newTestStore(t, 8)
	edge := float64(cs.chunkSize) * cs.voxelSize
	pos := centerOf(cs, world.ChunkCoord{}).Add(mgl64.Vec3{edge / 2, 0, 0})

	at := world.ChunkCoord{X: 3}
	if d := cs.centerDistance(at, pos); d != cs.cfg.ActiveRadius {
		t.Fatalf("setup: distance %v, want exactly %v", d, cs.cfg.ActiveRadius)
	}
	mc := &ManagedChunk{Coord: at, State: StateUnloaded}
	cs.chunks[at] = mc
	cs.UpdateLOD(pos)
	if mc.State != StateActive {
		t.Fatalf("chunk at d == active radius resolved to %v, want Active", mc.State)
	}

	beyond := world.ChunkCoord{X: 4}
	cs.chunks[beyond] = &ManagedChunk{Coord: beyond, State: StateUnloaded}
	cs.UpdateLOD(pos)
	if got := cs.chunks[beyond].State; got != StateLOD {
		t.Fatalf("chunk at d=3.5 resolved to %v, want LOD", got)
	}
}

func TestLODTransitions(t *testing.T) {
	cs := newTestStore(t, 8)
	coord := world.ChunkCoord{}
	edge := float64(cs.chunkSize) * cs.voxelSize
	near := centerOf(cs, coord)
	mid := near.Add(mgl64.Vec3{4 * edge, 0, 0})
	far := near.Add(mgl64.Vec3{7 * edge, 0, 0})
	gone := near.Add(mgl64.Vec3{12 * edge, 0, 0})

	mc := insertActive(cs, coord)
	want := gridHash(mc.Chunk)

	// Active -> LOD derives the mesh from the resident grid.
	rev := mc.Revision
	if n := cs.UpdateLOD(mid); n != 1 {
		t.Fatalf("expected 1 transition, got %d", n)
	}
	if mc.State != StateLOD || mc.Chunk != nil || mc.LODMesh == nil || mc.LODMesh.IsEmpty() {
		t.Fatalf("after Active->LOD: %+v", mc)
	}
	if mc.Revision <= rev {
		t.Error("revision should increase on transition")
	}

	// LOD -> Active regenerates the identical grid.
	cs.UpdateLOD(near)
	if mc.State != StateActive || mc.Chunk == nil || mc.LODMesh != nil {
		t.Fatalf("after LOD->Active: %+v", mc)
	}
	if gridHash(mc.Chunk) != want {
		t.Fatal("regenerated grid differs from the original")
	}

	// Active -> Unloaded frees everything.
	cs.SyncMeshes(near, 0)
	cs.UpdateLOD(far)
	if mc.State != StateUnloaded || !mc.Valid() {
		t.Fatalf("after Active->Unloaded: %+v", mc)
	}

	// Unloaded -> LOD builds a mesh from a temporary grid.
	cs.UpdateLOD(mid)
	if mc.State != StateLOD || mc.Chunk != nil || mc.LODMesh == nil {
		t.Fatalf("after Unloaded->LOD: %+v", mc)
	}

	// Beyond the unload radius the entry is left for eviction.
	cs.UpdateLOD(gone)
	if mc.State != StateLOD {
		t.Fatalf("UpdateLOD must not act beyond the unload radius, got %v", mc.State)
	}
	if n := cs.EvictFarChunks(cs.ObserverChunk(gone)); n != 1 || cs.HasChunk(coord) {
		t.Fatalf("expected eviction, removed %d", n)
	}
}

func TestUpdateLODStableWithoutMovement(t *testing.T) {
	cs := newTestStore(t, 8)
	pos := centerOf(cs, world.ChunkCoord{})
	for x := -6; x <= 6; x += 2 {
		cs.AddChunk(cs.regenerate(world.ChunkCoord{X: x}), pos)
	}
	if n := cs.UpdateLOD(pos); n != 0 {
		t.Errorf("entries placed at their target state should not transition, got %d", n)
	}
}

func TestEvictUsesChunkDistance(t *testing.T) {
	cs := newTestStore(t, 8)
	for _, c := range []world.ChunkCoord{{X: 8}, {X: 9}, {X: 6, Y: 6}, {Z: -8}} {
		cs.chunks[c] = &ManagedChunk{Coord: c, State: StateUnloaded}
	}
	removed := cs.EvictFarChunks(world.ChunkCoord{})
	if removed != 2 {
		t.Fatalf("expected 2 evictions, got %d", removed)
	}
	if !cs.HasChunk(world.ChunkCoord{X: 8}) || !cs.HasChunk(world.ChunkCoord{Z: -8}) {
		t.Error("chunks at exactly the unload radius must be kept")
	}
}

func TestSyncMeshesBudget(t *testing.T) {
	cs := newTestStore(t, 8)
	pos := centerOf(cs, world.ChunkCoord{})
	for x := -1; x <= 1; x++ {
		for z := -1; z <= 1; z++ {
			cs.AddChunk(cs.regenerate(world.ChunkCoord{X: x, Z: z}), pos)
		}
	}
	if n := cs.SyncMeshes(pos, 4); n != 4 {
		t.Fatalf("first sync built %d meshes, want 4", n)
	}
	origin, _ := cs.GetChunk(world.ChunkCoord{})
	if origin.FullMesh == nil || !origin.Renderable() {
		t.Error("nearest chunk should be meshed first")
	}
	if n := cs.SyncMeshes(pos, 0); n != 5 {
		t.Fatalf("unlimited sync built %d meshes, want 5", n)
	}
	if n := cs.SyncMeshes(pos, 0); n != 0 {
		t.Fatalf("nothing left to mesh, built %d", n)
	}
	if s := cs.Stats(); s.Meshed != 9 {
		t.Errorf("Stats.Meshed = %d, want 9", s.Meshed)
	}
}

func TestSpawnHeight(t *testing.T) {
	cs := newTestStore(t, 8)
	if h := cs.SpawnHeight(); h != DefaultSpawnHeight {
		t.Fatalf("missing spawn chunk: got %v, want fallback %v", h, DefaultSpawnHeight)
	}

	c := world.NewChunk(world.ChunkCoord{}, 8)
	c.Set(1, 3, 1, world.VoxelStone)
	cs.chunks[c.Coord] = &ManagedChunk{Coord: c.Coord, State: StateActive, Chunk: c}
	if h := cs.SpawnHeight(); h != 1.0 {
		t.Fatalf("SpawnHeight = %v, want 1.0", h)
	}

	cs.chunks[c.Coord] = &ManagedChunk{Coord: c.Coord, State: StateUnloaded}
	if h := cs.SpawnHeight(); h != DefaultSpawnHeight {
		t.Fatalf("spawn chunk without grid: got %v, want fallback", h)
	}
}

func TestStatsCounts(t *testing.T) {
	cs := newTestStore(t, 8)
	cs.cfg.InitialRadius = 1
	states := []LODState{StateActive, StateActive, StateLOD, StateUnloaded}
	for i, s := range states {
		cs.chunks[world.ChunkCoord{X: i}] = &ManagedChunk{Coord: world.ChunkCoord{X: i}, State: s}
	}
	s := cs.Stats()
	if s.Active != 2 || s.LOD != 1 || s.Unloaded != 1 || s.Loaded != 4 {
		t.Fatalf("unexpected counts: %+v", s)
	}
	if s.Expected != 27 {
		t.Fatalf("Expected = %d, want 27", s.Expected)
	}
	if want := Progress(4, 27); s.Percent != want {
		t.Fatalf("Percent = %v, want %v", s.Percent, want)
	}
}

func TestProgressClamped(t *testing.T) {
	if p := Progress(2000, 1331); p != 100 {
		t.Errorf("Progress should clamp to 100, got %v", p)
	}
	if p := Progress(0, 0); p != 100 {
		t.Errorf("Progress with nothing expected should be 100, got %v", p)
	}
	if p := Progress(1, 4); p != 25 {
		t.Errorf("Progress(1,4) = %v, want 25", p)
	}
}

func TestPublishSkipsExisting(t *testing.T) {
	cs := newTestStore(t, 8)
	pos := centerOf(cs, world.ChunkCoord{})
	existing := insertActive(cs, world.ChunkCoord{})
	chunks := []*world.Chunk{
		cs.regenerate(world.ChunkCoord{}),
		cs.regenerate(world.ChunkCoord{X: 1}),
		nil,
	}
	if n := cs.Publish(chunks, pos); n != 1 {
		t.Fatalf("Publish added %d, want 1", n)
	}
	if mc, _ := cs.GetChunk(world.ChunkCoord{}); mc != existing {
		t.Error("Publish replaced an existing entry")
	}
}
