package game

import (
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lebowski36/Voxel-Castle/internal/config"
	"github.com/lebowski36/Voxel-Castle/internal/profiling"
	"github.com/lebowski36/Voxel-Castle/internal/streaming"
	"github.com/lebowski36/Voxel-Castle/internal/world"
)

// SpawnClearance is how far above the spawn surface the observer is placed.
const SpawnClearance = 3.0

// Observer is the pose the pipeline streams around.
type Observer struct {
	Position mgl64.Vec3
	Facing   mgl64.Vec3
}

// TickReport summarizes the work done in one tick.
type TickReport struct {
	Loading     bool
	Published   int
	Evicted     int
	Generated   int
	Transitions int
	Meshed      int
	Duration    time.Duration
}

// Session owns the chunk store and runs the per-tick pipeline:
// bulk-load poll, eviction, streaming generation, LOD transitions, mesh sync.
type Session struct {
	cfg      *config.Config
	Store    *streaming.ChunkStore
	Streamer *streaming.ChunkStreamer
	Profiler *profiling.Profiler

	loadTask  *streaming.LoadTask
	loadID    string
	loaded    bool
	tick      uint64
	lastStats streaming.Stats
}

// NewSession builds the terrain generator and an empty store from cfg.
func NewSession(cfg *config.Config) *Session {
	prof := profiling.New()
	gen := world.NewTerrainGenerator(cfg.World.Seed, cfg.Terrain)
	store := streaming.NewChunkStore(cfg, gen, prof)
	return &Session{
		cfg:      cfg,
		Store:    store,
		Streamer: streaming.NewChunkStreamer(store),
		Profiler: prof,
	}
}

// BeginLoad starts the background bulk load around pos. It is a no-op once a
// load has been started.
func (s *Session) BeginLoad(pos mgl64.Vec3) {
	if s.loadTask != nil || s.loaded {
		return
	}
	center := s.Store.ObserverChunk(pos)
	s.loadTask = streaming.StartLoadTask(s.Store.Generator(), center, s.cfg.Streaming.InitialRadius,
		s.cfg.World.ChunkSize, s.cfg.Streaming.LoadWorkers)
	s.loadID = s.loadTask.ID.String()
	log.Printf("[Load] task %s: generating %d chunks around %v", s.loadID, s.loadTask.Expected(), center)
}

// Loading reports whether the bulk load is still outstanding.
func (s *Session) Loading() bool {
	return !s.loaded
}

// SpawnPoint returns the observer start position above chunk (0,0,0).
func (s *Session) SpawnPoint() mgl64.Vec3 {
	c := world.ChunkCoord{}.Center(s.cfg.World.ChunkSize, s.cfg.World.VoxelSize)
	return mgl64.Vec3{c.X(), s.Store.SpawnHeight() + SpawnClearance, c.Z()}
}

// Stats returns the snapshot taken at the end of the last tick.
func (s *Session) Stats() streaming.Stats {
	return s.lastStats
}

// Tick runs one pass of the pipeline. Until the bulk load is published the
// store is treated as uninitialized and only the poll runs.
func (s *Session) Tick(obs Observer) TickReport {
	start := time.Now()
	s.Profiler.Reset()
	s.tick++
	var r TickReport

	if !s.loaded {
		s.BeginLoad(obs.Position)
		chunks, ok := s.loadTask.Take()
		if !ok {
			r.Loading = true
			s.finish(&r, start)
			return r
		}
		r.Published = s.Store.Publish(chunks, obs.Position)
		s.loaded = true
		s.loadTask = nil
		log.Printf("[Load] task %s: published %d chunks", s.loadID, r.Published)
	}

	center := s.Store.ObserverChunk(obs.Position)
	r.Evicted = s.Store.EvictFarChunks(center)
	r.Generated = s.Streamer.StreamChunksAround(obs.Position, obs.Facing)
	r.Transitions = s.Store.UpdateLOD(obs.Position)
	r.Meshed = s.Store.SyncMeshes(obs.Position, s.cfg.Streaming.MaxMeshesPerTick)

	s.finish(&r, start)
	return r
}

func (s *Session) finish(r *TickReport, start time.Time) {
	stats := s.Store.Stats()
	stats.Tick = s.tick
	stats.Loading = !s.loaded
	if s.loadTask != nil {
		stats.LoadTaskID = s.loadID
		stats.Percent = streaming.Progress(s.loadTask.Completed(), s.loadTask.Expected())
	}
	s.lastStats = stats

	r.Duration = time.Since(start)
	if slow := s.cfg.Driver.SlowTick; slow > 0 && r.Duration > slow {
		log.Printf("Slow tick %d: %v. Top stages: %s", s.tick, r.Duration, s.Profiler.TopN(3))
	}
}
