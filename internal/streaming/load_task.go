package streaming

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"

	"github.com/lebowski36/Voxel-Castle/internal/world"
)

// LoadTask is a background bulk generation of the cube of chunks around a
// center coordinate. Poll Ready once per tick; once it reports true, Take
// hands over the result exactly once.
type LoadTask struct {
	ID     uuid.UUID
	Center world.ChunkCoord
	Radius int

	chunks    []*world.Chunk
	completed atomic.Int64
	taken     atomic.Bool
	done      chan struct{}
	started   time.Time
	elapsed   time.Duration
}

// StartLoadTask submits generation of every coordinate within radius of
// center (a (2r+1)^3 cube) to a worker pool and returns immediately.
// workers <= 0 uses one worker per CPU. The generator is shared read-only.
func StartLoadTask(gen *world.TerrainGenerator, center world.ChunkCoord, radius, chunkSize, workers int) *LoadTask {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	var coords []world.ChunkCoord
	for dz := -radius; dz <= radius; dz++ {
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				coords = append(coords, center.Add(dx, dy, dz))
			}
		}
	}

	t := &LoadTask{
		ID:      uuid.New(),
		Center:  center,
		Radius:  radius,
		chunks:  make([]*world.Chunk, len(coords)),
		done:    make(chan struct{}),
		started: time.Now(),
	}

	go func() {
		pool := pond.NewPool(workers)
		defer pool.StopAndWait()

		var wg sync.WaitGroup
		for i, coord := range coords {
			wg.Add(1)
			pool.Submit(func() {
				defer wg.Done()
				// Each job writes only its own slot.
				t.chunks[i] = gen.Generate(coord, chunkSize)
				t.completed.Add(1)
			})
		}
		wg.Wait()
		t.elapsed = time.Since(t.started)
		close(t.done)
	}()
	return t
}

// Ready reports without blocking whether generation has finished.
func (t *LoadTask) Ready() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Wait blocks until generation has finished.
func (t *LoadTask) Wait() {
	<-t.done
}

// Take returns the generated chunks. It returns false if the task is still
// running or its result was already taken.
func (t *LoadTask) Take() ([]*world.Chunk, bool) {
	if !t.Ready() {
		return nil, false
	}
	if !t.taken.CompareAndSwap(false, true) {
		return nil, false
	}
	out := t.chunks
	t.chunks = nil
	return out, true
}

// Expected is the number of chunks the task generates.
func (t *LoadTask) Expected() int {
	d := 2*t.Radius + 1
	return d * d * d
}

// Completed is the number of chunks generated so far.
func (t *LoadTask) Completed() int {
	return int(t.completed.Load())
}

// Elapsed returns the generation wall time once finished, or the time so far.
func (t *LoadTask) Elapsed() time.Duration {
	if t.Ready() {
		return t.elapsed
	}
	return time.Since(t.started)
}
