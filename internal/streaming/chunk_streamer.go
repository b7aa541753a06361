package streaming

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lebowski36/Voxel-Castle/internal/world"
)

// ChunkStreamer decides which missing chunks to generate each tick and
// generates them synchronously under a fixed per-tick budget.
type ChunkStreamer struct {
	store *ChunkStore

	radius   int
	vertical int
	coneCos  float64
	perTick  int
}

// NewChunkStreamer creates a streamer feeding store.
func NewChunkStreamer(store *ChunkStore) *ChunkStreamer {
	cfg := store.cfg
	return &ChunkStreamer{
		store:    store,
		radius:   cfg.StreamRadius,
		vertical: cfg.VerticalRadius,
		coneCos:  cfg.LookConeCos,
		perTick:  max(cfg.MaxChunksPerTick, 1),
	}
}

type candidate struct {
	coord  world.ChunkCoord
	dist   float64
	inCone bool
}

// Plan returns the missing coordinates within the streaming radius of the
// observer, those inside the look cone first, each group nearest first.
func (cs *ChunkStreamer) Plan(pos, facing mgl64.Vec3) []world.ChunkCoord {
	center := cs.store.ObserverChunk(pos)

	look := mgl64.Vec2{facing.X(), facing.Z()}
	useCone := look.Len() > 1e-6
	if useCone {
		look = look.Normalize()
	}

	r := cs.radius
	vr := cs.vertical
	var cands []candidate
	cs.store.mu.RLock()
	for dz := -r; dz <= r; dz++ {
		for dy := -vr; dy <= vr; dy++ {
			for dx := -r; dx <= r; dx++ {
				d := math.Sqrt(float64(dx*dx + dy*dy + dz*dz))
				if d > float64(r) {
					continue
				}
				coord := center.Add(dx, dy, dz)
				if _, ok := cs.store.chunks[coord]; ok {
					continue
				}
				inCone := false
				if useCone {
					h := mgl64.Vec2{float64(dx), float64(dz)}
					if h.Len() == 0 {
						inCone = true
					} else {
						inCone = h.Normalize().Dot(look) >= cs.coneCos
					}
				}
				cands = append(cands, candidate{coord: coord, dist: d, inCone: inCone})
			}
		}
	}
	cs.store.mu.RUnlock()

	sort.Slice(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.inCone != b.inCone {
			return a.inCone
		}
		if a.dist != b.dist {
			return a.dist < b.dist
		}
		return lessCoord(a.coord, b.coord)
	})

	out := make([]world.ChunkCoord, len(cands))
	for i, c := range cands {
		out[i] = c.coord
	}
	return out
}

// StreamChunksAround generates up to the per-tick budget of planned chunks and
// inserts them. Whatever is left is picked up on later ticks. Returns the
// number of chunks generated.
func (cs *ChunkStreamer) StreamChunksAround(pos, facing mgl64.Vec3) int {
	defer cs.store.prof.Track("streaming.StreamChunksAround")()
	plan := cs.Plan(pos, facing)
	if len(plan) > cs.perTick {
		plan = plan[:cs.perTick]
	}
	for _, coord := range plan {
		cs.store.AddChunk(cs.store.regenerate(coord), pos)
	}
	return len(plan)
}

func sortByDistance(list []*ManagedChunk, dist func(*ManagedChunk) float64) {
	keys := make(map[*ManagedChunk]float64, len(list))
	for _, mc := range list {
		keys[mc] = dist(mc)
	}
	sort.Slice(list, func(i, j int) bool {
		di, dj := keys[list[i]], keys[list[j]]
		if di != dj {
			return di < dj
		}
		return lessCoord(list[i].Coord, list[j].Coord)
	})
}
