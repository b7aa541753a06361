package world

// DefaultChunkSize is the edge length of a chunk in voxels.
const DefaultChunkSize = 32

// DefaultVoxelSize is the edge length of a voxel in world units.
const DefaultVoxelSize = 0.25

// Chunk is a dense cubic grid of voxels stored in a single flat buffer
// indexed by x + y*N + z*N*N.
type Chunk struct {
	Coord  ChunkCoord
	size   int
	voxels []Voxel
	solid  int
}

// NewChunk creates an all-air chunk with edge length size.
func NewChunk(coord ChunkCoord, size int) *Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &Chunk{
		Coord:  coord,
		size:   size,
		voxels: make([]Voxel, size*size*size),
	}
}

// Size returns the edge length N.
func (c *Chunk) Size() int {
	return c.size
}

func (c *Chunk) index(x, y, z int) int {
	return x + y*c.size + z*c.size*c.size
}

// InBounds reports whether local coordinates address a cell of the grid.
func (c *Chunk) InBounds(x, y, z int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.size && z >= 0 && z < c.size
}

// Get returns the voxel at local coordinates. Anything outside the grid is Air.
func (c *Chunk) Get(x, y, z int) Voxel {
	if !c.InBounds(x, y, z) {
		return VoxelAir
	}
	return c.voxels[c.index(x, y, z)]
}

// Set writes a voxel at local coordinates. Out-of-range writes are ignored.
func (c *Chunk) Set(x, y, z int, v Voxel) {
	if !c.InBounds(x, y, z) {
		return
	}
	i := c.index(x, y, z)
	old := c.voxels[i]
	if old.IsSolid() {
		c.solid--
	}
	if v.IsSolid() {
		c.solid++
	}
	c.voxels[i] = v
}

// IsSolid reports whether the local cell holds a solid voxel.
func (c *Chunk) IsSolid(x, y, z int) bool {
	return c.Get(x, y, z).IsSolid()
}

// SolidCount is the number of solid cells.
func (c *Chunk) SolidCount() int {
	return c.solid
}

// IsEmpty reports whether the chunk has no solid voxels.
func (c *Chunk) IsEmpty() bool {
	return c.solid == 0
}

// Voxels exposes the flat buffer read-only by convention.
func (c *Chunk) Voxels() []Voxel {
	return c.voxels
}

// TopSolid returns the local y of the highest solid voxel in column (x,z).
func (c *Chunk) TopSolid(x, z int) (int, bool) {
	if x < 0 || x >= c.size || z < 0 || z >= c.size {
		return 0, false
	}
	for y := c.size - 1; y >= 0; y-- {
		if c.voxels[c.index(x, y, z)].IsSolid() {
			return y, true
		}
	}
	return 0, false
}

// HighestSolid returns the local y of the highest solid voxel anywhere in the chunk.
func (c *Chunk) HighestSolid() (int, bool) {
	best, found := 0, false
	for z := range c.size {
		for x := range c.size {
			if y, ok := c.TopSolid(x, z); ok && (!found || y > best) {
				best, found = y, true
			}
		}
	}
	return best, found
}
