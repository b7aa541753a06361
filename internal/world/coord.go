package world

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ChunkCoord identifies a chunk in chunk-space.
type ChunkCoord struct {
	X, Y, Z int
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Add returns c offset by (dx,dy,dz).
func (c ChunkCoord) Add(dx, dy, dz int) ChunkCoord {
	return ChunkCoord{X: c.X + dx, Y: c.Y + dy, Z: c.Z + dz}
}

// DistanceTo is the Euclidean distance between two coordinates in chunk units.
func (c ChunkCoord) DistanceTo(o ChunkCoord) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	dz := float64(c.Z - o.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Origin returns the world-space position of the chunk's minimum corner:
// coordinate * chunkSize * voxelSize.
func (c ChunkCoord) Origin(chunkSize int, voxelSize float64) mgl64.Vec3 {
	edge := float64(chunkSize) * voxelSize
	return mgl64.Vec3{float64(c.X) * edge, float64(c.Y) * edge, float64(c.Z) * edge}
}

// Center returns the world-space center of the chunk.
func (c ChunkCoord) Center(chunkSize int, voxelSize float64) mgl64.Vec3 {
	half := float64(chunkSize) * voxelSize / 2
	return c.Origin(chunkSize, voxelSize).Add(mgl64.Vec3{half, half, half})
}

// ChunkCoordAt returns the chunk containing the world-space point p.
func ChunkCoordAt(p mgl64.Vec3, chunkSize int, voxelSize float64) ChunkCoord {
	edge := float64(chunkSize) * voxelSize
	return ChunkCoord{
		X: int(math.Floor(p.X() / edge)),
		Y: int(math.Floor(p.Y() / edge)),
		Z: int(math.Floor(p.Z() / edge)),
	}
}
