package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lebowski36/Voxel-Castle/internal/world"
)

// BuildLODMesh collapses each column to a single upward quad on top of its
// highest solid voxel. Columns with no solid voxel emit nothing.
func BuildLODMesh(g Grid, voxelSize float32) *Mesh {
	n := g.Size()
	m := newMesh(n * n)
	up := faceNormals[world.FaceTop]
	for z := range n {
		for x := range n {
			for y := n - 1; y >= 0; y-- {
				v := g.Get(x, y, z)
				if !v.IsSolid() {
					continue
				}
				base := mgl32.Vec3{float32(x), float32(y), float32(z)}
				var corners [4]mgl32.Vec3
				for i, c := range faceCorners[world.FaceTop] {
					corners[i] = base.Add(c).Mul(voxelSize)
				}
				m.emitQuad(corners, up, FaceColor(v, world.FaceTop, y, n))
				break
			}
		}
	}
	return m
}
