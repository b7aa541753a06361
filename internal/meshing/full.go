package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lebowski36/Voxel-Castle/internal/world"
)

// faceCorners lists unit-cube corners per face, counter-clockwise seen from
// outside the cube.
var faceCorners = [6][4]mgl32.Vec3{
	world.FaceNorth:  {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	world.FaceSouth:  {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
	world.FaceEast:   {{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	world.FaceWest:   {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	world.FaceTop:    {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	world.FaceBottom: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
}

var faceNormals = func() [6]mgl32.Vec3 {
	var n [6]mgl32.Vec3
	for f, o := range world.FaceOffsets {
		n[f] = mgl32.Vec3{float32(o[0]), float32(o[1]), float32(o[2])}
	}
	return n
}()

// countExposedFaces returns the number of faces BuildFullMesh will emit.
func countExposedFaces(g Grid) int {
	n := g.Size()
	count := 0
	for z := range n {
		for y := range n {
			for x := range n {
				if !g.Get(x, y, z).IsSolid() {
					continue
				}
				for _, o := range world.FaceOffsets {
					if !g.Get(x+o[0], y+o[1], z+o[2]).IsSolid() {
						count++
					}
				}
			}
		}
	}
	return count
}

// BuildFullMesh emits one quad per solid voxel face whose neighbour is not
// solid. Neighbours outside the grid count as air, so boundary faces are
// always emitted. An all-air grid yields an empty mesh.
func BuildFullMesh(g Grid, voxelSize float32) *Mesh {
	n := g.Size()
	m := newMesh(countExposedFaces(g))
	for z := range n {
		for y := range n {
			for x := range n {
				v := g.Get(x, y, z)
				if !v.IsSolid() {
					continue
				}
				base := mgl32.Vec3{float32(x), float32(y), float32(z)}
				for f, o := range world.FaceOffsets {
					if g.Get(x+o[0], y+o[1], z+o[2]).IsSolid() {
						continue
					}
					var corners [4]mgl32.Vec3
					for i, c := range faceCorners[f] {
						corners[i] = base.Add(c).Mul(voxelSize)
					}
					m.emitQuad(corners, faceNormals[f], FaceColor(v, world.BlockFace(f), y, n))
				}
			}
		}
	}
	return m
}
