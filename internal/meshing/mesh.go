package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lebowski36/Voxel-Castle/internal/world"
)

// Grid is the read-only voxel view a mesher consumes.
type Grid interface {
	Size() int
	Get(x, y, z int) world.Voxel
}

// Mesh is renderer-agnostic triangle geometry. Positions are chunk-local in
// world units. Every quad contributes four vertices and six indices.
type Mesh struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	Colors    []mgl32.Vec4
	UVs       []mgl32.Vec2
	Indices   []uint32
}

func newMesh(quads int) *Mesh {
	return &Mesh{
		Positions: make([]mgl32.Vec3, 0, quads*4),
		Normals:   make([]mgl32.Vec3, 0, quads*4),
		Colors:    make([]mgl32.Vec4, 0, quads*4),
		UVs:       make([]mgl32.Vec2, 0, quads*4),
		Indices:   make([]uint32, 0, quads*6),
	}
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Positions)
}

// IndexCount returns the number of triangle indices.
func (m *Mesh) IndexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices)
}

// QuadCount returns the number of emitted quads.
func (m *Mesh) QuadCount() int {
	return m.VertexCount() / 4
}

// IsEmpty reports whether the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return m.VertexCount() == 0
}

var quadUVs = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// emitQuad appends four corners, wound counter-clockwise when viewed from the
// side the normal points to, as triangles (0,1,2) and (0,2,3).
func (m *Mesh) emitQuad(corners [4]mgl32.Vec3, normal mgl32.Vec3, color mgl32.Vec4) {
	base := uint32(len(m.Positions))
	for i, c := range corners {
		m.Positions = append(m.Positions, c)
		m.Normals = append(m.Normals, normal)
		m.Colors = append(m.Colors, color)
		m.UVs = append(m.UVs, quadUVs[i])
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}
