package meshing

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lebowski36/Voxel-Castle/internal/world"
)

// Reference colors for the vertical gradient.
var (
	earthBrown = mgl32.Vec3{0.45, 0.32, 0.18}
	grassGreen = mgl32.Vec3{0.2, 0.8, 0.2}
)

// material holds per-face colors. Without hasSide, side faces use the
// bottom to top gradient.
type material struct {
	top, bottom, side mgl32.Vec3
	hasSide           bool
}

func uniform(c mgl32.Vec3) material {
	return material{top: c, bottom: c, side: c, hasSide: true}
}

func layered(top, bottom mgl32.Vec3) material {
	return material{top: top, bottom: bottom}
}

var materials = map[world.Voxel]material{
	world.VoxelSolid:       layered(grassGreen, earthBrown),
	world.VoxelStone:       {top: mgl32.Vec3{0.55, 0.55, 0.55}, bottom: mgl32.Vec3{0.42, 0.42, 0.42}, side: mgl32.Vec3{0.5, 0.5, 0.5}, hasSide: true},
	world.VoxelDirt:        uniform(earthBrown),
	world.VoxelGrass:       layered(mgl32.Vec3{0.3, 0.7, 0.25}, earthBrown),
	world.VoxelSand:        uniform(mgl32.Vec3{0.86, 0.8, 0.55}),
	world.VoxelSandstone:   uniform(mgl32.Vec3{0.8, 0.7, 0.5}),
	world.VoxelSnow:        layered(mgl32.Vec3{0.95, 0.97, 1.0}, mgl32.Vec3{0.53, 0.5, 0.48}),
	world.VoxelPodzol:      {top: mgl32.Vec3{0.42, 0.3, 0.15}, bottom: earthBrown, side: mgl32.Vec3{0.4, 0.29, 0.17}, hasSide: true},
	world.VoxelJungleGrass: layered(mgl32.Vec3{0.2, 0.6, 0.1}, mgl32.Vec3{0.3, 0.24, 0.2}),
	world.VoxelMud:         uniform(mgl32.Vec3{0.3, 0.24, 0.2}),
	world.VoxelGravel:      uniform(mgl32.Vec3{0.53, 0.5, 0.48}),
}

// FaceColor resolves the color of face on voxel v at local height y in a
// chunk of edge n. The material's explicit face color wins; side faces of
// materials without one blend bottom to top by y/(n-1). Unknown kinds fall
// back to the Solid gradient.
func FaceColor(v world.Voxel, face world.BlockFace, y, n int) mgl32.Vec4 {
	m, ok := materials[v]
	if !ok {
		m = materials[world.VoxelSolid]
	}
	var c mgl32.Vec3
	switch {
	case face == world.FaceTop:
		c = m.top
	case face == world.FaceBottom:
		c = m.bottom
	case m.hasSide:
		c = m.side
	default:
		t := float32(0)
		if n > 1 {
			t = float32(y) / float32(n-1)
		}
		c = m.bottom.Mul(1 - t).Add(m.top.Mul(t))
	}
	return c.Vec4(1)
}
