package world

// Voxel is the material classification of a single grid cell.
type Voxel uint8

const (
	VoxelAir Voxel = iota
	// VoxelSolid is the untyped solid kind. Generation never emits it; it
	// exists for hand-built grids and meshes with the default gradient.
	VoxelSolid
	VoxelStone
	VoxelDirt
	VoxelGrass
	VoxelSand
	VoxelSandstone
	VoxelSnow
	VoxelPodzol
	VoxelJungleGrass
	VoxelMud
	VoxelGravel

	voxelCount
)

var voxelNames = [voxelCount]string{
	VoxelAir:         "air",
	VoxelSolid:       "solid",
	VoxelStone:       "stone",
	VoxelDirt:        "dirt",
	VoxelGrass:       "grass",
	VoxelSand:        "sand",
	VoxelSandstone:   "sandstone",
	VoxelSnow:        "snow",
	VoxelPodzol:      "podzol",
	VoxelJungleGrass: "jungle_grass",
	VoxelMud:         "mud",
	VoxelGravel:      "gravel",
}

// IsSolid reports whether the voxel occludes its neighbours.
func (v Voxel) IsSolid() bool {
	return v != VoxelAir && v < voxelCount
}

func (v Voxel) String() string {
	if v < voxelCount {
		return voxelNames[v]
	}
	return "unknown"
}

// BlockFace identifies a face of a voxel
type BlockFace int

const (
	FaceNorth BlockFace = iota // +Z
	FaceSouth                  // -Z
	FaceEast                   // +X
	FaceWest                   // -X
	FaceTop                    // +Y
	FaceBottom                 // -Y
)

// FaceOffsets holds the neighbour step for each face, indexed by BlockFace.
var FaceOffsets = [6][3]int{
	FaceNorth:  {0, 0, 1},
	FaceSouth:  {0, 0, -1},
	FaceEast:   {1, 0, 0},
	FaceWest:   {-1, 0, 0},
	FaceTop:    {0, 1, 0},
	FaceBottom: {0, -1, 0},
}
