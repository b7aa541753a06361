package world

import (
	"math"

	"github.com/lebowski36/Voxel-Castle/internal/config"
)

// Layer seed offsets. Each layer draws from an independent stream.
const (
	seedWarpX int64 = 0x1000 + iota*7919
	seedWarpZ
	seedContinent
	seedMountain
	seedRidge
	seedHills
	seedTemperature
	seedRainfall
	seedCave
	seedDetail
)

// TerrainGenerator evaluates the terrain fields. It is immutable after
// construction and safe for concurrent use.
type TerrainGenerator struct {
	seed int64
	cfg  config.TerrainConfig

	warpX       fractal
	warpZ       fractal
	continent   fractal
	mountain    fractal
	ridge       fractal
	hills       fractal
	temperature fractal
	rainfall    fractal
	cave        fractal
	detail      fractal
}

// NewTerrainGenerator creates a generator for seed using the given layer parameters.
func NewTerrainGenerator(seed int64, cfg config.TerrainConfig) *TerrainGenerator {
	return &TerrainGenerator{
		seed:        seed,
		cfg:         cfg,
		warpX:       newFractal(seed+seedWarpX, cfg.WarpFrequency, 2),
		warpZ:       newFractal(seed+seedWarpZ, cfg.WarpFrequency, 2),
		continent:   newFractal(seed+seedContinent, cfg.ContinentFrequency, 4),
		mountain:    newFractal(seed+seedMountain, cfg.MountainFrequency, 2),
		ridge:       newFractal(seed+seedRidge, cfg.RidgeFrequency, 5),
		hills:       newFractal(seed+seedHills, cfg.HillFrequency, 3),
		temperature: newFractal(seed+seedTemperature, cfg.TemperatureFrequency, 2),
		rainfall:    newFractal(seed+seedRainfall, cfg.RainfallFrequency, 3),
		cave:        newFractal(seed+seedCave, cfg.CaveFrequency, 2),
		detail:      newFractal(seed+seedDetail, cfg.DetailFrequency, 2),
	}
}

// Seed returns the world seed.
func (g *TerrainGenerator) Seed() int64 {
	return g.seed
}

// warp offsets (x,z) by two independent low-frequency samples.
func (g *TerrainGenerator) warp(x, z float64) (float64, float64) {
	dx := (g.warpX.sample2D(x, z)*2 - 1) * g.cfg.WarpAmplitude
	dz := (g.warpZ.sample2D(x, z)*2 - 1) * g.cfg.WarpAmplitude
	return x + dx, z + dz
}

// mountainMask is the thresholded, exponentiated mountain presence at a
// warped position, in [0,1].
func (g *TerrainGenerator) mountainMask(wx, wz float64) float64 {
	m := g.mountain.sample2D(wx, wz)
	t := g.cfg.MountainThreshold
	if m <= t {
		return 0
	}
	return math.Pow((m-t)/(1-t), g.cfg.MountainExponent)
}

func (g *TerrainGenerator) heightWarped(wx, wz float64) float64 {
	c := g.continent.sample2D(wx, wz)
	h := g.cfg.ContinentMin + c*(g.cfg.ContinentMax-g.cfg.ContinentMin)

	if mask := g.mountainMask(wx, wz); mask > 0 {
		h += g.ridge.ridged2D(wx, wz) * mask * g.cfg.RidgeAmplitude
	}

	h += (g.hills.sample2D(wx, wz)*2 - 1) * g.cfg.HillAmplitude
	return h
}

// Height returns the surface height in voxels at world voxel column (x,z).
func (g *TerrainGenerator) Height(x, z float64) float64 {
	wx, wz := g.warp(x, z)
	return g.heightWarped(wx, wz)
}

// Temperature is latitude decay blended with noise, in [0,1].
func (g *TerrainGenerator) Temperature(x, z float64) float64 {
	lat := 1 - math.Min(math.Abs(z)/g.cfg.LatitudeScale, 1)
	return clamp01(lat*0.6 + g.temperature.sample2D(x, z)*0.4)
}

// Rainfall is domain-warped noise in [0,1].
func (g *TerrainGenerator) Rainfall(x, z float64) float64 {
	wx, wz := g.warp(x, z)
	return g.rainfall.sample2D(wx, wz)
}

// Biome classifies the climate at column (x,z).
func (g *TerrainGenerator) Biome(x, z float64) BiomeID {
	return ClassifyBiome(g.Temperature(x, z), g.Rainfall(x, z))
}

// Column evaluates height and biome for a column, sharing one warp lookup.
func (g *TerrainGenerator) Column(x, z float64) (float64, BiomeID) {
	wx, wz := g.warp(x, z)
	h := g.heightWarped(wx, wz)
	b := ClassifyBiome(g.Temperature(x, z), g.rainfall.sample2D(wx, wz))
	return h, b
}

// Density returns the solidity at (x,y,z) given the column's surface height.
// Positive values are solid.
func (g *TerrainGenerator) Density(x, y, z, surface float64) float64 {
	depth := surface - y
	gradient := depth / g.cfg.GradientScale
	detail := (g.detail.sample3D(x, y, z)*2 - 1) * g.cfg.DetailAmplitude

	cave := 0.0
	if depth > g.cfg.CaveMinDepth && depth < g.cfg.CaveMaxDepth {
		if g.cave.sample3D(x, y, z) > g.cfg.CaveThreshold {
			// Outweighs gradient and detail so a carved cell is always air.
			cave = -(gradient + g.cfg.DetailAmplitude + 0.5)
		}
	}
	return gradient + cave + detail
}

// solid reports Density > 0, skipping the noise lookups where the depth
// gradient alone decides the sign.
func (g *TerrainGenerator) solid(x, y, z, surface float64) bool {
	depth := surface - y
	margin := g.cfg.DetailAmplitude * g.cfg.GradientScale
	if depth < -margin {
		return false
	}
	if depth > margin && depth >= g.cfg.CaveMaxDepth {
		return true
	}
	return g.Density(x, y, z, surface) > 0
}

// Material picks the voxel for a solid cell at the given depth below the surface.
func (g *TerrainGenerator) Material(biome BiomeID, depth float64) Voxel {
	b := biome.Info()
	switch {
	case depth < 1:
		return b.Top
	case depth < 1+g.cfg.SoilDepth:
		return b.Filler
	default:
		return VoxelStone
	}
}

// PopulateChunk fills c from the terrain fields, column by column.
// Repeated calls for the same coordinate produce identical grids.
func (g *TerrainGenerator) PopulateChunk(c *Chunk) {
	n := c.Size()
	baseX := c.Coord.X * n
	baseY := c.Coord.Y * n
	baseZ := c.Coord.Z * n
	for lz := range n {
		for lx := range n {
			wx := float64(baseX + lx)
			wz := float64(baseZ + lz)
			height, biome := g.Column(wx, wz)
			for ly := range n {
				wy := float64(baseY + ly)
				if g.solid(wx, wy, wz, height) {
					c.Set(lx, ly, lz, g.Material(biome, height-wy))
				} else {
					c.Set(lx, ly, lz, VoxelAir)
				}
			}
		}
	}
}

// Generate creates and populates the chunk at coord.
func (g *TerrainGenerator) Generate(coord ChunkCoord, size int) *Chunk {
	c := NewChunk(coord, size)
	g.PopulateChunk(c)
	return c
}
