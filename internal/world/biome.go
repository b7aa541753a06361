package world

import "image/color"

// BiomeID identifies a climate classification.
type BiomeID uint8

const (
	BiomePlains BiomeID = iota
	BiomeForest
	BiomeDesert
	BiomeTundra
	BiomeTaiga
	BiomeJungle

	biomeCount
)

// Biome defines the surface materials and map color of a climate class.
type Biome struct {
	ID     BiomeID
	Name   string
	Top    Voxel // surface layer
	Filler Voxel // between surface and stone
	Color  color.RGBA
}

var biomes = [biomeCount]Biome{
	BiomePlains: {ID: BiomePlains, Name: "Plains", Top: VoxelGrass, Filler: VoxelDirt, Color: color.RGBA{141, 179, 96, 255}},
	BiomeForest: {ID: BiomeForest, Name: "Forest", Top: VoxelGrass, Filler: VoxelDirt, Color: color.RGBA{5, 102, 33, 255}},
	BiomeDesert: {ID: BiomeDesert, Name: "Desert", Top: VoxelSand, Filler: VoxelSandstone, Color: color.RGBA{250, 148, 24, 255}},
	BiomeTundra: {ID: BiomeTundra, Name: "Tundra", Top: VoxelSnow, Filler: VoxelGravel, Color: color.RGBA{220, 230, 235, 255}},
	BiomeTaiga:  {ID: BiomeTaiga, Name: "Taiga", Top: VoxelPodzol, Filler: VoxelDirt, Color: color.RGBA{11, 102, 89, 255}},
	BiomeJungle: {ID: BiomeJungle, Name: "Jungle", Top: VoxelJungleGrass, Filler: VoxelMud, Color: color.RGBA{83, 123, 9, 255}},
}

// Info returns the biome definition. Unknown ids resolve to Plains.
func (id BiomeID) Info() Biome {
	if id < biomeCount {
		return biomes[id]
	}
	return biomes[BiomePlains]
}

func (id BiomeID) String() string {
	return id.Info().Name
}

// AllBiomes lists every biome in id order.
func AllBiomes() []Biome {
	out := make([]Biome, len(biomes))
	copy(out, biomes[:])
	return out
}

type biomeRule struct {
	match func(temperature, rainfall float64) bool
	id    BiomeID
}

// biomeRules are evaluated top to bottom and the first match wins. Hot and wet
// must be tested before hot alone, and cold before the moderate classes.
var biomeRules = []biomeRule{
	{func(t, r float64) bool { return t > 0.65 && r > 0.55 }, BiomeJungle},
	{func(t, r float64) bool { return t > 0.65 }, BiomeDesert},
	{func(t, r float64) bool { return t < 0.25 }, BiomeTundra},
	{func(t, r float64) bool { return t < 0.45 && r > 0.45 }, BiomeTaiga},
	{func(t, r float64) bool { return r > 0.5 }, BiomeForest},
}

// ClassifyBiome maps a climate sample to a biome.
func ClassifyBiome(temperature, rainfall float64) BiomeID {
	for _, rule := range biomeRules {
		if rule.match(temperature, rainfall) {
			return rule.id
		}
	}
	return BiomePlains
}
