package config

// TerrainConfig holds the noise layer parameters. Frequencies are in cycles
// per voxel, heights and depths in voxels.
type TerrainConfig struct {
	WarpFrequency float64 `yaml:"warpFrequency" validate:"gt=0"`
	WarpAmplitude float64 `yaml:"warpAmplitude" validate:"min=0"`

	ContinentFrequency float64 `yaml:"continentFrequency" validate:"gt=0"`
	ContinentMin       float64 `yaml:"continentMin"`
	ContinentMax       float64 `yaml:"continentMax" validate:"gtfield=ContinentMin"`

	MountainFrequency float64 `yaml:"mountainFrequency" validate:"gt=0"`
	MountainThreshold float64 `yaml:"mountainThreshold" validate:"min=0,lt=1"`
	MountainExponent  float64 `yaml:"mountainExponent" validate:"gt=0"`
	RidgeFrequency    float64 `yaml:"ridgeFrequency" validate:"gt=0"`
	RidgeAmplitude    float64 `yaml:"ridgeAmplitude" validate:"min=0"`

	HillFrequency float64 `yaml:"hillFrequency" validate:"gt=0"`
	HillAmplitude float64 `yaml:"hillAmplitude" validate:"min=0"`

	LatitudeScale        float64 `yaml:"latitudeScale" validate:"gt=0"`
	TemperatureFrequency float64 `yaml:"temperatureFrequency" validate:"gt=0"`
	RainfallFrequency    float64 `yaml:"rainfallFrequency" validate:"gt=0"`

	CaveFrequency float64 `yaml:"caveFrequency" validate:"gt=0"`
	CaveThreshold float64 `yaml:"caveThreshold" validate:"gt=0,lt=1"`
	CaveMinDepth  float64 `yaml:"caveMinDepth" validate:"min=0"`
	CaveMaxDepth  float64 `yaml:"caveMaxDepth" validate:"gtfield=CaveMinDepth"`

	DetailFrequency float64 `yaml:"detailFrequency" validate:"gt=0"`
	DetailAmplitude float64 `yaml:"detailAmplitude" validate:"min=0"`

	// GradientScale is the depth in voxels over which density grows by 1.
	GradientScale float64 `yaml:"gradientScale" validate:"gt=0"`
	// SoilDepth is the thickness of the biome filler layer above stone.
	SoilDepth float64 `yaml:"soilDepth" validate:"min=0"`
}

// DefaultTerrain returns the stock terrain parameters.
func DefaultTerrain() TerrainConfig {
	return TerrainConfig{
		WarpFrequency: 1.0 / 1024,
		WarpAmplitude: 64,

		ContinentFrequency: 1.0 / 4096,
		ContinentMin:       8,
		ContinentMax:       40,

		MountainFrequency: 1.0 / 2048,
		MountainThreshold: 0.55,
		MountainExponent:  1.5,
		RidgeFrequency:    1.0 / 512,
		RidgeAmplitude:    60,

		HillFrequency: 1.0 / 96,
		HillAmplitude: 6,

		LatitudeScale:        20000,
		TemperatureFrequency: 1.0 / 3000,
		RainfallFrequency:    1.0 / 2000,

		CaveFrequency: 1.0 / 24,
		CaveThreshold: 0.72,
		CaveMinDepth:  4,
		CaveMaxDepth:  48,

		DetailFrequency: 1.0 / 12,
		DetailAmplitude: 0.35,

		GradientScale: 4,
		SoilDepth:     4,
	}
}
