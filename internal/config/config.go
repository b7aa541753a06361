package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the terrain pipeline. Values are passed by
// reference into the components that need them; nothing reads a global.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Streaming StreamingConfig `yaml:"streaming"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Driver    DriverConfig    `yaml:"driver"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type WorldConfig struct {
	Seed      int64   `yaml:"seed"`
	ChunkSize int     `yaml:"chunkSize" validate:"min=2,max=128"`
	VoxelSize float64 `yaml:"voxelSize" validate:"gt=0"`
}

// StreamingConfig controls the chunk store. Radii are in chunk units.
type StreamingConfig struct {
	ActiveRadius     float64 `yaml:"activeRadius" validate:"gt=0"`
	LODRadius        float64 `yaml:"lodRadius" validate:"gtfield=ActiveRadius"`
	UnloadRadius     float64 `yaml:"unloadRadius" validate:"gtfield=LODRadius"`
	StreamRadius     int     `yaml:"streamRadius" validate:"min=0"`
	VerticalRadius   int     `yaml:"verticalRadius" validate:"min=0"`
	MaxChunksPerTick int     `yaml:"maxChunksPerTick" validate:"min=1"`
	MaxMeshesPerTick int     `yaml:"maxMeshesPerTick" validate:"min=0"` // 0 = unlimited
	LookConeCos      float64 `yaml:"lookConeCos" validate:"min=-1,max=1"`
	InitialRadius    int     `yaml:"initialRadius" validate:"min=0"`
	LoadWorkers      int     `yaml:"loadWorkers" validate:"min=0"` // 0 = NumCPU
}

type DriverConfig struct {
	TickRate      int           `yaml:"tickRate" validate:"min=0"` // ticks per second, 0 = unlimited
	SlowTick      time.Duration `yaml:"slowTick" validate:"min=0"`
	ObserverSpeed float64       `yaml:"observerSpeed" validate:"min=0"` // world units per second
	Heading       [3]float64    `yaml:"heading"`
	Ticks         int           `yaml:"ticks" validate:"min=0"` // 0 = run until interrupted
}

type TelemetryConfig struct {
	Listen string `yaml:"listen"` // empty disables the server
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		World: WorldConfig{
			Seed:      42,
			ChunkSize: 32,
			VoxelSize: 0.25,
		},
		Streaming: StreamingConfig{
			ActiveRadius:     2.5,
			LODRadius:        5.0,
			UnloadRadius:     8.0,
			StreamRadius:     5,
			VerticalRadius:   2,
			MaxChunksPerTick: 5,
			MaxMeshesPerTick: 8,
			LookConeCos:      0.5,
			InitialRadius:    5,
		},
		Terrain: DefaultTerrain(),
		Driver: DriverConfig{
			TickRate:      60,
			SlowTick:      50 * time.Millisecond,
			ObserverSpeed: 4,
			Heading:       [3]float64{0, 0, 1},
		},
	}
}

// Load builds a configuration from defaults, an optional YAML file and the
// environment (including a .env file in the working directory, if present).
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := LoadEnvFile(".env"); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("apply env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks ranges and the ordering active < lod < unload.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Namespace(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s failed %s (got %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// ChunkWorldSize is the edge length of a chunk in world units.
func (w WorldConfig) ChunkWorldSize() float64 {
	return float64(w.ChunkSize) * w.VoxelSize
}

// ExpectedChunks is the number of chunks the initial bulk load produces.
func (s StreamingConfig) ExpectedChunks() int {
	d := 2*s.InitialRadius + 1
	return d * d * d
}
