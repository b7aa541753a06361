package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnvFile merges a dotenv file into the process environment. Variables
// already set in the environment win. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from VOXEL_* variables using lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"VOXEL_CHUNK_SIZE", &c.World.ChunkSize},
		{"VOXEL_STREAM_RADIUS", &c.Streaming.StreamRadius},
		{"VOXEL_VERTICAL_RADIUS", &c.Streaming.VerticalRadius},
		{"VOXEL_MAX_CHUNKS_PER_TICK", &c.Streaming.MaxChunksPerTick},
		{"VOXEL_MAX_MESHES_PER_TICK", &c.Streaming.MaxMeshesPerTick},
		{"VOXEL_INITIAL_RADIUS", &c.Streaming.InitialRadius},
		{"VOXEL_LOAD_WORKERS", &c.Streaming.LoadWorkers},
		{"VOXEL_TICK_RATE", &c.Driver.TickRate},
		{"VOXEL_TICKS", &c.Driver.Ticks},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}

	floats := []struct {
		key string
		dst *float64
	}{
		{"VOXEL_VOXEL_SIZE", &c.World.VoxelSize},
		{"VOXEL_ACTIVE_RADIUS", &c.Streaming.ActiveRadius},
		{"VOXEL_LOD_RADIUS", &c.Streaming.LODRadius},
		{"VOXEL_UNLOAD_RADIUS", &c.Streaming.UnloadRadius},
		{"VOXEL_OBSERVER_SPEED", &c.Driver.ObserverSpeed},
	}
	for _, e := range floats {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = f
	}

	if v, ok := lookup("VOXEL_SEED"); ok && v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("VOXEL_SEED: %w", err)
		}
		c.World.Seed = seed
	}
	if v, ok := lookup("VOXEL_SLOW_TICK"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("VOXEL_SLOW_TICK: %w", err)
		}
		c.Driver.SlowTick = d
	}
	if v, ok := lookup("VOXEL_TELEMETRY_ADDR"); ok {
		c.Telemetry.Listen = v
	}
	return nil
}
