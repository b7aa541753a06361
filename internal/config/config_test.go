package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if got := cfg.World.ChunkWorldSize(); got != 8 {
		t.Errorf("ChunkWorldSize = %v, want 8", got)
	}
	if got := cfg.Streaming.ExpectedChunks(); got != 1331 {
		t.Errorf("ExpectedChunks = %d, want 1331", got)
	}
}

func TestValidateRadiusOrdering(t *testing.T) {
	cfg := Default()
	cfg.Streaming.LODRadius = cfg.Streaming.ActiveRadius
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when lod radius does not exceed active radius")
	}
	if !strings.Contains(err.Error(), "LODRadius") {
		t.Errorf("error should name the field: %v", err)
	}

	cfg = Default()
	cfg.Streaming.UnloadRadius = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when unload radius is inside lod radius")
	}
}

func TestValidateRanges(t *testing.T) {
	cases := map[string]func(*Config){
		"chunk size":    func(c *Config) { c.World.ChunkSize = 1 },
		"voxel size":    func(c *Config) { c.World.VoxelSize = 0 },
		"budget":        func(c *Config) { c.Streaming.MaxChunksPerTick = 0 },
		"cone":          func(c *Config) { c.Streaming.LookConeCos = 1.5 },
		"cave band":     func(c *Config) { c.Terrain.CaveMaxDepth = c.Terrain.CaveMinDepth },
		"continent":     func(c *Config) { c.Terrain.ContinentMax = 0 },
		"negative tick": func(c *Config) { c.Driver.TickRate = -1 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoadYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	path := filepath.Join(t.TempDir(), "world.yaml")
	data := `
world:
  seed: 1234
  chunkSize: 16
streaming:
  streamRadius: 3
  maxChunksPerTick: 2
driver:
  slowTick: 20ms
telemetry:
  listen: ":9090"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.World.Seed != 1234 || cfg.World.ChunkSize != 16 {
		t.Errorf("world = %+v", cfg.World)
	}
	if cfg.World.VoxelSize != 0.25 {
		t.Errorf("unset fields should keep defaults, voxel size = %v", cfg.World.VoxelSize)
	}
	if cfg.Streaming.StreamRadius != 3 || cfg.Streaming.MaxChunksPerTick != 2 {
		t.Errorf("streaming = %+v", cfg.Streaming)
	}
	if cfg.Streaming.UnloadRadius != 8 {
		t.Errorf("UnloadRadius = %v, want default", cfg.Streaming.UnloadRadius)
	}
	if cfg.Driver.SlowTick != 20*time.Millisecond {
		t.Errorf("SlowTick = %v", cfg.Driver.SlowTick)
	}
	if cfg.Telemetry.Listen != ":9090" {
		t.Errorf("Listen = %q", cfg.Telemetry.Listen)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("streaming:\n  lodRadius: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil || !strings.Contains(err.Error(), "validate config") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"VOXEL_SEED":           "-7",
		"VOXEL_CHUNK_SIZE":     "8",
		"VOXEL_LOD_RADIUS":     "4.5",
		"VOXEL_SLOW_TICK":      "100ms",
		"VOXEL_TELEMETRY_ADDR": "127.0.0.1:0",
		"VOXEL_TICKS":          "",
	}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}
	cfg := Default()
	if err := cfg.ApplyEnv(lookup); err != nil {
		t.Fatal(err)
	}
	if cfg.World.Seed != -7 || cfg.World.ChunkSize != 8 {
		t.Errorf("world = %+v", cfg.World)
	}
	if cfg.Streaming.LODRadius != 4.5 {
		t.Errorf("LODRadius = %v", cfg.Streaming.LODRadius)
	}
	if cfg.Driver.SlowTick != 100*time.Millisecond || cfg.Driver.Ticks != 0 {
		t.Errorf("driver = %+v", cfg.Driver)
	}
	if cfg.Telemetry.Listen != "127.0.0.1:0" {
		t.Errorf("Listen = %q", cfg.Telemetry.Listen)
	}

	env = map[string]string{"VOXEL_STREAM_RADIUS": "five"}
	if err := Default().ApplyEnv(lookup); err == nil || !strings.Contains(err.Error(), "VOXEL_STREAM_RADIUS") {
		t.Errorf("expected parse error naming the variable, got %v", err)
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	if err := LoadEnvFile(filepath.Join(dir, ".env")); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}

	const key = "VOXEL_TEST_ENV_FILE"
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte(key+"=11\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv(key) })
	if err := LoadEnvFile(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv(key); got != "11" {
		t.Fatalf("%s = %q, want 11", key, got)
	}
}
