package main

import (
	"flag"
	"log"

	"github.com/lebowski36/Voxel-Castle/internal/config"
	"github.com/lebowski36/Voxel-Castle/internal/preview"
	"github.com/lebowski36/Voxel-Castle/internal/world"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	seed := flag.Int64("seed", 0, "override the configured seed (0 keeps it)")
	size := flag.Int("size", 512, "image edge in pixels")
	scale := flag.Float64("scale", 4, "voxels per pixel")
	heightOnly := flag.Bool("height", false, "render a grayscale height map instead of biomes")
	noLegend := flag.Bool("no-legend", false, "omit the biome legend")
	out := flag.String("out", "terrain.png", "output PNG path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *seed != 0 {
		cfg.World.Seed = *seed
	}

	opts := preview.DefaultOptions()
	opts.Width, opts.Height = *size, *size
	opts.Scale = *scale
	opts.OriginX = -float64(*size) * *scale / 2
	opts.OriginZ = opts.OriginX
	opts.Legend = !*noLegend
	if *heightOnly {
		opts.Mode = preview.ModeHeight
	}

	gen := world.NewTerrainGenerator(cfg.World.Seed, cfg.Terrain)
	img, err := preview.Render(gen, opts)
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	if err := preview.Save(*out, img); err != nil {
		log.Fatalf("save: %v", err)
	}
	log.Printf("wrote %s (seed %d, %dx%d, %.2f voxels/px)", *out, cfg.World.Seed, *size, *size, *scale)
}
