package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/xlab/closer"

	"github.com/lebowski36/Voxel-Castle/internal/config"
	"github.com/lebowski36/Voxel-Castle/internal/game"
	"github.com/lebowski36/Voxel-Castle/internal/telemetry"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	closer.Bind(func() {
		cancel()
		<-done
		log.Println("shutdown complete")
	})

	var hub *telemetry.Hub
	if cfg.Telemetry.Listen != "" {
		hub = telemetry.NewHub()
		go hub.Run(ctx)
		go func() {
			if err := telemetry.Serve(ctx, cfg.Telemetry.Listen, hub); err != nil {
				log.Printf("[Telemetry] %v", err)
			}
		}()
	}

	go func() {
		run(ctx, cfg, hub)
		close(done)
		closer.Close()
	}()
	closer.Hold()
}

func run(ctx context.Context, cfg *config.Config, hub *telemetry.Hub) {
	session := game.NewSession(cfg)
	limiter := game.NewTickLimiter(cfg.Driver.TickRate)

	heading := mgl64.Vec3(cfg.Driver.Heading)
	if heading.Len() > 0 {
		heading = heading.Normalize()
	}
	obs := game.Observer{Position: session.SpawnPoint(), Facing: heading}
	session.BeginLoad(obs.Position)

	logEvery := cfg.Driver.TickRate
	if logEvery <= 0 {
		logEvery = 60
	}

	wasLoading := true
	last := time.Now()
	for tick := 1; cfg.Driver.Ticks == 0 || tick <= cfg.Driver.Ticks; tick++ {
		if ctx.Err() != nil {
			return
		}

		now := time.Now()
		dt := now.Sub(last).Seconds()
		last = now
		if !session.Loading() {
			obs.Position = obs.Position.Add(heading.Mul(cfg.Driver.ObserverSpeed * dt))
		}

		report := session.Tick(obs)
		stats := session.Stats()

		if wasLoading && !report.Loading {
			obs.Position = session.SpawnPoint()
			log.Printf("[Load] done: %d chunks resident, spawning at %v", session.Store.Len(), obs.Position)
		}
		wasLoading = report.Loading

		if hub != nil {
			if err := hub.Publish(stats); err != nil {
				log.Printf("[Telemetry] %v", err)
			}
		}
		if tick%logEvery == 0 {
			if stats.Loading {
				log.Printf("[Load] %.1f%% (%s)", stats.Percent, stats.LoadTaskID)
			} else {
				log.Printf("[Stream] tick %d: %d active, %d lod, %d unloaded, %d meshed",
					stats.Tick, stats.Active, stats.LOD, stats.Unloaded, stats.Meshed)
			}
		}

		limiter.Wait()
	}
}
