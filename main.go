// galaxy procedurally generates and animates a spiral-galaxy scene: a
// bulge+disk+spiral-arm star field, a black hole population with accretion
// disks, drifting gas clouds, and one embedded planetary system.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	configPath := flag.String("config", "", "TOML config file overlaying the built-in defaults")
	numStars := flag.Int("stars", 0, "override the configured star count")
	numBlackHoles := flag.Int("blackholes", 0, "override the configured stellar black hole count")
	numClouds := flag.Int("clouds", 0, "override the configured gas cloud count")
	seed := flag.Int64("seed", 0, "override the configured seed")
	seconds := flag.Float64("seconds", 10, "simulated seconds to run")
	fps := flag.Float64("fps", 30, "frames per simulated second")
	zoom := flag.Float64("zoom", 1.0, "camera zoom level")
	outDir := flag.String("out", "img", "directory for rendered frames")
	norender := flag.Bool("norender", false, "do not render frames")
	capture := flag.String("capture", "", "sqlite file to capture frame telemetry into")
	workers := flag.Int("workers", 2, "image output workers")
	flag.Parse()

	cfg, err := LoadSimConfig(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "stars":
			cfg.Galaxy.NumStars = *numStars
		case "blackholes":
			cfg.BlackHoles.NumStellar = *numBlackHoles
		case "clouds":
			cfg.GasClouds.NumClouds = *numClouds
		case "seed":
			cfg.Galaxy.Seed = *seed
		}
	})
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	slog.Info("generating galaxy scene",
		"stars", cfg.Galaxy.NumStars,
		"stellarBlackHoles", cfg.BlackHoles.NumStellar,
		"gasClouds", cfg.GasClouds.NumClouds,
		"spiralArms", cfg.Galaxy.NumSpiralArms,
		"seed", cfg.Galaxy.Seed)
	genStart := time.Now()
	scene := NewGalaxyScene(cfg)
	slog.Info("generation complete",
		"elapsed", time.Since(genStart).Truncate(time.Millisecond),
		"stars", len(scene.Stars),
		"blackHoles", len(scene.BlackHoles),
		"gasClouds", len(scene.GasClouds),
		"planets", len(scene.System.Planets))

	// camera on a fixed perch above the disk; the renderer spins the view
	campos := mgl64.Vec3{1, 1, 5}.Normalize().Mul(cfg.Galaxy.DiskRadius * 2.2)
	cam := &Camera{PosX: campos.X(), PosY: campos.Y(), PosZ: campos.Z(), ZoomLevel: *zoom}

	frames := int(*seconds * *fps)
	dt := 1.0 / *fps

	// one channel per sink so every frame reaches all of them
	var sinks []chan *frameJob
	wg := sync.WaitGroup{}
	if !*norender {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			slog.Error("creating output dir", "error", err)
			os.Exit(1)
		}
		imgCh := make(chan *frameJob, 4)
		sinks = append(sinks, imgCh)
		for i := 0; i < *workers; i++ {
			wg.Add(1)
			go frameToImages(*outDir, cam, &wg, imgCh)
		}
	}
	var captureDB *sql.DB
	if *capture != "" {
		db, err := opendb(*capture)
		if err != nil {
			slog.Error("opening capture db", "error", err)
			os.Exit(1)
		}
		captureDB = db
		capCh := make(chan *frameJob, 4)
		sinks = append(sinks, capCh)
		wg.Add(1)
		go frameToSqlite(db, &wg, capCh)
	}

	bound := galaxyBound(&cfg.Galaxy)
	start := time.Now()
	for frame := 0; frame <= frames; frame++ {
		zone := calculateRenderZone(cam, scene.System)

		for _, ch := range sinks {
			job := &frameJob{
				Frame:      frame,
				Stars:      append([]Star(nil), scene.Stars...),
				BlackHoles: append([]BlackHole(nil), scene.BlackHoles...),
				GasClouds:  append([]GasCloud(nil), scene.GasClouds...),
				System:     *scene.System,
				Zone:       zone,
				Bound:      bound,
			}
			job.System.Planets = append([]Planet(nil), scene.System.Planets...)
			ch <- job
		}

		scene.Update(dt)

		avgTimePerFrame := time.Since(start).Milliseconds() / int64(frame+1)
		estTimeLeft := time.Duration(avgTimePerFrame*int64(frames-frame)) * time.Millisecond
		fmt.Printf("%.1f%%, %dms/frame, %s remaining, %s elapsed                    \r",
			progressPercent(frame, frames),
			avgTimePerFrame,
			estTimeLeft.Truncate(time.Second),
			time.Since(start).Truncate(time.Second))
	}
	for _, ch := range sinks {
		close(ch)
	}
	wg.Wait()

	if captureDB != nil {
		if err := createIndices(captureDB); err != nil {
			slog.Error("creating capture indices", "error", err)
		}
		captureDB.Close()
	}

	fmt.Printf("\nDone. Took %s\n", time.Since(start).Truncate(time.Second))
}

// progressPercent reports frame-loop progress, defined as 100% for a
// zero-length run.
func progressPercent(frame, frames int) float64 {
	if frames == 0 {
		return 100
	}
	return 100 * float64(frame) / float64(frames)
}
