package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/quasilyte/gdata/v2"

	"github.com/pthm-cable/grove/config"
	"github.com/pthm-cable/grove/garden"
	"github.com/pthm-cable/grove/systems"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	dayDuration := flag.Float64("day-duration", 0, "Day/night cycle length in seconds (0 = use config)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	plants := flag.String("plants", "fern,cactus,lily", "Comma-separated species to spawn")
	autocare := flag.Bool("autocare", false, "Water and touch plants automatically")
	session := flag.Bool("session", false, "Load and save the garden via local storage")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Initialize cached config values for hot paths
	systems.InitTuningCache()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	g, err := garden.New(garden.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
	})
	if err != nil {
		slog.Error("failed to create garden", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	if *dayDuration > 0 {
		g.Clock().DayDuration = float32(*dayDuration)
	}

	var store *gdata.Manager
	if *session {
		store, err = gdata.Open(gdata.Config{AppName: cfg.Session.AppName})
		if err != nil {
			slog.Error("failed to open session storage", "error", err)
			os.Exit(1)
		}
	}

	restored, err := g.LoadSession(store)
	if err != nil {
		slog.Error("failed to restore session", "error", err)
		os.Exit(1)
	}

	if !restored {
		for i, name := range strings.Split(*plants, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, err := g.SpawnPlant(name, float32(i)*10, 0); err != nil {
				slog.Error("failed to spawn plant", "species", name, "error", err)
				os.Exit(1)
			}
		}
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"max_ticks", *maxTicks,
		"restored", restored,
		"autocare", *autocare,
	)
	for _, info := range g.Systems() {
		slog.Debug("system registered", "id", info.ID, "name", info.Name, "category", info.Category)
	}

	// Autocare waters dry plants and pets touch-loving ones on a fixed
	// cadence, standing in for a player.
	careInterval := int32(5.0 / cfg.Physics.DT)

	for {
		g.Update()

		if *autocare && g.Tick()%careInterval == 0 {
			for _, h := range g.Plants() {
				if h.Dead() {
					h.Reset()
					continue
				}
				switch h.WaterStatus() {
				case systems.StatusTooLow, systems.StatusCriticallyLow:
					h.Water()
				}
				if h.LikesTouch() && h.TouchStatus() == systems.TouchStatusNone {
					h.Touch(10 + g.Rand().Float32()*30)
				}
			}
		}

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}

	if err := g.SaveSession(store); err != nil {
		slog.Error("failed to save session", "error", err)
		os.Exit(1)
	}
}
