package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/freshvoxel/engine/internal/engine"
	"github.com/freshvoxel/engine/internal/engine/config"
	"github.com/freshvoxel/engine/internal/engine/storage"
)

func main() {
	cfg := config.DefaultConfig()

	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "world generation seed")
	flag.StringVar(&cfg.GeneratorType, "generator", cfg.GeneratorType, "terrain generator: terrain, biome or flat")
	flag.IntVar(&cfg.ViewDistance, "view-distance", cfg.ViewDistance, "chunk load radius around the player")
	flag.IntVar(&cfg.ChunksPerFrame, "chunks-per-frame", cfg.ChunksPerFrame, "chunks loaded per tick")
	flag.IntVar(&cfg.MaxLoadedChunks, "max-loaded-chunks", cfg.MaxLoadedChunks, "loaded chunk cap before aggressive unloading")
	flag.StringVar(&cfg.SaveDir, "save-dir", cfg.SaveDir, "directory for config and world saves")
	worldName := flag.String("world", "default", "world save name")
	flag.Parse()

	explicit := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	store, err := storage.New(cfg.SaveDir, log)
	if err != nil {
		log.Error("open storage", "error", err)
		os.Exit(1)
	}

	fileCfg := config.DefaultConfig()
	if err := store.LoadConfig(fileCfg); err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}
	config.Merge(cfg, fileCfg, explicit)
	if err := store.SaveConfig(cfg); err != nil {
		log.Error("save config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	eng := engine.New(cfg, log)

	if err := store.LoadWorld(eng.World(), *worldName); err != nil {
		log.Error("load world", "error", err)
		os.Exit(1)
	}

	err = eng.Run(ctx, 50*time.Millisecond)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("engine error", "error", err)
		os.Exit(1)
	}

	if err := store.SaveWorld(eng.World(), *worldName); err != nil {
		log.Error("save world", "error", err)
		os.Exit(1)
	}
}
