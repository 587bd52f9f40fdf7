package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/freshvoxel/engine/internal/engine/config"
	"github.com/freshvoxel/engine/internal/engine/terraform"
	"github.com/freshvoxel/engine/internal/engine/voxel"
	"github.com/freshvoxel/engine/internal/engine/world"
	"github.com/freshvoxel/engine/internal/engine/world/gen"
)

// Engine wires the voxel world, chunk streamer and terraformer together and
// drives them from a fixed-rate tick loop. The hosting application moves the
// player via SetPlayerPosition; everything else follows from that.
type Engine struct {
	cfg *config.Config
	log *slog.Logger

	world       *world.World
	streamer    *world.Streamer
	terraformer *terraform.Terraformer

	mu        sync.Mutex
	playerPos mgl32.Vec3
}

// New creates an Engine from the given config.
func New(cfg *config.Config, log *slog.Logger) *Engine {
	w := world.New(gen.New(cfg.GeneratorType, cfg.Seed))

	s := world.NewStreamer(w, log)
	s.SetViewDistance(cfg.ViewDistance)
	s.SetChunksPerFrame(cfg.ChunksPerFrame)
	s.SetMaxLoadedChunks(cfg.MaxLoadedChunks)

	return &Engine{
		cfg:         cfg,
		log:         log,
		world:       w,
		streamer:    s,
		terraformer: terraform.New(w),
	}
}

// World returns the engine's voxel world.
func (e *Engine) World() *world.World { return e.world }

// Streamer returns the engine's chunk streamer.
func (e *Engine) Streamer() *world.Streamer { return e.streamer }

// Terraformer returns the engine's terraformer.
func (e *Engine) Terraformer() *terraform.Terraformer { return e.terraformer }

// SetPlayerPosition updates the position the streamer centers on. Safe to
// call from any goroutine.
func (e *Engine) SetPlayerPosition(pos mgl32.Vec3) {
	e.mu.Lock()
	e.playerPos = pos
	e.mu.Unlock()
}

// PlayerPosition returns the last position given to SetPlayerPosition.
func (e *Engine) PlayerPosition() mgl32.Vec3 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playerPos
}

// Step runs one engine tick: stream chunks around the player and remesh any
// chunks dirtied since the last tick.
func (e *Engine) Step() {
	e.streamer.Update(e.PlayerPosition())

	var dirty []*voxel.Chunk
	e.world.EachChunk(func(_ voxel.ChunkPos, c *voxel.Chunk) {
		if c.Dirty() {
			dirty = append(dirty, c)
		}
	})
	for _, c := range dirty {
		c.GenerateMeshWithNeighbors(e.world)
	}
}

// Run ticks the engine at the given interval until ctx is cancelled, then
// shuts the streamer down.
func (e *Engine) Run(ctx context.Context, tick time.Duration) error {
	defer e.streamer.Close()

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	e.log.Info("engine started",
		"generator", e.cfg.GeneratorType,
		"seed", e.cfg.Seed,
		"view_distance", e.cfg.ViewDistance,
	)

	for {
		select {
		case <-ctx.Done():
			e.log.Info("engine shutting down", "loaded_chunks", e.world.ChunkCount())
			return ctx.Err()
		case <-ticker.C:
			e.Step()
		}
	}
}
