package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/freshvoxel/engine/internal/engine/config"
	"github.com/freshvoxel/engine/internal/engine/voxel"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.GeneratorType = "flat"
	cfg.ViewDistance = 1
	cfg.ChunksPerFrame = 64
	e := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(e.Streamer().Close)
	return e
}

func TestStepStreamsAroundPlayer(t *testing.T) {
	e := newTestEngine(t)
	e.SetPlayerPosition(mgl32.Vec3{8, 10, 8})

	e.Step()
	if !e.Streamer().IsChunkLoaded(voxel.ChunkPos{X: 0, Z: 0}) {
		t.Error("player chunk not loaded after Step")
	}
}

func TestStepRemeshesDirtyChunks(t *testing.T) {
	e := newTestEngine(t)
	e.SetPlayerPosition(mgl32.Vec3{8, 10, 8})
	e.Step()

	e.World().SetVoxel(voxel.WorldPos{X: 8, Y: 50, Z: 8}, voxel.Voxel{Type: voxel.Stone})
	c, ok := e.World().Chunk(voxel.ChunkPos{})
	if !ok {
		t.Fatal("player chunk missing")
	}
	if !c.Dirty() {
		t.Fatal("edit did not mark the chunk dirty")
	}

	e.Step()
	if c.Dirty() {
		t.Error("Step left an edited chunk unmeshed")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.GeneratorType = "flat"
	cfg.ViewDistance = 1
	e := New(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- e.Run(ctx, time.Millisecond) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}

func TestPlayerPositionRoundTrip(t *testing.T) {
	e := newTestEngine(t)
	want := mgl32.Vec3{1, 2, 3}
	e.SetPlayerPosition(want)
	if got := e.PlayerPosition(); got != want {
		t.Errorf("PlayerPosition = %v, want %v", got, want)
	}
}
