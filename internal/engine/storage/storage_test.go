package storage

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/freshvoxel/engine/internal/engine/config"
	"github.com/freshvoxel/engine/internal/engine/voxel"
	"github.com/freshvoxel/engine/internal/engine/world"
	"github.com/freshvoxel/engine/internal/engine/world/gen"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestSaveLoadConfig(t *testing.T) {
	s := newTestStorage(t)

	cfg := config.DefaultConfig()
	cfg.Seed = 4242
	cfg.GeneratorType = "biome"
	if err := s.SaveConfig(cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	loaded := config.DefaultConfig()
	if err := s.LoadConfig(loaded); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded config = %+v, want %+v", loaded, cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	s := newTestStorage(t)

	cfg := config.DefaultConfig()
	want := *cfg
	if err := s.LoadConfig(cfg); err != nil {
		t.Fatalf("LoadConfig on a fresh directory: %v", err)
	}
	if *cfg != want {
		t.Error("LoadConfig changed the config without a file")
	}
}

func TestLoadConfigCorruptFile(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.LoadConfig(config.DefaultConfig()); err == nil {
		t.Error("LoadConfig accepted corrupt JSON")
	}
}

func TestSaveLoadWorld(t *testing.T) {
	s := newTestStorage(t)

	src := world.New(gen.NewFlatGenerator(0))
	src.LoadChunk(voxel.ChunkPos{})
	src.SetVoxel(voxel.WorldPos{X: 1, Y: 50, Z: 1}, voxel.Voxel{Type: voxel.Obsidian})
	if err := s.SaveWorld(src, "test"); err != nil {
		t.Fatalf("SaveWorld: %v", err)
	}

	dst := world.New(gen.NewFlatGenerator(0))
	if err := s.LoadWorld(dst, "test"); err != nil {
		t.Fatalf("LoadWorld: %v", err)
	}
	v, ok := dst.VoxelAt(voxel.WorldPos{X: 1, Y: 50, Z: 1})
	if !ok || v.Type != voxel.Obsidian {
		t.Errorf("voxel after reload = %v, %v, want Obsidian, true", v.Type, ok)
	}
}

func TestLoadWorldMissingSave(t *testing.T) {
	s := newTestStorage(t)

	w := world.New(gen.NewFlatGenerator(0))
	if err := s.LoadWorld(w, "nope"); err != nil {
		t.Fatalf("LoadWorld on a missing save: %v", err)
	}
	if got := w.ChunkCount(); got != 0 {
		t.Errorf("ChunkCount = %d, want 0", got)
	}
}
