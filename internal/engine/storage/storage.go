package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/freshvoxel/engine/internal/engine/config"
	"github.com/freshvoxel/engine/internal/engine/world"
)

// Storage handles file-based persistence for the engine config and world
// saves.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a Storage rooted at dir, creating subdirectories as needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	dirs := []string{
		dir,
		filepath.Join(dir, "worlds"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", d, err)
		}
	}
	return &Storage{dir: dir, log: log}, nil
}

// LoadConfig reads config.json into cfg. If the file does not exist, cfg is
// unchanged.
func (s *Storage) LoadConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	s.log.Info("loaded config from file", "path", path)
	return nil
}

// SaveConfig writes cfg to config.json atomically.
func (s *Storage) SaveConfig(cfg *config.Config) error {
	path := filepath.Join(s.dir, "config.json")
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// WorldPath returns the save file path for a world name. Worlds are stored
// gzip-compressed.
func (s *Storage) WorldPath(name string) string {
	return filepath.Join(s.dir, "worlds", name+".fvw.gz")
}

// SaveWorld writes all loaded chunks of w under the given world name.
func (s *Storage) SaveWorld(w *world.World, name string) error {
	path := s.WorldPath(name)
	if err := world.SaveFile(w, path); err != nil {
		return fmt.Errorf("save world %s: %w", name, err)
	}
	s.log.Info("saved world", "name", name, "chunks", w.ChunkCount(), "path", path)
	return nil
}

// LoadWorld reads the named save into w. Missing saves are not an error; the
// world is simply left as-is for fresh generation.
func (s *Storage) LoadWorld(w *world.World, name string) error {
	path := s.WorldPath(name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := world.LoadFile(w, path); err != nil {
		return fmt.Errorf("load world %s: %w", name, err)
	}
	s.log.Info("loaded world", "name", name, "chunks", w.ChunkCount())
	return nil
}
