package config

// Config holds the engine configuration.
type Config struct {
	Seed            int64  `json:"seed"`
	GeneratorType   string `json:"generator_type"` // "terrain", "biome" or "flat"
	ViewDistance    int    `json:"view_distance"`  // chunk load radius around the player
	ChunksPerFrame  int    `json:"chunks_per_frame"`
	MaxLoadedChunks int    `json:"max_loaded_chunks"`
	SaveDir         string `json:"save_dir"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Seed:            12345,
		GeneratorType:   "terrain",
		ViewDistance:    8,
		ChunksPerFrame:  2,
		MaxLoadedChunks: 1000,
		SaveDir:         "saves",
	}
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["generator"] {
		cfg.GeneratorType = fromFile.GeneratorType
	}
	if !explicitFlags["view-distance"] {
		cfg.ViewDistance = fromFile.ViewDistance
	}
	if !explicitFlags["chunks-per-frame"] {
		cfg.ChunksPerFrame = fromFile.ChunksPerFrame
	}
	if !explicitFlags["max-loaded-chunks"] {
		cfg.MaxLoadedChunks = fromFile.MaxLoadedChunks
	}
	if !explicitFlags["save-dir"] {
		cfg.SaveDir = fromFile.SaveDir
	}
}
