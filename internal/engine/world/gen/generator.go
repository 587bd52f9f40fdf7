package gen

import "github.com/freshvoxel/engine/internal/engine/voxel"

// Generator fills chunks with terrain deterministically from a seed.
type Generator interface {
	// GenerateChunk overwrites every voxel of the chunk based on the
	// chunk's own position, and marks it dirty.
	GenerateChunk(c *voxel.Chunk)
	// HeightAt returns the surface height at a world block column.
	HeightAt(blockX, blockZ int) int
	// SetSeed reseeds the generator.
	SetSeed(seed int64)
}

// New returns the generator registered under the given name: "terrain"
// (the default), "biome", or "flat". Unknown names fall back to "terrain".
func New(name string, seed int64) Generator {
	switch name {
	case "flat":
		return NewFlatGenerator(seed)
	case "biome":
		return NewBiomeGenerator(seed)
	default:
		return NewTerrainGenerator(seed)
	}
}
