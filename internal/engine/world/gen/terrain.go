package gen

import "github.com/freshvoxel/engine/internal/engine/voxel"

// TerrainGenerator is the baseline world generator: fractal-noise hills in
// the y∈[40,80] band with grass, sand and stone surfaces and 3D-noise caves
// below. Identical seed and chunk position always produce identical chunks.
type TerrainGenerator struct {
	noise *NoiseGenerator
	seed  int64
}

// NewTerrainGenerator creates a TerrainGenerator from a seed.
func NewTerrainGenerator(seed int64) *TerrainGenerator {
	return &TerrainGenerator{noise: NewNoiseGenerator(seed), seed: seed}
}

// SetSeed reseeds the generator.
func (g *TerrainGenerator) SetSeed(seed int64) {
	g.seed = seed
	g.noise.SetSeed(seed)
}

// HeightAt returns the surface height at a world block column. Four octaves
// of fractal noise at 0.01 frequency, mapped from [-1,1] into [40,80].
func (g *TerrainGenerator) HeightAt(blockX, blockZ int) int {
	n := g.noise.FractalNoise2D(float64(blockX)*0.01, float64(blockZ)*0.01, 4, 0.5, 2.0)
	return 40 + int((n+1.0)*20.0)
}

// blockType selects the block at (x, y, z) given the column's surface height.
// Layers: air above the surface, a surface block chosen by height band,
// a few dirt/stone layers under it, stone below that with caves carved where
// the 3D noise exceeds the threshold.
func (g *TerrainGenerator) blockType(x, y, z, surface int) voxel.Type {
	switch {
	case y > surface:
		return voxel.Air
	case y == surface:
		switch {
		case surface > 62:
			return voxel.Grass
		case surface > 58:
			return voxel.Sand
		default:
			return voxel.Stone
		}
	case y >= surface-3:
		if surface > 58 {
			return voxel.Dirt
		}
		return voxel.Stone
	default:
		cave := g.noise.Perlin3D(float64(x)*0.05, float64(y)*0.05, float64(z)*0.05)
		if cave > 0.5 {
			return voxel.Air
		}
		return voxel.Stone
	}
}

// GenerateChunk fills the chunk column by column and marks it dirty.
func (g *TerrainGenerator) GenerateChunk(c *voxel.Chunk) {
	if c == nil {
		return
	}
	origin := c.Pos().Origin()

	for localX := 0; localX < voxel.ChunkSize; localX++ {
		for localZ := 0; localZ < voxel.ChunkSize; localZ++ {
			worldX := origin.X + localX
			worldZ := origin.Z + localZ
			surface := g.HeightAt(worldX, worldZ)

			for y := 0; y < voxel.ChunkHeight; y++ {
				t := g.blockType(worldX, y, worldZ, surface)
				c.Set(localX, y, localZ, voxel.Voxel{Type: t})
			}
		}
	}
	c.MarkDirty()
}
