package gen

import "github.com/freshvoxel/engine/internal/engine/voxel"

// Biome classifies a world column by climate.
type Biome uint8

const (
	BiomePlains Biome = iota
	BiomeDesert
	BiomeForest
	BiomeTundra
	BiomeMountains
	BiomeOcean
)

var biomeNames = map[Biome]string{
	BiomePlains:    "Plains",
	BiomeDesert:    "Desert",
	BiomeForest:    "Forest",
	BiomeTundra:    "Tundra",
	BiomeMountains: "Mountains",
	BiomeOcean:     "Ocean",
}

func (b Biome) String() string { return biomeNames[b] }

const seaLevel = 58

// BiomeGenerator layers a climate model over the baseline terrain:
// temperature and rainfall noise fields select a biome per column, and the
// biome overrides the height banding and the surface blocks.
type BiomeGenerator struct {
	terrain *NoiseGenerator
	temp    *NoiseGenerator
	rain    *NoiseGenerator
	caves   *NoiseGenerator
	seed    int64
}

// NewBiomeGenerator creates a BiomeGenerator from a seed. The climate noise
// fields use offset seeds so they decorrelate from the terrain field.
func NewBiomeGenerator(seed int64) *BiomeGenerator {
	g := &BiomeGenerator{}
	g.SetSeed(seed)
	return g
}

func (g *BiomeGenerator) SetSeed(seed int64) {
	g.seed = seed
	g.terrain = NewNoiseGenerator(seed)
	g.temp = NewNoiseGenerator(seed + 100)
	g.rain = NewNoiseGenerator(seed + 200)
	g.caves = NewNoiseGenerator(seed + 300)
}

// BiomeAt returns the biome for a world block column.
func (g *BiomeGenerator) BiomeAt(blockX, blockZ int) Biome {
	// Climate is sampled at a much larger scale than terrain so biomes span
	// many chunks.
	tx := float64(blockX) / 512.0
	tz := float64(blockZ) / 512.0
	temp := g.temp.FractalNoise2D(tx, tz, 4, 0.5, 2.0)
	rain := g.rain.FractalNoise2D(tx+100, tz+100, 4, 0.5, 2.0)

	if g.baseHeight(blockX, blockZ) < seaLevel-6 {
		return BiomeOcean
	}

	switch {
	case temp < -0.35:
		return BiomeTundra
	case temp > 0.35 && rain < 0.0:
		return BiomeDesert
	case rain > 0.3:
		return BiomeForest
	case temp > 0.25 && rain > 0.1:
		return BiomeMountains
	default:
		return BiomePlains
	}
}

func (g *BiomeGenerator) baseHeight(blockX, blockZ int) int {
	n := g.terrain.FractalNoise2D(float64(blockX)*0.01, float64(blockZ)*0.01, 4, 0.5, 2.0)
	return 40 + int((n+1.0)*20.0)
}

// biomeParams returns the height-band scaling for a biome: the base height
// and the amplitude applied to the terrain noise.
func biomeParams(b Biome) (base, amplitude float64) {
	switch b {
	case BiomeOcean:
		return 40, 8
	case BiomeDesert:
		return 60, 8
	case BiomeForest:
		return 62, 14
	case BiomeTundra:
		return 60, 10
	case BiomeMountains:
		return 70, 30
	default: // plains
		return 60, 10
	}
}

// HeightAt returns the surface height, with the biome overriding the
// baseline [40,80] banding.
func (g *BiomeGenerator) HeightAt(blockX, blockZ int) int {
	b := g.BiomeAt(blockX, blockZ)
	base, amplitude := biomeParams(b)
	n := g.terrain.FractalNoise2D(float64(blockX)*0.01, float64(blockZ)*0.01, 4, 0.5, 2.0)
	h := int(base + n*amplitude)
	if h < 1 {
		h = 1
	}
	if h > voxel.ChunkHeight-6 {
		h = voxel.ChunkHeight - 6
	}
	return h
}

// surfaceBlock picks the top block of a column for a biome.
func surfaceBlock(b Biome, surface int) voxel.Type {
	switch b {
	case BiomeDesert:
		return voxel.Sand
	case BiomeTundra:
		return voxel.Snow
	case BiomeOcean:
		return voxel.Sand
	case BiomeMountains:
		if surface > 90 {
			return voxel.Snow
		}
		return voxel.Stone
	default:
		if surface <= seaLevel {
			return voxel.Sand
		}
		return voxel.Grass
	}
}

// GenerateChunk fills the chunk using the biome-adjusted height and surface
// rules, then floods columns below sea level with water (ice on tundra).
func (g *BiomeGenerator) GenerateChunk(c *voxel.Chunk) {
	if c == nil {
		return
	}
	origin := c.Pos().Origin()

	for localX := 0; localX < voxel.ChunkSize; localX++ {
		for localZ := 0; localZ < voxel.ChunkSize; localZ++ {
			worldX := origin.X + localX
			worldZ := origin.Z + localZ
			b := g.BiomeAt(worldX, worldZ)
			surface := g.HeightAt(worldX, worldZ)

			for y := 0; y < voxel.ChunkHeight; y++ {
				c.Set(localX, y, localZ, voxel.Voxel{Type: g.blockType(b, worldX, y, worldZ, surface)})
			}
		}
	}
	c.MarkDirty()
}

func (g *BiomeGenerator) blockType(b Biome, x, y, z, surface int) voxel.Type {
	switch {
	case y == 0:
		return voxel.Bedrock
	case y > surface:
		if y <= seaLevel {
			if b == BiomeTundra && y == seaLevel {
				return voxel.Ice
			}
			return voxel.Water
		}
		return voxel.Air
	case y == surface:
		return surfaceBlock(b, surface)
	case y >= surface-3:
		if b == BiomeDesert {
			return voxel.Sand
		}
		return voxel.Dirt
	default:
		if g.caves.Perlin3D(float64(x)*0.05, float64(y)*0.05, float64(z)*0.05) > 0.5 {
			return voxel.Air
		}
		return voxel.Stone
	}
}
