package gen

import "github.com/freshvoxel/engine/internal/engine/voxel"

// FlatGenerator generates a classic superflat world: bedrock at y=0,
// stone y=1..2, dirt y=3, grass y=4. Useful for editor scenes and tests.
type FlatGenerator struct{}

// NewFlatGenerator creates a FlatGenerator. The seed is ignored.
func NewFlatGenerator(_ int64) *FlatGenerator {
	return &FlatGenerator{}
}

func (g *FlatGenerator) GenerateChunk(c *voxel.Chunk) {
	if c == nil {
		return
	}
	for x := 0; x < voxel.ChunkSize; x++ {
		for z := 0; z < voxel.ChunkSize; z++ {
			c.Set(x, 0, z, voxel.Voxel{Type: voxel.Bedrock})
			c.Set(x, 1, z, voxel.Voxel{Type: voxel.Stone})
			c.Set(x, 2, z, voxel.Voxel{Type: voxel.Stone})
			c.Set(x, 3, z, voxel.Voxel{Type: voxel.Dirt})
			c.Set(x, 4, z, voxel.Voxel{Type: voxel.Grass})
		}
	}
	c.MarkDirty()
}

func (g *FlatGenerator) HeightAt(_, _ int) int {
	return 4 // top solid block is the grass layer
}

func (g *FlatGenerator) SetSeed(_ int64) {}
