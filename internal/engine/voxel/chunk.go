package voxel

// Chunk stores a dense ChunkSize×ChunkHeight×ChunkSize block of voxels along
// with the triangle mesh derived from them. All voxels start as Air.
//
// Accessors take local coordinates only; translating world coordinates is the
// caller's job. A Chunk is not safe for concurrent use.
type Chunk struct {
	pos    ChunkPos
	voxels [ChunkVolume]Voxel

	// Derived mesh buffers, owned by the chunk. Stale between a Set call
	// and the next GenerateMesh.
	meshVertices []float32
	meshIndices  []uint32

	dirty bool
}

// NewChunk creates an all-air chunk at the given position. The chunk starts
// dirty so the first GenerateMesh call always builds.
func NewChunk(pos ChunkPos) *Chunk {
	return &Chunk{pos: pos, dirty: true}
}

// Pos returns the chunk's position in chunk-grid coordinates.
func (c *Chunk) Pos() ChunkPos { return c.pos }

func index(x, y, z int) int {
	return x + ChunkSize*(z+ChunkSize*y)
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkHeight && z >= 0 && z < ChunkSize
}

// At returns the voxel at local coordinates. Out-of-range coordinates read
// as Air; the same policy applies to Set, which ignores them.
func (c *Chunk) At(x, y, z int) Voxel {
	if !inBounds(x, y, z) {
		return Voxel{}
	}
	return c.voxels[index(x, y, z)]
}

// Set stores a voxel at local coordinates and marks the chunk dirty, even if
// the value is unchanged. Out-of-range coordinates are ignored.
func (c *Chunk) Set(x, y, z int, v Voxel) {
	if !inBounds(x, y, z) {
		return
	}
	c.voxels[index(x, y, z)] = v
	c.dirty = true
}

// Dirty reports whether the voxel data changed since the last mesh build.
func (c *Chunk) Dirty() bool { return c.dirty }

// MarkDirty forces a mesh rebuild on the next GenerateMesh call.
func (c *Chunk) MarkDirty() { c.dirty = true }

// GenerateMesh rebuilds the mesh buffers if the chunk is dirty. It is a no-op
// on a clean chunk, so callers can invoke it every frame cheaply.
func (c *Chunk) GenerateMesh() {
	c.GenerateMeshWithNeighbors(nil)
}

// GenerateMeshWithNeighbors rebuilds the mesh buffers if the chunk is dirty,
// consulting neighbors for boundary face culling when non-nil. With a nil
// lookup every boundary face is treated as exposed.
func (c *Chunk) GenerateMeshWithNeighbors(neighbors NeighborLookup) {
	if !c.dirty {
		return
	}
	c.meshVertices, c.meshIndices = buildMesh(c, neighbors, c.meshVertices, c.meshIndices)
	c.dirty = false
}

// MeshVertices returns the interleaved position+normal vertex buffer
// (6 floats per vertex). Valid until the next GenerateMesh call.
func (c *Chunk) MeshVertices() []float32 { return c.meshVertices }

// MeshIndices returns the triangle index buffer. Valid until the next
// GenerateMesh call.
func (c *Chunk) MeshIndices() []uint32 { return c.meshIndices }
