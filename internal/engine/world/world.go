package world

import (
	"sync"

	"github.com/freshvoxel/engine/internal/engine/voxel"
	"github.com/freshvoxel/engine/internal/engine/world/gen"
)

// World owns the mapping from chunk position to chunk. Every loaded chunk is
// reachable under exactly one position and is destroyed when unloaded;
// callers must not retain a *Chunk across an unload.
//
// The chunk map itself is guarded so the streamer's bookkeeping can inspect
// it, but chunk contents are only mutated from the owning goroutine.
type World struct {
	mu        sync.RWMutex
	chunks    map[voxel.ChunkPos]*voxel.Chunk
	generator gen.Generator
}

// New creates an empty World backed by the given generator.
func New(generator gen.Generator) *World {
	return &World{
		chunks:    make(map[voxel.ChunkPos]*voxel.Chunk),
		generator: generator,
	}
}

// Chunk returns the loaded chunk at pos, or nil, false if it is not loaded.
// It never generates.
func (w *World) Chunk(pos voxel.ChunkPos) (*voxel.Chunk, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	c, ok := w.chunks[pos]
	return c, ok
}

// LoadChunk returns the chunk at pos, generating, meshing and storing it on
// first load. Calling it again for a loaded chunk returns the same chunk
// without regenerating.
func (w *World) LoadChunk(pos voxel.ChunkPos) *voxel.Chunk {
	w.mu.RLock()
	if c, ok := w.chunks[pos]; ok {
		w.mu.RUnlock()
		return c
	}
	w.mu.RUnlock()

	c := voxel.NewChunk(pos)
	w.generator.GenerateChunk(c)
	c.GenerateMeshWithNeighbors(w)

	w.mu.Lock()
	// Double-check after acquiring write lock.
	if existing, ok := w.chunks[pos]; ok {
		w.mu.Unlock()
		return existing
	}
	w.chunks[pos] = c
	w.mu.Unlock()
	return c
}

// UnloadChunk removes the chunk at pos. The chunk and its mesh buffers are
// gone once this returns; it is a no-op for unloaded positions.
func (w *World) UnloadChunk(pos voxel.ChunkPos) {
	w.mu.Lock()
	delete(w.chunks, pos)
	w.mu.Unlock()
}

// VoxelAt returns the voxel at a world position, or ok=false when the owning
// chunk is not loaded. It never loads chunks; querying far-away terrain is a
// normal miss, not an error.
func (w *World) VoxelAt(pos voxel.WorldPos) (voxel.Voxel, bool) {
	chunk, ok := w.Chunk(voxel.ChunkPosAt(pos))
	if !ok {
		return voxel.Voxel{}, false
	}
	lx, y, lz := pos.Local()
	return chunk.At(lx, y, lz), true
}

// SetVoxel stores a voxel at a world position and marks the owning chunk
// dirty. If the chunk is not loaded the call is a silent no-op; callers that
// need the write to land must load the chunk first.
func (w *World) SetVoxel(pos voxel.WorldPos, v voxel.Voxel) {
	chunk, ok := w.Chunk(voxel.ChunkPosAt(pos))
	if !ok {
		return
	}
	lx, y, lz := pos.Local()
	chunk.Set(lx, y, lz, v)
}

// ChunkCount returns the number of loaded chunks.
func (w *World) ChunkCount() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.chunks)
}

// EachChunk calls fn for every loaded chunk under a read lock. fn must not
// load or unload chunks.
func (w *World) EachChunk(fn func(pos voxel.ChunkPos, c *voxel.Chunk)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for pos, c := range w.chunks {
		fn(pos, c)
	}
}

// SetSeed reseeds the generator. Already-loaded chunks keep their old
// contents until Regenerate is called.
func (w *World) SetSeed(seed int64) {
	w.generator.SetSeed(seed)
}

// HeightAt returns the generator's surface height for a world block column.
func (w *World) HeightAt(blockX, blockZ int) int {
	return w.generator.HeightAt(blockX, blockZ)
}

// Clear unloads every chunk.
func (w *World) Clear() {
	w.mu.Lock()
	w.chunks = make(map[voxel.ChunkPos]*voxel.Chunk)
	w.mu.Unlock()
}

// Regenerate rebuilds every loaded chunk in place from the generator,
// discarding any edits.
func (w *World) Regenerate() {
	w.mu.RLock()
	positions := make([]voxel.ChunkPos, 0, len(w.chunks))
	for pos := range w.chunks {
		positions = append(positions, pos)
	}
	w.mu.RUnlock()

	for _, pos := range positions {
		c := voxel.NewChunk(pos)
		w.generator.GenerateChunk(c)
		c.GenerateMeshWithNeighbors(w)
		w.mu.Lock()
		if _, ok := w.chunks[pos]; ok {
			w.chunks[pos] = c
		}
		w.mu.Unlock()
	}
}
