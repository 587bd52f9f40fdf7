package voxel

import "testing"

func fillStone(c *Chunk) {
	for y := 0; y < ChunkHeight; y++ {
		for z := 0; z < ChunkSize; z++ {
			for x := 0; x < ChunkSize; x++ {
				c.Set(x, y, z, Voxel{Type: Stone})
			}
		}
	}
}

func TestMeshSingleVoxel(t *testing.T) {
	c := NewChunk(ChunkPos{0, 0})
	c.Set(5, 10, 5, Voxel{Type: Stone})
	c.GenerateMesh()

	// An isolated cube exposes all 6 faces: 4 vertices and 2 triangles each.
	if got, want := len(c.MeshVertices()), 6*4*6; got != want {
		t.Errorf("vertex floats = %d, want %d", got, want)
	}
	if got, want := len(c.MeshIndices()), 6*6; got != want {
		t.Errorf("indices = %d, want %d", got, want)
	}
}

func TestMeshFullChunkCullsInteriorFaces(t *testing.T) {
	c := NewChunk(ChunkPos{0, 0})
	fillStone(c)
	c.GenerateMesh()

	// Only the outer shell of the chunk survives culling:
	// top + bottom (2*16*16) plus four sides (4*16*256).
	faces := 2*ChunkSize*ChunkSize + 4*ChunkSize*ChunkHeight
	if got, want := len(c.MeshIndices()), faces*6; got != want {
		t.Errorf("indices = %d, want %d", got, want)
	}
	if got, want := len(c.MeshVertices()), faces*4*6; got != want {
		t.Errorf("vertex floats = %d, want %d", got, want)
	}
}

func TestMeshTwoAdjacentVoxels(t *testing.T) {
	c := NewChunk(ChunkPos{0, 0})
	c.Set(5, 10, 5, Voxel{Type: Stone})
	c.Set(6, 10, 5, Voxel{Type: Stone})
	c.GenerateMesh()

	// The two touching faces are culled, leaving 10 of 12.
	if got, want := len(c.MeshIndices()), 10*6; got != want {
		t.Errorf("indices = %d, want %d", got, want)
	}
}

func TestMeshTransparentNeighborKeepsFace(t *testing.T) {
	c := NewChunk(ChunkPos{0, 0})
	c.Set(5, 10, 5, Voxel{Type: Stone})
	c.Set(6, 10, 5, Voxel{Type: Water})
	c.GenerateMesh()

	// Water does not occlude, so the stone keeps all 6 faces and the water
	// contributes 5 of its own.
	if got, want := len(c.MeshIndices()), 11*6; got != want {
		t.Errorf("indices = %d, want %d", got, want)
	}
}

func TestMeshEmptyChunk(t *testing.T) {
	c := NewChunk(ChunkPos{0, 0})
	c.GenerateMesh()
	if len(c.MeshVertices()) != 0 || len(c.MeshIndices()) != 0 {
		t.Errorf("empty chunk produced %d vertex floats, %d indices",
			len(c.MeshVertices()), len(c.MeshIndices()))
	}
}

func TestMeshVertexLayout(t *testing.T) {
	c := NewChunk(ChunkPos{0, 0})
	c.Set(0, 0, 0, Voxel{Type: Stone})
	c.GenerateMesh()

	verts := c.MeshVertices()
	if len(verts)%6 != 0 {
		t.Fatalf("vertex buffer length %d is not a multiple of 6", len(verts))
	}
	for i := 0; i < len(verts); i += 6 {
		for axis := 0; axis < 3; axis++ {
			p := verts[i+axis]
			if p < 0 || p > 1 {
				t.Fatalf("vertex %d position[%d] = %f, outside the unit cube", i/6, axis, p)
			}
		}
		nx, ny, nz := verts[i+3], verts[i+4], verts[i+5]
		if nx*nx+ny*ny+nz*nz != 1 {
			t.Fatalf("vertex %d normal (%f,%f,%f) is not unit length", i/6, nx, ny, nz)
		}
	}
}

// stubNeighbors answers every out-of-chunk query with the same voxel.
type stubNeighbors struct {
	v  Voxel
	ok bool
}

func (s stubNeighbors) VoxelAt(WorldPos) (Voxel, bool) { return s.v, s.ok }

func TestMeshNeighborCulling(t *testing.T) {
	c := NewChunk(ChunkPos{0, 0})
	c.Set(0, 10, 5, Voxel{Type: Stone})

	// With opaque neighbors on all sides, the -X boundary face is culled.
	c.GenerateMeshWithNeighbors(stubNeighbors{v: Voxel{Type: Stone}, ok: true})
	if got, want := len(c.MeshIndices()), 5*6; got != want {
		t.Errorf("indices with opaque neighbors = %d, want %d", got, want)
	}

	// An unloaded neighbor leaves the face exposed.
	c.MarkDirty()
	c.GenerateMeshWithNeighbors(stubNeighbors{ok: false})
	if got, want := len(c.MeshIndices()), 6*6; got != want {
		t.Errorf("indices with unloaded neighbors = %d, want %d", got, want)
	}
}

func TestMeshIndexWinding(t *testing.T) {
	c := NewChunk(ChunkPos{0, 0})
	c.Set(3, 4, 5, Voxel{Type: Stone})
	c.GenerateMesh()

	idx := c.MeshIndices()
	for i := 0; i+6 <= len(idx); i += 6 {
		base := idx[i]
		want := []uint32{base, base + 1, base + 2, base, base + 2, base + 3}
		for j, w := range want {
			if idx[i+j] != w {
				t.Fatalf("face %d index %d = %d, want %d", i/6, j, idx[i+j], w)
			}
		}
	}
}
