package voxel

// NeighborLookup resolves voxels that fall outside a chunk during meshing.
// Implementations return ok=false when the owning chunk is not loaded; the
// mesher then treats the position as exposed and emits the face.
type NeighborLookup interface {
	VoxelAt(pos WorldPos) (Voxel, bool)
}

type faceDir int

const (
	facePosX faceDir = iota
	faceNegX
	facePosY
	faceNegY
	facePosZ
	faceNegZ
)

// Unit offset to the neighboring voxel for each face direction.
var faceOffsets = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

var faceNormals = [6][3]float32{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// Corner offsets for the four vertices of each face, wound so both triangles
// (0,1,2 and 0,2,3) face outward.
var faceCorners = [6][4][3]float32{
	facePosX: {{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	faceNegX: {{0, 0, 0}, {0, 0, 1}, {0, 1, 1}, {0, 1, 0}},
	facePosY: {{0, 1, 0}, {0, 1, 1}, {1, 1, 1}, {1, 1, 0}},
	faceNegY: {{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	facePosZ: {{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}},
	faceNegZ: {{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
}

// buildMesh walks every voxel of the chunk and emits one quad per exposed
// face of each solid voxel: two triangles, four vertices of interleaved
// position+normal floats. Faces are culled when the neighboring voxel is
// opaque. No merging of coplanar faces takes place.
//
// The passed-in slices are reused to avoid reallocating on rebuilds.
func buildMesh(c *Chunk, neighbors NeighborLookup, vertices []float32, indices []uint32) ([]float32, []uint32) {
	vertices = vertices[:0]
	indices = indices[:0]

	for y := 0; y < ChunkHeight; y++ {
		for z := 0; z < ChunkSize; z++ {
			for x := 0; x < ChunkSize; x++ {
				v := c.voxels[index(x, y, z)]
				if !v.IsSolid() {
					continue
				}
				for dir := facePosX; dir <= faceNegZ; dir++ {
					off := faceOffsets[dir]
					if occludedAt(c, x+off[0], y+off[1], z+off[2], neighbors) {
						continue
					}
					vertices, indices = appendFace(vertices, indices, x, y, z, dir)
				}
			}
		}
	}
	return vertices, indices
}

// occludedAt reports whether the voxel at the given local coordinates hides
// a face pointing at it. Positions above or below the chunk never occlude.
// Positions beyond the X/Z bounds are resolved through the neighbor lookup
// when one is available, otherwise they count as exposed.
func occludedAt(c *Chunk, x, y, z int, neighbors NeighborLookup) bool {
	if y < 0 || y >= ChunkHeight {
		return false
	}
	if x < 0 || x >= ChunkSize || z < 0 || z >= ChunkSize {
		if neighbors == nil {
			return false
		}
		origin := c.pos.Origin()
		nv, ok := neighbors.VoxelAt(WorldPos{X: origin.X + x, Y: y, Z: origin.Z + z})
		return ok && nv.IsOpaque()
	}
	return c.voxels[index(x, y, z)].IsOpaque()
}

func appendFace(vertices []float32, indices []uint32, x, y, z int, dir faceDir) ([]float32, []uint32) {
	base := uint32(len(vertices) / 6)
	n := faceNormals[dir]
	for _, corner := range faceCorners[dir] {
		vertices = append(vertices,
			float32(x)+corner[0], float32(y)+corner[1], float32(z)+corner[2],
			n[0], n[1], n[2],
		)
	}
	indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	return vertices, indices
}
