package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// RayHit carries the result of a voxel raycast. On a hit it identifies the
// exact block coordinate and the face that was entered, not just the
// continuous hit point.
type RayHit struct {
	Hit      bool
	Distance float32
	Point    mgl32.Vec3
	Normal   mgl32.Vec3

	BlockX, BlockY, BlockZ int
}

// RaycastVoxel traverses the voxel grid with a DDA walk: starting in the
// cell containing the origin, it repeatedly steps across the nearest cell
// boundary, so every cell the ray passes through is visited in order and
// thin walls cannot be skipped. The walk ends at the first occupied voxel
// (solid, non-water), past maxDistance, or at the step ceiling.
//
// Degenerate directions (zero length or NaN) return a miss immediately.
func RaycastVoxel(ray Ray, src VoxelSource, maxDistance float32) RayHit {
	var hit RayHit
	if src == nil || !validDirection(ray.Direction) {
		return hit
	}

	pos := ray.Origin
	cell := [3]int{
		int(math.Floor(float64(pos.X()))),
		int(math.Floor(float64(pos.Y()))),
		int(math.Floor(float64(pos.Z()))),
	}

	var deltaDist, sideDist mgl32.Vec3
	var step [3]int
	for axis := 0; axis < 3; axis++ {
		deltaDist[axis] = mgl32.Abs(1 / ray.Direction[axis])
		if ray.Direction[axis] < 0 {
			step[axis] = -1
			sideDist[axis] = (pos[axis] - float32(cell[axis])) * deltaDist[axis]
		} else {
			step[axis] = 1
			sideDist[axis] = (float32(cell[axis]) + 1 - pos[axis]) * deltaDist[axis]
		}
	}

	var normal [3]int
	var distance float32

	maxSteps := int(maxDistance * 2)
	for i := 0; i < maxSteps; i++ {
		if occupied(src, cell[0], cell[1], cell[2]) {
			hit.Hit = true
			hit.Distance = distance
			hit.Point = ray.Point(distance)
			hit.Normal = mgl32.Vec3{float32(normal[0]), float32(normal[1]), float32(normal[2])}
			hit.BlockX = cell[0]
			hit.BlockY = cell[1]
			hit.BlockZ = cell[2]
			break
		}

		// Step along the axis whose boundary is nearest.
		var axis int
		if sideDist.X() < sideDist.Y() {
			if sideDist.X() < sideDist.Z() {
				axis = 0
			} else {
				axis = 2
			}
		} else {
			if sideDist.Y() < sideDist.Z() {
				axis = 1
			} else {
				axis = 2
			}
		}
		sideDist[axis] += deltaDist[axis]
		cell[axis] += step[axis]
		normal = [3]int{}
		normal[axis] = -step[axis]
		distance = sideDist[axis]

		if distance > maxDistance {
			break
		}
	}
	return hit
}

func validDirection(d mgl32.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if math.IsNaN(float64(d[axis])) {
			return false
		}
	}
	return d.Len() > 0
}
