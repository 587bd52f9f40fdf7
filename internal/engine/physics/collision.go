package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/freshvoxel/engine/internal/engine/voxel"
)

// VoxelSource provides voxel occupancy by world coordinate. ok=false means
// the owning chunk is not loaded, which collision treats as empty space.
type VoxelSource interface {
	VoxelAt(pos voxel.WorldPos) (voxel.Voxel, bool)
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// Center returns the box's center point.
func (a AABB) Center() mgl32.Vec3 { return a.Min.Add(a.Max).Mul(0.5) }

// Size returns the box's extent on each axis.
func (a AABB) Size() mgl32.Vec3 { return a.Max.Sub(a.Min) }

// Contains reports whether the point lies inside the box (inclusive).
func (a AABB) Contains(p mgl32.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() <= a.Max.Z()
}

// Intersects reports whether the boxes overlap on all three axes.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y() &&
		a.Min.Z() <= b.Max.Z() && a.Max.Z() >= b.Min.Z()
}

// Translated returns the box shifted by d.
func (a AABB) Translated(d mgl32.Vec3) AABB {
	return AABB{Min: a.Min.Add(d), Max: a.Max.Add(d)}
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

// Contains reports whether the point lies inside the sphere.
func (s Sphere) Contains(p mgl32.Vec3) bool {
	return s.Center.Sub(p).Len() <= s.Radius
}

// Intersects reports whether the spheres overlap.
func (s Sphere) Intersects(o Sphere) bool {
	return s.Center.Sub(o.Center).Len() <= s.Radius+o.Radius
}

// IntersectsAABB reports whether the sphere overlaps the box.
func (s Sphere) IntersectsAABB(a AABB) bool {
	return ClosestPointOnAABB(a, s.Center).Sub(s.Center).Len() <= s.Radius
}

// Ray is a half-line with a normalized direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3
}

// NewRay builds a ray, normalizing the direction. A zero direction stays
// zero and is rejected by the raycast entry checks.
func NewRay(origin, direction mgl32.Vec3) Ray {
	if l := direction.Len(); l > 0 {
		direction = direction.Mul(1 / l)
	}
	return Ray{Origin: origin, Direction: direction}
}

// Point returns the position at the given distance along the ray.
func (r Ray) Point(distance float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(distance))
}

// TestAABB reports whether two boxes collide.
func TestAABB(a, b AABB) bool { return a.Intersects(b) }

// TestSphere reports whether two spheres collide.
func TestSphere(a, b Sphere) bool { return a.Intersects(b) }

// TestAABBSphere reports whether a box and a sphere collide.
func TestAABBSphere(a AABB, s Sphere) bool { return s.IntersectsAABB(a) }

// ClosestPointOnAABB returns the point of the box nearest to p.
func ClosestPointOnAABB(a AABB, p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(p.X(), a.Min.X(), a.Max.X()),
		mgl32.Clamp(p.Y(), a.Min.Y(), a.Max.Y()),
		mgl32.Clamp(p.Z(), a.Min.Z(), a.Max.Z()),
	}
}

// RaycastAABB performs a slab test against the box. On a hit it returns the
// entry distance (or exit distance when the origin is inside) and the face
// normal at the entry point.
func RaycastAABB(ray Ray, a AABB) (distance float32, normal mgl32.Vec3, ok bool) {
	tEnter := float32(math.Inf(-1))
	tExit := float32(math.Inf(1))

	for axis := 0; axis < 3; axis++ {
		inv := 1 / ray.Direction[axis]
		t0 := (a.Min[axis] - ray.Origin[axis]) * inv
		t1 := (a.Max[axis] - ray.Origin[axis]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tEnter = max(tEnter, t0)
		tExit = min(tExit, t1)
	}

	if tEnter > tExit || tExit < 0 {
		return 0, mgl32.Vec3{}, false
	}

	distance = tEnter
	if distance < 0 {
		distance = tExit
	}

	const epsilon = 0.0001
	hit := ray.Point(tEnter)
	switch {
	case mgl32.Abs(hit.X()-a.Min.X()) < epsilon:
		normal = mgl32.Vec3{-1, 0, 0}
	case mgl32.Abs(hit.X()-a.Max.X()) < epsilon:
		normal = mgl32.Vec3{1, 0, 0}
	case mgl32.Abs(hit.Y()-a.Min.Y()) < epsilon:
		normal = mgl32.Vec3{0, -1, 0}
	case mgl32.Abs(hit.Y()-a.Max.Y()) < epsilon:
		normal = mgl32.Vec3{0, 1, 0}
	case mgl32.Abs(hit.Z()-a.Min.Z()) < epsilon:
		normal = mgl32.Vec3{0, 0, -1}
	case mgl32.Abs(hit.Z()-a.Max.Z()) < epsilon:
		normal = mgl32.Vec3{0, 0, 1}
	}
	return distance, normal, true
}

// RaycastSphere intersects the ray with a sphere, returning the nearest
// non-negative hit distance and the outward normal at the hit point.
func RaycastSphere(ray Ray, s Sphere) (distance float32, normal mgl32.Vec3, ok bool) {
	oc := ray.Origin.Sub(s.Center)
	b := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - c

	if disc < 0 {
		return 0, mgl32.Vec3{}, false
	}

	sq := float32(math.Sqrt(float64(disc)))
	distance = -b - sq
	if distance < 0 {
		distance = -b + sq
	}
	if distance < 0 {
		return 0, mgl32.Vec3{}, false
	}
	normal = ray.Point(distance).Sub(s.Center).Normalize()
	return distance, normal, true
}

// occupied reports whether a world voxel blocks movement: loaded, solid, and
// not water.
func occupied(src VoxelSource, x, y, z int) bool {
	v, ok := src.VoxelAt(voxel.WorldPos{X: x, Y: y, Z: z})
	return ok && v.Type != voxel.Air && v.Type != voxel.Water
}

// TestAABBVoxelWorld reports whether any voxel overlapping the box is
// occupied. It short-circuits on the first hit.
func TestAABBVoxelWorld(a AABB, src VoxelSource) bool {
	minX := int(math.Floor(float64(a.Min.X())))
	minY := int(math.Floor(float64(a.Min.Y())))
	minZ := int(math.Floor(float64(a.Min.Z())))
	maxX := int(math.Ceil(float64(a.Max.X())))
	maxY := int(math.Ceil(float64(a.Max.Y())))
	maxZ := int(math.Ceil(float64(a.Max.Z())))

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			for z := minZ; z <= maxZ; z++ {
				if occupied(src, x, y, z) {
					return true
				}
			}
		}
	}
	return false
}

// SweepAABBVoxelWorld tests the box moved by velocity one axis at a time and
// zeroes the axes that would collide, returning the adjusted velocity.
func SweepAABBVoxelWorld(a AABB, velocity mgl32.Vec3, src VoxelSource) mgl32.Vec3 {
	adjusted := velocity
	for axis := 0; axis < 3; axis++ {
		var d mgl32.Vec3
		d[axis] = velocity[axis]
		if TestAABBVoxelWorld(a.Translated(d), src) {
			adjusted[axis] = 0
		}
	}
	return adjusted
}

// Penetration computes the minimum separation for two overlapping boxes:
// the axis of least overlap, its depth, and the normal pointing from a
// toward b's far side. ok is false when the boxes do not overlap.
func Penetration(a, b AABB) (normal mgl32.Vec3, depth float32, ok bool) {
	if !a.Intersects(b) {
		return mgl32.Vec3{}, 0, false
	}

	overlapX := min(a.Max.X()-b.Min.X(), b.Max.X()-a.Min.X())
	overlapY := min(a.Max.Y()-b.Min.Y(), b.Max.Y()-a.Min.Y())
	overlapZ := min(a.Max.Z()-b.Min.Z(), b.Max.Z()-a.Min.Z())

	switch {
	case overlapX < overlapY && overlapX < overlapZ:
		depth = overlapX
		if a.Center().X() < b.Center().X() {
			normal = mgl32.Vec3{-1, 0, 0}
		} else {
			normal = mgl32.Vec3{1, 0, 0}
		}
	case overlapY < overlapZ:
		depth = overlapY
		if a.Center().Y() < b.Center().Y() {
			normal = mgl32.Vec3{0, -1, 0}
		} else {
			normal = mgl32.Vec3{0, 1, 0}
		}
	default:
		depth = overlapZ
		if a.Center().Z() < b.Center().Z() {
			normal = mgl32.Vec3{0, 0, -1}
		} else {
			normal = mgl32.Vec3{0, 0, 1}
		}
	}
	return normal, depth, true
}
