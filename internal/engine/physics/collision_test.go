package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/freshvoxel/engine/internal/engine/voxel"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) AABB {
	return AABB{Min: mgl32.Vec3{minX, minY, minZ}, Max: mgl32.Vec3{maxX, maxY, maxZ}}
}

func TestAABBIntersects(t *testing.T) {
	a := box(0, 0, 0, 2, 2, 2)

	tests := []struct {
		name string
		b    AABB
		want bool
	}{
		{"overlapping", box(1, 1, 1, 3, 3, 3), true},
		{"touching faces", box(2, 0, 0, 4, 2, 2), true},
		{"contained", box(0.5, 0.5, 0.5, 1.5, 1.5, 1.5), true},
		{"separated on x", box(3, 0, 0, 5, 2, 2), false},
		{"separated on y", box(0, 3, 0, 2, 5, 2), false},
		{"separated on z", box(0, 0, 3, 2, 2, 5), false},
	}
	for _, tt := range tests {
		if got := TestAABB(a, tt.b); got != tt.want {
			t.Errorf("%s: TestAABB = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAABBContains(t *testing.T) {
	a := box(0, 0, 0, 2, 2, 2)
	if !a.Contains(mgl32.Vec3{1, 1, 1}) {
		t.Error("center point not contained")
	}
	if !a.Contains(mgl32.Vec3{0, 0, 0}) {
		t.Error("corner point not contained")
	}
	if a.Contains(mgl32.Vec3{2.1, 1, 1}) {
		t.Error("outside point contained")
	}
}

func TestAABBCenterSize(t *testing.T) {
	a := box(0, 2, 4, 2, 6, 12)
	if got := a.Center(); got != (mgl32.Vec3{1, 4, 8}) {
		t.Errorf("Center = %v, want (1,4,8)", got)
	}
	if got := a.Size(); got != (mgl32.Vec3{2, 4, 8}) {
		t.Errorf("Size = %v, want (2,4,8)", got)
	}
}

func TestSphereIntersects(t *testing.T) {
	a := Sphere{Center: mgl32.Vec3{0, 0, 0}, Radius: 1}
	b := Sphere{Center: mgl32.Vec3{1.5, 0, 0}, Radius: 1}
	c := Sphere{Center: mgl32.Vec3{3, 0, 0}, Radius: 0.5}

	if !TestSphere(a, b) {
		t.Error("overlapping spheres did not intersect")
	}
	if TestSphere(a, c) {
		t.Error("distant spheres intersected")
	}
}

func TestAABBSphereIntersection(t *testing.T) {
	a := box(0, 0, 0, 2, 2, 2)

	if !TestAABBSphere(a, Sphere{Center: mgl32.Vec3{1, 1, 1}, Radius: 0.1}) {
		t.Error("sphere inside the box did not intersect")
	}
	if !TestAABBSphere(a, Sphere{Center: mgl32.Vec3{3, 1, 1}, Radius: 1.5}) {
		t.Error("sphere overlapping a face did not intersect")
	}
	if TestAABBSphere(a, Sphere{Center: mgl32.Vec3{4, 4, 4}, Radius: 1}) {
		t.Error("distant sphere intersected")
	}
}

func TestClosestPointOnAABB(t *testing.T) {
	a := box(0, 0, 0, 2, 2, 2)

	if got := ClosestPointOnAABB(a, mgl32.Vec3{1, 1, 1}); got != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("interior point moved: %v", got)
	}
	if got := ClosestPointOnAABB(a, mgl32.Vec3{5, 1, -3}); got != (mgl32.Vec3{2, 1, 0}) {
		t.Errorf("clamped point = %v, want (2,1,0)", got)
	}
}

func TestRaycastAABBHit(t *testing.T) {
	a := box(2, 0, 0, 4, 2, 2)
	ray := NewRay(mgl32.Vec3{0, 1, 1}, mgl32.Vec3{1, 0, 0})

	dist, normal, ok := RaycastAABB(ray, a)
	if !ok {
		t.Fatal("expected a hit")
	}
	if mgl32.Abs(dist-2) > 0.001 {
		t.Errorf("distance = %f, want 2", dist)
	}
	if normal != (mgl32.Vec3{-1, 0, 0}) {
		t.Errorf("normal = %v, want (-1,0,0)", normal)
	}
}

func TestRaycastAABBMiss(t *testing.T) {
	a := box(2, 0, 0, 4, 2, 2)

	// Pointing away from the box.
	if _, _, ok := RaycastAABB(NewRay(mgl32.Vec3{0, 1, 1}, mgl32.Vec3{-1, 0, 0}), a); ok {
		t.Error("ray pointing away hit the box")
	}
	// Parallel but offset.
	if _, _, ok := RaycastAABB(NewRay(mgl32.Vec3{0, 5, 1}, mgl32.Vec3{1, 0, 0}), a); ok {
		t.Error("offset parallel ray hit the box")
	}
}

func TestRaycastAABBFromInside(t *testing.T) {
	a := box(0, 0, 0, 4, 4, 4)
	ray := NewRay(mgl32.Vec3{2, 2, 2}, mgl32.Vec3{1, 0, 0})

	dist, _, ok := RaycastAABB(ray, a)
	if !ok {
		t.Fatal("ray from inside should hit")
	}
	if mgl32.Abs(dist-2) > 0.001 {
		t.Errorf("exit distance = %f, want 2", dist)
	}
}

func TestRaycastSphereHit(t *testing.T) {
	s := Sphere{Center: mgl32.Vec3{5, 0, 0}, Radius: 1}
	ray := NewRay(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0})

	dist, normal, ok := RaycastSphere(ray, s)
	if !ok {
		t.Fatal("expected a hit")
	}
	if mgl32.Abs(dist-4) > 0.001 {
		t.Errorf("distance = %f, want 4", dist)
	}
	if normal != (mgl32.Vec3{-1, 0, 0}) {
		t.Errorf("normal = %v, want (-1,0,0)", normal)
	}

	if _, _, ok := RaycastSphere(NewRay(mgl32.Vec3{0, 5, 0}, mgl32.Vec3{1, 0, 0}), s); ok {
		t.Error("offset ray hit the sphere")
	}
}

func TestAABBVoxelWorldCollision(t *testing.T) {
	// Player-sized box standing on the stone floor.
	standing := box(7.7, 61, 7.7, 8.3, 62.8, 8.3)
	if TestAABBVoxelWorld(standing, stoneFloor) {
		t.Error("box above the floor reported a collision")
	}

	sunk := standing.Translated(mgl32.Vec3{0, -1.5, 0})
	if !TestAABBVoxelWorld(sunk, stoneFloor) {
		t.Error("box overlapping the floor reported no collision")
	}
}

func TestAABBVoxelWorldWaterIsPassable(t *testing.T) {
	pool := funcSource(func(pos voxel.WorldPos) (voxel.Voxel, bool) {
		if pos.Y <= 60 {
			return voxel.Voxel{Type: voxel.Water}, true
		}
		return voxel.Voxel{}, true
	})
	swimming := box(7.7, 58, 7.7, 8.3, 60, 8.3)
	if TestAABBVoxelWorld(swimming, pool) {
		t.Error("water blocked movement")
	}
}

func TestSweepAABBVoxelWorld(t *testing.T) {
	standing := box(7.7, 61.2, 7.7, 8.3, 62.8, 8.3)

	// Falling into the floor: vertical motion is zeroed, horizontal kept.
	v := SweepAABBVoxelWorld(standing, mgl32.Vec3{0.5, -2, 0}, stoneFloor)
	if v.Y() != 0 {
		t.Errorf("vertical velocity = %f, want 0", v.Y())
	}
	if v.X() != 0.5 {
		t.Errorf("horizontal velocity = %f, want 0.5", v.X())
	}

	// Free movement passes through unchanged.
	v = SweepAABBVoxelWorld(standing, mgl32.Vec3{0.5, 0.5, 0.5}, stoneFloor)
	if v != (mgl32.Vec3{0.5, 0.5, 0.5}) {
		t.Errorf("free velocity changed: %v", v)
	}
}

func TestPenetration(t *testing.T) {
	a := box(0, 0, 0, 2, 2, 2)
	b := box(1.5, 0, 0, 3.5, 2, 2)

	normal, depth, ok := Penetration(a, b)
	if !ok {
		t.Fatal("overlapping boxes reported no penetration")
	}
	if normal != (mgl32.Vec3{-1, 0, 0}) {
		t.Errorf("normal = %v, want (-1,0,0)", normal)
	}
	if mgl32.Abs(depth-0.5) > 0.001 {
		t.Errorf("depth = %f, want 0.5", depth)
	}

	if _, _, ok := Penetration(a, box(5, 5, 5, 6, 6, 6)); ok {
		t.Error("separated boxes reported penetration")
	}
}

func TestNewRayNormalizes(t *testing.T) {
	r := NewRay(mgl32.Vec3{}, mgl32.Vec3{3, 0, 0})
	if r.Direction != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("direction = %v, want (1,0,0)", r.Direction)
	}

	r = NewRay(mgl32.Vec3{}, mgl32.Vec3{})
	if r.Direction != (mgl32.Vec3{}) {
		t.Errorf("zero direction changed: %v", r.Direction)
	}
}
