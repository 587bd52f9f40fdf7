package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestSpatialHashQuery(t *testing.T) {
	h := NewSpatialHash(4)

	near := &Body{AABB: box(0, 0, 0, 1, 1, 1)}
	far := &Body{AABB: box(100, 0, 0, 101, 1, 1)}
	h.Insert(near)
	h.Insert(far)

	got := h.Query(box(0.5, 0.5, 0.5, 2, 2, 2))
	if len(got) != 1 || got[0] != near {
		t.Errorf("Query returned %d bodies, want only the near body", len(got))
	}

	if got := h.Query(box(200, 200, 200, 201, 201, 201)); len(got) != 0 {
		t.Errorf("empty region returned %d bodies", len(got))
	}
}

func TestSpatialHashQueryDeduplicates(t *testing.T) {
	h := NewSpatialHash(2)

	// Spans many cells; a query overlapping several of them must still
	// return the body once.
	big := &Body{AABB: box(0, 0, 0, 10, 10, 10)}
	h.Insert(big)

	got := h.Query(box(0, 0, 0, 10, 10, 10))
	if len(got) != 1 {
		t.Errorf("Query returned %d results for one body, want 1", len(got))
	}
}

func TestSpatialHashFindCollisions(t *testing.T) {
	h := NewSpatialHash(4)

	a := &Body{AABB: box(0, 0, 0, 2, 2, 2)}
	b := &Body{AABB: box(1, 0, 0, 3, 2, 2)}
	c := &Body{AABB: box(50, 50, 50, 51, 51, 51)}
	h.Insert(a)
	h.Insert(b)
	h.Insert(c)

	pairs := h.FindCollisions()
	if len(pairs) != 1 {
		t.Fatalf("found %d pairs, want 1", len(pairs))
	}
	p := pairs[0]
	if !(p.A == a && p.B == b) && !(p.A == b && p.B == a) {
		t.Error("collision pair does not involve the overlapping bodies")
	}
	if p.Penetration <= 0 {
		t.Errorf("penetration = %f, want > 0", p.Penetration)
	}
}

func TestSpatialHashClear(t *testing.T) {
	h := NewSpatialHash(4)
	h.Insert(&Body{AABB: box(0, 0, 0, 1, 1, 1)})

	h.Clear()
	if got := h.Query(box(-1, -1, -1, 2, 2, 2)); len(got) != 0 {
		t.Errorf("Query after Clear returned %d bodies", len(got))
	}
}

func TestSpatialHashNegativeCoordinates(t *testing.T) {
	h := NewSpatialHash(4)

	b := &Body{AABB: box(-10, -10, -10, -9, -9, -9)}
	h.Insert(b)

	got := h.Query(box(-10.5, -10.5, -10.5, -8.5, -8.5, -8.5))
	if len(got) != 1 || got[0] != b {
		t.Error("body at negative coordinates not found")
	}
}

func TestSpatialHashBodyFields(t *testing.T) {
	b := &Body{
		AABB:     box(0, 0, 0, 1, 1, 1),
		Velocity: mgl32.Vec3{1, 2, 3},
		Trigger:  true,
		UserData: "player",
	}
	h := NewSpatialHash(4)
	h.Insert(b)

	got := h.Query(box(0, 0, 0, 1, 1, 1))
	if len(got) != 1 {
		t.Fatalf("Query returned %d bodies, want 1", len(got))
	}
	if got[0].UserData != "player" || !got[0].Trigger {
		t.Error("body fields did not survive insertion")
	}
}
