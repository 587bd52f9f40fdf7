package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Body is a dynamic collision participant tracked by the broad phase.
type Body struct {
	AABB     AABB
	Velocity mgl32.Vec3
	Static   bool
	Trigger  bool // detected but never resolved

	UserData any
}

// Pair is a detected collision between two bodies, with the separation
// normal and depth from Penetration.
type Pair struct {
	A, B        *Body
	Normal      mgl32.Vec3
	Penetration float32
}

// SpatialHash buckets bodies into a uniform grid so collision candidates can
// be found without testing every pair. Rebuild it each frame: Clear, Insert
// all bodies, then query.
type SpatialHash struct {
	cellSize float32
	cells    map[int64][]*Body
}

// NewSpatialHash creates a SpatialHash with the given cell size.
func NewSpatialHash(cellSize float32) *SpatialHash {
	return &SpatialHash{
		cellSize: cellSize,
		cells:    make(map[int64][]*Body),
	}
}

// Clear drops all bodies.
func (s *SpatialHash) Clear() {
	for k := range s.cells {
		delete(s.cells, k)
	}
}

// Insert adds the body to every cell its AABB overlaps.
func (s *SpatialHash) Insert(b *Body) {
	if b == nil {
		return
	}
	minC := s.cellCoords(b.AABB.Min)
	maxC := s.cellCoords(b.AABB.Max)
	for x := minC[0]; x <= maxC[0]; x++ {
		for y := minC[1]; y <= maxC[1]; y++ {
			for z := minC[2]; z <= maxC[2]; z++ {
				key := cellKey(x, y, z)
				s.cells[key] = append(s.cells[key], b)
			}
		}
	}
}

// Query returns the bodies whose cells overlap the given box, each at most
// once.
func (s *SpatialHash) Query(a AABB) []*Body {
	var result []*Body
	seen := make(map[*Body]struct{})

	minC := s.cellCoords(a.Min)
	maxC := s.cellCoords(a.Max)
	for x := minC[0]; x <= maxC[0]; x++ {
		for y := minC[1]; y <= maxC[1]; y++ {
			for z := minC[2]; z <= maxC[2]; z++ {
				for _, b := range s.cells[cellKey(x, y, z)] {
					if _, dup := seen[b]; dup {
						continue
					}
					seen[b] = struct{}{}
					result = append(result, b)
				}
			}
		}
	}
	return result
}

// FindCollisions tests all body pairs sharing a cell and returns the
// overlapping ones with their penetration data.
func (s *SpatialHash) FindCollisions() []Pair {
	var pairs []Pair
	seen := make(map[[2]*Body]struct{})

	for _, bodies := range s.cells {
		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				a, b := bodies[i], bodies[j]
				key := [2]*Body{a, b}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				if !a.AABB.Intersects(b.AABB) {
					continue
				}
				normal, depth, _ := Penetration(a.AABB, b.AABB)
				pairs = append(pairs, Pair{A: a, B: b, Normal: normal, Penetration: depth})
			}
		}
	}
	return pairs
}

func (s *SpatialHash) cellCoords(p mgl32.Vec3) [3]int64 {
	return [3]int64{
		int64(math.Floor(float64(p.X() / s.cellSize))),
		int64(math.Floor(float64(p.Y() / s.cellSize))),
		int64(math.Floor(float64(p.Z() / s.cellSize))),
	}
}

func cellKey(x, y, z int64) int64 {
	return x*73856093 ^ y*19349663 ^ z*83492791
}
