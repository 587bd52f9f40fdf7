package terraform

import (
	"math"

	"github.com/freshvoxel/engine/internal/engine/physics"
	"github.com/freshvoxel/engine/internal/engine/voxel"
	"github.com/freshvoxel/engine/internal/engine/world"
)

// Tool is the closed set of terraforming shapes. Dispatch happens through a
// single switch in Apply rather than per-tool types.
type Tool uint8

const (
	ToolSingle Tool = iota
	ToolBrush
	ToolSphere
	ToolFilledSphere
	ToolCube
	ToolFilledCube
	ToolFlatten
	ToolPaint
)

var toolNames = map[Tool]string{
	ToolSingle:       "Single",
	ToolBrush:        "Brush",
	ToolSphere:       "Sphere",
	ToolFilledSphere: "Filled Sphere",
	ToolCube:         "Cube",
	ToolFilledCube:   "Filled Cube",
	ToolFlatten:      "Flatten",
	ToolPaint:        "Paint",
}

func (t Tool) String() string { return toolNames[t] }

// Mode selects whether a tool places material or removes it.
type Mode uint8

const (
	ModePlace Mode = iota
	ModeRemove
)

// Terraformer edits a world through its world-coordinate voxel API. Edits in
// unloaded chunks are dropped, matching the world's best-effort set
// semantics; chunks touched by an edit are left dirty for remeshing.
type Terraformer struct {
	world *world.World
	size  int
}

// New creates a Terraformer with tool size 1.
func New(w *world.World) *Terraformer {
	return &Terraformer{world: w, size: 1}
}

// SetSize sets the tool radius in blocks, clamped to [1, 16].
func (t *Terraformer) SetSize(size int) {
	t.size = min(max(size, 1), 16)
}

// Size returns the tool radius.
func (t *Terraformer) Size() int { return t.size }

// Apply runs a tool at pos and returns the number of voxels written.
// material is the block placed in ModePlace and by Paint; ModeRemove writes
// Air regardless of material.
func (t *Terraformer) Apply(tool Tool, mode Mode, pos voxel.WorldPos, material voxel.Type) int {
	if mode == ModeRemove {
		material = voxel.Air
	}

	switch tool {
	case ToolSingle:
		return t.applySingle(pos, material)
	case ToolBrush:
		return t.applyBall(pos, material, float64(t.size), true)
	case ToolSphere:
		return t.applyBall(pos, material, float64(t.size), false)
	case ToolFilledSphere:
		return t.applyBall(pos, material, float64(t.size), true)
	case ToolCube:
		return t.applyBox(pos, material, false)
	case ToolFilledCube:
		return t.applyBox(pos, material, true)
	case ToolFlatten:
		return t.applyFlatten(pos, material)
	case ToolPaint:
		return t.applyPaint(pos, material)
	default:
		return 0
	}
}

// set writes one voxel if its chunk is loaded and y is in range, reporting
// whether the write landed.
func (t *Terraformer) set(pos voxel.WorldPos, material voxel.Type) bool {
	if pos.Y < 0 || pos.Y >= voxel.ChunkHeight {
		return false
	}
	if _, ok := t.world.VoxelAt(pos); !ok {
		return false
	}
	t.world.SetVoxel(pos, voxel.Voxel{Type: material})
	return true
}

func (t *Terraformer) applySingle(pos voxel.WorldPos, material voxel.Type) int {
	if t.set(pos, material) {
		return 1
	}
	return 0
}

// applyBall writes every voxel within radius of pos (filled), or only the
// half-block shell at the radius (hollow sphere).
func (t *Terraformer) applyBall(pos voxel.WorldPos, material voxel.Type, radius float64, filled bool) int {
	r := int(math.Ceil(radius))
	count := 0
	for dy := -r; dy <= r; dy++ {
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				dist := math.Sqrt(float64(dx*dx + dy*dy + dz*dz))
				var inside bool
				if filled {
					inside = dist <= radius
				} else {
					inside = dist >= radius-0.5 && dist <= radius+0.5
				}
				if !inside {
					continue
				}
				if t.set(voxel.WorldPos{X: pos.X + dx, Y: pos.Y + dy, Z: pos.Z + dz}, material) {
					count++
				}
			}
		}
	}
	return count
}

// applyBox writes a cube of side 2×size+1 centered on pos; hollow cubes
// write only the outer shell.
func (t *Terraformer) applyBox(pos voxel.WorldPos, material voxel.Type, filled bool) int {
	r := t.size
	count := 0
	for dy := -r; dy <= r; dy++ {
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				if !filled && abs(dx) != r && abs(dy) != r && abs(dz) != r {
					continue
				}
				if t.set(voxel.WorldPos{X: pos.X + dx, Y: pos.Y + dy, Z: pos.Z + dz}, material) {
					count++
				}
			}
		}
	}
	return count
}

// applyFlatten levels the columns around pos to its height: everything above
// becomes Air, air pockets at or below are filled with material.
func (t *Terraformer) applyFlatten(pos voxel.WorldPos, material voxel.Type) int {
	if material == voxel.Air {
		material = voxel.Dirt
	}
	r := t.size
	count := 0
	for dz := -r; dz <= r; dz++ {
		for dx := -r; dx <= r; dx++ {
			if math.Sqrt(float64(dx*dx+dz*dz)) > float64(r) {
				continue
			}
			x, z := pos.X+dx, pos.Z+dz
			for y := pos.Y + 1; y <= pos.Y+r; y++ {
				p := voxel.WorldPos{X: x, Y: y, Z: z}
				if v, ok := t.world.VoxelAt(p); ok && v.IsSolid() {
					if t.set(p, voxel.Air) {
						count++
					}
				}
			}
			for y := pos.Y - r; y <= pos.Y; y++ {
				p := voxel.WorldPos{X: x, Y: y, Z: z}
				if v, ok := t.world.VoxelAt(p); ok && !v.IsSolid() {
					if t.set(p, material) {
						count++
					}
				}
			}
		}
	}
	return count
}

// applyPaint recolors solid voxels within the brush radius without changing
// occupancy.
func (t *Terraformer) applyPaint(pos voxel.WorldPos, material voxel.Type) int {
	if material == voxel.Air {
		return 0
	}
	r := t.size
	count := 0
	for dy := -r; dy <= r; dy++ {
		for dz := -r; dz <= r; dz++ {
			for dx := -r; dx <= r; dx++ {
				if math.Sqrt(float64(dx*dx+dy*dy+dz*dz)) > float64(r) {
					continue
				}
				p := voxel.WorldPos{X: pos.X + dx, Y: pos.Y + dy, Z: pos.Z + dz}
				if v, ok := t.world.VoxelAt(p); ok && v.IsSolid() {
					if t.set(p, material) {
						count++
					}
				}
			}
		}
	}
	return count
}

// Pick raycasts into the world and returns the block a tool in the given
// mode should target: the hit block for removal and painting, the
// face-adjacent block for placement.
func (t *Terraformer) Pick(ray physics.Ray, mode Mode, maxDistance float32) (voxel.WorldPos, bool) {
	hit := physics.RaycastVoxel(ray, t.world, maxDistance)
	if !hit.Hit {
		return voxel.WorldPos{}, false
	}
	pos := voxel.WorldPos{X: hit.BlockX, Y: hit.BlockY, Z: hit.BlockZ}
	if mode == ModePlace {
		pos.X += int(hit.Normal.X())
		pos.Y += int(hit.Normal.Y())
		pos.Z += int(hit.Normal.Z())
	}
	return pos, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
