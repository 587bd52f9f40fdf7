package voxel

// Chunk dimensions. A chunk is a 16×256×16 column of voxels; the world is an
// unbounded grid of chunks in X and Z.
const (
	ChunkSize   = 16
	ChunkHeight = 256
	ChunkVolume = ChunkSize * ChunkSize * ChunkHeight
)

// Type identifies the block kind stored in a voxel. Air is the empty sentinel.
type Type uint8

const (
	Air Type = iota
	Stone
	Dirt
	Grass
	Sand
	Water
	Wood
	Leaves
	Bedrock
	Snow
	Ice
	Cobblestone
	Planks
	Glass
	Brick
	Gravel
	Obsidian
	CoalOre
	IronOre
	GoldOre
	DiamondOre
	EmeraldOre

	typeCount
)

var typeNames = [typeCount]string{
	Air:         "Air",
	Stone:       "Stone",
	Dirt:        "Dirt",
	Grass:       "Grass",
	Sand:        "Sand",
	Water:       "Water",
	Wood:        "Wood",
	Leaves:      "Leaves",
	Bedrock:     "Bedrock",
	Snow:        "Snow",
	Ice:         "Ice",
	Cobblestone: "Cobblestone",
	Planks:      "Planks",
	Glass:       "Glass",
	Brick:       "Brick",
	Gravel:      "Gravel",
	Obsidian:    "Obsidian",
	CoalOre:     "Coal Ore",
	IronOre:     "Iron Ore",
	GoldOre:     "Gold Ore",
	DiamondOre:  "Diamond Ore",
	EmeraldOre:  "Emerald Ore",
}

// String returns the display name of the type.
func (t Type) String() string {
	if t >= typeCount {
		return "Unknown"
	}
	return typeNames[t]
}

// Color returns the representative RGB color of the type, used by tooling
// and debug views.
func (t Type) Color() (r, g, b uint8) {
	switch t {
	case Stone, Cobblestone:
		return 128, 128, 128
	case Dirt:
		return 139, 69, 19
	case Grass, Leaves:
		return 34, 139, 34
	case Sand:
		return 238, 214, 175
	case Water:
		return 30, 144, 255
	case Wood, Planks:
		return 139, 90, 43
	case Bedrock:
		return 50, 50, 50
	case Snow:
		return 255, 250, 250
	case Ice:
		return 175, 225, 255
	case Glass:
		return 200, 230, 255
	case Brick:
		return 150, 75, 50
	case Gravel:
		return 136, 140, 141
	case Obsidian:
		return 20, 18, 29
	case CoalOre:
		return 84, 84, 84
	case IronOre:
		return 216, 175, 147
	case GoldOre:
		return 252, 238, 75
	case DiamondOre:
		return 93, 236, 245
	case EmeraldOre:
		return 23, 221, 98
	default:
		return 0, 0, 0
	}
}

// Voxel is one unit cube of the world: a block type plus a light level in
// [0,15]. Light is carried for a future lighting pass and is not consulted
// by meshing or collision.
type Voxel struct {
	Type  Type
	Light uint8
}

// IsSolid reports whether the voxel occupies space (anything but Air).
func (v Voxel) IsSolid() bool {
	return v.Type != Air
}

// IsOpaque reports whether the voxel fully occludes faces behind it.
func (v Voxel) IsOpaque() bool {
	return v.Type != Air && v.Type != Water && v.Type != Glass
}

// IsTransparent reports whether the voxel lets light through.
func (v Voxel) IsTransparent() bool {
	return v.Type == Water || v.Type == Glass || v.Type == Ice
}

// WorldPos is a block position in global coordinates. Y is bounded to
// [0, ChunkHeight); X and Z are unbounded.
type WorldPos struct {
	X, Y, Z int
}

// ChunkPos identifies a chunk column in chunk-grid coordinates.
type ChunkPos struct {
	X, Z int
}

// ChunkPosAt returns the chunk containing the given world position, using
// floor division so that negative coordinates map correctly
// (world x=-1 → chunk -1, not chunk 0).
func ChunkPosAt(pos WorldPos) ChunkPos {
	return ChunkPos{X: floorDiv(pos.X, ChunkSize), Z: floorDiv(pos.Z, ChunkSize)}
}

// Local converts a world position to local coordinates within its chunk.
// The returned x and z are always in [0, ChunkSize); y passes through.
func (p WorldPos) Local() (x, y, z int) {
	return mod(p.X, ChunkSize), p.Y, mod(p.Z, ChunkSize)
}

// Origin returns the world position of the chunk's (0,0,0) corner.
func (p ChunkPos) Origin() WorldPos {
	return WorldPos{X: p.X * ChunkSize, Z: p.Z * ChunkSize}
}

func floorDiv(a, n int) int {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
