package gen

import (
	"math"
	"math/rand"
)

// NoiseGenerator produces deterministic Perlin noise from a seed, in 2D and
// 3D, plus fractal (multi-octave) sums of either. The same seed and input
// coordinates always yield bit-identical output; world reproducibility
// depends on it.
type NoiseGenerator struct {
	perm [512]int
	seed int64
}

// NewNoiseGenerator creates a noise generator with a seeded permutation table.
func NewNoiseGenerator(seed int64) *NoiseGenerator {
	ng := &NoiseGenerator{}
	ng.SetSeed(seed)
	return ng
}

// Seed returns the seed the permutation table was built from.
func (ng *NoiseGenerator) Seed() int64 { return ng.seed }

// SetSeed rebuilds the permutation table: the values 0..255 shuffled by a
// seeded PRNG, then duplicated to 512 entries so gradient lookups never wrap.
func (ng *NoiseGenerator) SetSeed(seed int64) {
	ng.seed = seed

	var p [256]int
	for i := range p {
		p[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(p), func(i, j int) {
		p[i], p[j] = p[j], p[i]
	})

	for i := 0; i < 256; i++ {
		ng.perm[i] = p[i]
		ng.perm[256+i] = p[i]
	}
}

// fade is the quintic interpolation curve t³(t(6t−15)+10).
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad2(hash int, x, y float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		v = x
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

func grad3(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	var v float64
	switch {
	case h < 4:
		v = y
	case h == 12 || h == 14:
		v = x
	default:
		v = z
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}

// Perlin2D returns 2D Perlin noise at (x, y). Output stays within [-1, 1]
// in practice.
func (ng *NoiseGenerator) Perlin2D(x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)

	u := fade(x)
	v := fade(y)

	a := ng.perm[xi] + yi
	b := ng.perm[xi+1] + yi

	return lerp(v,
		lerp(u, grad2(ng.perm[a], x, y), grad2(ng.perm[b], x-1, y)),
		lerp(u, grad2(ng.perm[a+1], x, y-1), grad2(ng.perm[b+1], x-1, y-1)),
	)
}

// Perlin3D returns 3D Perlin noise at (x, y, z).
func (ng *NoiseGenerator) Perlin3D(x, y, z float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255

	x -= math.Floor(x)
	y -= math.Floor(y)
	z -= math.Floor(z)

	u := fade(x)
	v := fade(y)
	w := fade(z)

	a := ng.perm[xi] + yi
	aa := ng.perm[a] + zi
	ab := ng.perm[a+1] + zi
	b := ng.perm[xi+1] + yi
	ba := ng.perm[b] + zi
	bb := ng.perm[b+1] + zi

	return lerp(w,
		lerp(v,
			lerp(u, grad3(ng.perm[aa], x, y, z), grad3(ng.perm[ba], x-1, y, z)),
			lerp(u, grad3(ng.perm[ab], x, y-1, z), grad3(ng.perm[bb], x-1, y-1, z))),
		lerp(v,
			lerp(u, grad3(ng.perm[aa+1], x, y, z-1), grad3(ng.perm[ba+1], x-1, y, z-1)),
			lerp(u, grad3(ng.perm[ab+1], x, y-1, z-1), grad3(ng.perm[bb+1], x-1, y-1, z-1))),
	)
}

// FractalNoise2D sums octaves of Perlin2D at rising frequency (×lacunarity)
// and falling amplitude (×persistence), normalized by the total amplitude so
// the result stays near [-1, 1].
func (ng *NoiseGenerator) FractalNoise2D(x, y float64, octaves int, persistence, lacunarity float64) float64 {
	var total, maxValue float64
	frequency := 1.0
	amplitude := 1.0

	for i := 0; i < octaves; i++ {
		total += ng.Perlin2D(x*frequency, y*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	return total / maxValue
}

// FractalNoise3D is the 3D counterpart of FractalNoise2D.
func (ng *NoiseGenerator) FractalNoise3D(x, y, z float64, octaves int, persistence, lacunarity float64) float64 {
	var total, maxValue float64
	frequency := 1.0
	amplitude := 1.0

	for i := 0; i < octaves; i++ {
		total += ng.Perlin3D(x*frequency, y*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}
	return total / maxValue
}
