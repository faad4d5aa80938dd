package vmath

import (
	"math"
	"math/rand"
)

// PerlinNoise is a seeded gradient-noise generator after Ken Perlin's improved
// noise. The permutation table is a seeded shuffle of 0..255 duplicated into
// 512 entries, so two generators built from the same seed produce identical
// values for identical coordinates, on any platform.
//
// Outputs are in [-1, 1]. The zero value is not usable; construct with
// NewPerlinNoise.
type PerlinNoise struct {
	perm [512]int
}

// NewPerlinNoise builds a generator from the given seed.
func NewPerlinNoise(seed uint32) *PerlinNoise {
	p := &PerlinNoise{}

	var base [256]int
	for i := range base {
		base[i] = i
	}

	// Span-preserving shuffle: the table stays a permutation of 0..255 so
	// every gradient direction remains reachable regardless of seed.
	rng := rand.New(rand.NewSource(int64(seed)))
	rng.Shuffle(len(base), func(i, j int) {
		base[i], base[j] = base[j], base[i]
	})

	for i := 0; i < 256; i++ {
		p.perm[i] = base[i]
		p.perm[i+256] = base[i]
	}
	return p
}

// Noise1D samples the noise field along a line.
func (p *PerlinNoise) Noise1D(x float64) float64 {
	return p.Noise3D(x, 0, 0)
}

// Noise2D samples the noise field on a plane.
func (p *PerlinNoise) Noise2D(x, y float64) float64 {
	return p.Noise3D(x, y, 0)
}

// Noise3D samples the noise field at a 3-D coordinate.
func (p *PerlinNoise) Noise3D(x, y, z float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	zi := int(math.Floor(z)) & 255

	xf := x - math.Floor(x)
	yf := y - math.Floor(y)
	zf := z - math.Floor(z)

	u := fade(xf)
	v := fade(yf)
	w := fade(zf)

	a := p.perm[xi] + yi
	aa := p.perm[a] + zi
	ab := p.perm[a+1] + zi
	b := p.perm[xi+1] + yi
	ba := p.perm[b] + zi
	bb := p.perm[b+1] + zi

	return lerp(w,
		lerp(v,
			lerp(u, grad(p.perm[aa], xf, yf, zf), grad(p.perm[ba], xf-1, yf, zf)),
			lerp(u, grad(p.perm[ab], xf, yf-1, zf), grad(p.perm[bb], xf-1, yf-1, zf))),
		lerp(v,
			lerp(u, grad(p.perm[aa+1], xf, yf, zf-1), grad(p.perm[ba+1], xf-1, yf, zf-1)),
			lerp(u, grad(p.perm[ab+1], xf, yf-1, zf-1), grad(p.perm[bb+1], xf-1, yf-1, zf-1))))
}

// Octave1D sums octaves of Noise1D with the given persistence, normalized
// back into [-1, 1].
func (p *PerlinNoise) Octave1D(x float64, octaves int, persistence float64) float64 {
	return p.octave(octaves, persistence, func(frequency float64) float64 {
		return p.Noise1D(x * frequency)
	})
}

// Octave2D sums octaves of Noise2D with the given persistence, normalized
// back into [-1, 1].
func (p *PerlinNoise) Octave2D(x, y float64, octaves int, persistence float64) float64 {
	return p.octave(octaves, persistence, func(frequency float64) float64 {
		return p.Noise2D(x*frequency, y*frequency)
	})
}

func (p *PerlinNoise) octave(octaves int, persistence float64, sample func(frequency float64) float64) float64 {
	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxValue := 0.0

	for i := 0; i < octaves; i++ {
		total += sample(frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}

	if maxValue == 0 {
		return 0
	}
	return total / maxValue
}

// fade is Perlin's 6t⁵-15t⁴+10t³ interpolant.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad projects the offset vector onto one of 12 gradient directions selected
// by the hash.
func grad(hash int, x, y, z float64) float64 {
	h := hash & 15
	u := x
	if h >= 8 {
		u = y
	}
	v := y
	if h >= 4 {
		if h == 12 || h == 14 {
			v = x
		} else {
			v = z
		}
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -v
	}
	return u + v
}
