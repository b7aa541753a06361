package world

import (
	"math"
)

// Deterministic value noise over an integer lattice. Every sample is a pure
// function of its coordinates and seed, so regenerated chunks match bit for bit.

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// splitmix finalizes a 64-bit state into a well-mixed hash.
func splitmix(v uint64) uint64 {
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

func hash2(x, z, seed int64) uint64 {
	return splitmix(uint64(x)*0x9E3779B97F4A7C15 + uint64(z)*0x6C62272E07BB0142 + uint64(seed))
}

func hash3(x, y, z, seed int64) uint64 {
	return splitmix(uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed))
}

// unit maps a hash to [0,1].
func unit(h uint64) float64 {
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

func valueNoise2D(x, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	z0 := math.Floor(z)
	ix, iz := int64(x0), int64(z0)

	fx := fade(x - x0)
	fz := fade(z - z0)

	v00 := unit(hash2(ix, iz, seed))
	v10 := unit(hash2(ix+1, iz, seed))
	v01 := unit(hash2(ix, iz+1, seed))
	v11 := unit(hash2(ix+1, iz+1, seed))

	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fz)
}

func valueNoise3D(x, y, z float64, seed int64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	fx := fade(x - x0)
	fy := fade(y - y0)
	fz := fade(z - z0)

	v000 := unit(hash3(ix, iy, iz, seed))
	v100 := unit(hash3(ix+1, iy, iz, seed))
	v010 := unit(hash3(ix, iy+1, iz, seed))
	v110 := unit(hash3(ix+1, iy+1, iz, seed))
	v001 := unit(hash3(ix, iy, iz+1, seed))
	v101 := unit(hash3(ix+1, iy, iz+1, seed))
	v011 := unit(hash3(ix, iy+1, iz+1, seed))
	v111 := unit(hash3(ix+1, iy+1, iz+1, seed))

	i0 := lerp(lerp(v000, v100, fx), lerp(v010, v110, fx), fy)
	i1 := lerp(lerp(v001, v101, fx), lerp(v011, v111, fx), fy)
	return lerp(i0, i1, fz)
}

// octaveSeed derives the per-octave seed.
func octaveSeed(seed int64, i int) int64 {
	return seed + int64(i*131)
}

// fractal describes one fBm noise layer. Samples are normalized to [0,1].
type fractal struct {
	seed        int64
	frequency   float64
	octaves     int
	persistence float64
	lacunarity  float64
}

func newFractal(seed int64, frequency float64, octaves int) fractal {
	return fractal{
		seed:        seed,
		frequency:   frequency,
		octaves:     octaves,
		persistence: 0.5,
		lacunarity:  2.0,
	}
}

func (f fractal) sample2D(x, z float64) float64 {
	amplitude := 1.0
	frequency := f.frequency
	sum := 0.0
	norm := 0.0
	for i := range f.octaves {
		sum += valueNoise2D(x*frequency, z*frequency, octaveSeed(f.seed, i)) * amplitude
		norm += amplitude
		amplitude *= f.persistence
		frequency *= f.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

func (f fractal) sample3D(x, y, z float64) float64 {
	amplitude := 1.0
	frequency := f.frequency
	sum := 0.0
	norm := 0.0
	for i := range f.octaves {
		sum += valueNoise3D(x*frequency, y*frequency, z*frequency, octaveSeed(f.seed, i)) * amplitude
		norm += amplitude
		amplitude *= f.persistence
		frequency *= f.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return sum / norm
}

// ridged2D is a ridged multifractal in [0,1]: each octave folds the signal
// around its midpoint so crests form sharp continuous ridges, and is weighted
// by the previous octave so detail concentrates on the ridges.
func (f fractal) ridged2D(x, z float64) float64 {
	amplitude := 1.0
	frequency := f.frequency
	weight := 1.0
	sum := 0.0
	norm := 0.0
	for i := range f.octaves {
		n := valueNoise2D(x*frequency, z*frequency, octaveSeed(f.seed, i))
		r := 1 - math.Abs(n*2-1)
		r *= r
		r *= weight
		weight = clamp01(r * 2)
		sum += r * amplitude
		norm += amplitude
		amplitude *= f.persistence
		frequency *= f.lacunarity
	}
	if norm == 0 {
		return 0
	}
	return clamp01(sum / norm)
}
