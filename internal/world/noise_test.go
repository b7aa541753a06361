package world

import (
	"math"
	"math/rand"
	"testing"
)

// TestHash3Deterministic verifies hash3 produces identical results for same inputs
func TestHash3Deterministic(t *testing.T) {
	var results [100]uint64
	for i := range results {
		results[i] = hash3(10, 20, 30, 42)
	}
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Errorf("hash3 not deterministic: results[0]=%d, results[%d]=%d", results[0], i, results[i])
		}
	}
}

func TestHashDifferentInputs(t *testing.T) {
	seed := int64(42)
	cases := []struct {
		name string
		a, b uint64
	}{
		{"3d x", hash3(1, 0, 0, seed), hash3(2, 0, 0, seed)},
		{"3d y", hash3(0, 1, 0, seed), hash3(0, 2, 0, seed)},
		{"3d z", hash3(0, 0, 1, seed), hash3(0, 0, 2, seed)},
		{"3d seed", hash3(1, 1, 1, 100), hash3(1, 1, 1, 200)},
		{"3d axis swap", hash3(1, 2, 3, seed), hash3(3, 2, 1, seed)},
		{"2d axis swap", hash2(1, 2, seed), hash2(2, 1, seed)},
		{"2d seed", hash2(5, 5, 1), hash2(5, 5, 2)},
	}
	for _, tc := range cases {
		if tc.a == tc.b {
			t.Errorf("%s: expected different hashes, both %d", tc.name, tc.a)
		}
	}
}

// TestValueNoiseRange samples random points and checks the [0,1] contract.
func TestValueNoiseRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for range 2000 {
		x := (rng.Float64() - 0.5) * 10000
		y := (rng.Float64() - 0.5) * 10000
		z := (rng.Float64() - 0.5) * 10000

		if v := valueNoise2D(x, z, 7); v < 0 || v > 1 || math.IsNaN(v) {
			t.Fatalf("valueNoise2D(%v,%v) out of range: %v", x, z, v)
		}
		if v := valueNoise3D(x, y, z, 7); v < 0 || v > 1 || math.IsNaN(v) {
			t.Fatalf("valueNoise3D(%v,%v,%v) out of range: %v", x, y, z, v)
		}
	}
}

// TestValueNoiseLatticeContinuity checks that noise is continuous across
// lattice cell boundaries, including negative coordinates.
func TestValueNoiseLatticeContinuity(t *testing.T) {
	const eps = 1e-9
	for _, x := range []float64{-3, -1, 0, 1, 17} {
		left := valueNoise2D(x-eps, 0.5, 99)
		right := valueNoise2D(x+eps, 0.5, 99)
		if math.Abs(left-right) > 1e-6 {
			t.Errorf("discontinuity at x=%v: %v vs %v", x, left, right)
		}
	}
}

func TestFractalRange(t *testing.T) {
	f := newFractal(3, 1.0/64, 5)
	rng := rand.New(rand.NewSource(12345))
	for range 1000 {
		x := rng.Float64() * 4096
		z := rng.Float64() * 4096
		if v := f.sample2D(x, z); v < 0 || v > 1 {
			t.Fatalf("sample2D out of range: %v", v)
		}
		if v := f.ridged2D(x, z); v < 0 || v > 1 {
			t.Fatalf("ridged2D out of range: %v", v)
		}
		if v := f.sample3D(x, z*0.5, z); v < 0 || v > 1 {
			t.Fatalf("sample3D out of range: %v", v)
		}
	}
}

func TestFractalZeroOctaves(t *testing.T) {
	f := newFractal(3, 1, 0)
	if v := f.sample2D(1.5, 2.5); v != 0 {
		t.Errorf("expected 0 for zero octaves, got %v", v)
	}
	if v := f.ridged2D(1.5, 2.5); v != 0 {
		t.Errorf("expected 0 for zero octaves, got %v", v)
	}
}

func BenchmarkValueNoise3D(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = valueNoise3D(float64(i)*0.37, 12.5, float64(i)*0.11, 42)
	}
}
