package noise

import (
	"math"
	"testing"
)

func TestNoiseRangeAndDeterminism(t *testing.T) {
	a, b := New(DefaultSeed), New(DefaultSeed)
	for i := 0; i < 50; i++ {
		for j := 0; j < 50; j++ {
			x, y := float64(i)*0.37-4, float64(j)*0.29-3
			v := a.At(x, y)
			if v < 0 || v > 1 {
				t.Fatalf("At(%v, %v) = %v, outside [0,1]", x, y, v)
			}
			if w := b.At(x, y); w != v {
				t.Fatalf("At(%v, %v) differs between tables: %v vs %v", x, y, v, w)
			}
		}
	}
}

func TestNoiseLatticeIsMidpoint(t *testing.T) {
	// gradients vanish on integer lattice points
	for _, p := range [][2]float64{{0, 0}, {3, 5}, {-2, 7}} {
		if got := At(p[0], p[1]); got != 0.5 {
			t.Errorf("At(%v, %v) = %v, want 0.5", p[0], p[1], got)
		}
	}
}

func TestPermutationIsShuffle(t *testing.T) {
	n := New(DefaultSeed)
	seen := make(map[int]bool)
	identity := true
	for i := 0; i < 256; i++ {
		seen[n.perm[i]] = true
		if n.perm[i] != i {
			identity = false
		}
		if n.perm[i] != n.perm[i+256] {
			t.Fatalf("perm[%d] != perm[%d]", i, i+256)
		}
	}
	if len(seen) != 256 {
		t.Errorf("expected 256 distinct entries, got %d", len(seen))
	}
	if identity {
		t.Error("permutation was not shuffled")
	}
}

func TestNoiseKnownValues(t *testing.T) {
	n := New(DefaultSeed)
	tests := []struct {
		x, y float64
		want float64
	}{
		{0.57, 0.39, 0.5746183574},
		{3.9, 3.0, 0.553424},
		{1.3, 2.7, 0.34446343952},
	}
	for _, tt := range tests {
		if got := n.At(tt.x, tt.y); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("At(%v, %v) = %.10f, want %.10f", tt.x, tt.y, got, tt.want)
		}
	}
}
