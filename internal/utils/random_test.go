package utils

import (
	"math"
	"testing"
)

func TestRandom_SameSeedSameSequence(t *testing.T) {
	r1 := NewRandom(42)
	r2 := NewRandom(42)

	for i := 0; i < 100; i++ {
		if a, b := r1.IntN(1000), r2.IntN(1000); a != b {
			t.Fatalf("Sequences diverged at draw %d: %d vs %d", i, a, b)
		}
	}
}

func TestRandom_ZeroSeedIsRandom(t *testing.T) {
	r := NewRandom(0)
	if r.Seed() == 0 {
		t.Error("Expected a nonzero generated seed for seed 0")
	}
}

func TestRandom_SubSourceStable(t *testing.T) {
	root := NewRandom(42)

	// Draining the root must not affect a keyed sub-source.
	for i := 0; i < 57; i++ {
		root.IntN(100)
	}
	a := root.SubSource("u1|3|groceries_expense")

	root2 := NewRandom(42)
	b := root2.SubSource("u1|3|groceries_expense")

	for i := 0; i < 50; i++ {
		if x, y := a.IntN(10000), b.IntN(10000); x != y {
			t.Fatalf("Sub-source streams diverged at draw %d: %d vs %d", i, x, y)
		}
	}
}

func TestRandom_SubSourceDistinctKeys(t *testing.T) {
	root := NewRandom(42)
	a := root.SubSource("u1|1|food_expense")
	b := root.SubSource("u1|2|food_expense")

	same := true
	for i := 0; i < 20; i++ {
		if a.IntN(1000000) != b.IntN(1000000) {
			same = false
			break
		}
	}
	if same {
		t.Error("Different keys produced identical streams")
	}
}

func TestRandom_IntRange(t *testing.T) {
	r := NewRandom(1)
	for i := 0; i < 1000; i++ {
		v := r.IntRange(5, 10)
		if v < 5 || v > 10 {
			t.Fatalf("IntRange(5, 10) returned %d", v)
		}
	}

	if v := r.IntRange(7, 7); v != 7 {
		t.Errorf("IntRange(7, 7) = %d, want 7", v)
	}
	if v := r.IntRange(9, 3); v != 9 {
		t.Errorf("IntRange(9, 3) = %d, want min", v)
	}
}

func TestRandom_Probability(t *testing.T) {
	r := NewRandom(1)
	if r.Probability(0) {
		t.Error("Probability(0) returned true")
	}
	if !r.Probability(1) {
		t.Error("Probability(1) returned false")
	}

	hits := 0
	for i := 0; i < 10000; i++ {
		if r.Probability(0.3) {
			hits++
		}
	}
	if hits < 2700 || hits > 3300 {
		t.Errorf("Probability(0.3) hit rate %d/10000, expected roughly 3000", hits)
	}
}

func TestRandom_WeightedPickFloat(t *testing.T) {
	r := NewRandom(7)

	t.Run("RespectsZeroWeights", func(t *testing.T) {
		weights := []float64{0, 1, 0}
		for i := 0; i < 100; i++ {
			if idx := r.WeightedPickFloat(weights); idx != 1 {
				t.Fatalf("Picked index %d with zero weight", idx)
			}
		}
	})

	t.Run("EmptyReturnsNegative", func(t *testing.T) {
		if idx := r.WeightedPickFloat(nil); idx != -1 {
			t.Errorf("Expected -1 for empty weights, got %d", idx)
		}
	})

	t.Run("ZeroTotalFallsBackUniform", func(t *testing.T) {
		weights := []float64{0, 0, 0}
		seen := make(map[int]bool)
		for i := 0; i < 200; i++ {
			idx := r.WeightedPickFloat(weights)
			if idx < 0 || idx > 2 {
				t.Fatalf("Out of range index %d", idx)
			}
			seen[idx] = true
		}
		if len(seen) < 2 {
			t.Error("Uniform fallback never varied")
		}
	})

	t.Run("FollowsWeights", func(t *testing.T) {
		weights := []float64{0.9, 0.1}
		first := 0
		for i := 0; i < 10000; i++ {
			if r.WeightedPickFloat(weights) == 0 {
				first++
			}
		}
		if first < 8700 || first > 9300 {
			t.Errorf("Heavy weight picked %d/10000, expected roughly 9000", first)
		}
	})
}

func TestRandom_GammaFloat64(t *testing.T) {
	r := NewRandom(3)

	for _, alpha := range []float64{0.5, 1.0, 2.0, 5.0} {
		sum := 0.0
		n := 20000
		for i := 0; i < n; i++ {
			v := r.GammaFloat64(alpha)
			if v < 0 {
				t.Fatalf("Gamma(%v) produced negative value %v", alpha, v)
			}
			sum += v
		}
		mean := sum / float64(n)
		// Gamma(alpha, 1) has mean alpha.
		if math.Abs(mean-alpha) > 0.1*alpha+0.05 {
			t.Errorf("Gamma(%v) sample mean %v, expected about %v", alpha, mean, alpha)
		}
	}

	if v := r.GammaFloat64(0); v != 0 {
		t.Errorf("Gamma(0) = %v, want 0", v)
	}
}

func TestRandom_Dirichlet(t *testing.T) {
	r := NewRandom(9)

	for _, n := range []int{1, 2, 5, 20} {
		props := r.Dirichlet(2.0, n)
		if len(props) != n {
			t.Fatalf("Dirichlet returned %d proportions, want %d", len(props), n)
		}
		sum := 0.0
		for _, p := range props {
			if p < 0 {
				t.Fatalf("Negative proportion %v", p)
			}
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("Proportions for n=%d sum to %v, want 1", n, sum)
		}
	}

	if props := r.Dirichlet(1.0, 0); props != nil {
		t.Error("Expected nil for n=0")
	}
}

func TestRandom_Fork(t *testing.T) {
	a := NewRandom(5)
	b := NewRandom(5)

	fa := a.Fork()
	fb := b.Fork()

	for i := 0; i < 20; i++ {
		if fa.IntN(1000) != fb.IntN(1000) {
			t.Fatal("Forks of identical parents diverged")
		}
	}
}
