package puzzle

import "testing"

// TestRandomPartitionRespectsBounds ensures every part lands in range and the
// parts sum back to the requested total.
func TestRandomPartitionRespectsBounds(t *testing.T) {
	tcs := []struct {
		name   string
		total  int
		count  int
		minLen int
		maxLen int
	}{
		{name: "loose bounds", total: 12, count: 4, minLen: 1, maxLen: 12},
		{name: "tight bounds", total: 12, count: 4, minLen: 2, maxLen: 4},
		{name: "single part", total: 7, count: 1, minLen: 1, maxLen: 10},
		{name: "many small parts", total: 20, count: 10, minLen: 1, maxLen: 4},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rng := NewRNG(HashSeed(tc.name))
			parts, ok := randomPartition(rng, tc.total, tc.count, tc.minLen, tc.maxLen)
			if !ok {
				t.Fatalf("randomPartition failed on feasible input %+v", tc)
			}
			if len(parts) != tc.count {
				t.Fatalf("got %d parts, want %d", len(parts), tc.count)
			}
			sum := 0
			for _, p := range parts {
				if p < tc.minLen || p > tc.maxLen {
					t.Fatalf("part %d outside [%d,%d]", p, tc.minLen, tc.maxLen)
				}
				sum += p
			}
			if sum != tc.total {
				t.Fatalf("parts sum to %d, want %d", sum, tc.total)
			}
		})
	}
}

// TestRandomPartitionRejectsInfeasible ensures impossible bounds fail fast.
func TestRandomPartitionRejectsInfeasible(t *testing.T) {
	rng := NewRNG(HashSeed("infeasible"))

	if _, ok := randomPartition(rng, 5, 3, 2, 4); ok {
		t.Fatal("accepted a total below count*minLen")
	}
	if _, ok := randomPartition(rng, 20, 3, 2, 4); ok {
		t.Fatal("accepted a total above count*maxLen")
	}
	if _, ok := randomPartition(rng, 10, 0, 1, 4); ok {
		t.Fatal("accepted a zero count")
	}
}

// TestRandomPartitionExactFit ensures the forced all-interior-cuts case works:
// when total == count, every part must be exactly 1.
func TestRandomPartitionExactFit(t *testing.T) {
	rng := NewRNG(HashSeed("exact"))
	parts, ok := randomPartition(rng, 6, 6, 1, 1)
	if !ok {
		t.Fatal("randomPartition failed on the unique feasible partition")
	}
	for i, p := range parts {
		if p != 1 {
			t.Fatalf("part %d = %d, want 1", i, p)
		}
	}
}

// TestRandomPartitionIsDeterministic ensures one state yields one partition.
func TestRandomPartitionIsDeterministic(t *testing.T) {
	a, okA := randomPartition(NewRNG(HashSeed("det")), 15, 5, 1, 6)
	b, okB := randomPartition(NewRNG(HashSeed("det")), 15, 5, 1, 6)
	if okA != okB {
		t.Fatalf("determinism broke on ok: %v vs %v", okA, okB)
	}
	if len(a) != len(b) {
		t.Fatalf("determinism broke on length: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("partitions diverged at %d: %v vs %v", i, a, b)
		}
	}
}
