// internal/puzzle/partition.go
//
// Random bounded partitions of an integer total.
// The solvable builder segments one target string twice — once for tile tops,
// once for tile bottoms — and each segmentation is a partition produced here.

package puzzle

import "sort"

// partitionAttempts bounds the cut-point retries for one partition request.
const partitionAttempts = 100

// randomPartition splits total into count positive parts, each within
// [minLen,maxLen], by drawing count-1 distinct cut points and taking
// consecutive differences. Returns ok=false when the bounds make a partition
// impossible or no attempt lands every part in range; callers fall back to a
// hand-built partition in that case.
func randomPartition(rng *RNG, total, count, minLen, maxLen int) ([]int, bool) {
	if count <= 0 || total < count*minLen || total > count*maxLen {
		return nil, false
	}
	if count == 1 {
		return []int{total}, true
	}

	for attempt := 0; attempt < partitionAttempts; attempt++ {
		cuts := drawDistinctCuts(rng, total, count-1)
		if cuts == nil {
			continue
		}

		parts := make([]int, count)
		prev := 0
		okLengths := true
		for i, cut := range append(cuts, total) {
			length := cut - prev
			if length < minLen || length > maxLen {
				okLengths = false
				break
			}
			parts[i] = length
			prev = cut
		}
		if okLengths {
			return parts, true
		}
	}
	return nil, false
}

// drawDistinctCuts draws n distinct cut points in (0,total), sorted ascending.
// Collisions are re-drawn; a generous cap keeps the tightest feasible inputs
// (where every interior point must be a cut) from spinning.
func drawDistinctCuts(rng *RNG, total, n int) []int {
	seen := make(map[int]struct{}, n)
	cuts := make([]int, 0, n)
	for draws := 0; len(cuts) < n; draws++ {
		if draws >= partitionAttempts {
			return nil
		}
		c := 1 + rng.Intn(total-1)
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		cuts = append(cuts, c)
	}
	sort.Ints(cuts)
	return cuts
}
