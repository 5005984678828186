package recommend

import "slices"

// Combinations enumerates every non-empty subset of the given products,
// exactly once each: 2^k - 1 subsets for k distinct products. Duplicates in
// the input collapse before enumeration and each subset comes back sorted,
// so the result is independent of input ordering. Subsets, never
// permutations: the matcher compares sets, so ordered variants of the same
// subset would be redundant keys.
//
// Output size is exponential in k, so callers must keep the input small;
// Dataset does by clamping its top-N window to MaxTopN.
func Combinations(products []string) [][]string {
	seen := make(map[string]bool, len(products))
	distinct := make([]string, 0, len(products))
	for _, p := range products {
		if !seen[p] {
			seen[p] = true
			distinct = append(distinct, p)
		}
	}

	k := len(distinct)
	subsets := make([][]string, 0, (1<<k)-1)
	for mask := 1; mask < 1<<k; mask++ {
		subset := make([]string, 0, k)
		for i := 0; i < k; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, distinct[i])
			}
		}
		slices.Sort(subset)
		subsets = append(subsets, subset)
	}
	return subsets
}
