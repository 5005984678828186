package recommend

import (
	"sort"

	"copra/pkg/common"
)

// ProductCount is one entry of a buyer's ranked purchase profile.
type ProductCount struct {
	Product   string
	Frequency int
}

// TopProducts ranks the buyer's products by purchase frequency and returns
// at most n of them. Ties are broken by the product's first appearance in
// the buyer's row sequence, which keeps the ranking stable across runs. A
// buyer with no rows gets an empty profile, not an error.
func TopProducts(lines []common.OrderLine, buyer string, n int) []ProductCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := make([]string, 0)

	for i, line := range lines {
		if line.Buyer != buyer {
			continue
		}
		if _, ok := counts[line.Product]; !ok {
			firstSeen[line.Product] = i
			order = append(order, line.Product)
		}
		counts[line.Product]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})

	if n < len(order) {
		order = order[:n]
	}
	top := make([]ProductCount, 0, len(order))
	for _, product := range order {
		top = append(top, ProductCount{Product: product, Frequency: counts[product]})
	}
	return top
}
