package recommend

import "copra/pkg/common"

// SupplierIndex maps each product to its supplier as derived from a
// client's order lines. When the history disagrees on a product's supplier
// the first-seen one wins.
func SupplierIndex(lines []common.OrderLine) map[string]string {
	suppliers := make(map[string]string)
	for _, line := range lines {
		if _, ok := suppliers[line.Product]; !ok && line.Supplier != "" {
			suppliers[line.Product] = line.Supplier
		}
	}
	return suppliers
}

// Assemble joins matched candidate products with the buyer's seller and the
// client's product/supplier mapping. The join is inner: a product with no
// resolvable supplier is dropped. Output is deduplicated by (buyer,
// product) and empty input yields an empty, non-nil list.
func Assemble(buyer, seller string, products []string, suppliers map[string]string) []common.Recommendation {
	out := make([]common.Recommendation, 0, len(products))
	seen := make(map[string]bool, len(products))
	for _, product := range products {
		if seen[product] {
			continue
		}
		seen[product] = true
		supplier, ok := suppliers[product]
		if !ok {
			continue
		}
		out = append(out, common.Recommendation{
			Buyer:    buyer,
			Seller:   seller,
			Product:  product,
			Supplier: supplier,
		})
	}
	return out
}
