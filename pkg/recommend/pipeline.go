package recommend

import "copra/pkg/common"

// DefaultTopN is how many of a buyer's most purchased products seed the
// candidate combinations when no other value is configured.
const DefaultTopN = 5

// MaxTopN bounds the top-N window regardless of configuration. Candidate
// combinations grow as 2^N with the window size, so the window must stay
// small whatever TOP_N says.
const MaxTopN = 10

// DirectoryLimit caps how many buyers a request without an explicit buyer
// scope fans out to, taken in directory order.
const DirectoryLimit = 10

// Dataset is a client's read-only serving state for one request: the order
// history, the rule index, and the buyer/seller directory. It is loaded
// once per request and reused across every buyer in scope; nothing mutates
// it after construction.
type Dataset struct {
	orders    []common.OrderLine
	rules     *RuleIndex
	sellers   map[string]string
	suppliers map[string]string
	directory []string
	topN      int
}

// BuyerSeller is one row of a client's buyer directory.
type BuyerSeller struct {
	Buyer  string
	Seller string
}

// NewDataset assembles the per-request serving state. Directory order is
// preserved for default buyer-scope resolution. The top-N window is clamped
// to [1, MaxTopN].
func NewDataset(orders []common.OrderLine, rules []common.Rule, buyers []BuyerSeller, topN int) *Dataset {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if topN > MaxTopN {
		topN = MaxTopN
	}
	sellers := make(map[string]string, len(buyers))
	directory := make([]string, 0, len(buyers))
	for _, b := range buyers {
		if _, ok := sellers[b.Buyer]; !ok {
			sellers[b.Buyer] = b.Seller
			directory = append(directory, b.Buyer)
		}
	}
	return &Dataset{
		orders:    orders,
		rules:     NewRuleIndex(rules),
		sellers:   sellers,
		suppliers: SupplierIndex(orders),
		directory: directory,
		topN:      topN,
	}
}

// ResolveBuyers returns the buyer scope for a request: the requested buyers
// verbatim when given, otherwise the first DirectoryLimit buyers of the
// directory in directory order.
func (d *Dataset) ResolveBuyers(requested []string) []string {
	if len(requested) > 0 {
		return requested
	}
	if len(d.directory) > DirectoryLimit {
		return d.directory[:DirectoryLimit]
	}
	return d.directory
}

// ForBuyer runs the serving pipeline for a single buyer: top products,
// candidate combinations, rule matching, then assembly against the seller
// and supplier mappings. A buyer unknown to the directory or without
// history yields an empty list.
func (d *Dataset) ForBuyer(buyer string) []common.Recommendation {
	seller, ok := d.sellers[buyer]
	if !ok {
		// Same inner-join semantics as the supplier side: no directory
		// entry, no output rows.
		return []common.Recommendation{}
	}

	top := TopProducts(d.orders, buyer, d.topN)
	products := make([]string, 0, len(top))
	for _, pc := range top {
		products = append(products, pc.Product)
	}

	matched := d.rules.Match(Combinations(products))
	return Assemble(buyer, seller, matched, d.suppliers)
}

// ForBuyers runs the pipeline for each buyer in order and flattens the
// results into one list.
func (d *Dataset) ForBuyers(buyers []string) []common.Recommendation {
	out := make([]common.Recommendation, 0)
	for _, buyer := range buyers {
		out = append(out, d.ForBuyer(buyer)...)
	}
	return out
}
