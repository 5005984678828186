package common

import (
	"slices"
	"strings"
)

// OrderLine is one purchased product within one order. It is the raw unit
// of history every other structure in the system is derived from: the
// training pipeline pivots order lines into transactions, and the serving
// pipeline reads them back for buyer history and supplier lookups.
type OrderLine struct {
	OrderRef string `json:"order_ref"`
	Product  string `json:"product"`
	Buyer    string `json:"buyer"`
	Seller   string `json:"seller"`
	Supplier string `json:"supplier"`
}

// Itemset is a product set together with the fraction of transactions that
// contain it. Items are kept sorted so two itemsets with the same members
// compare equal through Key.
type Itemset struct {
	Items   []string
	Support float64
}

// Rule is an association rule derived from a frequent itemset. Antecedent
// and consequent are disjoint sorted product sets; confidence is the
// support of their union divided by the support of the antecedent.
type Rule struct {
	Antecedent []string
	Consequent []string
	Confidence float64
}

// Recommendation is the externally visible output unit of the serving
// pipeline, unique per (buyer, product).
type Recommendation struct {
	Buyer    string `json:"buyer"`
	Seller   string `json:"seller"`
	Product  string `json:"product"`
	Supplier string `json:"supplier"`
}

// SetDelimiter separates products inside a serialized product set. Product
// identifiers must not contain it.
const SetDelimiter = "|"

// SetKey returns the canonical form of a product set: members sorted
// lexicographically and joined with SetDelimiter. Equal sets always produce
// equal keys regardless of input order, which makes the key usable both as
// a match index and as the persisted column encoding.
func SetKey(items []string) string {
	sorted := slices.Clone(items)
	slices.Sort(sorted)
	return strings.Join(sorted, SetDelimiter)
}

// SplitSetKey parses a canonical set key back into its members. The empty
// key decodes to an empty set.
func SplitSetKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, SetDelimiter)
}
