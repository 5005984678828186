package recommend

import "copra/pkg/common"

// RuleIndex holds a client's rules keyed by canonical antecedent set for
// exact-match lookup. Built once per dataset and shared read-only across
// buyers within a request.
type RuleIndex struct {
	byAntecedent map[string][]common.Rule
}

// NewRuleIndex indexes rules by their antecedent key.
func NewRuleIndex(rules []common.Rule) *RuleIndex {
	idx := &RuleIndex{byAntecedent: make(map[string][]common.Rule, len(rules))}
	for _, r := range rules {
		key := common.SetKey(r.Antecedent)
		idx.byAntecedent[key] = append(idx.byAntecedent[key], r)
	}
	return idx
}

// Match looks up rules whose antecedent equals one of the candidate subsets
// and returns the union of their consequent products. Each product appears
// once, in first-match order; a consequent with several products
// contributes each of them independently. No candidate matching any rule is
// a valid empty result.
func (idx *RuleIndex) Match(candidates [][]string) []string {
	seen := make(map[string]bool)
	var products []string
	for _, candidate := range candidates {
		for _, rule := range idx.byAntecedent[common.SetKey(candidate)] {
			for _, product := range rule.Consequent {
				if !seen[product] {
					seen[product] = true
					products = append(products, product)
				}
			}
		}
	}
	return products
}
