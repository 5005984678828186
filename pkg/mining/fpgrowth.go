package mining

import (
	"slices"
	"sort"

	"copra/pkg/common"
)

// supportEpsilon absorbs float rounding when a ratio of integer counts is
// compared against a configured threshold, so an itemset occurring in
// exactly min_support of the transactions is never dropped by a
// representation artifact.
const supportEpsilon = 1e-9

type fpNode struct {
	item     string
	count    int
	parent   *fpNode
	children map[string]*fpNode
}

type fpTree struct {
	root    *fpNode
	headers map[string][]*fpNode
	counts  map[string]int
}

func newTree() *fpTree {
	return &fpTree{
		root:    &fpNode{children: make(map[string]*fpNode)},
		headers: make(map[string][]*fpNode),
		counts:  make(map[string]int),
	}
}

func (t *fpTree) insert(items []string, count int) {
	node := t.root
	for _, item := range items {
		child, ok := node.children[item]
		if !ok {
			child = &fpNode{
				item:     item,
				parent:   node,
				children: make(map[string]*fpNode),
			}
			node.children[item] = child
			t.headers[item] = append(t.headers[item], child)
		}
		child.count += count
		t.counts[item] += count
		node = child
	}
}

// itemOrder returns the tree's items sorted by ascending total count, ties
// by descending identifier. Mining walks items in this order so each
// conditional tree only contains items more frequent than its suffix.
func (t *fpTree) itemOrder() []string {
	items := make([]string, 0, len(t.counts))
	for item := range t.counts {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if t.counts[items[i]] != t.counts[items[j]] {
			return t.counts[items[i]] < t.counts[items[j]]
		}
		return items[i] > items[j]
	})
	return items
}

// prefixPath collects the items on the path from node's parent up to the
// root, in root-to-leaf order.
func prefixPath(node *fpNode) []string {
	var path []string
	for n := node.parent; n != nil && n.item != ""; n = n.parent {
		path = append(path, n.item)
	}
	slices.Reverse(path)
	return path
}

// meetsThreshold reports whether count out of total meets the min ratio,
// comparing integer counts against min*total with epsilon tolerance.
func meetsThreshold(count, total int, min float64) bool {
	return float64(count)+supportEpsilon >= min*float64(total)
}

// Mine runs FP-growth over the transactions and returns every itemset whose
// support meets minSupport, sorted by descending support with ties by set
// key. Items duplicated within one transaction count once. An empty
// transaction list yields no itemsets.
func Mine(transactions [][]string, minSupport float64) []common.Itemset {
	total := len(transactions)
	if total == 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, tx := range transactions {
		seen := make(map[string]bool, len(tx))
		for _, item := range tx {
			if !seen[item] {
				seen[item] = true
				counts[item]++
			}
		}
	}

	// Frequent single items ordered by descending support, ties by
	// identifier. This ordering fixes the tree shape and makes the output
	// reproducible.
	frequent := make([]string, 0, len(counts))
	for item, count := range counts {
		if meetsThreshold(count, total, minSupport) {
			frequent = append(frequent, item)
		}
	}
	sort.Slice(frequent, func(i, j int) bool {
		if counts[frequent[i]] != counts[frequent[j]] {
			return counts[frequent[i]] > counts[frequent[j]]
		}
		return frequent[i] < frequent[j]
	})
	rank := make(map[string]int, len(frequent))
	for i, item := range frequent {
		rank[item] = i
	}

	tree := newTree()
	for _, tx := range transactions {
		seen := make(map[string]bool, len(tx))
		items := make([]string, 0, len(tx))
		for _, item := range tx {
			if _, ok := rank[item]; ok && !seen[item] {
				seen[item] = true
				items = append(items, item)
			}
		}
		sort.Slice(items, func(i, j int) bool {
			return rank[items[i]] < rank[items[j]]
		})
		tree.insert(items, 1)
	}

	found := make(map[string]int)
	mineTree(tree, nil, total, minSupport, found)

	itemsets := make([]common.Itemset, 0, len(found))
	for key, count := range found {
		itemsets = append(itemsets, common.Itemset{
			Items:   common.SplitSetKey(key),
			Support: float64(count) / float64(total),
		})
	}
	sort.Slice(itemsets, func(i, j int) bool {
		if itemsets[i].Support != itemsets[j].Support {
			return itemsets[i].Support > itemsets[j].Support
		}
		return common.SetKey(itemsets[i].Items) < common.SetKey(itemsets[j].Items)
	})
	return itemsets
}

// mineTree recursively extracts frequent itemsets ending in suffix from the
// tree. Counts in found are absolute transaction counts.
func mineTree(tree *fpTree, suffix []string, total int, minSupport float64, found map[string]int) {
	for _, item := range tree.itemOrder() {
		count := tree.counts[item]
		if !meetsThreshold(count, total, minSupport) {
			continue
		}

		itemset := append(slices.Clone(suffix), item)
		found[common.SetKey(itemset)] = count

		conditional := newTree()
		for _, node := range tree.headers[item] {
			path := prefixPath(node)
			if len(path) > 0 {
				conditional.insert(path, node.count)
			}
		}
		if len(conditional.counts) > 0 {
			mineTree(conditional, itemset, total, minSupport, found)
		}
	}
}

// Rules derives association rules from frequent itemsets. Every non-empty
// proper subset of each itemset of size two or more becomes a candidate
// antecedent; candidates whose confidence meets minConfidence are kept.
// Output is sorted by descending confidence, ties by antecedent key then
// consequent key.
func Rules(itemsets []common.Itemset, minConfidence float64) []common.Rule {
	support := make(map[string]float64, len(itemsets))
	for _, is := range itemsets {
		support[common.SetKey(is.Items)] = is.Support
	}

	var rules []common.Rule
	for _, is := range itemsets {
		if len(is.Items) < 2 {
			continue
		}
		items := slices.Clone(is.Items)
		slices.Sort(items)

		// Every bitmask except all-zeros and all-ones is a proper
		// non-empty subset.
		for mask := 1; mask < (1<<len(items))-1; mask++ {
			antecedent := make([]string, 0, len(items))
			consequent := make([]string, 0, len(items))
			for i, item := range items {
				if mask&(1<<i) != 0 {
					antecedent = append(antecedent, item)
				} else {
					consequent = append(consequent, item)
				}
			}

			// Any subset of a frequent itemset is itself frequent, so the
			// antecedent support is always present.
			base, ok := support[common.SetKey(antecedent)]
			if !ok || base == 0 {
				continue
			}
			confidence := is.Support / base
			if confidence+supportEpsilon < minConfidence {
				continue
			}
			rules = append(rules, common.Rule{
				Antecedent: antecedent,
				Consequent: consequent,
				Confidence: confidence,
			})
		}
	}

	sort.Slice(rules, func(i, j int) bool {
		if rules[i].Confidence != rules[j].Confidence {
			return rules[i].Confidence > rules[j].Confidence
		}
		ki, kj := common.SetKey(rules[i].Antecedent), common.SetKey(rules[j].Antecedent)
		if ki != kj {
			return ki < kj
		}
		return common.SetKey(rules[i].Consequent) < common.SetKey(rules[j].Consequent)
	})
	return rules
}

// MineRules is the full training transform: frequent itemsets at minSupport
// followed by rule derivation at minConfidence.
func MineRules(transactions [][]string, minSupport, minConfidence float64) []common.Rule {
	return Rules(Mine(transactions, minSupport), minConfidence)
}
