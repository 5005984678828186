package mining

import (
	"strconv"

	"copra/pkg/common"
)

// PivotTable is the fixed-width view of a client's orders: one row per
// order reference, one positional column per item slot. Rows shorter than
// the widest order are padded with the empty marker.
type PivotTable struct {
	Columns []string
	Rows    [][]string
}

// emptyItem pads pivot rows for orders shorter than the widest order. The
// empty string cannot collide with a real product identifier, unlike the
// literal "0" some upstream systems use.
const emptyItem = ""

// Pivot groups order lines by order reference into a padded pivot table.
// Group order follows the first appearance of each order reference and row
// order within a group follows the input, so every product lands in exactly
// one slot of exactly one row.
func Pivot(lines []common.OrderLine) *PivotTable {
	groups := make(map[string][]string)
	refs := make([]string, 0)
	width := 0

	for _, line := range lines {
		if _, ok := groups[line.OrderRef]; !ok {
			refs = append(refs, line.OrderRef)
		}
		groups[line.OrderRef] = append(groups[line.OrderRef], line.Product)
		if len(groups[line.OrderRef]) > width {
			width = len(groups[line.OrderRef])
		}
	}

	columns := make([]string, width)
	for i := range columns {
		columns[i] = itemColumn(i)
	}

	rows := make([][]string, 0, len(refs))
	for _, ref := range refs {
		row := make([]string, width)
		for i := range row {
			row[i] = emptyItem
		}
		copy(row, groups[ref])
		rows = append(rows, row)
	}

	return &PivotTable{
		Columns: columns,
		Rows:    rows,
	}
}

// Transactions strips the padding and collapses duplicate products within
// each row, yielding the variable-length item lists the miner consumes.
func (t *PivotTable) Transactions() [][]string {
	transactions := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		seen := make(map[string]bool, len(row))
		items := make([]string, 0, len(row))
		for _, item := range row {
			if item == emptyItem || seen[item] {
				continue
			}
			seen[item] = true
			items = append(items, item)
		}
		transactions = append(transactions, items)
	}
	return transactions
}

func itemColumn(i int) string {
	return "item_" + strconv.Itoa(i)
}
