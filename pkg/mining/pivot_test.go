package mining

import (
	"reflect"
	"testing"

	"copra/pkg/common"
)

func line(ref, product string) common.OrderLine {
	return common.OrderLine{OrderRef: ref, Product: product, Buyer: "b", Seller: "s", Supplier: "sup"}
}

func TestPivot(t *testing.T) {
	lines := []common.OrderLine{
		line("o1", "bread"),
		line("o1", "milk"),
		line("o2", "bread"),
		line("o2", "diaper"),
		line("o2", "beer"),
		line("o3", "cola"),
	}

	table := Pivot(lines)

	wantColumns := []string{"item_0", "item_1", "item_2"}
	if !reflect.DeepEqual(table.Columns, wantColumns) {
		t.Fatalf("columns = %v, want %v", table.Columns, wantColumns)
	}

	wantRows := [][]string{
		{"bread", "milk", ""},
		{"bread", "diaper", "beer"},
		{"cola", "", ""},
	}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Fatalf("rows = %v, want %v", table.Rows, wantRows)
	}
}

func TestPivotEverySlotFilledOnce(t *testing.T) {
	lines := []common.OrderLine{
		line("a", "p1"),
		line("b", "p2"),
		line("a", "p3"),
		line("c", "p4"),
		line("b", "p5"),
	}

	table := Pivot(lines)

	slots := make(map[string]int)
	for _, row := range table.Rows {
		for _, item := range row {
			if item != "" {
				slots[item]++
			}
		}
	}
	for _, l := range lines {
		if slots[l.Product] != 1 {
			t.Fatalf("product %q fills %d slots, want 1", l.Product, slots[l.Product])
		}
	}
}

func TestTransactions(t *testing.T) {
	lines := []common.OrderLine{
		line("o1", "bread"),
		line("o1", "bread"),
		line("o1", "milk"),
		line("o2", "cola"),
	}

	got := Pivot(lines).Transactions()
	want := [][]string{
		{"bread", "milk"},
		{"cola"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("transactions = %v, want %v", got, want)
	}
}

func TestPivotEmptyInput(t *testing.T) {
	table := Pivot(nil)
	if len(table.Rows) != 0 || len(table.Columns) != 0 {
		t.Fatalf("pivot of no lines = %+v, want empty table", table)
	}
	if got := table.Transactions(); len(got) != 0 {
		t.Fatalf("transactions of empty table = %v, want none", got)
	}
}
