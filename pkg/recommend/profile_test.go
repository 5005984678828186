package recommend

import (
	"reflect"
	"testing"

	"copra/pkg/common"
)

func buyerLine(buyer, product string) common.OrderLine {
	return common.OrderLine{OrderRef: "o", Product: product, Buyer: buyer, Seller: "s", Supplier: "sup"}
}

func TestTopProducts(t *testing.T) {
	tests := []struct {
		name  string
		lines []common.OrderLine
		buyer string
		n     int
		want  []ProductCount
	}{
		{
			name: "TieBrokenByFirstOccurrence",
			lines: []common.OrderLine{
				buyerLine("b1", "A"),
				buyerLine("b1", "A"),
				buyerLine("b1", "B"),
				buyerLine("b1", "C"),
			},
			buyer: "b1",
			n:     2,
			want: []ProductCount{
				{Product: "A", Frequency: 2},
				{Product: "B", Frequency: 1},
			},
		},
		{
			name: "FrequencyBeatsPosition",
			lines: []common.OrderLine{
				buyerLine("b1", "X"),
				buyerLine("b1", "Y"),
				buyerLine("b1", "Y"),
				buyerLine("b1", "Y"),
				buyerLine("b1", "Z"),
				buyerLine("b1", "Z"),
			},
			buyer: "b1",
			n:     3,
			want: []ProductCount{
				{Product: "Y", Frequency: 3},
				{Product: "Z", Frequency: 2},
				{Product: "X", Frequency: 1},
			},
		},
		{
			name: "OtherBuyersFilteredOut",
			lines: []common.OrderLine{
				buyerLine("b2", "A"),
				buyerLine("b1", "B"),
				buyerLine("b2", "A"),
			},
			buyer: "b1",
			n:     5,
			want:  []ProductCount{{Product: "B", Frequency: 1}},
		},
		{
			name:  "UnknownBuyerEmpty",
			lines: []common.OrderLine{buyerLine("b1", "A")},
			buyer: "nobody",
			n:     5,
			want:  []ProductCount{},
		},
		{
			name: "NLargerThanProfile",
			lines: []common.OrderLine{
				buyerLine("b1", "A"),
				buyerLine("b1", "B"),
			},
			buyer: "b1",
			n:     10,
			want: []ProductCount{
				{Product: "A", Frequency: 1},
				{Product: "B", Frequency: 1},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TopProducts(tc.lines, tc.buyer, tc.n)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("TopProducts(%q, %d) = %v, want %v", tc.buyer, tc.n, got, tc.want)
			}
		})
	}
}
