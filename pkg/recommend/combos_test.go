package recommend

import (
	"testing"

	"copra/pkg/common"
)

func TestCombinationsCount(t *testing.T) {
	tests := []struct {
		name     string
		products []string
		want     int
	}{
		{"Empty", nil, 0},
		{"Single", []string{"A"}, 1},
		{"Pair", []string{"A", "B"}, 3},
		{"Triple", []string{"A", "B", "C"}, 7},
		{"Five", []string{"A", "B", "C", "D", "E"}, 31},
		{"DuplicatesCollapse", []string{"A", "A", "B"}, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Combinations(tc.products)
			if len(got) != tc.want {
				t.Fatalf("len(Combinations(%v)) = %d, want %d", tc.products, len(got), tc.want)
			}
			seen := make(map[string]bool, len(got))
			for _, subset := range got {
				if len(subset) == 0 {
					t.Fatal("empty subset emitted")
				}
				key := common.SetKey(subset)
				if seen[key] {
					t.Fatalf("duplicate subset %v", subset)
				}
				seen[key] = true
			}
		})
	}
}

func TestCombinationsOrderInsensitive(t *testing.T) {
	forward := Combinations([]string{"A", "B", "C"})
	backward := Combinations([]string{"C", "B", "A"})

	keys := func(subsets [][]string) map[string]bool {
		m := make(map[string]bool, len(subsets))
		for _, s := range subsets {
			m[common.SetKey(s)] = true
		}
		return m
	}

	fk, bk := keys(forward), keys(backward)
	if len(fk) != len(bk) {
		t.Fatalf("subset sets differ in size: %d vs %d", len(fk), len(bk))
	}
	for key := range fk {
		if !bk[key] {
			t.Fatalf("subset %q missing from reversed-input enumeration", key)
		}
	}
}
