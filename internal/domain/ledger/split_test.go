package ledger

import (
	"math"
	"testing"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{33.333333, 33.33},
		{33.335, 33.34},
		{0, 0},
		{99.999, 100},
		{10.005, 10.01},
	}

	for _, c := range cases {
		if got := Round2(c.in); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestEqualShares(t *testing.T) {
	cases := []struct {
		name      string
		amount    float64
		members   []string
		wantShare float64
	}{
		{"even division", 300, []string{"a", "b", "c"}, 100},
		{"two members", 100, []string{"a", "b"}, 50},
		{"single member", 42.37, []string{"a"}, 42.37},
		{"repeating decimal", 100, []string{"a", "b", "c"}, 33.33},
		{"cent remainder", 0.05, []string{"a", "b", "c"}, 0.02},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			splits := EqualShares("e1", c.amount, c.members)

			if len(splits) != len(c.members) {
				t.Fatalf("got %d splits, want %d", len(splits), len(c.members))
			}
			for i, split := range splits {
				if split.ExpenseID != "e1" {
					t.Errorf("split %d expense id = %q", i, split.ExpenseID)
				}
				if split.UserID != c.members[i] {
					t.Errorf("split %d user = %q, want %q", i, split.UserID, c.members[i])
				}
				if split.ShareAmount != c.wantShare {
					t.Errorf("split %d share = %v, want %v", i, split.ShareAmount, c.wantShare)
				}
			}

			var sum float64
			for _, split := range splits {
				sum += split.ShareAmount
			}
			tolerance := float64(len(c.members)) * 0.01
			if math.Abs(sum-c.amount) > tolerance {
				t.Errorf("share sum %v deviates from %v by more than %v", sum, c.amount, tolerance)
			}
		})
	}
}

// 100 split three ways stays at 99.99: the lost cent is inherited
// behavior, not reconciled.
func TestEqualSharesRoundingGap(t *testing.T) {
	splits := EqualShares("e1", 100, []string{"a", "b", "c"})

	var sum float64
	for _, split := range splits {
		if split.ShareAmount != 33.33 {
			t.Fatalf("share = %v, want 33.33", split.ShareAmount)
		}
		sum += split.ShareAmount
	}
	if Round2(sum) != 99.99 {
		t.Errorf("sum = %v, want 99.99", Round2(sum))
	}
}
