package ledger

import "math"

// Round2 rounds a currency amount to two decimal places. All response
// amounts pass through here; internal sums stay unrounded.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// EqualShares builds one split per member, each carrying the same rounded
// share of the amount. The rounded shares may sum to up to len(memberIDs)
// cents away from the amount; nobody absorbs the remainder. 100.00 over
// three members yields 33.33 each, 99.99 in total.
func EqualShares(expenseID string, amount float64, memberIDs []string) []Split {
	share := Round2(amount / float64(len(memberIDs)))

	splits := make([]Split, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		splits = append(splits, Split{
			ExpenseID:   expenseID,
			UserID:      memberID,
			ShareAmount: share,
		})
	}
	return splits
}
