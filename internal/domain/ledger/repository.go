package ledger

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateExpense(ctx context.Context, expense *Expense) error
	CreateSplits(ctx context.Context, splits []Split) error
	ListExpenses(ctx context.Context, tripID string) ([]ExpenseRecord, error)
	GetSplitMembersByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]MemberRef, error)
	ListSplitRows(ctx context.Context, tripID string) ([]SplitRow, error)
	ListTripMembers(ctx context.Context, tripID string) ([]MemberRow, error)
	GetTripName(ctx context.Context, tripID string) (string, error)
	CountTripMembersByIDs(ctx context.Context, tripID string, userIDs []string) (int64, error)
}
