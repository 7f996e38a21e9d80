package ledger

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddExpense records an expense and its equal splits as one unit. Either
// the expense row and every split row are written, or nothing is.
func (s *Service) AddExpense(ctx context.Context, input CreateExpenseInput) (*Expense, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	memberIDs := normalizeMemberIDs(input.MemberIDs)
	if len(memberIDs) == 0 {
		return nil, ErrEmptyMemberSelection
	}

	expense := Expense{
		ID:          uuid.NewString(),
		TripID:      input.TripID,
		PaidBy:      input.PaidBy,
		Amount:      Round2(input.Amount),
		Description: strings.TrimSpace(input.Description),
		ImageURL:    input.ImageURL,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetTripName(ctx, input.TripID); err != nil {
			return err
		}

		participants := memberIDs
		if !contains(participants, input.PaidBy) {
			participants = append(append([]string{}, memberIDs...), input.PaidBy)
		}
		count, err := tx.CountTripMembersByIDs(ctx, input.TripID, participants)
		if err != nil {
			return err
		}
		if count != int64(len(participants)) {
			return ErrMemberNotInTrip
		}

		if err := tx.CreateExpense(ctx, &expense); err != nil {
			return err
		}
		return tx.CreateSplits(ctx, EqualShares(expense.ID, expense.Amount, memberIDs))
	})
	if err != nil {
		return nil, err
	}

	return &expense, nil
}

// ListExpenses returns the trip's expenses newest-first, each with the
// payer name and participant list attached.
func (s *Service) ListExpenses(ctx context.Context, tripID string) ([]ExpenseRecord, error) {
	if _, err := s.repo.GetTripName(ctx, tripID); err != nil {
		return nil, err
	}

	records, err := s.repo.ListExpenses(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return []ExpenseRecord{}, nil
	}

	expenseIDs := make([]string, 0, len(records))
	for _, record := range records {
		expenseIDs = append(expenseIDs, record.ID)
	}

	membersByExpense, err := s.repo.GetSplitMembersByExpenseIDs(ctx, expenseIDs)
	if err != nil {
		return nil, err
	}

	for i := range records {
		records[i].Members = membersByExpense[records[i].ID]
	}
	return records, nil
}

// Balances aggregates every trip member's paid and owed totals.
// A member with no activity still appears, with zeroes: membership alone
// puts them on the balance sheet.
func (s *Service) Balances(ctx context.Context, tripID string) (*TripBalances, error) {
	tripName, err := s.repo.GetTripName(ctx, tripID)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ListTripMembers(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return nil, ErrTripNotFound
	}

	records, err := s.repo.ListExpenses(ctx, tripID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListSplitRows(ctx, tripID)
	if err != nil {
		return nil, err
	}

	paid := make(map[string]float64)
	share := make(map[string]float64)
	for _, record := range records {
		paid[record.PaidBy] += record.Amount
	}
	for _, row := range rows {
		share[row.UserID] += row.ShareAmount
	}

	balances := make([]MemberBalance, 0, len(members))
	for _, member := range members {
		totalPaid := paid[member.ID]
		totalShare := share[member.ID]
		balances = append(balances, MemberBalance{
			UserID:     member.ID,
			Name:       member.Name,
			TotalPaid:  Round2(totalPaid),
			TotalShare: Round2(totalShare),
			Balance:    Round2(totalShare - totalPaid),
		})
	}

	sort.Slice(balances, func(i, j int) bool {
		return balances[i].UserID < balances[j].UserID
	})

	return &TripBalances{TripName: tripName, Balances: balances}, nil
}

// Summary is the debtor view: for each member owing on at least one
// expense, the amounts they owe grouped by payer. Shares on a member's own
// expenses are not debts and are skipped.
func (s *Service) Summary(ctx context.Context, tripID string) (map[string][]DebtEntry, error) {
	if _, err := s.repo.GetTripName(ctx, tripID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListSplitRows(ctx, tripID)
	if err != nil {
		return nil, err
	}

	owed := make(map[string]map[string]float64)
	for _, row := range rows {
		if row.UserID == row.PaidBy {
			continue
		}
		if owed[row.UserID] == nil {
			owed[row.UserID] = make(map[string]float64)
		}
		owed[row.UserID][row.PaidBy] += row.ShareAmount
	}

	summary := make(map[string][]DebtEntry, len(owed))
	for ower, byPayer := range owed {
		entries := make([]DebtEntry, 0, len(byPayer))
		for payer, amount := range byPayer {
			entries = append(entries, DebtEntry{OwesTo: payer, Amount: Round2(amount)})
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].OwesTo < entries[j].OwesTo
		})
		summary[ower] = entries
	}
	return summary, nil
}

// Payees is the creditor view: members who paid for expenses, with how
// much of that spend other members owe back to them. Members with no paid
// expenses are absent rather than zero-valued.
func (s *Service) Payees(ctx context.Context, tripID string) ([]PayeeSummary, error) {
	if _, err := s.repo.GetTripName(ctx, tripID); err != nil {
		return nil, err
	}

	members, err := s.repo.ListTripMembers(ctx, tripID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(members))
	for _, member := range members {
		names[member.ID] = member.Name
	}

	records, err := s.repo.ListExpenses(ctx, tripID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListSplitRows(ctx, tripID)
	if err != nil {
		return nil, err
	}

	totalPaid := make(map[string]float64)
	owedTo := make(map[string]float64)
	for _, record := range records {
		totalPaid[record.PaidBy] += record.Amount
	}
	for _, row := range rows {
		if row.UserID != row.PaidBy {
			owedTo[row.PaidBy] += row.ShareAmount
		}
	}

	payees := make([]PayeeSummary, 0, len(totalPaid))
	for payerID, amount := range totalPaid {
		if amount <= 0 {
			continue
		}
		payees = append(payees, PayeeSummary{
			UserID:    payerID,
			Name:      names[payerID],
			TotalPaid: Round2(amount),
			OwedTo:    Round2(owedTo[payerID]),
		})
	}

	sort.Slice(payees, func(i, j int) bool {
		return payees[i].UserID < payees[j].UserID
	})
	return payees, nil
}

func normalizeMemberIDs(memberIDs []string) []string {
	seen := make(map[string]struct{}, len(memberIDs))
	result := make([]string, 0, len(memberIDs))
	for _, id := range memberIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

func contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}
