package ledger

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"
)

const (
	tripGoa = "11111111-1111-1111-1111-111111111111"
	userA   = "aaaaaaaa-0000-0000-0000-000000000001"
	userB   = "bbbbbbbb-0000-0000-0000-000000000002"
	userC   = "cccccccc-0000-0000-0000-000000000003"
	userD   = "dddddddd-0000-0000-0000-000000000004"
)

type fakeLedgerRepo struct {
	tripNames map[string]string
	members   map[string][]MemberRow
	expenses  []Expense
	splits    []Split
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		tripNames: map[string]string{tripGoa: "Goa"},
		members: map[string][]MemberRow{
			tripGoa: {
				{ID: userA, Name: "Asha"},
				{ID: userB, Name: "Bilal"},
				{ID: userC, Name: "Chitra"},
			},
		},
	}
}

func (r *fakeLedgerRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	return fn(r)
}

func (r *fakeLedgerRepo) CreateExpense(ctx context.Context, expense *Expense) error {
	r.expenses = append(r.expenses, *expense)
	return nil
}

func (r *fakeLedgerRepo) CreateSplits(ctx context.Context, splits []Split) error {
	r.splits = append(r.splits, splits...)
	return nil
}

func (r *fakeLedgerRepo) ListExpenses(ctx context.Context, tripID string) ([]ExpenseRecord, error) {
	names := r.memberNames(tripID)
	records := make([]ExpenseRecord, 0)
	for i := len(r.expenses) - 1; i >= 0; i-- {
		expense := r.expenses[i]
		if expense.TripID != tripID {
			continue
		}
		records = append(records, ExpenseRecord{
			Expense:    expense,
			PaidByName: names[expense.PaidBy],
		})
	}
	return records, nil
}

func (r *fakeLedgerRepo) GetSplitMembersByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]MemberRef, error) {
	wanted := make(map[string]struct{}, len(expenseIDs))
	for _, id := range expenseIDs {
		wanted[id] = struct{}{}
	}

	result := make(map[string][]MemberRef)
	for _, split := range r.splits {
		if _, ok := wanted[split.ExpenseID]; !ok {
			continue
		}
		result[split.ExpenseID] = append(result[split.ExpenseID], MemberRef{ID: split.UserID})
	}
	return result, nil
}

func (r *fakeLedgerRepo) ListSplitRows(ctx context.Context, tripID string) ([]SplitRow, error) {
	payers := make(map[string]string)
	for _, expense := range r.expenses {
		if expense.TripID == tripID {
			payers[expense.ID] = expense.PaidBy
		}
	}

	rows := make([]SplitRow, 0)
	for _, split := range r.splits {
		paidBy, ok := payers[split.ExpenseID]
		if !ok {
			continue
		}
		rows = append(rows, SplitRow{
			ExpenseID:   split.ExpenseID,
			PaidBy:      paidBy,
			UserID:      split.UserID,
			ShareAmount: split.ShareAmount,
		})
	}
	return rows, nil
}

func (r *fakeLedgerRepo) ListTripMembers(ctx context.Context, tripID string) ([]MemberRow, error) {
	members := append([]MemberRow{}, r.members[tripID]...)
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

func (r *fakeLedgerRepo) GetTripName(ctx context.Context, tripID string) (string, error) {
	name, ok := r.tripNames[tripID]
	if !ok {
		return "", ErrTripNotFound
	}
	return name, nil
}

func (r *fakeLedgerRepo) CountTripMembersByIDs(ctx context.Context, tripID string, userIDs []string) (int64, error) {
	present := make(map[string]struct{})
	for _, member := range r.members[tripID] {
		present[member.ID] = struct{}{}
	}
	var count int64
	for _, id := range userIDs {
		if _, ok := present[id]; ok {
			count++
		}
	}
	return count, nil
}

func (r *fakeLedgerRepo) memberNames(tripID string) map[string]string {
	names := make(map[string]string)
	for _, member := range r.members[tripID] {
		names[member.ID] = member.Name
	}
	return names
}

func addExpense(t *testing.T, service *Service, paidBy string, amount float64, memberIDs []string) *Expense {
	t.Helper()
	expense, err := service.AddExpense(context.Background(), CreateExpenseInput{
		TripID:      tripGoa,
		PaidBy:      paidBy,
		Amount:      amount,
		Description: "test expense",
		MemberIDs:   memberIDs,
	})
	if err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	return expense
}

func TestAddExpenseCreatesSplits(t *testing.T) {
	repo := newFakeLedgerRepo()
	service := NewService(repo)

	expense := addExpense(t, service, userA, 300, []string{userA, userB, userC})

	if expense.ID == "" {
		t.Fatal("expected generated expense id")
	}
	if len(repo.expenses) != 1 {
		t.Fatalf("got %d expenses, want 1", len(repo.expenses))
	}
	if len(repo.splits) != 3 {
		t.Fatalf("got %d splits, want 3", len(repo.splits))
	}
	for _, split := range repo.splits {
		if split.ExpenseID != expense.ID {
			t.Errorf("split expense id = %q, want %q", split.ExpenseID, expense.ID)
		}
		if split.ShareAmount != 100 {
			t.Errorf("share = %v, want 100", split.ShareAmount)
		}
	}
}

func TestAddExpenseValidation(t *testing.T) {
	cases := []struct {
		name    string
		tripID  string
		paidBy  string
		amount  float64
		members []string
		wantErr error
	}{
		{"zero amount", tripGoa, userA, 0, []string{userA}, ErrInvalidAmount},
		{"negative amount", tripGoa, userA, -10, []string{userA}, ErrInvalidAmount},
		{"no members", tripGoa, userA, 100, nil, ErrEmptyMemberSelection},
		{"blank members", tripGoa, userA, 100, []string{" ", ""}, ErrEmptyMemberSelection},
		{"member outside trip", tripGoa, userA, 100, []string{userA, userD}, ErrMemberNotInTrip},
		{"payer outside trip", tripGoa, userD, 100, []string{userA, userB}, ErrMemberNotInTrip},
		{"unknown trip", "nope", userA, 100, []string{userA}, ErrTripNotFound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := newFakeLedgerRepo()
			service := NewService(repo)

			_, err := service.AddExpense(context.Background(), CreateExpenseInput{
				TripID:    c.tripID,
				PaidBy:    c.paidBy,
				Amount:    c.amount,
				MemberIDs: c.members,
			})
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("got err %v, want %v", err, c.wantErr)
			}
			if len(repo.expenses) != 0 || len(repo.splits) != 0 {
				t.Error("failed AddExpense must not leave rows behind")
			}
		})
	}
}

func TestAddExpenseDeduplicatesMembers(t *testing.T) {
	repo := newFakeLedgerRepo()
	service := NewService(repo)

	addExpense(t, service, userA, 100, []string{userA, userB, userB, userA})

	if len(repo.splits) != 2 {
		t.Fatalf("got %d splits, want 2", len(repo.splits))
	}
	for _, split := range repo.splits {
		if split.ShareAmount != 50 {
			t.Errorf("share = %v, want 50", split.ShareAmount)
		}
	}
}

func TestBalancesGoaScenario(t *testing.T) {
	repo := newFakeLedgerRepo()
	service := NewService(repo)

	addExpense(t, service, userA, 300, []string{userA, userB, userC})

	balances, err := service.Balances(context.Background(), tripGoa)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}

	if balances.TripName != "Goa" {
		t.Errorf("trip name = %q, want Goa", balances.TripName)
	}
	if len(balances.Balances) != 3 {
		t.Fatalf("got %d balances, want 3", len(balances.Balances))
	}

	byUser := make(map[string]MemberBalance)
	for _, balance := range balances.Balances {
		byUser[balance.UserID] = balance
	}

	a := byUser[userA]
	if a.TotalPaid != 300 || a.TotalShare != 100 || a.Balance != -200 {
		t.Errorf("payer balance = %+v, want paid 300 share 100 balance -200", a)
	}
	for _, id := range []string{userB, userC} {
		b := byUser[id]
		if b.TotalPaid != 0 || b.TotalShare != 100 || b.Balance != 100 {
			t.Errorf("member %s balance = %+v, want paid 0 share 100 balance 100", id, b)
		}
	}
}

func TestBalancesIncludeInactiveMembers(t *testing.T) {
	repo := newFakeLedgerRepo()
	service := NewService(repo)

	// userC joins but never pays or participates.
	addExpense(t, service, userA, 80, []string{userA, userB})

	balances, err := service.Balances(context.Background(), tripGoa)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}

	var found bool
	for _, balance := range balances.Balances {
		if balance.UserID == userC {
			found = true
			if balance.TotalPaid != 0 || balance.TotalShare != 0 || balance.Balance != 0 {
				t.Errorf("inactive member balance = %+v, want all zero", balance)
			}
		}
	}
	if !found {
		t.Error("inactive trip member missing from balance sheet")
	}
}

// Every expense is fully paid by its payer and fully allocated to shares,
// so paid and share totals both reconcile to total spend (up to the
// per-split rounding tolerance).
func TestBalanceConservation(t *testing.T) {
	repo := newFakeLedgerRepo()
	service := NewService(repo)

	addExpense(t, service, userA, 300, []string{userA, userB, userC})
	addExpense(t, service, userB, 100, []string{userA, userB, userC})
	addExpense(t, service, userC, 45.67, []string{userA, userC})

	balances, err := service.Balances(context.Background(), tripGoa)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}

	var paidSum, shareSum float64
	for _, balance := range balances.Balances {
		paidSum += balance.TotalPaid
		shareSum += balance.TotalShare
	}

	const totalSpend = 300 + 100 + 45.67
	if Round2(paidSum) != Round2(totalSpend) {
		t.Errorf("paid sum = %v, want %v", paidSum, totalSpend)
	}
	// Eight splits in play, each rounded independently.
	if math.Abs(shareSum-totalSpend) > 8*0.01 {
		t.Errorf("share sum = %v, outside rounding tolerance of %v", shareSum, totalSpend)
	}
}

func TestBalancesUnknownTrip(t *testing.T) {
	service := NewService(newFakeLedgerRepo())

	if _, err := service.Balances(context.Background(), "missing"); !errors.Is(err, ErrTripNotFound) {
		t.Fatalf("got err %v, want ErrTripNotFound", err)
	}
}

func TestBalancesReadsAreStable(t *testing.T) {
	repo := newFakeLedgerRepo()
	service := NewService(repo)

	addExpense(t, service, userA, 100, []string{userA, userB, userC})

	first, err := service.Balances(context.Background(), tripGoa)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	second, err := service.Balances(context.Background(), tripGoa)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated reads differ:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestSummaryExcludesSelfDebt(t *testing.T) {
	repo := newFakeLedgerRepo()
	service := NewService(repo)

	addExpense(t, service, userA, 300, []string{userA, userB, userC})

	summary, err := service.Summary(context.Background(), tripGoa)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	if _, ok := summary[userA]; ok {
		t.Error("payer must not owe themselves")
	}
	for ower, entries := range summary {
		for _, entry := range entries {
			if entry.OwesTo == ower {
				t.Errorf("self-debt entry for %s", ower)
			}
		}
	}

	for _, id := range []string{userB, userC} {
		entries := summary[id]
		if len(entries) != 1 || entries[0].OwesTo != userA || entries[0].Amount != 100 {
			t.Errorf("summary[%s] = %+v, want one entry owing 100 to payer", id, entries)
		}
	}
}

func TestSummaryAggregatesByPair(t *testing.T) {
	repo := newFakeLedgerRepo()
	service := NewService(repo)

	addExpense(t, service, userA, 90, []string{userA, userB, userC})
	addExpense(t, service, userA, 30, []string{userB})
	addExpense(t, service, userB, 50, []string{userA, userB})

	summary, err := service.Summary(context.Background(), tripGoa)
	if err != nil {
		t.Fatalf("Summary failed: %v", err)
	}

	// userB owes userA across two expenses: 30 + 30 = 60, one entry.
	entriesB := summary[userB]
	if len(entriesB) != 1 || entriesB[0].OwesTo != userA || entriesB[0].Amount != 60 {
		t.Errorf("summary[userB] = %+v, want single 60 entry to userA", entriesB)
	}

	// userA owes userB 25 from the third expense.
	entriesA := summary[userA]
	if len(entriesA) != 1 || entriesA[0].OwesTo != userB || entriesA[0].Amount != 25 {
		t.Errorf("summary[userA] = %+v, want single 25 entry to userB", entriesA)
	}
}

func TestPayeesGoaScenario(t *testing.T) {
	repo := newFakeLedgerRepo()
	service := NewService(repo)

	addExpense(t, service, userA, 300, []string{userA, userB, userC})

	payees, err := service.Payees(context.Background(), tripGoa)
	if err != nil {
		t.Fatalf("Payees failed: %v", err)
	}

	if len(payees) != 1 {
		t.Fatalf("got %d payees, want 1", len(payees))
	}
	payee := payees[0]
	if payee.UserID != userA || payee.Name != "Asha" {
		t.Errorf("payee = %+v, want userA/Asha", payee)
	}
	if payee.TotalPaid != 300 || payee.OwedTo != 200 {
		t.Errorf("payee totals = paid %v owed %v, want 300/200", payee.TotalPaid, payee.OwedTo)
	}
}

func TestPayeesOmitInactiveMembers(t *testing.T) {
	repo := newFakeLedgerRepo()
	service := NewService(repo)

	addExpense(t, service, userA, 80, []string{userA, userB})

	payees, err := service.Payees(context.Background(), tripGoa)
	if err != nil {
		t.Fatalf("Payees failed: %v", err)
	}

	for _, payee := range payees {
		if payee.UserID == userC {
			t.Error("member with no paid expenses must be absent, not zero-valued")
		}
	}
}

func TestPayeesSortedByUserID(t *testing.T) {
	repo := newFakeLedgerRepo()
	service := NewService(repo)

	addExpense(t, service, userB, 40, []string{userA, userB})
	addExpense(t, service, userA, 60, []string{userA, userB, userC})

	payees, err := service.Payees(context.Background(), tripGoa)
	if err != nil {
		t.Fatalf("Payees failed: %v", err)
	}

	if !sort.SliceIsSorted(payees, func(i, j int) bool {
		return payees[i].UserID < payees[j].UserID
	}) {
		t.Errorf("payees not sorted by user id: %+v", payees)
	}
}
