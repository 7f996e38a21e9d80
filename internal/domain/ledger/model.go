package ledger

import "time"

type Expense struct {
	ID          string    `gorm:"type:uuid;primaryKey"`
	TripID      string    `gorm:"type:uuid;not null;index"`
	PaidBy      string    `gorm:"type:uuid;not null"`
	Amount      float64   `gorm:"type:numeric(12,2);not null"`
	Description string    `gorm:"type:text"`
	ImageURL    *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// Split is one member's share of an expense. Splits are created together
// with their expense and never modified afterwards.
type Split struct {
	ExpenseID   string  `gorm:"type:uuid;primaryKey"`
	UserID      string  `gorm:"type:uuid;primaryKey"`
	ShareAmount float64 `gorm:"type:numeric(12,2);not null"`

	Expense Expense `gorm:"foreignKey:ExpenseID;references:ID;constraint:OnDelete:CASCADE"`
}

// MemberRef identifies a user participating in an expense.
type MemberRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ExpenseRecord is an expense joined with its payer name and participants.
type ExpenseRecord struct {
	Expense
	PaidByName string
	Members    []MemberRef
}

// SplitRow is a split joined with the payer of its expense, the unit the
// settlement and balance derivations work on.
type SplitRow struct {
	ExpenseID   string
	PaidBy      string
	UserID      string
	ShareAmount float64
}

type MemberRow struct {
	ID   string
	Name string
}

// MemberBalance is one member's aggregated position within a trip.
// Balance is total_share minus total_paid: positive means the member owes
// money, negative means the member is owed.
type MemberBalance struct {
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	TotalPaid  float64 `json:"total_paid"`
	TotalShare float64 `json:"total_share"`
	Balance    float64 `json:"balance"`
}

type TripBalances struct {
	TripName string          `json:"trip_name"`
	Balances []MemberBalance `json:"balances"`
}

// PayeeSummary describes a member who paid for expenses and how much of
// that spend is owed back by the other participants.
type PayeeSummary struct {
	UserID    string  `json:"user_id"`
	Name      string  `json:"name"`
	TotalPaid float64 `json:"total_paid"`
	OwedTo    float64 `json:"owed_to"`
}

// DebtEntry is one edge of the debtor view: the keyed member owes OwesTo
// the given amount.
type DebtEntry struct {
	OwesTo string  `json:"owesTo"`
	Amount float64 `json:"amount"`
}

type CreateExpenseInput struct {
	TripID      string
	PaidBy      string
	Amount      float64
	Description string
	ImageURL    *string
	MemberIDs   []string
}
