package repayment

import "time"

// Repayment is an append-only record of a manual payment between two trip
// members. It is informational and is not netted into balance computation.
type Repayment struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	TripID    string    `gorm:"type:uuid;not null;index"`
	PaidFrom  string    `gorm:"type:uuid;not null"`
	PaidTo    string    `gorm:"type:uuid;not null"`
	Amount    float64   `gorm:"type:numeric(12,2);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Record is a repayment joined with both members' display names.
type Record struct {
	Repayment
	FromUser string
	ToUser   string
}

type RecordInput struct {
	TripID   string
	PaidFrom string
	PaidTo   string
	Amount   float64
}
