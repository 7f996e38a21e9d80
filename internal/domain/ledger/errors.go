package ledger

import "errors"

var (
	ErrTripNotFound         = errors.New("trip not found")
	ErrExpenseNotFound      = errors.New("expense not found")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrEmptyMemberSelection = errors.New("at least one member must be selected")
	ErrMemberNotInTrip      = errors.New("selected member does not belong to the trip")
)
