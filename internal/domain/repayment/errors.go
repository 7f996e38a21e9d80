package repayment

import "errors"

var (
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrSelfRepayment    = errors.New("cannot record a repayment to yourself")
	ErrNotTripMember    = errors.New("member does not belong to the trip")
	ErrTripNotFound     = errors.New("trip not found")
	ErrMissingRecipient = errors.New("recipient is required")
)
