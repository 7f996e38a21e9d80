package repayment

import (
	"context"
	"math"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record appends a repayment. Both sides must belong to the trip and the
// amount must be positive; recorded repayments never change computed
// balances.
func (s *Service) Record(ctx context.Context, input RecordInput) (*Repayment, error) {
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	if input.PaidTo == "" {
		return nil, ErrMissingRecipient
	}
	if input.PaidTo == input.PaidFrom {
		return nil, ErrSelfRepayment
	}

	exists, err := s.repo.TripExists(ctx, input.TripID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTripNotFound
	}

	for _, userID := range []string{input.PaidFrom, input.PaidTo} {
		member, err := s.repo.IsTripMember(ctx, input.TripID, userID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, ErrNotTripMember
		}
	}

	r := Repayment{
		ID:       uuid.NewString(),
		TripID:   input.TripID,
		PaidFrom: input.PaidFrom,
		PaidTo:   input.PaidTo,
		Amount:   math.Round(input.Amount*100) / 100,
	}
	if err := s.repo.CreateRepayment(ctx, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// History lists a trip's repayments newest-first with display names.
func (s *Service) History(ctx context.Context, tripID string) ([]Record, error) {
	exists, err := s.repo.TripExists(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrTripNotFound
	}
	return s.repo.ListByTrip(ctx, tripID)
}
