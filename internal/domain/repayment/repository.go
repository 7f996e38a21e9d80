package repayment

import "context"

type Repository interface {
	CreateRepayment(ctx context.Context, repayment *Repayment) error
	ListByTrip(ctx context.Context, tripID string) ([]Record, error)
	TripExists(ctx context.Context, tripID string) (bool, error)
	IsTripMember(ctx context.Context, tripID, userID string) (bool, error)
}
