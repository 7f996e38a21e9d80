package trip

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CreateTrip(ctx context.Context, trip *Trip) error
	GetTripByID(ctx context.Context, tripID string) (*Trip, error)
	ListTripsByUser(ctx context.Context, userID string) ([]Trip, error)
	AddMembers(ctx context.Context, members []TripMember) error
	ListMembers(ctx context.Context, tripID string) ([]Member, error)
	IsMember(ctx context.Context, tripID, userID string) (bool, error)
	UserExists(ctx context.Context, userID string) (bool, error)
}
