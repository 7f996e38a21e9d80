package trip

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create inserts the trip and its initial member set in one transaction.
// The creator is always included, regardless of the submitted member ids.
func (s *Service) Create(ctx context.Context, input CreateTripInput) (*Trip, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("name is required")
	}

	memberIDs := dedupeMemberIDs(input.CreatedBy, input.MemberIDs)

	t := Trip{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		CreatedBy:   input.CreatedBy,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		for _, memberID := range memberIDs {
			exists, err := tx.UserExists(ctx, memberID)
			if err != nil {
				return err
			}
			if !exists {
				return ErrUserNotFound
			}
		}

		if err := tx.CreateTrip(ctx, &t); err != nil {
			return err
		}

		members := make([]TripMember, 0, len(memberIDs))
		for _, memberID := range memberIDs {
			members = append(members, TripMember{TripID: t.ID, UserID: memberID})
		}
		return tx.AddMembers(ctx, members)
	})
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Trip, error) {
	return s.repo.ListTripsByUser(ctx, userID)
}

func (s *Service) Get(ctx context.Context, tripID string) (*Trip, error) {
	return s.repo.GetTripByID(ctx, tripID)
}

func (s *Service) ListMembers(ctx context.Context, tripID string) ([]Member, error) {
	if _, err := s.repo.GetTripByID(ctx, tripID); err != nil {
		return nil, err
	}
	return s.repo.ListMembers(ctx, tripID)
}

// AddMember enrolls an existing user into a trip. Duplicate enrollment is a
// conflict, not an upsert.
func (s *Service) AddMember(ctx context.Context, tripID, userID string) error {
	return s.repo.Transaction(ctx, func(tx Repository) error {
		if _, err := tx.GetTripByID(ctx, tripID); err != nil {
			return err
		}

		exists, err := tx.UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUserNotFound
		}

		member, err := tx.IsMember(ctx, tripID, userID)
		if err != nil {
			return err
		}
		if member {
			return ErrAlreadyMember
		}

		return tx.AddMembers(ctx, []TripMember{{TripID: tripID, UserID: userID}})
	})
}

// RequireMember reports whether userID belongs to tripID, returning
// ErrNotTripMember otherwise. Used by handlers to scope ledger access.
func (s *Service) RequireMember(ctx context.Context, tripID, userID string) error {
	member, err := s.repo.IsMember(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if !member {
		return ErrNotTripMember
	}
	return nil
}

func dedupeMemberIDs(creatorID string, memberIDs []string) []string {
	result := []string{creatorID}
	seen := map[string]struct{}{creatorID: {}}
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
