package trip

import (
	"context"
	"errors"

	"gorm.io/gorm"

	tripdomain "tripsplit-go/internal/domain/trip"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(tripdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateTrip(ctx context.Context, t *tripdomain.Trip) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *PostgresRepository) GetTripByID(ctx context.Context, tripID string) (*tripdomain.Trip, error) {
	var t tripdomain.Trip
	if err := r.db.WithContext(ctx).
		Where("id = ?", tripID).
		First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tripdomain.ErrTripNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PostgresRepository) ListTripsByUser(ctx context.Context, userID string) ([]tripdomain.Trip, error) {
	var trips []tripdomain.Trip
	if err := r.db.WithContext(ctx).
		Joins("join trip_members on trip_members.trip_id = trips.id").
		Where("trip_members.user_id = ?", userID).
		Order("trips.created_at desc").
		Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *PostgresRepository) AddMembers(ctx context.Context, members []tripdomain.TripMember) error {
	if len(members) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&members).Error
}

func (r *PostgresRepository) ListMembers(ctx context.Context, tripID string) ([]tripdomain.Member, error) {
	var members []tripdomain.Member
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.name, users.email").
		Joins("join trip_members on trip_members.user_id = users.id").
		Where("trip_members.trip_id = ?", tripID).
		Order("users.name asc").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *PostgresRepository) IsMember(ctx context.Context, tripID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&tripdomain.TripMember{}).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
