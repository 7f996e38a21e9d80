package repayment

import (
	"context"

	"gorm.io/gorm"

	repaymentdomain "tripsplit-go/internal/domain/repayment"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateRepayment(ctx context.Context, repayment *repaymentdomain.Repayment) error {
	return r.db.WithContext(ctx).Create(repayment).Error
}

func (r *PostgresRepository) ListByTrip(ctx context.Context, tripID string) ([]repaymentdomain.Record, error) {
	var rows []struct {
		repaymentdomain.Repayment
		FromUser string `gorm:"column:from_user"`
		ToUser   string `gorm:"column:to_user"`
	}

	if err := r.db.WithContext(ctx).
		Table("repayments").
		Select("repayments.*, u1.name AS from_user, u2.name AS to_user").
		Joins("join users u1 on u1.id = repayments.paid_from").
		Joins("join users u2 on u2.id = repayments.paid_to").
		Where("repayments.trip_id = ?", tripID).
		Order("repayments.created_at desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]repaymentdomain.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, repaymentdomain.Record{
			Repayment: row.Repayment,
			FromUser:  row.FromUser,
			ToUser:    row.ToUser,
		})
	}
	return records, nil
}

func (r *PostgresRepository) TripExists(ctx context.Context, tripID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("trips").
		Where("id = ?", tripID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostgresRepository) IsTripMember(ctx context.Context, tripID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("trip_members").
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
