package ledger

import (
	"context"
	"errors"

	"gorm.io/gorm"

	ledgerdomain "tripsplit-go/internal/domain/ledger"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(ledgerdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *ledgerdomain.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *PostgresRepository) CreateSplits(ctx context.Context, splits []ledgerdomain.Split) error {
	if len(splits) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&splits).Error
}

func (r *PostgresRepository) ListExpenses(ctx context.Context, tripID string) ([]ledgerdomain.ExpenseRecord, error) {
	var rows []struct {
		ledgerdomain.Expense
		PaidByName string `gorm:"column:paid_by_name"`
	}

	if err := r.db.WithContext(ctx).
		Table("expenses").
		Select("expenses.*, users.name AS paid_by_name").
		Joins("join users on users.id = expenses.paid_by").
		Where("expenses.trip_id = ?", tripID).
		Order("expenses.created_at desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]ledgerdomain.ExpenseRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, ledgerdomain.ExpenseRecord{
			Expense:    row.Expense,
			PaidByName: row.PaidByName,
		})
	}
	return records, nil
}

func (r *PostgresRepository) GetSplitMembersByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]ledgerdomain.MemberRef, error) {
	result := make(map[string][]ledgerdomain.MemberRef, len(expenseIDs))
	if len(expenseIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		ExpenseID string `gorm:"column:expense_id"`
		ID        string `gorm:"column:id"`
		Name      string `gorm:"column:name"`
		Email     string `gorm:"column:email"`
	}

	if err := r.db.WithContext(ctx).
		Table("splits").
		Select("splits.expense_id, users.id, users.name, users.email").
		Joins("join users on users.id = splits.user_id").
		Where("splits.expense_id IN ?", expenseIDs).
		Order("users.name asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.ExpenseID] = append(result[row.ExpenseID], ledgerdomain.MemberRef{
			ID:    row.ID,
			Name:  row.Name,
			Email: row.Email,
		})
	}
	return result, nil
}

func (r *PostgresRepository) ListSplitRows(ctx context.Context, tripID string) ([]ledgerdomain.SplitRow, error) {
	var rows []ledgerdomain.SplitRow
	if err := r.db.WithContext(ctx).
		Table("splits").
		Select("splits.expense_id, expenses.paid_by, splits.user_id, splits.share_amount").
		Joins("join expenses on expenses.id = splits.expense_id").
		Where("expenses.trip_id = ?", tripID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) ListTripMembers(ctx context.Context, tripID string) ([]ledgerdomain.MemberRow, error) {
	var rows []ledgerdomain.MemberRow
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.name").
		Joins("join trip_members on trip_members.user_id = users.id").
		Where("trip_members.trip_id = ?", tripID).
		Order("users.id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) GetTripName(ctx context.Context, tripID string) (string, error) {
	var row struct {
		Name string `gorm:"column:name"`
	}
	if err := r.db.WithContext(ctx).
		Table("trips").
		Select("name").
		Where("id = ?", tripID).
		First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ledgerdomain.ErrTripNotFound
		}
		return "", err
	}
	return row.Name, nil
}

func (r *PostgresRepository) CountTripMembersByIDs(ctx context.Context, tripID string, userIDs []string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Table("trip_members").
		Where("trip_id = ? AND user_id IN ?", tripID, userIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
