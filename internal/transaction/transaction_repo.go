package transaction

import (
	"context"
	"database/sql"
	"time"

	"go-mandor/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=transaction_repo.go -destination=mock/transaction_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *Transaction) error
	FindAllByCompany(ctx context.Context, companyID string, filter TransactionQueryFilter) ([]Transaction, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Transaction, error)
	Update(ctx context.Context, t *Transaction) error
	Delete(ctx context.Context, companyID, id string) error
	SumCompletedByType(ctx context.Context, companyID, txType string, from, to time.Time) (int64, error)
	SumCompletedExpenseByProject(ctx context.Context, companyID, projectID string) (int64, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, t *Transaction) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter TransactionQueryFilter) ([]Transaction, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID))

	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.From != "" {
		q = q.Where("date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("date <= ?", filter.To)
	}

	var transactions []Transaction
	err := q.Order("date DESC, created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Transaction, error) {
	var t Transaction
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Update(ctx context.Context, t *Transaction) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Transaction{}, "id = ?", id).Error
}

// SumCompletedByType aggregates one side of the cash-flow report.
func (r *repository) SumCompletedByType(ctx context.Context, companyID, txType string, from, to time.Time) (int64, error) {
	var total sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Scopes(tenant.Scope(companyID)).
		Where("type = ?", txType).
		Where("status = ?", StatusCompleted).
		Where("date >= ? AND date <= ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

func (r *repository) SumCompletedExpenseByProject(ctx context.Context, companyID, projectID string) (int64, error) {
	var total sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&Transaction{}).
		Scopes(tenant.Scope(companyID)).
		Where("project_id = ?", projectID).
		Where("type = ?", TypeExpense).
		Where("status = ?", StatusCompleted).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}
