package overtime

import (
	"context"
	"database/sql"

	"go-mandor/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=overtime_repo.go -destination=mock/overtime_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, o *Overtime) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Overtime, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Overtime, error)
	Update(ctx context.Context, o *Overtime) error
	Delete(ctx context.Context, companyID, id string) error
	SumTotalByWorkerAndPeriod(ctx context.Context, companyID, workerID, period string) (int64, error)
	SumHoursByWorkerAndPeriod(ctx context.Context, companyID, workerID, period string) (float64, error)
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

func (r *repository) Create(ctx context.Context, o *Overtime) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Overtime, error) {
	var entries []Overtime
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("date DESC, created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Overtime, error) {
	var o Overtime
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&o, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) Update(ctx context.Context, o *Overtime) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Overtime{}, "id = ?", id).Error
}

// SumTotalByWorkerAndPeriod feeds payroll generation: the period's
// accumulated overtime pay in whole Rupiah.
func (r *repository) SumTotalByWorkerAndPeriod(ctx context.Context, companyID, workerID, period string) (int64, error) {
	var total sql.NullInt64
	err := r.db.WithContext(ctx).
		Model(&Overtime{}).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Where("period = ?", period).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	return total.Int64, nil
}

func (r *repository) SumHoursByWorkerAndPeriod(ctx context.Context, companyID, workerID, period string) (float64, error) {
	var hours sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&Overtime{}).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Where("period = ?", period).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&hours).Error
	if err != nil {
		return 0, err
	}
	return hours.Float64, nil
}
