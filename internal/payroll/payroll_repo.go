package payroll

import (
	"context"
	"database/sql"

	"go-mandor/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Payroll, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payroll, error)
	Update(ctx context.Context, p *Payroll) error
	HasActiveForPeriod(ctx context.Context, companyID, workerID, period string) (bool, error)
	FindPendingByCompany(ctx context.Context, companyID string) ([]Payroll, error)
	FindByCompanyAndPeriod(ctx context.Context, companyID, period string) ([]Payroll, error)
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

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("period DESC, created_at DESC").
		Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Update(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// HasActiveForPeriod enforces the one-non-cancelled-payroll-per-period
// invariant for a worker.
func (r *repository) HasActiveForPeriod(ctx context.Context, companyID, workerID, period string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Scopes(tenant.Scope(companyID)).
		Where("worker_id = ?", workerID).
		Where("period = ?", period).
		Where("status <> ?", StatusCancelled).
		Count(&count).Error
	return count > 0, err
}

// FindPendingByCompany returns pending payrolls in insertion order; the
// kasbon settlement engine relies on this ordering for deterministic
// first-to-first matching.
func (r *repository) FindPendingByCompany(ctx context.Context, companyID string) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&payrolls).Error
	return payrolls, err
}

// FindByCompanyAndPeriod returns the period's non-cancelled payrolls,
// the input set for the productivity report.
func (r *repository) FindByCompanyAndPeriod(ctx context.Context, companyID, period string) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("period = ?", period).
		Where("status <> ?", StatusCancelled).
		Order("created_at ASC").
		Find(&payrolls).Error
	return payrolls, err
}
