package kasbon

import (
	"context"
	"database/sql"

	"go-mandor/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=kasbon_repo.go -destination=mock/kasbon_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, k *Kasbon) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Kasbon, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Kasbon, error)
	Update(ctx context.Context, k *Kasbon) error
	Delete(ctx context.Context, companyID, id string) error
	FindApprovedUndeducted(ctx context.Context, companyID string) ([]Kasbon, error)
	ListCompaniesWithApprovedUndeducted(ctx context.Context) ([]string, error)
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

func (r *repository) Create(ctx context.Context, k *Kasbon) error {
	return r.db.WithContext(ctx).Create(k).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Kasbon, error) {
	var kasbons []Kasbon
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&kasbons).Error
	return kasbons, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Kasbon, error) {
	var k Kasbon
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&k, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *repository) Update(ctx context.Context, k *Kasbon) error {
	return r.db.WithContext(ctx).Save(k).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Kasbon{}, "id = ?", id).Error
}

// FindApprovedUndeducted returns settlement candidates in submission
// order. The engine matches the oldest kasbon first, so this ordering is
// part of the deduction contract, not a cosmetic choice.
func (r *repository) FindApprovedUndeducted(ctx context.Context, companyID string) ([]Kasbon, error) {
	var kasbons []Kasbon
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusApproved).
		Where("deducted_from_payroll IS NULL").
		Order("created_at ASC").
		Find(&kasbons).Error
	return kasbons, err
}

// ListCompaniesWithApprovedUndeducted feeds the background settlement
// sweep; only companies that actually have candidates get a pass.
func (r *repository) ListCompaniesWithApprovedUndeducted(ctx context.Context) ([]string, error) {
	var companyIDs []string
	err := r.db.WithContext(ctx).
		Model(&Kasbon{}).
		Where("status = ?", StatusApproved).
		Where("deducted_from_payroll IS NULL").
		Distinct("company_id").
		Pluck("company_id", &companyIDs).Error
	return companyIDs, err
}
