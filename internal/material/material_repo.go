package material

import (
	"context"
	"database/sql"

	"go-mandor/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=material_repo.go -destination=mock/material_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, m *Material) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Material, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Material, error)
	Update(ctx context.Context, m *Material) error
	Delete(ctx context.Context, companyID, id string) error
	CreateMovement(ctx context.Context, mv *StockMovement) error
	FindMovements(ctx context.Context, companyID, materialID string) ([]StockMovement, error)
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

func (r *repository) Create(ctx context.Context, m *Material) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Material, error) {
	var materials []Material
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&materials).Error
	return materials, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Material, error) {
	var m Material
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&m, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repository) Update(ctx context.Context, m *Material) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Material{}, "id = ?", id).Error
}

func (r *repository) CreateMovement(ctx context.Context, mv *StockMovement) error {
	return r.db.WithContext(ctx).Create(mv).Error
}

func (r *repository) FindMovements(ctx context.Context, companyID, materialID string) ([]StockMovement, error) {
	var movements []StockMovement
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("material_id = ?", materialID).
		Order("created_at DESC").
		Find(&movements).Error
	return movements, err
}
