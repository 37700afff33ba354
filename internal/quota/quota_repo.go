package quota

import (
	"context"
	"database/sql"

	"go-mandor/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=quota_repo.go -destination=mock/quota_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByUser(ctx context.Context, companyID, userID string) (*ActionQuota, error)
	Create(ctx context.Context, q *ActionQuota) error
	Update(ctx context.Context, q *ActionQuota) error
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

func (r *repository) FindByUser(ctx context.Context, companyID, userID string) (*ActionQuota, error) {
	var q ActionQuota
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&q, "user_id = ?", userID).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repository) Create(ctx context.Context, q *ActionQuota) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *repository) Update(ctx context.Context, q *ActionQuota) error {
	return r.db.WithContext(ctx).Save(q).Error
}
