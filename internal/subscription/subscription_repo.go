package subscription

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=subscription_repo.go -destination=mock/subscription_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Subscription) error
	FindByCompany(ctx context.Context, companyID string) (*Subscription, error)
	Update(ctx context.Context, s *Subscription) error
	FindExpiredPremium(ctx context.Context, asOf time.Time, limit int) ([]Subscription, error)
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

func (r *repository) Create(ctx context.Context, s *Subscription) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *repository) FindByCompany(ctx context.Context, companyID string) (*Subscription, error) {
	var s Subscription
	err := r.db.WithContext(ctx).
		First(&s, "company_id = ?", companyID).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, s *Subscription) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// FindExpiredPremium feeds the background lapse sweep.
func (r *repository) FindExpiredPremium(ctx context.Context, asOf time.Time, limit int) ([]Subscription, error) {
	var subs []Subscription
	err := r.db.WithContext(ctx).
		Where("tier = ?", TierPremium).
		Where("expires_at IS NOT NULL AND expires_at <= ?", asOf).
		Order("expires_at ASC").
		Limit(limit).
		Find(&subs).Error
	return subs, err
}
