package subscription

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go-mandor/internal/notification"
	"go-mandor/internal/shared/clock"
	subscriptionerrors "go-mandor/internal/subscription/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=subscription_service.go -destination=mock/subscription_service_mock.go -package=mock
type Service interface {
	CreateFree(ctx context.Context, companyID string) error
	Get(ctx context.Context, companyID string) (SubscriptionResponse, error)
	IsPremium(ctx context.Context, companyID string) (bool, error)
	Upgrade(ctx context.Context, companyID string, req UpgradeRequest) (SubscriptionResponse, error)
	ExpireDue(ctx context.Context, limit int) (int, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	clk      clock.Clock
	notifier notification.Notifier
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, clk clock.Clock, notifier notification.Notifier) Service {
	if clk == nil {
		clk = clock.Real()
	}
	if notifier == nil {
		notifier = notification.Nop{}
	}
	return &service{
		db:       db,
		repo:     repo,
		clk:      clk,
		notifier: notifier,
		logger:   zap.L().Named("subscription.service"),
	}
}

// CreateFree seeds the company's subscription row at registration time.
func (s *service) CreateFree(ctx context.Context, companyID string) error {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return errors.New("invalid company id")
	}

	if _, err := s.repo.FindByCompany(ctx, companyID); err == nil {
		return subscriptionerrors.ErrAlreadySubscribed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	sub := &Subscription{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Tier:      TierFree,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return err
	}

	s.logger.Info("free subscription created", zap.String("company_id", companyID))
	return nil
}

func (s *service) Get(ctx context.Context, companyID string) (SubscriptionResponse, error) {
	sub, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SubscriptionResponse{}, subscriptionerrors.ErrSubscriptionNotFound
		}
		return SubscriptionResponse{}, err
	}
	return s.mapToResponse(sub), nil
}

// IsPremium is the gate the quota middleware consults. A missing row
// reads as free so a half-bootstrapped company is never over-granted.
func (s *service) IsPremium(ctx context.Context, companyID string) (bool, error) {
	sub, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return sub.ActiveAt(s.clk.Now()), nil
}

func (s *service) Upgrade(ctx context.Context, companyID string, req UpgradeRequest) (SubscriptionResponse, error) {
	if req.DurationMonths < 1 || req.DurationMonths > 12 {
		return SubscriptionResponse{}, subscriptionerrors.ErrInvalidDuration
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SubscriptionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	sub, err := qtx.FindByCompany(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SubscriptionResponse{}, subscriptionerrors.ErrSubscriptionNotFound
		}
		return SubscriptionResponse{}, err
	}

	now := s.clk.Now()

	// Extending an active premium stacks onto the current expiry.
	base := now
	if sub.ActiveAt(now) && sub.ExpiresAt != nil {
		base = *sub.ExpiresAt
	}
	expires := base.AddDate(0, req.DurationMonths, 0)

	sub.Tier = TierPremium
	if sub.StartedAt == nil {
		sub.StartedAt = &now
	}
	sub.ExpiresAt = &expires

	if err := qtx.Update(ctx, sub); err != nil {
		return SubscriptionResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return SubscriptionResponse{}, err
	}

	s.logger.Info("subscription upgraded",
		zap.String("company_id", companyID),
		zap.Int("duration_months", req.DurationMonths),
		zap.Time("expires_at", expires),
	)

	return s.mapToResponse(sub), nil
}

// ExpireDue downgrades lapsed premium rows. Runs from the background
// worker; returns how many rows it flipped.
func (s *service) ExpireDue(ctx context.Context, limit int) (int, error) {
	now := s.clk.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	due, err := qtx.FindExpiredPremium(ctx, now, limit)
	if err != nil {
		return 0, err
	}

	for i := range due {
		sub := &due[i]
		sub.Tier = TierFree
		if err := qtx.Update(ctx, sub); err != nil {
			return 0, err
		}
		s.notifier.Notify(notification.LevelInfo,
			"premium subscription expired for company "+sub.CompanyID.String())
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	if len(due) > 0 {
		s.logger.Info("expired premium subscriptions downgraded", zap.Int("count", len(due)))
	}
	return len(due), nil
}

func (s *service) mapToResponse(sub *Subscription) SubscriptionResponse {
	resp := SubscriptionResponse{
		ID:        sub.ID.String(),
		CompanyID: sub.CompanyID.String(),
		Tier:      sub.Tier,
		IsActive:  sub.ActiveAt(s.clk.Now()),
	}
	if sub.StartedAt != nil {
		v := sub.StartedAt.Format(time.RFC3339)
		resp.StartedAt = &v
	}
	if sub.ExpiresAt != nil {
		v := sub.ExpiresAt.Format(time.RFC3339)
		resp.ExpiresAt = &v
	}
	return resp
}
