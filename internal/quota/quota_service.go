package quota

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go-mandor/internal/notification"
	"go-mandor/internal/shared/clock"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=quota_service.go -destination=mock/quota_service_mock.go -package=mock
type Service interface {
	Status(ctx context.Context, companyID, userID string, isPremiumNow bool) (QuotaStatusResponse, error)
	CanPerform(ctx context.Context, companyID, userID string, isPremiumNow bool) (bool, error)
	Consume(ctx context.Context, companyID, userID string, isPremiumNow bool, actionType string) (bool, error)
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
		logger:   zap.L().Named("quota.service"),
	}
}

// sync applies the month rollover and tier resync rules to a loaded
// ledger entry. Returns true when the entry changed and needs persisting.
func (s *service) sync(q *ActionQuota, isPremiumNow bool) bool {
	changed := false

	period := clock.Period(s.clk.Now())
	if q.ResetDate != period {
		q.ActionsUsed = 0
		q.ResetDate = period
		changed = true
	}

	// Tier change applies immediately, used count carries over.
	if q.IsPremium != isPremiumNow || q.MaxActions != TierMax(isPremiumNow) {
		q.IsPremium = isPremiumNow
		q.MaxActions = TierMax(isPremiumNow)
		changed = true
	}

	return changed
}

// loadOrCreate fetches the user's ledger entry inside the given repo
// (which may be transactional), creating a fresh one on first use.
func (s *service) loadOrCreate(ctx context.Context, repo Repository, companyID, userID string, isPremiumNow bool) (*ActionQuota, bool, error) {
	q, err := repo.FindByUser(ctx, companyID, userID)
	if err == nil {
		changed := s.sync(q, isPremiumNow)
		return q, changed, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return nil, false, errors.New("invalid company id")
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, false, errors.New("invalid user id")
	}

	q = &ActionQuota{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		UserID:      userUUID,
		ActionsUsed: 0,
		MaxActions:  TierMax(isPremiumNow),
		IsPremium:   isPremiumNow,
		ResetDate:   clock.Period(s.clk.Now()),
	}
	if err := repo.Create(ctx, q); err != nil {
		return nil, false, err
	}
	return q, false, nil
}

func (s *service) Status(ctx context.Context, companyID, userID string, isPremiumNow bool) (QuotaStatusResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return QuotaStatusResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	q, changed, err := s.loadOrCreate(ctx, qtx, companyID, userID, isPremiumNow)
	if err != nil {
		return QuotaStatusResponse{}, err
	}
	if changed {
		if err := qtx.Update(ctx, q); err != nil {
			return QuotaStatusResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return QuotaStatusResponse{}, err
	}

	return mapToStatus(q), nil
}

func (s *service) CanPerform(ctx context.Context, companyID, userID string, isPremiumNow bool) (bool, error) {
	status, err := s.Status(ctx, companyID, userID, isPremiumNow)
	if err != nil {
		return false, err
	}
	return status.Remaining > 0, nil
}

// Consume is the write path behind every gated mutation. Exhaustion is a
// soft failure: false with no error and no ledger change, so the caller
// can degrade to read-only instead of breaking.
func (s *service) Consume(ctx context.Context, companyID, userID string, isPremiumNow bool, actionType string) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	q, changed, err := s.loadOrCreate(ctx, qtx, companyID, userID, isPremiumNow)
	if err != nil {
		return false, err
	}

	if q.Remaining() == 0 {
		// Persist any rollover/tier sync even though the action is denied.
		if changed {
			if err := qtx.Update(ctx, q); err != nil {
				return false, err
			}
		}
		if err := tx.Commit(); err != nil {
			return false, err
		}

		s.logger.Warn("action quota exhausted",
			zap.String("company_id", companyID),
			zap.String("user_id", userID),
			zap.String("action_type", actionType),
			zap.Int("used", q.ActionsUsed),
			zap.Int("max", q.MaxActions),
		)
		s.notifier.Notify(notification.LevelWarning,
			fmt.Sprintf("monthly action limit reached (%d/%d), upgrade to premium to continue", q.ActionsUsed, q.MaxActions))
		return false, nil
	}

	q.ActionsUsed++
	if err := qtx.Update(ctx, q); err != nil {
		return false, err
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	if remaining := q.Remaining(); remaining <= LowQuotaThreshold {
		s.notifier.Notify(notification.LevelWarning,
			fmt.Sprintf("only %d actions left this month (%d/%d used)", remaining, q.ActionsUsed, q.MaxActions))
	}

	return true, nil
}

func mapToStatus(q *ActionQuota) QuotaStatusResponse {
	percentage := 0.0
	if q.MaxActions > 0 {
		percentage = float64(q.ActionsUsed) / float64(q.MaxActions) * 100
		if percentage > 100 {
			percentage = 100
		}
	}

	return QuotaStatusResponse{
		Used:       q.ActionsUsed,
		Max:        q.MaxActions,
		Remaining:  q.Remaining(),
		Percentage: percentage,
		IsPremium:  q.IsPremium,
		ResetDate:  q.ResetDate,
	}
}
