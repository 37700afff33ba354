package kasbon

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go-mandor/internal/events"
	kasbonerrors "go-mandor/internal/kasbon/errors"
	"go-mandor/internal/messaging/kafka"
	"go-mandor/internal/payroll"
	"go-mandor/internal/shared/contextutil"
	"go-mandor/internal/shared/counter"
	"go-mandor/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=kasbon_service.go -destination=mock/kasbon_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, companyID, actorID string, req SubmitKasbonRequest) (KasbonResponse, error)
	GetAll(ctx context.Context, companyID string) ([]KasbonResponse, error)
	GetByID(ctx context.Context, companyID, id string) (KasbonResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (KasbonResponse, error)
	Reject(ctx context.Context, companyID, actorID, id string, req RejectKasbonRequest) (KasbonResponse, error)
	MarkPaid(ctx context.Context, companyID, actorID, id string) (KasbonResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	Reconcile(ctx context.Context, companyID string) ([]payroll.ReconcileResult, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	workerRepo  worker.Repository
	payrollRepo payroll.Repository
	counter     counter.Repository
	outbox      kafka.OutboxRepository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	workerRepo worker.Repository,
	payrollRepo payroll.Repository,
	counterRepo counter.Repository,
) Service {
	return NewServiceWithOutbox(db, repo, workerRepo, payrollRepo, counterRepo, nil)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	workerRepo worker.Repository,
	payrollRepo payroll.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
) Service {
	return &service{
		db:          db,
		repo:        repo,
		workerRepo:  workerRepo,
		payrollRepo: payrollRepo,
		counter:     counterRepo,
		outbox:      outboxRepo,
		logger:      zap.L().Named("kasbon.service"),
	}
}

func (s *service) Submit(ctx context.Context, companyID, actorID string, req SubmitKasbonRequest) (KasbonResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if req.Amount < MinAmount {
		s.logger.Warn("submit kasbon below minimum",
			zap.String("request_id", rid),
			zap.Int64("amount", req.Amount),
		)
		return KasbonResponse{}, kasbonerrors.ErrAmountBelowMinimum
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return KasbonResponse{}, kasbonerrors.ErrInvalidDate
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return KasbonResponse{}, errors.New("invalid company id")
	}
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return KasbonResponse{}, errors.New("invalid actor id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit kasbon begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return KasbonResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	workerQtx := s.workerRepo.WithTx(tx)

	w, err := workerQtx.FindByIDAndCompany(ctx, companyID, req.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return KasbonResponse{}, kasbonerrors.ErrWorkerNotFound
		}
		return KasbonResponse{}, err
	}
	if !w.IsActive {
		return KasbonResponse{}, kasbonerrors.ErrWorkerInactive
	}

	nextVal, err := s.counter.GetNextValue(ctx, companyID, "kasbon_number")
	if err != nil {
		s.logger.Error("submit kasbon generate number failed", zap.Error(err))
		return KasbonResponse{}, err
	}

	k := &Kasbon{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		WorkerID:     w.ID,
		KasbonNumber: fmt.Sprintf("KSB-%05d", nextVal),
		Date:         date,
		Amount:       req.Amount,
		Reason:       req.Reason,
		Status:       StatusPending,
		CreatedBy:    createdBy,
	}

	if err := qtx.Create(ctx, k); err != nil {
		s.logger.Error("submit kasbon persist failed", zap.Error(err))
		return KasbonResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit kasbon commit failed", zap.String("request_id", rid), zap.Error(err))
		return KasbonResponse{}, err
	}

	s.logger.Info("kasbon submitted",
		zap.String("request_id", rid),
		zap.String("kasbon_id", k.ID.String()),
		zap.String("worker_id", req.WorkerID),
		zap.Int64("amount", req.Amount),
	)

	return mapToResponse(*k), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]KasbonResponse, error) {
	kasbons, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]KasbonResponse, len(kasbons))
	for i, k := range kasbons {
		resp[i] = mapToResponse(k)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (KasbonResponse, error) {
	k, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return KasbonResponse{}, kasbonerrors.ErrKasbonNotFound
		}
		return KasbonResponse{}, err
	}
	return mapToResponse(*k), nil
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (KasbonResponse, error) {
	return s.transitionStatus(ctx, companyID, actorID, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id string, req RejectKasbonRequest) (KasbonResponse, error) {
	if req.Reason == "" {
		return KasbonResponse{}, kasbonerrors.ErrRejectReasonRequired
	}
	return s.transitionStatus(ctx, companyID, actorID, id, StatusRejected, &req.Reason)
}

// MarkPaid settles the advance in cash outside payroll deduction.
func (s *service) MarkPaid(ctx context.Context, companyID, actorID, id string) (KasbonResponse, error) {
	return s.transitionStatus(ctx, companyID, actorID, id, StatusPaid, nil)
}

func (s *service) transitionStatus(
	ctx context.Context,
	companyID, actorID, id, targetStatus string,
	rejectReason *string,
) (KasbonResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return KasbonResponse{}, errors.New("invalid actor id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return KasbonResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	k, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return KasbonResponse{}, kasbonerrors.ErrKasbonNotFound
		}
		return KasbonResponse{}, err
	}

	if !isAllowedStatusTransition(k.Status, targetStatus) {
		s.logger.Warn("kasbon transition invalid",
			zap.String("request_id", rid),
			zap.String("kasbon_id", id),
			zap.String("from_status", k.Status),
			zap.String("to_status", targetStatus),
		)
		return KasbonResponse{}, kasbonerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	switch targetStatus {
	case StatusApproved:
		k.ApprovedBy = &actorUUID
		k.ApprovedAt = &now
	case StatusRejected:
		k.RejectedBy = &actorUUID
		k.RejectedAt = &now
		k.RejectedReason = rejectReason
	case StatusPaid:
		k.SettledAt = &now
	}
	k.Status = targetStatus

	if err := qtx.Update(ctx, k); err != nil {
		return KasbonResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return KasbonResponse{}, err
	}

	s.logger.Info("kasbon status changed",
		zap.String("request_id", rid),
		zap.String("kasbon_id", id),
		zap.String("status", targetStatus),
		zap.String("actor_id", actorID),
	)

	return mapToResponse(*k), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	k, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kasbonerrors.ErrKasbonNotFound
		}
		return err
	}

	// Hard delete is allowed from any state, there is no audit trail to
	// preserve. Deleting a deducted kasbon does not touch the payroll it
	// was matched against.
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("kasbon deleted",
		zap.String("kasbon_id", id),
		zap.String("status", k.Status),
	)
	return nil
}

// Reconcile matches approved, still-undeducted kasbons against pending
// payrolls: oldest kasbon first, against the oldest pending payroll of
// the same worker. Several kasbons may deduct from the same payroll.
//
// The whole matching pass runs in one transaction and is idempotent: a
// deducted kasbon leaves the candidate set, so a second call with no
// intervening mutation returns an empty list.
func (s *service) Reconcile(ctx context.Context, companyID string) ([]payroll.ReconcileResult, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	payrollQtx := s.payrollRepo.WithTx(tx)

	candidates, err := qtx.FindApprovedUndeducted(ctx, companyID)
	if err != nil {
		return nil, err
	}

	results := make([]payroll.ReconcileResult, 0)
	if len(candidates) == 0 {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
		return results, nil
	}

	pending, err := payrollQtx.FindPendingByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	// First pending payroll per worker, in insertion order.
	firstPending := make(map[uuid.UUID]*payroll.Payroll, len(pending))
	for i := range pending {
		if _, ok := firstPending[pending[i].WorkerID]; !ok {
			firstPending[pending[i].WorkerID] = &pending[i]
		}
	}

	now := time.Now().UTC()
	for i := range candidates {
		k := &candidates[i]

		p, ok := firstPending[k.WorkerID]
		if !ok {
			continue
		}

		payrollID := p.ID
		k.Status = StatusDeducted
		k.DeductedFromPayroll = &payrollID
		k.SettledAt = &now

		if err := qtx.Update(ctx, k); err != nil {
			return nil, err
		}

		if s.outbox != nil {
			event := events.KasbonDeductedEvent{
				EventType:  "kasbon_deducted",
				RequestID:  rid,
				KasbonID:   k.ID.String(),
				PayrollID:  payrollID.String(),
				WorkerID:   k.WorkerID.String(),
				CompanyID:  companyID,
				Amount:     k.Amount,
				OccurredAt: now,
			}
			payload, err := json.Marshal(event)
			if err != nil {
				return nil, err
			}

			outboxQtx := s.outbox.WithTx(tx)
			if err := outboxQtx.Create(ctx, kafka.OutboxEvent{
				ID:            uuid.NewString(),
				RequestID:     rid,
				AggregateType: "kasbon",
				AggregateID:   k.ID.String(),
				EventType:     event.EventType,
				Topic:         events.KasbonDeductedTopic,
				Payload:       payload,
				Status:        kafka.OutboxStatusPending,
			}); err != nil {
				return nil, err
			}
		}

		results = append(results, payroll.ReconcileResult{
			KasbonID:  k.ID.String(),
			PayrollID: payrollID.String(),
		})
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	if len(results) > 0 {
		s.logger.Info("kasbon deductions reconciled",
			zap.String("request_id", rid),
			zap.String("company_id", companyID),
			zap.Int("matched", len(results)),
		)
	}

	return results, nil
}

func mapToResponse(k Kasbon) KasbonResponse {
	resp := KasbonResponse{
		ID:             k.ID.String(),
		CompanyID:      k.CompanyID.String(),
		WorkerID:       k.WorkerID.String(),
		KasbonNumber:   k.KasbonNumber,
		Date:           k.Date.Format("2006-01-02"),
		Amount:         k.Amount,
		Reason:         k.Reason,
		Status:         k.Status,
		RejectedReason: k.RejectedReason,
		CreatedBy:      k.CreatedBy.String(),
	}

	if k.ApprovedBy != nil {
		v := k.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if k.ApprovedAt != nil {
		v := k.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	if k.RejectedBy != nil {
		v := k.RejectedBy.String()
		resp.RejectedBy = &v
	}
	if k.RejectedAt != nil {
		v := k.RejectedAt.Format(time.RFC3339)
		resp.RejectedAt = &v
	}
	if k.DeductedFromPayroll != nil {
		v := k.DeductedFromPayroll.String()
		resp.DeductedFromPayroll = &v
	}
	if k.SettledAt != nil {
		v := k.SettledAt.Format(time.RFC3339)
		resp.SettledAt = &v
	}

	return resp
}
