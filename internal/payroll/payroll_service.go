package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go-mandor/internal/events"
	"go-mandor/internal/messaging/kafka"
	payrollerrors "go-mandor/internal/payroll/errors"
	"go-mandor/internal/shared/contextutil"
	"go-mandor/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OvertimeSummer is satisfied by the overtime repository. Declared here
// so payroll never imports the overtime package (overtime already
// imports payroll for the pay formula).
type OvertimeSummer interface {
	SumTotalByWorkerAndPeriod(ctx context.Context, companyID, workerID, period string) (int64, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, companyID, actorID string, req GeneratePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, companyID string) ([]PayrollResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error)
	MarkPaid(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	workerRepo   worker.Repository
	overtimeSums OvertimeSummer
	outbox       kafka.OutboxRepository
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	workerRepo worker.Repository,
	overtimeSums OvertimeSummer,
) Service {
	return NewServiceWithOutbox(db, repo, workerRepo, overtimeSums, nil)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	workerRepo worker.Repository,
	overtimeSums OvertimeSummer,
	outboxRepo kafka.OutboxRepository,
) Service {
	return &service{
		db:           db,
		repo:         repo,
		workerRepo:   workerRepo,
		overtimeSums: overtimeSums,
		outbox:       outboxRepo,
		logger:       zap.L().Named("payroll.service"),
	}
}

// Generate snapshots the worker's current daily rate, folds in the
// period's overtime, and writes a PENDING payroll. The calculator
// functions are total, so all range policy is checked here first.
func (s *service) Generate(
	ctx context.Context,
	companyID, actorID string,
	req GeneratePayrollRequest,
) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := time.Parse("2006-01", req.Period); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidPeriod
	}
	if req.DaysWorked < 0 || req.DaysWorked > 31 {
		return PayrollResponse{}, payrollerrors.ErrInvalidDaysWorked
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PayrollResponse{}, errors.New("invalid company id")
	}
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, errors.New("invalid actor id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("generate payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	workerQtx := s.workerRepo.WithTx(tx)

	w, err := workerQtx.FindByIDAndCompany(ctx, companyID, req.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrWorkerNotFound
		}
		return PayrollResponse{}, err
	}
	if !w.IsActive {
		return PayrollResponse{}, payrollerrors.ErrWorkerInactive
	}
	if !worker.ValidDailyRate(w.DailyRate) {
		return PayrollResponse{}, payrollerrors.ErrRateOutOfPolicy
	}

	exists, err := qtx.HasActiveForPeriod(ctx, companyID, req.WorkerID, req.Period)
	if err != nil {
		return PayrollResponse{}, err
	}
	if exists {
		s.logger.Warn("generate payroll duplicate period",
			zap.String("worker_id", req.WorkerID),
			zap.String("period", req.Period),
		)
		return PayrollResponse{}, payrollerrors.ErrPeriodAlreadyExists
	}

	overtimeTotal, err := s.overtimeSums.SumTotalByWorkerAndPeriod(ctx, companyID, req.WorkerID, req.Period)
	if err != nil {
		return PayrollResponse{}, err
	}

	p := NewPayroll(companyUUID, w.ID, createdBy, req.Period, req.DaysWorked, w.DailyRate, overtimeTotal)

	if err := qtx.Create(ctx, p); err != nil {
		s.logger.Error("generate payroll persist failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("generate payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll generated",
		zap.String("request_id", rid),
		zap.String("payroll_id", p.ID.String()),
		zap.String("worker_id", req.WorkerID),
		zap.String("period", req.Period),
		zap.Int64("total_pay", p.TotalPay),
	)

	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]PayrollResponse, error) {
	payrolls, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(payrolls), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error) {
	p, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*p), nil
}

func (s *service) MarkPaid(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	if p.Status != StatusPending {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	p.Status = StatusPaid
	p.PaidAt = &now

	if err := qtx.Update(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	if s.outbox != nil {
		event := events.PayrollPaidEvent{
			EventType:  "payroll_paid",
			RequestID:  rid,
			PayrollID:  p.ID.String(),
			WorkerID:   p.WorkerID.String(),
			CompanyID:  companyID,
			Period:     p.Period,
			TotalPay:   p.TotalPay,
			OccurredAt: now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return PayrollResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "payroll",
			AggregateID:   p.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PayrollPaidTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			return PayrollResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll marked paid",
		zap.String("request_id", rid),
		zap.String("payroll_id", id),
		zap.String("actor_id", actorID),
	)

	return mapToResponse(*p), nil
}

func (s *service) Cancel(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	p, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	// Only a pending payroll can be cancelled; paid money stays paid.
	if p.Status != StatusPending {
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	p.Status = StatusCancelled

	if err := qtx.Update(ctx, p); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll cancelled",
		zap.String("payroll_id", id),
		zap.String("actor_id", actorID),
	)

	return mapToResponse(*p), nil
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:          p.ID.String(),
		CompanyID:   p.CompanyID.String(),
		WorkerID:    p.WorkerID.String(),
		Period:      p.Period,
		DaysWorked:  p.DaysWorked,
		DailyRate:   p.DailyRate,
		RegularPay:  p.RegularPay,
		OvertimePay: p.OvertimePay,
		TotalPay:    p.TotalPay,
		Status:      p.Status,
		CreatedBy:   p.CreatedBy.String(),
	}

	if p.PaidAt != nil {
		v := p.PaidAt.Format(time.RFC3339)
		resp.PaidAt = &v
	}

	return resp
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapToResponse(p)
	}
	return resp
}
