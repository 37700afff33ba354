package overtime

import (
	"context"
	"database/sql"
	"errors"
	"time"

	overtimeerrors "go-mandor/internal/overtime/errors"
	"go-mandor/internal/payroll"
	"go-mandor/internal/shared/contextutil"
	"go-mandor/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=overtime_service.go -destination=mock/overtime_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateOvertimeRequest) (OvertimeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]OvertimeResponse, error)
	GetByID(ctx context.Context, companyID, id string) (OvertimeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateOvertimeRequest) (OvertimeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	workerRepo  worker.Repository
	payrollRepo payroll.Repository
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	workerRepo worker.Repository,
	payrollRepo payroll.Repository,
) Service {
	return &service{
		db:          db,
		repo:        repo,
		workerRepo:  workerRepo,
		payrollRepo: payrollRepo,
		logger:      zap.L().Named("overtime.service"),
	}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateOvertimeRequest) (OvertimeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidDate
	}
	if !ValidHours(req.Hours) {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidHours
	}
	if req.HourlyRate <= 0 {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidHourlyRate
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return OvertimeResponse{}, errors.New("invalid company id")
	}
	createdBy, err := uuid.Parse(actorID)
	if err != nil {
		return OvertimeResponse{}, errors.New("invalid actor id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create overtime begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return OvertimeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	workerQtx := s.workerRepo.WithTx(tx)
	payrollQtx := s.payrollRepo.WithTx(tx)

	w, err := workerQtx.FindByIDAndCompany(ctx, companyID, req.WorkerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimeResponse{}, overtimeerrors.ErrWorkerNotFound
		}
		return OvertimeResponse{}, err
	}
	if !w.IsActive {
		return OvertimeResponse{}, overtimeerrors.ErrWorkerInactive
	}

	// Once a payroll for the period exists its overtime figure is frozen;
	// late entries would silently disagree with the stored record.
	period := date.Format("2006-01")
	settled, err := payrollQtx.HasActiveForPeriod(ctx, companyID, req.WorkerID, period)
	if err != nil {
		return OvertimeResponse{}, err
	}
	if settled {
		return OvertimeResponse{}, overtimeerrors.ErrAlreadySettled
	}

	o := NewOvertime(companyUUID, w.ID, createdBy, date, req.Hours, req.HourlyRate, req.Description)

	if err := qtx.Create(ctx, o); err != nil {
		s.logger.Error("create overtime persist failed", zap.Error(err))
		return OvertimeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create overtime commit failed", zap.String("request_id", rid), zap.Error(err))
		return OvertimeResponse{}, err
	}

	s.logger.Info("overtime recorded",
		zap.String("request_id", rid),
		zap.String("overtime_id", o.ID.String()),
		zap.String("worker_id", req.WorkerID),
		zap.Float64("hours", req.Hours),
		zap.Int64("total", o.Total),
	)

	return mapToResponse(*o), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]OvertimeResponse, error) {
	entries, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]OvertimeResponse, len(entries))
	for i, o := range entries {
		resp[i] = mapToResponse(o)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (OvertimeResponse, error) {
	o, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotFound
		}
		return OvertimeResponse{}, err
	}
	return mapToResponse(*o), nil
}

// Update replaces the entry's inputs and re-derives total through the
// same formula as Create, so the stored figure cannot drift.
func (s *service) Update(ctx context.Context, companyID, id string, req UpdateOvertimeRequest) (OvertimeResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidDate
	}
	if !ValidHours(req.Hours) {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidHours
	}
	if req.HourlyRate <= 0 {
		return OvertimeResponse{}, overtimeerrors.ErrInvalidHourlyRate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OvertimeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	payrollQtx := s.payrollRepo.WithTx(tx)

	o, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OvertimeResponse{}, overtimeerrors.ErrOvertimeNotFound
		}
		return OvertimeResponse{}, err
	}

	// Both the period the entry leaves and the one it enters must still
	// be open; either side being settled would desync a payroll figure.
	newPeriod := date.Format("2006-01")
	for _, period := range []string{o.Period, newPeriod} {
		settled, err := payrollQtx.HasActiveForPeriod(ctx, companyID, o.WorkerID.String(), period)
		if err != nil {
			return OvertimeResponse{}, err
		}
		if settled {
			return OvertimeResponse{}, overtimeerrors.ErrAlreadySettled
		}
		if newPeriod == o.Period {
			break
		}
	}

	o.Reprice(date, req.Hours, req.HourlyRate, req.Description)

	if err := qtx.Update(ctx, o); err != nil {
		s.logger.Error("update overtime persist failed", zap.Error(err))
		return OvertimeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return OvertimeResponse{}, err
	}

	s.logger.Info("overtime updated",
		zap.String("request_id", rid),
		zap.String("overtime_id", id),
		zap.Float64("hours", req.Hours),
		zap.Int64("total", o.Total),
	)

	return mapToResponse(*o), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	payrollQtx := s.payrollRepo.WithTx(tx)

	o, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return overtimeerrors.ErrOvertimeNotFound
		}
		return err
	}

	settled, err := payrollQtx.HasActiveForPeriod(ctx, companyID, o.WorkerID.String(), o.Period)
	if err != nil {
		return err
	}
	if settled {
		return overtimeerrors.ErrAlreadySettled
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("overtime deleted", zap.String("overtime_id", id))
	return nil
}

func mapToResponse(o Overtime) OvertimeResponse {
	return OvertimeResponse{
		ID:          o.ID.String(),
		CompanyID:   o.CompanyID.String(),
		WorkerID:    o.WorkerID.String(),
		Date:        o.Date.Format("2006-01-02"),
		Period:      o.Period,
		Hours:       o.Hours,
		HourlyRate:  o.HourlyRate,
		Total:       o.Total,
		Description: o.Description,
		CreatedBy:   o.CreatedBy.String(),
	}
}
