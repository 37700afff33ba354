package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	attendanceerrors "go-mandor/internal/attendance/errors"
	"go-mandor/internal/shared/clock"
	"go-mandor/internal/shared/contextutil"
	"go-mandor/internal/worker"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, companyID, actorID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, companyID string, req CheckOutRequest) (AttendanceResponse, error)
	GetAll(ctx context.Context, companyID string) ([]AttendanceResponse, error)
	GetByWorker(ctx context.Context, companyID, workerID string) ([]AttendanceResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	workerRepo worker.Repository
	clk        clock.Clock
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, workerRepo worker.Repository) Service {
	return NewServiceWithClock(db, repo, workerRepo, clock.Real())
}

func NewServiceWithClock(db *sql.DB, repo Repository, workerRepo worker.Repository, clk clock.Clock) Service {
	return &service{
		db:         db,
		repo:       repo,
		workerRepo: workerRepo,
		clk:        clk,
		logger:     zap.L().Named("attendance.service"),
	}
}

func (s *service) CheckIn(ctx context.Context, companyID, actorID string, req CheckInRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !ValidSource(req.Source) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidSource
	}

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return AttendanceResponse{}, errors.New("invalid company id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	workerQtx := s.workerRepo.WithTx(tx)

	active, err := workerQtx.ExistsActive(ctx, companyID, req.WorkerID.String())
	if err != nil {
		return AttendanceResponse{}, err
	}
	if !active {
		if _, findErr := workerQtx.FindByIDAndCompany(ctx, companyID, req.WorkerID.String()); findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return AttendanceResponse{}, attendanceerrors.ErrWorkerNotFound
			}
			return AttendanceResponse{}, findErr
		}
		return AttendanceResponse{}, attendanceerrors.ErrWorkerInactive
	}

	now := s.clk.Now()
	today := now.Truncate(24 * time.Hour)

	existing, err := qtx.FindByWorkerAndDate(ctx, companyID, req.WorkerID.String(), today)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, err
	}
	if existing != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}

	status := StatusPresent
	if lateAt(now) {
		status = StatusLate
	}

	source := req.Source
	if source == "" {
		source = SourceManual
	}

	row := &Attendance{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		WorkerID:       req.WorkerID,
		AttendanceDate: today,
		CheckIn:        now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         status,
		Source:         source,
		Notes:          req.Notes,
	}

	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("check-in persist failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("worker checked in",
		zap.String("request_id", rid),
		zap.String("worker_id", req.WorkerID.String()),
		zap.String("source", source),
		zap.String("status", status),
	)

	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, companyID string, req CheckOutRequest) (AttendanceResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.clk.Now()
	today := now.Truncate(24 * time.Hour)

	row, err := qtx.FindByWorkerAndDate(ctx, companyID, req.WorkerID.String(), today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return AttendanceResponse{}, err
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	row.CheckOut = &now
	if req.Latitude != nil {
		row.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		row.Longitude = req.Longitude
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}

	if err := qtx.Update(ctx, row); err != nil {
		return AttendanceResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func (s *service) GetByWorker(ctx context.Context, companyID, workerID string) ([]AttendanceResponse, error) {
	if _, err := uuid.Parse(workerID); err != nil {
		return nil, attendanceerrors.ErrWorkerNotFound
	}
	rows, err := s.repo.FindAllByCompanyAndWorker(ctx, companyID, workerID)
	if err != nil {
		return nil, err
	}
	return mapAll(rows), nil
}

func mapAll(rows []Attendance) []AttendanceResponse {
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		CompanyID:      a.CompanyID.String(),
		WorkerID:       a.WorkerID.String(),
		AttendanceDate: a.AttendanceDate.Format("2006-01-02"),
		CheckIn:        a.CheckIn.Format(time.RFC3339),
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Status:         a.Status,
		Source:         a.Source,
		Notes:          a.Notes,
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}
