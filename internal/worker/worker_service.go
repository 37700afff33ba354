package worker

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"go-mandor/internal/events"
	"go-mandor/internal/messaging/kafka"
	"go-mandor/internal/shared/contextutil"
	"go-mandor/internal/shared/counter"
	workererrors "go-mandor/internal/worker/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const WorkerOptionsKeyPrefix = "workers:options:"

func GetWorkerOptionsKey(companyID string) string {
	return WorkerOptionsKeyPrefix + companyID
}

//go:generate mockgen -source=worker_service.go -destination=mock/worker_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateWorkerRequest) (WorkerResponse, error)
	GetAll(ctx context.Context, companyID string) ([]WorkerResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]WorkerResponse, error)
	GetByID(ctx context.Context, companyID, id string) (WorkerResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateWorkerRequest) (WorkerResponse, error)
	Deactivate(ctx context.Context, companyID, id string) (WorkerResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counterRepo counter.Repository, rdb *redis.Client) Service {
	return NewServiceWithOutbox(db, repo, counterRepo, nil, rdb)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
) Service {
	return &service{
		db:      db,
		repo:    repo,
		counter: counterRepo,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  zap.L().Named("worker.service"),
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateWorkerRequest,
) (WorkerResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if !ValidDailyRate(req.DailyRate) {
		s.logger.Warn("create worker rejected, rate out of policy",
			zap.String("request_id", rid),
			zap.Int64("daily_rate", req.DailyRate),
		)
		return WorkerResponse{}, workererrors.ErrInvalidDailyRate
	}

	joinDate, err := time.Parse("2006-01-02", req.JoinDate)
	if err != nil {
		return WorkerResponse{}, workererrors.ErrInvalidJoinDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create worker begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	nextVal, err := s.counter.GetNextValue(ctx, companyID, "worker_number")
	if err != nil {
		s.logger.Error("create worker generate number failed", zap.Error(err))
		return WorkerResponse{}, err
	}

	skill := req.Skill
	if skill == "" {
		skill = "UMUM"
	}

	w := &Worker{
		ID:           uuid.New(),
		CompanyID:    uuid.MustParse(companyID),
		WorkerNumber: fmt.Sprintf("TKG-%05d", nextVal),
		Name:         req.Name,
		Phone:        req.Phone,
		Skill:        skill,
		DailyRate:    req.DailyRate,
		IsActive:     true,
		JoinDate:     joinDate,
	}

	if err := qtx.Create(ctx, w); err != nil {
		s.logger.Error("create worker persist failed", zap.Error(err))
		return WorkerResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.WorkerCreatedEvent{
			EventType:  "worker_created",
			RequestID:  rid,
			WorkerID:   w.ID.String(),
			CompanyID:  companyID,
			OccurredAt: time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return WorkerResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "worker",
			AggregateID:   w.ID.String(),
			EventType:     event.EventType,
			Topic:         events.WorkerCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create worker outbox persist failed",
				zap.String("worker_id", w.ID.String()),
				zap.Error(err),
			)
			return WorkerResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create worker commit failed", zap.String("request_id", rid), zap.Error(err))
		return WorkerResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	s.logger.Info("create worker success",
		zap.String("request_id", rid),
		zap.String("worker_id", w.ID.String()),
		zap.String("worker_number", w.WorkerNumber),
	)

	return mapToResponse(*w), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]WorkerResponse, error) {
	workers, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(workers), nil
}

// GetOptions serves the worker dropdowns; master data, so it goes through
// redis with singleflight collapsing concurrent misses.
func (s *service) GetOptions(ctx context.Context, companyID string) ([]WorkerResponse, error) {
	cacheKey := GetWorkerOptionsKey(companyID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp []WorkerResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		workers, err := s.repo.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		resp := make([]WorkerResponse, 0, len(workers))
		for _, w := range workers {
			if !w.IsActive {
				continue
			}
			resp = append(resp, mapToResponse(w))
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, 30*time.Minute)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]WorkerResponse), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (WorkerResponse, error) {
	w, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*w), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateWorkerRequest,
) (WorkerResponse, error) {
	if !ValidDailyRate(req.DailyRate) {
		return WorkerResponse{}, workererrors.ErrInvalidDailyRate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}

	w.Name = req.Name
	w.Phone = req.Phone
	if req.Skill != "" {
		w.Skill = req.Skill
	}
	w.DailyRate = req.DailyRate

	if err := qtx.Update(ctx, w); err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return WorkerResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	return mapToResponse(*w), nil
}

// Deactivate keeps the row: payroll and kasbon history reference workers
// by id, so workers who quit are switched off, never deleted.
func (s *service) Deactivate(ctx context.Context, companyID, id string) (WorkerResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkerResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	w, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}
	if !w.IsActive {
		return WorkerResponse{}, workererrors.ErrWorkerInactive
	}

	w.IsActive = false

	if err := qtx.Update(ctx, w); err != nil {
		return WorkerResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return WorkerResponse{}, err
	}

	s.invalidateOptionsCache(ctx, companyID)

	s.logger.Info("worker deactivated",
		zap.String("worker_id", id),
		zap.String("company_id", companyID),
	)

	return mapToResponse(*w), nil
}

func (s *service) invalidateOptionsCache(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetWorkerOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate worker options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(w Worker) WorkerResponse {
	return WorkerResponse{
		ID:           w.ID.String(),
		CompanyID:    w.CompanyID.String(),
		WorkerNumber: w.WorkerNumber,
		Name:         w.Name,
		Phone:        w.Phone,
		Skill:        w.Skill,
		DailyRate:    w.DailyRate,
		IsActive:     w.IsActive,
		JoinDate:     w.JoinDate.Format("2006-01-02"),
	}
}

func mapToListResponse(workers []Worker) []WorkerResponse {
	resp := make([]WorkerResponse, len(workers))
	for i, w := range workers {
		resp[i] = mapToResponse(w)
	}
	return resp
}
