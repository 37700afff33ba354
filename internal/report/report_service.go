package report

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"go-mandor/internal/overtime"
	"go-mandor/internal/payroll"
	"go-mandor/internal/project"
	"go-mandor/internal/transaction"
	"go-mandor/internal/worker"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Reports are derived data recomputed per query; the cache exists only
// to absorb dashboard refresh bursts, so the TTL stays short and no
// invalidation hooks are needed.
const cacheTTL = 5 * time.Minute

const hoursPerDay = 8.0

// referenceWeekHours is the denominator for the productivity ratio.
const referenceWeekHours = 40.0

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	CashFlow(ctx context.Context, companyID string, from, to time.Time) (CashFlowResponse, error)
	Productivity(ctx context.Context, companyID, period string) (ProductivityResponse, error)
	BudgetUtilization(ctx context.Context, companyID string) (BudgetUtilizationResponse, error)
}

type service struct {
	transactions transaction.Repository
	payrolls     payroll.Repository
	overtimes    overtime.Repository
	projects     project.Repository
	workers      worker.Repository
	rdb          *redis.Client
	sf           *singleflight.Group
	logger       *zap.Logger
}

func NewService(
	transactions transaction.Repository,
	payrolls payroll.Repository,
	overtimes overtime.Repository,
	projects project.Repository,
	workers worker.Repository,
	rdb *redis.Client,
) Service {
	return &service{
		transactions: transactions,
		payrolls:     payrolls,
		overtimes:    overtimes,
		projects:     projects,
		workers:      workers,
		rdb:          rdb,
		sf:           &singleflight.Group{},
		logger:       zap.L().Named("report.service"),
	}
}

func (s *service) CashFlow(ctx context.Context, companyID string, from, to time.Time) (CashFlowResponse, error) {
	cacheKey := fmt.Sprintf("reports:cashflow:%s:%s:%s",
		companyID, from.Format("2006-01-02"), to.Format("2006-01-02"))

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp CashFlowResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		income, err := s.transactions.SumCompletedByType(ctx, companyID, transaction.TypeIncome, from, to)
		if err != nil {
			return nil, err
		}
		expense, err := s.transactions.SumCompletedByType(ctx, companyID, transaction.TypeExpense, from, to)
		if err != nil {
			return nil, err
		}

		resp := CashFlowResponse{
			From:         from.Format("2006-01-02"),
			To:           to.Format("2006-01-02"),
			TotalIncome:  income,
			TotalExpense: expense,
			Net:          income - expense,
		}
		s.store(ctx, cacheKey, resp)
		return resp, nil
	})
	if err != nil {
		return CashFlowResponse{}, err
	}
	return v.(CashFlowResponse), nil
}

func (s *service) Productivity(ctx context.Context, companyID, period string) (ProductivityResponse, error) {
	cacheKey := fmt.Sprintf("reports:productivity:%s:%s", companyID, period)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp ProductivityResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		payrolls, err := s.payrolls.FindByCompanyAndPeriod(ctx, companyID, period)
		if err != nil {
			return nil, err
		}

		names := make(map[string]string)
		if workers, err := s.workers.FindAllByCompany(ctx, companyID); err == nil {
			for _, w := range workers {
				names[w.ID.String()] = w.Name
			}
		}

		rows := make([]WorkerProductivity, 0, len(payrolls))
		for _, p := range payrolls {
			workerID := p.WorkerID.String()
			hours, err := s.overtimes.SumHoursByWorkerAndPeriod(ctx, companyID, workerID, period)
			if err != nil {
				return nil, err
			}
			worked := float64(p.DaysWorked)*hoursPerDay + hours
			rows = append(rows, WorkerProductivity{
				WorkerID:      workerID,
				WorkerName:    names[workerID],
				DaysWorked:    p.DaysWorked,
				OvertimeHours: hours,
				Productivity:  round2(worked / referenceWeekHours * 100),
			})
		}

		resp := ProductivityResponse{Period: period, Workers: rows}
		s.store(ctx, cacheKey, resp)
		return resp, nil
	})
	if err != nil {
		return ProductivityResponse{}, err
	}
	return v.(ProductivityResponse), nil
}

func (s *service) BudgetUtilization(ctx context.Context, companyID string) (BudgetUtilizationResponse, error) {
	cacheKey := fmt.Sprintf("reports:budget:%s", companyID)

	if s.rdb != nil {
		cached, err := s.rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			var resp BudgetUtilizationResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		projects, err := s.projects.FindAllByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		rows := make([]ProjectBudgetUtilization, 0, len(projects))
		for _, p := range projects {
			spent, err := s.transactions.SumCompletedExpenseByProject(ctx, companyID, p.ID.String())
			if err != nil {
				return nil, err
			}
			util := 0.0
			if p.Budget > 0 {
				util = round2(float64(spent) / float64(p.Budget) * 100)
			}
			rows = append(rows, ProjectBudgetUtilization{
				ProjectID:   p.ID.String(),
				ProjectName: p.Name,
				Budget:      p.Budget,
				Spent:       spent,
				Utilization: util,
			})
		}

		resp := BudgetUtilizationResponse{Projects: rows}
		s.store(ctx, cacheKey, resp)
		return resp, nil
	})
	if err != nil {
		return BudgetUtilizationResponse{}, err
	}
	return v.(BudgetUtilizationResponse), nil
}

func (s *service) store(ctx context.Context, key string, resp any) {
	if s.rdb == nil {
		return
	}
	jsonData, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, jsonData, cacheTTL).Err(); err != nil {
		s.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
