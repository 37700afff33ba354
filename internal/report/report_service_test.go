package report_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"go-mandor/internal/overtime"
	"go-mandor/internal/payroll"
	"go-mandor/internal/project"
	"go-mandor/internal/report"
	"go-mandor/internal/transaction"
	"go-mandor/internal/worker"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeTransactionRepository struct {
	sumByTypeFn        func(ctx context.Context, companyID, txType string, from, to time.Time) (int64, error)
	sumExpenseByProjFn func(ctx context.Context, companyID, projectID string) (int64, error)
}

func (f *fakeTransactionRepository) WithTx(tx *sql.Tx) transaction.Repository { return f }
func (f *fakeTransactionRepository) Create(ctx context.Context, t *transaction.Transaction) error {
	return nil
}
func (f *fakeTransactionRepository) FindAllByCompany(ctx context.Context, companyID string, filter transaction.TransactionQueryFilter) ([]transaction.Transaction, error) {
	return nil, nil
}
func (f *fakeTransactionRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*transaction.Transaction, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeTransactionRepository) Update(ctx context.Context, t *transaction.Transaction) error {
	return nil
}
func (f *fakeTransactionRepository) Delete(ctx context.Context, companyID, id string) error {
	return nil
}
func (f *fakeTransactionRepository) SumCompletedByType(ctx context.Context, companyID, txType string, from, to time.Time) (int64, error) {
	if f.sumByTypeFn != nil {
		return f.sumByTypeFn(ctx, companyID, txType, from, to)
	}
	return 0, nil
}
func (f *fakeTransactionRepository) SumCompletedExpenseByProject(ctx context.Context, companyID, projectID string) (int64, error) {
	if f.sumExpenseByProjFn != nil {
		return f.sumExpenseByProjFn(ctx, companyID, projectID)
	}
	return 0, nil
}

type fakePayrollRepository struct {
	byPeriod []payroll.Payroll
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository                 { return f }
func (f *fakePayrollRepository) Create(ctx context.Context, p *payroll.Payroll) error { return nil }
func (f *fakePayrollRepository) Update(ctx context.Context, p *payroll.Payroll) error { return nil }
func (f *fakePayrollRepository) FindAllByCompany(ctx context.Context, companyID string) ([]payroll.Payroll, error) {
	return nil, nil
}
func (f *fakePayrollRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.Payroll, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakePayrollRepository) HasActiveForPeriod(ctx context.Context, companyID, workerID, period string) (bool, error) {
	return false, nil
}
func (f *fakePayrollRepository) FindPendingByCompany(ctx context.Context, companyID string) ([]payroll.Payroll, error) {
	return nil, nil
}
func (f *fakePayrollRepository) FindByCompanyAndPeriod(ctx context.Context, companyID, period string) ([]payroll.Payroll, error) {
	return f.byPeriod, nil
}

type fakeOvertimeRepository struct {
	hoursByWorker map[string]float64
}

func (f *fakeOvertimeRepository) WithTx(tx *sql.Tx) overtime.Repository { return f }
func (f *fakeOvertimeRepository) Create(ctx context.Context, o *overtime.Overtime) error {
	return nil
}
func (f *fakeOvertimeRepository) FindAllByCompany(ctx context.Context, companyID string) ([]overtime.Overtime, error) {
	return nil, nil
}
func (f *fakeOvertimeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*overtime.Overtime, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeOvertimeRepository) Update(ctx context.Context, o *overtime.Overtime) error {
	return nil
}
func (f *fakeOvertimeRepository) Delete(ctx context.Context, companyID, id string) error { return nil }
func (f *fakeOvertimeRepository) SumTotalByWorkerAndPeriod(ctx context.Context, companyID, workerID, period string) (int64, error) {
	return 0, nil
}
func (f *fakeOvertimeRepository) SumHoursByWorkerAndPeriod(ctx context.Context, companyID, workerID, period string) (float64, error) {
	return f.hoursByWorker[workerID], nil
}

type fakeProjectRepository struct {
	projects []project.Project
}

func (f *fakeProjectRepository) WithTx(tx *sql.Tx) project.Repository                 { return f }
func (f *fakeProjectRepository) Create(ctx context.Context, p *project.Project) error { return nil }
func (f *fakeProjectRepository) Update(ctx context.Context, p *project.Project) error { return nil }
func (f *fakeProjectRepository) Delete(ctx context.Context, companyID, id string) error {
	return nil
}
func (f *fakeProjectRepository) FindAllByCompany(ctx context.Context, companyID string) ([]project.Project, error) {
	return f.projects, nil
}
func (f *fakeProjectRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*project.Project, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeProjectRepository) ExistsByIDAndCompany(ctx context.Context, companyID, id string) (bool, error) {
	return false, nil
}

type fakeWorkerRepository struct {
	workers []worker.Worker
}

func (f *fakeWorkerRepository) WithTx(tx *sql.Tx) worker.Repository                 { return f }
func (f *fakeWorkerRepository) Create(ctx context.Context, w *worker.Worker) error { return nil }
func (f *fakeWorkerRepository) Update(ctx context.Context, w *worker.Worker) error { return nil }
func (f *fakeWorkerRepository) FindAllByCompany(ctx context.Context, companyID string) ([]worker.Worker, error) {
	return f.workers, nil
}
func (f *fakeWorkerRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*worker.Worker, error) {
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeWorkerRepository) ExistsActive(ctx context.Context, companyID, id string) (bool, error) {
	return true, nil
}

type reportTestDeps struct {
	svc          report.Service
	redisMock    redismock.ClientMock
	transactions *fakeTransactionRepository
	payrolls     *fakePayrollRepository
	overtimes    *fakeOvertimeRepository
	projects     *fakeProjectRepository
	workers      *fakeWorkerRepository
}

func setupReportServiceTest(t *testing.T) reportTestDeps {
	t.Helper()

	rdb, redisMock := redismock.NewClientMock()

	d := reportTestDeps{
		redisMock:    redisMock,
		transactions: &fakeTransactionRepository{},
		payrolls:     &fakePayrollRepository{},
		overtimes:    &fakeOvertimeRepository{hoursByWorker: make(map[string]float64)},
		projects:     &fakeProjectRepository{},
		workers:      &fakeWorkerRepository{},
	}
	d.svc = report.NewService(d.transactions, d.payrolls, d.overtimes, d.projects, d.workers, rdb)
	return d
}

func TestReportService_CashFlow_NetIsIncomeMinusExpense(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	d := setupReportServiceTest(t)
	d.transactions.sumByTypeFn = func(ctx context.Context, companyID, txType string, from, to time.Time) (int64, error) {
		if txType == transaction.TypeIncome {
			return 10_000_000, nil
		}
		return 6_500_000, nil
	}

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	cacheKey := fmt.Sprintf("reports:cashflow:%s:2026-08-01:2026-08-31", companyID)
	d.redisMock.ExpectGet(cacheKey).RedisNil()

	resp, err := d.svc.CashFlow(ctx, companyID, from, to)

	assert.NoError(t, err)
	assert.Equal(t, int64(10_000_000), resp.TotalIncome)
	assert.Equal(t, int64(6_500_000), resp.TotalExpense)
	assert.Equal(t, int64(3_500_000), resp.Net)
}

func TestReportService_CashFlow_ServedFromCache(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	d := setupReportServiceTest(t)
	d.transactions.sumByTypeFn = func(ctx context.Context, companyID, txType string, from, to time.Time) (int64, error) {
		t.Fatal("cache hit must not touch the database")
		return 0, nil
	}

	cached := report.CashFlowResponse{From: "2026-08-01", To: "2026-08-31", TotalIncome: 42, Net: 42}
	jsonResp, err := json.Marshal(cached)
	assert.NoError(t, err)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	cacheKey := fmt.Sprintf("reports:cashflow:%s:2026-08-01:2026-08-31", companyID)
	d.redisMock.ExpectGet(cacheKey).SetVal(string(jsonResp))

	resp, err := d.svc.CashFlow(ctx, companyID, from, to)

	assert.NoError(t, err)
	assert.Equal(t, cached, resp)
	assert.NoError(t, d.redisMock.ExpectationsWereMet())
}

func TestReportService_Productivity_FortyHourReferenceWeek(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	workerID := uuid.New()

	d := setupReportServiceTest(t)
	d.payrolls.byPeriod = []payroll.Payroll{
		{ID: uuid.New(), WorkerID: workerID, Period: "2026-08", DaysWorked: 4},
	}
	d.overtimes.hoursByWorker[workerID.String()] = 8
	d.workers.workers = []worker.Worker{{ID: workerID, Name: "Budi"}}

	cacheKey := fmt.Sprintf("reports:productivity:%s:2026-08", companyID)
	d.redisMock.ExpectGet(cacheKey).RedisNil()

	resp, err := d.svc.Productivity(ctx, companyID, "2026-08")

	assert.NoError(t, err)
	if assert.Len(t, resp.Workers, 1) {
		row := resp.Workers[0]
		assert.Equal(t, "Budi", row.WorkerName)
		assert.Equal(t, 4, row.DaysWorked)
		assert.Equal(t, 8.0, row.OvertimeHours)
		// (4*8 + 8) / 40 * 100
		assert.Equal(t, 100.0, row.Productivity)
	}
}

func TestReportService_BudgetUtilization_OverrunExceedsHundred(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	projectID := uuid.New()

	d := setupReportServiceTest(t)
	d.projects.projects = []project.Project{
		{ID: projectID, Name: "Ruko Blok A", Budget: 100_000_000},
	}
	d.transactions.sumExpenseByProjFn = func(ctx context.Context, companyID, pid string) (int64, error) {
		return 125_000_000, nil
	}

	cacheKey := fmt.Sprintf("reports:budget:%s", companyID)
	d.redisMock.ExpectGet(cacheKey).RedisNil()

	resp, err := d.svc.BudgetUtilization(ctx, companyID)

	assert.NoError(t, err)
	if assert.Len(t, resp.Projects, 1) {
		assert.Equal(t, int64(125_000_000), resp.Projects[0].Spent)
		assert.Equal(t, 125.0, resp.Projects[0].Utilization)
	}
}
