package kasbon_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"go-mandor/internal/events"
	"go-mandor/internal/kasbon"
	kasbonerrors "go-mandor/internal/kasbon/errors"
	"go-mandor/internal/messaging/kafka"
	"go-mandor/internal/payroll"
	"go-mandor/internal/worker"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// memKasbonRepository keeps records in a slice so reconciliation tests can
// observe state across calls; insertion order doubles as created_at order.
type memKasbonRepository struct {
	records []*kasbon.Kasbon
}

func (m *memKasbonRepository) WithTx(tx *sql.Tx) kasbon.Repository { return m }

func (m *memKasbonRepository) Create(ctx context.Context, k *kasbon.Kasbon) error {
	cp := *k
	m.records = append(m.records, &cp)
	return nil
}

func (m *memKasbonRepository) FindAllByCompany(ctx context.Context, companyID string) ([]kasbon.Kasbon, error) {
	out := make([]kasbon.Kasbon, 0, len(m.records))
	for _, k := range m.records {
		out = append(out, *k)
	}
	return out, nil
}

func (m *memKasbonRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*kasbon.Kasbon, error) {
	for _, k := range m.records {
		if k.ID.String() == id {
			cp := *k
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memKasbonRepository) Update(ctx context.Context, k *kasbon.Kasbon) error {
	for i, existing := range m.records {
		if existing.ID == k.ID {
			cp := *k
			m.records[i] = &cp
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memKasbonRepository) Delete(ctx context.Context, companyID, id string) error {
	for i, k := range m.records {
		if k.ID.String() == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *memKasbonRepository) FindApprovedUndeducted(ctx context.Context, companyID string) ([]kasbon.Kasbon, error) {
	out := make([]kasbon.Kasbon, 0)
	for _, k := range m.records {
		if k.Status == kasbon.StatusApproved && k.DeductedFromPayroll == nil {
			out = append(out, *k)
		}
	}
	return out, nil
}

func (m *memKasbonRepository) ListCompaniesWithApprovedUndeducted(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, k := range m.records {
		if k.Status == kasbon.StatusApproved && k.DeductedFromPayroll == nil && !seen[k.CompanyID.String()] {
			seen[k.CompanyID.String()] = true
			out = append(out, k.CompanyID.String())
		}
	}
	return out, nil
}

type fakeWorkerRepository struct {
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*worker.Worker, error)
}

func (f *fakeWorkerRepository) WithTx(tx *sql.Tx) worker.Repository                 { return f }
func (f *fakeWorkerRepository) Create(ctx context.Context, w *worker.Worker) error { return nil }
func (f *fakeWorkerRepository) Update(ctx context.Context, w *worker.Worker) error { return nil }

func (f *fakeWorkerRepository) FindAllByCompany(ctx context.Context, companyID string) ([]worker.Worker, error) {
	return nil, nil
}

func (f *fakeWorkerRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*worker.Worker, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkerRepository) ExistsActive(ctx context.Context, companyID, id string) (bool, error) {
	return true, nil
}

type fakePayrollRepository struct {
	pending []payroll.Payroll
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
	return f.pending, nil
}

func (f *fakePayrollRepository) FindByCompanyAndPeriod(ctx context.Context, companyID, period string) ([]payroll.Payroll, error) {
	return nil, nil
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, companyID, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type fakeOutboxRepository struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type kasbonServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     kasbon.Service
	repo        *memKasbonRepository
	workerRepo  *fakeWorkerRepository
	payrollRepo *fakePayrollRepository
	outbox      *fakeOutboxRepository
}

func setupKasbonServiceTest(t *testing.T) *kasbonServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &memKasbonRepository{}
	workerRepo := &fakeWorkerRepository{}
	payrollRepo := &fakePayrollRepository{}
	outbox := &fakeOutboxRepository{}
	svc := kasbon.NewServiceWithOutbox(db, repo, workerRepo, payrollRepo, &fakeCounterRepository{}, outbox)

	return &kasbonServiceDeps{
		db: db, sqlMock: sqlMock, service: svc,
		repo: repo, workerRepo: workerRepo, payrollRepo: payrollRepo, outbox: outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func activeWorker(companyID string, id uuid.UUID) *worker.Worker {
	return &worker.Worker{
		ID:        id,
		CompanyID: uuid.MustParse(companyID),
		Name:      "Slamet Riyadi",
		DailyRate: 150_000,
		IsActive:  true,
	}
}

func TestKasbonService_Submit(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	workerID := uuid.New()

	deps := setupKasbonServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, true)
	deps.workerRepo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*worker.Worker, error) {
		return activeWorker(cid, workerID), nil
	}

	resp, err := deps.service.Submit(ctx, companyID, uuid.New().String(), kasbon.SubmitKasbonRequest{
		WorkerID: workerID.String(),
		Date:     "2026-08-10",
		Amount:   500_000,
		Reason:   "biaya berobat",
	})

	assert.NoError(t, err)
	assert.Equal(t, kasbon.StatusPending, resp.Status)
	assert.Equal(t, "KSB-00001", resp.KasbonNumber)
	assert.Len(t, deps.repo.records, 1)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestKasbonService_Submit_BelowMinimum(t *testing.T) {
	ctx := context.Background()

	deps := setupKasbonServiceTest(t)
	defer deps.db.Close()

	_, err := deps.service.Submit(ctx, uuid.New().String(), uuid.New().String(), kasbon.SubmitKasbonRequest{
		WorkerID: uuid.New().String(),
		Date:     "2026-08-10",
		Amount:   5_000,
		Reason:   "uang bensin",
	})

	assert.ErrorIs(t, err, kasbonerrors.ErrAmountBelowMinimum)
	assert.Empty(t, deps.repo.records)
}

func TestKasbonService_Approve_OnlyFromPending(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	for _, status := range []string{kasbon.StatusApproved, kasbon.StatusPaid, kasbon.StatusDeducted, kasbon.StatusRejected} {
		deps := setupKasbonServiceTest(t)

		k := &kasbon.Kasbon{
			ID:        uuid.New(),
			CompanyID: uuid.MustParse(companyID),
			WorkerID:  uuid.New(),
			Amount:    100_000,
			Status:    status,
		}
		deps.repo.records = append(deps.repo.records, k)

		expectTx(t, deps.sqlMock, false)
		_, err := deps.service.Approve(ctx, companyID, actorID, k.ID.String())

		assert.ErrorIs(t, err, kasbonerrors.ErrInvalidStatusTransition, "from %s", status)
		assert.Equal(t, status, deps.repo.records[0].Status, "record must be unchanged")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		deps.db.Close()
	}
}

func TestKasbonService_Approve_SetsApprover(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()

	deps := setupKasbonServiceTest(t)
	defer deps.db.Close()

	k := &kasbon.Kasbon{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		WorkerID:  uuid.New(),
		Amount:    100_000,
		Status:    kasbon.StatusPending,
	}
	deps.repo.records = append(deps.repo.records, k)

	expectTx(t, deps.sqlMock, true)
	resp, err := deps.service.Approve(ctx, companyID, actorID, k.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, kasbon.StatusApproved, resp.Status)
	if assert.NotNil(t, resp.ApprovedBy) {
		assert.Equal(t, actorID, *resp.ApprovedBy)
	}
	assert.NotNil(t, resp.ApprovedAt)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestKasbonService_Reject_TerminalState(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	deps := setupKasbonServiceTest(t)
	defer deps.db.Close()

	k := &kasbon.Kasbon{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		WorkerID:  uuid.New(),
		Amount:    100_000,
		Status:    kasbon.StatusPending,
	}
	deps.repo.records = append(deps.repo.records, k)

	expectTx(t, deps.sqlMock, true)
	resp, err := deps.service.Reject(ctx, companyID, uuid.New().String(), k.ID.String(), kasbon.RejectKasbonRequest{
		Reason: "duplicate request",
	})

	assert.NoError(t, err)
	assert.Equal(t, kasbon.StatusRejected, resp.Status)
	if assert.NotNil(t, resp.RejectedReason) {
		assert.Equal(t, "duplicate request", *resp.RejectedReason)
	}

	// Rejected is terminal: no further approval.
	expectTx(t, deps.sqlMock, false)
	_, err = deps.service.Approve(ctx, companyID, uuid.New().String(), k.ID.String())
	assert.ErrorIs(t, err, kasbonerrors.ErrInvalidStatusTransition)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestKasbonService_Reconcile_DeductsAgainstPendingPayroll(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	workerID := uuid.New()
	payrollID := uuid.New()

	deps := setupKasbonServiceTest(t)
	defer deps.db.Close()

	k := &kasbon.Kasbon{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		WorkerID:  workerID,
		Amount:    500_000,
		Status:    kasbon.StatusApproved,
	}
	deps.repo.records = append(deps.repo.records, k)
	deps.payrollRepo.pending = []payroll.Payroll{
		{ID: payrollID, CompanyID: uuid.MustParse(companyID), WorkerID: workerID, Status: payroll.StatusPending},
	}

	expectTx(t, deps.sqlMock, true)
	matches, err := deps.service.Reconcile(ctx, companyID)

	assert.NoError(t, err)
	if assert.Len(t, matches, 1) {
		assert.Equal(t, k.ID.String(), matches[0].KasbonID)
		assert.Equal(t, payrollID.String(), matches[0].PayrollID)
	}

	settled := deps.repo.records[0]
	assert.Equal(t, kasbon.StatusDeducted, settled.Status)
	if assert.NotNil(t, settled.DeductedFromPayroll) {
		assert.Equal(t, payrollID, *settled.DeductedFromPayroll)
	}
	assert.NotNil(t, settled.SettledAt)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestKasbonService_Reconcile_Idempotent(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	workerID := uuid.New()

	deps := setupKasbonServiceTest(t)
	defer deps.db.Close()

	deps.repo.records = append(deps.repo.records, &kasbon.Kasbon{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		WorkerID:  workerID,
		Amount:    250_000,
		Status:    kasbon.StatusApproved,
	})
	deps.payrollRepo.pending = []payroll.Payroll{
		{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), WorkerID: workerID, Status: payroll.StatusPending},
	}

	expectTx(t, deps.sqlMock, true)
	first, err := deps.service.Reconcile(ctx, companyID)
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	expectTx(t, deps.sqlMock, true)
	second, err := deps.service.Reconcile(ctx, companyID)
	assert.NoError(t, err)
	assert.Empty(t, second, "second pass with no intervening mutation must match nothing")
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestKasbonService_Reconcile_NoPayrollForWorker(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	deps := setupKasbonServiceTest(t)
	defer deps.db.Close()

	deps.repo.records = append(deps.repo.records, &kasbon.Kasbon{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		WorkerID:  uuid.New(),
		Amount:    250_000,
		Status:    kasbon.StatusApproved,
	})
	// Pending payroll belongs to a different worker.
	deps.payrollRepo.pending = []payroll.Payroll{
		{ID: uuid.New(), CompanyID: uuid.MustParse(companyID), WorkerID: uuid.New(), Status: payroll.StatusPending},
	}

	expectTx(t, deps.sqlMock, true)
	matches, err := deps.service.Reconcile(ctx, companyID)

	assert.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, kasbon.StatusApproved, deps.repo.records[0].Status)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestKasbonService_Reconcile_OrderedFirstToFirst(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	workerID := uuid.New()
	firstPayroll := uuid.New()
	secondPayroll := uuid.New()

	deps := setupKasbonServiceTest(t)
	defer deps.db.Close()

	older := &kasbon.Kasbon{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		WorkerID:  workerID,
		Amount:    100_000,
		Status:    kasbon.StatusApproved,
	}
	newer := &kasbon.Kasbon{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		WorkerID:  workerID,
		Amount:    200_000,
		Status:    kasbon.StatusApproved,
	}
	deps.repo.records = append(deps.repo.records, older, newer)
	deps.payrollRepo.pending = []payroll.Payroll{
		{ID: firstPayroll, CompanyID: uuid.MustParse(companyID), WorkerID: workerID, Status: payroll.StatusPending},
		{ID: secondPayroll, CompanyID: uuid.MustParse(companyID), WorkerID: workerID, Status: payroll.StatusPending},
	}

	expectTx(t, deps.sqlMock, true)
	matches, err := deps.service.Reconcile(ctx, companyID)

	assert.NoError(t, err)
	// Both kasbons settle against the first pending payroll found.
	if assert.Len(t, matches, 2) {
		assert.Equal(t, older.ID.String(), matches[0].KasbonID)
		assert.Equal(t, firstPayroll.String(), matches[0].PayrollID)
		assert.Equal(t, newer.ID.String(), matches[1].KasbonID)
		assert.Equal(t, firstPayroll.String(), matches[1].PayrollID)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestKasbonService_Reconcile_QueuesDeductedEvent(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	workerID := uuid.New()
	payrollID := uuid.New()

	deps := setupKasbonServiceTest(t)
	defer deps.db.Close()

	k := &kasbon.Kasbon{
		ID:        uuid.New(),
		CompanyID: uuid.MustParse(companyID),
		WorkerID:  workerID,
		Amount:    500_000,
		Status:    kasbon.StatusApproved,
	}
	deps.repo.records = append(deps.repo.records, k)
	deps.payrollRepo.pending = []payroll.Payroll{
		{ID: payrollID, CompanyID: uuid.MustParse(companyID), WorkerID: workerID, Status: payroll.StatusPending},
	}

	expectTx(t, deps.sqlMock, true)
	_, err := deps.service.Reconcile(ctx, companyID)
	assert.NoError(t, err)

	if assert.Len(t, deps.outbox.created, 1) {
		event := deps.outbox.created[0]
		assert.Equal(t, events.KasbonDeductedTopic, event.Topic)

		var payload events.KasbonDeductedEvent
		assert.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, k.ID.String(), payload.KasbonID)
		assert.Equal(t, payrollID.String(), payload.PayrollID)
		assert.Equal(t, int64(500_000), payload.Amount)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestKasbonService_Delete_AnyState(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	deps := setupKasbonServiceTest(t)
	defer deps.db.Close()

	for _, status := range []string{kasbon.StatusPending, kasbon.StatusApproved, kasbon.StatusDeducted} {
		k := &kasbon.Kasbon{
			ID:        uuid.New(),
			CompanyID: uuid.MustParse(companyID),
			WorkerID:  uuid.New(),
			Amount:    100_000,
			Status:    status,
		}
		deps.repo.records = append(deps.repo.records, k)

		expectTx(t, deps.sqlMock, true)
		err := deps.service.Delete(ctx, companyID, k.ID.String())

		assert.NoError(t, err, "delete from %s", status)
		assert.Empty(t, deps.repo.records)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestKasbonService_Delete_NotFound(t *testing.T) {
	ctx := context.Background()

	deps := setupKasbonServiceTest(t)
	defer deps.db.Close()

	expectTx(t, deps.sqlMock, false)
	err := deps.service.Delete(ctx, uuid.New().String(), uuid.New().String())

	assert.ErrorIs(t, err, kasbonerrors.ErrKasbonNotFound)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}
