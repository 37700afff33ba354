package worker_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"go-mandor/internal/events"
	"go-mandor/internal/messaging/kafka"
	"go-mandor/internal/worker"
	workererrors "go-mandor/internal/worker/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeWorkerRepository struct {
	createFn             func(ctx context.Context, w *worker.Worker) error
	findAllByCompanyFn   func(ctx context.Context, companyID string) ([]worker.Worker, error)
	findByIDAndCompanyFn func(ctx context.Context, companyID, id string) (*worker.Worker, error)
	updateFn             func(ctx context.Context, w *worker.Worker) error
}

func (f *fakeWorkerRepository) WithTx(tx *sql.Tx) worker.Repository { return f }

func (f *fakeWorkerRepository) Create(ctx context.Context, w *worker.Worker) error {
	if f.createFn != nil {
		return f.createFn(ctx, w)
	}
	return nil
}

func (f *fakeWorkerRepository) FindAllByCompany(ctx context.Context, companyID string) ([]worker.Worker, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeWorkerRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*worker.Worker, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeWorkerRepository) Update(ctx context.Context, w *worker.Worker) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, w)
	}
	return nil
}

func (f *fakeWorkerRepository) ExistsActive(ctx context.Context, companyID, id string) (bool, error) {
	return true, nil
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

type workerServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	redisMock redismock.ClientMock
	service   worker.Service
	repo      *fakeWorkerRepository
	outbox    *fakeOutboxRepository
}

func setupWorkerServiceTest(t *testing.T) *workerServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()

	repo := &fakeWorkerRepository{}
	outbox := &fakeOutboxRepository{}
	svc := worker.NewServiceWithOutbox(db, repo, &fakeCounterRepository{}, outbox, rdb)

	return &workerServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		redisMock: redisMock,
		service:   svc,
		repo:      repo,
		outbox:    outbox,
	}
}

func TestWorkerService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	deps := setupWorkerServiceTest(t)

	var created *worker.Worker
	deps.repo.createFn = func(ctx context.Context, w *worker.Worker) error {
		created = w
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.redisMock.ExpectDel(worker.GetWorkerOptionsKey(companyID)).SetVal(1)

	resp, err := deps.service.Create(ctx, companyID, worker.CreateWorkerRequest{
		Name:      "Budi Santoso",
		DailyRate: 150_000,
		JoinDate:  "2026-08-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, "TKG-00001", resp.WorkerNumber)
	assert.Equal(t, "UMUM", resp.Skill, "empty skill defaults to UMUM")
	assert.True(t, resp.IsActive)
	assert.NotNil(t, created)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	assert.NoError(t, deps.redisMock.ExpectationsWereMet())
}

func TestWorkerService_Create_QueuesCreatedEvent(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	deps := setupWorkerServiceTest(t)

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.redisMock.ExpectDel(worker.GetWorkerOptionsKey(companyID)).SetVal(1)

	resp, err := deps.service.Create(ctx, companyID, worker.CreateWorkerRequest{
		Name:      "Siti Aminah",
		DailyRate: 200_000,
		JoinDate:  "2026-08-10",
	})

	assert.NoError(t, err)
	if assert.Len(t, deps.outbox.created, 1) {
		evt := deps.outbox.created[0]
		assert.Equal(t, events.WorkerCreatedTopic, evt.Topic)
		assert.Equal(t, "worker", evt.AggregateType)
		assert.Equal(t, resp.ID, evt.AggregateID)

		var payload events.WorkerCreatedEvent
		assert.NoError(t, json.Unmarshal(evt.Payload, &payload))
		assert.Equal(t, resp.ID, payload.WorkerID)
	}
}

func TestWorkerService_Create_RateOutOfPolicy(t *testing.T) {
	ctx := context.Background()

	deps := setupWorkerServiceTest(t)

	for _, rate := range []int64{0, 999, 1_000_001} {
		_, err := deps.service.Create(ctx, uuid.New().String(), worker.CreateWorkerRequest{
			Name:      "Tukang",
			DailyRate: rate,
			JoinDate:  "2026-08-01",
		})
		assert.ErrorIs(t, err, workererrors.ErrInvalidDailyRate, "rate %d", rate)
	}
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet(), "rejected create must not open a tx")
}

func TestWorkerService_Create_InvalidJoinDate(t *testing.T) {
	ctx := context.Background()

	deps := setupWorkerServiceTest(t)

	_, err := deps.service.Create(ctx, uuid.New().String(), worker.CreateWorkerRequest{
		Name:      "Tukang",
		DailyRate: 150_000,
		JoinDate:  "01-08-2026",
	})
	assert.ErrorIs(t, err, workererrors.ErrInvalidJoinDate)
}

func TestWorkerService_Deactivate(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	workerID := uuid.New()

	deps := setupWorkerServiceTest(t)

	active := true
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*worker.Worker, error) {
		return &worker.Worker{ID: workerID, CompanyID: companyID, Name: "Budi", IsActive: active, DailyRate: 150_000}, nil
	}
	deps.repo.updateFn = func(ctx context.Context, w *worker.Worker) error {
		active = w.IsActive
		return nil
	}

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectCommit()
	deps.redisMock.ExpectDel(worker.GetWorkerOptionsKey(companyID.String())).SetVal(1)

	resp, err := deps.service.Deactivate(ctx, companyID.String(), workerID.String())
	assert.NoError(t, err)
	assert.False(t, resp.IsActive)

	deps.sqlMock.ExpectBegin()
	deps.sqlMock.ExpectRollback()
	_, err = deps.service.Deactivate(ctx, companyID.String(), workerID.String())
	assert.ErrorIs(t, err, workererrors.ErrWorkerInactive)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestWorkerService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()

	deps := setupWorkerServiceTest(t)

	_, err := deps.service.GetByID(ctx, uuid.New().String(), uuid.New().String())
	assert.ErrorIs(t, err, workererrors.ErrWorkerNotFound)
}

func TestWorkerService_GetOptions_FiltersInactive(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	deps := setupWorkerServiceTest(t)

	deps.repo.findAllByCompanyFn = func(ctx context.Context, cid string) ([]worker.Worker, error) {
		return []worker.Worker{
			{ID: uuid.New(), CompanyID: companyID, Name: "Aktif", IsActive: true, DailyRate: 150_000},
			{ID: uuid.New(), CompanyID: companyID, Name: "Berhenti", IsActive: false, DailyRate: 150_000},
		}, nil
	}

	deps.redisMock.ExpectGet(worker.GetWorkerOptionsKey(companyID.String())).RedisNil()

	resp, err := deps.service.GetOptions(ctx, companyID.String())

	assert.NoError(t, err)
	if assert.Len(t, resp, 1) {
		assert.Equal(t, "Aktif", resp[0].Name)
	}
}
