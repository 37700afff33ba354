package attendance_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-mandor/internal/attendance"
	attendanceerrors "go-mandor/internal/attendance/errors"
	"go-mandor/internal/shared/clock"
	"go-mandor/internal/worker"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type memAttendanceRepository struct {
	rows []attendance.Attendance
}

func (m *memAttendanceRepository) WithTx(tx *sql.Tx) attendance.Repository { return m }

func (m *memAttendanceRepository) Create(ctx context.Context, a *attendance.Attendance) error {
	m.rows = append(m.rows, *a)
	return nil
}

func (m *memAttendanceRepository) FindByWorkerAndDate(ctx context.Context, companyID, workerID string, date time.Time) (*attendance.Attendance, error) {
	for i := range m.rows {
		if m.rows[i].WorkerID.String() == workerID && m.rows[i].AttendanceDate.Equal(date) {
			cp := m.rows[i]
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memAttendanceRepository) FindAllByCompany(ctx context.Context, companyID string) ([]attendance.Attendance, error) {
	return append([]attendance.Attendance(nil), m.rows...), nil
}

func (m *memAttendanceRepository) FindAllByCompanyAndWorker(ctx context.Context, companyID, workerID string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range m.rows {
		if r.WorkerID.String() == workerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memAttendanceRepository) Update(ctx context.Context, a *attendance.Attendance) error {
	for i := range m.rows {
		if m.rows[i].ID == a.ID {
			m.rows[i] = *a
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type fakeWorkerRepository struct {
	active map[string]bool
}

func (f *fakeWorkerRepository) WithTx(tx *sql.Tx) worker.Repository { return f }
func (f *fakeWorkerRepository) Create(ctx context.Context, w *worker.Worker) error {
	return nil
}
func (f *fakeWorkerRepository) FindAllByCompany(ctx context.Context, companyID string) ([]worker.Worker, error) {
	return nil, nil
}
func (f *fakeWorkerRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*worker.Worker, error) {
	if _, ok := f.active[id]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &worker.Worker{IsActive: f.active[id]}, nil
}
func (f *fakeWorkerRepository) Update(ctx context.Context, w *worker.Worker) error { return nil }
func (f *fakeWorkerRepository) ExistsActive(ctx context.Context, companyID, id string) (bool, error) {
	return f.active[id], nil
}

type attendanceTestDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	svc     attendance.Service
	repo    *memAttendanceRepository
	workers *fakeWorkerRepository
	clk     *clock.Fixed
}

func setupAttendanceServiceTest(t *testing.T) attendanceTestDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &memAttendanceRepository{}
	workers := &fakeWorkerRepository{active: make(map[string]bool)}
	clk := &clock.Fixed{T: time.Date(2026, 8, 17, 7, 30, 0, 0, time.UTC)}
	svc := attendance.NewServiceWithClock(db, repo, workers, clk)

	return attendanceTestDeps{db: db, sqlMock: sqlMock, svc: svc, repo: repo, workers: workers, clk: clk}
}

func TestAttendanceService_CheckIn_OncePerDay(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	workerID := uuid.New()

	d := setupAttendanceServiceTest(t)
	d.workers.active[workerID.String()] = true

	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectCommit()
	resp, err := d.svc.CheckIn(ctx, companyID, actorID, attendance.CheckInRequest{WorkerID: workerID, Source: attendance.SourceQR})

	assert.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, attendance.SourceQR, resp.Source)
	assert.Equal(t, "2026-08-17", resp.AttendanceDate)

	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectRollback()
	_, err = d.svc.CheckIn(ctx, companyID, actorID, attendance.CheckInRequest{WorkerID: workerID})

	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	assert.Len(t, d.repo.rows, 1)
	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}

func TestAttendanceService_CheckIn_LateAfterCutoff(t *testing.T) {
	ctx := context.Background()
	workerID := uuid.New()

	d := setupAttendanceServiceTest(t)
	d.workers.active[workerID.String()] = true
	d.clk.T = time.Date(2026, 8, 17, 8, 1, 0, 0, time.UTC)

	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectCommit()
	resp, err := d.svc.CheckIn(ctx, uuid.New().String(), uuid.New().String(), attendance.CheckInRequest{WorkerID: workerID})

	assert.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, resp.Status)
	assert.Equal(t, attendance.SourceManual, resp.Source, "empty source defaults to manual")
}

func TestAttendanceService_CheckIn_InactiveWorker(t *testing.T) {
	ctx := context.Background()
	workerID := uuid.New()

	d := setupAttendanceServiceTest(t)
	d.workers.active[workerID.String()] = false

	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectRollback()
	_, err := d.svc.CheckIn(ctx, uuid.New().String(), uuid.New().String(), attendance.CheckInRequest{WorkerID: workerID})

	assert.ErrorIs(t, err, attendanceerrors.ErrWorkerInactive)
}

func TestAttendanceService_CheckOut_RequiresOpenCheckIn(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()
	workerID := uuid.New()

	d := setupAttendanceServiceTest(t)
	d.workers.active[workerID.String()] = true

	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectRollback()
	_, err := d.svc.CheckOut(ctx, companyID, attendance.CheckOutRequest{WorkerID: workerID})
	assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)

	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectCommit()
	_, err = d.svc.CheckIn(ctx, companyID, uuid.New().String(), attendance.CheckInRequest{WorkerID: workerID})
	assert.NoError(t, err)

	d.clk.T = d.clk.T.Add(9 * time.Hour)
	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectCommit()
	resp, err := d.svc.CheckOut(ctx, companyID, attendance.CheckOutRequest{WorkerID: workerID})
	assert.NoError(t, err)
	if assert.NotNil(t, resp.CheckOut) {
		assert.Equal(t, d.clk.T.Format(time.RFC3339), *resp.CheckOut)
	}

	d.sqlMock.ExpectBegin()
	d.sqlMock.ExpectRollback()
	_, err = d.svc.CheckOut(ctx, companyID, attendance.CheckOutRequest{WorkerID: workerID})
	assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	assert.NoError(t, d.sqlMock.ExpectationsWereMet())
}
