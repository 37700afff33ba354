package kasbon_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-mandor/internal/kasbon"
	kasbonerrors "go-mandor/internal/kasbon/errors"
	"go-mandor/internal/payroll"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func mustDecodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeKasbonService struct {
	submitFn    func(ctx context.Context, companyID, actorID string, req kasbon.SubmitKasbonRequest) (kasbon.KasbonResponse, error)
	getAllFn    func(ctx context.Context, companyID string) ([]kasbon.KasbonResponse, error)
	getByIDFn   func(ctx context.Context, companyID, id string) (kasbon.KasbonResponse, error)
	approveFn   func(ctx context.Context, companyID, actorID, id string) (kasbon.KasbonResponse, error)
	rejectFn    func(ctx context.Context, companyID, actorID, id string, req kasbon.RejectKasbonRequest) (kasbon.KasbonResponse, error)
	markPaidFn  func(ctx context.Context, companyID, actorID, id string) (kasbon.KasbonResponse, error)
	deleteFn    func(ctx context.Context, companyID, id string) error
	reconcileFn func(ctx context.Context, companyID string) ([]payroll.ReconcileResult, error)
}

func (f *fakeKasbonService) Submit(ctx context.Context, companyID, actorID string, req kasbon.SubmitKasbonRequest) (kasbon.KasbonResponse, error) {
	return f.submitFn(ctx, companyID, actorID, req)
}

func (f *fakeKasbonService) GetAll(ctx context.Context, companyID string) ([]kasbon.KasbonResponse, error) {
	return f.getAllFn(ctx, companyID)
}

func (f *fakeKasbonService) GetByID(ctx context.Context, companyID, id string) (kasbon.KasbonResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}

func (f *fakeKasbonService) Approve(ctx context.Context, companyID, actorID, id string) (kasbon.KasbonResponse, error) {
	return f.approveFn(ctx, companyID, actorID, id)
}

func (f *fakeKasbonService) Reject(ctx context.Context, companyID, actorID, id string, req kasbon.RejectKasbonRequest) (kasbon.KasbonResponse, error) {
	return f.rejectFn(ctx, companyID, actorID, id, req)
}

func (f *fakeKasbonService) MarkPaid(ctx context.Context, companyID, actorID, id string) (kasbon.KasbonResponse, error) {
	return f.markPaidFn(ctx, companyID, actorID, id)
}

func (f *fakeKasbonService) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

func (f *fakeKasbonService) Reconcile(ctx context.Context, companyID string) ([]payroll.ReconcileResult, error) {
	if f.reconcileFn != nil {
		return f.reconcileFn(ctx, companyID)
	}
	return nil, nil
}

func TestKasbonHandler_Submit(t *testing.T) {
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	workerID := uuid.New().String()

	svc := &fakeKasbonService{
		submitFn: func(ctx context.Context, cid, aid string, req kasbon.SubmitKasbonRequest) (kasbon.KasbonResponse, error) {
			assert.Equal(t, companyID, cid)
			assert.Equal(t, actorID, aid)
			assert.Equal(t, workerID, req.WorkerID)
			assert.Equal(t, int64(500_000), req.Amount)
			return kasbon.KasbonResponse{ID: uuid.New().String(), Status: kasbon.StatusPending, WorkerID: req.WorkerID}, nil
		},
	}

	h := kasbon.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"worker_id":"` + workerID + `","date":"2026-08-10","amount":500000,"reason":"biaya berobat"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/kasbons", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", companyID)
	c.Set("user_id", actorID)

	h.Submit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)
}

func TestKasbonHandler_Submit_BelowMinimum(t *testing.T) {
	svc := &fakeKasbonService{
		submitFn: func(ctx context.Context, companyID, actorID string, req kasbon.SubmitKasbonRequest) (kasbon.KasbonResponse, error) {
			return kasbon.KasbonResponse{}, kasbonerrors.ErrAmountBelowMinimum
		},
	}

	h := kasbon.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body := `{"worker_id":"` + uuid.New().String() + `","date":"2026-08-10","amount":5000,"reason":"uang bensin"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/kasbons", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("company_id", uuid.New().String())
	c.Set("user_id", uuid.New().String())

	h.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_INPUT", env.Error.Code)
}

// An approval that produces a settlement match must return the refreshed
// record, not the snapshot taken before reconciliation.
func TestKasbonHandler_Approve_ReturnsSettledRecord(t *testing.T) {
	companyID := uuid.New().String()
	id := uuid.New().String()
	payrollID := uuid.New().String()

	svc := &fakeKasbonService{
		approveFn: func(ctx context.Context, cid, aid, kid string) (kasbon.KasbonResponse, error) {
			return kasbon.KasbonResponse{ID: kid, Status: kasbon.StatusApproved}, nil
		},
		reconcileFn: func(ctx context.Context, cid string) ([]payroll.ReconcileResult, error) {
			return []payroll.ReconcileResult{{KasbonID: id, PayrollID: payrollID}}, nil
		},
		getByIDFn: func(ctx context.Context, cid, kid string) (kasbon.KasbonResponse, error) {
			return kasbon.KasbonResponse{ID: kid, Status: kasbon.StatusDeducted, DeductedFromPayroll: &payrollID}, nil
		},
	}

	h := kasbon.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/kasbons/"+id+"/approve", nil)
	c.Params = []gin.Param{{Key: "id", Value: id}}
	c.Set("company_id", companyID)
	c.Set("user_id", uuid.New().String())

	h.Approve(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.True(t, env.Ok)

	var data kasbon.KasbonResponse
	assert.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, kasbon.StatusDeducted, data.Status)
}

func TestKasbonHandler_Approve_InvalidState(t *testing.T) {
	svc := &fakeKasbonService{
		approveFn: func(ctx context.Context, companyID, actorID, id string) (kasbon.KasbonResponse, error) {
			return kasbon.KasbonResponse{}, kasbonerrors.ErrInvalidStatusTransition
		},
	}

	h := kasbon.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/kasbons/123/approve", nil)
	c.Params = []gin.Param{{Key: "id", Value: "123"}}
	c.Set("company_id", uuid.New().String())
	c.Set("user_id", uuid.New().String())

	h.Approve(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := mustDecodeEnvelope(t, w.Body.Bytes())
	assert.False(t, env.Ok)
	assert.Equal(t, "INVALID_STATE", env.Error.Code)
}

func TestKasbonHandler_Delete(t *testing.T) {
	svc := &fakeKasbonService{
		deleteFn: func(ctx context.Context, companyID, id string) error {
			return nil
		},
	}

	h := kasbon.NewHandler(svc)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/kasbons/"+uuid.New().String(), nil)
	c.Params = []gin.Param{{Key: "id", Value: uuid.New().String()}}
	c.Set("company_id", uuid.New().String())

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
}
