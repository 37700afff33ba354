package payroll

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go-mandor/internal/shared/apperror"
	"go-mandor/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Reconciler re-runs kasbon-to-payroll matching. Satisfied by the kasbon
// service; the handler calls it after any mutation that can create a new
// match, per the explicit-reconcile design (no storage listeners).
type Reconciler interface {
	Reconcile(ctx context.Context, companyID string) ([]ReconcileResult, error)
}

// ReconcileResult is one kasbon settled against one payroll.
type ReconcileResult struct {
	KasbonID  string `json:"kasbon_id"`
	PayrollID string `json:"payroll_id"`
}

type Handler struct {
	service    Service
	reconciler Reconciler
	rdb        *redis.Client
}

func NewHandler(service Service, reconciler Reconciler) *Handler {
	return &Handler{service: service, reconciler: reconciler}
}

func NewHandlerWithRedis(service Service, reconciler Reconciler, rdb *redis.Client) *Handler {
	return &Handler{service: service, reconciler: reconciler, rdb: rdb}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) runReconcile(c *gin.Context, companyID string) {
	if h.reconciler == nil {
		return
	}
	if _, err := h.reconciler.Reconcile(c.Request.Context(), companyID); err != nil {
		// Settlement will be retried on the next mutation or worker tick;
		// the payroll itself is already committed.
		zap.L().Error("post-generate reconcile failed",
			zap.String("company_id", companyID),
			zap.Error(err),
		)
	}
}

func (h *Handler) Generate(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")

	var req GeneratePayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	resp, err := h.service.Generate(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	// A fresh pending payroll may settle waiting kasbons.
	h.runReconcile(c, companyID)

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// Preview computes a breakdown without persisting anything; the UI uses
// it to show the operator what a payroll would look like.
func (h *Handler) Preview(c *gin.Context) {
	var req PreviewPayrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", err.Error())
		return
	}

	breakdown := ComputeBreakdown(req.DailyRate, req.DaysWorked, req.OvertimeTotal)
	response.Success(c, http.StatusOK, breakdown, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.GetAll(c.Request.Context(), companyID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	total := int64(len(resp))
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(resp) {
		start = len(resp)
	}
	if end > len(resp) {
		end = len(resp)
	}

	meta := response.NewPaginationMeta(total, page, pageSize)
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) GetById(c *gin.Context) {
	companyID := c.GetString("company_id")
	id := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), companyID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkPaid(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	resp, err := h.service.MarkPaid(c.Request.Context(), companyID, actorID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := c.GetString("user_id")
	id := c.Param("id")

	resp, err := h.service.Cancel(c.Request.Context(), companyID, actorID, id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
