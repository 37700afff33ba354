package report

import (
	"net/http"
	"time"

	reporterrors "go-mandor/internal/report/errors"
	"go-mandor/internal/shared/apperror"
	"go-mandor/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) CashFlow(c *gin.Context) {
	companyID := c.GetString("company_id")

	from, errFrom := time.Parse("2006-01-02", c.Query("from"))
	to, errTo := time.Parse("2006-01-02", c.Query("to"))
	if errFrom != nil || errTo != nil || from.After(to) {
		writeServiceError(c, reporterrors.ErrInvalidDateRange)
		return
	}

	resp, err := h.service.CashFlow(c.Request.Context(), companyID, from, to)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Productivity(c *gin.Context) {
	companyID := c.GetString("company_id")

	period := c.Query("period")
	if _, err := time.Parse("2006-01", period); err != nil {
		writeServiceError(c, reporterrors.ErrInvalidPeriod)
		return
	}

	resp, err := h.service.Productivity(c.Request.Context(), companyID, period)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) BudgetUtilization(c *gin.Context) {
	companyID := c.GetString("company_id")

	resp, err := h.service.BudgetUtilization(c.Request.Context(), companyID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
