package quota

import (
	"context"
	"net/http"

	"go-mandor/internal/shared/apperror"
	"go-mandor/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PremiumChecker mirrors the middleware collaborator so the status
// endpoint reports against the caller's current tier.
type PremiumChecker interface {
	IsPremium(ctx context.Context, companyID string) (bool, error)
}

type Handler struct {
	service Service
	subs    PremiumChecker
}

func NewHandler(service Service, subs PremiumChecker) *Handler {
	return &Handler{service: service, subs: subs}
}

func (h *Handler) GetStatus(c *gin.Context) {
	companyID := c.GetString("company_id")
	userID := c.GetString("user_id")

	isPremium, err := h.subs.IsPremium(c.Request.Context(), companyID)
	if err != nil {
		zap.L().Warn("premium check failed on quota status, assuming free tier", zap.Error(err))
		isPremium = false
	}

	resp, err := h.service.Status(c.Request.Context(), companyID, userID, isPremium)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
