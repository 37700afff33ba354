package middleware

import (
	"context"
	"net/http"

	"go-mandor/internal/shared/apperror"
	"go-mandor/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// QuotaConsumer is satisfied by the quota service.
type QuotaConsumer interface {
	Consume(ctx context.Context, companyID, userID string, isPremiumNow bool, actionType string) (bool, error)
}

// PremiumChecker is satisfied by the subscription service.
type PremiumChecker interface {
	IsPremium(ctx context.Context, companyID string) (bool, error)
}

// ActionQuota gates every mutating request behind the monthly action
// quota. Reads always pass: quota exhaustion degrades the app to
// read-only, it never breaks it.
func ActionQuota(quota QuotaConsumer, subs PremiumChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			c.Next()
			return
		}

		companyID := c.GetString("company_id")
		userID := c.GetString("user_id")
		if companyID == "" || userID == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		isPremium, err := subs.IsPremium(ctx, companyID)
		if err != nil {
			// Fail open on a subscription lookup error, the quota row
			// itself still carries the last known tier.
			zap.L().Warn("premium check failed, assuming free tier", zap.Error(err))
			isPremium = false
		}

		actionType := c.Request.Method + " " + c.FullPath()
		allowed, err := quota.Consume(ctx, companyID, userID, isPremium, actionType)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			c.Abort()
			return
		}

		if !allowed {
			e := apperror.ErrQuotaExceeded
			response.Error(c, e.HTTPStatus, e.Code, e.Message, gin.H{
				"upgrade": "premium raises the monthly limit to 500 actions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
