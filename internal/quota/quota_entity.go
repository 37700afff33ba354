package quota

import (
	"time"

	"github.com/google/uuid"
)

// Monthly action caps per subscription tier.
const (
	FreeTierMax    = 100
	PremiumTierMax = 500
)

// LowQuotaThreshold triggers the early warning notification.
const LowQuotaThreshold = 10

// ActionQuota is one user's ledger for the month named by ResetDate.
// ActionsUsed survives a tier change mid-period (no proration); only a
// calendar rollover resets it.
type ActionQuota struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_quota_company_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_quota_company_user"`

	ActionsUsed int    `gorm:"type:int;not null;default:0"`
	MaxActions  int    `gorm:"type:int;not null"`
	IsPremium   bool   `gorm:"not null;default:false"`
	ResetDate   string `gorm:"type:varchar(7);not null"` // YYYY-MM

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ActionQuota) TableName() string { return "action_quotas" }

// TierMax maps the premium flag to the month's cap.
func TierMax(isPremium bool) int {
	if isPremium {
		return PremiumTierMax
	}
	return FreeTierMax
}

// Remaining clamps to zero: a downgrade can leave ActionsUsed above the
// new cap, which reads as an exhausted quota, never a negative one.
func (q *ActionQuota) Remaining() int {
	remaining := q.MaxActions - q.ActionsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
