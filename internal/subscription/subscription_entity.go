package subscription

import (
	"time"

	"github.com/google/uuid"
)

const (
	TierFree    = "FREE"
	TierPremium = "PREMIUM"
)

// Subscription is one row per company. A premium tier past ExpiresAt is
// read as free everywhere; ExpireDue later makes that lapse explicit.
type Subscription struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	Tier      string     `gorm:"type:varchar(20);not null;default:'FREE'"`
	StartedAt *time.Time
	ExpiresAt *time.Time `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Subscription) TableName() string { return "subscriptions" }

// ActiveAt reports whether the subscription grants premium at t.
func (s *Subscription) ActiveAt(t time.Time) bool {
	if s.Tier != TierPremium {
		return false
	}
	return s.ExpiresAt == nil || s.ExpiresAt.After(t)
}
