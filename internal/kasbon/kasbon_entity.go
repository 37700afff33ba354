package kasbon

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusPaid     = "PAID"
	StatusDeducted = "DEDUCTED"
)

// MinAmount is the smallest advance worth the paperwork, in whole Rupiah.
const MinAmount int64 = 10_000

// Kasbon is a salary advance repaid by deduction from the worker's next
// payroll. DeductedFromPayroll stays nil until the settlement engine
// matches the approved advance to a pending payroll.
type Kasbon struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index:idx_kasbons_company_status"`
	WorkerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	KasbonNumber string    `gorm:"type:varchar(20);not null"`

	Date   time.Time `gorm:"type:date;not null"`
	Amount int64     `gorm:"type:bigint;not null"`
	Reason string    `gorm:"type:varchar(255);not null"`

	Status         string     `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_kasbons_company_status"`
	ApprovedBy     *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt     *time.Time
	RejectedBy     *uuid.UUID `gorm:"type:uuid"`
	RejectedAt     *time.Time
	RejectedReason *string    `gorm:"type:varchar(255)"`

	DeductedFromPayroll *uuid.UUID `gorm:"type:uuid;index"`
	SettledAt           *time.Time

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Kasbon) TableName() string { return "kasbons" }

// isAllowedStatusTransition encodes the settlement state machine.
// REJECTED, PAID and DEDUCTED are terminal.
func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	if currentStatus == targetStatus {
		return false
	}

	switch currentStatus {
	case StatusPending:
		return targetStatus == StatusApproved || targetStatus == StatusRejected
	case StatusApproved:
		return targetStatus == StatusPaid || targetStatus == StatusDeducted
	default:
		return false
	}
}
