package transaction

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TypeIncome  = "INCOME"
	TypeExpense = "EXPENSE"
)

const (
	StatusCompleted = "COMPLETED"
	StatusPending   = "PENDING"
	StatusCancelled = "CANCELLED"
)

// Transaction is one cash ledger line. Only COMPLETED lines count toward
// the cash-flow and budget reports.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_transactions_company_date"`

	Type     string `gorm:"type:varchar(10);not null"`
	Category string `gorm:"type:varchar(60);not null"`
	Amount   int64  `gorm:"type:bigint;not null"`
	Status   string `gorm:"type:varchar(20);not null;default:'COMPLETED'"`

	Date        time.Time  `gorm:"type:date;not null;index:idx_transactions_company_date"`
	ProjectID   *uuid.UUID `gorm:"type:uuid;index"`
	Description *string    `gorm:"type:varchar(255)"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Transaction) TableName() string { return "transactions" }

func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

func ValidStatus(s string) bool {
	return s == StatusCompleted || s == StatusPending || s == StatusCancelled
}
