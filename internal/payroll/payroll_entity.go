package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusPaid      = "PAID"
	StatusCancelled = "CANCELLED"
)

// Payroll snapshots the worker's daily rate at generation time. Later
// rate changes never rewrite history.
//
// All money columns are whole Rupiah in bigint to avoid floating error.
type Payroll struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_payrolls_company_status"`
	WorkerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_payrolls_worker_period"`

	Period     string `gorm:"type:varchar(7);not null;index:idx_payrolls_worker_period"` // YYYY-MM
	DaysWorked int    `gorm:"type:int;not null"`
	DailyRate  int64  `gorm:"type:bigint;not null"`

	RegularPay  int64 `gorm:"type:bigint;not null"`
	OvertimePay int64 `gorm:"type:bigint;not null;default:0"`
	TotalPay    int64 `gorm:"type:bigint;not null"`

	Status    string    `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_payrolls_company_status"`
	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	PaidAt    *time.Time     `gorm:"index"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Payroll) TableName() string { return "payrolls" }

// NewPayroll is the only place the derived pay fields are written, so a
// stored record can never disagree with the formula that produced it.
func NewPayroll(
	companyID, workerID, createdBy uuid.UUID,
	period string,
	daysWorked int,
	dailyRate, overtimeTotal int64,
) *Payroll {
	regular := RegularPay(dailyRate, daysWorked)
	return &Payroll{
		ID:          uuid.New(),
		CompanyID:   companyID,
		WorkerID:    workerID,
		Period:      period,
		DaysWorked:  daysWorked,
		DailyRate:   dailyRate,
		RegularPay:  regular,
		OvertimePay: overtimeTotal,
		TotalPay:    TotalPay(regular, overtimeTotal),
		Status:      StatusPending,
		CreatedBy:   createdBy,
	}
}
