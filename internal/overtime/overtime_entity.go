package overtime

import (
	"time"

	"go-mandor/internal/payroll"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxHoursPerEntry caps a single overtime entry. Twelve hours on top of a
// work day is already the legal ceiling; anything above it is a typo.
const MaxHoursPerEntry = 12.0

// Overtime is one worked-extra block for one worker on one date. Total is
// derived once at creation with the company overtime multiplier and never
// recomputed, so a later rate change cannot rewrite recorded pay.
type Overtime struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_overtimes_company_period"`
	WorkerID  uuid.UUID `gorm:"type:uuid;not null;index:idx_overtimes_worker_period"`

	Date       time.Time `gorm:"type:date;not null"`
	Period     string    `gorm:"type:varchar(7);not null;index:idx_overtimes_company_period;index:idx_overtimes_worker_period"` // YYYY-MM
	Hours      float64   `gorm:"type:numeric(4,2);not null"`
	HourlyRate int64     `gorm:"type:bigint;not null"`
	Total      int64     `gorm:"type:bigint;not null"`

	Description *string   `gorm:"type:varchar(255)"`
	CreatedBy   uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Overtime) TableName() string { return "overtimes" }

// ValidHours reports whether h is an acceptable entry length.
func ValidHours(h float64) bool {
	return h > 0 && h <= MaxHoursPerEntry
}

// NewOvertime derives Period from the work date and Total from the
// payroll formula.
func NewOvertime(
	companyID, workerID, createdBy uuid.UUID,
	date time.Time,
	hours float64,
	hourlyRate int64,
	description *string,
) *Overtime {
	return &Overtime{
		ID:          uuid.New(),
		CompanyID:   companyID,
		WorkerID:    workerID,
		Date:        date,
		Period:      date.Format("2006-01"),
		Hours:       hours,
		HourlyRate:  hourlyRate,
		Total:       payroll.OvertimePay(hourlyRate, hours),
		Description: description,
		CreatedBy:   createdBy,
	}
}

// Reprice replaces the entry's inputs and re-derives Period and Total.
// Updates must go through here; Total has no setter path of its own.
func (o *Overtime) Reprice(date time.Time, hours float64, hourlyRate int64, description *string) {
	o.Date = date
	o.Period = date.Format("2006-01")
	o.Hours = hours
	o.HourlyRate = hourlyRate
	o.Total = payroll.OvertimePay(hourlyRate, hours)
	o.Description = description
}
