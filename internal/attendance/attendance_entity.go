package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"

	SourceQR     = "QR"
	SourceManual = "MANUAL"
)

// Site mornings start at 08:00; anything after is flagged LATE.
const (
	lateCutoffHour   = 8
	lateCutoffMinute = 0
)

type Attendance struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_attendances_company_date"`
	WorkerID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_attendances_worker_date,unique"`
	AttendanceDate time.Time  `gorm:"type:date;not null;index:idx_attendances_company_date;index:idx_attendances_worker_date,unique"`
	CheckIn        time.Time  `gorm:"type:timestamptz;not null"`
	CheckOut       *time.Time `gorm:"type:timestamptz"`
	Latitude       *float64   `gorm:"type:numeric(9,6)"`
	Longitude      *float64   `gorm:"type:numeric(9,6)"`
	Status         string     `gorm:"type:varchar(20);not null;default:'PRESENT'"`
	Source         string     `gorm:"type:varchar(20);not null;default:'MANUAL'"`
	Notes          *string    `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Attendance) TableName() string { return "attendances" }

// ValidSource reports whether src is a recognized check-in channel.
// Empty is allowed and defaults to MANUAL.
func ValidSource(src string) bool {
	return src == "" || src == SourceQR || src == SourceManual
}

func lateAt(t time.Time) bool {
	return t.Hour() > lateCutoffHour ||
		(t.Hour() == lateCutoffHour && t.Minute() > lateCutoffMinute)
}
