package worker

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Daily rate policy in whole Rupiah. Anything outside this band is a data
// entry mistake, not a real construction wage.
const (
	MinDailyRate int64 = 1_000
	MaxDailyRate int64 = 1_000_000
)

type Worker struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index:idx_workers_company_active"`
	WorkerNumber string    `gorm:"type:varchar(20);not null"`
	Name         string    `gorm:"type:varchar(120);not null"`
	Phone        *string   `gorm:"type:varchar(30)"`
	Skill        string    `gorm:"type:varchar(60);not null;default:'UMUM'"`
	DailyRate    int64     `gorm:"type:bigint;not null"`
	IsActive     bool      `gorm:"not null;default:true;index:idx_workers_company_active"`
	JoinDate     time.Time `gorm:"type:date;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Worker) TableName() string { return "workers" }

// ValidDailyRate reports whether rate is inside the wage policy band.
func ValidDailyRate(rate int64) bool {
	return rate >= MinDailyRate && rate <= MaxDailyRate
}
