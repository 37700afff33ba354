package project

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPlanning  = "PLANNING"
	StatusOngoing   = "ONGOING"
	StatusCompleted = "COMPLETED"
	StatusOnHold    = "ON_HOLD"
)

type Project struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name     string  `gorm:"type:varchar(120);not null"`
	Client   *string `gorm:"type:varchar(120)"`
	Location *string `gorm:"type:varchar(255)"`
	Budget   int64   `gorm:"type:bigint;not null"`
	Status   string  `gorm:"type:varchar(20);not null;default:'PLANNING'"`

	StartDate *time.Time `gorm:"type:date"`
	EndDate   *time.Time `gorm:"type:date"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Project) TableName() string { return "projects" }

func ValidStatus(s string) bool {
	switch s {
	case StatusPlanning, StatusOngoing, StatusCompleted, StatusOnHold:
		return true
	default:
		return false
	}
}
