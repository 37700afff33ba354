package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleOwner  = "OWNER"
	RoleAdmin  = "ADMIN"
	RoleMandor = "MANDOR"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Email     string    `gorm:"type:varchar(120);not null;uniqueIndex"`
	Name      string    `gorm:"type:varchar(120);not null"`
	Password  string    `gorm:"type:varchar(120);not null"`
	Role      string    `gorm:"type:varchar(20);not null;default:'ADMIN'"`
	IsActive  bool      `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string { return "users" }

// Company is the tenant every other table scopes to. Created once at
// registration; owner-only contractors are the common case.
type Company struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(120);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Company) TableName() string { return "companies" }
