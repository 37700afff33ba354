package material

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material is an inventory line. Stock only moves through the StockIn and
// StockOut operations and can never go negative.
type Material struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`

	Name      string `gorm:"type:varchar(120);not null"`
	Unit      string `gorm:"type:varchar(20);not null"` // sak, m3, batang, ...
	Stock     int64  `gorm:"type:bigint;not null;default:0"`
	UnitPrice int64  `gorm:"type:bigint;not null;default:0"`

	ProjectID *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Material) TableName() string { return "materials" }

const (
	MovementIn  = "IN"
	MovementOut = "OUT"
)

// StockMovement is the audit trail behind every stock mutation.
type StockMovement struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID `gorm:"type:uuid;not null;index"`
	MaterialID uuid.UUID `gorm:"type:uuid;not null;index"`

	Direction  string  `gorm:"type:varchar(3);not null"`
	Quantity   int64   `gorm:"type:bigint;not null"`
	StockAfter int64   `gorm:"type:bigint;not null"`
	Note       *string `gorm:"type:varchar(255)"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt time.Time
}

func (StockMovement) TableName() string { return "stock_movements" }
