package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	StatusAvailable   = "disponible"
	StatusMaintenance = "maintenance"
	StatusRetired     = "retire"

	TransmissionManual    = "manuelle"
	TransmissionAutomatic = "automatique"
)

type Vehicle struct {
	ID           snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrgID        snowflake.ID      `gorm:"not null;uniqueIndex:ux_vehicles_org_plate" json:"organization_id"`
	Make         string            `gorm:"not null" json:"make"`
	Model        string            `gorm:"not null" json:"model"`
	Plate        string            `gorm:"not null;uniqueIndex:ux_vehicles_org_plate" json:"plate"`
	Year         int               `json:"year,omitempty"`
	Transmission string            `gorm:"not null;default:'manuelle'" json:"transmission"`
	Status       string            `gorm:"not null" json:"status"`
	Metadata     datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Vehicle) TableName() string { return "vehicles" }
