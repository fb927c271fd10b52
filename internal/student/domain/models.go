package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

const (
	StatusActive   = "actif"
	StatusArchived = "archive"
)

type Student struct {
	ID          snowflake.ID      `gorm:"primaryKey" json:"id"`
	OrgID       snowflake.ID      `gorm:"not null;index" json:"organization_id"`
	GivenName   string            `gorm:"column:given_name;not null" json:"given_name"`
	FamilyName  string            `gorm:"column:family_name;not null" json:"family_name"`
	Email       string            `gorm:"not null" json:"email"`
	Phone       string            `json:"phone,omitempty"`
	BirthDate   *time.Time        `gorm:"column:birth_date" json:"birth_date,omitempty"`
	LicenseType string            `gorm:"column:license_type;not null;default:'B'" json:"license_type"`
	CreditHours int               `gorm:"column:credit_hours;not null;default:0" json:"credit_hours"`
	Status      string            `gorm:"not null" json:"status"`
	Metadata    datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Student) TableName() string { return "students" }
