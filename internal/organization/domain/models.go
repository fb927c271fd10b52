// Package domain contains persistence models for the organization service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	// StatusActive is the status written for every organization and
	// admin user created through registration.
	StatusActive    = "actif"
	StatusSuspended = "suspendu"

	RoleAdmin = "admin"
)

// Organization represents a driving school ("auto-école") account.
type Organization struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID     snowflake.ID `gorm:"column:user_id;not null;index" json:"user_id"`
	Name       string       `gorm:"type:text;not null" json:"name"`
	TaxID      string       `gorm:"column:tax_id;type:text;not null;uniqueIndex:ux_organizations_tax_id" json:"tax_id"`
	Address    string       `gorm:"type:text" json:"address"`
	City       string       `gorm:"type:text" json:"city"`
	PostalCode string       `gorm:"column:postal_code;type:text" json:"postal_code"`
	Email      string       `gorm:"type:text;not null;uniqueIndex:ux_organizations_email" json:"email"`
	Phone      string       `gorm:"type:text" json:"phone"`
	Status     string       `gorm:"type:text;not null" json:"status"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Organization) TableName() string { return "organizations" }

// AdminUser represents a staff account that manages an organization.
type AdminUser struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	OrgID      snowflake.ID `gorm:"column:org_id;not null;index" json:"org_id"`
	UserID     snowflake.ID `gorm:"column:user_id;not null;index" json:"user_id"`
	GivenName  string       `gorm:"column:given_name;type:text" json:"given_name"`
	FamilyName string       `gorm:"column:family_name;type:text;not null" json:"family_name"`
	Email      string       `gorm:"type:text;not null" json:"email"`
	Phone      string       `gorm:"type:text" json:"phone"`
	Role       string       `gorm:"type:text;not null" json:"role"`
	Status     string       `gorm:"type:text;not null" json:"status"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (AdminUser) TableName() string { return "admin_users" }
