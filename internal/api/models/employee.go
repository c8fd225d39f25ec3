package models

import (
	"time"

	"gorm.io/gorm"
)

type AppRole string

const (
	RoleAdmin AppRole = "admin"
	RoleField AppRole = "field"
)

type Employee struct {
	ID           uint           `gorm:"primaryKey"`
	Email        string         `gorm:"uniqueIndex;not null"`
	Password     string         `gorm:"not null;column:password"`
	FirstName    string         `gorm:"not null;column:first_name"`
	LastName     string         `gorm:"not null;column:last_name"`
	Phone        string         `gorm:"column:phone"`
	Role         AppRole        `gorm:"default:field;column:role"`
	Active       bool           `gorm:"default:true;column:active"`
	RefreshToken string         `gorm:"type:text;column:refresh_token"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime;column:updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index;column:deleted_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// FullName is what gets shown on dashboards and in assignment notifications.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
