package models

import "time"

// LocationLog stores a single persisted GPS report for an employee.
// Rows are immutable once written; retention is handled outside the API.
type LocationLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EmployeeID uint      `gorm:"index:idx_employee_time,priority:1;not null" json:"employeeId"`
	Latitude   float64   `gorm:"not null" json:"latitude"`
	Longitude  float64   `gorm:"not null" json:"longitude"`
	Accuracy   *float64  `json:"accuracy,omitempty"`
	Speed      *float64  `json:"speed,omitempty"`
	Heading    *float64  `json:"heading,omitempty"`
	Timestamp  time.Time `gorm:"index:idx_employee_time,priority:2;not null" json:"timestamp"`
	CreatedAt  time.Time `gorm:"autoCreateTime;column:created_at" json:"createdAt"`
}

func (LocationLog) TableName() string {
	return "location_logs"
}
