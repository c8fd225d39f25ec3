package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

type Task struct {
	ID          uint           `gorm:"primaryKey"`
	Title       string         `gorm:"not null"`
	Description string         `gorm:"type:text"`
	Status      TaskStatus     `gorm:"default:pending;index"`
	AssigneeID  *uint          `gorm:"index;column:assignee_id"`
	Assignee    *Employee      `gorm:"foreignKey:AssigneeID"`
	CreatedBy   uint           `gorm:"not null;column:created_by"`
	DueDate     *time.Time     `gorm:"column:due_date"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime;column:updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index;column:deleted_at"`
}

func (Task) TableName() string {
	return "tasks"
}
