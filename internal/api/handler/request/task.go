package request

import (
	"time"

	"fieldtrack/internal/api/models"
)

type CreateTask struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	AssigneeID  *uint      `json:"assigneeId,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

type UpdateTask struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

type AssignTask struct {
	EmployeeID uint `json:"employeeId" validate:"required"`
}

type ChangeTaskStatus struct {
	Status models.TaskStatus `json:"status" validate:"required"`
}
