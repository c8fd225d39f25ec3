package response

import "time"

type TaskResponse struct {
	ID           uint       `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	AssigneeID   *uint      `json:"assigneeId,omitempty"`
	AssigneeName string     `json:"assigneeName,omitempty"`
	CreatedBy    uint       `json:"createdBy"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}
