package mapper

import (
	"fieldtrack/internal/api/handler/response"
	"fieldtrack/internal/api/models"
)

type TaskMapper struct{}

func NewTaskMapper() TaskMapper {
	return TaskMapper{}
}

func (TaskMapper) EntityToTaskResponse(task models.Task) response.TaskResponse {
	resp := response.TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		AssigneeID:  task.AssigneeID,
		CreatedBy:   task.CreatedBy,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
	if task.Assignee != nil {
		resp.AssigneeName = task.Assignee.FullName()
	}
	return resp
}

func (m TaskMapper) EntitiesToTaskResponses(tasks []models.Task) []response.TaskResponse {
	responses := make([]response.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, m.EntityToTaskResponse(task))
	}
	return responses
}
