package mapper

import (
	"fieldtrack/internal/api/handler/response"
	"fieldtrack/internal/api/models"
)

type EmployeeMapper struct{}

func (EmployeeMapper) EntityToEmployeeResponse(employee models.Employee) response.EmployeeResponse {
	return response.EmployeeResponse{
		ID:        employee.ID,
		Email:     employee.Email,
		FirstName: employee.FirstName,
		LastName:  employee.LastName,
		Phone:     employee.Phone,
		Role:      string(employee.Role),
		Active:    employee.Active,
		CreatedAt: employee.CreatedAt,
	}
}
