package service

import (
	"errors"
	"fmt"

	"fieldtrack"
	"fieldtrack/internal/api/handler/request"
	"fieldtrack/internal/api/models"
	"fieldtrack/internal/api/repo"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound      = errors.New("task not found")
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrInvalidTransition = errors.New("invalid task status transition")
)

type TaskService struct {
	taskRepo     *repo.TaskRepository
	employeeRepo *repo.EmployeeRepository
	mailService  *MailService
	logger       zerolog.Logger
}

func NewTaskService() *TaskService {
	return &TaskService{
		taskRepo:     repo.NewTaskRepository(),
		employeeRepo: repo.NewEmployeeRepository(),
		mailService:  NewMailService(),
		logger:       fieldtrack.Logger,
	}
}

func (slf *TaskService) GetAll(status *models.TaskStatus, assigneeID *uint) ([]models.Task, error) {
	return slf.taskRepo.FindAll(status, assigneeID)
}

func (slf *TaskService) GetByID(id uint) (models.Task, error) {
	task, err := slf.taskRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return task, ErrTaskNotFound
	}
	return task, err
}

func (slf *TaskService) Create(dto request.CreateTask, creatorID uint) (models.Task, error) {
	task := models.Task{
		Title:       dto.Title,
		Description: dto.Description,
		Status:      models.TaskStatusPending,
		AssigneeID:  dto.AssigneeID,
		CreatedBy:   creatorID,
		DueDate:     dto.DueDate,
	}

	if dto.AssigneeID != nil {
		if _, err := slf.employeeRepo.FindByID(*dto.AssigneeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Task{}, ErrEmployeeNotFound
			}
			return models.Task{}, err
		}
	}

	if err := slf.taskRepo.Create(&task); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to create task")
		return models.Task{}, err
	}

	slf.logger.Info().Uint("taskId", task.ID).Msg("Task created")
	return task, nil
}

func (slf *TaskService) Update(id uint, dto request.UpdateTask) (models.Task, error) {
	if _, err := slf.GetByID(id); err != nil {
		return models.Task{}, err
	}

	patch := make(map[string]any)
	if dto.Title != nil {
		patch["title"] = *dto.Title
	}
	if dto.Description != nil {
		patch["description"] = *dto.Description
	}
	if dto.DueDate != nil {
		patch["due_date"] = *dto.DueDate
	}

	if len(patch) > 0 {
		if err := slf.taskRepo.UpdateFields(id, patch); err != nil {
			slf.logger.Error().Err(err).Uint("taskId", id).Msg("Failed to update task")
			return models.Task{}, err
		}
	}

	return slf.taskRepo.FindByID(id)
}

// Assign hands a task to an employee. The write is committed before the
// caller publishes any notification; the assignment email is best effort and
// never fails the operation.
func (slf *TaskService) Assign(taskID uint, employeeID uint) (models.Task, models.Employee, error) {
	task, err := slf.GetByID(taskID)
	if err != nil {
		return models.Task{}, models.Employee{}, err
	}

	employee, err := slf.employeeRepo.FindByID(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, models.Employee{}, ErrEmployeeNotFound
		}
		return models.Task{}, models.Employee{}, err
	}

	if err := slf.taskRepo.UpdateFields(taskID, map[string]any{"assignee_id": employeeID}); err != nil {
		slf.logger.Error().Err(err).Uint("taskId", taskID).Msg("Failed to assign task")
		return models.Task{}, models.Employee{}, err
	}

	task, err = slf.taskRepo.FindByID(taskID)
	if err != nil {
		return models.Task{}, models.Employee{}, err
	}

	slf.notifyAssignee(task, employee)

	slf.logger.Info().
		Uint("taskId", taskID).
		Uint("employeeId", employeeID).
		Msg("Task assigned")
	return task, employee, nil
}

// ChangeStatus moves a task through its lifecycle, rejecting transitions
// that would go backwards or revive a finished task.
func (slf *TaskService) ChangeStatus(taskID uint, status models.TaskStatus) (models.Task, error) {
	task, err := slf.GetByID(taskID)
	if err != nil {
		return models.Task{}, err
	}

	if !ValidStatusTransition(task.Status, status) {
		return models.Task{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, task.Status, status)
	}

	if err := slf.taskRepo.UpdateFields(taskID, map[string]any{"status": status}); err != nil {
		slf.logger.Error().Err(err).Uint("taskId", taskID).Msg("Failed to change task status")
		return models.Task{}, err
	}

	slf.logger.Info().
		Uint("taskId", taskID).
		Str("status", string(status)).
		Msg("Task status changed")
	return slf.taskRepo.FindByID(taskID)
}

func (slf *TaskService) Delete(id uint) error {
	if _, err := slf.GetByID(id); err != nil {
		return err
	}
	return slf.taskRepo.Delete(id)
}

func (slf *TaskService) notifyAssignee(task models.Task, employee models.Employee) {
	if employee.Email == "" {
		return
	}

	msg := EmailMessage{
		To:      []string{employee.Email},
		Subject: fmt.Sprintf("New task assigned: %s", task.Title),
		Body:    fmt.Sprintf("Hello %s,\n\nYou have been assigned the task \"%s\".\n\n%s\n", employee.FirstName, task.Title, task.Description),
	}
	if err := slf.mailService.SendInternal(msg); err != nil {
		slf.logger.Warn().
			Err(err).
			Uint("taskId", task.ID).
			Str("email", employee.Email).
			Msg("Failed to send assignment email")
	}
}

// ValidStatusTransition reports whether a task may move from one status to
// another. Finished tasks (completed, cancelled) are terminal.
func ValidStatusTransition(from, to models.TaskStatus) bool {
	if from == to {
		return false
	}
	switch from {
	case models.TaskStatusPending:
		return to == models.TaskStatusInProgress || to == models.TaskStatusCompleted || to == models.TaskStatusCancelled
	case models.TaskStatusInProgress:
		return to == models.TaskStatusCompleted || to == models.TaskStatusCancelled
	default:
		return false
	}
}
