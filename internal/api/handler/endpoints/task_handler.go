package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"fieldtrack"
	"fieldtrack/internal/api/handler/mapper"
	"fieldtrack/internal/api/handler/middleware"
	"fieldtrack/internal/api/handler/request"
	"fieldtrack/internal/api/handler/response"
	"fieldtrack/internal/api/models"
	"fieldtrack/internal/api/service"
	"fieldtrack/internal/api/ws"
	"fieldtrack/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type taskHandler struct {
	taskService *service.TaskService
	publisher   *ws.TaskPublisher
	taskMapper  mapper.TaskMapper
	config      fieldtrack.AppConfig
	logger      zerolog.Logger
}

func newTaskHandler(publisher *ws.TaskPublisher) *taskHandler {
	return &taskHandler{
		taskService: service.NewTaskService(),
		publisher:   publisher,
		taskMapper:  mapper.NewTaskMapper(),
		config:      fieldtrack.GetConfig(),
		logger:      fieldtrack.Logger,
	}
}

func TaskHandler(router *graceful.Graceful, publisher *ws.TaskPublisher) {
	h := newTaskHandler(publisher)

	routes := router.Group("/api/v1/tasks")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.getAll)
		routes.GET("/:id", h.getByID)
		routes.POST("", h.create)
		routes.PUT("/:id", h.update)
		routes.DELETE("/:id", h.delete)

		routes.POST("/:id/assign", h.assign)
		routes.POST("/:id/status", h.changeStatus)
	}
}

func (slf *taskHandler) getAll(c *gin.Context) {
	var status *models.TaskStatus
	if raw := c.Query("status"); raw != "" {
		s := models.TaskStatus(raw)
		status = &s
	}

	var assigneeID *uint
	if raw := c.Query("assigneeId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid assignee ID"})
			return
		}
		assigneeID = pkg.ToPtr(uint(id))
	}

	tasks, err := slf.taskService.GetAll(status, assigneeID)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to list tasks")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, slf.taskMapper.EntitiesToTaskResponses(tasks))
}

func (slf *taskHandler) getByID(c *gin.Context) {
	taskID, ok := slf.parseTaskID(c)
	if !ok {
		return
	}

	task, err := slf.taskService.GetByID(taskID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: "Task not found"})
		return
	}

	c.JSON(http.StatusOK, slf.taskMapper.EntityToTaskResponse(task))
}

func (slf *taskHandler) create(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "User not authenticated"})
		return
	}

	var dto request.CreateTask
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	task, err := slf.taskService.Create(dto, userID)
	if err != nil {
		if errors.Is(err, service.ErrEmployeeNotFound) {
			c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
			return
		}
		slf.logger.Error().Err(err).Msg("Failed to create task")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	// The write is committed; now tell the dashboards
	slf.publisher.PublishCreated(task.ID, task.Title)

	c.JSON(http.StatusCreated, slf.taskMapper.EntityToTaskResponse(task))
}

func (slf *taskHandler) update(c *gin.Context) {
	taskID, ok := slf.parseTaskID(c)
	if !ok {
		return
	}

	var dto request.UpdateTask
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	task, err := slf.taskService.Update(taskID, dto)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, slf.taskMapper.EntityToTaskResponse(task))
}

func (slf *taskHandler) assign(c *gin.Context) {
	taskID, ok := slf.parseTaskID(c)
	if !ok {
		return
	}

	var dto request.AssignTask
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	task, employee, err := slf.taskService.Assign(taskID, dto.EmployeeID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		case errors.Is(err, service.ErrEmployeeNotFound):
			c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		}
		return
	}

	slf.publisher.PublishAssigned(task.ID, employee.FullName(), task.Title)

	c.JSON(http.StatusOK, slf.taskMapper.EntityToTaskResponse(task))
}

func (slf *taskHandler) changeStatus(c *gin.Context) {
	taskID, ok := slf.parseTaskID(c)
	if !ok {
		return
	}

	var dto request.ChangeTaskStatus
	if err := pkg.ParseAndValidate(c, &dto); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	task, err := slf.taskService.ChangeStatus(taskID, dto.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		case errors.Is(err, service.ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		}
		return
	}

	slf.publisher.PublishStatusChanged(task.ID, ws.TaskActionStatusChanged, task.Title)

	c.JSON(http.StatusOK, slf.taskMapper.EntityToTaskResponse(task))
}

func (slf *taskHandler) delete(c *gin.Context) {
	taskID, ok := slf.parseTaskID(c)
	if !ok {
		return
	}

	if err := slf.taskService.Delete(taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}

func (slf *taskHandler) parseTaskID(c *gin.Context) (uint, bool) {
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid task ID"})
		return 0, false
	}
	return uint(taskID), true
}
