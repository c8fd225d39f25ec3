package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"fieldtrack"
	"fieldtrack/internal/api/handler/middleware"
	"fieldtrack/internal/api/handler/request"
	"fieldtrack/internal/api/handler/response"
	"fieldtrack/internal/api/models"
	"fieldtrack/internal/api/repo"
	"fieldtrack/internal/api/service"
	"fieldtrack/internal/api/ws"
	"fieldtrack/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const defaultPageSize = 50

type locationHandler struct {
	locationService *service.LocationService
	locationRepo    *repo.LocationLogRepository
	hub             *ws.Hub
	config          fieldtrack.AppConfig
	logger          zerolog.Logger
}

func newLocationHandler(hub *ws.Hub) *locationHandler {
	return &locationHandler{
		locationService: service.NewLocationService(),
		locationRepo:    repo.NewLocationLogRepository(),
		hub:             hub,
		config:          fieldtrack.GetConfig(),
		logger:          fieldtrack.Logger,
	}
}

func LocationHandler(router *graceful.Graceful, hub *ws.Hub) {
	h := newLocationHandler(hub)

	routes := router.Group("/api/v1/locations")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.POST("", h.submit)
		routes.GET("/employee/:id", h.history)
		routes.GET("/employee/:id/latest", h.latest)
	}
}

// submit is the REST fallback for clients without a live websocket. The
// persisted entry is broadcast on the location channel exactly like a
// websocket submission.
func (slf *locationHandler) submit(c *gin.Context) {
	var report request.LocationReport
	if err := pkg.ParseAndValidate(c, &report); err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	entry, err := slf.locationService.SubmitReport(&report)
	if err != nil {
		if errors.Is(err, service.ErrInvalidReport) {
			c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	slf.hub.Publish(ws.NewLocationUpdateEvent(entry))

	c.JSON(http.StatusCreated, entry)
}

func (slf *locationHandler) history(c *gin.Context) {
	employeeID, ok := slf.parseEmployeeID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 || pageSize > 500 {
		pageSize = defaultPageSize
	}

	entries, total, err := slf.locationRepo.FindByEmployee(employeeID, pageSize, (page-1)*pageSize)
	if err != nil {
		slf.logger.Error().Err(err).Uint("employeeId", employeeID).Msg("Failed to load location history")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	c.JSON(http.StatusOK, response.Page[models.LocationLog]{
		Data:       entries,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

// latest serves the employee's newest position from the Redis cache, falling
// back to the database when the cache is cold.
func (slf *locationHandler) latest(c *gin.Context) {
	employeeID, ok := slf.parseEmployeeID(c)
	if !ok {
		return
	}

	var cached models.LocationLog
	err := pkg.RedisGet(service.LastPositionKey(employeeID), &cached)
	if err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}
	if !pkg.IsRedisNil(err) {
		slf.logger.Warn().Err(err).Uint("employeeId", employeeID).Msg("Last position cache read failed")
	}

	entry, err := slf.locationRepo.LatestByEmployee(employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, response.APIError{Message: "No location reported for employee"})
			return
		}
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (slf *locationHandler) parseEmployeeID(c *gin.Context) (uint, bool) {
	employeeID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || employeeID == 0 {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid employee ID"})
		return 0, false
	}
	return uint(employeeID), true
}
