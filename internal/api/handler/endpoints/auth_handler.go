package endpoints

import (
	"net/http"

	"fieldtrack"
	"fieldtrack/internal/api/handler/mapper"
	"fieldtrack/internal/api/handler/middleware"
	"fieldtrack/internal/api/handler/request"
	"fieldtrack/internal/api/handler/response"
	"fieldtrack/internal/api/models"
	"fieldtrack/internal/api/service"
	"fieldtrack/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type authHandler struct {
	employeeService *service.EmployeeService
	employeeMapper  mapper.EmployeeMapper
	logger          zerolog.Logger
	config          fieldtrack.AppConfig
}

func newAuthHandler() *authHandler {
	return &authHandler{
		employeeService: service.NewEmployeeService(),
		logger:          fieldtrack.Logger,
		config:          fieldtrack.GetConfig(),
	}
}

func AuthHandler(router *graceful.Graceful) {
	h := newAuthHandler()

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refreshToken)
	}

	protected := router.Group("/api/v1")
	protected.Use(middleware.AuthMiddleware(h.config))
	{
		protected.GET("/me", h.getMe)
	}

	admin := router.Group("/api/v1/employees")
	admin.Use(middleware.AuthMiddleware(h.config))
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("", h.getAllEmployees)
	}
}

func (slf *authHandler) register(c *gin.Context) {
	var registerDTO request.RegisterDTO

	err := pkg.ParseAndValidate(c, &registerDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating register DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	authResponse, err := slf.employeeService.Register(registerDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error registering employee")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, authResponse)
}

func (slf *authHandler) login(c *gin.Context) {
	var loginDTO request.LoginDTO
	err := pkg.ParseAndValidate(c, &loginDTO)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing and validating login DTO")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	authResponse, err := slf.employeeService.Login(loginDTO)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, authResponse)
}

func (slf *authHandler) refreshToken(c *gin.Context) {
	var refreshDTO request.RefreshDTO
	err := pkg.ParseAndValidate(c, &refreshDTO)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	authResponse, err := slf.employeeService.Refresh(refreshDTO)
	if err != nil {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, authResponse)
}

func (slf *authHandler) getMe(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.APIError{Message: "User not authenticated"})
		return
	}

	employee, err := slf.employeeService.GetByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: "Employee not found"})
		return
	}

	c.JSON(http.StatusOK, slf.employeeMapper.EntityToEmployeeResponse(employee))
}

func (slf *authHandler) getAllEmployees(c *gin.Context) {
	employees, err := slf.employeeService.GetAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing employees")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: err.Error()})
		return
	}

	responses := make([]response.EmployeeResponse, 0, len(employees))
	for _, employee := range employees {
		responses = append(responses, slf.employeeMapper.EntityToEmployeeResponse(employee))
	}
	c.JSON(http.StatusOK, responses)
}
