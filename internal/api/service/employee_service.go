package service

import (
	"errors"

	"fieldtrack"
	"fieldtrack/internal/api/handler/mapper"
	"fieldtrack/internal/api/handler/request"
	"fieldtrack/internal/api/handler/response"
	"fieldtrack/internal/api/models"
	"fieldtrack/internal/api/repo"
	"fieldtrack/pkg"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type EmployeeService struct {
	employeeRepo   *repo.EmployeeRepository
	config         fieldtrack.AppConfig
	logger         zerolog.Logger
	employeeMapper mapper.EmployeeMapper
}

func NewEmployeeService() *EmployeeService {
	return &EmployeeService{
		employeeRepo: repo.NewEmployeeRepository(),
		config:       fieldtrack.GetConfig(),
		logger:       fieldtrack.Logger,
	}
}

func (slf *EmployeeService) Register(registerDTO request.RegisterDTO) (*response.AuthResponseDTO, error) {
	exists, err := slf.employeeRepo.ExistsByEmail(registerDTO.Email)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error checking if employee exists")
		return nil, err
	}
	if exists {
		return nil, errors.New("employee with this email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(registerDTO.Password), bcrypt.DefaultCost)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error hashing password")
		return nil, err
	}

	employee := models.Employee{
		Email:     registerDTO.Email,
		Password:  string(hashedPassword),
		FirstName: registerDTO.FirstName,
		LastName:  registerDTO.LastName,
		Phone:     registerDTO.Phone,
		Role:      models.RoleField,
		Active:    true,
	}

	if err = slf.employeeRepo.Create(&employee); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating employee")
		return nil, err
	}

	return slf.issueTokens(employee)
}

func (slf *EmployeeService) Login(loginDTO request.LoginDTO) (*response.AuthResponseDTO, error) {
	employee, err := slf.employeeRepo.FindByEmail(loginDTO.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invalid email or password")
		}
		slf.logger.Error().Err(err).Msg("Error finding employee by email")
		return nil, err
	}

	if !employee.Active {
		return nil, errors.New("account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(loginDTO.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	return slf.issueTokens(employee)
}

func (slf *EmployeeService) Refresh(refreshDTO request.RefreshDTO) (*response.AuthResponseDTO, error) {
	claims, err := pkg.ValidateToken(refreshDTO.RefreshToken, slf.config.JWTConfig.Secret)
	if err != nil {
		return nil, errors.New("invalid or expired refresh token")
	}

	employee, err := slf.employeeRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, errors.New("employee not found")
	}

	if employee.RefreshToken != refreshDTO.RefreshToken {
		return nil, errors.New("refresh token revoked")
	}

	return slf.issueTokens(employee)
}

func (slf *EmployeeService) GetByID(id uint) (models.Employee, error) {
	return slf.employeeRepo.FindByID(id)
}

func (slf *EmployeeService) GetAll() ([]models.Employee, error) {
	return slf.employeeRepo.GetAll()
}

func (slf *EmployeeService) issueTokens(employee models.Employee) (*response.AuthResponseDTO, error) {
	token, err := pkg.GenerateToken(employee.ID, employee.Email, string(employee.Role), slf.config.JWTConfig.Secret, slf.config.JWTConfig.Expiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating token")
		return nil, err
	}

	refreshToken, err := pkg.GenerateRefreshToken(employee.ID, slf.config.JWTConfig.Secret, slf.config.JWTConfig.RefreshExpiration)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error generating refresh token")
		return nil, err
	}

	employee.RefreshToken = refreshToken
	if err = slf.employeeRepo.Update(&employee); err != nil {
		slf.logger.Error().Err(err).Msg("Error storing refresh token")
		return nil, err
	}

	return &response.AuthResponseDTO{
		Token:        token,
		RefreshToken: refreshToken,
		Employee:     slf.employeeMapper.EntityToEmployeeResponse(employee),
	}, nil
}
