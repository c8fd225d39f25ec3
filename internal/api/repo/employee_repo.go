package repo

import (
	"fieldtrack"
	"fieldtrack/internal/api/models"

	"gorm.io/gorm"
)

type EmployeeRepository struct {
	Db *gorm.DB
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{Db: fieldtrack.DB}
}

func (slf *EmployeeRepository) FindByEmail(email string) (models.Employee, error) {
	var employee models.Employee
	err := slf.Db.Where("email = ?", email).First(&employee).Error
	return employee, err
}

func (slf *EmployeeRepository) FindByID(id uint) (models.Employee, error) {
	var employee models.Employee
	err := slf.Db.First(&employee, id).Error
	return employee, err
}

func (slf *EmployeeRepository) Create(employee *models.Employee) error {
	return slf.Db.Create(employee).Error
}

func (slf *EmployeeRepository) Update(employee *models.Employee) error {
	return slf.Db.Save(employee).Error
}

func (slf *EmployeeRepository) Delete(id uint) error {
	return slf.Db.Delete(&models.Employee{}, id).Error
}

func (slf *EmployeeRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := slf.Db.Model(&models.Employee{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

func (slf *EmployeeRepository) GetAll() ([]models.Employee, error) {
	var employees []models.Employee
	err := slf.Db.Order("last_name, first_name").Find(&employees).Error
	return employees, err
}
