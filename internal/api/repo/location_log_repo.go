package repo

import (
	"fieldtrack"
	"fieldtrack/internal/api/models"

	"gorm.io/gorm"
)

type LocationLogRepository struct {
	Db *gorm.DB
}

func NewLocationLogRepository() *LocationLogRepository {
	return &LocationLogRepository{Db: fieldtrack.DB}
}

// Create writes one location log entry. Each report is an independent write;
// there is no batching or upsert behavior.
func (slf *LocationLogRepository) Create(entry *models.LocationLog) error {
	return slf.Db.Create(entry).Error
}

// FindByEmployee returns an employee's trail, newest first
func (slf *LocationLogRepository) FindByEmployee(employeeID uint, limit int, offset int) ([]models.LocationLog, int64, error) {
	var entries []models.LocationLog
	var total int64

	if err := slf.Db.Model(&models.LocationLog{}).Where("employee_id = ?", employeeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := slf.Db.Where("employee_id = ?", employeeID).
		Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, total, err
}

// LatestByEmployee returns the most recent entry for an employee
func (slf *LocationLogRepository) LatestByEmployee(employeeID uint) (models.LocationLog, error) {
	var entry models.LocationLog
	err := slf.Db.Where("employee_id = ?", employeeID).
		Order("timestamp DESC").
		First(&entry).Error
	return entry, err
}
