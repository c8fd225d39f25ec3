package repo

import (
	"fieldtrack"
	"fieldtrack/internal/api/models"

	"gorm.io/gorm"
)

type TaskRepository struct {
	Db *gorm.DB
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{Db: fieldtrack.DB}
}

// FindByID retrieves a task with its assignee preloaded
func (slf *TaskRepository) FindByID(id uint) (models.Task, error) {
	var task models.Task
	err := slf.Db.Preload("Assignee").First(&task, id).Error
	return task, err
}

// FindAll returns tasks, optionally filtered by status and/or assignee
func (slf *TaskRepository) FindAll(status *models.TaskStatus, assigneeID *uint) ([]models.Task, error) {
	var tasks []models.Task
	query := slf.Db.Preload("Assignee").Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if assigneeID != nil {
		query = query.Where("assignee_id = ?", *assigneeID)
	}
	err := query.Find(&tasks).Error
	return tasks, err
}

func (slf *TaskRepository) Create(task *models.Task) error {
	return slf.Db.Create(task).Error
}

// UpdateFields applies a partial update to a task row
func (slf *TaskRepository) UpdateFields(id uint, patch map[string]any) error {
	return slf.Db.Model(&models.Task{}).Where("id = ?", id).Updates(patch).Error
}

func (slf *TaskRepository) Delete(id uint) error {
	return slf.Db.Delete(&models.Task{}, id).Error
}
