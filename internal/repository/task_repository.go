package repository

import (
	"github.com/yukikurage/task-service/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

func (r *GormTaskRepository) Save(task *models.Task) error {
	return r.db.Save(task).Error
}

func (r *GormTaskRepository) FindByTaskCode(code string) (*models.Task, error) {
	var task models.Task
	if err := r.db.Where("task_code = ?", code).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *GormTaskRepository) FindAllByProjectCode(projectCode string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("project_code = ? AND is_deleted = ?", projectCode, false).
		Find(&tasks).Error
	return tasks, err
}

func (r *GormTaskRepository) FindAllByStatusAndEmployee(status models.Status, employee string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("task_status = ? AND assigned_employee = ? AND is_deleted = ?", status, employee, false).
		Find(&tasks).Error
	return tasks, err
}

func (r *GormTaskRepository) FindAllByStatusNotAndEmployee(status models.Status, employee string) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("task_status <> ? AND assigned_employee = ? AND is_deleted = ?", status, employee, false).
		Find(&tasks).Error
	return tasks, err
}

func (r *GormTaskRepository) CountByAssignedEmployee(employee string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("assigned_employee = ? AND is_deleted = ?", employee, false).
		Count(&count).Error
	return count, err
}

func (r *GormTaskRepository) CountByProjectAndStatus(projectCode string, status models.Status) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("project_code = ? AND task_status = ? AND is_deleted = ?", projectCode, status, false).
		Count(&count).Error
	return count, err
}

func (r *GormTaskRepository) CountByProjectAndStatusNot(projectCode string, status models.Status) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("project_code = ? AND task_status <> ? AND is_deleted = ?", projectCode, status, false).
		Count(&count).Error
	return count, err
}
