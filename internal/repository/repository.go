package repository

import (
	"github.com/yukikurage/task-service/internal/models"
)

// TaskRepository defines the persistence contract for tasks. It carries no
// business rules; authorization and cross-service validation happen above it.
type TaskRepository interface {
	// Create inserts a new task
	Create(task *models.Task) error

	// Save persists changes to an existing task
	Save(task *models.Task) error

	// FindByTaskCode finds a task by its exact code. Soft-deleted tasks are
	// not filtered out: their codes were renamed on deletion, so the original
	// code no longer matches them.
	FindByTaskCode(code string) (*models.Task, error)

	// FindAllByProjectCode lists every task that references a project
	FindAllByProjectCode(projectCode string) ([]models.Task, error)

	// FindAllByStatusAndEmployee lists an employee's tasks in a given status
	FindAllByStatusAndEmployee(status models.Status, employee string) ([]models.Task, error)

	// FindAllByStatusNotAndEmployee lists an employee's tasks outside a given status
	FindAllByStatusNotAndEmployee(status models.Status, employee string) ([]models.Task, error)

	// CountByAssignedEmployee counts tasks assigned to an employee
	CountByAssignedEmployee(employee string) (int64, error)

	// CountByProjectAndStatus counts a project's tasks in a given status
	CountByProjectAndStatus(projectCode string, status models.Status) (int64, error)

	// CountByProjectAndStatusNot counts a project's tasks outside a given status
	CountByProjectAndStatusNot(projectCode string, status models.Status) (int64, error)
}
