package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-service/internal/authz"
	"github.com/yukikurage/task-service/internal/dto"
	"github.com/yukikurage/task-service/internal/identity"
	"github.com/yukikurage/task-service/internal/models"
	"github.com/yukikurage/task-service/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskAlreadyExists = errors.New("task already exists")
	ErrTaskNotFound      = errors.New("task does not exist")
)

// TaskService orchestrates the task lifecycle: it loads local state, runs the
// authorization sequence for the operation, then applies and persists the
// mutation. Check ordering within each operation is part of the contract and
// must not be rearranged.
type TaskService struct {
	taskRepo repository.TaskRepository
	engine   *authz.Engine
	identity identity.Service

	// validateEmployeeOnCount gates the employee-existence check in
	// CountByAssignedEmployee.
	validateEmployeeOnCount bool
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, engine *authz.Engine, idSvc identity.Service, validateEmployeeOnCount bool) *TaskService {
	return &TaskService{
		taskRepo:                taskRepo,
		engine:                  engine,
		identity:                idSvc,
		validateEmployeeOnCount: validateEmployeeOnCount,
	}
}

// Create registers a new task. The duplicate-code check runs first and
// short-circuits before any remote authority call; status and assigned date
// are forced server-side regardless of the request values.
func (s *TaskService) Create(ctx context.Context, req dto.TaskRequest) (*dto.TaskDTO, error) {
	if _, err := s.taskRepo.FindByTaskCode(req.TaskCode); err == nil {
		return nil, ErrTaskAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check task code: %w", err)
	}

	if err := s.engine.RequireProjectExists(ctx, req.ProjectCode); err != nil {
		return nil, err
	}
	if err := s.engine.RequireManagerAccess(ctx, s.identity.Username(ctx), req.ProjectCode); err != nil {
		return nil, err
	}
	if err := s.engine.RequireEmployeeExists(ctx, req.AssignedEmployee); err != nil {
		return nil, err
	}

	task := &models.Task{
		TaskCode:         req.TaskCode,
		TaskSubject:      req.TaskSubject,
		TaskDetail:       req.TaskDetail,
		TaskStatus:       models.StatusOpen,
		ProjectCode:      req.ProjectCode,
		AssignedEmployee: req.AssignedEmployee,
		AssignedDate:     today(),
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"task_code":    task.TaskCode,
		"project_code": task.ProjectCode,
	}).Info("task created")

	result := dto.ToTaskDTO(task)
	return &result, nil
}

// ReadByTaskCode returns a single task after the composite access check.
func (s *TaskService) ReadByTaskCode(ctx context.Context, taskCode string) (*dto.TaskDTO, error) {
	task, err := s.findTask(taskCode)
	if err != nil {
		return nil, err
	}

	if err := s.engine.RequireAccess(ctx, task); err != nil {
		return nil, err
	}

	result := dto.ToTaskDTO(task)
	return &result, nil
}

// ReadAllByProject lists a project's tasks for its manager.
func (s *TaskService) ReadAllByProject(ctx context.Context, projectCode string) ([]dto.TaskDTO, error) {
	if err := s.engine.RequireManagerAccess(ctx, s.identity.Username(ctx), projectCode); err != nil {
		return nil, err
	}

	tasks, err := s.taskRepo.FindAllByProjectCode(projectCode)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return dto.ToTaskDTOs(tasks), nil
}

// ReadAllByStatus lists the caller's own tasks in the given status.
func (s *TaskService) ReadAllByStatus(ctx context.Context, status models.Status) ([]dto.TaskDTO, error) {
	tasks, err := s.taskRepo.FindAllByStatusAndEmployee(status, s.identity.Username(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return dto.ToTaskDTOs(tasks), nil
}

// ReadAllByStatusNot lists the caller's own tasks outside the given status.
func (s *TaskService) ReadAllByStatusNot(ctx context.Context, status models.Status) ([]dto.TaskDTO, error) {
	tasks, err := s.taskRepo.FindAllByStatusNotAndEmployee(status, s.identity.Username(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return dto.ToTaskDTOs(tasks), nil
}

// GetCountsByProject returns the project's COMPLETED / non-COMPLETED split
// for its manager.
func (s *TaskService) GetCountsByProject(ctx context.Context, projectCode string) (*dto.TaskCountsDTO, error) {
	if err := s.engine.RequireManagerAccess(ctx, s.identity.Username(ctx), projectCode); err != nil {
		return nil, err
	}

	completed, err := s.taskRepo.CountByProjectAndStatus(projectCode, models.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	nonCompleted, err := s.taskRepo.CountByProjectAndStatusNot(projectCode, models.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count non-completed tasks: %w", err)
	}

	return &dto.TaskCountsDTO{
		CompletedTaskCount:    completed,
		NonCompletedTaskCount: nonCompleted,
	}, nil
}

// CountByAssignedEmployee counts an employee's tasks. The employee-existence
// check only runs when the service is configured to validate on count.
func (s *TaskService) CountByAssignedEmployee(ctx context.Context, employee string) (int64, error) {
	if s.validateEmployeeOnCount {
		if err := s.engine.RequireEmployeeExists(ctx, employee); err != nil {
			return 0, err
		}
	}

	count, err := s.taskRepo.CountByAssignedEmployee(employee)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// Update replaces a task's content. The new assignee is validated before the
// manager check, and the manager check runs against the task's existing
// project code, not the incoming one.
func (s *TaskService) Update(ctx context.Context, taskCode string, req dto.TaskRequest) (*dto.TaskDTO, error) {
	task, err := s.findTask(taskCode)
	if err != nil {
		return nil, err
	}

	if err := s.engine.RequireEmployeeExists(ctx, req.AssignedEmployee); err != nil {
		return nil, err
	}
	if err := s.engine.RequireManagerAccess(ctx, s.identity.Username(ctx), task.ProjectCode); err != nil {
		return nil, err
	}
	if err := s.engine.RequireProjectExists(ctx, req.ProjectCode); err != nil {
		return nil, err
	}

	task.TaskSubject = req.TaskSubject
	task.TaskDetail = req.TaskDetail
	task.ProjectCode = req.ProjectCode
	task.AssignedEmployee = req.AssignedEmployee
	if req.TaskStatus != "" {
		task.TaskStatus = req.TaskStatus
	}
	task.AssignedDate = today()

	if err := s.taskRepo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	result := dto.ToTaskDTO(task)
	return &result, nil
}

// UpdateStatus is the employee path: only the assignee may move the task,
// and the assigned date is left untouched.
func (s *TaskService) UpdateStatus(ctx context.Context, taskCode string, status models.Status) (*dto.TaskDTO, error) {
	task, err := s.findTask(taskCode)
	if err != nil {
		return nil, err
	}

	if err := s.engine.RequireEmployeeAccess(s.identity.Username(ctx), task); err != nil {
		return nil, err
	}

	task.TaskStatus = status

	if err := s.taskRepo.Save(task); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	result := dto.ToTaskDTO(task)
	return &result, nil
}

// CompleteByProject marks every task of a project COMPLETED. Each task is
// saved on its own; there is no surrounding transaction, so tasks completed
// before a mid-loop failure stay completed.
func (s *TaskService) CompleteByProject(ctx context.Context, projectCode string) error {
	if err := s.engine.RequireManagerAccess(ctx, s.identity.Username(ctx), projectCode); err != nil {
		return err
	}

	tasks, err := s.taskRepo.FindAllByProjectCode(projectCode)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	for i := range tasks {
		tasks[i].TaskStatus = models.StatusCompleted
		if err := s.taskRepo.Save(&tasks[i]); err != nil {
			return fmt.Errorf("failed to complete task %s: %w", tasks[i].TaskCode, err)
		}
	}
	return nil
}

// Delete soft-deletes a single task.
func (s *TaskService) Delete(ctx context.Context, taskCode string) error {
	task, err := s.findTask(taskCode)
	if err != nil {
		return err
	}

	if err := s.engine.RequireManagerAccess(ctx, s.identity.Username(ctx), task.ProjectCode); err != nil {
		return err
	}

	softDelete(task)
	if err := s.taskRepo.Save(task); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	logrus.WithField("task_code", task.TaskCode).Info("task deleted")
	return nil
}

// DeleteByProject soft-deletes every task of a project, one save per task.
func (s *TaskService) DeleteByProject(ctx context.Context, projectCode string) error {
	if err := s.engine.RequireManagerAccess(ctx, s.identity.Username(ctx), projectCode); err != nil {
		return err
	}

	tasks, err := s.taskRepo.FindAllByProjectCode(projectCode)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	for i := range tasks {
		softDelete(&tasks[i])
		if err := s.taskRepo.Save(&tasks[i]); err != nil {
			return fmt.Errorf("failed to delete task %s: %w", tasks[i].TaskCode, err)
		}
	}
	return nil
}

func (s *TaskService) findTask(taskCode string) (*models.Task, error) {
	task, err := s.taskRepo.FindByTaskCode(taskCode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// softDelete flags the task and renames its code to <code>-<id>, which
// releases the original code for reuse while keeping the row findable.
func softDelete(task *models.Task) {
	task.IsDeleted = true
	task.TaskCode = fmt.Sprintf("%s-%d", task.TaskCode, task.ID)
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
