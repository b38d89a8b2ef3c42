package dto

import (
	"time"

	"github.com/yukikurage/task-service/internal/models"
)

// ResponseWrapper is the uniform response envelope, the same shape the peer
// services answer with.
type ResponseWrapper struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// TaskRequest is the inbound body for create and full update. Status is
// optional: create forces OPEN regardless, update keeps the existing status
// when it is absent.
type TaskRequest struct {
	TaskCode         string        `json:"task_code" binding:"required"`
	TaskSubject      string        `json:"task_subject" binding:"required"`
	TaskDetail       string        `json:"task_detail"`
	TaskStatus       models.Status `json:"task_status"`
	ProjectCode      string        `json:"project_code" binding:"required"`
	AssignedEmployee string        `json:"assigned_employee" binding:"required"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID               uint64        `json:"id"`
	TaskCode         string        `json:"task_code"`
	TaskSubject      string        `json:"task_subject"`
	TaskDetail       string        `json:"task_detail"`
	TaskStatus       models.Status `json:"task_status"`
	ProjectCode      string        `json:"project_code"`
	AssignedEmployee string        `json:"assigned_employee"`
	AssignedDate     time.Time     `json:"assigned_date"`
}

// TaskCountsDTO carries a project's task counts split at the COMPLETED
// boundary.
type TaskCountsDTO struct {
	CompletedTaskCount    int64 `json:"completedTaskCount"`
	NonCompletedTaskCount int64 `json:"nonCompletedTaskCount"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task *models.Task) TaskDTO {
	return TaskDTO{
		ID:               task.ID,
		TaskCode:         task.TaskCode,
		TaskSubject:      task.TaskSubject,
		TaskDetail:       task.TaskDetail,
		TaskStatus:       task.TaskStatus,
		ProjectCode:      task.ProjectCode,
		AssignedEmployee: task.AssignedEmployee,
		AssignedDate:     task.AssignedDate,
	}
}

// ToTaskDTOs converts a slice of Task models to TaskDTOs
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i := range tasks {
		dtos[i] = ToTaskDTO(&tasks[i])
	}
	return dtos
}
