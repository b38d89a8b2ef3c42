package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-service/internal/dto"
	apierrors "github.com/yukikurage/task-service/internal/errors"
	"github.com/yukikurage/task-service/internal/models"
	"github.com/yukikurage/task-service/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
	log         *logrus.Logger
}

func NewTaskHandler(taskService *services.TaskService, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         log,
	}
}

// CreateTask handles POST /create (Manager)
func (h *TaskHandler) CreateTask(c *gin.Context) {
	const op = "handlers.TaskHandler.CreateTask"

	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.taskService.Create(c.Request.Context(), req)
	if err != nil {
		h.log.WithField("operation", op).WithError(err).Warn("create task rejected")
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ResponseWrapper{
		Success: true,
		Message: "Task is successfully created.",
		Data:    created,
	})
}

// GetByTaskCode handles GET /read/:taskCode (Manager or Employee)
func (h *TaskHandler) GetByTaskCode(c *gin.Context) {
	task, err := h.taskService.ReadByTaskCode(c.Request.Context(), c.Param("taskCode"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResponseWrapper{
		Success: true,
		Message: "Task is successfully retrieved.",
		Data:    task,
	})
}

// GetTasksByProject handles GET /read/all/:projectCode (Manager)
func (h *TaskHandler) GetTasksByProject(c *gin.Context) {
	tasks, err := h.taskService.ReadAllByProject(c.Request.Context(), c.Param("projectCode"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResponseWrapper{
		Success: true,
		Message: "Tasks are successfully retrieved.",
		Data:    tasks,
	})
}

// EmployeeArchivedTasks handles GET /read/employee/archive (Employee)
func (h *TaskHandler) EmployeeArchivedTasks(c *gin.Context) {
	tasks, err := h.taskService.ReadAllByStatus(c.Request.Context(), models.StatusCompleted)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResponseWrapper{
		Success: true,
		Message: "Tasks are successfully retrieved.",
		Data:    tasks,
	})
}

// EmployeePendingTasks handles GET /read/employee/pending-tasks (Employee)
func (h *TaskHandler) EmployeePendingTasks(c *gin.Context) {
	tasks, err := h.taskService.ReadAllByStatusNot(c.Request.Context(), models.StatusCompleted)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResponseWrapper{
		Success: true,
		Message: "Tasks are successfully retrieved.",
		Data:    tasks,
	})
}

// GetCountsByProject handles GET /count/project/:projectCode (Manager)
func (h *TaskHandler) GetCountsByProject(c *gin.Context) {
	counts, err := h.taskService.GetCountsByProject(c.Request.Context(), c.Param("projectCode"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResponseWrapper{
		Success: true,
		Message: "Task counts are successfully retrieved.",
		Data:    counts,
	})
}

// GetCountByAssignedEmployee handles GET /count/employee/:username (Admin)
func (h *TaskHandler) GetCountByAssignedEmployee(c *gin.Context) {
	count, err := h.taskService.CountByAssignedEmployee(c.Request.Context(), c.Param("username"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResponseWrapper{
		Success: true,
		Message: "Task count is successfully retrieved.",
		Data:    count,
	})
}

// UpdateTask handles PUT /update/:taskCode (Manager)
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	const op = "handlers.TaskHandler.UpdateTask"

	var req dto.TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "invalid request body")
		return
	}
	if req.TaskStatus != "" && !req.TaskStatus.Valid() {
		apierrors.BadRequest(c, "invalid task status")
		return
	}

	updated, err := h.taskService.Update(c.Request.Context(), c.Param("taskCode"), req)
	if err != nil {
		h.log.WithField("operation", op).WithError(err).Warn("update task rejected")
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResponseWrapper{
		Success: true,
		Message: "Task is successfully updated.",
		Data:    updated,
	})
}

// EmployeeUpdateStatus handles PUT /update/employee/:taskCode (Employee)
func (h *TaskHandler) EmployeeUpdateStatus(c *gin.Context) {
	status := models.Status(c.Query("status"))
	if !status.Valid() {
		apierrors.BadRequest(c, "invalid task status")
		return
	}

	updated, err := h.taskService.UpdateStatus(c.Request.Context(), c.Param("taskCode"), status)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResponseWrapper{
		Success: true,
		Message: "Task is successfully updated.",
		Data:    updated,
	})
}

// CompleteByProject handles PUT /complete/project/:projectCode (Manager)
func (h *TaskHandler) CompleteByProject(c *gin.Context) {
	if err := h.taskService.CompleteByProject(c.Request.Context(), c.Param("projectCode")); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResponseWrapper{
		Success: true,
		Message: "Tasks are successfully completed.",
	})
}

// DeleteTask handles DELETE /delete/:taskCode (Manager)
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	if err := h.taskService.Delete(c.Request.Context(), c.Param("taskCode")); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteByProject handles DELETE /delete/project/:projectCode (Manager)
func (h *TaskHandler) DeleteByProject(c *gin.Context) {
	if err := h.taskService.DeleteByProject(c.Request.Context(), c.Param("projectCode")); err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ResponseWrapper{
		Success: true,
		Message: "Tasks are successfully deleted.",
	})
}
