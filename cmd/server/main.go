package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-service/internal/authz"
	"github.com/yukikurage/task-service/internal/client"
	"github.com/yukikurage/task-service/internal/config"
	"github.com/yukikurage/task-service/internal/database"
	"github.com/yukikurage/task-service/internal/handlers"
	"github.com/yukikurage/task-service/internal/identity"
	"github.com/yukikurage/task-service/internal/middleware"
	"github.com/yukikurage/task-service/internal/repository"
	"github.com/yukikurage/task-service/internal/services"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	logrus.SetFormatter(&logrus.JSONFormatter{})

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	jwks, err := middleware.NewJWKS(cfg.KeycloakURL, cfg.KeycloakRealm)
	if err != nil {
		log.Fatalf("failed to fetch identity provider keys: %v", err)
	}

	roleDirectory := identity.NewKeycloakDirectory(
		cfg.KeycloakURL,
		cfg.KeycloakRealm,
		cfg.KeycloakClientID,
		cfg.KeycloakClientSecret,
	)
	identityService := identity.NewContextService(roleDirectory)

	projectClient := client.NewProjectClient(cfg.ProjectServiceURL)
	userClient := client.NewUserClient(cfg.UserServiceURL)
	engine := authz.NewEngine(projectClient, userClient, identityService)

	taskRepo := repository.NewTaskRepository(database.GetDB())
	taskService := services.NewTaskService(taskRepo, engine, identityService, cfg.ValidateEmployeeOnCount)
	taskHandler := handlers.NewTaskHandler(taskService, log)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1/task")
	api.Use(middleware.RequireAuth(jwks.Keyfunc))
	{
		api.POST("/create",
			middleware.RequireRole(identity.RoleManager), taskHandler.CreateTask)
		api.GET("/read/:taskCode",
			middleware.RequireRole(identity.RoleManager, identity.RoleEmployee), taskHandler.GetByTaskCode)
		api.GET("/read/all/:projectCode",
			middleware.RequireRole(identity.RoleManager), taskHandler.GetTasksByProject)
		api.GET("/read/employee/archive",
			middleware.RequireRole(identity.RoleEmployee), taskHandler.EmployeeArchivedTasks)
		api.GET("/read/employee/pending-tasks",
			middleware.RequireRole(identity.RoleEmployee), taskHandler.EmployeePendingTasks)
		api.GET("/count/project/:projectCode",
			middleware.RequireRole(identity.RoleManager), taskHandler.GetCountsByProject)
		api.GET("/count/employee/:username",
			middleware.RequireRole(identity.RoleAdmin), taskHandler.GetCountByAssignedEmployee)
		api.PUT("/update/:taskCode",
			middleware.RequireRole(identity.RoleManager), taskHandler.UpdateTask)
		api.PUT("/update/employee/:taskCode",
			middleware.RequireRole(identity.RoleEmployee), taskHandler.EmployeeUpdateStatus)
		api.PUT("/complete/project/:projectCode",
			middleware.RequireRole(identity.RoleManager), taskHandler.CompleteByProject)
		api.DELETE("/delete/:taskCode",
			middleware.RequireRole(identity.RoleManager), taskHandler.DeleteTask)
		api.DELETE("/delete/project/:projectCode",
			middleware.RequireRole(identity.RoleManager), taskHandler.DeleteByProject)
	}

	log.WithField("port", cfg.ServerPort).Info("server starting")
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
