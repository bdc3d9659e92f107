package routes

import (
	"pms-backend/internal/api/handlers"
	"pms-backend/internal/api/middleware"
	"pms-backend/internal/auth"
	"pms-backend/internal/config"
	"pms-backend/internal/repository"
	"pms-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	timeEntryRepo := repository.NewTimeEntryRepository(db)
	testCategoryRepo := repository.NewTestCategoryRepository(db)
	testPriorityRepo := repository.NewTestPriorityRepository(db)
	testEnvironmentRepo := repository.NewTestEnvironmentRepository(db)
	testCaseRepo := repository.NewTestCaseRepository(db)
	testStepRepo := repository.NewTestStepRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo, validator)
	employeeService := service.NewEmployeeService(employeeRepo, userService, taskRepo, validator)
	teamService := service.NewTeamService(teamRepo, employeeRepo, validator)
	projectService := service.NewProjectService(projectRepo, teamRepo, validator)
	taskService := service.NewTaskService(taskRepo, projectRepo, employeeRepo, validator)
	commentService := service.NewCommentService(commentRepo, taskRepo, employeeRepo, validator)
	timeEntryService := service.NewTimeEntryService(timeEntryRepo, taskRepo, employeeRepo, validator)
	testCategoryService := service.NewTestCategoryService(testCategoryRepo, validator)
	testPriorityService := service.NewTestPriorityService(testPriorityRepo, validator)
	testEnvironmentService := service.NewTestEnvironmentService(testEnvironmentRepo, validator)
	testCaseService := service.NewTestCaseService(testCaseRepo, testStepRepo, projectRepo, userRepo, testCategoryRepo, testPriorityRepo, testEnvironmentRepo, validator)
	testStepService := service.NewTestStepService(testStepRepo, testCaseRepo, validator)

	// Initialize auth services
	authService := auth.NewAuthService(cfg, userRepo)
	authHandler := auth.NewAuthHandler(authService, userService)
	authMiddleware := auth.NewAuthMiddleware(authService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	userHandler := handlers.NewUserHandler(userService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	teamHandler := handlers.NewTeamHandler(teamService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	commentHandler := handlers.NewCommentHandler(commentService)
	timeEntryHandler := handlers.NewTimeEntryHandler(timeEntryService)
	testReferenceHandler := handlers.NewTestReferenceHandler(testCategoryService, testPriorityService, testEnvironmentService)
	testCaseHandler := handlers.NewTestCaseHandler(testCaseService, testStepService)
	testStepHandler := handlers.NewTestStepHandler(testStepService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)
	}

	// API v1 routes - All endpoints require authentication
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())

	{
		// User routes
		users := v1.Group("/users")
		{
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		// Employee routes
		employees := v1.Group("/employees")
		{
			employees.GET("", employeeHandler.ListEmployees)
			employees.POST("", employeeHandler.CreateEmployee)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.PUT("/:id", employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
			employees.GET("/:id/tasks", employeeHandler.GetEmployeeTasks)
		}

		// Team routes
		teams := v1.Group("/teams")
		{
			teams.GET("", teamHandler.ListTeams)
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("/:id", teamHandler.GetTeam)
			teams.PUT("/:id", teamHandler.UpdateTeam)
			teams.DELETE("/:id", teamHandler.DeleteTeam)
			teams.POST("/:id/members", teamHandler.AddTeamMember)
			teams.POST("/activate", teamHandler.ActivateTeams)
			teams.POST("/deactivate", teamHandler.DeactivateTeams)
		}

		// Project routes
		projects := v1.Group("/projects")
		{
			projects.GET("", projectHandler.ListProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.GET("/:id", projectHandler.GetProject)
			projects.PUT("/:id", projectHandler.UpdateProject)
			projects.DELETE("/:id", projectHandler.DeleteProject)
			projects.POST("/archive", projectHandler.ArchiveProjects)
			projects.POST("/unarchive", projectHandler.UnarchiveProjects)
			projects.GET("/:id/tasks-summary", projectHandler.GetProjectTasksSummary)
			projects.GET("/:id/budget-status", projectHandler.GetProjectBudgetStatus)
		}

		// Task routes
		tasks := v1.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.POST("/mark-completed", taskHandler.MarkTasksCompleted)
			tasks.POST("/mark-in-progress", taskHandler.MarkTasksInProgress)
			tasks.GET("/:id/time-logged", taskHandler.GetTaskTimeLogged)
			tasks.POST("/:id/dependencies", taskHandler.AddTaskDependency)
			tasks.DELETE("/:id/dependencies/:depends_on_id", taskHandler.RemoveTaskDependency)
			tasks.GET("/:id/comments", commentHandler.ListTaskComments)
		}

		// Comment routes
		comments := v1.Group("/comments")
		{
			comments.POST("", commentHandler.CreateComment)
			comments.GET("/:id", commentHandler.GetComment)
			comments.PUT("/:id", commentHandler.UpdateComment)
			comments.DELETE("/:id", commentHandler.DeleteComment)
		}

		// Time entry routes
		timeEntries := v1.Group("/time-entries")
		{
			timeEntries.GET("", timeEntryHandler.ListTimeEntries)
			timeEntries.POST("", timeEntryHandler.CreateTimeEntry)
			timeEntries.GET("/:id", timeEntryHandler.GetTimeEntry)
			timeEntries.PUT("/:id", timeEntryHandler.UpdateTimeEntry)
			timeEntries.DELETE("/:id", timeEntryHandler.DeleteTimeEntry)
		}

		// Test reference routes
		testCategories := v1.Group("/test-categories")
		{
			testCategories.GET("", testReferenceHandler.ListTestCategories)
			testCategories.POST("", testReferenceHandler.CreateTestCategory)
			testCategories.GET("/:id", testReferenceHandler.GetTestCategory)
			testCategories.PUT("/:id", testReferenceHandler.UpdateTestCategory)
			testCategories.DELETE("/:id", testReferenceHandler.DeleteTestCategory)
		}

		testPriorities := v1.Group("/test-priorities")
		{
			testPriorities.GET("", testReferenceHandler.ListTestPriorities)
			testPriorities.POST("", testReferenceHandler.CreateTestPriority)
			testPriorities.GET("/:id", testReferenceHandler.GetTestPriority)
			testPriorities.PUT("/:id", testReferenceHandler.UpdateTestPriority)
			testPriorities.DELETE("/:id", testReferenceHandler.DeleteTestPriority)
		}

		testEnvironments := v1.Group("/test-environments")
		{
			testEnvironments.GET("", testReferenceHandler.ListTestEnvironments)
			testEnvironments.POST("", testReferenceHandler.CreateTestEnvironment)
			testEnvironments.GET("/:id", testReferenceHandler.GetTestEnvironment)
			testEnvironments.PUT("/:id", testReferenceHandler.UpdateTestEnvironment)
			testEnvironments.DELETE("/:id", testReferenceHandler.DeleteTestEnvironment)
		}

		// Test case routes
		testCases := v1.Group("/test-cases")
		{
			testCases.GET("", testCaseHandler.ListTestCases)
			testCases.POST("", testCaseHandler.CreateTestCase)
			testCases.GET("/:id", testCaseHandler.GetTestCase)
			testCases.PUT("/:id", testCaseHandler.UpdateTestCase)
			testCases.DELETE("/:id", testCaseHandler.DeleteTestCase)
			testCases.GET("/:id/steps", testCaseHandler.ListTestCaseSteps)
			testCases.PUT("/:id/steps", testCaseHandler.SaveTestCaseSteps)
			testCases.POST("/:id/dependencies", testCaseHandler.AddTestCaseDependency)
			testCases.DELETE("/:id/dependencies/:depends_on_id", testCaseHandler.RemoveTestCaseDependency)
		}

		// Test step routes
		testSteps := v1.Group("/test-steps")
		{
			testSteps.POST("", testStepHandler.CreateTestStep)
			testSteps.GET("/:id", testStepHandler.GetTestStep)
			testSteps.PUT("/:id", testStepHandler.UpdateTestStep)
			testSteps.DELETE("/:id", testStepHandler.DeleteTestStep)
		}
	}

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router
}

// SetupHealthRoutes sets up only health check routes (useful for testing)
func SetupHealthRoutes(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(db)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	return router
}
