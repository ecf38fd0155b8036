package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolhub/internal/app/controllers"
	"schoolhub/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	scheduleController *controllers.ScheduleController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.ListStudents)
			students.GET("/:id", studentController.GetStudentByID)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
		}

		schedules := authenticated.Group("/schedules")
		{
			schedules.GET("", scheduleController.ListSchedules)
			schedules.GET("/:id", scheduleController.GetScheduleByID)
			schedules.POST("", scheduleController.CreateSchedule)
			schedules.PUT("/:id", scheduleController.UpdateSchedule)
			schedules.DELETE("/:id", scheduleController.DeleteSchedule)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
