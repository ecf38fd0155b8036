package bootstrap

import (
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"schoolhub/internal/app/controllers"
	"schoolhub/internal/app/migrations"
	"schoolhub/internal/app/repositories"
	"schoolhub/internal/app/routes"
	"schoolhub/internal/app/services"
	"schoolhub/internal/config"
	"schoolhub/internal/db"
	"schoolhub/internal/middleware"
	"schoolhub/internal/pkg/auth"
	"schoolhub/internal/pkg/logger"
)

// Dependencies holds the wired application components.
type Dependencies struct {
	Config *config.Config
	DB     *db.PostgresDB

	AuthService     *services.AuthService
	StudentService  *services.StudentService
	ScheduleService *services.ScheduleService

	AuthController     *controllers.AuthController
	StudentController  *controllers.StudentController
	ScheduleController *controllers.ScheduleController

	AuthMiddleware *middleware.AuthMiddleware
}

// LoadConfigAndSetupLogger reads configuration and configures the global logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	cfg, err := config.LoadConfig(filepath.Join("configs", "config.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	return cfg, nil
}

// SetupDatabase connects to PostgreSQL and applies pending migrations.
func SetupDatabase(cfg *config.Config) (*db.PostgresDB, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(filepath.Join("migrations")); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return database, nil
}

// BuildDependencies wires repositories, services, controllers and middleware.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB) *Dependencies {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenExp(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	repos := repositories.NewRepositories(database.Pool)

	authService := services.NewAuthService(repos.StudentRepository, jwtService, logger.GetLogger("auth_service"))
	studentService := services.NewStudentService(repos.StudentRepository, logger.GetLogger("student_service"))
	scheduleService := services.NewScheduleService(repos.ScheduleRepository, logger.GetLogger("schedule_service"))

	return &Dependencies{
		Config: cfg,
		DB:     database,

		AuthService:     authService,
		StudentService:  studentService,
		ScheduleService: scheduleService,

		AuthController:     controllers.NewAuthController(authService, logger.GetLogger("auth_controller")),
		StudentController:  controllers.NewStudentController(studentService, logger.GetLogger("student_controller")),
		ScheduleController: controllers.NewScheduleController(scheduleService, logger.GetLogger("schedule_controller")),

		AuthMiddleware: middleware.NewAuthMiddleware(jwtService),
	}
}

// SetupRouter builds the gin engine with global middleware and all routes.
func SetupRouter(deps *Dependencies) *gin.Engine {
	if deps.Config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.RequestLogger())

	routes.SetupRouter(
		router,
		deps.AuthController,
		deps.StudentController,
		deps.ScheduleController,
		deps.AuthMiddleware,
	)

	return router
}
