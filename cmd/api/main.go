package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/frankvera/academia-api/api/swagger"
	"github.com/frankvera/academia-api/internal/handler"
	"github.com/frankvera/academia-api/internal/middleware"
	"github.com/frankvera/academia-api/internal/models"
	"github.com/frankvera/academia-api/internal/repository"
	"github.com/frankvera/academia-api/internal/service"
	"github.com/frankvera/academia-api/pkg/cache"
	"github.com/frankvera/academia-api/pkg/config"
	"github.com/frankvera/academia-api/pkg/database"
	"github.com/frankvera/academia-api/pkg/logger"
	"github.com/frankvera/academia-api/pkg/mailer"
	corsmiddleware "github.com/frankvera/academia-api/pkg/middleware/cors"
	reqidmiddleware "github.com/frankvera/academia-api/pkg/middleware/requestid"
)

// @title Academia API
// @version 1.0.0
// @description Course management backend: students, modules, lessons and per-student progress
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		redisClient = nil
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsService := service.NewMetricsService()
	cacheService := service.NewCacheService(cacheRepo, metricsService, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled)

	mailSender := mailer.NewSMTPSender(cfg.SMTP)

	authService := service.NewAuthService(userRepo, roleRepo, mailSender, validate, logr, service.AuthConfig{
		Secret:           cfg.JWT.Secret,
		TokenExpiry:      cfg.JWT.Expiration,
		ResetTokenExpiry: cfg.JWT.ResetExpiration,
		ResetURL:         cfg.SMTP.ResetURL,
	})
	userService := service.NewUserService(userRepo, validate, logr)
	roleService := service.NewRoleService(roleRepo, logr)
	studentService := service.NewStudentService(studentRepo, validate, logr)
	instructorService := service.NewInstructorService(instructorRepo, userRepo, validate, logr)
	moduleService := service.NewModuleService(moduleRepo, instructorRepo, validate, logr)
	lessonService := service.NewLessonService(lessonRepo, validate, logr)
	questionService := service.NewQuestionService(questionRepo, validate, logr)
	countryService := service.NewCountryService(countryRepo, validate, logr)
	progressService := service.NewProgressService(progressRepo, studentRepo, lessonRepo, validate, logr)
	dashboardService := service.NewDashboardService(studentRepo, cacheService, logr, service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL})
	exportService := service.NewExportService(progressRepo, logr)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	studentHandler := handler.NewStudentHandler(studentService, dashboardService)
	instructorHandler := handler.NewInstructorHandler(instructorService)
	moduleHandler := handler.NewModuleHandler(moduleService, lessonService)
	lessonHandler := handler.NewLessonHandler(lessonService, questionService)
	questionHandler := handler.NewQuestionHandler(questionService)
	countryHandler := handler.NewCountryHandler(countryService)
	progressHandler := handler.NewProgressHandler(progressService, studentService, exportService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	metricsHandler := handler.NewMetricsHandler(metricsService)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsService))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)
	}

	authed := api.Group("")
	authed.Use(middleware.JWT(authService))

	staff := middleware.RequireRoles(models.RoleAdmin, models.RoleInstructor)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	alumnos := authed.Group("/alumnos")
	{
		alumnos.GET("/perfil/:id", studentHandler.Perfil)
		alumnos.GET("", staff, studentHandler.List)
		alumnos.GET("/stats", staff, studentHandler.Stats)
		alumnos.GET("/por-pais", staff, studentHandler.PorPais)
		alumnos.GET("/:id", staff, studentHandler.Get)
		alumnos.POST("", staff, studentHandler.Create)
		alumnos.PUT("/:id", staff, studentHandler.Update)
		alumnos.PATCH("/:id/estado", staff, studentHandler.ToggleEstado)
		alumnos.DELETE("/:id", adminOnly, studentHandler.Delete)
	}

	instructores := authed.Group("/instructores", adminOnly)
	{
		instructores.GET("", instructorHandler.List)
		instructores.GET("/:id", instructorHandler.Get)
		instructores.POST("", instructorHandler.Create)
		instructores.PUT("/:id", instructorHandler.Update)
		instructores.DELETE("/:id", instructorHandler.Delete)
	}

	modulos := authed.Group("/modulos")
	{
		modulos.GET("", moduleHandler.List)
		modulos.GET("/con-lecciones", moduleHandler.ListConLecciones)
		modulos.GET("/:id", moduleHandler.Get)
		modulos.GET("/:id/lecciones", moduleHandler.Lecciones)
		modulos.POST("", staff, moduleHandler.Create)
		modulos.PUT("/:id", staff, moduleHandler.Update)
		modulos.DELETE("/:id", staff, moduleHandler.Delete)
	}

	lecciones := authed.Group("/lecciones")
	{
		lecciones.GET("", lessonHandler.List)
		lecciones.GET("/:id", lessonHandler.Get)
		lecciones.GET("/:id/preguntas", lessonHandler.Preguntas)
		lecciones.POST("", staff, lessonHandler.Create)
		lecciones.PUT("/:id", staff, lessonHandler.Update)
		lecciones.DELETE("/:id", staff, lessonHandler.Delete)
	}

	preguntas := authed.Group("/preguntas")
	{
		preguntas.GET("", staff, questionHandler.List)
		preguntas.GET("/:id", questionHandler.Get)
		preguntas.POST("", staff, questionHandler.Create)
		preguntas.PUT("/:id", staff, questionHandler.Update)
		preguntas.DELETE("/:id", staff, questionHandler.Delete)
	}

	progreso := authed.Group("/progreso-alumnos")
	{
		progreso.GET("", staff, progressHandler.List)
		progreso.GET("/export", staff, progressHandler.Export)
		progreso.GET("/alumno/:alumnoId", progressHandler.ListByAlumno)
		progreso.POST("", progressHandler.Start)
		progreso.PUT("/:id", progressHandler.Update)
	}

	// Reference data reads stay public so the registration form can load
	// countries before a session exists.
	api.GET("/continentes", countryHandler.ListContinentes)
	api.GET("/paises", countryHandler.ListPaises)

	continentes := authed.Group("/continentes", adminOnly)
	{
		continentes.POST("", countryHandler.CreateContinente)
		continentes.POST("/batch", countryHandler.BatchContinentes)
		continentes.DELETE("/:id", countryHandler.DeleteContinente)
	}

	paises := authed.Group("/paises", adminOnly)
	{
		paises.POST("", countryHandler.CreatePais)
		paises.POST("/batch", countryHandler.BatchPaises)
		paises.DELETE("/:id", countryHandler.DeletePais)
	}

	usuarios := authed.Group("/usuarios", adminOnly)
	{
		usuarios.GET("", userHandler.List)
		usuarios.GET("/:id", userHandler.Get)
		usuarios.PUT("/:id", userHandler.Update)
		usuarios.DELETE("/:id", userHandler.Deactivate)
		usuarios.PATCH("/:id/estado", userHandler.ToggleEstado)
	}

	authed.GET("/roles", adminOnly, roleHandler.List)
	authed.GET("/dashboard/admin", adminOnly, dashboardHandler.Admin)
	authed.GET("/metrics/snapshot", adminOnly, metricsHandler.Snapshot)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
