package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"github.com/meukanban/kanban-api/internal/adapter/database"
	apphttp "github.com/meukanban/kanban-api/internal/adapter/http"
	"github.com/meukanban/kanban-api/internal/app/auth"
	"github.com/meukanban/kanban-api/internal/app/task"
	"github.com/meukanban/kanban-api/internal/app/workspace"
	"github.com/meukanban/kanban-api/internal/infra/metrics"
	"github.com/meukanban/kanban-api/internal/infra/middleware"
	"github.com/meukanban/kanban-api/pkg/cache"
	"github.com/meukanban/kanban-api/pkg/config"
	"github.com/meukanban/kanban-api/pkg/security"
)

// App reúne todas as dependências da aplicação
type App struct {
	Config           *config.Config
	Logger           *zap.Logger
	DB               *database.Database
	Cache            cache.Cache
	Middleware       *middleware.Middleware
	UserHandler      *apphttp.UserHandler
	WorkspaceHandler *apphttp.WorkspaceHandler
	TaskHandler      *apphttp.TaskHandler
	HealthChecker    *apphttp.HealthChecker
	APIMetrics       *metrics.APIMetrics
}

// NewApp cria uma nova instância da aplicação com todas as dependências injetadas
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbConfig := database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        gormLogLevel(cfg.Database.LogLevel),
		SlowThreshold:   cfg.Database.SlowThreshold,
		MigrationDir:    cfg.Database.MigrationDir,
		SkipMigrations:  cfg.Database.SkipMigrations,
	}

	db, err := database.NewDatabase(ctx, dbConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("erro ao inicializar banco de dados: %w", err)
	}

	apiMetrics := metrics.NewAPIMetrics()

	appCache := newCache(cfg, apiMetrics, logger)

	userRepo := database.NewUserRepository(db.DB(), logger)
	taskRepo := database.NewTaskRepository(db.DB(), logger)

	keyManager, err := security.NewKeyManager(logger)
	if err != nil {
		return nil, err
	}

	authService := auth.NewService(keyManager, userRepo, logger, cfg.Auth.TokenExpiration, cfg.Auth.PasswordMinLen)

	workspaceService := workspace.NewService(userRepo, taskRepo, appCache, logger, cfg.Features.CascadeDelete)
	workspaceService.SetMetrics(apiMetrics)

	taskService := task.NewService(taskRepo, logger)
	taskService.SetMetrics(apiMetrics)

	metricsMiddleware := middleware.NewMetricsMiddleware(apiMetrics, logger)
	middlewares := middleware.NewMiddleware(cfg, logger, authService, apiMetrics)
	middlewares.SetMetricsMiddleware(metricsMiddleware)

	workspaceHandler := apphttp.NewWorkspaceHandler(workspaceService, logger)
	workspaceHandler.SetMetrics(apiMetrics)

	taskHandler := apphttp.NewTaskHandler(taskService, logger)
	taskHandler.SetMetrics(apiMetrics)

	userHandler := apphttp.NewUserHandler(authService, logger)

	healthChecker := apphttp.NewHealthChecker(db, appCache, logger)

	return &App{
		Config:           cfg,
		Logger:           logger,
		DB:               db,
		Cache:            appCache,
		Middleware:       middlewares,
		UserHandler:      userHandler,
		WorkspaceHandler: workspaceHandler,
		TaskHandler:      taskHandler,
		HealthChecker:    healthChecker,
		APIMetrics:       apiMetrics,
	}, nil
}

// newCache seleciona a implementação de cache conforme a configuração.
// Falha na conexão com o Redis degrada para o cache em memória.
func newCache(cfg *config.Config, apiMetrics *metrics.APIMetrics, logger *zap.Logger) cache.Cache {
	if !cfg.Cache.Enabled {
		logger.Info("Cache desabilitado, usando implementação no-op")
		return cache.NewNoOpCache()
	}

	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(
			cfg.Cache.Redis.Address,
			cfg.Cache.Redis.Password,
			cfg.Cache.Redis.DB,
			logger,
		)
		if err != nil {
			logger.Error("Erro ao conectar ao Redis, usando cache em memória",
				zap.Error(err),
				zap.String("redis.address", cfg.Cache.Redis.Address))
		} else {
			logger.Info("Cache Redis inicializado",
				zap.String("redis.address", cfg.Cache.Redis.Address))
			return redisCache
		}
	}

	return cache.NewMemoryCache(cfg.Cache.TTL, 2*cfg.Cache.TTL, apiMetrics, logger)
}

// gormLogLevel converte o nível de log configurado para o nível do gorm
func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// RegisterRoutes registra todas as rotas no router
func (a *App) RegisterRoutes(router *gin.Engine) {
	router.Use(a.Middleware.Recovery())
	router.Use(a.Middleware.SecurityHeaders())
	router.Use(a.Middleware.CORS())
	router.Use(a.Middleware.IgnoreFavicon())
	router.Use(a.Middleware.Logger())

	if a.Config.Tracing.Enabled {
		router.Use(a.Middleware.Tracing())
	}

	if a.Config.Metrics.Enabled {
		router.Use(a.Middleware.Metrics())
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		a.Logger.Info("Endpoint de métricas Prometheus registrado em /metrics")
	}

	// Rotas públicas
	if a.Config.Features.HealthCheck {
		router.GET("/health", a.HealthChecker.LivenessCheck)
		router.GET("/health/liveness", a.HealthChecker.LivenessCheck)
		router.GET("/health/readiness", a.HealthChecker.ReadinessCheck)
		router.GET("/health/detailed", a.HealthChecker.DetailedHealth)
	}

	authGroup := router.Group("/auth")
	authGroup.Use(a.Middleware.AuthRateLimit())
	{
		authGroup.POST("/register", a.UserHandler.Register)
		authGroup.POST("/login", a.UserHandler.Login)
	}

	// Rotas autenticadas
	api := router.Group("/api")
	api.Use(a.Middleware.Authenticate)
	api.Use(a.Middleware.APIRateLimit())
	{
		userGroup := api.Group("/user")
		{
			userGroup.GET("/workspace", a.WorkspaceHandler.List)
			userGroup.POST("/workspace", a.WorkspaceHandler.Create)
			userGroup.PATCH("/workspace", a.WorkspaceHandler.SetActive)
			userGroup.DELETE("/workspace", a.WorkspaceHandler.Delete)
		}

		api.GET("/tasks", a.TaskHandler.List)
		api.POST("/tasks", a.TaskHandler.Create)
		api.PUT("/tasks/:id", a.TaskHandler.Update)
		api.DELETE("/tasks/:id", a.TaskHandler.Delete)
	}
}
