package main

import (
	"net/http"
	"os"

	"trackline/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"trackline/internal/auth"
	"trackline/internal/cache"
	"trackline/internal/config"
	"trackline/internal/db"
	"trackline/internal/handler"
	"trackline/internal/repository"
	"trackline/internal/router"
	"trackline/internal/service"
)

// @title Trackline API
// @version 1.0
// @description Multi-tenant project tracking API: projects, runs, features, to-dos and comments behind membership-based authorization.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	logger := newLogger(cfg.LogLevel)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database init")
	}

	if err := db.Migrate(gormDB); err != nil {
		logger.Fatal().Err(err).Msg("auto-migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	runRepo := repository.NewRunRepository(gormDB)
	featureRepo := repository.NewFeatureRepository(gormDB)
	todoRepo := repository.NewToDoRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore)
	userService := service.NewUserService(userRepo, cacheClient, tokenStore, logger)
	projectService := service.NewProjectService(projectRepo, runRepo, featureRepo, todoRepo, commentRepo, userRepo)
	runService := service.NewRunService(runRepo, projectRepo, featureRepo)
	featureService := service.NewFeatureService(featureRepo, projectRepo, runRepo, todoRepo, commentRepo)
	todoService := service.NewToDoService(todoRepo, featureRepo, commentRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, todoRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	runHandler := handler.NewRunHandler(runService)
	featureHandler := handler.NewFeatureHandler(featureService)
	todoHandler := handler.NewToDoHandler(todoService)
	commentHandler := handler.NewCommentHandler(commentService)

	// Register routes
	router.Register(
		e,
		cfg,
		authService,
		userService,
		authHandler,
		userHandler,
		projectHandler,
		runHandler,
		featureHandler,
		todoHandler,
		commentHandler,
	)

	addr := ":" + cfg.ServerPort
	logger.Info().Str("addr", addr).Msg("server starting")
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server start")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}
