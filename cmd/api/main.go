package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/uofr/moodle-block-export-quiz/internal/config"
	"github.com/uofr/moodle-block-export-quiz/internal/domain/repository"
	"github.com/uofr/moodle-block-export-quiz/internal/format"
	"github.com/uofr/moodle-block-export-quiz/internal/handler"
	"github.com/uofr/moodle-block-export-quiz/internal/middleware"
	pgRepo "github.com/uofr/moodle-block-export-quiz/internal/repository/postgres"
	redisRepo "github.com/uofr/moodle-block-export-quiz/internal/repository/redis"
	"github.com/uofr/moodle-block-export-quiz/internal/service"
	"github.com/uofr/moodle-block-export-quiz/pkg/auth"
	"github.com/uofr/moodle-block-export-quiz/pkg/database"
)

func main() {
	// Загружаем конфигурацию
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	log.Printf("Загрузка конфигурации из %s", configPath)

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	// Подключаемся к базе данных хоста
	db, err := database.NewHostDB(cfg.Database)
	if err != nil {
		log.Printf("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	// Миграции только для dev-схемы
	if cfg.Database.Migrate {
		if cfg.Database.Driver != config.DriverPostgres {
			log.Printf("Migrations are only supported for postgres, skipping (driver: %s)", cfg.Database.Driver)
		} else if err := database.MigrateDB(db, cfg.Database.MigrationsPath); err != nil {
			log.Printf("Failed to migrate database: %v", err)
			os.Exit(1)
		}
	}

	// Redis необязателен: без него нет лимита скачиваний и кеша блока
	redisClient, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	if redisClient != nil {
		log.Println("Successfully connected to Redis")
		defer redisClient.Close()
	}

	// Инициализируем репозитории
	courseRepo := pgRepo.NewCourseRepo(db)
	questionRepo := pgRepo.NewQuestionRepo(db)
	var slotRepo repository.SlotRepository = pgRepo.NewSlotRepo(db)

	blockSlotRepo := slotRepo
	if redisClient != nil && cfg.Redis.BlockCacheTTL > 0 {
		cached, err := redisRepo.NewSlotCache(slotRepo, redisClient, cfg.Redis.BlockCacheTTL)
		if err != nil {
			log.Printf("Failed to initialize SlotCache: %v", err)
			os.Exit(1)
		}
		blockSlotRepo = cached
	}

	// Реестр форматов
	formats, err := format.DefaultRegistry().Only(cfg.Export.Formats)
	if err != nil {
		log.Printf("Invalid export.formats: %v", err)
		os.Exit(1)
	}
	log.Printf("Export formats: %v", formats.Names())

	// Инициализируем сервисы
	exportService := service.NewExportService(courseRepo, slotRepo, questionRepo, formats)
	blockService := service.NewBlockService(courseRepo, blockSlotRepo, formats, cfg.Export.Path)

	sessionService, err := auth.NewSessionService(cfg.Session.Secret, cfg.Session.Issuer, cfg.Session.Audience)
	if err != nil {
		log.Printf("Failed to initialize session service: %v", err)
		os.Exit(1)
	}

	// Инициализируем обработчики и middleware
	blockHandler := handler.NewBlockHandler(blockService)
	exportHandler := handler.NewExportHandler(exportService)
	sessionMiddleware := middleware.NewSessionMiddleware(sessionService, cfg.Session.CookieName)
	rateLimiter := middleware.NewRateLimiter(redisClient)

	isProduction := gin.Mode() == gin.ReleaseMode
	router := gin.Default()

	// В production не доверяем прокси-заголовкам
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			log.Printf("Warning: failed to set trusted proxies: %v", err)
		}
	}

	router.Use(middleware.RequestID())

	if len(cfg.CORS.AllowOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/healthz", func(c *gin.Context) {
		sqlDB, err := database.GetSQLDB(db)
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Блок на странице курса
	api := router.Group("/api")
	{
		courseGroup := api.Group("/courses/:courseid")
		courseGroup.Use(middleware.ExtractUintParam("courseid", "courseid"), sessionMiddleware.RequireSession())
		{
			courseGroup.GET("/export-quiz", blockHandler.GetBlock)
			courseGroup.POST("/export-quiz", blockHandler.SubmitForm)
		}
	}

	// Скачивание файла
	router.GET(cfg.Export.Path,
		sessionMiddleware.RequireSession(),
		sessionMiddleware.RequireSesskey(),
		rateLimiter.Limit(middleware.ExportRateLimitConfig(cfg.Export.RateLimit, cfg.Export.RateWindow)),
		exportHandler.Download,
	)

	// Настраиваем HTTP сервер с тайм-аутами
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}

	log.Println("Server exited properly")
}
