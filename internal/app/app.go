package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quiz_scoring_backend/internal/config"
	"quiz_scoring_backend/internal/controller"
	"quiz_scoring_backend/internal/repository"
	"quiz_scoring_backend/internal/scoring"
	"quiz_scoring_backend/internal/service"
	"quiz_scoring_backend/internal/util"
	"quiz_scoring_backend/pkg/configwatcher"
	"quiz_scoring_backend/pkg/database"
	"quiz_scoring_backend/pkg/logger"
	"quiz_scoring_backend/pkg/monitoring"
	"quiz_scoring_backend/pkg/security"
	"quiz_scoring_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client

	limiter         *security.Limiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	catalog service.QuestionCatalog
	records *repository.AnswerRecordRepository
}

type services struct {
	quiz *service.QuizService
}

type controllers struct {
	quiz   *controller.QuizController
	health *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// NewCatalog 按 catalog.source 组装题库：file 直接读 YAML，db 走数据库并在启用 Redis 时加缓存
func NewCatalog(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (service.QuestionCatalog, error) {
	if cfg.Catalog.Source == util.CatalogSourceFile {
		repo, err := repository.NewFileQuestionRepository(cfg.Catalog.File)
		if err != nil {
			return nil, err
		}
		logger.Log.Info("Question bank loaded", zap.String("file", cfg.Catalog.File), zap.Int("questions", repo.Len()))
		return repo, nil
	}

	source := repository.NewQuestionRepository(db)
	if rdb == nil {
		return source, nil
	}
	return repository.NewCachedQuestionRepository(source, rdb, cfg.Catalog.CacheTTL()), nil
}

func (a *App) initRepositories(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*repositories, error) {
	catalog, err := NewCatalog(cfg, db, rdb)
	if err != nil {
		return nil, err
	}
	return &repositories{
		catalog: catalog,
		records: repository.NewAnswerRecordRepository(db),
	}, nil
}

func (a *App) initServices(repos *repositories, cfg *config.Config) (*services, error) {
	s := &services{}

	archive, err := service.NewArchiveService(&cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init archive storage: %w", err)
	}

	var archiver service.Archiver
	if archive != nil {
		archiver = archive
	}

	s.quiz = service.NewQuizService(
		repos.catalog,
		repos.records,
		repos.records,
		archiver,
		scoring.NewEngine(cfg.Scoring.Workers),
	)
	return s, nil
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		quiz:   controller.NewQuizController(s.quiz),
		health: controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) (*App, error) {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	gin.SetMode(cfg.Server.Mode)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	if cfg.ForceMigrate || cfg.Server.Mode != gin.ReleaseMode {
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	rdb, err := database.InitRedis(context.Background(), &cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		limiter: security.NewLimiter(cfg.RateLimit),
	}

	repos, err := app.initRepositories(cfg, db, rdb)
	if err != nil {
		return nil, fmt.Errorf("init question catalog: %w", err)
	}
	svcs, err := app.initServices(repos, cfg)
	if err != nil {
		return nil, err
	}
	ctrls := app.initControllers(svcs)

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			return nil, fmt.Errorf("init tracing: %w", err)
		}
		app.tracer = tp
	}

	router := gin.New()
	router.Use(gin.Recovery())
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, ctrls)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		logger.SetLevel(newCfg)
		logger.Log.Info("Log level updated", zap.String("level", logger.Level().String()))
	})

	return app, nil
}

func (a *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go a.limiter.Cleanup(ctx)

	if a.Config.File != "" {
		err := configwatcher.WatchConfig(ctx, a.Config.File, func(newCfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(newCfg)
			}
		})
		if err != nil {
			logger.Log.Warn("Config watcher disabled", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close(shutdownCtx)
	logger.Log.Info("Server exiting")
}

// Close 释放追踪、Redis、数据库连接
func (a *App) Close(ctx context.Context) {
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
	logger.Log.Sync()
}
