package app

import (
	"context"
	"log"
	"math_edu_backend/internal/animation"
	"math_edu_backend/internal/config"
	"math_edu_backend/internal/controller"
	"math_edu_backend/internal/repository"
	"math_edu_backend/internal/service"
	"math_edu_backend/internal/util"
	"math_edu_backend/pkg/configwatcher"
	"math_edu_backend/pkg/database"
	"math_edu_backend/pkg/logger"
	"math_edu_backend/pkg/monitoring"
	"math_edu_backend/pkg/security"
	"math_edu_backend/pkg/tracing"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ConfigDir 配置文件所在目录，热更新时从这里重新加载
const ConfigDir = "configs"

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	rateLimiter     *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
	mu              sync.Mutex
	cancel          context.CancelFunc
	stop            chan struct{}
}

type repositories struct {
	user       *repository.UserRepository
	profile    *repository.ProfileRepository
	lesson     *repository.LessonRepository
	progress   *repository.ProgressRepository
	homework   *repository.HomeworkRepository
	submission *repository.SubmissionRepository
	grade      *repository.GradeRepository
	attendance *repository.AttendanceRepository
}

type services struct {
	hub        *service.EventHub
	sessions   *service.SessionStore
	auth       *service.AuthService
	storage    *service.StorageService
	lesson     *service.LessonService
	progress   *service.ProgressService
	homework   *service.HomeworkService
	attendance *service.AttendanceService
	student    *service.StudentService
	analytics  *service.AnalyticsService
}

type controllers struct {
	auth       *controller.AuthController
	lesson     *controller.LessonController
	dashboard  *controller.DashboardController
	homework   *controller.HomeworkController
	student    *controller.StudentController
	attendance *controller.AttendanceController
	analytics  *controller.AnalyticsController
	live       *controller.LiveController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.configCallbacks = append(a.configCallbacks, callback)
}

// applyConfig 热更新只替换运行期可调整的参数，数据库/Redis 连接不会重建
func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	callbacks := append([]func(*config.Config){}, a.configCallbacks...)
	a.mu.Unlock()
	for _, cb := range callbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		profile:    repository.NewProfileRepository(db),
		lesson:     repository.NewLessonRepository(db),
		progress:   repository.NewProgressRepository(db),
		homework:   repository.NewHomeworkRepository(db),
		submission: repository.NewSubmissionRepository(db),
		grade:      repository.NewGradeRepository(db),
		attendance: repository.NewAttendanceRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.hub = service.NewEventHub(rdb)
	s.sessions = service.NewSessionStore(rdb)
	s.storage = service.NewStorageService(&cfg.Storage)
	s.auth = service.NewAuthService(repos.user, repos.profile, s.sessions, cfg)
	s.lesson = service.NewLessonService(repos.lesson, repos.progress, repos.homework, animation.NewRegistry(), rdb, &cfg.Lessons)
	s.progress = service.NewProgressService(repos.progress, repos.profile, s.lesson, s.hub)
	s.homework = service.NewHomeworkService(repos.homework, repos.submission, repos.grade, repos.profile, s.lesson, s.storage, s.hub, &cfg.Storage)
	s.attendance = service.NewAttendanceService(repos.attendance, repos.profile, s.hub)
	s.student = service.NewStudentService(repos.profile, repos.user, repos.progress, repos.submission, repos.attendance, s.auth)
	s.analytics = service.NewAnalyticsService(repos.profile, repos.lesson, repos.homework, repos.progress, repos.submission, repos.grade, repos.attendance)

	return s
}

func (a *App) initControllers(s *services) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		lesson:     controller.NewLessonController(s.lesson, s.progress),
		dashboard:  controller.NewDashboardController(s.progress),
		homework:   controller.NewHomeworkController(s.homework),
		student:    controller.NewStudentController(s.student),
		attendance: controller.NewAttendanceController(s.attendance),
		analytics:  controller.NewAnalyticsController(s.analytics),
		live:       controller.NewLiveController(s.hub),
		health:     controller.NewHealthController(a.DB, a.Redis),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(a.rateLimiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(ctx context.Context) {
	go a.services.hub.Run(ctx)
	a.rateLimiter.StartCleanup(a.stop)
}

// New 用已建立的数据库和 Redis 连接组装应用，rdb 可以为 nil
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	util.RegisterValidators()
	monitoring.Init()

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		Config:      cfg,
		DB:          db,
		Redis:       rdb,
		rateLimiter: security.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()),
		cancel:      cancel,
		stop:        make(chan struct{}),
	}

	repos := app.initRepositories(db)
	app.services = app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(app.services)

	router := gin.New()
	router.Use(logger.GinLogger(), gin.Recovery())
	app.Router = router
	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	if cfg.Storage.Type == util.StorageLocal || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.RegisterConfigCallback(func(c *config.Config) {
		app.rateLimiter.Update(c.RateLimit.MaxRequests, c.RateLimit.Window())
	})
	app.RegisterConfigCallback(func(c *config.Config) {
		app.services.lesson.SetCacheTTL(c.Lessons.CacheTTL())
	})

	app.startBackgroundTasks(ctx)
	return app
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	// release 模式默认不自动迁移，需要 -migrate 显式开启
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}
	if cfg.SeedData {
		if err := database.Seed(db, &cfg.Seed); err != nil {
			logger.Log.Fatal("Failed to seed database", zap.Error(err))
		}
	}
	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// Redis 不可用时降级：不缓存课程列表、登出不吊销令牌、实时事件只在本进程内广播
		logger.Log.Warn("Redis unavailable, running without cache", zap.Error(err))
		rdb = nil
	}

	var tp *sdktrace.TracerProvider
	if cfg.Tracing.Enabled {
		tp, err = tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app := New(cfg, db, rdb)
	app.tracer = tp
	return app
}

// Shutdown 停止后台任务并断开所有实时连接
func (a *App) Shutdown(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
	if a.stop != nil {
		select {
		case <-a.stop:
		default:
			close(a.stop)
		}
	}
	if a.services != nil {
		a.services.hub.Stop()
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	watchCtx, stopWatch := context.WithCancel(context.Background())
	defer stopWatch()
	go func() {
		if err := configwatcher.Watch(watchCtx, ConfigDir, a.applyConfig); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("listen failed", zap.Error(err))
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// 先断开 WebSocket，否则 Shutdown 会一直等待被劫持的连接
	a.Shutdown(ctx)

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	logger.Log.Info("Server exiting")
}
