package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/config"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/controller"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/repository"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/internal/service"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/cache"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/database"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/logger"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/monitoring"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/security"
	"github.com/vigoferrel/puntaje-inteligente-sistema-sub013/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	configCallbacks []func(*config.Config)
	shutdownHooks   []func(context.Context) error
}

type repositories struct {
	user       *repository.UserRepository
	paes       *repository.PAESRepository
	node       *repository.NodeRepository
	progress   *repository.ProgressRepository
	plan       *repository.PlanRepository
	diagnostic *repository.DiagnosticRepository
}

type services struct {
	auth       *service.AuthService
	catalog    *service.CatalogService
	analytics  *service.AnalyticsService
	plan       *service.PlanService
	progress   *service.ProgressService
	diagnostic *service.DiagnosticService
	ai         *service.AIService
}

type controllers struct {
	auth       *controller.AuthController
	catalog    *controller.CatalogController
	dashboard  *controller.DashboardController
	plan       *controller.PlanController
	progress   *controller.ProgressController
	diagnostic *controller.DiagnosticController
	health     *controller.HealthController
	admin      *controller.AdminController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig propaga una configuración recargada a los componentes suscritos.
func (a *App) ApplyConfig(cfg *config.Config) {
	a.Config = cfg
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

// RegisterShutdownHook encola una limpieza que se ejecuta después de drenar
// el servidor HTTP.
func (a *App) RegisterShutdownHook(hook func(context.Context) error) {
	a.shutdownHooks = append(a.shutdownHooks, hook)
}

func (a *App) runShutdownHooks(ctx context.Context) {
	for _, hook := range a.shutdownHooks {
		if err := hook(ctx); err != nil {
			logger.Log.Error("Shutdown hook failed", zap.Error(err))
		}
	}
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		paes:       repository.NewPAESRepository(db),
		node:       repository.NewNodeRepository(db),
		progress:   repository.NewProgressRepository(db),
		plan:       repository.NewPlanRepository(db),
		diagnostic: repository.NewDiagnosticRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, store cache.Store) *services {
	s := &services{}

	s.auth = service.NewAuthService(repos.user, cfg)
	s.catalog = service.NewCatalogService(repos.paes, repos.node)
	s.analytics = service.NewAnalyticsService(repos.paes, repos.node, repos.progress, store)
	s.plan = service.NewPlanService(repos.plan, repos.node, repos.paes, store)
	s.progress = service.NewProgressService(repos.progress, repos.node, s.analytics)
	s.ai = service.NewAIService(cfg.AI)

	// El catálogo de habilidades es estable; se carga una vez para armar la
	// cadena de proveedores de preguntas.
	skills, err := repos.paes.ListSkills(context.Background())
	if err != nil {
		logger.Log.Warn("failed to preload skill catalog", zap.Error(err))
	}
	chain := service.NewQuestionChain(
		service.NewAIQuestionProvider(s.ai, skills),
		service.DemoQuestionProvider{},
		service.FallbackQuestionProvider{},
	)
	s.diagnostic = service.NewDiagnosticService(repos.diagnostic, repos.paes, chain)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, db *gorm.DB, store cache.Store) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		catalog:    controller.NewCatalogController(s.catalog),
		dashboard:  controller.NewDashboardController(s.analytics),
		plan:       controller.NewPlanController(s.plan, s.analytics),
		progress:   controller.NewProgressController(s.progress),
		diagnostic: controller.NewDiagnosticController(s.diagnostic, s.catalog),
		health:     controller.NewHealthController(db, store),
		admin:      controller.NewAdminController(repos.paes, repos.node),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests == 0 {
		maxRequests = 100000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window == 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	store := cache.NewRedisStore(rdb)

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, store)
	app.services = services
	controllers := app.initControllers(services, repos, db, store)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("paes-intelligence", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		// El tracer debe vivir mientras el servidor atiende; se apaga junto
		// con el resto en Run.
		app.RegisterShutdownHook(tp.Shutdown)
	}

	app.registerRoutes(router, controllers, repos, cfg)

	app.RegisterConfigCallback(func(newCfg *config.Config) {
		services.ai.UpdateConfig(newCfg.AI)
		logger.Log.Info("AI provider config applied",
			zap.String("model", newCfg.AI.Model),
			zap.String("base_url", newCfg.AI.BaseURL),
		)
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	a.runShutdownHooks(ctx)

	log.Println("Server exiting")
}
