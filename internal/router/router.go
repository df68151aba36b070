package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"option-set-api/internal/handler"
	"option-set-api/internal/metrics"
	"option-set-api/internal/middleware"
	"option-set-api/internal/repository"
	"option-set-api/internal/service"
)

// Config holds all dependencies needed to set up the router
type Config struct {
	DB             *gorm.DB
	Redis          *redis.Client
	Logger         *zap.Logger
	JWTSecret      string
	TokenValidator middleware.TokenValidator
	BasePath       string
	AllowedOrigins []string
	Metrics        *metrics.Metrics
	Exporter       service.ArchiveExporter
	CacheTTL       time.Duration
	Hub            *service.EventHub
}

// Setup creates the gin engine with all routes and middleware wired
func Setup(cfg Config) *gin.Engine {
	r := gin.New()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}

	hub := cfg.Hub
	if hub == nil {
		hub = service.NewEventHub(cfg.Logger)
	}

	// Wire repositories and services
	setRepo := repository.NewOptionSetRepository(cfg.DB)
	archiveRepo := repository.NewArchiveRepository(cfg.DB)
	txRunner := repository.NewTxRunner(cfg.DB)
	registry := service.NewFieldBindingRegistry(txRunner, cfg.Logger)
	cache := service.NewSetCache(cfg.Redis, cfg.CacheTTL, cfg.Logger)

	optionSetService := service.NewOptionSetService(
		setRepo,
		archiveRepo,
		txRunner,
		registry,
		cache,
		cfg.Exporter,
		hub,
		cfg.Metrics,
		cfg.Logger,
	)

	optionSetHandler := handler.NewOptionSetHandler(optionSetService)
	archiveHandler := handler.NewArchiveHandler(optionSetService)
	healthHandler := handler.NewHealthHandler(cfg.DB, cfg.Redis, hub)

	// Token validation through auth-service when configured, local JWT
	// parsing otherwise
	var auth gin.HandlerFunc
	if cfg.TokenValidator != nil {
		auth = middleware.AuthWithValidator(cfg.TokenValidator)
	} else {
		auth = middleware.Auth(cfg.JWTSecret)
	}

	// Health and metrics endpoints (no auth)
	r.GET("/health", healthHandler.Health)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group(cfg.BasePath)
	{
		api.GET("/health", healthHandler.Health)
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
		api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

		if cfg.TokenValidator != nil {
			wsHandler := handler.NewWSHandler(cfg.Logger, cfg.TokenValidator, hub)
			api.GET("/ws/events", wsHandler.HandleEventFeed)
		}

		// Reads stay open to any authenticated caller; every mutation needs
		// the management capability
		manage := middleware.RequireManage()

		sets := api.Group("/option-sets")
		sets.Use(auth)
		{
			sets.GET("", optionSetHandler.ListSets)
			sets.GET("/:setId", optionSetHandler.GetSet)
			sets.GET("/:setId/archived-options", archiveHandler.ListArchivedOptions)

			sets.POST("", manage, optionSetHandler.CreateSet)
			sets.PATCH("/:setId", manage, optionSetHandler.UpdateSet)
			sets.PUT("/:setId/field", manage, optionSetHandler.BindField)
			sets.POST("/:setId/options", manage, optionSetHandler.AddOption)
			sets.POST("/:setId/options/bulk", manage, optionSetHandler.BulkAddOptions)
			sets.PATCH("/:setId/options/:optionId", manage, optionSetHandler.UpdateOption)
			sets.DELETE("/:setId", manage, archiveHandler.ArchiveSet)
			sets.DELETE("/:setId/options/:optionId", manage, optionSetHandler.ArchiveOption)
		}

		archives := api.Group("/archives")
		archives.Use(auth)
		{
			archives.GET("", archiveHandler.ListArchives)
			archives.GET("/:archiveId", archiveHandler.GetArchive)
			archives.POST("/:archiveId/restore", manage, archiveHandler.RestoreArchivedSet)
			archives.DELETE("/:archiveId", manage, archiveHandler.PermanentlyDelete)
		}
	}

	return r
}
