package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ojtrack/ojtrack-api/internal/handler"
	"github.com/ojtrack/ojtrack-api/internal/middleware"
	"github.com/ojtrack/ojtrack-api/internal/models"
	"github.com/ojtrack/ojtrack-api/internal/repository"
	"github.com/ojtrack/ojtrack-api/internal/service"
	"github.com/ojtrack/ojtrack-api/pkg/config"
	"github.com/ojtrack/ojtrack-api/pkg/logger"
	corsmiddleware "github.com/ojtrack/ojtrack-api/pkg/middleware/cors"
	reqidmiddleware "github.com/ojtrack/ojtrack-api/pkg/middleware/requestid"
	"github.com/ojtrack/ojtrack-api/pkg/store"
)

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

	blob, err := newBlob(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init store backend", "backend", cfg.Store.Backend, "error", err)
	}
	st := store.New(blob, logr)

	var metricsSvc *service.MetricsService
	if cfg.Metrics.Enabled {
		metricsSvc = service.NewMetricsService()
		st.SetObserver(metricsSvc)
	}

	validate := validator.New()

	userRepo := repository.NewUserRepository(st)
	logbookRepo := repository.NewLogbookRepository(st)
	documentRepo := repository.NewDocumentRepository(st)
	announcementRepo := repository.NewAnnouncementRepository(st)
	evaluationRepo := repository.NewEvaluationRepository(st)
	contactRepo := repository.NewContactRepository(st)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		TokenSecret: cfg.JWT.Secret,
		TokenExpiry: cfg.JWT.Expiration,
		Issuer:      cfg.JWT.Issuer,
	})
	userSvc := service.NewUserService(userRepo, validate, logr)
	logbookSvc := service.NewLogbookService(logbookRepo, validate, logr)
	documentSvc := service.NewDocumentService(documentRepo, validate, logr)
	announcementSvc := service.NewAnnouncementService(announcementRepo, userRepo, validate, logr)
	evaluationSvc := service.NewEvaluationService(evaluationRepo, validate, logr)
	contactSvc := service.NewContactService(contactRepo, validate, logr)
	statsSvc := service.NewStatsService(service.StatsServiceParams{
		Users:         userRepo,
		Logbook:       logbookRepo,
		Documents:     documentRepo,
		Evaluations:   evaluationRepo,
		RequiredHours: cfg.Reports.RequiredHours,
		Logger:        logr,
	})
	exportSvc := service.NewExportService(statsSvc, userRepo, logr)

	if cfg.Seed.Enabled {
		seedSvc := service.NewSeedService(service.SeedServiceParams{
			Users:           userRepo,
			Logbook:         logbookRepo,
			Documents:       documentRepo,
			Announcements:   announcementRepo,
			Evaluations:     evaluationRepo,
			DefaultPassword: cfg.Seed.DefaultPassword,
			Logger:          logr,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := seedSvc.Run(ctx); err != nil {
			logr.Warn("seeding failed", zap.Error(err))
		}
		cancel()
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metricsSvc != nil {
		r.Use(middleware.Metrics(metricsSvc))
	}

	metricsHandler := handler.NewMetricsHandler(metricsSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	if metricsSvc != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	registerRoutes(r.Group(cfg.APIPrefix), cfg, routeDeps{
		auth:          handler.NewAuthHandler(authSvc, userSvc),
		users:         handler.NewUserHandler(userSvc),
		logbook:       handler.NewLogbookHandler(logbookSvc),
		documents:     handler.NewDocumentHandler(documentSvc),
		announcements: handler.NewAnnouncementHandler(announcementSvc),
		evaluations:   handler.NewEvaluationHandler(evaluationSvc),
		contact:       handler.NewContactHandler(contactSvc),
		stats:         handler.NewStatsHandler(statsSvc),
		reports:       handler.NewReportHandler(exportSvc),
		authSvc:       authSvc,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

type routeDeps struct {
	auth          *handler.AuthHandler
	users         *handler.UserHandler
	logbook       *handler.LogbookHandler
	documents     *handler.DocumentHandler
	announcements *handler.AnnouncementHandler
	evaluations   *handler.EvaluationHandler
	contact       *handler.ContactHandler
	stats         *handler.StatsHandler
	reports       *handler.ReportHandler
	authSvc       *service.AuthService
}

func registerRoutes(api *gin.RouterGroup, cfg *config.Config, deps routeDeps) {
	api.POST("/auth/login", deps.auth.Login)
	api.POST("/auth/register", deps.auth.Register)
	api.POST("/contact", deps.contact.Submit)

	secured := api.Group("")
	secured.Use(middleware.JWT(deps.authSvc))

	secured.GET("/auth/me", deps.auth.Me)

	staff := []models.UserRole{models.RoleCoordinator, models.RoleSupervisor, models.RoleAdmin}
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	staffOnly := middleware.RequireRoles(staff...)

	users := secured.Group("/users")
	{
		users.GET("", staffOnly, deps.users.List)
		users.POST("", adminOnly, deps.users.Create)
		users.GET("/assigned", middleware.RequireRoles(models.RoleSupervisor), deps.users.AssignedStudents)
		users.GET("/:id", middleware.RequireRolesOrSelf(staff...), deps.users.Get)
		users.PATCH("/:id", middleware.RequireRolesOrSelf(models.RoleAdmin), deps.users.Update)
		users.POST("/:id/approve", middleware.RequireRoles(models.RoleCoordinator, models.RoleAdmin), deps.users.Approve)
		users.POST("/:id/suspend", middleware.RequireRoles(models.RoleCoordinator, models.RoleAdmin), deps.users.Suspend)
		users.DELETE("/:id", adminOnly, deps.users.Delete)
	}

	logbook := secured.Group("/logbook")
	{
		logbook.POST("", middleware.RequireRoles(models.RoleStudent), deps.logbook.Create)
		logbook.GET("", deps.logbook.ListMine)
		logbook.GET("/review", staffOnly, deps.logbook.ListForReview)
		logbook.POST("/bulk-approve", staffOnly, deps.logbook.BulkApprove)
		logbook.GET("/user/:id", staffOnly, deps.logbook.ListByUser)
		logbook.GET("/:id", deps.logbook.Get)
		logbook.PATCH("/:id", deps.logbook.Update)
		logbook.POST("/:id/review", staffOnly, deps.logbook.Review)
		logbook.DELETE("/:id", deps.logbook.Delete)
	}

	documents := secured.Group("/documents")
	{
		documents.POST("", deps.documents.Upload)
		documents.GET("", deps.documents.ListMine)
		documents.GET("/review", staffOnly, deps.documents.ListForReview)
		documents.GET("/user/:id", staffOnly, deps.documents.ListByUser)
		documents.GET("/:id", deps.documents.Get)
		documents.POST("/:id/review", middleware.RequireRoles(models.RoleCoordinator, models.RoleAdmin), deps.documents.Review)
		documents.DELETE("/:id", deps.documents.Delete)
	}

	announcements := secured.Group("/announcements")
	{
		announcements.GET("", deps.announcements.List)
		announcements.POST("", middleware.RequireRoles(models.RoleCoordinator, models.RoleAdmin), deps.announcements.Create)
		announcements.GET("/:id", deps.announcements.Get)
		announcements.PATCH("/:id", middleware.RequireRoles(models.RoleCoordinator, models.RoleAdmin), deps.announcements.Update)
		announcements.POST("/:id/deactivate", middleware.RequireRoles(models.RoleCoordinator, models.RoleAdmin), deps.announcements.Deactivate)
		announcements.DELETE("/:id", adminOnly, deps.announcements.Delete)
	}

	evaluations := secured.Group("/evaluations")
	{
		evaluations.POST("", middleware.RequireRoles(models.RoleCoordinator, models.RoleSupervisor), deps.evaluations.Create)
		evaluations.GET("", deps.evaluations.ListMine)
		evaluations.GET("/authored", middleware.RequireRoles(models.RoleCoordinator, models.RoleSupervisor), deps.evaluations.ListAuthored)
		evaluations.GET("/student/:id", staffOnly, deps.evaluations.ListByStudent)
		evaluations.GET("/:id", deps.evaluations.Get)
		evaluations.PATCH("/:id", middleware.RequireRoles(models.RoleCoordinator, models.RoleSupervisor, models.RoleAdmin), deps.evaluations.Update)
		evaluations.DELETE("/:id", middleware.RequireRoles(models.RoleCoordinator, models.RoleSupervisor, models.RoleAdmin), deps.evaluations.Delete)
	}

	contact := secured.Group("/contact")
	{
		contact.GET("", adminOnly, deps.contact.List)
		contact.POST("/:id/read", adminOnly, deps.contact.MarkRead)
		contact.POST("/:id/respond", adminOnly, deps.contact.Respond)
		contact.POST("/:id/close", adminOnly, deps.contact.Close)
		contact.DELETE("/:id", adminOnly, deps.contact.Delete)
	}

	stats := secured.Group("/stats")
	{
		stats.GET("/system", staffOnly, deps.stats.System)
		stats.GET("/progress", middleware.RequireRoles(models.RoleStudent), deps.stats.MyProgress)
		stats.GET("/progress/:id", deps.stats.StudentProgress)
	}

	if cfg.Reports.Enabled {
		reports := secured.Group("/reports")
		{
			reports.GET("/system", staffOnly, deps.reports.System)
			reports.GET("/student/:id", staffOnly, deps.reports.Student)
		}
	}
}

func newBlob(cfg *config.Config) (store.Blob, error) {
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		return store.NewRedisBlob(cfg.Redis)
	default:
		return store.NewFileBlob(cfg.Store.Dir)
	}
}
