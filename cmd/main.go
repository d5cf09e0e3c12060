package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "navhub/docs"
	"navhub/internal/caching"
	"navhub/internal/common"
	"navhub/internal/config"
	"navhub/internal/handlers"
	"navhub/internal/jobs/background"
	"navhub/internal/middleware"
	"navhub/internal/navigation"
	"navhub/internal/repositories"
	"navhub/internal/services"
	"navhub/internal/store"
	"navhub/pkg/database"
)

const version = "1.0.0"

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	config.InitConfig(env)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()

	// Database connection pool
	pool, err := database.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Cache service (permission-set memoization)
	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	// Create repositories
	menuRepo := repositories.NewMenuRepo(pool)
	submenuRepo := repositories.NewSubmenuRepo(pool)
	roleRepo := repositories.NewRoleRepo(pool)
	permissionRepo := repositories.NewPermissionRepo(pool)
	rolePermissionRepo := repositories.NewRolePermissionRepo(pool)
	userRoleRepo := repositories.NewUserRoleRepo(pool)
	auditLogRepo := repositories.NewAuditLogsRepo(pool)

	// Node store and projection cache
	nodeStore := store.NewNodeStore(menuRepo, submenuRepo)

	projCacheCfg := caching.ProjectionCacheConfig{
		Capacity: cfg.Navigation.ProjectionCacheSize,
		TTL:      cfg.Navigation.ProjectionCacheTTL,
	}
	if cfg.Navigation.ProjectionCacheDisabled {
		projCacheCfg.Capacity = 0
	}
	projCache := caching.NewProjectionCache(projCacheCfg)

	// Create services
	auditSvc := services.NewAuditLogsService(auditLogRepo)
	rbacService := services.NewRBACService(rolePermissionRepo, cacheSvc, cfg.Navigation.PermissionCacheTTL)
	menuSvc := services.NewMenuService(nodeStore, auditSvc)
	rbacAdminSvc := services.NewRBACAdminService(roleRepo, permissionRepo, rolePermissionRepo, userRoleRepo, rbacService, auditSvc)
	exportSvc := services.NewExportService(nodeStore)

	// Branding is optional: without MinIO the sidebar simply carries no logo
	var minioSvc services.MinioService
	var brandingSvc services.BrandingService
	if cfg.Minio.Endpoint != "" {
		minioSvc, err = services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
		if err != nil {
			log.Fatalf("Failed to initialize MinIO service: %v", err)
		}
		brandingSvc = services.NewBrandingService(minioSvc, cacheSvc, auditSvc)
		if err := brandingSvc.EnsureBucket(ctx); err != nil {
			log.Printf("WARN: failed to ensure branding bucket: %v", err)
		}
	} else {
		log.Printf("WARN: MINIO_ENDPOINT not set, branding endpoints disabled")
	}

	navigationSvc := services.NewNavigationService(
		rbacService,
		nodeStore,
		projCache,
		navigation.Policy{KeepEmptyMenus: cfg.Navigation.KeepEmptyMenus},
		brandingSvc,
	)

	// JWT middleware configuration
	jwtConfig, err := middleware.NewJWTConfig(cfg.Auth.JWTSecret, cfg.Auth.JWKSURL)
	if err != nil {
		log.Fatalf("Failed to configure JWT middleware: %v", err)
	}

	// RBAC and audit middleware
	rbacMiddleware := middleware.NewRBACMiddleware(rbacService)
	auditMiddleware := middleware.NewAuditMiddleware(auditSvc)

	// Background jobs
	scheduler := background.NewJobScheduler(auditSvc, navigationSvc, cfg.Audit.RetentionDays)

	// Create handlers
	navigationHandlers := handlers.NewNavigationHandlers(navigationSvc)
	menuHandlers := handlers.NewMenuHandlers(menuSvc, exportSvc)
	rbacHandlers := handlers.NewRBACHandlers(rbacAdminSvc)
	auditHandlers := handlers.NewAuditLogsHandlers(auditSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, minioSvc, navigationSvc)
	jobHandlers := handlers.NewJobHandlers(scheduler, auditSvc, cfg.Audit.RetentionDays)
	var brandingHandlers *handlers.BrandingHandlers
	if brandingSvc != nil {
		brandingHandlers = handlers.NewBrandingHandlers(brandingSvc)
	}

	// Create Echo instance
	e := echo.New()
	e.Validator = common.NewRequestValidator()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Version middleware
	versionMiddleware := middleware.NewVersionMiddleware()
	e.Use(versionMiddleware.APIVersionResolver())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)
	e.GET("/metrics", healthHandlers.GetMetrics)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API routes
	v1 := e.Group("/v1")
	v1.Use(versionMiddleware.VersionHeader("v1"))

	// Protected routes (require JWT)
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(jwtConfig))
	protected.Use(middleware.Principal())

	// Navigation: the read path every authenticated principal hits
	protected.GET("/navigation", navigationHandlers.GetNavigation)
	if brandingHandlers != nil {
		protected.GET("/branding/logo", brandingHandlers.GetLogo)
	}

	// Admin surface: failed mutations are audit-logged by middleware,
	// successful ones by the services themselves
	admin := protected.Group("/admin")
	admin.Use(auditMiddleware.AuditFailures())

	// Navigation registry management
	registry := admin.Group("", rbacMiddleware.RequirePermission("menus.manage"))
	registry.GET("/menus", menuHandlers.ListMenus)
	registry.POST("/menus", menuHandlers.CreateMenu)
	registry.PUT("/menus/reorder", menuHandlers.ReorderMenus)
	registry.GET("/menus/export", menuHandlers.ExportRegistry)
	registry.PUT("/menus/:id", menuHandlers.UpdateMenu)
	registry.PATCH("/menus/:id/active", menuHandlers.SetMenuActive)
	registry.GET("/menus/:id/submenus", menuHandlers.ListSubmenus)
	registry.PUT("/menus/:id/submenus/reorder", menuHandlers.ReorderSubmenus)
	registry.POST("/submenus", menuHandlers.CreateSubmenu)
	registry.PUT("/submenus/:id", menuHandlers.UpdateSubmenu)
	registry.PATCH("/submenus/:id/active", menuHandlers.SetSubmenuActive)
	registry.GET("/navigation/version", menuHandlers.GetVersion)
	registry.GET("/navigation/cache-stats", navigationHandlers.GetCacheStats)
	registry.GET("/jobs", jobHandlers.GetJobStatus)
	registry.POST("/jobs/audit-retention/run", jobHandlers.TriggerAuditPurge)
	if brandingHandlers != nil {
		registry.POST("/branding/logo", brandingHandlers.UploadLogo)
	}

	// Role and permission administration
	rbac := admin.Group("", rbacMiddleware.RequirePermission("admin.rbac.manage"))
	rbac.POST("/roles", rbacHandlers.CreateRole)
	rbac.GET("/roles", rbacHandlers.ListRoles)
	rbac.GET("/roles/:id", rbacHandlers.GetRole)
	rbac.PUT("/roles/:id", rbacHandlers.UpdateRole)
	rbac.DELETE("/roles/:id", rbacHandlers.DeleteRole)
	rbac.PUT("/roles/:id/permissions", rbacHandlers.SetRolePermissions)
	rbac.GET("/roles/:id/permissions", rbacHandlers.ListRolePermissions)
	rbac.POST("/permissions", rbacHandlers.CreatePermission)
	rbac.GET("/permissions", rbacHandlers.ListPermissions)
	rbac.PUT("/permissions/:id", rbacHandlers.UpdatePermission)
	rbac.POST("/users/:id/roles/:roleId", rbacHandlers.GrantUserRole)
	rbac.DELETE("/users/:id/roles/:roleId", rbacHandlers.RevokeUserRole)
	rbac.GET("/users/:id/roles", rbacHandlers.ListUserRoles)

	// Audit trail (read-only)
	auditView := admin.Group("", rbacMiddleware.RequirePermission("admin.audit.view"))
	auditView.GET("/audit-logs", auditHandlers.ListAuditLogs)

	// Start background jobs
	if err := scheduler.Start(); err != nil {
		log.Printf("WARN: failed to start job scheduler: %v", err)
	}

	// Start server
	go func() {
		log.Printf("🚀 NavHub server v%s starting on port %s", version, cfg.Server.Port)
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	if err := scheduler.Stop(); err != nil {
		log.Printf("WARN: failed to stop job scheduler: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
}
