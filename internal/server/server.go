package server

import (
	"context"
	"net/http"

	"crmportal/internal/cache"
	"crmportal/internal/config"
	"crmportal/internal/middleware"
	"crmportal/internal/modules/account"
	"crmportal/internal/modules/auth"
	"crmportal/internal/modules/catalog"
	"crmportal/internal/modules/dashboard"
	"crmportal/internal/modules/order"
	"crmportal/internal/modules/portal"
	"crmportal/internal/modules/principal"
	"crmportal/internal/modules/staff"
	jwtsvc "crmportal/internal/pkg/jwt"
	"crmportal/internal/pkg/response"
	"crmportal/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Server owns the router and the long-lived pieces behind it.
type Server struct {
	Router *gin.Engine
	hub    *auth.EventHub
}

// New wires repositories, services and handlers over db. store caches
// resolved principals; pass cache.NewMemory() when Redis is not configured.
func New(cfg *config.Config, db *gorm.DB, store cache.PrincipalStore) *Server {
	accountRepo := repository.NewAccountRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	portalRepo := repository.NewPortalRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	tokens := jwtsvc.New(cfg.JWTSecret, cfg.SessionTTL)
	resolver := principal.NewResolver(adminRepo, customerRepo, store, cfg.CacheTTL())
	hub := auth.NewEventHub()

	authHandler := auth.NewHandler(
		auth.NewService(accountRepo, sessionRepo, portalRepo, resolver, tokens, hub, cfg.SessionTTL),
		hub,
	)
	principalHandler := principal.NewHandler()
	portalHandler := portal.NewHandler(portal.NewService(portalRepo, serviceRepo))
	catalogHandler := catalog.NewHandler(catalog.NewService(serviceRepo, portalRepo, orderRepo))
	orderHandler := order.NewHandler(order.NewService(orderRepo, serviceRepo, portalRepo))
	accountHandler := account.NewHandler(account.NewService(adminRepo, customerRepo))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(adminRepo, customerRepo, portalRepo, serviceRepo, orderRepo))
	staffHandler := staff.NewHandler(staff.NewService(employeeRepo))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			if err := ping(c.Request.Context(), db); err != nil {
				response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
				return
			}
			response.Success(c, http.StatusOK, gin.H{"status": "ok"})
		})

		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(tokens, sessionRepo))
		protected.Use(middleware.ResolvePrincipal(resolver))
		{
			authHandler.RegisterProtectedRoutes(protected)
			principalHandler.RegisterRoutes(protected)
			portalHandler.RegisterRoutes(protected)
			catalogHandler.RegisterRoutes(protected)
			orderHandler.RegisterRoutes(protected)
			accountHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)
			staffHandler.RegisterRoutes(protected)
		}
	}

	return &Server{Router: r, hub: hub}
}

// Close disconnects session event subscribers.
func (s *Server) Close() {
	s.hub.Close()
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
