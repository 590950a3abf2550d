// Package httpapi wires the HTTP transport (Gin) to the domain service,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, and rate limiting.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/formloom/go-forms-backend/docs"
	"github.com/formloom/go-forms-backend/internal/config"
	"github.com/formloom/go-forms-backend/internal/dnscheck"
	"github.com/formloom/go-forms-backend/internal/domain"
	"github.com/formloom/go-forms-backend/internal/edge"
	"github.com/formloom/go-forms-backend/internal/http/handlers"
	"github.com/formloom/go-forms-backend/internal/http/middleware"
	"github.com/formloom/go-forms-backend/internal/repo"
	"github.com/formloom/go-forms-backend/internal/services"
)

// domainRepoShim adapts the repository free functions to the
// services.DomainRepo interface. This keeps services decoupled from the
// concrete repo package while reusing the existing functions.
type domainRepoShim struct{}

func (domainRepoShim) CreateDomain(ctx context.Context, db *gorm.DB, workspaceID, hostname, token string) (*domain.WorkspaceDomain, error) {
	return repo.CreateDomain(ctx, db, workspaceID, hostname, token)
}

func (domainRepoShim) GetDomain(ctx context.Context, db *gorm.DB, id, workspaceID string) (*domain.WorkspaceDomain, error) {
	return repo.GetDomain(ctx, db, id, workspaceID)
}

func (domainRepoShim) CountDomains(ctx context.Context, db *gorm.DB, workspaceID string) (int64, error) {
	return repo.CountDomains(ctx, db, workspaceID)
}

func (domainRepoShim) ListDomainsPage(ctx context.Context, db *gorm.DB, workspaceID string, offset, limit int) ([]domain.WorkspaceDomain, error) {
	return repo.ListDomainsPage(ctx, db, workspaceID, offset, limit)
}

func (domainRepoShim) UpdateDomainVerification(ctx context.Context, db *gorm.DB, id, workspaceID, status string, verifiedAt *time.Time, checkedAt time.Time) error {
	return repo.UpdateDomainVerification(ctx, db, id, workspaceID, status, verifiedAt, checkedAt)
}

func (domainRepoShim) DeleteDomain(ctx context.Context, db *gorm.DB, id, workspaceID string) error {
	return repo.DeleteDomain(ctx, db, id, workspaceID)
}

// membershipRepoShim adapts repo.GetRole to services.MembershipRepo.
type membershipRepoShim struct{}

func (membershipRepoShim) GetRole(ctx context.Context, db *gorm.DB, workspaceID, userID string) (string, error) {
	return repo.GetRole(ctx, db, workspaceID, userID)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine: observability (tracing, metrics), identity resolution, rate
// limiting, CORS and security headers, health/metrics/docs endpoints, and
// the versioned domain API.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Identity: resolve the acting user for logging and rate-limit keys
//  4. Logger: structured access logs
//  5. Recovery: capture panics after the logger
//  6. Body size limiter, gzip
//  7. Metrics
//  8. Rate limiter (per user/IP)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Identity())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())

	// Global body size limit (64 KiB is plenty for a hostname payload).
	r.Use(limitBody(64 << 10))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// OpenAPI UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: service ← repo/db/dns/edge
	domainSvc := &services.DomainService{
		DB:      db,
		Repo:    domainRepoShim{},
		Members: membershipRepoShim{},
		Checker: dnscheck.New(cfg.Domains.CNAMETarget, cfg.Domains.TXTPrefix, cfg.Domains.DNSTimeout),
		Edge:    edge.NewVercelGateway(cfg.Vercel.Token, cfg.Vercel.ProjectID, cfg.Vercel.TeamID),
	}
	h := handlers.New(domainSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.POST("/workspaces/:workspaceId/domains", h.CreateDomain)
		api.GET("/workspaces/:workspaceId/domains", h.ListDomains)
		api.POST("/workspaces/:workspaceId/domains/:domainId/verify", h.VerifyDomain)
		api.GET("/workspaces/:workspaceId/domains/:domainId/status", h.DomainStatus)
		api.DELETE("/workspaces/:workspaceId/domains/:domainId", h.DeleteDomain)
	}
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader; oversized bodies error on read downstream.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
