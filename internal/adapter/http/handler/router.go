package handler

import (
	"concurrent-ledger/internal/adapter/http/middleware"
	redisStore "concurrent-ledger/internal/adapter/storage/redis"
	"concurrent-ledger/internal/core/ports"
	"concurrent-ledger/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AccountSvc     ports.AccountService
	TransferSvc    ports.TransferService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Mode           string // gin mode: debug, release, test; empty = release
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit
	r.Use(middleware.Metrics())

	// Health check (pings the backing store and redis when configured)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes
	v1 := r.Group("/api/v1")

	accountHandler := NewAccountHandler(deps.AccountSvc)
	accounts := v1.Group("/accounts")
	{
		accounts.POST("", rl("accounts_write"), accountHandler.Create)
		accounts.GET("", rl("accounts_read"), accountHandler.List)
		accounts.GET("/:id", rl("accounts_read"), accountHandler.Get)
		accounts.GET("/:id/balance", rl("accounts_read"), accountHandler.GetBalance)
		accounts.PUT("/:id/balance", rl("accounts_write"), accountHandler.SetBalance)
		accounts.POST("/:id/adjust", rl("accounts_write"), accountHandler.Adjust)
		accounts.DELETE("/:id", rl("accounts_write"), accountHandler.Delete)
	}

	transferHandler := NewTransferHandler(deps.TransferSvc)
	transfers := v1.Group("/transfers")
	{
		transfers.POST("", rl("transfers"), transferHandler.Transfer)
	}

	return r
}
