package http

import (
	"time"

	"wallet_backend/internal/config"
	"wallet_backend/internal/http/handlers"
	"wallet_backend/internal/http/middleware"
	"wallet_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes wires the API surface. Returns the handler so the caller
// can reach the underlying services.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, cfg *config.Config, version string) *handlers.Handler {
	h := handlers.NewHandler(db)
	healthHandler := handlers.NewHealthHandler(db, version)

	// Balance events are pushed to connected clients after commits.
	hub := ws.NewHub()
	h.Wallets.SetNotifier(hub)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	apiRateWindow := time.Duration(cfg.APIRateWindow) * time.Second

	v1 := r.Group("/api/v1")
	v1.Use(middleware.RedisRateLimit(cfg.APIRateLimit, apiRateWindow))
	registerAPIRoutes(v1, h)

	r.GET("/ws", middleware.JWT(), h.WS(hub))

	return h
}

func registerAPIRoutes(api *gin.RouterGroup, h *handlers.Handler) {
	wallet := api.Group("/wallet")
	wallet.Use(middleware.JWT())
	{
		wallet.GET("", h.GetWallet)
		wallet.GET("/transactions", h.GetTransactions)
		wallet.GET("/transactions/:id", h.GetTransaction)
		wallet.POST("/pay", h.Pay)
		wallet.GET("/settings", h.GetSettings)
		wallet.PUT("/settings", middleware.AdminOnly(), h.UpdateSettings)
		wallet.POST("/credit", middleware.AdminOnly(), h.AdminCredit)
	}

	referrals := api.Group("/referrals")
	referrals.Use(middleware.JWT())
	{
		referrals.GET("", h.ListReferrals)
		referrals.POST("", h.CreateReferral)
		referrals.PUT("/:id/complete", h.CompleteReferral)
	}
}
