package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	coreport "github.com/amirhossein-jamali/wallet-funding/internal/domain/port/core"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/wallet-funding/internal/infrastructure/adapter/api/middleware"
)

// Handlers groups everything SetupRoutes mounts
type Handlers struct {
	Payment *handler.PaymentHandler
	Admin   *handler.AdminHandler
	Wallet  *handler.WalletHandler
	Metrics http.Handler // nil disables the metrics endpoint
}

// RouteConfig holds the route-level settings
type RouteConfig struct {
	Auth        middleware.AuthConfig
	MetricsPath string
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, cfg RouteConfig, logger coreport.Logger) {
	router.GET("/health", h.Wallet.Health)
	if h.Metrics != nil && cfg.MetricsPath != "" {
		router.GET(cfg.MetricsPath, gin.WrapH(h.Metrics))
	}

	api := router.Group("/api")
	api.GET("/health", h.Wallet.Health)

	// Providers call back without credentials
	api.GET("/payment/callback", h.Payment.Callback)
	api.POST("/payment/callback", h.Payment.Callback)

	authed := api.Group("", middleware.Auth(cfg.Auth, logger))
	{
		authed.POST("/payment/start", h.Payment.StartPayment)
		authed.GET("/user/balance", h.Wallet.GetBalance)
		authed.POST("/admin/recharge", h.Admin.Recharge)
	}

	router.NoRoute(middleware.NoRoute)
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, observer middleware.HTTPObserver, allowOrigins []string) {
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	if observer != nil {
		router.Use(middleware.Metrics(observer))
	}
	router.Use(middleware.CORS(allowOrigins))
}
