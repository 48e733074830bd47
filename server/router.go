package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"checkout-gateway/config"
	"checkout-gateway/handlers"
	"checkout-gateway/logging"
	"checkout-gateway/middleware"
)

// Handlers groups the route handlers mounted by NewRouter.
type Handlers struct {
	Payment      *handlers.PaymentHandler
	Subscription *handlers.SubscriptionHandler
}

// NewRouter builds the gin engine with the middleware chain and all routes.
// A nil registry serves the default Prometheus gatherer on /metrics.
func NewRouter(cfg *config.Config, h Handlers, registry *prometheus.Registry) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoMethod(handlers.MethodNotAllowed)
	router.NoRoute(handlers.NotFound)

	// forwarding headers only count when they come from a listed proxy
	if err := router.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logging.Warn("Invalid trusted proxy list, trusting none", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	router.Use(middleware.RequestID())
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	router.GET("/health", handlers.HealthCheck)
	if registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	} else {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := router.Group("/api")
	api.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst))
	{
		api.POST("/payment", h.Payment.ProcessPayment)
		api.POST("/subscribe", h.Subscription.Subscribe)

		pay := api.Group("/payment")
		pay.POST("/capture-paypal", h.Payment.CaptureViaBackend)
		pay.GET("/order-status", h.Payment.OrderStatus)
		pay.POST("/validate-coupon", h.Payment.ValidateCoupon)
		pay.GET("/client-config", h.Payment.ClientConfig)
		pay.POST("/paypal/create-order", h.Payment.CreatePayPalOrder)
		pay.POST("/paypal/capture-order", h.Payment.CapturePayPalOrder)
		pay.POST("/payoneer/create-checkout", h.Payment.CreatePayoneerCheckout)
	}

	return router
}
