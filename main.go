package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"checkout-gateway/config"
	"checkout-gateway/handlers"
	"checkout-gateway/logging"
	"checkout-gateway/monitoring"
	"checkout-gateway/server"
	"checkout-gateway/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize structured logging
	if err := logging.InitLogger(cfg.ServiceName, cfg.OTELEndpoint, cfg.IsProduction()); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logging.Sync()
	defer func() {
		if err := logging.Shutdown(context.Background()); err != nil {
			logging.Error("Error shutting down logger provider", zap.Error(err))
		}
	}()

	// Initialize OpenTelemetry
	tp, tracer, err := monitoring.InitTracer(cfg.ServiceName, cfg.OTELEndpoint)
	if err != nil {
		logging.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logging.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	mp, registry, err := monitoring.InitMeter(cfg.ServiceName, cfg.OTELEndpoint)
	if err != nil {
		logging.Fatal("Failed to initialize meter", zap.Error(err))
	}
	defer func() {
		if err := mp.Shutdown(context.Background()); err != nil {
			logging.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	if !cfg.PayPal.Configured() {
		logging.Warn("PayPal credentials missing, direct PayPal endpoints will fail")
	}
	if !cfg.Payoneer.Configured() {
		logging.Warn("Payoneer credentials missing, direct Payoneer endpoint will fail")
	}

	// Initialize service layer
	httpClient := service.NewHTTPClient(cfg.UpstreamTimeout)
	paymentService := service.NewPaymentService(tracer,
		service.NewBackendClient(cfg.BackendURL, httpClient, tracer),
		service.NewPayPalClient(cfg.PayPal, httpClient, tracer),
		service.NewPayoneerClient(cfg.Payoneer, httpClient, tracer),
	)
	mailchimp := service.NewMailchimpClient(cfg.Mailchimp, "", httpClient, tracer)

	// Initialize handlers
	router := server.NewRouter(cfg, server.Handlers{
		Payment:      handlers.NewPaymentHandler(paymentService, cfg.FrontendOrigin, cfg.PayPal.PublicClientID),
		Subscription: handlers.NewSubscriptionHandler(mailchimp),
	}, registry)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logging.Info("Checkout gateway starting",
			zap.String("port", cfg.Port),
			zap.String("backend_url", cfg.BackendURL),
			zap.String("environment", cfg.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", zap.Error(err))
	}
}
