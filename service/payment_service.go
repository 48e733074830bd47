package service

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"checkout-gateway/logging"
	"checkout-gateway/models"
	"checkout-gateway/monitoring"
	"checkout-gateway/payment"
)

// PaymentService validates canonical checkout requests and hands them to
// the order backend or to a provider integration.
type PaymentService struct {
	tracer   trace.Tracer
	backend  *BackendClient
	paypal   *PayPalClient
	payoneer *PayoneerClient
}

// NewPaymentService creates a new payment service
func NewPaymentService(tracer trace.Tracer, backend *BackendClient, paypal *PayPalClient, payoneer *PayoneerClient) *PaymentService {
	if tracer == nil {
		tracer = otel.Tracer("checkout-gateway")
	}
	return &PaymentService{
		tracer:   tracer,
		backend:  backend,
		paypal:   paypal,
		payoneer: payoneer,
	}
}

// ProcessPayment validates r, builds the backend envelope and dispatches it
// by payment method. Nothing is sent when validation fails.
func (s *PaymentService) ProcessPayment(ctx context.Context, r *payment.Request) (*BackendResult, error) {
	ctx, span := s.tracer.Start(ctx, "process_payment")
	defer span.End()

	s.annotate(span, r)
	logger := logging.WithTraceContext(span)

	if err := payment.Validate(r); err != nil {
		s.count(ctx, r, "invalid")
		return nil, err
	}

	env, err := payment.BuildEnvelope(r)
	if err != nil {
		s.count(ctx, r, "invalid")
		return nil, err
	}

	logger.Info("Dispatching payment",
		zap.String("payment_type", r.PaymentType),
		zap.String("payment_method", r.PaymentMethod),
		zap.String("amount", r.Amount.String()),
		zap.String("currency", r.Currency),
	)

	result, err := s.backend.CreatePayment(ctx, r.PaymentMethod, env, r.Origin)
	if err != nil {
		logger.Error("Payment dispatch failed",
			zap.Error(err),
			zap.String("payment_method", r.PaymentMethod),
		)
		s.count(ctx, r, "failed")
		return nil, err
	}

	if !result.Success {
		s.count(ctx, r, "rejected")
		return result, nil
	}

	s.count(ctx, r, "success")
	monitoring.CheckoutAmount.Record(ctx, r.Amount.Float(),
		metric.WithAttributes(
			attribute.String("currency", r.Currency),
			attribute.String("payment_method", r.PaymentMethod),
		),
	)
	span.SetAttributes(attribute.String("payment.order_id", result.OrderID))
	return result, nil
}

// CreatePayPalOrder creates an order directly with PayPal.
func (s *PaymentService) CreatePayPalOrder(ctx context.Context, r *payment.Request) (*models.PayPalOrderResult, error) {
	ctx, span := s.tracer.Start(ctx, "create_paypal_order")
	defer span.End()

	r.PaymentMethod = payment.MethodPayPal
	s.annotate(span, r)

	if err := payment.Validate(r); err != nil {
		s.count(ctx, r, "invalid")
		return nil, err
	}

	result, err := s.paypal.CreateOrder(ctx, r)
	if err != nil {
		logging.WithTraceContext(span).Error("PayPal order creation failed", zap.Error(err))
		s.count(ctx, r, "failed")
		return nil, err
	}

	s.count(ctx, r, "success")
	span.SetAttributes(attribute.String("payment.order_id", result.OrderID))
	return result, nil
}

// CreatePayoneerCheckout opens a Payoneer checkout session. Shipping is not
// required on this path.
func (s *PaymentService) CreatePayoneerCheckout(ctx context.Context, r *payment.Request) (*models.PayoneerCheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "create_payoneer_checkout")
	defer span.End()

	r.PaymentMethod = payment.MethodPayoneer
	s.annotate(span, r)

	if err := payment.ValidateCheckout(r); err != nil {
		s.count(ctx, r, "invalid")
		return nil, err
	}

	result, err := s.payoneer.CreateCheckout(ctx, r)
	if err != nil {
		logging.WithTraceContext(span).Error("Payoneer checkout creation failed", zap.Error(err))
		s.count(ctx, r, "failed")
		return nil, err
	}

	s.count(ctx, r, "success")
	return result, nil
}

// CapturePayPalOrder captures directly with PayPal.
func (s *PaymentService) CapturePayPalOrder(ctx context.Context, orderID string) (*models.PayPalCaptureResult, error) {
	ctx, span := s.tracer.Start(ctx, "capture_paypal_order",
		trace.WithAttributes(attribute.String("payment.order_id", orderID)))
	defer span.End()

	return s.paypal.CaptureOrder(ctx, orderID)
}

// CaptureViaBackend asks the order backend to capture.
func (s *PaymentService) CaptureViaBackend(ctx context.Context, req *models.CaptureRequest) (json.RawMessage, error) {
	return s.backend.CaptureOrder(ctx, req)
}

func (s *PaymentService) OrderStatus(ctx context.Context, orderID string) (json.RawMessage, error) {
	return s.backend.OrderStatus(ctx, orderID)
}

func (s *PaymentService) ValidateCoupon(ctx context.Context, req *models.CouponRequest) (json.RawMessage, error) {
	return s.backend.ValidateCoupon(ctx, req)
}

func (s *PaymentService) annotate(span trace.Span, r *payment.Request) {
	span.SetAttributes(
		attribute.String("payment.type", r.PaymentType),
		attribute.String("payment.method", r.PaymentMethod),
		attribute.String("payment.amount", r.Amount.String()),
		attribute.String("payment.currency", r.Currency),
	)
}

func (s *PaymentService) count(ctx context.Context, r *payment.Request, status string) {
	// both values come from the client; keep the label set bounded
	method := r.PaymentMethod
	if !payment.IsSupportedMethod(method) {
		method = "other"
	}
	paymentType := r.PaymentType
	if !payment.IsSupportedType(paymentType) {
		paymentType = "other"
	}
	monitoring.CheckoutCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("payment_type", paymentType),
			attribute.String("payment_method", method),
			attribute.String("status", status),
		),
	)
}
