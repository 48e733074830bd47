package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"checkout-gateway/models"
	"checkout-gateway/payment"
	"checkout-gateway/service"
)

// PaymentHandler handles the checkout, capture, status and coupon routes
type PaymentHandler struct {
	paymentService *service.PaymentService
	frontendOrigin string
	publicClientID string
}

// NewPaymentHandler creates a new payment handler. frontendOrigin is used for
// default return/cancel URLs when the browser sends no Origin header.
func NewPaymentHandler(paymentService *service.PaymentService, frontendOrigin, paypalPublicClientID string) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		frontendOrigin: frontendOrigin,
		publicClientID: paypalPublicClientID,
	}
}

func (h *PaymentHandler) origin(c *gin.Context) string {
	if o := c.GetHeader("Origin"); o != "" {
		return o
	}
	return h.frontendOrigin
}

// bindPayment decodes and normalizes a checkout body. It writes the 400
// itself and returns nil when the body is not valid JSON.
func (h *PaymentHandler) bindPayment(c *gin.Context) *payment.Request {
	var body models.PaymentPayload
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, queryLanguage(c), payment.MsgInvalidRequest, nil)
		return nil
	}
	return payment.Normalize(&body, h.origin(c))
}

// ProcessPayment handles POST /api/payment
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	req := h.bindPayment(c)
	if req == nil {
		return
	}

	result, err := h.paymentService.ProcessPayment(c.Request.Context(), req)
	if err != nil {
		fail(c, req.Language, err, payment.MsgProcessingFailed, mirrorWithMessage)
		return
	}

	if !result.Success {
		message := result.Message
		if message == "" {
			message = payment.Message(req.Language, payment.MsgProcessingFailed)
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: message,
			Code:    string(payment.MsgProcessingFailed),
			Error:   result.Error,
		})
		return
	}

	message := payment.Message(req.Language, payment.MsgPaymentAccepted)
	if req.PaymentMethod == payment.MethodPayPal && result.ApprovalURL != "" {
		message = payment.Message(req.Language, payment.MsgRedirecting)
	}

	trace.SpanFromContext(c.Request.Context()).AddEvent("payment_dispatched")
	c.JSON(http.StatusOK, models.PaymentResponse{
		Success:         true,
		Message:         message,
		OrderID:         result.OrderID,
		InternalOrderID: result.InternalOrderID,
		ApprovalURL:     result.ApprovalURL,
		CheckoutID:      result.CheckoutID,
		Data:            result.Raw,
	})
}

// CreatePayPalOrder handles POST /api/payment/paypal/create-order
func (h *PaymentHandler) CreatePayPalOrder(c *gin.Context) {
	req := h.bindPayment(c)
	if req == nil {
		return
	}

	result, err := h.paymentService.CreatePayPalOrder(c.Request.Context(), req)
	if err != nil {
		fail(c, req.Language, err, payment.MsgCreateOrderFailed, providerFailure)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CreatePayoneerCheckout handles POST /api/payment/payoneer/create-checkout
func (h *PaymentHandler) CreatePayoneerCheckout(c *gin.Context) {
	req := h.bindPayment(c)
	if req == nil {
		return
	}

	result, err := h.paymentService.CreatePayoneerCheckout(c.Request.Context(), req)
	if err != nil {
		fail(c, req.Language, err, payment.MsgCreateCheckoutFailed, providerFailure)
		return
	}
	c.JSON(http.StatusOK, result)
}

func bindCapture(c *gin.Context) *models.CaptureRequest {
	var req models.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, queryLanguage(c), payment.MsgOrderIDRequired, nil)
		return nil
	}
	return &req
}

// CapturePayPalOrder handles POST /api/payment/paypal/capture-order
func (h *PaymentHandler) CapturePayPalOrder(c *gin.Context) {
	req := bindCapture(c)
	if req == nil {
		return
	}

	result, err := h.paymentService.CapturePayPalOrder(c.Request.Context(), req.OrderID)
	if err != nil {
		fail(c, queryLanguage(c), err, payment.MsgCaptureFailed, providerFailure)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CaptureViaBackend handles POST /api/payment/capture-paypal
func (h *PaymentHandler) CaptureViaBackend(c *gin.Context) {
	req := bindCapture(c)
	if req == nil {
		return
	}

	result, err := h.paymentService.CaptureViaBackend(c.Request.Context(), req)
	if err != nil {
		fail(c, queryLanguage(c), err, payment.MsgCaptureFailed, mirrorWithMessage)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}

// OrderStatus handles GET /api/payment/order-status?order_id=
func (h *PaymentHandler) OrderStatus(c *gin.Context) {
	lang := queryLanguage(c)
	orderID := c.Query("order_id")
	if orderID == "" {
		respondError(c, http.StatusBadRequest, lang, payment.MsgOrderIDRequired, nil)
		return
	}

	result, err := h.paymentService.OrderStatus(c.Request.Context(), orderID)
	if err != nil {
		if upstreamErr, ok := asUpstream(err); ok && upstreamErr.StatusCode == http.StatusNotFound {
			respondError(c, http.StatusNotFound, lang, payment.MsgOrderNotFound, nil)
			return
		}
		fail(c, lang, err, payment.MsgOrderStatusFailed, mirrorStatus)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}

// ValidateCoupon handles POST /api/payment/validate-coupon
func (h *PaymentHandler) ValidateCoupon(c *gin.Context) {
	lang := queryLanguage(c)

	var req models.CouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, lang, payment.MsgCouponFieldsRequired, nil)
		return
	}

	result, err := h.paymentService.ValidateCoupon(c.Request.Context(), &req)
	if err != nil {
		fail(c, lang, err, payment.MsgCouponFailed, mirrorStatus)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", result)
}

// ClientConfig handles GET /api/payment/client-config. It exposes only the
// public PayPal widget key.
func (h *PaymentHandler) ClientConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"paypal_client_id": h.publicClientID,
		"currency":         payment.DefaultCurrency,
	})
}
