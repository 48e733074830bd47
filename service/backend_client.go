package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.opentelemetry.io/otel/trace"

	"checkout-gateway/models"
	"checkout-gateway/payment"
)

const apiVersion = "2.0"

var backendEndpoints = map[string]string{
	payment.MethodPayPal:   "/api/payment/paypal/create-order",
	payment.MethodCard:     "/api/payment/card/process",
	payment.MethodPayoneer: "/api/payment/payoneer/create-checkout",
}

// EndpointFor returns the order backend path handling method.
func EndpointFor(method string) (string, error) {
	path, ok := backendEndpoints[method]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
	return path, nil
}

// BackendResult is a 2xx answer from the order backend.
type BackendResult struct {
	Success         bool
	OrderID         string
	InternalOrderID string
	ApprovalURL     string
	CheckoutID      string
	// Message is error.message or message from the body, if any.
	Message string
	Error   any
	Raw     json.RawMessage
}

// BackendClient relays checkout, capture, status and coupon requests to the
// external order backend that owns payment state.
type BackendClient struct {
	baseURL string
	upstream
}

// NewBackendClient creates a client for the backend at baseURL
func NewBackendClient(baseURL string, client *http.Client, tracer trace.Tracer) *BackendClient {
	return &BackendClient{
		baseURL:  baseURL,
		upstream: newUpstream("order-backend", client, tracer),
	}
}

// CreatePayment sends env to the backend endpoint for method. The return and
// cancel URLs are repeated as headers for backends that read them there.
func (c *BackendClient) CreatePayment(ctx context.Context, method string, env *payment.Envelope, origin string) (*BackendResult, error) {
	path, err := EndpointFor(method)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, env)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Return-URL", env.ReturnURL)
	req.Header.Set("X-Cancel-URL", env.CancelURL)
	req.Header.Set("X-Frontend-Origin", origin)

	resp, err := c.do(req, "create_payment")
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newUpstreamError(c.name, resp.StatusCode, resp.Body)
	}
	return decodeBackendResult(resp.Body)
}

// CaptureOrder asks the backend to capture an approved PayPal order and
// returns its answer verbatim.
func (c *BackendClient) CaptureOrder(ctx context.Context, capture *models.CaptureRequest) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/payment/paypal/capture-order", capture)
	if err != nil {
		return nil, err
	}
	return c.passthrough(req, "capture_order")
}

// OrderStatus fetches the backend's view of an order.
func (c *BackendClient) OrderStatus(ctx context.Context, orderID string) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/payment/order/"+url.PathEscape(orderID), nil)
	if err != nil {
		return nil, err
	}
	return c.passthrough(req, "order_status")
}

// ValidateCoupon checks a coupon code for a customer.
func (c *BackendClient) ValidateCoupon(ctx context.Context, coupon *models.CouponRequest) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/payment/coupon/validate", coupon)
	if err != nil {
		return nil, err
	}
	return c.passthrough(req, "validate_coupon")
}

func (c *BackendClient) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	req, err := newJSONRequest(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-Version", apiVersion)
	return req, nil
}

func (c *BackendClient) passthrough(req *http.Request, operation string) (json.RawMessage, error) {
	resp, err := c.do(req, operation)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newUpstreamError(c.name, resp.StatusCode, resp.Body)
	}
	if !json.Valid(resp.Body) {
		return nil, fmt.Errorf("%s: %s returned a non-JSON body", c.name, operation)
	}
	return resp.Body, nil
}

func decodeBackendResult(body []byte) (*BackendResult, error) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("decode backend response: %w", err)
	}

	success, _ := fields["success"].(bool)
	approval := stringField(fields, "approval_url")
	if approval == "" {
		approval = stringField(fields, "payment_url")
	}

	return &BackendResult{
		Success:         success,
		OrderID:         stringField(fields, "order_id"),
		InternalOrderID: stringField(fields, "internal_order_id"),
		ApprovalURL:     approval,
		CheckoutID:      stringField(fields, "checkout_id"),
		Message:         extractMessage(fields),
		Error:           fields["error"],
		Raw:             body,
	}, nil
}

// stringField reads a string or numeric id from a decoded JSON object.
func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}
