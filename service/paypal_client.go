package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"checkout-gateway/config"
	"checkout-gateway/models"
	"checkout-gateway/payment"
)

// PayPalClient talks to the PayPal Orders API v2 directly. Every call
// acquires a fresh client-credentials token; nothing is cached.
type PayPalClient struct {
	cfg config.PayPalConfig
	upstream

	now       func() time.Time
	requestID func() string
}

// NewPayPalClient creates a PayPal client
func NewPayPalClient(cfg config.PayPalConfig, client *http.Client, tracer trace.Tracer) *PayPalClient {
	return &PayPalClient{
		cfg:       cfg,
		upstream:  newUpstream("paypal", client, tracer),
		now:       time.Now,
		requestID: NewRequestID,
	}
}

// CreateOrder creates a CAPTURE-intent order for a validated request.
func (c *PayPalClient) CreateOrder(ctx context.Context, r *payment.Request) (*models.PayPalOrderResult, error) {
	if !c.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	order, err := payment.BuildPayPalOrder(r, c.now())
	if err != nil {
		return nil, err
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := newJSONRequest(ctx, http.MethodPost, c.cfg.APIURL+"/v2/checkout/orders", order)
	if err != nil {
		return nil, err
	}
	c.authorize(req, token)

	resp, err := c.do(req, "create_order")
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newUpstreamError(c.name, resp.StatusCode, resp.Body)
	}

	var created models.PayPalOrder
	if err := json.Unmarshal(resp.Body, &created); err != nil {
		return nil, fmt.Errorf("decode paypal order: %w", err)
	}

	return &models.PayPalOrderResult{
		Success:     true,
		OrderID:     created.ID,
		Status:      created.Status,
		ApprovalURL: approvalURL(created.Links),
		Order:       resp.Body,
	}, nil
}

// CaptureOrder finalizes an approved order. A fresh PayPal-Request-Id is
// sent on every call; duplicate suppression is left to PayPal.
func (c *PayPalClient) CaptureOrder(ctx context.Context, orderID string) (*models.PayPalCaptureResult, error) {
	if !c.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := c.cfg.APIURL + "/v2/checkout/orders/" + url.PathEscape(orderID) + "/capture"
	req, err := newJSONRequest(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req, token)

	resp, err := c.do(req, "capture_order")
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newUpstreamError(c.name, resp.StatusCode, resp.Body)
	}

	var captured models.PayPalOrder
	if err := json.Unmarshal(resp.Body, &captured); err != nil {
		return nil, fmt.Errorf("decode paypal capture: %w", err)
	}

	capture, ok := firstCapture(&captured)
	if !ok {
		return nil, ErrNoCapture
	}

	result := &models.PayPalCaptureResult{
		Success: true,
		OrderID: captured.ID,
		Status:  captured.Status,
		Capture: capture,
		Order:   resp.Body,
	}
	if captured.Payer != nil {
		result.Payer = models.CapturePayer{
			Email:   captured.Payer.EmailAddress,
			PayerID: captured.Payer.PayerID,
			Name:    captured.Payer.Name,
		}
	}
	return result, nil
}

func (c *PayPalClient) authorize(req *http.Request, token *oauth2.Token) {
	token.SetAuthHeader(req)
	req.Header.Set("PayPal-Request-Id", c.requestID())
}

// accessToken runs the OAuth2 client-credentials grant against
// /v1/oauth2/token with the credentials in the Authorization header.
func (c *PayPalClient) accessToken(ctx context.Context) (*oauth2.Token, error) {
	cc := clientcredentials.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		TokenURL:     c.cfg.APIURL + "/v1/oauth2/token",
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	start := time.Now()
	token, err := cc.Token(context.WithValue(ctx, oauth2.HTTPClient, c.client))
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			c.record(ctx, start, "oauth_token", "error")
			return nil, &UnavailableError{Upstream: c.name, Err: err}
		}
		c.record(ctx, start, "oauth_token", "failed")
		return nil, fmt.Errorf("%w: %v", ErrProviderAuth, err)
	}
	c.record(ctx, start, "oauth_token", "success")
	return token, nil
}

func approvalURL(links []models.PayPalLink) string {
	for _, l := range links {
		if l.Rel == "approve" || l.Rel == "payer-action" {
			return l.Href
		}
	}
	return ""
}

func firstCapture(order *models.PayPalOrder) (models.PayPalCapture, bool) {
	if len(order.PurchaseUnits) == 0 {
		return models.PayPalCapture{}, false
	}
	payments := order.PurchaseUnits[0].Payments
	if payments == nil || len(payments.Captures) == 0 {
		return models.PayPalCapture{}, false
	}
	return payments.Captures[0], true
}
