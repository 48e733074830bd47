package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"

	"checkout-gateway/config"
	"checkout-gateway/models"
	"checkout-gateway/payment"
)

// PayoneerClient creates hosted checkout sessions with Payoneer.
type PayoneerClient struct {
	cfg config.PayoneerConfig
	upstream
	now func() time.Time
}

func NewPayoneerClient(cfg config.PayoneerConfig, client *http.Client, tracer trace.Tracer) *PayoneerClient {
	return &PayoneerClient{
		cfg:      cfg,
		upstream: newUpstream("payoneer", client, tracer),
		now:      time.Now,
	}
}

// CreateCheckout opens a checkout session and returns where to send the buyer.
func (c *PayoneerClient) CreateCheckout(ctx context.Context, r *payment.Request) (*models.PayoneerCheckoutResult, error) {
	if !c.cfg.Configured() {
		return nil, ErrNotConfigured
	}

	body := payment.BuildPayoneerCheckout(r, c.cfg.ProgramID, c.now())

	req, err := newJSONRequest(ctx, http.MethodPost, c.cfg.APIURL+"/v1/checkout/sessions", body)
	if err != nil {
		return nil, err
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)

	resp, err := c.do(req, "create_checkout")
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newUpstreamError(c.name, resp.StatusCode, resp.Body)
	}

	var session models.PayoneerSession
	if err := json.Unmarshal(resp.Body, &session); err != nil {
		return nil, fmt.Errorf("decode payoneer session: %w", err)
	}

	id := session.ID
	if id == "" {
		id = session.SessionID
	}
	checkoutURL := session.CheckoutURL
	if checkoutURL == "" {
		checkoutURL = session.PaymentURL
	}

	return &models.PayoneerCheckoutResult{
		Success:     true,
		CheckoutID:  id,
		CheckoutURL: checkoutURL,
		Status:      session.Status,
		Data:        resp.Body,
	}, nil
}
