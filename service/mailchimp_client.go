package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"checkout-gateway/config"
)

// SubscribeOutcome is how Mailchimp disposed of a signup.
type SubscribeOutcome int

const (
	Subscribed SubscribeOutcome = iota
	AlreadySubscribed
	// Rejected means Mailchimp refused the address as fake or invalid.
	Rejected
)

// MailchimpClient adds members to a Mailchimp audience through the
// Marketing API v3.
type MailchimpClient struct {
	cfg     config.MailchimpConfig
	baseURL string
	upstream
}

// NewMailchimpClient creates a client. An empty baseURL derives the API host
// from the configured data center.
func NewMailchimpClient(cfg config.MailchimpConfig, baseURL string, client *http.Client, tracer trace.Tracer) *MailchimpClient {
	if baseURL == "" && cfg.DataCenter != "" {
		baseURL = fmt.Sprintf("https://%s.api.mailchimp.com", cfg.DataCenter)
	}
	return &MailchimpClient{
		cfg:      cfg,
		baseURL:  strings.TrimRight(baseURL, "/"),
		upstream: newUpstream("mailchimp", client, tracer),
	}
}

// Configured reports whether the API key, list id and data center are set.
func (c *MailchimpClient) Configured() bool {
	return c.cfg.Configured()
}

type mailchimpMember struct {
	EmailAddress string `json:"email_address"`
	Status       string `json:"status"`
}

type mailchimpProblem struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
}

// Subscribe adds email to the list as subscribed.
func (c *MailchimpClient) Subscribe(ctx context.Context, email string) (SubscribeOutcome, error) {
	if !c.Configured() {
		return 0, ErrNotConfigured
	}

	endpoint := c.baseURL + "/3.0/lists/" + url.PathEscape(c.cfg.ListID) + "/members"
	req, err := newJSONRequest(ctx, http.MethodPost, endpoint, mailchimpMember{
		EmailAddress: email,
		Status:       "subscribed",
	})
	if err != nil {
		return 0, err
	}
	req.SetBasicAuth("checkout-gateway", c.cfg.APIKey)

	resp, err := c.do(req, "add_member")
	if err != nil {
		return 0, err
	}
	if resp.ok() {
		return Subscribed, nil
	}

	var problem mailchimpProblem
	_ = json.Unmarshal(resp.Body, &problem)
	switch {
	case problem.Title == "Member Exists":
		return AlreadySubscribed, nil
	case problem.Title == "Invalid Resource", strings.Contains(problem.Detail, "looks fake or invalid"):
		return Rejected, nil
	}
	return 0, newUpstreamError(c.name, resp.StatusCode, resp.Body)
}

// IsTestEmail flags placeholder addresses so they never reach the mailing
// list. Any address mentioning test, example or sample counts.
func IsTestEmail(email string) bool {
	lower := strings.ToLower(strings.TrimSpace(email))
	for _, marker := range []string{"test", "example", "sample"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
