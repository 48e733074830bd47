package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-gateway/config"
)

func mailchimpConfig() config.MailchimpConfig {
	return config.MailchimpConfig{APIKey: "key-us1", ListID: "L1", DataCenter: "us1"}
}

func TestMailchimpSubscribeOutcomes(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   SubscribeOutcome
	}{
		{name: "created", status: http.StatusOK, body: `{"id":"m1","status":"subscribed"}`, want: Subscribed},
		{name: "member exists", status: http.StatusBadRequest, body: `{"title":"Member Exists","status":400}`, want: AlreadySubscribed},
		{name: "invalid resource", status: http.StatusBadRequest, body: `{"title":"Invalid Resource","status":400}`, want: Rejected},
		{name: "fake address", status: http.StatusBadRequest, body: `{"title":"Bad Request","detail":"x@y.z looks fake or invalid, please enter a real email address."}`, want: Rejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := stubServer(t, tt.status, tt.body)
			client := NewMailchimpClient(mailchimpConfig(), srv.URL, nil, nil)

			got, err := client.Subscribe(context.Background(), "someone@shop.io")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			require.Len(t, *calls, 1)
			assert.Equal(t, "/3.0/lists/L1/members", (*calls)[0].Path)
			assert.JSONEq(t, `{"email_address":"someone@shop.io","status":"subscribed"}`, string((*calls)[0].Body))
		})
	}
}

func TestMailchimpSubscribeFailure(t *testing.T) {
	srv, _ := stubServer(t, http.StatusInternalServerError, `{"title":"Internal Server Error"}`)
	client := NewMailchimpClient(mailchimpConfig(), srv.URL, nil, nil)

	_, err := client.Subscribe(context.Background(), "someone@shop.io")
	var upstreamErr *UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
}

func TestMailchimpNotConfigured(t *testing.T) {
	client := NewMailchimpClient(config.MailchimpConfig{}, "", nil, nil)
	assert.False(t, client.Configured())
	_, err := client.Subscribe(context.Background(), "someone@shop.io")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestMailchimpDefaultHost(t *testing.T) {
	client := NewMailchimpClient(mailchimpConfig(), "", nil, nil)
	assert.Equal(t, "https://us1.api.mailchimp.com", client.baseURL)
}

func TestIsTestEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{email: "test@gmail.com", want: true},
		{email: "Example@shop.io", want: true},
		{email: "ann@test.org", want: true},
		{email: "ann@mail.example.com", want: true},
		{email: "ann@samplecorp.io", want: true},
		{email: "testuser@gmail.com", want: true},
		{email: "sample.me@x.io", want: true},
		{email: "ann.examples@gmail.com", want: true},
		{email: "ann@gmail.com", want: false},
		{email: "contest-free@gmail.com", want: true},
		{email: "not-an-email", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTestEmail(tt.email))
		})
	}
}
