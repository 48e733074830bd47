package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-gateway/config"
	"checkout-gateway/payment"
)

func TestPayoneerCreateCheckout(t *testing.T) {
	srv, calls := stubServer(t, http.StatusOK, `{"session_id":"S1","payment_url":"https://pay.payoneer/S1","status":"OPEN"}`)

	client := NewPayoneerClient(config.PayoneerConfig{
		ProgramID: "prog",
		Username:  "user",
		Password:  "pass",
		APIURL:    srv.URL,
	}, nil, nil)

	r := testRequest(payment.MethodPayoneer)
	r.Shipping = nil
	result, err := client.CreateCheckout(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, "S1", result.CheckoutID)
	assert.Equal(t, "https://pay.payoneer/S1", result.CheckoutURL)
	assert.Equal(t, "OPEN", result.Status)

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, "/v1/checkout/sessions", call.Path)
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", call.Header.Get("Authorization"))
	user, pass, ok := req.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "user", user)
	assert.Equal(t, "pass", pass)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(call.Body, &sent))
	assert.Equal(t, "prog", sent["program_id"])
	assert.Equal(t, "5.00", sent["amount"])
}

func TestPayoneerNotConfigured(t *testing.T) {
	srv, calls := stubServer(t, http.StatusOK, `{}`)
	client := NewPayoneerClient(config.PayoneerConfig{APIURL: srv.URL}, nil, nil)

	_, err := client.CreateCheckout(context.Background(), testRequest(payment.MethodPayoneer))
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Empty(t, *calls)
}
