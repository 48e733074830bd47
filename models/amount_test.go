package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		missing bool
		str     string
		fixed   string
	}{
		{name: "number", body: `{"amount": 10.50}`, str: "10.5", fixed: "10.50"},
		{name: "integer", body: `{"amount": 5}`, str: "5", fixed: "5.00"},
		{name: "string kept as sent", body: `{"amount": "10.50"}`, str: "10.50", fixed: "10.50"},
		{name: "numeric zero", body: `{"amount": 0}`, missing: true, str: "0", fixed: "0.00"},
		{name: "string zero", body: `{"amount": "0"}`, str: "0", fixed: "0.00"},
		{name: "empty string", body: `{"amount": ""}`, missing: true},
		{name: "null", body: `{"amount": null}`, missing: true},
		{name: "absent", body: `{}`, missing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PaymentPayload
			require.NoError(t, json.Unmarshal([]byte(tt.body), &p))

			assert.Equal(t, tt.missing, p.Amount.Missing())
			assert.Equal(t, tt.str, p.Amount.String())
			if tt.fixed != "" {
				assert.Equal(t, tt.fixed, p.Amount.Fixed2())
			}
		})
	}
}

func TestAmountRejectsGarbage(t *testing.T) {
	var p PaymentPayload
	assert.Error(t, json.Unmarshal([]byte(`{"amount": true}`), &p))
}

func TestAmountMarshalsAsString(t *testing.T) {
	b, err := json.Marshal(struct {
		Amount Amount `json:"amount"`
	}{NewAmount("5")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"5"}`, string(b))
}

func TestAmountFloat(t *testing.T) {
	assert.InDelta(t, 129.99, NewAmount("129.99").Float(), 0.0001)
	assert.Zero(t, NewAmount("abc").Float())
	assert.Equal(t, "abc", NewAmount("abc").Fixed2())
}
