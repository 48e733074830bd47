package payment

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-gateway/models"
)

func decodePayload(t *testing.T, body string) *models.PaymentPayload {
	t.Helper()
	var p models.PaymentPayload
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return &p
}

func TestNormalizeLegacyPayload(t *testing.T) {
	p := decodePayload(t, `{
		"payment_type": "pre_order",
		"paymentMethod": "PayPal",
		"email": "a@b.co",
		"amount": 5,
		"shipping": {"country": "US", "firstName": "Ann", "lastName": "Lee", "address": "1 Main St", "extra": "dropped"}
	}`)

	r := Normalize(p, "https://shop.example.com/")

	assert.Equal(t, TypeReserveVIP, r.PaymentType)
	assert.Equal(t, MethodPayPal, r.PaymentMethod)
	assert.Equal(t, DefaultCurrency, r.Currency)
	require.NotNil(t, r.Customer)
	assert.Equal(t, models.Customer{Email: "a@b.co", FirstName: "Ann", LastName: "Lee"}, *r.Customer)
	require.NotNil(t, r.Shipping)
	assert.Equal(t, "US", r.Shipping.CountryName)
	assert.Equal(t, "https://shop.example.com/payment/success", r.ReturnURL)
	assert.Equal(t, "https://shop.example.com/payment/cancel", r.CancelURL)
	assert.Equal(t, English, r.Language)
}

func TestNormalizePaymentType(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "explicit", body: `{"payment_type": "regular_payment"}`, want: TypeRegular},
		{name: "pre_order alias", body: `{"payment_type": "pre_order"}`, want: TypeReserveVIP},
		{name: "early bird product", body: `{"productType": "early_bird_discount"}`, want: TypeReserveVIP},
		{name: "other product", body: `{"productType": "standard"}`, want: TypeRegular},
		{name: "nothing", body: `{}`, want: TypeRegular},
		{name: "unknown kept for validation", body: `{"payment_type": "gift"}`, want: "gift"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Normalize(decodePayload(t, tt.body), "")
			assert.Equal(t, tt.want, r.PaymentType)
		})
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	p := decodePayload(t, `{
		"payment_method": "CARD",
		"currency": "eur",
		"customer": {"email": "c@d.io", "firstName": "Cy"},
		"return_url": "https://r/ok",
		"cancel_url": "https://r/no",
		"language": "zh"
	}`)

	r := Normalize(p, "https://ignored")

	assert.Equal(t, MethodCard, r.PaymentMethod)
	assert.Equal(t, "EUR", r.Currency)
	assert.Equal(t, "c@d.io", r.Customer.Email)
	assert.Equal(t, "https://r/ok", r.ReturnURL)
	assert.Equal(t, "https://r/no", r.CancelURL)
	assert.Equal(t, Chinese, r.Language)
	assert.Nil(t, r.Shipping)
}

func TestNormalizeDoesNotAliasCustomer(t *testing.T) {
	p := decodePayload(t, `{"customer": {"email": "x@y.z"}}`)
	r := Normalize(p, "")
	r.Customer.Email = "changed"
	assert.Equal(t, "x@y.z", p.Customer.Email)
}

func TestLegacyAndCurrentPayloadsBuildTheSameEnvelope(t *testing.T) {
	legacy := decodePayload(t, `{
		"productType": "early_bird_discount",
		"paymentMethod": "PAYPAL",
		"email": "a@b.co",
		"amount": "5",
		"shipping": {"country": "US", "firstName": "Ann", "lastName": "Lee"}
	}`)
	current := decodePayload(t, `{
		"payment_type": "reserve_vip_spot",
		"payment_method": "paypal",
		"amount": "5",
		"currency": "USD",
		"customer": {"email": "a@b.co", "firstName": "Ann", "lastName": "Lee"},
		"shipping": {"country": "US", "countryName": "United States", "firstName": "Ann", "lastName": "Lee"}
	}`)

	a, err := BuildEnvelope(Normalize(legacy, "https://shop"))
	require.NoError(t, err)
	b, err := BuildEnvelope(Normalize(current, "https://shop"))
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, string(jb), string(ja))
}

func TestMethodIsLowercased(t *testing.T) {
	for _, in := range []string{"PayPal", "PAYPAL", "paypal"} {
		t.Run(in, func(t *testing.T) {
			r := Normalize(decodePayload(t, `{"paymentMethod": "`+in+`"}`), "")
			assert.Equal(t, MethodPayPal, r.PaymentMethod)
		})
	}
}

func TestLegacyAndCurrentFailAlikeWithoutShipping(t *testing.T) {
	legacy := Normalize(decodePayload(t, `{
		"productType": "early_bird_discount", "email": "a@b.com", "paymentMethod": "Paypal", "amount": 10
	}`), "")
	current := Normalize(decodePayload(t, `{
		"payment_type": "reserve_vip_spot", "customer": {"email": "a@b.com"}, "payment_method": "paypal", "amount": 10
	}`), "")

	for _, r := range []*Request{legacy, current} {
		verr, ok := AsValidationError(Validate(r))
		require.True(t, ok)
		assert.Equal(t, MsgShippingRequired, verr.Reason)
	}
}
