package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkout-gateway/models"
)

func validRequest() *Request {
	return &Request{
		PaymentType:   TypeReserveVIP,
		PaymentMethod: MethodPayPal,
		Amount:        models.NewAmount("5"),
		Currency:      DefaultCurrency,
		Customer:      &models.Customer{Email: "a@b.co"},
		Shipping:      &models.Shipping{Country: "US"},
	}
}

func TestValidateOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
		want   Key
	}{
		{name: "email first", mutate: func(r *Request) {
			r.Customer = nil
			r.PaymentMethod = ""
			r.Amount = models.Amount{}
		}, want: MsgEmailRequired},
		{name: "method before amount", mutate: func(r *Request) {
			r.PaymentMethod = ""
			r.Amount = models.Amount{}
		}, want: MsgPaymentMethodRequired},
		{name: "amount before type", mutate: func(r *Request) {
			r.Amount = models.Amount{}
			r.PaymentType = ""
		}, want: MsgAmountRequired},
		{name: "type before shipping", mutate: func(r *Request) {
			r.PaymentType = ""
			r.Shipping = nil
		}, want: MsgPaymentTypeRequired},
		{name: "shipping before enum checks", mutate: func(r *Request) {
			r.Shipping = nil
			r.PaymentMethod = "bitcoin"
		}, want: MsgShippingRequired},
		{name: "unsupported method", mutate: func(r *Request) {
			r.PaymentMethod = "bitcoin"
			r.PaymentType = "gift"
		}, want: MsgInvalidPaymentMethod},
		{name: "unsupported type", mutate: func(r *Request) {
			r.PaymentType = "gift"
		}, want: MsgInvalidPaymentType},
		{name: "card without source", mutate: func(r *Request) {
			r.PaymentMethod = MethodCard
		}, want: MsgPaymentSourceRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRequest()
			tt.mutate(r)

			verr, ok := AsValidationError(Validate(r))
			require.True(t, ok)
			assert.Equal(t, tt.want, verr.Reason)
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	assert.NoError(t, Validate(validRequest()))

	card := validRequest()
	card.PaymentMethod = MethodCard
	card.PaymentSource = map[string]any{}
	assert.NoError(t, Validate(card))
}

func TestValidateCheckoutSkipsShipping(t *testing.T) {
	r := validRequest()
	r.Shipping = nil
	r.PaymentMethod = MethodPayoneer

	assert.NoError(t, ValidateCheckout(r))
	verr, ok := AsValidationError(Validate(r))
	require.True(t, ok)
	assert.Equal(t, MsgShippingRequired, verr.Reason)
}

func TestMessageFallsBackToEnglish(t *testing.T) {
	assert.Equal(t, Message(English, MsgEmailRequired), Message(Language("fr"), MsgEmailRequired))
	assert.NotEqual(t, Message(English, MsgEmailRequired), Message(Chinese, MsgEmailRequired))
	assert.Equal(t, English, ParseLanguage("de"))
}
