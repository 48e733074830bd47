package payment

import "errors"

// ValidationError reports the first failed check on a Request. Reason is
// both the machine-readable code and the message key.
type ValidationError struct {
	Reason Key
}

func (e *ValidationError) Error() string {
	return "invalid payment request: " + string(e.Reason)
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var verr *ValidationError
	ok := errors.As(err, &verr)
	return verr, ok
}

var (
	supportedMethods = map[string]bool{MethodPayPal: true, MethodCard: true, MethodPayoneer: true}
	supportedTypes   = map[string]bool{TypeReserveVIP: true, TypeRegular: true}
)

// IsSupportedMethod reports whether m is one of paypal, card or payoneer.
func IsSupportedMethod(m string) bool {
	return supportedMethods[m]
}

// IsSupportedType reports whether t is reserve_vip_spot or regular_payment.
func IsSupportedType(t string) bool {
	return supportedTypes[t]
}

// Validate runs the checks in fixed order and stops at the first failure.
func Validate(r *Request) error {
	return validate(r, true)
}

// ValidateCheckout is Validate without the shipping requirement, for
// providers that collect the address themselves.
func ValidateCheckout(r *Request) error {
	return validate(r, false)
}

func validate(r *Request, requireShipping bool) error {
	fail := func(k Key) error { return &ValidationError{Reason: k} }

	switch {
	case r.Customer == nil || r.Customer.Email == "":
		return fail(MsgEmailRequired)
	case r.PaymentMethod == "":
		return fail(MsgPaymentMethodRequired)
	case r.Amount.Missing():
		return fail(MsgAmountRequired)
	case r.PaymentType == "":
		return fail(MsgPaymentTypeRequired)
	case requireShipping && r.Shipping == nil:
		return fail(MsgShippingRequired)
	case !supportedMethods[r.PaymentMethod]:
		return fail(MsgInvalidPaymentMethod)
	case !supportedTypes[r.PaymentType]:
		return fail(MsgInvalidPaymentType)
	case r.PaymentMethod == MethodCard && r.PaymentSource == nil:
		return fail(MsgPaymentSourceRequired)
	}
	return nil
}
