package payment

import (
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"time"

	"checkout-gateway/models"
)

const (
	brandName      = "Unicorn Blocks"
	softDescriptor = "UNICORN_BLOCKS"

	vipItemName     = "VIP Spot Reservation"
	regularItemName = "Unicorn Blocks"

	vipDescription         = "Unicorn Blocks VIP Spot Reservation - $5 deposit for $129 VIP price (Retail: $199)"
	vipCheckoutDescription = "Unicorn Blocks VIP Spot Reservation - $5 deposit"
	regularDescription     = "Unicorn Blocks Purchase"

	defaultCountry = "US"
)

// Envelope is the provider-neutral body sent to the order backend.
type Envelope struct {
	PaymentType    string           `json:"payment_type"`
	Amount         string           `json:"amount"`
	Currency       string           `json:"currency"`
	Customer       *models.Customer `json:"customer"`
	Shipping       *models.Shipping `json:"shipping,omitempty"`
	Language       Language         `json:"language"`
	ReturnURL      string           `json:"return_url"`
	CancelURL      string           `json:"cancel_url"`
	Items          json.RawMessage  `json:"items"`
	CouponCode     string           `json:"coupon_code,omitempty"`
	PaymentSource  map[string]any   `json:"payment_source,omitempty"`
	BillingAddress map[string]any   `json:"billing_address,omitempty"`
}

// Description is the order description shown by the provider.
func Description(paymentType string) string {
	if paymentType == TypeReserveVIP {
		return vipDescription
	}
	return regularDescription
}

// DefaultItems synthesizes the single line item used when the caller sent
// none. value is the unit price as it should appear on the wire.
func DefaultItems(paymentType, currency, value string) []models.Item {
	name := regularItemName
	if paymentType == TypeReserveVIP {
		name = vipItemName
	}
	return []models.Item{{
		Name:        name,
		Description: Description(paymentType),
		Quantity:    "1",
		UnitAmount:  models.Money{CurrencyCode: currency, Value: value},
	}}
}

// BuildEnvelope shapes a validated request for the order backend. It does
// no I/O.
func BuildEnvelope(r *Request) (*Envelope, error) {
	env := &Envelope{
		PaymentType: r.PaymentType,
		Amount:      r.Amount.String(),
		Currency:    r.Currency,
		Customer:    r.Customer,
		Shipping:    r.Shipping,
		Language:    r.Language,
		ReturnURL:   r.ReturnURL,
		CancelURL:   r.CancelURL,
	}

	items, err := r.itemsOr(DefaultItems(r.PaymentType, r.Currency, r.Amount.String()))
	if err != nil {
		return nil, err
	}
	env.Items = items

	if r.PaymentType == TypeRegular && r.CouponCode != "" {
		env.CouponCode = r.CouponCode
	}

	if r.PaymentMethod == MethodCard {
		if r.PaymentSource == nil {
			return nil, &ValidationError{Reason: MsgPaymentSourceRequired}
		}
		env.PaymentSource = ReshapePaymentSource(r.PaymentSource)
		env.BillingAddress = r.BillingAddress
	}

	return env, nil
}

func (r *Request) itemsOr(fallback []models.Item) (json.RawMessage, error) {
	if r.hasItems() {
		return r.Items, nil
	}
	b, err := json.Marshal(fallback)
	if err != nil {
		return nil, fmt.Errorf("encode default items: %w", err)
	}
	return b, nil
}

// ReshapePaymentSource returns a copy of src whose card block carries a
// single "YYYY-MM" expiry and a security_code instead of cvv. Fields the
// caller already supplied in the new form win. src is not modified.
func ReshapePaymentSource(src map[string]any) map[string]any {
	out := maps.Clone(src)

	card, ok := src["card"].(map[string]any)
	if !ok {
		return out
	}
	card = maps.Clone(card)

	if _, has := card["expiry"]; !has {
		month, okM := scalarString(card["exp_month"])
		year, okY := scalarString(card["exp_year"])
		if okM && okY {
			if len(month) == 1 {
				month = "0" + month
			}
			card["expiry"] = year + "-" + month
			delete(card, "exp_month")
			delete(card, "exp_year")
		}
	}

	if _, has := card["security_code"]; !has {
		if cvv, ok := card["cvv"]; ok {
			card["security_code"] = cvv
			delete(card, "cvv")
		}
	}

	out["card"] = card
	return out
}

func scalarString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	default:
		return "", false
	}
}

// BuildPayPalOrder builds an Orders API v2 create-order body. Shipping must
// be present; Validate guarantees it.
func BuildPayPalOrder(r *Request, now time.Time) (*models.PayPalOrderRequest, error) {
	value := r.Amount.Fixed2()
	description := Description(r.PaymentType)

	defaults := DefaultItems(r.PaymentType, r.Currency, value)
	for i := range defaults {
		defaults[i].Category = "PHYSICAL_GOODS"
	}
	items, err := r.itemsOr(defaults)
	if err != nil {
		return nil, err
	}

	ship := r.Shipping
	if ship == nil {
		ship = &models.Shipping{}
	}
	country := ship.Country
	if country == "" {
		country = defaultCountry
	}

	givenName, surname := r.Customer.FirstName, r.Customer.LastName
	if givenName == "" {
		givenName = ship.FirstName
	}
	if surname == "" {
		surname = ship.LastName
	}

	locale := "en-US"
	if r.Language == Chinese {
		locale = "zh-CN"
	}

	return &models.PayPalOrderRequest{
		Intent: "CAPTURE",
		PurchaseUnits: []models.PayPalPurchaseUnit{{
			ReferenceID:    fmt.Sprintf("%s_%d", r.PaymentType, now.UnixMilli()),
			Description:    description,
			CustomID:       r.Customer.Email,
			SoftDescriptor: softDescriptor,
			Amount: models.PayPalAmount{
				CurrencyCode: r.Currency,
				Value:        value,
				Breakdown: models.PayPalBreakdown{
					ItemTotal: models.Money{CurrencyCode: r.Currency, Value: value},
				},
			},
			Items: items,
			Shipping: models.PayPalShipping{
				Method: "Standard Shipping",
				Name:   models.PayPalName{FullName: ship.FirstName + " " + ship.LastName},
				Address: models.PayPalAddress{
					AddressLine1: ship.Address,
					AdminArea2:   ship.City,
					AdminArea1:   ship.State,
					PostalCode:   ship.ZipCode,
					CountryCode:  country,
				},
			},
		}},
		ApplicationContext: models.PayPalApplicationContext{
			BrandName:          brandName,
			Locale:             locale,
			LandingPage:        "BILLING",
			ShippingPreference: "SET_PROVIDED_ADDRESS",
			UserAction:         "PAY_NOW",
			ReturnURL:          r.ReturnURL,
			CancelURL:          r.CancelURL,
		},
		Payer: models.PayPalPayer{
			EmailAddress: r.Customer.Email,
			Name:         models.PayPalName{GivenName: givenName, Surname: surname},
		},
	}, nil
}

// BuildPayoneerCheckout builds a Payoneer checkout-session body.
func BuildPayoneerCheckout(r *Request, programID string, now time.Time) *models.PayoneerCheckoutRequest {
	description := regularDescription
	if r.PaymentType == TypeReserveVIP {
		description = vipCheckoutDescription
	}

	customer := models.PayoneerCustomer{
		Email:     r.Customer.Email,
		FirstName: r.Customer.FirstName,
		LastName:  r.Customer.LastName,
	}
	if r.Shipping != nil {
		if customer.FirstName == "" {
			customer.FirstName = r.Shipping.FirstName
		}
		if customer.LastName == "" {
			customer.LastName = r.Shipping.LastName
		}
	}

	return &models.PayoneerCheckoutRequest{
		ProgramID:     programID,
		TransactionID: fmt.Sprintf("%s_%d", r.PaymentType, now.UnixMilli()),
		Amount:        r.Amount.Fixed2(),
		Currency:      r.Currency,
		Description:   description,
		Customer:      customer,
		CallbackURL:   r.ReturnURL,
		CancelURL:     r.CancelURL,
		Metadata: models.PayoneerMetadata{
			PaymentType:   r.PaymentType,
			CustomerEmail: r.Customer.Email,
		},
	}
}
