package payment

import (
	"encoding/json"
	"strings"

	"checkout-gateway/models"
)

const (
	TypeReserveVIP = "reserve_vip_spot"
	TypeRegular    = "regular_payment"

	MethodPayPal   = "paypal"
	MethodCard     = "card"
	MethodPayoneer = "payoneer"

	DefaultCurrency = "USD"

	legacyPreOrder     = "pre_order"
	legacyEarlyBirdSKU = "early_bird_discount"
)

// Request is the canonical checkout request every inbound payload variant
// is folded into before validation and dispatch.
type Request struct {
	PaymentType    string
	PaymentMethod  string
	Amount         models.Amount
	Currency       string
	Customer       *models.Customer
	Shipping       *models.Shipping
	BillingAddress map[string]any
	PaymentSource  map[string]any
	CouponCode     string
	Items          json.RawMessage
	ReturnURL      string
	CancelURL      string
	Origin         string
	Language       Language
}

// Normalize resolves legacy aliases and fills defaults. It never fails;
// anything missing stays empty and is reported by Validate.
func Normalize(p *models.PaymentPayload, origin string) *Request {
	origin = strings.TrimRight(origin, "/")

	r := &Request{
		PaymentType:    resolvePaymentType(p),
		PaymentMethod:  resolvePaymentMethod(p),
		Amount:         p.Amount,
		Currency:       strings.ToUpper(strings.TrimSpace(p.Currency)),
		Shipping:       filterShipping(p.Shipping),
		BillingAddress: p.BillingAddress,
		PaymentSource:  p.PaymentSource,
		CouponCode:     strings.TrimSpace(p.CouponCode),
		Items:          p.Items,
		ReturnURL:      p.ReturnURL,
		CancelURL:      p.CancelURL,
		Origin:         origin,
		Language:       ParseLanguage(p.Language),
	}

	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	if r.ReturnURL == "" {
		r.ReturnURL = origin + "/payment/success"
	}
	if r.CancelURL == "" {
		r.CancelURL = origin + "/payment/cancel"
	}

	if p.Customer != nil {
		c := *p.Customer
		r.Customer = &c
	} else {
		r.Customer = &models.Customer{Email: p.Email}
		if p.Shipping != nil {
			r.Customer.FirstName = p.Shipping.FirstName
			r.Customer.LastName = p.Shipping.LastName
		}
	}

	return r
}

func resolvePaymentType(p *models.PaymentPayload) string {
	switch {
	case p.PaymentType == legacyPreOrder:
		return TypeReserveVIP
	case p.PaymentType != "":
		return p.PaymentType
	case p.LegacyProductType == legacyEarlyBirdSKU:
		return TypeReserveVIP
	default:
		return TypeRegular
	}
}

func resolvePaymentMethod(p *models.PaymentPayload) string {
	if p.PaymentMethod != "" {
		return strings.ToLower(p.PaymentMethod)
	}
	return strings.ToLower(p.LegacyMethod)
}

// filterShipping keeps exactly the fields the order backend accepts and
// mirrors country into countryName.
func filterShipping(s *models.Shipping) *models.Shipping {
	if s == nil {
		return nil
	}
	return &models.Shipping{
		Country:     s.Country,
		CountryName: s.Country,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Address:     s.Address,
		City:        s.City,
		State:       s.State,
		ZipCode:     s.ZipCode,
		Phone:       s.Phone,
	}
}

// hasItems reports whether the caller supplied items at all. An empty array
// counts and is forwarded as sent.
func (r *Request) hasItems() bool {
	s := strings.TrimSpace(string(r.Items))
	return s != "" && s != "null"
}
