package models

import "encoding/json"

// PaymentPayload is the inbound checkout body. It carries both the legacy
// flat field names and the current nested ones; payment.Normalize folds them
// into a single canonical request.
type PaymentPayload struct {
	PaymentType    string          `json:"payment_type"`
	PaymentMethod  string          `json:"payment_method"`
	Amount         Amount          `json:"amount"`
	Currency       string          `json:"currency"`
	Customer       *Customer       `json:"customer"`
	Shipping       *Shipping       `json:"shipping"`
	BillingAddress map[string]any  `json:"billing_address"`
	PaymentSource  map[string]any  `json:"payment_source"`
	CouponCode     string          `json:"coupon_code"`
	Items          json.RawMessage `json:"items"`
	ReturnURL      string          `json:"return_url"`
	CancelURL      string          `json:"cancel_url"`
	Language       string          `json:"language"`

	// Legacy names
	Email             string `json:"email"`
	LegacyMethod      string `json:"paymentMethod"`
	LegacyProductType string `json:"productType"`
}

// Customer identifies the buyer
type Customer struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// Shipping is the delivery address in the shape the order backend accepts.
// Unknown keys sent by the browser are dropped when decoding into it.
type Shipping struct {
	Country     string `json:"country,omitempty"`
	CountryName string `json:"countryName,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	ZipCode     string `json:"zipCode,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

// Money is an amount in a currency as PayPal and the backend expect it
type Money struct {
	CurrencyCode string `json:"currency_code"`
	Value        string `json:"value"`
}

// Item is a purchase line item
type Item struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitAmount  Money  `json:"unit_amount"`
	Category    string `json:"category,omitempty"`
}

// CaptureRequest asks for a previously approved order to be captured
type CaptureRequest struct {
	OrderID         string `json:"order_id" binding:"required"`
	PayerID         string `json:"payer_id,omitempty"`
	InternalOrderID string `json:"internal_order_id,omitempty"`
}

// CouponRequest is forwarded verbatim to the backend
type CouponRequest struct {
	CouponCode    string `json:"coupon_code" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required"`
}

// SubscribeRequest is a mailing list signup
type SubscribeRequest struct {
	Email    string `json:"email" binding:"required"`
	Language string `json:"language"`
}

// PaymentResponse is returned when the backend accepted a checkout
type PaymentResponse struct {
	Success         bool            `json:"success"`
	Message         string          `json:"message,omitempty"`
	OrderID         string          `json:"order_id,omitempty"`
	InternalOrderID string          `json:"internal_order_id,omitempty"`
	ApprovalURL     string          `json:"approval_url,omitempty"`
	CheckoutID      string          `json:"checkout_id,omitempty"`
	Data            json.RawMessage `json:"data,omitempty"`
}

// ErrorResponse is the single failure envelope used by every endpoint.
// Message always comes from the localized bundle or a structured upstream
// message; raw upstream payloads only ever appear under Error.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
	Error   any    `json:"error,omitempty"`
}

// MessageResponse is a plain success acknowledgement
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
