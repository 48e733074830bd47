package models

import "encoding/json"

// PayPal Orders API v2 shapes. Only the fields this service reads or writes
// are modelled; whole responses are also kept raw and echoed to the caller.

type PayPalOrderRequest struct {
	Intent             string                   `json:"intent"`
	PurchaseUnits      []PayPalPurchaseUnit     `json:"purchase_units"`
	ApplicationContext PayPalApplicationContext `json:"application_context"`
	Payer              PayPalPayer              `json:"payer"`
}

type PayPalPurchaseUnit struct {
	ReferenceID    string          `json:"reference_id"`
	Description    string          `json:"description"`
	CustomID       string          `json:"custom_id"`
	SoftDescriptor string          `json:"soft_descriptor"`
	Amount         PayPalAmount    `json:"amount"`
	Items          json.RawMessage `json:"items"`
	Shipping       PayPalShipping  `json:"shipping"`
}

type PayPalAmount struct {
	CurrencyCode string          `json:"currency_code"`
	Value        string          `json:"value"`
	Breakdown    PayPalBreakdown `json:"breakdown"`
}

type PayPalBreakdown struct {
	ItemTotal Money `json:"item_total"`
}

type PayPalShipping struct {
	Method  string        `json:"method"`
	Name    PayPalName    `json:"name"`
	Address PayPalAddress `json:"address"`
}

type PayPalName struct {
	FullName  string `json:"full_name,omitempty"`
	GivenName string `json:"given_name,omitempty"`
	Surname   string `json:"surname,omitempty"`
}

type PayPalAddress struct {
	AddressLine1 string `json:"address_line_1"`
	AddressLine2 string `json:"address_line_2"`
	AdminArea2   string `json:"admin_area_2"`
	AdminArea1   string `json:"admin_area_1"`
	PostalCode   string `json:"postal_code"`
	CountryCode  string `json:"country_code"`
}

type PayPalApplicationContext struct {
	BrandName          string `json:"brand_name"`
	Locale             string `json:"locale"`
	LandingPage        string `json:"landing_page"`
	ShippingPreference string `json:"shipping_preference"`
	UserAction         string `json:"user_action"`
	ReturnURL          string `json:"return_url"`
	CancelURL          string `json:"cancel_url"`
}

type PayPalPayer struct {
	EmailAddress string     `json:"email_address"`
	Name         PayPalName `json:"name"`
}

type PayPalLink struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

// PayPalOrder is the part of an order/capture response we inspect
type PayPalOrder struct {
	ID            string            `json:"id"`
	Status        string            `json:"status"`
	Links         []PayPalLink      `json:"links"`
	Payer         *PayPalOrderPayer `json:"payer"`
	PurchaseUnits []struct {
		Payments *struct {
			Captures []PayPalCapture `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

type PayPalOrderPayer struct {
	EmailAddress string          `json:"email_address"`
	PayerID      string          `json:"payer_id"`
	Name         json.RawMessage `json:"name,omitempty"`
}

type PayPalCapture struct {
	ID     string          `json:"id"`
	Status string          `json:"status"`
	Amount json.RawMessage `json:"amount,omitempty"`
}

// PayPalOrderResult is returned to the browser after order creation
type PayPalOrderResult struct {
	Success     bool            `json:"success"`
	OrderID     string          `json:"order_id"`
	Status      string          `json:"status"`
	ApprovalURL string          `json:"approval_url,omitempty"`
	Order       json.RawMessage `json:"order"`
}

// PayPalCaptureResult is returned to the browser after a capture
type PayPalCaptureResult struct {
	Success bool            `json:"success"`
	OrderID string          `json:"order_id"`
	Status  string          `json:"status"`
	Payer   CapturePayer    `json:"payer"`
	Capture PayPalCapture   `json:"capture"`
	Order   json.RawMessage `json:"order"`
}

type CapturePayer struct {
	Email   string          `json:"email,omitempty"`
	PayerID string          `json:"payer_id,omitempty"`
	Name    json.RawMessage `json:"name,omitempty"`
}
