package models

import "encoding/json"

// PayoneerCheckoutRequest creates a hosted checkout session
type PayoneerCheckoutRequest struct {
	ProgramID     string           `json:"program_id"`
	TransactionID string           `json:"transaction_id"`
	Amount        string           `json:"amount"`
	Currency      string           `json:"currency"`
	Description   string           `json:"description"`
	Customer      PayoneerCustomer `json:"customer"`
	CallbackURL   string           `json:"callback_url"`
	CancelURL     string           `json:"cancel_url"`
	Metadata      PayoneerMetadata `json:"metadata"`
}

type PayoneerCustomer struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type PayoneerMetadata struct {
	PaymentType   string `json:"payment_type"`
	CustomerEmail string `json:"customer_email"`
}

// PayoneerSession is the subset of the session response we read; the
// provider has used both naming styles for id and URL.
type PayoneerSession struct {
	ID          string `json:"id"`
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
	PaymentURL  string `json:"payment_url"`
	Status      string `json:"status"`
}

// PayoneerCheckoutResult is returned to the browser
type PayoneerCheckoutResult struct {
	Success     bool            `json:"success"`
	CheckoutID  string          `json:"checkout_id"`
	CheckoutURL string          `json:"checkout_url"`
	Status      string          `json:"status,omitempty"`
	Data        json.RawMessage `json:"data"`
}
