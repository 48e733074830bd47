package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is a checkout amount as the browser sent it: either a JSON number
// or a string. The original text is kept so it can be forwarded unchanged.
type Amount struct {
	raw    string
	number bool
	set    bool
}

// NewAmount builds an Amount from its string form.
func NewAmount(s string) Amount {
	return Amount{raw: s, set: true}
}

// NewNumberAmount builds an Amount as if it had been sent as a JSON number.
func NewNumberAmount(d decimal.Decimal) Amount {
	return Amount{raw: d.String(), number: true, set: true}
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*a = Amount{}
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount{raw: s, set: true}
	default:
		if _, err := decimal.NewFromString(string(b)); err != nil {
			return fmt.Errorf("amount: %w", err)
		}
		*a = Amount{raw: string(b), number: true, set: true}
	}
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// Missing reports whether the amount is absent or empty. A numeric zero
// counts as missing; the string "0" does not.
func (a Amount) Missing() bool {
	if !a.set || a.raw == "" {
		return true
	}
	if a.number {
		d, err := decimal.NewFromString(a.raw)
		return err == nil && d.IsZero()
	}
	return false
}

// String renders numbers in their shortest form ("10.50" becomes "10.5")
// and returns strings untouched.
func (a Amount) String() string {
	if a.number {
		if d, err := decimal.NewFromString(a.raw); err == nil {
			return d.String()
		}
	}
	return a.raw
}

// Decimal parses the amount.
func (a Amount) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(a.raw)
}

// Fixed2 formats the amount with exactly two decimals, the way PayPal and
// Payoneer want it. Unparseable amounts are returned as sent.
func (a Amount) Fixed2() string {
	d, err := a.Decimal()
	if err != nil {
		return a.raw
	}
	return d.StringFixed(2)
}

// Float is used for metrics only.
func (a Amount) Float() float64 {
	d, err := a.Decimal()
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
