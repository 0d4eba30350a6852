package order

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Card is one payment attempt's card details as submitted by the client.
// The storefront uses synthetic validation rules, not a real PSP.
type Card struct {
	Number string
	Name   string
	Month  string
	Year   string
	Code   string
}

// Payment is a recorded payment attempt for an order. One order may
// accumulate several attempts; a valid one marks the order paid.
type Payment struct {
	ID        string
	OrderID   string
	Number    string
	Name      string
	Month     string
	Year      string
	Code      string
	CreatedAt time.Time
}

// Validate checks the card fields and collects every failure per field.
// Rules: the number is 1-8 digits, even-valued and must not end in zero;
// month is two digits in 1..12; year four digits; code three digits.
func (c Card) Validate() map[string]string {
	fields := make(map[string]string)

	switch {
	case !isDigits(c.Number):
		fields["number"] = "the number must contain only digits"
	case len(c.Number) > 8:
		fields["number"] = "the number must not be longer than 8 digits"
	case c.Number[len(c.Number)-1] == '0':
		fields["number"] = "the number must not end with zero"
	default:
		if n, err := strconv.ParseInt(c.Number, 10, 64); err != nil || n%2 != 0 {
			fields["number"] = "the number must be even"
		}
	}

	if c.Name == "" {
		fields["name"] = "the cardholder name is required"
	}

	switch {
	case !isDigits(c.Month):
		fields["month"] = "the month must contain only digits"
	case len(c.Month) != 2:
		fields["month"] = "the month must be 2 digits"
	default:
		if m, _ := strconv.Atoi(c.Month); m < 1 || m > 12 {
			fields["month"] = "the month must be between 01 and 12"
		}
	}

	switch {
	case !isDigits(c.Year):
		fields["year"] = "the year must contain only digits"
	case len(c.Year) != 4:
		fields["year"] = "the year must be 4 digits"
	}

	switch {
	case !isDigits(c.Code):
		fields["code"] = "the code must contain only digits"
	case len(c.Code) != 3:
		fields["code"] = "the code must be 3 digits"
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// NewPayment records a validated payment attempt for an order.
func NewPayment(orderID string, card Card) (*Payment, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, err
	}
	return &Payment{
		ID:        id.String(),
		OrderID:   orderID,
		Number:    card.Number,
		Name:      card.Name,
		Month:     card.Month,
		Year:      card.Year,
		Code:      card.Code,
		CreatedAt: time.Now(),
	}, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
