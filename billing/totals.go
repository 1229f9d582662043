package billing

import (
	"errors"

	"contractorhub-backend/utils"
)

// DefaultTaxRate is used when a tenant has no settings row yet.
const DefaultTaxRate = 0.10

var (
	ErrEmptyDescription = errors.New("line item description is required")
	ErrNonPositiveQty   = errors.New("line item quantity must be positive")
	ErrNegativePrice    = errors.New("line item unit price must not be negative")
	ErrNoLineItems      = errors.New("document needs at least one line item")
)

// Line is one billable row, shared by bids and invoices.
type Line struct {
	Description string
	Quantity    float64 // fractional allowed (e.g. 1.5 hours)
	UnitPrice   float64
	Section     string
}

// Totals is the result of pricing a set of lines.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// LineTotal prices one line: round2(quantity * unitPrice).
func LineTotal(l Line) float64 {
	return utils.Round2(l.Quantity * l.UnitPrice)
}

// Compute prices a document. rate is a fraction (0.10 = 10%) taken from the
// tenant's BusinessSettings; both bids and invoices go through this one
// function so the math cannot diverge between the two.
func Compute(lines []Line, rate float64) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += LineTotal(l)
	}
	subtotal = utils.Round2(subtotal)
	tax := utils.Round2(subtotal * rate)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    utils.Round2(subtotal + tax),
	}
}

// ValidateLines rejects a line set before anything is written.
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrNoLineItems
	}
	for _, l := range lines {
		if err := ValidateLine(l); err != nil {
			return err
		}
	}
	return nil
}

func ValidateLine(l Line) error {
	if l.Description == "" {
		return ErrEmptyDescription
	}
	if l.Quantity <= 0 {
		return ErrNonPositiveQty
	}
	if l.UnitPrice < 0 {
		return ErrNegativePrice
	}
	return nil
}

// CatalogPrice derives a catalog item's unit price from its cost and markup
// percentage. The stored price column is always written through this.
func CatalogPrice(cost, markupPercent float64) float64 {
	return utils.Round2(cost * (1 + markupPercent/100))
}
