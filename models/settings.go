package models

// BusinessSettings is a singleton per tenant, seeded at migration. The totals
// calculator reads DefaultTaxRate from here instead of hardcoding a rate.
type BusinessSettings struct {
	ID              uint    `json:"id" gorm:"primaryKey"`
	DefaultTaxRate  float64 `json:"default_tax_rate" gorm:"default:0.10"` // fraction, e.g. 0.10
	PaymentTermDays int     `json:"payment_term_days" gorm:"default:30"`
	Currency        string  `json:"currency" gorm:"type:varchar(3);default:USD"`
}
