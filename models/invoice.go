package models

import "time"

// Invoice is the current/live state of a billing document.
type Invoice struct {
	ID            uint    `json:"id" gorm:"primaryKey"`
	InvoiceNumber string  `json:"invoice_number" gorm:"unique;not null"`
	PId           uint    `json:"-" gorm:"index"`
	Project       Project `json:"project" gorm:"foreignKey:PId;references:Id"`
	CId           uint    `json:"-"`
	Client        Client  `json:"client" gorm:"foreignKey:CId;references:Id"`
	BidID         *uint   `json:"bid_id"` // set when spawned from an accepted bid
	Title         string  `json:"title" gorm:"not null"`

	Items    []InvoiceLineItem `json:"line_items" gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Subtotal float64           `json:"subtotal" gorm:"type:numeric(12,2)"`
	TaxTotal float64           `json:"tax_total" gorm:"type:numeric(12,2)"`
	Total    float64           `json:"total" gorm:"type:numeric(12,2)"`

	Status string `json:"status" gorm:"type:varchar(20);default:draft"`

	// Payments rollup, recomputed from persisted rows on every completed payment.
	PaidTotal float64 `json:"paid_total" gorm:"type:numeric(12,2)"`

	DueDate  *time.Time `json:"due_date"`
	SentAt   *time.Time `json:"sent_at"`
	ViewedAt *time.Time `json:"viewed_at"`
	PaidAt   *time.Time `json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`
}

type InvoiceLineItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	InvoiceID   uint    `json:"-" gorm:"index"`
	ItemID      *string `json:"item_id" gorm:"index"`
	Item        *Item   `json:"-" gorm:"foreignKey:ItemID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Description string  `json:"description" gorm:"not null"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	TotalPrice  float64 `json:"total_price" gorm:"type:numeric(12,2)"`
	Section     string  `json:"section"`
	SortOrder   int     `json:"sort_order"`
}
