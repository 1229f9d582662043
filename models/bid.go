package models

import "time"

// Bid is a pre-work proposal; on acceptance it spawns an Invoice that copies
// its line items.
type Bid struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	BidNumber string  `json:"bid_number" gorm:"unique;not null"`
	PId       uint    `json:"-" gorm:"index"`
	Project   Project `json:"project" gorm:"foreignKey:PId;references:Id"`
	CId       uint    `json:"-"`
	Client    Client  `json:"client" gorm:"foreignKey:CId;references:Id"`
	Title     string  `json:"title" gorm:"not null"`

	Items    []BidLineItem `json:"line_items" gorm:"foreignKey:BidID;constraint:OnDelete:CASCADE"`
	Subtotal float64       `json:"subtotal" gorm:"type:numeric(12,2)"`
	TaxTotal float64       `json:"tax_total" gorm:"type:numeric(12,2)"`
	Total    float64       `json:"total" gorm:"type:numeric(12,2)"`

	Status     string     `json:"status" gorm:"type:varchar(20);default:draft"`
	ValidUntil *time.Time `json:"valid_until"`
	SentAt     *time.Time `json:"sent_at"`
	ViewedAt   *time.Time `json:"viewed_at"`
	DecidedAt  *time.Time `json:"decided_at"` // accepted or rejected

	CreatedAt time.Time `json:"created_at"`
}

type BidLineItem struct {
	ID          uint    `json:"id" gorm:"primaryKey"`
	BidID       uint    `json:"-" gorm:"index"`
	ItemID      *string `json:"item_id" gorm:"index"` // optional catalog ref
	Item        *Item   `json:"-" gorm:"foreignKey:ItemID;references:Id;constraint:OnUpdate:RESTRICT,OnDelete:RESTRICT"`
	Description string  `json:"description" gorm:"not null"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	TotalPrice  float64 `json:"total_price" gorm:"type:numeric(12,2)"`
	Section     string  `json:"section"`
	SortOrder   int     `json:"sort_order"`
}
