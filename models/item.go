package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Item is a catalog entry the contractor picks from when adding line items.
// UnitPrice is stored, not derived on read: every write path recomputes it
// from Cost and MarkupPercent so the column cannot drift.
type Item struct {
	Id            string  `json:"id" gorm:"primaryKey"`
	Name          string  `json:"name" gorm:"not null"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Unit          string  `json:"unit"` // e.g. "hour", "sqft", "each"
	Cost          float64 `json:"cost" gorm:"type:numeric(12,2)"`
	MarkupPercent float64 `json:"markup_percent"`
	UnitPrice     float64 `json:"unit_price" gorm:"type:numeric(12,2)"`
	Active        bool    `json:"active" gorm:"default:true"`
}

func (item *Item) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	item.Id = uuid.NewString()
	return
}
