package controllers

import (
	"encoding/json"

	"contractorhub-backend/billing"
	"contractorhub-backend/models"
	"contractorhub-backend/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LineItemInput is the wire shape for one billable row, shared by bids and
// invoices.
type LineItemInput struct {
	ItemID      *string `json:"item_id" validate:"omitempty,uuid4"`
	Description string  `json:"description" validate:"required,min=1"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
	Section     string  `json:"section" validate:"omitempty"`
}

func toBillingLines(inputs []LineItemInput) []billing.Line {
	lines := make([]billing.Line, len(inputs))
	for i, in := range inputs {
		lines[i] = billing.Line{
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   utils.Round2(in.UnitPrice),
			Section:     in.Section,
		}
	}
	return lines
}

// loadSettings returns the tenant's settings row, falling back to defaults
// when the singleton is missing (fresh schema mid-migration).
func loadSettings(db *gorm.DB) models.BusinessSettings {
	var s models.BusinessSettings
	if err := db.First(&s).Error; err != nil {
		return models.BusinessSettings{
			DefaultTaxRate:  billing.DefaultTaxRate,
			PaymentTermDays: 30,
			Currency:        "USD",
		}
	}
	return s
}

// snapshotDocument stores an immutable jsonb copy of a bid or invoice,
// numbered sequentially per document.
func snapshotDocument(db *gorm.DB, kind string, docID uint, doc any) error {
	blob, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	var last int
	row := db.Model(&models.DocumentVersion{}).
		Where("kind = ? AND document_id = ?", kind, docID).
		Select("COALESCE(MAX(version_no), 0)")
	if err := row.Scan(&last).Error; err != nil {
		return err
	}

	return db.Create(&models.DocumentVersion{
		Kind:       kind,
		DocumentID: docID,
		VersionNo:  last + 1,
		Snapshot:   datatypes.JSON(blob),
	}).Error
}

// nextBidNumber picks the next bid number inside the request TX; the unique
// index on bid_number catches concurrent winners. The numeric suffix is
// compared as an integer so BID-10000 sorts after BID-9999.
func nextBidNumber(db *gorm.DB) (string, error) {
	var highest int
	row := db.Model(&models.Bid{}).
		Select(`COALESCE(MAX(CAST(SUBSTRING(bid_number FROM '[0-9]+$') AS INT)), 0)`)
	if err := row.Scan(&highest).Error; err != nil {
		return "", err
	}
	return billing.NextNumber(billing.BidPrefix, billing.FormatNumber(billing.BidPrefix, highest)), nil
}

func nextInvoiceNumber(db *gorm.DB) (string, error) {
	var highest int
	row := db.Model(&models.Invoice{}).
		Select(`COALESCE(MAX(CAST(SUBSTRING(invoice_number FROM '[0-9]+$') AS INT)), 0)`)
	if err := row.Scan(&highest).Error; err != nil {
		return "", err
	}
	return billing.NextNumber(billing.InvoicePrefix, billing.FormatNumber(billing.InvoicePrefix, highest)), nil
}
