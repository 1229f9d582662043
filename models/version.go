package models

import (
	"time"

	"gorm.io/datatypes"
)

// Document kinds for versions.
const (
	KindBid     = "bid"
	KindInvoice = "invoice"
)

// DocumentVersion is an immutable snapshot of a bid or invoice, taken at
// every send/accept/conversion.
type DocumentVersion struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	Kind       string         `json:"kind" gorm:"type:varchar(20);index:idx_document_versions_doc,unique,priority:1"`
	DocumentID uint           `json:"document_id" gorm:"index:idx_document_versions_doc,unique,priority:2"`
	VersionNo  int            `json:"version_no" gorm:"not null;index:idx_document_versions_doc,unique,priority:3"`
	Snapshot   datatypes.JSON `json:"snapshot" gorm:"type:jsonb"`
	CreatedAt  time.Time      `json:"created_at"`
}
