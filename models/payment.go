package models

import "time"

// Payment statuses.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
	PaymentRefunded  = "refunded"
)

// Payment survives document edits; linked to exactly one invoice. Multiple
// payments may apply to the same invoice (partial payments).
type Payment struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	InvoiceID     uint      `json:"invoice_id" gorm:"index:idx_payments_invoice_paid_at,priority:1"`
	Amount        float64   `json:"amount" gorm:"type:numeric(12,2)"`
	Method        string    `json:"method" gorm:"type:varchar(20)"`
	Status        string    `json:"status" gorm:"type:varchar(20)"`
	Provider      string    `json:"provider" gorm:"type:varchar(20)"` // gateway that holds the transaction
	TransactionID string    `json:"transaction_id"`
	ReceiptURL    string    `json:"receipt_url"`
	Note          string    `json:"note"`
	PaidAt        time.Time `json:"paid_at" gorm:"index:idx_payments_invoice_paid_at,priority:2"`
	CreatedAt     time.Time `json:"created_at"`
}
