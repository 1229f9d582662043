package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification types.
const (
	NotifyPaymentReceived = "payment_received"
	NotifyInvoiceOverdue  = "invoice_overdue"
	NotifyBidAccepted     = "bid_accepted"
	NotifyBidRejected     = "bid_rejected"
	NotifyBidExpired      = "bid_expired"
)

type Notification struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Type      string         `json:"type" gorm:"type:varchar(30)"`
	Title     string         `json:"title" gorm:"not null"`
	Body      string         `json:"body"`
	Payload   datatypes.JSON `json:"payload" gorm:"type:jsonb"`
	Read      bool           `json:"read" gorm:"default:false;index"`
	CreatedAt time.Time      `json:"created_at"`
}

// NotificationPreferences is a singleton per tenant, seeded at migration.
type NotificationPreferences struct {
	ID              uint `json:"id" gorm:"primaryKey"`
	EmailEnabled    bool `json:"email_enabled" gorm:"default:true"`
	PaymentAlerts   bool `json:"payment_alerts" gorm:"default:true"`
	BidAlerts       bool `json:"bid_alerts" gorm:"default:true"`
	OverdueAlerts   bool `json:"overdue_alerts" gorm:"default:true"`
	ReminderLeadDay int  `json:"reminder_lead_days" gorm:"default:3"`
}
