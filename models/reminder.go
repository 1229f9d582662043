package models

import "time"

// Reminder types, in escalation order.
const (
	ReminderDueDate     = "due_date"
	ReminderOverdue1Day = "overdue_1day"
	ReminderOverdue7Day = "overdue_7days"
	ReminderCustom      = "custom"
)

// PaymentReminder tracks the reminder ladder for one invoice. The overdue
// sweep creates at most one row per (invoice, type).
type PaymentReminder struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	InvoiceID    uint       `json:"invoice_id" gorm:"index:idx_reminders_invoice_type,unique,priority:1"`
	ReminderType string     `json:"reminder_type" gorm:"type:varchar(20);index:idx_reminders_invoice_type,unique,priority:2"`
	SentAt       *time.Time `json:"sent_at"`
	NextAt       *time.Time `json:"next_at"`
	Active       bool       `json:"active" gorm:"default:true"`
	CreatedAt    time.Time  `json:"created_at"`
}
