package jobs

import (
	"context"
	"time"

	"contractorhub-backend/billing"
	"contractorhub-backend/database"
	"contractorhub-backend/gateways"
	"contractorhub-backend/logger"
	"contractorhub-backend/models"
	"contractorhub-backend/utils"

	"github.com/robfig/cron"
	"gorm.io/gorm"
)

var log = logger.WithComponent("sweep")

// paymentGateways is the shared provider registry; pending charges recorded
// through the API are polled here.
var paymentGateways = gateways.Default()

// Start launches the periodic sweep that marks invoices overdue, expires
// stale bids and advances the payment-reminder ladder for every tenant.
// Schedule defaults to hourly; override with SWEEP_SCHEDULE (cron syntax).
func Start(schedule string) *cron.Cron {
	if schedule == "" {
		schedule = "@hourly"
	}
	c := cron.New()
	err := c.AddFunc(schedule, func() {
		if err := SweepAll(time.Now().UTC()); err != nil {
			log.Error().Err(err).Msg("sweep run failed")
		}
	})
	if err != nil {
		log.Error().Err(err).Str("schedule", schedule).Msg("could not register sweep")
		return c
	}
	c.Start()
	log.Info().Str("schedule", schedule).Msg("overdue sweep started")
	return c
}

// SweepAll runs the sweep across every tenant schema.
func SweepAll(now time.Time) error {
	var schemas []string
	if err := database.DB.Model(&models.Business{}).
		Where("schema_name <> ''").
		Pluck("schema_name", &schemas).Error; err != nil {
		return err
	}
	for _, schema := range schemas {
		db, err := database.TenantSession(schema)
		if err != nil {
			log.Error().Err(err).Str("schema", schema).Msg("tenant session failed")
			continue
		}
		if err := sweepTenant(db, now); err != nil {
			log.Error().Err(err).Str("schema", schema).Msg("tenant sweep failed")
		}
	}
	return nil
}

func sweepTenant(db *gorm.DB, now time.Time) error {
	// Settle clearing payments first so a covered invoice is not marked
	// overdue in the same run.
	if err := reconcilePendingPayments(db, now); err != nil {
		return err
	}
	if err := sweepOverdueInvoices(db, now); err != nil {
		return err
	}
	return sweepExpiredBids(db, now)
}

// reconcilePendingPayments polls the gateway for every payment still marked
// pending and applies the outcome: cleared charges settle the invoice
// rollup, declined ones are marked failed and release their reservation.
func reconcilePendingPayments(db *gorm.DB, now time.Time) error {
	var payments []models.Payment
	if err := db.Where("status = ? AND transaction_id <> ''", models.PaymentPending).
		Find(&payments).Error; err != nil {
		return err
	}

	for _, p := range payments {
		gw, err := paymentGateways.Get(p.Provider)
		if err != nil {
			log.Error().Err(err).Uint("payment_id", p.ID).Str("provider", p.Provider).
				Msg("pending payment references unknown provider")
			continue
		}
		status, err := gw.GetPaymentStatus(context.Background(), p.TransactionID)
		if err != nil {
			log.Error().Err(err).Uint("payment_id", p.ID).Str("provider", p.Provider).
				Msg("gateway status poll failed")
			continue
		}

		switch status {
		case models.PaymentCompleted:
			if err := db.Model(&models.Payment{}).Where("id = ?", p.ID).
				Update("status", models.PaymentCompleted).Error; err != nil {
				return err
			}
			if err := settleInvoice(db, p.InvoiceID, now); err != nil {
				return err
			}
		case models.PaymentFailed:
			if err := db.Model(&models.Payment{}).Where("id = ?", p.ID).
				Update("status", models.PaymentFailed).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// settleInvoice refreshes the invoice rollup from completed payment rows and
// flips the invoice to paid once they cover the total.
func settleInvoice(db *gorm.DB, invoiceID uint, now time.Time) error {
	var inv models.Invoice
	if err := db.First(&inv, "id = ?", invoiceID).Error; err != nil {
		return err
	}

	var sum float64
	row := db.Model(&models.Payment{}).
		Where("invoice_id = ? AND status = ?", invoiceID, models.PaymentCompleted).
		Select("COALESCE(SUM(amount), 0)")
	if err := row.Scan(&sum).Error; err != nil {
		return err
	}
	paidTotal := utils.Round2(sum)

	updates := map[string]any{"paid_total": paidTotal}
	covered := paidTotal >= inv.Total && billing.InvoiceOutstanding(inv.Status)
	if covered {
		updates["status"] = billing.InvoicePaid
		updates["paid_at"] = &now
	}
	if err := db.Model(&models.Invoice{}).Where("id = ?", invoiceID).Updates(updates).Error; err != nil {
		return err
	}

	if covered {
		var prefs models.NotificationPreferences
		if err := db.First(&prefs).Error; err == nil && prefs.PaymentAlerts {
			note := models.Notification{
				Type:  models.NotifyPaymentReceived,
				Title: "Payment received for " + inv.InvoiceNumber,
				Body:  "A clearing payment settled the invoice.",
			}
			if err := db.Create(&note).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func sweepOverdueInvoices(db *gorm.DB, now time.Time) error {
	var prefs models.NotificationPreferences
	if err := db.First(&prefs).Error; err != nil {
		prefs = models.NotificationPreferences{OverdueAlerts: true}
	}

	var invoices []models.Invoice
	if err := db.Where("status IN ? AND due_date IS NOT NULL AND due_date < ?",
		[]string{billing.InvoiceSent, billing.InvoiceViewed, billing.InvoiceOverdue}, now).
		Find(&invoices).Error; err != nil {
		return err
	}

	for _, inv := range invoices {
		if inv.Status != billing.InvoiceOverdue {
			if err := billing.InvoiceTransition(inv.Status, billing.InvoiceOverdue); err != nil {
				continue
			}
			if err := db.Model(&models.Invoice{}).Where("id = ?", inv.ID).
				Update("status", billing.InvoiceOverdue).Error; err != nil {
				return err
			}
			if prefs.OverdueAlerts {
				note := models.Notification{
					Type:  models.NotifyInvoiceOverdue,
					Title: "Invoice " + inv.InvoiceNumber + " is overdue",
					Body:  "Payment was due " + inv.DueDate.Format("2006-01-02") + ".",
				}
				if err := db.Create(&note).Error; err != nil {
					return err
				}
			}
		}

		for _, stage := range DueStages(now, *inv.DueDate) {
			if err := ensureReminder(db, inv.ID, stage, now, *inv.DueDate); err != nil {
				return err
			}
		}
	}
	return nil
}

// ensureReminder creates a reminder row for (invoice, stage) once; the unique
// index makes replays harmless.
func ensureReminder(db *gorm.DB, invoiceID uint, stage string, now, due time.Time) error {
	var n int64
	if err := db.Model(&models.PaymentReminder{}).
		Where("invoice_id = ? AND reminder_type = ?", invoiceID, stage).
		Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	rem := models.PaymentReminder{
		InvoiceID:    invoiceID,
		ReminderType: stage,
		SentAt:       &now,
		Active:       true,
	}
	if next := NextStageAt(stage, due); next != nil {
		rem.NextAt = next
	}
	return db.Create(&rem).Error
}

func sweepExpiredBids(db *gorm.DB, now time.Time) error {
	var bids []models.Bid
	if err := db.Where("status IN ? AND valid_until IS NOT NULL AND valid_until < ?",
		[]string{billing.BidSent, billing.BidViewed}, now).
		Find(&bids).Error; err != nil {
		return err
	}
	for _, b := range bids {
		if err := db.Model(&models.Bid{}).Where("id = ?", b.ID).
			Update("status", billing.BidExpired).Error; err != nil {
			return err
		}
		note := models.Notification{
			Type:  models.NotifyBidExpired,
			Title: "Bid " + b.BidNumber + " expired",
			Body:  "The bid passed its valid-until date without a decision.",
		}
		if err := db.Create(&note).Error; err != nil {
			return err
		}
	}
	return nil
}

// DueStages returns the reminder stages that apply to an invoice whose due
// date has passed, in escalation order.
func DueStages(now, due time.Time) []string {
	var stages []string
	if !now.Before(due) {
		stages = append(stages, models.ReminderDueDate)
	}
	if !now.Before(due.Add(24 * time.Hour)) {
		stages = append(stages, models.ReminderOverdue1Day)
	}
	if !now.Before(due.Add(7 * 24 * time.Hour)) {
		stages = append(stages, models.ReminderOverdue7Day)
	}
	return stages
}

// NextStageAt reports when the stage after this one fires, nil for the last.
func NextStageAt(stage string, due time.Time) *time.Time {
	var next time.Time
	switch stage {
	case models.ReminderDueDate:
		next = due.Add(24 * time.Hour)
	case models.ReminderOverdue1Day:
		next = due.Add(7 * 24 * time.Hour)
	default:
		return nil
	}
	return &next
}
