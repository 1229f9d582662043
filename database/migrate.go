package database

import (
	"fmt"

	"contractorhub-backend/models"

	"gorm.io/gorm"
)

// MigrateTenantSchema applies (idempotent) schema migrations for a single tenant schema.
// It pins search_path to the tenant and performs:
// - AutoMigrate (tables/columns)
// - Money column types (NUMERIC(12,2))
// - Indexes (versions, payments, line items, reminders)
// - Basic CHECK constraints
// - Singleton seed rows (business settings, notification preferences)
func MigrateTenantSchema(schema string) error {
	if schema == "" {
		return fmt.Errorf("schema name is empty")
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		// Pin the tenant schema for this transaction
		if err := tx.Exec(`SET LOCAL search_path = "` + schema + `", public`).Error; err != nil {
			return fmt.Errorf("set search_path failed: %w", err)
		}

		// --- AutoMigrate tables/columns/index tags (non-destructive) ---
		if err := tx.AutoMigrate(
			&models.Client{},
			&models.Item{},
			&models.Project{},
			&models.Bid{},
			&models.BidLineItem{},
			&models.Invoice{},
			&models.InvoiceLineItem{},
			&models.Payment{},
			&models.PaymentReminder{},
			&models.DocumentVersion{},
			&models.Notification{},
			&models.NotificationPreferences{},
			&models.BusinessSettings{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("tenant automigrate failed: %w", err)
		}

		// --- Enforce money columns as NUMERIC(12,2) (idempotent ALTERs) ---
		alters := []string{
			`ALTER TABLE items              ALTER COLUMN cost        TYPE numeric(12,2)`,
			`ALTER TABLE items              ALTER COLUMN unit_price  TYPE numeric(12,2)`,
			`ALTER TABLE projects           ALTER COLUMN budget      TYPE numeric(12,2)`,
			`ALTER TABLE bids               ALTER COLUMN subtotal    TYPE numeric(12,2)`,
			`ALTER TABLE bids               ALTER COLUMN tax_total   TYPE numeric(12,2)`,
			`ALTER TABLE bids               ALTER COLUMN total       TYPE numeric(12,2)`,
			`ALTER TABLE bid_line_items     ALTER COLUMN unit_price  TYPE numeric(12,2)`,
			`ALTER TABLE bid_line_items     ALTER COLUMN total_price TYPE numeric(12,2)`,
			`ALTER TABLE invoices           ALTER COLUMN subtotal    TYPE numeric(12,2)`,
			`ALTER TABLE invoices           ALTER COLUMN tax_total   TYPE numeric(12,2)`,
			`ALTER TABLE invoices           ALTER COLUMN total       TYPE numeric(12,2)`,
			`ALTER TABLE invoices           ALTER COLUMN paid_total  TYPE numeric(12,2)`,
			`ALTER TABLE invoice_line_items ALTER COLUMN unit_price  TYPE numeric(12,2)`,
			`ALTER TABLE invoice_line_items ALTER COLUMN total_price TYPE numeric(12,2)`,
			`ALTER TABLE payments           ALTER COLUMN amount      TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Composite / helpful indexes (idempotent) ---
		indexes := []string{
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_document_versions_doc ON document_versions (kind, document_id, version_no)`,
			`CREATE INDEX IF NOT EXISTS idx_payments_invoice_paid_at ON payments (invoice_id, paid_at)`,
			`CREATE INDEX IF NOT EXISTS idx_bid_line_items_bid ON bid_line_items (bid_id)`,
			`CREATE INDEX IF NOT EXISTS idx_invoice_line_items_invoice ON invoice_line_items (invoice_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_reminders_invoice_type ON payment_reminders (invoice_id, reminder_type)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		// --- Basic CHECK constraints (idempotent) ---
		checks := []string{
			// Line item quantities must be positive, prices non-negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'bid_line_items'::regclass
					  AND conname  = 'chk_bid_line_items_qty_pos'
				) THEN
					ALTER TABLE bid_line_items
					ADD CONSTRAINT chk_bid_line_items_qty_pos
					CHECK (quantity > 0 AND unit_price >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'invoice_line_items'::regclass
					  AND conname  = 'chk_invoice_line_items_qty_pos'
				) THEN
					ALTER TABLE invoice_line_items
					ADD CONSTRAINT chk_invoice_line_items_qty_pos
					CHECK (quantity > 0 AND unit_price >= 0);
				END IF;
			END $$;`,
			// Payments must be positive
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'payments'::regclass
					  AND conname  = 'chk_payments_amount_pos'
				) THEN
					ALTER TABLE payments
					ADD CONSTRAINT chk_payments_amount_pos
					CHECK (amount > 0);
				END IF;
			END $$;`,
			// Catalog prices non-negative
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'items'::regclass
					  AND conname  = 'chk_items_prices_nonneg'
				) THEN
					ALTER TABLE items
					ADD CONSTRAINT chk_items_prices_nonneg
					CHECK (cost >= 0 AND unit_price >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		// --- Singleton seed rows ---
		var n int64
		if err := tx.Model(&models.BusinessSettings{}).Count(&n).Error; err != nil {
			return fmt.Errorf("settings count failed: %w", err)
		}
		if n == 0 {
			if err := tx.Create(&models.BusinessSettings{
				DefaultTaxRate:  0.10,
				PaymentTermDays: 30,
				Currency:        "USD",
			}).Error; err != nil {
				return fmt.Errorf("settings seed failed: %w", err)
			}
		}
		if err := tx.Model(&models.NotificationPreferences{}).Count(&n).Error; err != nil {
			return fmt.Errorf("preferences count failed: %w", err)
		}
		if n == 0 {
			if err := tx.Create(&models.NotificationPreferences{
				EmailEnabled:    true,
				PaymentAlerts:   true,
				BidAlerts:       true,
				OverdueAlerts:   true,
				ReminderLeadDay: 3,
			}).Error; err != nil {
				return fmt.Errorf("preferences seed failed: %w", err)
			}
		}

		return nil
	})
}
