package controllers

import (
	"strings"
	"time"

	"contractorhub-backend/billing"
	"contractorhub-backend/database"
	"contractorhub-backend/gateways"
	"contractorhub-backend/middlewares"
	"contractorhub-backend/models"
	"contractorhub-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// paymentGateways holds the provider adapters; swapped out in tests.
var paymentGateways = gateways.Default()

type PaymentCreateDTO struct {
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Method          string  `json:"method" validate:"required,oneof=card echeck bank_transfer cash other"`
	Provider        string  `json:"provider" validate:"omitempty,oneof=stripe paypal chime"`
	PaymentMethodID string  `json:"payment_method_id" validate:"omitempty"`
	Note            string  `json:"note" validate:"omitempty"`
}

// POST /api/invoice/:id/payments
// Records a payment and derives the invoice's paid status: once completed
// payments cover the total, the invoice flips to paid with paidDate stamped.
// A declined gateway charge writes nothing; the request TX rolls back.
func RecordPayment(c *fiber.Ctx) error {
	var in PaymentCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	in.Amount = utils.Round2(in.Amount)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	invoice, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}

	// Paid-to-date comes from persisted rows, not the cached rollup. Pending
	// gateway charges reserve balance so clearing echecks can't be stacked
	// past the total.
	paidSoFar, err := paymentTotal(db, invoice.ID, models.PaymentCompleted)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not sum payments")
	}
	pending, err := paymentTotal(db, invoice.ID, models.PaymentPending)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not sum payments")
	}

	now := time.Now().UTC()
	result, err := billing.ApplyPayment(invoice.Status, invoice.Total, paidSoFar, pending, in.Amount, now)
	if err != nil {
		return err
	}

	payment := models.Payment{
		InvoiceID: invoice.ID,
		Amount:    in.Amount,
		Method:    in.Method,
		Status:    models.PaymentCompleted,
		Note:      strings.TrimSpace(in.Note),
		PaidAt:    now,
	}

	if billing.GatewayMethod(in.Method) {
		provider := in.Provider
		if provider == "" {
			provider = "stripe"
		}
		gw, err := paymentGateways.Get(provider)
		if err != nil {
			return err
		}

		settings := loadSettings(db)
		resp, err := gw.ProcessPayment(c.Context(), gateways.ChargeRequest{
			Amount:          in.Amount,
			Currency:        settings.Currency,
			InvoiceNumber:   invoice.InvoiceNumber,
			Method:          in.Method,
			CustomerEmail:   invoice.Client.Email,
			PaymentMethodID: in.PaymentMethodID,
		})
		if err != nil || !resp.Success {
			// Invoice untouched, no Payment row; middleware maps this to 502.
			return gateways.ErrPaymentDeclined
		}
		payment.Status = resp.Status
		payment.Provider = gw.Name()
		payment.TransactionID = resp.TransactionID
		payment.ReceiptURL = resp.ReceiptURL
	}

	if err := db.Create(&payment).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not record payment")
	}

	// A pending echeck is settled by the sweep's reconciliation pass once the
	// gateway reports it cleared; the rollup only counts completed money.
	if payment.Status == models.PaymentCompleted {
		updates := map[string]any{"paid_total": result.PaidTotal}
		if result.Paid {
			updates["status"] = billing.InvoicePaid
			updates["paid_at"] = result.PaidAt
		}
		if err := db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not update invoice rollup")
		}

		var prefs models.NotificationPreferences
		if err := db.First(&prefs).Error; err == nil && prefs.PaymentAlerts {
			note := models.Notification{
				Type:  models.NotifyPaymentReceived,
				Title: "Payment received for " + invoice.InvoiceNumber,
			}
			if err := db.Create(&note).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "could not record notification")
			}
		}
	}

	return c.Status(fiber.StatusCreated).JSON(payment)
}

func paymentTotal(db *gorm.DB, invoiceID uint, status string) (float64, error) {
	var sum float64
	row := db.Model(&models.Payment{}).
		Where("invoice_id = ? AND status = ?", invoiceID, status).
		Select("COALESCE(SUM(amount), 0)")
	if err := row.Scan(&sum).Error; err != nil {
		return 0, err
	}
	return utils.Round2(sum), nil
}

// GET /api/invoice/:id/payments
func ListInvoicePayments(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	invoice, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}

	var payments []models.Payment
	if err := db.Where("invoice_id = ?", invoice.ID).Order("paid_at").Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"payments": payments})
}

// GET /api/payments
func ListPayments(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	q := db.Model(&models.Payment{})
	if method := strings.TrimSpace(c.Query("method")); method != "" {
		q = q.Where("method = ?", method)
	}

	var payments []models.Payment
	if err := q.Order("paid_at DESC").Find(&payments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"payments": payments})
}

// GET /api/invoice/:id/reminders
func ListInvoiceReminders(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	invoice, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}

	var reminders []models.PaymentReminder
	if err := db.Where("invoice_id = ?", invoice.ID).Order("id").Find(&reminders).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"reminders": reminders})
}
