package controllers

import (
	"errors"
	"strings"
	"time"

	"contractorhub-backend/billing"
	"contractorhub-backend/database"
	"contractorhub-backend/middlewares"
	"contractorhub-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type InvoiceCreateDTO struct {
	ProjectID uint            `json:"project_id" validate:"required"`
	Title     string          `json:"title" validate:"required,min=1"`
	DueDate   *time.Time      `json:"due_date" validate:"omitempty"`
	Items     []LineItemInput `json:"line_items" validate:"required,min=1,dive"`
}

type InvoiceUpdateDTO struct {
	Title   *string         `json:"title" validate:"omitempty,min=1"`
	DueDate *time.Time      `json:"due_date" validate:"omitempty"`
	Items   []LineItemInput `json:"line_items" validate:"omitempty,min=1,dive"`
}

// POST /api/invoice
// Invoice plus line items commit atomically inside the request transaction.
func CreateInvoice(c *fiber.Ctx) error {
	var in InvoiceCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	lines := toBillingLines(in.Items)
	if err := billing.ValidateLines(lines); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var project models.Project
	if err := db.First(&project, "id = ?", in.ProjectID).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unknown project")
	}

	settings := loadSettings(db)
	totals := billing.Compute(lines, settings.DefaultTaxRate)

	due := in.DueDate
	if due == nil {
		d := time.Now().UTC().Add(time.Duration(settings.PaymentTermDays) * 24 * time.Hour)
		due = &d
	}

	number, err := nextInvoiceNumber(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not allocate invoice number")
	}

	invoice := models.Invoice{
		InvoiceNumber: number,
		PId:           project.Id,
		CId:           project.CId,
		Title:         strings.TrimSpace(in.Title),
		Items:         buildInvoiceItems(in.Items, lines),
		Subtotal:      totals.Subtotal,
		TaxTotal:      totals.Tax,
		Total:         totals.Total,
		Status:        billing.InvoiceDraft,
		DueDate:       due,
	}

	if err := db.Create(&invoice).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create invoice")
	}
	return c.Status(fiber.StatusCreated).JSON(invoice)
}

func buildInvoiceItems(inputs []LineItemInput, lines []billing.Line) []models.InvoiceLineItem {
	items := make([]models.InvoiceLineItem, len(inputs))
	for i, in := range inputs {
		items[i] = models.InvoiceLineItem{
			ItemID:      in.ItemID,
			Description: strings.TrimSpace(in.Description),
			Quantity:    in.Quantity,
			UnitPrice:   lines[i].UnitPrice,
			TotalPrice:  billing.LineTotal(lines[i]),
			Section:     strings.TrimSpace(in.Section),
			SortOrder:   i,
		}
	}
	return items
}

// GET /api/invoices
func GetInvoices(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	q := db.Model(&models.Invoice{}).Preload("Client").Preload("Project")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var invoices []models.Invoice
	if err := q.Order("id DESC").Find(&invoices).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"invoices": invoices})
}

// GET /api/invoice/:id
func GetInvoice(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	invoice, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

func findInvoice(db *gorm.DB, id string) (*models.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "missing invoice id in path")
	}
	var invoice models.Invoice
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).Preload("Client").Preload("Project").First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "invoice not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return &invoice, nil
}

// PUT /api/invoice/:id (draft only; line items are replaced wholesale)
func UpdateInvoice(c *fiber.Ctx) error {
	var in InvoiceUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	invoice, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}
	if !billing.Editable(invoice.Status) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "only draft invoices can be edited")
	}

	updates := map[string]any{}
	if in.Title != nil {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.DueDate != nil {
		updates["due_date"] = in.DueDate
	}

	if in.Items != nil {
		lines := toBillingLines(in.Items)
		if err := billing.ValidateLines(lines); err != nil {
			return err
		}
		if err := db.Where("invoice_id = ?", invoice.ID).Delete(&models.InvoiceLineItem{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not replace line items")
		}
		items := buildInvoiceItems(in.Items, lines)
		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		if err := db.Create(&items).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not replace line items")
		}

		settings := loadSettings(db)
		totals := billing.Compute(lines, settings.DefaultTaxRate)
		updates["subtotal"] = totals.Subtotal
		updates["tax_total"] = totals.Tax
		updates["total"] = totals.Total
	}

	if len(updates) > 0 {
		if err := db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update invoice")
		}
	}

	out, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// POST /api/invoice/:id/line-item
func AddInvoiceLineItem(c *fiber.Ctx) error {
	var in LineItemInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	invoice, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}
	if !billing.Editable(invoice.Status) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "only draft invoices can be edited")
	}

	line := toBillingLines([]LineItemInput{in})[0]
	if err := billing.ValidateLine(line); err != nil {
		return err
	}

	item := models.InvoiceLineItem{
		InvoiceID:   invoice.ID,
		ItemID:      in.ItemID,
		Description: strings.TrimSpace(in.Description),
		Quantity:    in.Quantity,
		UnitPrice:   line.UnitPrice,
		TotalPrice:  billing.LineTotal(line),
		Section:     strings.TrimSpace(in.Section),
		SortOrder:   len(invoice.Items),
	}
	if err := db.Create(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not add line item")
	}

	if err := recomputeInvoiceTotals(db, invoice.ID); err != nil {
		return err
	}
	out, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DELETE /api/invoice/:id/line-item/:itemId
func RemoveInvoiceLineItem(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	invoice, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}
	if !billing.Editable(invoice.Status) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "only draft invoices can be edited")
	}
	if len(invoice.Items) <= 1 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "an invoice needs at least one line item")
	}

	res := db.Where("id = ? AND invoice_id = ?", c.Params("itemId"), invoice.ID).Delete(&models.InvoiceLineItem{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not remove line item")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "line item not found")
	}

	if err := recomputeInvoiceTotals(db, invoice.ID); err != nil {
		return err
	}
	out, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func recomputeInvoiceTotals(db *gorm.DB, invoiceID uint) error {
	var items []models.InvoiceLineItem
	if err := db.Where("invoice_id = ?", invoiceID).Order("sort_order").Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not reload line items")
	}
	lines := make([]billing.Line, len(items))
	for i, it := range items {
		lines[i] = billing.Line{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice, Section: it.Section}
	}
	settings := loadSettings(db)
	totals := billing.Compute(lines, settings.DefaultTaxRate)
	return db.Model(&models.Invoice{}).Where("id = ?", invoiceID).Updates(map[string]any{
		"subtotal":  totals.Subtotal,
		"tax_total": totals.Tax,
		"total":     totals.Total,
	}).Error
}

// PUT /api/invoice/:id/send
func SendInvoice(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	invoice, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}
	if err := billing.InvoiceTransition(invoice.Status, billing.InvoiceSent); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).Updates(map[string]any{
		"status":  billing.InvoiceSent,
		"sent_at": &now,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not send invoice")
	}

	invoice.Status = billing.InvoiceSent
	invoice.SentAt = &now
	if err := snapshotDocument(db, models.KindInvoice, invoice.ID, invoice); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not snapshot invoice")
	}
	return c.JSON(invoice)
}

// PUT /api/invoice/:id/view
// One-way read receipt from the client portal.
func MarkInvoiceViewed(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	invoice, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}
	if invoice.Status == billing.InvoiceViewed {
		return c.JSON(invoice) // already viewed, idempotent
	}
	if err := billing.InvoiceTransition(invoice.Status, billing.InvoiceViewed); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).Updates(map[string]any{
		"status":    billing.InvoiceViewed,
		"viewed_at": &now,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not mark invoice viewed")
	}
	invoice.Status = billing.InvoiceViewed
	invoice.ViewedAt = &now
	return c.JSON(invoice)
}

// PUT /api/invoice/:id/cancel
func CancelInvoice(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	invoice, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}
	if err := billing.InvoiceTransition(invoice.Status, billing.InvoiceCancelled); err != nil {
		return err
	}

	if err := db.Model(&models.Invoice{}).Where("id = ?", invoice.ID).
		Update("status", billing.InvoiceCancelled).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not cancel invoice")
	}
	invoice.Status = billing.InvoiceCancelled
	return c.JSON(invoice)
}

// GET /api/invoice/:id/versions
func GetInvoiceVersions(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	invoice, err := findInvoice(db, c.Params("id"))
	if err != nil {
		return err
	}

	var versions []models.DocumentVersion
	if err := db.Where("kind = ? AND document_id = ?", models.KindInvoice, invoice.ID).
		Order("version_no").Find(&versions).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"versions": versions})
}
