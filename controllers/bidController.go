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

type BidCreateDTO struct {
	ProjectID  uint            `json:"project_id" validate:"required"`
	Title      string          `json:"title" validate:"required,min=1"`
	ValidUntil *time.Time      `json:"valid_until" validate:"omitempty"`
	Items      []LineItemInput `json:"line_items" validate:"required,min=1,dive"`
}

type BidUpdateDTO struct {
	Title      *string         `json:"title" validate:"omitempty,min=1"`
	ValidUntil *time.Time      `json:"valid_until" validate:"omitempty"`
	Items      []LineItemInput `json:"line_items" validate:"omitempty,min=1,dive"`
}

// POST /api/bid
// The bid and all its line items are written by a single Create inside the
// request transaction: either everything commits or nothing does.
func CreateBid(c *fiber.Ctx) error {
	var in BidCreateDTO
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

	number, err := nextBidNumber(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not allocate bid number")
	}

	bid := models.Bid{
		BidNumber:  number,
		PId:        project.Id,
		CId:        project.CId,
		Title:      strings.TrimSpace(in.Title),
		Items:      buildBidItems(in.Items, lines),
		Subtotal:   totals.Subtotal,
		TaxTotal:   totals.Tax,
		Total:      totals.Total,
		Status:     billing.BidDraft,
		ValidUntil: in.ValidUntil,
	}

	if err := db.Create(&bid).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create bid")
	}
	return c.Status(fiber.StatusCreated).JSON(bid)
}

func buildBidItems(inputs []LineItemInput, lines []billing.Line) []models.BidLineItem {
	items := make([]models.BidLineItem, len(inputs))
	for i, in := range inputs {
		items[i] = models.BidLineItem{
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

// GET /api/bids
func GetBids(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	q := db.Model(&models.Bid{}).Preload("Client").Preload("Project")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var bids []models.Bid
	if err := q.Order("id DESC").Find(&bids).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"bids": bids})
}

// GET /api/bid/:id
func GetBid(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	bid, err := findBid(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(bid)
}

func findBid(db *gorm.DB, id string) (*models.Bid, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "missing bid id in path")
	}
	var bid models.Bid
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).Preload("Client").Preload("Project").First(&bid, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "bid not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return &bid, nil
}

// PUT /api/bid/:id (draft only; line items are replaced wholesale)
func UpdateBid(c *fiber.Ctx) error {
	var in BidUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	bid, err := findBid(db, c.Params("id"))
	if err != nil {
		return err
	}
	if !billing.Editable(bid.Status) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "only draft bids can be edited")
	}

	updates := map[string]any{}
	if in.Title != nil {
		updates["title"] = strings.TrimSpace(*in.Title)
	}
	if in.ValidUntil != nil {
		updates["valid_until"] = in.ValidUntil
	}

	if in.Items != nil {
		lines := toBillingLines(in.Items)
		if err := billing.ValidateLines(lines); err != nil {
			return err
		}
		if err := db.Where("bid_id = ?", bid.ID).Delete(&models.BidLineItem{}).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "could not replace line items")
		}
		items := buildBidItems(in.Items, lines)
		for i := range items {
			items[i].BidID = bid.ID
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
		if err := db.Model(&models.Bid{}).Where("id = ?", bid.ID).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update bid")
		}
	}

	out, err := findBid(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// POST /api/bid/:id/line-item
func AddBidLineItem(c *fiber.Ctx) error {
	var in LineItemInput
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	bid, err := findBid(db, c.Params("id"))
	if err != nil {
		return err
	}
	if !billing.Editable(bid.Status) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "only draft bids can be edited")
	}

	line := toBillingLines([]LineItemInput{in})[0]
	if err := billing.ValidateLine(line); err != nil {
		return err
	}

	item := models.BidLineItem{
		BidID:       bid.ID,
		ItemID:      in.ItemID,
		Description: strings.TrimSpace(in.Description),
		Quantity:    in.Quantity,
		UnitPrice:   line.UnitPrice,
		TotalPrice:  billing.LineTotal(line),
		Section:     strings.TrimSpace(in.Section),
		SortOrder:   len(bid.Items),
	}
	if err := db.Create(&item).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not add line item")
	}

	if err := recomputeBidTotals(db, bid.ID); err != nil {
		return err
	}
	out, err := findBid(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// DELETE /api/bid/:id/line-item/:itemId
// Removal is a persisted delete, not just client state, and totals are
// recomputed in the same transaction.
func RemoveBidLineItem(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	bid, err := findBid(db, c.Params("id"))
	if err != nil {
		return err
	}
	if !billing.Editable(bid.Status) {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "only draft bids can be edited")
	}
	if len(bid.Items) <= 1 {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "a bid needs at least one line item")
	}

	res := db.Where("id = ? AND bid_id = ?", c.Params("itemId"), bid.ID).Delete(&models.BidLineItem{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not remove line item")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "line item not found")
	}

	if err := recomputeBidTotals(db, bid.ID); err != nil {
		return err
	}
	out, err := findBid(db, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

func recomputeBidTotals(db *gorm.DB, bidID uint) error {
	var items []models.BidLineItem
	if err := db.Where("bid_id = ?", bidID).Order("sort_order").Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not reload line items")
	}
	lines := make([]billing.Line, len(items))
	for i, it := range items {
		lines[i] = billing.Line{Description: it.Description, Quantity: it.Quantity, UnitPrice: it.UnitPrice, Section: it.Section}
	}
	settings := loadSettings(db)
	totals := billing.Compute(lines, settings.DefaultTaxRate)
	return db.Model(&models.Bid{}).Where("id = ?", bidID).Updates(map[string]any{
		"subtotal":  totals.Subtotal,
		"tax_total": totals.Tax,
		"total":     totals.Total,
	}).Error
}

// PUT /api/bid/:id/send
func SendBid(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	bid, err := findBid(db, c.Params("id"))
	if err != nil {
		return err
	}
	if err := billing.BidTransition(bid.Status, billing.BidSent); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := db.Model(&models.Bid{}).Where("id = ?", bid.ID).Updates(map[string]any{
		"status":  billing.BidSent,
		"sent_at": &now,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not send bid")
	}

	bid.Status = billing.BidSent
	bid.SentAt = &now
	if err := snapshotDocument(db, models.KindBid, bid.ID, bid); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not snapshot bid")
	}
	return c.JSON(bid)
}

// PUT /api/bid/:id/view
// One-way read receipt from the client portal.
func MarkBidViewed(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	bid, err := findBid(db, c.Params("id"))
	if err != nil {
		return err
	}
	if bid.Status == billing.BidViewed {
		return c.JSON(bid) // already viewed, idempotent
	}
	if err := billing.BidTransition(bid.Status, billing.BidViewed); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := db.Model(&models.Bid{}).Where("id = ?", bid.ID).Updates(map[string]any{
		"status":    billing.BidViewed,
		"viewed_at": &now,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not mark bid viewed")
	}
	bid.Status = billing.BidViewed
	bid.ViewedAt = &now
	return c.JSON(bid)
}

// PUT /api/bid/:id/accept
// Accepting a bid spawns an Invoice that copies the bid's line items,
// preserving section and order; the invoice due date comes from the
// tenant's payment terms.
func AcceptBid(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	bid, err := findBid(db, c.Params("id"))
	if err != nil {
		return err
	}
	if err := billing.BidTransition(bid.Status, billing.BidAccepted); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := db.Model(&models.Bid{}).Where("id = ?", bid.ID).Updates(map[string]any{
		"status":     billing.BidAccepted,
		"decided_at": &now,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not accept bid")
	}

	settings := loadSettings(db)
	due := now.Add(time.Duration(settings.PaymentTermDays) * 24 * time.Hour)

	number, err := nextInvoiceNumber(db)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not allocate invoice number")
	}

	items := make([]models.InvoiceLineItem, len(bid.Items))
	for i, it := range bid.Items {
		items[i] = models.InvoiceLineItem{
			ItemID:      it.ItemID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			Section:     it.Section,
			SortOrder:   it.SortOrder,
		}
	}

	bidID := bid.ID
	invoice := models.Invoice{
		InvoiceNumber: number,
		PId:           bid.PId,
		CId:           bid.CId,
		BidID:         &bidID,
		Title:         bid.Title,
		Items:         items,
		Subtotal:      bid.Subtotal,
		TaxTotal:      bid.TaxTotal,
		Total:         bid.Total,
		Status:        billing.InvoiceDraft,
		DueDate:       &due,
	}
	if err := db.Create(&invoice).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not create invoice from bid")
	}

	bid.Status = billing.BidAccepted
	bid.DecidedAt = &now
	if err := snapshotDocument(db, models.KindBid, bid.ID, bid); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not snapshot bid")
	}

	note := models.Notification{
		Type:  models.NotifyBidAccepted,
		Title: "Bid " + bid.BidNumber + " accepted",
		Body:  "Invoice " + invoice.InvoiceNumber + " was created from the accepted bid.",
	}
	if err := db.Create(&note).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not record notification")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"bid":     bid,
		"invoice": invoice,
	})
}

// PUT /api/bid/:id/reject
func RejectBid(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	bid, err := findBid(db, c.Params("id"))
	if err != nil {
		return err
	}
	if err := billing.BidTransition(bid.Status, billing.BidRejected); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := db.Model(&models.Bid{}).Where("id = ?", bid.ID).Updates(map[string]any{
		"status":     billing.BidRejected,
		"decided_at": &now,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not reject bid")
	}

	note := models.Notification{
		Type:  models.NotifyBidRejected,
		Title: "Bid " + bid.BidNumber + " rejected",
	}
	if err := db.Create(&note).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not record notification")
	}

	bid.Status = billing.BidRejected
	bid.DecidedAt = &now
	return c.JSON(bid)
}

// GET /api/bid/:id/versions
func GetBidVersions(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}
	bid, err := findBid(db, c.Params("id"))
	if err != nil {
		return err
	}

	var versions []models.DocumentVersion
	if err := db.Where("kind = ? AND document_id = ?", models.KindBid, bid.ID).
		Order("version_no").Find(&versions).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"versions": versions})
}
