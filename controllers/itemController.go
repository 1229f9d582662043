package controllers

import (
	"errors"
	"fmt"
	"strings"

	"contractorhub-backend/billing"
	"contractorhub-backend/database"
	"contractorhub-backend/middlewares"
	"contractorhub-backend/models"
	"contractorhub-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ItemInput struct {
	Name          string  `json:"name" validate:"required,min=1"`
	Description   string  `json:"description" validate:"omitempty"`
	Category      string  `json:"category" validate:"omitempty"`
	Unit          string  `json:"unit" validate:"omitempty"`
	Cost          float64 `json:"cost" validate:"gte=0"`
	MarkupPercent float64 `json:"markup_percent" validate:"gte=0"`
}

type ItemUpdateDTO struct {
	Name          *string  `json:"name" validate:"omitempty,min=1"`
	Description   *string  `json:"description" validate:"omitempty"`
	Category      *string  `json:"category" validate:"omitempty"`
	Unit          *string  `json:"unit" validate:"omitempty"`
	Cost          *float64 `json:"cost" validate:"omitempty,gte=0"`
	MarkupPercent *float64 `json:"markup_percent" validate:"omitempty,gte=0"`
	Active        *bool    `json:"active" validate:"omitempty"`
}

// POST /api/item (batch create)
func CreateItems(c *fiber.Ctx) error {
	var inputs []ItemInput
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(inputs) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no items given")
	}
	for i := range inputs {
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
		utils.NormalizeDTO(&inputs[i])
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var created []models.Item
	for i, in := range inputs {
		item := models.Item{
			Name:          in.Name,
			Description:   in.Description,
			Category:      in.Category,
			Unit:          in.Unit,
			Cost:          in.Cost,
			MarkupPercent: in.MarkupPercent,
			UnitPrice:     billing.CatalogPrice(in.Cost, in.MarkupPercent),
			Active:        true,
		}
		if err := db.Create(&item).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("could not create item at index %d", i))
		}
		created = append(created, item)
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GET /api/items
func GetItems(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	q := db.Model(&models.Item{})
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		q = q.Where("category = ?", cat)
	}
	if c.Query("active") != "" {
		q = q.Where("active = ?", c.QueryBool("active"))
	}

	var items []models.Item
	if err := q.Order("name").Find(&items).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"items": items})
}

// PUT /api/item/:id
// Price is re-derived whenever cost or markup changes; the stored column
// never drifts from its inputs.
func UpdateItem(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing item id in path")
	}

	var in ItemUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.Item
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "item not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if in.Cost != nil || in.MarkupPercent != nil {
		cost := existing.Cost
		markup := existing.MarkupPercent
		if in.Cost != nil {
			cost = *in.Cost
		}
		if in.MarkupPercent != nil {
			markup = *in.MarkupPercent
		}
		updates["unit_price"] = billing.CatalogPrice(cost, markup)
	}

	if len(updates) > 0 {
		if err := db.Model(&models.Item{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update item")
		}
	}

	var out models.Item
	if err := db.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload item")
	}
	return c.JSON(out)
}
