package controllers

import (
	"errors"

	"contractorhub-backend/database"
	"contractorhub-backend/middlewares"
	"contractorhub-backend/models"
	"contractorhub-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SettingsUpdateDTO struct {
	DefaultTaxRate  *float64 `json:"default_tax_rate" validate:"omitempty,gte=0,lte=1"`
	PaymentTermDays *int     `json:"payment_term_days" validate:"omitempty,gte=0,lte=365"`
	Currency        *string  `json:"currency" validate:"omitempty,len=3,uppercase"`
}

// GET /api/settings
func GetSettings(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var settings models.BusinessSettings
	if err := db.First(&settings).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "settings not provisioned")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(settings)
}

// PUT /api/settings
// The tax rate set here feeds every subsequent totals computation; existing
// documents keep the totals they were priced with.
func UpdateSettings(c *fiber.Ctx) error {
	var in SettingsUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var settings models.BusinessSettings
	if err := db.First(&settings).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "settings not provisioned")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&models.BusinessSettings{}).Where("id = ?", settings.ID).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update settings")
		}
	}

	var out models.BusinessSettings
	if err := db.First(&out, "id = ?", settings.ID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload settings")
	}
	return c.JSON(out)
}
