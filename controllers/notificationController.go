package controllers

import (
	"errors"
	"strings"

	"contractorhub-backend/database"
	"contractorhub-backend/middlewares"
	"contractorhub-backend/models"
	"contractorhub-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GET /api/notifications
func GetNotifications(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	q := db.Model(&models.Notification{})
	if c.Query("unread") != "" && c.QueryBool("unread") {
		q = q.Where("read = false")
	}
	limit := utils.ParseIntDefault(c.Query("limit"), 50)

	var notifications []models.Notification
	if err := q.Order("id DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"notifications": notifications})
}

// GET /api/notifications/unread-count
func GetUnreadCount(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var n int64
	if err := db.Model(&models.Notification{}).Where("read = false").Count(&n).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"unread": n})
}

// PUT /api/notification/:id/read
func MarkNotificationRead(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	res := db.Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "notification not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// PUT /api/notifications/read-all
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	if err := db.Model(&models.Notification{}).Where("read = false").Update("read", true).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

// DELETE /api/notification/:id
func DeleteNotification(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	res := db.Where("id = ?", id).Delete(&models.Notification{})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "notification not found")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

type PreferencesUpdateDTO struct {
	EmailEnabled    *bool `json:"email_enabled" validate:"omitempty"`
	PaymentAlerts   *bool `json:"payment_alerts" validate:"omitempty"`
	BidAlerts       *bool `json:"bid_alerts" validate:"omitempty"`
	OverdueAlerts   *bool `json:"overdue_alerts" validate:"omitempty"`
	ReminderLeadDay *int  `json:"reminder_lead_days" validate:"omitempty,gte=0,lte=30"`
}

// GET /api/notification-preferences
func GetNotificationPreferences(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var prefs models.NotificationPreferences
	if err := db.First(&prefs).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "preferences not provisioned")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(prefs)
}

// PUT /api/notification-preferences
func UpdateNotificationPreferences(c *fiber.Ctx) error {
	var in PreferencesUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var prefs models.NotificationPreferences
	if err := db.First(&prefs).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "preferences not provisioned")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&models.NotificationPreferences{}).Where("id = ?", prefs.ID).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update preferences")
		}
	}

	var out models.NotificationPreferences
	if err := db.First(&out, "id = ?", prefs.ID).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload preferences")
	}
	return c.JSON(out)
}
