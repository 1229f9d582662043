package controllers

import (
	"errors"
	"strings"
	"time"

	"contractorhub-backend/database"
	"contractorhub-backend/middlewares"
	"contractorhub-backend/models"
	"contractorhub-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProjectCreateDTO struct {
	ClientID    uint       `json:"client_id" validate:"required"`
	Name        string     `json:"name" validate:"required,min=1"`
	Description string     `json:"description" validate:"omitempty"`
	StartDate   *time.Time `json:"start_date" validate:"omitempty"`
	EndDate     *time.Time `json:"end_date" validate:"omitempty"`
	Budget      float64    `json:"budget" validate:"gte=0"`
}

type ProjectUpdateDTO struct {
	Name        *string    `json:"name" validate:"omitempty,min=1"`
	Description *string    `json:"description" validate:"omitempty"`
	Status      *string    `json:"status" validate:"omitempty,oneof=draft active completed archived"`
	StartDate   *time.Time `json:"start_date" validate:"omitempty"`
	EndDate     *time.Time `json:"end_date" validate:"omitempty"`
	Budget      *float64   `json:"budget" validate:"omitempty,gte=0"`
}

// POST /api/project
func CreateProject(c *fiber.Ctx) error {
	var in ProjectCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var client models.Client
	if err := db.First(&client, "id = ?", in.ClientID).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unknown client")
	}

	project := models.Project{
		CId:         in.ClientID,
		Name:        in.Name,
		Description: in.Description,
		Status:      models.ProjectDraft,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Budget:      in.Budget,
	}
	if err := db.Create(&project).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create project")
	}
	return c.Status(fiber.StatusCreated).JSON(project)
}

// GET /api/projects
func GetProjects(c *fiber.Ctx) error {
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	q := db.Model(&models.Project{}).Preload("Client")
	if status := strings.TrimSpace(c.Query("status")); status != "" {
		q = q.Where("status = ?", status)
	}

	var projects []models.Project
	if err := q.Order("id").Find(&projects).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(fiber.Map{"projects": projects})
}

// GET /api/project/:id
func GetProject(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var project models.Project
	if err := db.Preload("Client").First(&project, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "project not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(project)
}

// projectStatusMoves: draft -> active -> completed -> archived, with archive
// allowed from anywhere and no un-archiving.
var projectStatusMoves = map[string][]string{
	models.ProjectDraft:     {models.ProjectActive, models.ProjectArchived},
	models.ProjectActive:    {models.ProjectCompleted, models.ProjectArchived},
	models.ProjectCompleted: {models.ProjectArchived},
}

func projectMoveAllowed(from, to string) bool {
	for _, s := range projectStatusMoves[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PUT /api/project/:id
func UpdateProject(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing project id in path")
	}

	var in ProjectUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	db, err := database.GetTenantDB(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "tenant db unavailable")
	}

	var existing models.Project
	if err := db.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "project not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	if in.Status != nil && *in.Status != existing.Status {
		if !projectMoveAllowed(existing.Status, *in.Status) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "invalid project status transition")
		}
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := db.Model(&models.Project{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update project")
		}
	}

	var out models.Project
	if err := db.Preload("Client").First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload project")
	}
	return c.JSON(out)
}
