package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	readingDTO "schoolku_backend/internals/features/lms/reading/dto"
	readingModel "schoolku_backend/internals/features/lms/reading/model"
	helper "schoolku_backend/internals/helpers"
)

type BadgesController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewBadgesController(db *gorm.DB, v interface{ Struct(any) error }) *BadgesController {
	return &BadgesController{DB: db, Validator: v}
}

func (h *BadgesController) List(c *fiber.Ctx) error {
	var rows []readingModel.BadgeModel
	if err := h.DB.Order("badge_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list badges")
	}
	return helper.JsonOK(c, "", rows)
}

// Create accepts JSON or multipart; an optional "icon" image is stored
// downscaled.
func (h *BadgesController) Create(c *fiber.Ctx) error {
	var p readingDTO.CreateBadgeRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	ent := p.ToModel()
	if fh, err := c.FormFile("icon"); err == nil && fh != nil {
		path, err := helper.SaveImageResized(fh, "badges", 256)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		ent.BadgeIconPath = &path
	}

	if err := h.DB.Create(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_badges_name", "badge_name") {
			return helper.JsonError(c, fiber.StatusConflict, "A badge with that name already exists")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Badge created", ent)
}

func (h *BadgesController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var p readingDTO.UpdateBadgeRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	var ent readingModel.BadgeModel
	if err := h.DB.First(&ent, "badge_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Badge not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	p.Apply(&ent)

	if fh, err := c.FormFile("icon"); err == nil && fh != nil {
		path, err := helper.SaveImageResized(fh, "badges", 256)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		if ent.BadgeIconPath != nil {
			helper.RemoveUpload(*ent.BadgeIconPath)
		}
		ent.BadgeIconPath = &path
	}

	if err := h.DB.Save(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_badges_name", "badge_name") {
			return helper.JsonError(c, fiber.StatusConflict, "A badge with that name already exists")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Badge updated", ent)
}

// Delete soft-deletes the badge definition; awards already granted stay
// on student records.
func (h *BadgesController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	res := h.DB.Delete(&readingModel.BadgeModel{}, "badge_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete badge")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Badge not found")
	}
	return helper.JsonDeleted(c, "Badge deleted", fiber.Map{"badge_id": id})
}
