package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	readingDTO "schoolku_backend/internals/features/lms/reading/dto"
	readingModel "schoolku_backend/internals/features/lms/reading/model"
	readingService "schoolku_backend/internals/features/lms/reading/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type ReadingLogsController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewReadingLogsController(db *gorm.DB, v interface{ Struct(any) error }) *ReadingLogsController {
	return &ReadingLogsController{DB: db, Validator: v}
}

/* ===== STUDENT SIDE ===== */

// Add records pages read and returns any badges the entry unlocked.
func (h *ReadingLogsController) Add(c *fiber.Ctx) error {
	var p readingDTO.AddReadingLogRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	studentID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	log := p.ToModel(studentID)
	awarded, err := readingService.AddReadingLog(h.DB, &log)
	if err != nil {
		if errors.Is(err, readingService.ErrBookNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Reading log saved", readingDTO.ReadingLogResponse{
		Log:           log,
		AwardedBadges: awarded,
	})
}

// Mine lists the signed-in student's logs, newest first.
func (h *ReadingLogsController) Mine(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var rows []readingModel.ReadingLogModel
	if err := h.DB.Preload("Book").
		Where("reading_log_student_id = ?", studentID).
		Order("reading_log_date DESC, reading_log_created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list reading logs")
	}
	total, err := readingService.StudentPageTotal(h.DB, studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to total pages")
	}
	return helper.JsonOK(c, "", fiber.Map{"logs": rows, "total_pages": total})
}

// Delete removes one of the student's own logs. Badges already awarded
// are not revoked.
func (h *ReadingLogsController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	studentID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	res := h.DB.Delete(&readingModel.ReadingLogModel{},
		"reading_log_id = ? AND reading_log_student_id = ?", id, studentID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete reading log")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Reading log not found")
	}
	return helper.JsonDeleted(c, "Reading log deleted", fiber.Map{"reading_log_id": id})
}

// MyBadges lists the signed-in student's earned badges.
func (h *ReadingLogsController) MyBadges(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var rows []readingModel.ReadingBadgeModel
	if err := h.DB.Preload("Badge").
		Where("reading_badge_student_id = ?", studentID).
		Order("reading_badge_awarded_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list badges")
	}
	return helper.JsonOK(c, "", rows)
}
