package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	enrollDTO "schoolku_backend/internals/features/school/enrollments/dto"
	enrollModel "schoolku_backend/internals/features/school/enrollments/model"
	enrollService "schoolku_backend/internals/features/school/enrollments/service"
	helper "schoolku_backend/internals/helpers"
)

type EnrollmentsController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewEnrollmentsController(db *gorm.DB, v interface{ Struct(any) error }) *EnrollmentsController {
	return &EnrollmentsController{DB: db, Validator: v}
}

/* ===== READS ===== */

func (h *EnrollmentsController) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 25, 100)

	q := h.DB.Model(&enrollModel.EnrollmentModel{}).Preload("Section").Preload("Section.Class")
	if raw := strings.TrimSpace(c.Query("section_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section_id")
		}
		q = q.Where("enrollment_section_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("student_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student_id")
		}
		q = q.Where("enrollment_student_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("year_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid year_id")
		}
		q = q.Where("enrollment_year_id = ?", id)
	}
	if s := strings.TrimSpace(c.Query("status")); s != "" {
		q = q.Where("enrollment_status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count enrollments")
	}

	var rows []enrollModel.EnrollmentModel
	if err := q.
		Order("enrollment_roll_number ASC").
		Offset(pg.Offset).Limit(pg.Limit).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list enrollments")
	}
	return helper.JsonList(c, "", rows, helper.BuildPagination(total, pg, len(rows)))
}

func (h *EnrollmentsController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent enrollModel.EnrollmentModel
	if err := h.DB.Preload("Section").Preload("Year").First(&ent, "enrollment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Enrollment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "", ent)
}

/* ===== MUTATIONS ===== */

func (h *EnrollmentsController) Enroll(c *fiber.Ctx) error {
	var p enrollDTO.EnrollRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	enrolledAt := time.Now()
	if p.EnrolledAt != nil {
		enrolledAt = *p.EnrolledAt
	}

	ent, err := enrollService.Enroll(h.DB, p.StudentID, p.SectionID, p.YearID, p.RollNumber, enrolledAt)
	if err != nil {
		return h.answerServiceError(c, err)
	}
	return helper.JsonCreated(c, "Student enrolled", ent)
}

func (h *EnrollmentsController) Transfer(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var p enrollDTO.TransferRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	ent, err := enrollService.Transfer(h.DB, id, p.NewSectionID, p.NewRoll)
	if err != nil {
		return h.answerServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Student transferred", ent)
}

func (h *EnrollmentsController) Withdraw(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	ent, err := enrollService.Withdraw(h.DB, id)
	if err != nil {
		return h.answerServiceError(c, err)
	}
	return helper.JsonUpdated(c, "Student withdrawn", ent)
}

func (h *EnrollmentsController) BulkPromote(c *fiber.Ctx) error {
	var p enrollDTO.BulkPromoteRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	promoted, err := enrollService.BulkPromote(h.DB, p.FromSectionID, p.ToSectionID, p.ToYearID)
	if err != nil {
		return h.answerServiceError(c, err)
	}
	return helper.JsonOK(c, "Section promoted", fiber.Map{
		"promoted_count": len(promoted),
		"enrollments":    promoted,
	})
}

func (h *EnrollmentsController) answerServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, enrollService.ErrSectionNotFound),
		errors.Is(err, enrollService.ErrEnrollmentNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, enrollService.ErrRollTaken),
		errors.Is(err, enrollService.ErrDuplicateEnrollment),
		errors.Is(err, enrollService.ErrAlreadyActive),
		errors.Is(err, enrollService.ErrSectionFull):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	}
	return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
}
