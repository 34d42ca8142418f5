package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	acDTO "schoolku_backend/internals/features/school/academics/dto"
	acModel "schoolku_backend/internals/features/school/academics/model"
	acService "schoolku_backend/internals/features/school/academics/service"
	helper "schoolku_backend/internals/helpers"
)

type AcademicYearsController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewAcademicYearsController(db *gorm.DB, v interface{ Struct(any) error }) *AcademicYearsController {
	return &AcademicYearsController{DB: db, Validator: v}
}

/* ==========  SCHOOL SETTINGS  ========== */

func (h *AcademicYearsController) GetSchool(c *fiber.Ctx) error {
	school, err := acService.GetSchool(h.DB)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "", school)
}

/* ==========  YEARS CRUD  ========== */

func (h *AcademicYearsController) List(c *fiber.Ctx) error {
	var rows []acModel.AcademicYearModel
	if err := h.DB.Order("academic_year_start_date DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list academic years")
	}
	return helper.JsonOK(c, "", rows)
}

func (h *AcademicYearsController) Create(c *fiber.Ctx) error {
	var p acDTO.CreateAcademicYearRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	ent := acModel.AcademicYearModel{
		AcademicYearName:      p.Name,
		AcademicYearStartDate: p.StartDate,
		AcademicYearEndDate:   p.EndDate,
	}
	if err := h.DB.Create(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_academic_years_name") {
			return helper.JsonError(c, fiber.StatusConflict, "An academic year with that name already exists")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Academic year created", ent)
}

func (h *AcademicYearsController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var ent acModel.AcademicYearModel
	if err := h.DB.First(&ent, "academic_year_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Academic year not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var p acDTO.UpdateAcademicYearRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	if p.Name != nil {
		ent.AcademicYearName = *p.Name
	}
	if p.StartDate != nil {
		ent.AcademicYearStartDate = *p.StartDate
	}
	if p.EndDate != nil {
		ent.AcademicYearEndDate = *p.EndDate
	}
	if err := h.DB.Save(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_academic_years_name") {
			return helper.JsonError(c, fiber.StatusConflict, "An academic year with that name already exists")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Academic year updated", ent)
}

// Delete removes a year and, when it was current, clears the school
// pointer in the same transaction. Attached semesters block the delete.
func (h *AcademicYearsController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&acModel.SemesterModel{}).
			Where("semester_year_id = ?", id).Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return gorm.ErrForeignKeyViolated
		}
		if err := acService.ClearCurrentIfYear(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&acModel.AcademicYearModel{}, "academic_year_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Academic year not found")
		case helper.IsForeignKeyViolation(err):
			return helper.JsonError(c, fiber.StatusConflict, "The academic year still has semesters attached")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete academic year")
	}
	return helper.JsonDeleted(c, "Academic year deleted", fiber.Map{"academic_year_id": id})
}

/* ==========  SET CURRENT  ========== */

func (h *AcademicYearsController) SetCurrentYear(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := acService.SetCurrentYear(h.DB, id); err != nil {
		if errors.Is(err, acService.ErrYearNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Academic year not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to set current year")
	}
	return helper.JsonUpdated(c, "Current academic year set", fiber.Map{"academic_year_id": id})
}
