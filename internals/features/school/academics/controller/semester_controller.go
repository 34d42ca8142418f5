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

type SemestersController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewSemestersController(db *gorm.DB, v interface{ Struct(any) error }) *SemestersController {
	return &SemestersController{DB: db, Validator: v}
}

// List semesters, optionally scoped by ?year_id=.
func (h *SemestersController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&acModel.SemesterModel{})
	if raw := strings.TrimSpace(c.Query("year_id")); raw != "" {
		yearID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid year_id")
		}
		q = q.Where("semester_year_id = ?", yearID)
	}
	var rows []acModel.SemesterModel
	if err := q.Order("semester_start_date ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list semesters")
	}
	return helper.JsonOK(c, "", rows)
}

func (h *SemestersController) Create(c *fiber.Ctx) error {
	var p acDTO.CreateSemesterRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	var year acModel.AcademicYearModel
	if err := h.DB.First(&year, "academic_year_id = ?", p.YearID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Academic year not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	ent := acModel.SemesterModel{
		SemesterYearID:    p.YearID,
		SemesterName:      p.Name,
		SemesterStartDate: p.StartDate,
		SemesterEndDate:   p.EndDate,
	}
	if err := h.DB.Create(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_semesters_year_name") {
			return helper.JsonError(c, fiber.StatusConflict, "That semester already exists in this year")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Semester created", ent)
}

func (h *SemestersController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	var ent acModel.SemesterModel
	if err := h.DB.First(&ent, "semester_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Semester not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var p acDTO.UpdateSemesterRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	if p.Name != nil {
		ent.SemesterName = *p.Name
	}
	if p.StartDate != nil {
		ent.SemesterStartDate = *p.StartDate
	}
	if p.EndDate != nil {
		ent.SemesterEndDate = *p.EndDate
	}
	if err := h.DB.Save(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_semesters_year_name") {
			return helper.JsonError(c, fiber.StatusConflict, "That semester already exists in this year")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Semester updated", ent)
}

func (h *SemestersController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := acService.ClearCurrentIfSemester(tx, id); err != nil {
			return err
		}
		res := tx.Delete(&acModel.SemesterModel{}, "semester_id = ?", id)
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
			return helper.JsonError(c, fiber.StatusNotFound, "Semester not found")
		case helper.IsForeignKeyViolation(err):
			return helper.JsonError(c, fiber.StatusConflict, "The semester still has exams or grades attached")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete semester")
	}
	return helper.JsonDeleted(c, "Semester deleted", fiber.Map{"semester_id": id})
}

func (h *SemestersController) SetCurrentSemester(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	if err := acService.SetCurrentSemester(h.DB, id); err != nil {
		switch {
		case errors.Is(err, acService.ErrSemesterNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Semester not found")
		case errors.Is(err, acService.ErrSemesterOutsideYear):
			return helper.JsonError(c, fiber.StatusConflict, "The semester does not belong to the current academic year")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to set current semester")
	}
	return helper.JsonUpdated(c, "Current semester set", fiber.Map{"semester_id": id})
}
