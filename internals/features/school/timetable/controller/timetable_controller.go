package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	ttDTO "schoolku_backend/internals/features/school/timetable/dto"
	ttModel "schoolku_backend/internals/features/school/timetable/model"
	ttService "schoolku_backend/internals/features/school/timetable/service"
	helper "schoolku_backend/internals/helpers"
)

type TimetableController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewTimetableController(db *gorm.DB, v interface{ Struct(any) error }) *TimetableController {
	return &TimetableController{DB: db, Validator: v}
}

/* ===== GRID ===== */

// Grid returns the sparse week grid for one section, grouped by day
// and ordered by slot. ?print=1 is accepted and ignored server-side;
// clients use it to strip navigation chrome.
func (h *TimetableController) Grid(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(strings.TrimSpace(c.Params("section_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section_id")
	}
	grid, err := ttService.Grid(h.DB, sectionID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load timetable")
	}
	return helper.JsonOK(c, "", grid)
}

/* ===== MUTATIONS ===== */

func (h *TimetableController) AddPeriod(c *fiber.Ctx) error {
	var p ttDTO.AddPeriodRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	ent := ttModel.TimetableEntryModel{
		TimetableEntrySectionID: p.SectionID,
		TimetableEntryDay:       p.Day,
		TimetableEntrySlotID:    p.SlotID,
		TimetableEntrySubjectID: p.SubjectID,
		TimetableEntryTeacherID: p.TeacherID,
	}
	if err := ttService.AddPeriod(h.DB, &ent); err != nil {
		if errors.Is(err, ttService.ErrSlotOccupied) {
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Period added", ent)
}

func (h *TimetableController) EditPeriod(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var p ttDTO.EditPeriodRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	ent, err := ttService.EditPeriod(h.DB, id, p.Day, p.SlotID, p.SubjectID, p.TeacherID)
	if err != nil {
		switch {
		case errors.Is(err, ttService.ErrEntryNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, ttService.ErrSlotOccupied):
			return helper.JsonError(c, fiber.StatusConflict, err.Error())
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Period updated", ent)
}

func (h *TimetableController) DeletePeriod(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	res := h.DB.Delete(&ttModel.TimetableEntryModel{}, "timetable_entry_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete period")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Timetable entry not found")
	}
	return helper.JsonDeleted(c, "Period deleted", fiber.Map{"timetable_entry_id": id})
}

func (h *TimetableController) CopyPeriod(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var p ttDTO.CopyPeriodRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	res, err := ttService.CopyPeriod(h.DB, id, p.TargetDays)
	if err != nil {
		if errors.Is(err, ttService.ErrEntryNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to copy period")
	}
	return helper.JsonOK(c, "Period copied", res)
}

func (h *TimetableController) CopyMondayToWeek(c *fiber.Ctx) error {
	sectionID, err := uuid.Parse(strings.TrimSpace(c.Params("section_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid section_id")
	}
	created, err := ttService.CopyMondayToWeek(h.DB, sectionID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to copy Monday across the week")
	}
	return helper.JsonOK(c, "Monday copied across the week", fiber.Map{
		"section_id":      sectionID,
		"created_entries": created,
	})
}
