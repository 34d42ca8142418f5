package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	ttDTO "schoolku_backend/internals/features/school/timetable/dto"
	ttModel "schoolku_backend/internals/features/school/timetable/model"
	helper "schoolku_backend/internals/helpers"
)

type TimeSlotsController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewTimeSlotsController(db *gorm.DB, v interface{ Struct(any) error }) *TimeSlotsController {
	return &TimeSlotsController{DB: db, Validator: v}
}

func (h *TimeSlotsController) List(c *fiber.Ctx) error {
	var rows []ttModel.TimeSlotModel
	if err := h.DB.Order("time_slot_order ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list time slots")
	}
	return helper.JsonOK(c, "", rows)
}

func (h *TimeSlotsController) Create(c *fiber.Ctx) error {
	var p ttDTO.CreateTimeSlotRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	ent := ttModel.TimeSlotModel{
		TimeSlotName:      p.Name,
		TimeSlotStartTime: p.StartTime,
		TimeSlotEndTime:   p.EndTime,
		TimeSlotOrder:     p.Order,
	}
	if err := h.DB.Create(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_time_slots_name") {
			return helper.JsonError(c, fiber.StatusConflict, "A time slot with that name already exists")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Time slot created", ent)
}

func (h *TimeSlotsController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent ttModel.TimeSlotModel
	if err := h.DB.First(&ent, "time_slot_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Time slot not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var p ttDTO.UpdateTimeSlotRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	if p.Name != nil {
		ent.TimeSlotName = *p.Name
	}
	if p.StartTime != nil {
		ent.TimeSlotStartTime = *p.StartTime
	}
	if p.EndTime != nil {
		ent.TimeSlotEndTime = *p.EndTime
	}
	if p.Order != nil {
		ent.TimeSlotOrder = *p.Order
	}
	if err := h.DB.Save(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_time_slots_name") {
			return helper.JsonError(c, fiber.StatusConflict, "A time slot with that name already exists")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Time slot updated", ent)
}

func (h *TimeSlotsController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var used int64
		if err := tx.Model(&ttModel.TimetableEntryModel{}).
			Where("timetable_entry_slot_id = ?", id).
			Count(&used).Error; err != nil {
			return err
		}
		if used > 0 {
			return errSlotInUse
		}
		res := tx.Delete(&ttModel.TimeSlotModel{}, "time_slot_id = ?", id)
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
			return helper.JsonError(c, fiber.StatusNotFound, "Time slot not found")
		case errors.Is(err, errSlotInUse) || helper.IsForeignKeyViolation(err):
			return helper.JsonError(c, fiber.StatusConflict, "The time slot is still used by timetable entries")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete time slot")
	}
	return helper.JsonDeleted(c, "Time slot deleted", fiber.Map{"time_slot_id": id})
}

var errSlotInUse = errors.New("delete blocked: slot in use")
