package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classDTO "schoolku_backend/internals/features/school/classes/dto"
	classModel "schoolku_backend/internals/features/school/classes/model"
	helper "schoolku_backend/internals/helpers"
)

type ClassesController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewClassesController(db *gorm.DB, v interface{ Struct(any) error }) *ClassesController {
	return &ClassesController{DB: db, Validator: v}
}

/* ===== LIST & DETAIL ===== */

func (h *ClassesController) List(c *fiber.Ctx) error {
	var rows []classModel.ClassModel
	if err := h.DB.
		Order("class_level ASC, class_name ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list classes")
	}
	return helper.JsonOK(c, "", rows)
}

func (h *ClassesController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent classModel.ClassModel
	if err := h.DB.First(&ent, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "", ent)
}

/* ===== MUTATIONS ===== */

func (h *ClassesController) Create(c *fiber.Ctx) error {
	var p classDTO.CreateClassRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	ent := classModel.ClassModel{ClassName: p.Name, ClassLevel: p.Level}
	if err := h.DB.Create(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_classes_name") {
			return helper.JsonError(c, fiber.StatusConflict, "A class with that name already exists")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Class created", ent)
}

func (h *ClassesController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent classModel.ClassModel
	if err := h.DB.First(&ent, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var p classDTO.UpdateClassRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	p.Apply(&ent)
	if err := h.DB.Save(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_classes_name") {
			return helper.JsonError(c, fiber.StatusConflict, "A class with that name already exists")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Class updated", ent)
}

// Delete refuses when the class still has sections. The explicit count
// keeps the 409 message friendly even on drivers that do not enforce
// the foreign key.
func (h *ClassesController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var sections int64
		if err := tx.Model(&classModel.SectionModel{}).
			Where("section_class_id = ?", id).
			Count(&sections).Error; err != nil {
			return err
		}
		if sections > 0 {
			return errDeleteHasChildren
		}
		res := tx.Delete(&classModel.ClassModel{}, "class_id = ?", id)
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
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		case errors.Is(err, errDeleteHasChildren) || helper.IsForeignKeyViolation(err):
			return helper.JsonError(c, fiber.StatusConflict, "The class still has sections; remove them first")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete class")
	}
	return helper.JsonDeleted(c, "Class deleted", fiber.Map{"class_id": id})
}

var errDeleteHasChildren = errors.New("delete blocked: dependent rows exist")
