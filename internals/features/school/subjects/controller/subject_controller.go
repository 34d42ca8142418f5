package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	subjectDTO "schoolku_backend/internals/features/school/subjects/dto"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	helper "schoolku_backend/internals/helpers"
)

type SubjectsController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewSubjectsController(db *gorm.DB, v interface{ Struct(any) error }) *SubjectsController {
	return &SubjectsController{DB: db, Validator: v}
}

func (h *SubjectsController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&subjectModel.SubjectModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(subject_name) LIKE ? OR LOWER(subject_code) LIKE ?", like, like)
	}
	var rows []subjectModel.SubjectModel
	if err := q.Order("subject_code ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list subjects")
	}
	return helper.JsonOK(c, "", rows)
}

func (h *SubjectsController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent subjectModel.SubjectModel
	if err := h.DB.First(&ent, "subject_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "", ent)
}

func (h *SubjectsController) Create(c *fiber.Ctx) error {
	var p subjectDTO.CreateSubjectRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	ent := subjectModel.SubjectModel{
		SubjectCode:        p.Code,
		SubjectName:        p.Name,
		SubjectDescription: p.Description,
	}
	if err := h.DB.Create(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_subjects_code") {
			return helper.JsonError(c, fiber.StatusConflict, "A subject with that code already exists")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Subject created", ent)
}

func (h *SubjectsController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent subjectModel.SubjectModel
	if err := h.DB.First(&ent, "subject_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var p subjectDTO.UpdateSubjectRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	p.Apply(&ent)
	if err := h.DB.Save(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_subjects_code") {
			return helper.JsonError(c, fiber.StatusConflict, "A subject with that code already exists")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Subject updated", ent)
}

func (h *SubjectsController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var assigned int64
		if err := tx.Model(&subjectModel.ClassSubjectModel{}).
			Where("class_subject_subject_id = ?", id).
			Count(&assigned).Error; err != nil {
			return err
		}
		if assigned > 0 {
			return errSubjectAssigned
		}
		res := tx.Delete(&subjectModel.SubjectModel{}, "subject_id = ?", id)
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
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		case errors.Is(err, errSubjectAssigned) || helper.IsForeignKeyViolation(err):
			return helper.JsonError(c, fiber.StatusConflict, "The subject is still assigned to classes")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete subject")
	}
	return helper.JsonDeleted(c, "Subject deleted", fiber.Map{"subject_id": id})
}

var errSubjectAssigned = errors.New("delete blocked: subject still assigned")
