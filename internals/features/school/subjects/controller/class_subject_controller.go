package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "schoolku_backend/internals/features/school/classes/model"
	subjectDTO "schoolku_backend/internals/features/school/subjects/dto"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	helper "schoolku_backend/internals/helpers"
)

// ClassSubjectsController manages which subjects are taught in which
// class and whether they are mandatory.
type ClassSubjectsController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewClassSubjectsController(db *gorm.DB, v interface{ Struct(any) error }) *ClassSubjectsController {
	return &ClassSubjectsController{DB: db, Validator: v}
}

// List assignments for one class (?class_id= required).
func (h *ClassSubjectsController) List(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("class_id"))
	if raw == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "class_id is required")
	}
	classID, err := uuid.Parse(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id")
	}

	var rows []subjectModel.ClassSubjectModel
	if err := h.DB.Preload("Subject").
		Where("class_subject_class_id = ?", classID).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list class subjects")
	}
	return helper.JsonOK(c, "", rows)
}

func (h *ClassSubjectsController) Assign(c *fiber.Ctx) error {
	var p subjectDTO.AssignSubjectRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	var class classModel.ClassModel
	if err := h.DB.First(&class, "class_id = ?", p.ClassID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var subject subjectModel.SubjectModel
	if err := h.DB.First(&subject, "subject_id = ?", p.SubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	ent := subjectModel.ClassSubjectModel{
		ClassSubjectClassID:     p.ClassID,
		ClassSubjectSubjectID:   p.SubjectID,
		ClassSubjectIsMandatory: true,
	}
	if p.IsMandatory != nil {
		ent.ClassSubjectIsMandatory = *p.IsMandatory
	}
	if err := h.DB.Create(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_class_subjects_pair") {
			return helper.JsonError(c, fiber.StatusConflict, "The subject is already assigned to this class")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Subject assigned", ent)
}

func (h *ClassSubjectsController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent subjectModel.ClassSubjectModel
	if err := h.DB.First(&ent, "class_subject_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var p subjectDTO.UpdateAssignmentRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	ent.ClassSubjectIsMandatory = p.IsMandatory
	if err := h.DB.Save(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Assignment updated", ent)
}

func (h *ClassSubjectsController) Unassign(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	res := h.DB.Delete(&subjectModel.ClassSubjectModel{}, "class_subject_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to unassign subject")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
	}
	return helper.JsonDeleted(c, "Subject unassigned", fiber.Map{"class_subject_id": id})
}
