package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	assignmentDTO "schoolku_backend/internals/features/lms/assignments/dto"
	assignmentModel "schoolku_backend/internals/features/lms/assignments/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type AssignmentsController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewAssignmentsController(db *gorm.DB, v interface{ Struct(any) error }) *AssignmentsController {
	return &AssignmentsController{DB: db, Validator: v}
}

/* ===== READS ===== */

func (h *AssignmentsController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&assignmentModel.AssignmentModel{}).
		Preload("ClassSubject").Preload("ClassSubject.Subject")
	if raw := strings.TrimSpace(c.Query("class_subject_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_subject_id")
		}
		q = q.Where("assignment_class_subject_id = ?", id)
	}
	if raw := strings.TrimSpace(c.Query("teacher_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher_id")
		}
		q = q.Where("assignment_teacher_id = ?", id)
	}
	var rows []assignmentModel.AssignmentModel
	if err := q.Order("assignment_due_date ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list assignments")
	}
	return helper.JsonOK(c, "", rows)
}

func (h *AssignmentsController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent assignmentModel.AssignmentModel
	if err := h.DB.Preload("ClassSubject").Preload("ClassSubject.Subject").
		First(&ent, "assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "", ent)
}

/* ===== TEACHER CRUD ===== */

// Create accepts multipart (optional attachment) or plain JSON.
func (h *AssignmentsController) Create(c *fiber.Ctx) error {
	var p assignmentDTO.CreateAssignmentRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if p.MaxPoints == 0 {
		p.MaxPoints = 100
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	teacherID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var cs subjectModel.ClassSubjectModel
	if err := h.DB.First(&cs, "class_subject_id = ?", p.ClassSubjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class subject not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	ent := assignmentModel.AssignmentModel{
		AssignmentClassSubjectID: p.ClassSubjectID,
		AssignmentTeacherID:      teacherID,
		AssignmentTitle:          p.Title,
		AssignmentDescription:    p.Description,
		AssignmentDueDate:        p.DueDate,
		AssignmentMaxPoints:      p.MaxPoints,
	}
	if fh, err := c.FormFile("attachment"); err == nil && fh != nil {
		path, err := helper.SaveUpload(c, fh, constants.UploadKindAttachment, "assignments")
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		ent.AssignmentAttachmentPath = &path
	}

	if err := h.DB.Create(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Assignment created", ent)
}

func (h *AssignmentsController) Update(c *fiber.Ctx) error {
	ent, answered, err := h.loadOwned(c)
	if answered {
		return err
	}

	var p assignmentDTO.UpdateAssignmentRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	if p.Title != nil {
		ent.AssignmentTitle = *p.Title
	}
	if p.Description != nil {
		ent.AssignmentDescription = *p.Description
	}
	if p.DueDate != nil {
		ent.AssignmentDueDate = *p.DueDate
	}
	if p.MaxPoints != nil {
		ent.AssignmentMaxPoints = *p.MaxPoints
	}
	if fh, err := c.FormFile("attachment"); err == nil && fh != nil {
		path, err := helper.SaveUpload(c, fh, constants.UploadKindAttachment, "assignments")
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		if ent.AssignmentAttachmentPath != nil {
			helper.RemoveUpload(*ent.AssignmentAttachmentPath)
		}
		ent.AssignmentAttachmentPath = &path
	}

	if err := h.DB.Save(ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Assignment updated", ent)
}

func (h *AssignmentsController) Delete(c *fiber.Ctx) error {
	ent, answered, err := h.loadOwned(c)
	if answered {
		return err
	}
	if err := h.DB.Delete(ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete assignment")
	}
	return helper.JsonDeleted(c, "Assignment deleted", fiber.Map{"assignment_id": ent.AssignmentID})
}

// loadOwned fetches the assignment and enforces ownership: teachers
// may only touch their own assignments, management may touch any.
func (h *AssignmentsController) loadOwned(c *fiber.Ctx) (*assignmentModel.AssignmentModel, bool, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, true, helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent assignmentModel.AssignmentModel
	if err := h.DB.First(&ent, "assignment_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, true, helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return nil, true, helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !helperAuth.HasAnyRole(c, constants.ManagementRoles...) && !helperAuth.IsSelf(c, ent.AssignmentTeacherID) {
		return nil, true, helper.JsonError(c, fiber.StatusForbidden, "You may only manage your own assignments")
	}
	return &ent, false, nil
}
