package controller

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	assignmentDTO "schoolku_backend/internals/features/lms/assignments/dto"
	assignmentModel "schoolku_backend/internals/features/lms/assignments/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type SubmissionsController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewSubmissionsController(db *gorm.DB, v interface{ Struct(any) error }) *SubmissionsController {
	return &SubmissionsController{DB: db, Validator: v}
}

/* ===== STUDENT SUBMIT ===== */

// Submit records a student's work for an assignment. Submitting after
// the due date is accepted and flagged late; submitting twice is a 409.
func (h *SubmissionsController) Submit(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(strings.TrimSpace(c.Params("assignment_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment_id")
	}

	var p assignmentDTO.SubmitRequest
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

	var assignment assignmentModel.AssignmentModel
	if err := h.DB.First(&assignment, "assignment_id = ?", assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	now := time.Now()
	ent := assignmentModel.AssignmentSubmissionModel{
		SubmissionAssignmentID: assignmentID,
		SubmissionStudentID:    studentID,
		SubmissionText:         p.Text,
		SubmissionSubmittedAt:  now,
		SubmissionIsLate:       now.After(assignment.AssignmentDueDate),
	}
	if fh, err := c.FormFile("attachment"); err == nil && fh != nil {
		path, err := helper.SaveUpload(c, fh, constants.UploadKindAttachment, "submissions")
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		ent.SubmissionAttachmentPath = &path
	}

	if err := h.DB.Create(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_submissions_assignment_student", "submission_student_id") {
			return helper.JsonError(c, fiber.StatusConflict, "You have already submitted this assignment")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Submission received", ent)
}

/* ===== TEACHER SIDE ===== */

func (h *SubmissionsController) ListForAssignment(c *fiber.Ctx) error {
	assignmentID, err := uuid.Parse(strings.TrimSpace(c.Params("assignment_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid assignment_id")
	}
	var rows []assignmentModel.AssignmentSubmissionModel
	if err := h.DB.
		Where("submission_assignment_id = ?", assignmentID).
		Order("submission_submitted_at ASC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list submissions")
	}
	return helper.JsonOK(c, "", rows)
}

// Grade sets points and feedback; points must not exceed the
// assignment's maximum.
func (h *SubmissionsController) Grade(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var p assignmentDTO.GradeSubmissionRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	var ent assignmentModel.AssignmentSubmissionModel
	if err := h.DB.Preload("Assignment").First(&ent, "submission_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Submission not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if ent.Assignment != nil && p.Points > ent.Assignment.AssignmentMaxPoints {
		return helper.JsonError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Points %.1f exceed the assignment maximum of %.1f", p.Points, ent.Assignment.AssignmentMaxPoints))
	}

	gradedBy, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	now := time.Now()
	ent.SubmissionPoints = &p.Points
	ent.SubmissionFeedback = p.Feedback
	ent.SubmissionGradedBy = &gradedBy
	ent.SubmissionGradedAt = &now

	if err := h.DB.Save(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Submission graded", ent)
}

/* ===== STUDENT READS ===== */

// Mine lists the signed-in student's own submissions.
func (h *SubmissionsController) Mine(c *fiber.Ctx) error {
	studentID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var rows []assignmentModel.AssignmentSubmissionModel
	if err := h.DB.Preload("Assignment").
		Where("submission_student_id = ?", studentID).
		Order("submission_submitted_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list submissions")
	}
	return helper.JsonOK(c, "", rows)
}
