package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	quizDTO "schoolku_backend/internals/features/lms/quizzes/dto"
	quizModel "schoolku_backend/internals/features/lms/quizzes/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type QuizzesController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewQuizzesController(db *gorm.DB, v interface{ Struct(any) error }) *QuizzesController {
	return &QuizzesController{DB: db, Validator: v}
}

func (h *QuizzesController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&quizModel.QuizModel{}).Preload("ClassSubject").Preload("ClassSubject.Subject")
	if raw := strings.TrimSpace(c.Query("class_subject_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_subject_id")
		}
		q = q.Where("quiz_class_subject_id = ?", id)
	}
	var rows []quizModel.QuizModel
	if err := q.Order("quiz_available_from ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list quizzes")
	}
	return helper.JsonOK(c, "", rows)
}

func (h *QuizzesController) Create(c *fiber.Ctx) error {
	var p quizDTO.CreateQuizRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if p.TotalPoints == 0 {
		p.TotalPoints = 100
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	teacherID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	ent := quizModel.QuizModel{
		QuizClassSubjectID: p.ClassSubjectID,
		QuizTeacherID:      teacherID,
		QuizTitle:          p.Title,
		QuizQuestionCount:  p.QuestionCount,
		QuizTotalPoints:    p.TotalPoints,
		QuizAvailableFrom:  p.AvailableFrom,
		QuizAvailableUntil: p.AvailableUntil,
	}
	if err := h.DB.Create(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Quiz created", ent)
}

func (h *QuizzesController) Update(c *fiber.Ctx) error {
	ent, answered, err := h.loadOwned(c)
	if answered {
		return err
	}

	var p quizDTO.UpdateQuizRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	if p.Title != nil {
		ent.QuizTitle = *p.Title
	}
	if p.QuestionCount != nil {
		ent.QuizQuestionCount = *p.QuestionCount
	}
	if p.TotalPoints != nil {
		ent.QuizTotalPoints = *p.TotalPoints
	}
	if p.AvailableFrom != nil {
		ent.QuizAvailableFrom = *p.AvailableFrom
	}
	if p.AvailableUntil != nil {
		ent.QuizAvailableUntil = *p.AvailableUntil
	}
	if err := h.DB.Save(ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Quiz updated", ent)
}

func (h *QuizzesController) Delete(c *fiber.Ctx) error {
	ent, answered, err := h.loadOwned(c)
	if answered {
		return err
	}
	if err := h.DB.Delete(ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete quiz")
	}
	return helper.JsonDeleted(c, "Quiz deleted", fiber.Map{"quiz_id": ent.QuizID})
}

func (h *QuizzesController) loadOwned(c *fiber.Ctx) (*quizModel.QuizModel, bool, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, true, helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent quizModel.QuizModel
	if err := h.DB.First(&ent, "quiz_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, true, helper.JsonError(c, fiber.StatusNotFound, "Quiz not found")
		}
		return nil, true, helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !helperAuth.HasAnyRole(c, constants.ManagementRoles...) && !helperAuth.IsSelf(c, ent.QuizTeacherID) {
		return nil, true, helper.JsonError(c, fiber.StatusForbidden, "You may only manage your own quizzes")
	}
	return &ent, false, nil
}
