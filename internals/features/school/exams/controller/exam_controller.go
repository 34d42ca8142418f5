package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	examDTO "schoolku_backend/internals/features/school/exams/dto"
	examModel "schoolku_backend/internals/features/school/exams/model"
	helper "schoolku_backend/internals/helpers"
)

type ExamsController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewExamsController(db *gorm.DB, v interface{ Struct(any) error }) *ExamsController {
	return &ExamsController{DB: db, Validator: v}
}

func (h *ExamsController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&examModel.ExamModel{})
	if raw := strings.TrimSpace(c.Query("semester_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid semester_id")
		}
		q = q.Where("exam_semester_id = ?", id)
	}
	var rows []examModel.ExamModel
	if err := q.Order("exam_date ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list exams")
	}
	return helper.JsonOK(c, "", rows)
}

func (h *ExamsController) Create(c *fiber.Ctx) error {
	var p examDTO.CreateExamRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if p.MaxMarks == 0 {
		p.MaxMarks = 100
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	ent := examModel.ExamModel{
		ExamSemesterID: p.SemesterID,
		ExamName:       p.Name,
		ExamDate:       p.Date,
		ExamMaxMarks:   p.MaxMarks,
	}
	if err := h.DB.Create(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_exams_semester_name") {
			return helper.JsonError(c, fiber.StatusConflict, "An exam with that name already exists in this semester")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Exam created", ent)
}

func (h *ExamsController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent examModel.ExamModel
	if err := h.DB.First(&ent, "exam_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var p examDTO.UpdateExamRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	if p.Name != nil {
		ent.ExamName = *p.Name
	}
	if p.Date != nil {
		ent.ExamDate = *p.Date
	}
	if p.MaxMarks != nil {
		ent.ExamMaxMarks = *p.MaxMarks
	}
	if err := h.DB.Save(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_exams_semester_name") {
			return helper.JsonError(c, fiber.StatusConflict, "An exam with that name already exists in this semester")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Exam updated", ent)
}

func (h *ExamsController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var graded int64
		if err := tx.Model(&examModel.GradeModel{}).
			Where("grade_exam_id = ?", id).
			Count(&graded).Error; err != nil {
			return err
		}
		if graded > 0 {
			return errExamHasGrades
		}
		res := tx.Delete(&examModel.ExamModel{}, "exam_id = ?", id)
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
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		case errors.Is(err, errExamHasGrades) || helper.IsForeignKeyViolation(err):
			return helper.JsonError(c, fiber.StatusConflict, "The exam still has grades")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete exam")
	}
	return helper.JsonDeleted(c, "Exam deleted", fiber.Map{"exam_id": id})
}

// SetPublished flips visibility of every grade of the exam for
// students and parents.
func (h *ExamsController) SetPublished(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var p examDTO.PublishRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	var ent examModel.ExamModel
	if err := h.DB.First(&ent, "exam_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	if err := h.DB.Model(&examModel.GradeModel{}).
		Where("grade_exam_id = ?", id).
		Update("grade_is_published", p.Published).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update publish state")
	}

	msg := "Grades unpublished"
	if p.Published {
		msg = "Grades published"
	}
	return helper.JsonUpdated(c, msg, fiber.Map{"exam_id": id, "published": p.Published})
}

var errExamHasGrades = errors.New("delete blocked: exam has grades")
