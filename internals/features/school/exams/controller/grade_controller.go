package controller

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	examDTO "schoolku_backend/internals/features/school/exams/dto"
	examModel "schoolku_backend/internals/features/school/exams/model"
	examService "schoolku_backend/internals/features/school/exams/service"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type GradesController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewGradesController(db *gorm.DB, v interface{ Struct(any) error }) *GradesController {
	return &GradesController{DB: db, Validator: v}
}

/* ===== ENTRY ===== */

// Enter records a batch of grades for one exam and subject. Re-entering
// a student's grade overwrites the earlier row; the letter always comes
// from the shared ladder.
func (h *GradesController) Enter(c *fiber.Ctx) error {
	var p examDTO.EnterGradesRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	var exam examModel.ExamModel
	if err := h.DB.First(&exam, "exam_id = ?", p.ExamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Exam not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	for _, e := range p.Entries {
		if e.Marks > exam.ExamMaxMarks {
			return helper.JsonError(c, fiber.StatusBadRequest,
				fmt.Sprintf("Marks %.1f exceed the exam maximum of %.1f", e.Marks, exam.ExamMaxMarks))
		}
	}

	enteredBy, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	rows := make([]examModel.GradeModel, 0, len(p.Entries))
	for _, e := range p.Entries {
		rows = append(rows, examModel.GradeModel{
			GradeID:        uuid.New(),
			GradeStudentID: e.StudentID,
			GradeSubjectID: p.SubjectID,
			GradeExamID:    p.ExamID,
			GradeMarks:     e.Marks,
			GradePoint:     e.GradePoint,
			GradeLetter:    examService.GradeLetter(e.GradePoint),
			GradeEnteredBy: &enteredBy,
		})
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "grade_student_id"},
				{Name: "grade_subject_id"},
				{Name: "grade_exam_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"grade_marks",
				"grade_point",
				"grade_letter",
				"grade_entered_by",
				"grade_updated_at",
			}),
		}).Create(&rows).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save grades")
	}
	return helper.JsonOK(c, "Grades saved", fiber.Map{"count": len(rows)})
}

/* ===== READS ===== */

// ListForExam returns every grade of one exam, optionally per subject.
func (h *GradesController) ListForExam(c *fiber.Ctx) error {
	examID, err := uuid.Parse(strings.TrimSpace(c.Params("exam_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid exam_id")
	}
	q := h.DB.Preload("Subject").Where("grade_exam_id = ?", examID)
	if raw := strings.TrimSpace(c.Query("subject_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid subject_id")
		}
		q = q.Where("grade_subject_id = ?", id)
	}
	var rows []examModel.GradeModel
	if err := q.Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list grades")
	}
	return helper.JsonOK(c, "", rows)
}

// ReportCard builds the semester report card for one student. Staff may
// view anyone; students only themselves; parents their children.
func (h *GradesController) ReportCard(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(strings.TrimSpace(c.Params("student_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student_id")
	}
	semesterID, err := uuid.Parse(strings.TrimSpace(c.Query("semester_id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid semester_id")
	}
	if done, err := helperAuth.RequireCanViewStudent(c, h.DB, studentID); done {
		return err
	}

	card, err := examService.BuildReportCard(h.DB, studentID, semesterID)
	if err != nil {
		switch {
		case errors.Is(err, examService.ErrSemesterNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, examService.ErrNoActiveEnrollment):
			return helper.JsonError(c, fiber.StatusNotFound, err.Error())
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to build report card")
	}
	return helper.JsonOK(c, "", card)
}
