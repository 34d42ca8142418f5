package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateExamRequest struct {
	SemesterID uuid.UUID `json:"exam_semester_id" validate:"required"`
	Name       string    `json:"exam_name" validate:"required,min=1,max=80"`
	Date       time.Time `json:"exam_date" validate:"required"`
	MaxMarks   float64   `json:"exam_max_marks" validate:"gt=0,lte=1000"`
}

type UpdateExamRequest struct {
	Name     *string    `json:"exam_name" validate:"omitempty,min=1,max=80"`
	Date     *time.Time `json:"exam_date"`
	MaxMarks *float64   `json:"exam_max_marks" validate:"omitempty,gt=0,lte=1000"`
}

type GradeEntry struct {
	StudentID  uuid.UUID `json:"student_id" validate:"required"`
	Marks      float64   `json:"marks" validate:"gte=0"`
	GradePoint float64   `json:"grade_point" validate:"gte=0,lte=4"`
}

type EnterGradesRequest struct {
	ExamID    uuid.UUID    `json:"exam_id" validate:"required"`
	SubjectID uuid.UUID    `json:"subject_id" validate:"required"`
	Entries   []GradeEntry `json:"entries" validate:"required,min=1,dive"`
}

type PublishRequest struct {
	Published bool `json:"published"`
}
