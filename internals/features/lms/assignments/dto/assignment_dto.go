package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAssignmentRequest struct {
	ClassSubjectID uuid.UUID `json:"assignment_class_subject_id" form:"assignment_class_subject_id" validate:"required"`
	Title          string    `json:"assignment_title" form:"assignment_title" validate:"required,min=1,max=160"`
	Description    string    `json:"assignment_description" form:"assignment_description" validate:"omitempty,max=10000"`
	DueDate        time.Time `json:"assignment_due_date" form:"assignment_due_date" validate:"required"`
	MaxPoints      float64   `json:"assignment_max_points" form:"assignment_max_points" validate:"gte=0,lte=1000"`
}

type UpdateAssignmentRequest struct {
	Title       *string    `json:"assignment_title" form:"assignment_title" validate:"omitempty,min=1,max=160"`
	Description *string    `json:"assignment_description" form:"assignment_description" validate:"omitempty,max=10000"`
	DueDate     *time.Time `json:"assignment_due_date" form:"assignment_due_date"`
	MaxPoints   *float64   `json:"assignment_max_points" form:"assignment_max_points" validate:"omitempty,gte=0,lte=1000"`
}

type SubmitRequest struct {
	Text string `json:"submission_text" form:"submission_text" validate:"omitempty,max=20000"`
}

type GradeSubmissionRequest struct {
	Points   float64 `json:"submission_points" validate:"gte=0"`
	Feedback string  `json:"submission_feedback" validate:"omitempty,max=10000"`
}
