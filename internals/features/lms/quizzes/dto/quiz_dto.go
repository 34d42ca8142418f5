package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateQuizRequest struct {
	ClassSubjectID uuid.UUID `json:"quiz_class_subject_id" validate:"required"`
	Title          string    `json:"quiz_title" validate:"required,min=1,max=160"`
	QuestionCount  int       `json:"quiz_question_count" validate:"gte=0,lte=500"`
	TotalPoints    float64   `json:"quiz_total_points" validate:"gte=0,lte=1000"`
	AvailableFrom  time.Time `json:"quiz_available_from" validate:"required"`
	AvailableUntil time.Time `json:"quiz_available_until" validate:"required"`
}

type UpdateQuizRequest struct {
	Title          *string    `json:"quiz_title" validate:"omitempty,min=1,max=160"`
	QuestionCount  *int       `json:"quiz_question_count" validate:"omitempty,gte=0,lte=500"`
	TotalPoints    *float64   `json:"quiz_total_points" validate:"omitempty,gte=0,lte=1000"`
	AvailableFrom  *time.Time `json:"quiz_available_from"`
	AvailableUntil *time.Time `json:"quiz_available_until"`
}
