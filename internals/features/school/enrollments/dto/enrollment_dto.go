package dto

import (
	"time"

	"github.com/google/uuid"
)

type EnrollRequest struct {
	StudentID  uuid.UUID  `json:"enrollment_student_id" validate:"required"`
	SectionID  uuid.UUID  `json:"enrollment_section_id" validate:"required"`
	YearID     uuid.UUID  `json:"enrollment_year_id" validate:"required"`
	RollNumber int        `json:"enrollment_roll_number" validate:"required,gte=1"`
	EnrolledAt *time.Time `json:"enrollment_enrolled_at"`
}

type TransferRequest struct {
	NewSectionID uuid.UUID `json:"new_section_id" validate:"required"`
	NewRoll      int       `json:"new_roll_number" validate:"required,gte=1"`
}

type BulkPromoteRequest struct {
	FromSectionID uuid.UUID `json:"from_section_id" validate:"required"`
	ToSectionID   uuid.UUID `json:"to_section_id" validate:"required"`
	ToYearID      uuid.UUID `json:"to_year_id" validate:"required"`
}
