package dto

import (
	"time"

	"github.com/google/uuid"
)

type MarkEntry struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=present absent late excused"`
	Note      string    `json:"note" validate:"omitempty,max=255"`
}

type BulkMarkRequest struct {
	Date    time.Time   `json:"date" validate:"required"`
	Entries []MarkEntry `json:"entries" validate:"required,min=1,dive"`
}
