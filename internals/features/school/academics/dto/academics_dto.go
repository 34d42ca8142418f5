package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateAcademicYearRequest struct {
	Name      string    `json:"academic_year_name" validate:"required,min=4,max=40"`
	StartDate time.Time `json:"academic_year_start_date" validate:"required"`
	EndDate   time.Time `json:"academic_year_end_date" validate:"required"`
}

type UpdateAcademicYearRequest struct {
	Name      *string    `json:"academic_year_name" validate:"omitempty,min=4,max=40"`
	StartDate *time.Time `json:"academic_year_start_date"`
	EndDate   *time.Time `json:"academic_year_end_date"`
}

type CreateSemesterRequest struct {
	YearID    uuid.UUID `json:"semester_year_id" validate:"required"`
	Name      string    `json:"semester_name" validate:"required,min=1,max=40"`
	StartDate time.Time `json:"semester_start_date" validate:"required"`
	EndDate   time.Time `json:"semester_end_date" validate:"required"`
}

type UpdateSemesterRequest struct {
	Name      *string    `json:"semester_name" validate:"omitempty,min=1,max=40"`
	StartDate *time.Time `json:"semester_start_date"`
	EndDate   *time.Time `json:"semester_end_date"`
}

type SetCurrentRequest struct {
	ID uuid.UUID `json:"id" validate:"required"`
}
