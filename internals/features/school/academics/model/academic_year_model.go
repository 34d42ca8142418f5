package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =======================================================
   ACADEMIC YEARS
   ======================================================= */

type AcademicYearModel struct {
	AcademicYearID        uuid.UUID `gorm:"column:academic_year_id;type:uuid;primaryKey" json:"academic_year_id"`
	AcademicYearName      string    `gorm:"column:academic_year_name;size:40;not null;uniqueIndex:uq_academic_years_name" json:"academic_year_name"`
	AcademicYearStartDate time.Time `gorm:"column:academic_year_start_date;type:date;not null" json:"academic_year_start_date"`
	AcademicYearEndDate   time.Time `gorm:"column:academic_year_end_date;type:date;not null" json:"academic_year_end_date"`

	AcademicYearCreatedAt time.Time      `gorm:"column:academic_year_created_at;type:timestamptz;not null;autoCreateTime" json:"academic_year_created_at"`
	AcademicYearUpdatedAt time.Time      `gorm:"column:academic_year_updated_at;type:timestamptz;not null;autoUpdateTime" json:"academic_year_updated_at"`
	AcademicYearDeletedAt gorm.DeletedAt `gorm:"column:academic_year_deleted_at;index" json:"academic_year_deleted_at,omitempty"`
}

func (AcademicYearModel) TableName() string { return "academic_years" }

func (m *AcademicYearModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicYearID == uuid.Nil {
		m.AcademicYearID = uuid.New()
	}
	return nil
}

func (m *AcademicYearModel) BeforeSave(tx *gorm.DB) error {
	m.AcademicYearName = strings.TrimSpace(m.AcademicYearName)
	if m.AcademicYearEndDate.Before(m.AcademicYearStartDate) {
		return errors.New("academic_year_end_date must be >= academic_year_start_date")
	}
	return nil
}

/* =======================================================
   SEMESTERS
   ======================================================= */

type SemesterModel struct {
	SemesterID        uuid.UUID `gorm:"column:semester_id;type:uuid;primaryKey" json:"semester_id"`
	SemesterYearID    uuid.UUID `gorm:"column:semester_year_id;type:uuid;not null;index:idx_semesters_year;uniqueIndex:uq_semesters_year_name" json:"semester_year_id"`
	SemesterName      string    `gorm:"column:semester_name;size:40;not null;uniqueIndex:uq_semesters_year_name" json:"semester_name"`
	SemesterStartDate time.Time `gorm:"column:semester_start_date;type:date;not null" json:"semester_start_date"`
	SemesterEndDate   time.Time `gorm:"column:semester_end_date;type:date;not null" json:"semester_end_date"`

	SemesterCreatedAt time.Time      `gorm:"column:semester_created_at;type:timestamptz;not null;autoCreateTime" json:"semester_created_at"`
	SemesterUpdatedAt time.Time      `gorm:"column:semester_updated_at;type:timestamptz;not null;autoUpdateTime" json:"semester_updated_at"`
	SemesterDeletedAt gorm.DeletedAt `gorm:"column:semester_deleted_at;index" json:"semester_deleted_at,omitempty"`
}

func (SemesterModel) TableName() string { return "semesters" }

func (m *SemesterModel) BeforeCreate(tx *gorm.DB) error {
	if m.SemesterID == uuid.Nil {
		m.SemesterID = uuid.New()
	}
	return nil
}

func (m *SemesterModel) BeforeSave(tx *gorm.DB) error {
	m.SemesterName = strings.TrimSpace(m.SemesterName)
	if m.SemesterEndDate.Before(m.SemesterStartDate) {
		return errors.New("semester_end_date must be >= semester_start_date")
	}
	return nil
}
