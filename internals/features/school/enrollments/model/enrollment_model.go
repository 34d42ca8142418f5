package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	acModel "schoolku_backend/internals/features/school/academics/model"
	classModel "schoolku_backend/internals/features/school/classes/model"
)

/* =========================================================
   ENROLLMENTS
   One row per (student, section, year) placement. Uniqueness of
   the active rows is enforced by partial unique indexes created
   in the migration step, not by pre-checks:
     - one active enrollment per student
     - one active roll number per section
========================================================= */

const (
	EnrollmentStatusActive    = "active"
	EnrollmentStatusInactive  = "inactive"
	EnrollmentStatusWithdrawn = "withdrawn"
)

type EnrollmentModel struct {
	EnrollmentID        uuid.UUID `gorm:"column:enrollment_id;type:uuid;primaryKey" json:"enrollment_id"`
	EnrollmentStudentID uuid.UUID `gorm:"column:enrollment_student_id;type:uuid;not null;index:idx_enrollments_student" json:"enrollment_student_id"`
	EnrollmentSectionID uuid.UUID `gorm:"column:enrollment_section_id;type:uuid;not null;index:idx_enrollments_section" json:"enrollment_section_id"`
	EnrollmentYearID    uuid.UUID `gorm:"column:enrollment_year_id;type:uuid;not null;index:idx_enrollments_year" json:"enrollment_year_id"`

	EnrollmentRollNumber int    `gorm:"column:enrollment_roll_number;not null" json:"enrollment_roll_number"`
	EnrollmentStatus     string `gorm:"column:enrollment_status;size:12;not null;default:active;index:idx_enrollments_status" json:"enrollment_status"`

	EnrollmentEnrolledAt time.Time `gorm:"column:enrollment_enrolled_at;type:date;not null" json:"enrollment_enrolled_at"`

	EnrollmentCreatedAt time.Time      `gorm:"column:enrollment_created_at;type:timestamptz;not null;autoCreateTime" json:"enrollment_created_at"`
	EnrollmentUpdatedAt time.Time      `gorm:"column:enrollment_updated_at;type:timestamptz;not null;autoUpdateTime" json:"enrollment_updated_at"`
	EnrollmentDeletedAt gorm.DeletedAt `gorm:"column:enrollment_deleted_at;index" json:"enrollment_deleted_at,omitempty"`

	Section *classModel.SectionModel  `gorm:"foreignKey:EnrollmentSectionID;references:SectionID" json:"section,omitempty"`
	Year    *acModel.AcademicYearModel `gorm:"foreignKey:EnrollmentYearID;references:AcademicYearID" json:"year,omitempty"`
}

func (EnrollmentModel) TableName() string { return "enrollments" }

func (m *EnrollmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.EnrollmentID == uuid.Nil {
		m.EnrollmentID = uuid.New()
	}
	if m.EnrollmentEnrolledAt.IsZero() {
		m.EnrollmentEnrolledAt = time.Now()
	}
	return nil
}

func (m *EnrollmentModel) IsActive() bool {
	return m.EnrollmentStatus == EnrollmentStatusActive
}
