package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "schoolku_backend/internals/features/school/classes/model"
)

/* =========================================================
   SUBJECTS
========================================================= */

type SubjectModel struct {
	SubjectID          uuid.UUID `gorm:"column:subject_id;type:uuid;primaryKey" json:"subject_id"`
	SubjectCode        string    `gorm:"column:subject_code;size:20;not null;uniqueIndex:uq_subjects_code" json:"subject_code"`
	SubjectName        string    `gorm:"column:subject_name;size:80;not null" json:"subject_name"`
	SubjectDescription string    `gorm:"column:subject_description;type:text" json:"subject_description,omitempty"`

	SubjectCreatedAt time.Time      `gorm:"column:subject_created_at;type:timestamptz;not null;autoCreateTime" json:"subject_created_at"`
	SubjectUpdatedAt time.Time      `gorm:"column:subject_updated_at;type:timestamptz;not null;autoUpdateTime" json:"subject_updated_at"`
	SubjectDeletedAt gorm.DeletedAt `gorm:"column:subject_deleted_at;index" json:"subject_deleted_at,omitempty"`
}

func (SubjectModel) TableName() string { return "subjects" }

func (m *SubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubjectID == uuid.Nil {
		m.SubjectID = uuid.New()
	}
	return nil
}

func (m *SubjectModel) BeforeSave(tx *gorm.DB) error {
	m.SubjectCode = strings.ToUpper(strings.TrimSpace(m.SubjectCode))
	m.SubjectName = strings.TrimSpace(m.SubjectName)
	return nil
}

/* =========================================================
   CLASS-SUBJECT ASSIGNMENTS
========================================================= */

type ClassSubjectModel struct {
	ClassSubjectID        uuid.UUID `gorm:"column:class_subject_id;type:uuid;primaryKey" json:"class_subject_id"`
	ClassSubjectClassID   uuid.UUID `gorm:"column:class_subject_class_id;type:uuid;not null;index:idx_class_subjects_class;uniqueIndex:uq_class_subjects_pair" json:"class_subject_class_id"`
	ClassSubjectSubjectID uuid.UUID `gorm:"column:class_subject_subject_id;type:uuid;not null;uniqueIndex:uq_class_subjects_pair" json:"class_subject_subject_id"`

	ClassSubjectIsMandatory bool `gorm:"column:class_subject_is_mandatory;not null;default:true" json:"class_subject_is_mandatory"`

	ClassSubjectCreatedAt time.Time      `gorm:"column:class_subject_created_at;type:timestamptz;not null;autoCreateTime" json:"class_subject_created_at"`
	ClassSubjectUpdatedAt time.Time      `gorm:"column:class_subject_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_subject_updated_at"`
	ClassSubjectDeletedAt gorm.DeletedAt `gorm:"column:class_subject_deleted_at;index" json:"class_subject_deleted_at,omitempty"`

	Class   *classModel.ClassModel `gorm:"foreignKey:ClassSubjectClassID;references:ClassID" json:"class,omitempty"`
	Subject *SubjectModel          `gorm:"foreignKey:ClassSubjectSubjectID;references:SubjectID" json:"subject,omitempty"`
}

func (ClassSubjectModel) TableName() string { return "class_subjects" }

func (m *ClassSubjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassSubjectID == uuid.Nil {
		m.ClassSubjectID = uuid.New()
	}
	return nil
}
