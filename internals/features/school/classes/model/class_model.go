package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   CLASSES (e.g. "Grade 10")
========================================================= */

type ClassModel struct {
	ClassID    uuid.UUID `gorm:"column:class_id;type:uuid;primaryKey" json:"class_id"`
	ClassName  string    `gorm:"column:class_name;size:80;not null;uniqueIndex:uq_classes_name" json:"class_name"`
	ClassLevel int       `gorm:"column:class_level;not null;default:0;index:idx_classes_level" json:"class_level"`

	ClassCreatedAt time.Time      `gorm:"column:class_created_at;type:timestamptz;not null;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"column:class_updated_at;type:timestamptz;not null;autoUpdateTime" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}

func (m *ClassModel) BeforeSave(tx *gorm.DB) error {
	m.ClassName = strings.TrimSpace(m.ClassName)
	return nil
}

/* =========================================================
   SECTIONS (e.g. "Grade 10 - A")
========================================================= */

type SectionModel struct {
	SectionID      uuid.UUID `gorm:"column:section_id;type:uuid;primaryKey" json:"section_id"`
	SectionClassID uuid.UUID `gorm:"column:section_class_id;type:uuid;not null;index:idx_sections_class;uniqueIndex:uq_sections_class_name" json:"section_class_id"`
	SectionName    string    `gorm:"column:section_name;size:40;not null;uniqueIndex:uq_sections_class_name" json:"section_name"`

	// Advisory everywhere except Enroll, which rejects a full section.
	SectionCapacity int `gorm:"column:section_capacity;not null;default:40" json:"section_capacity"`

	SectionHomeroomTeacherID *uuid.UUID `gorm:"column:section_homeroom_teacher_id;type:uuid" json:"section_homeroom_teacher_id,omitempty"`

	SectionCreatedAt time.Time      `gorm:"column:section_created_at;type:timestamptz;not null;autoCreateTime" json:"section_created_at"`
	SectionUpdatedAt time.Time      `gorm:"column:section_updated_at;type:timestamptz;not null;autoUpdateTime" json:"section_updated_at"`
	SectionDeletedAt gorm.DeletedAt `gorm:"column:section_deleted_at;index" json:"section_deleted_at,omitempty"`

	Class *ClassModel `gorm:"foreignKey:SectionClassID;references:ClassID" json:"class,omitempty"`
}

func (SectionModel) TableName() string { return "sections" }

func (m *SectionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SectionID == uuid.Nil {
		m.SectionID = uuid.New()
	}
	return nil
}

func (m *SectionModel) BeforeSave(tx *gorm.DB) error {
	m.SectionName = strings.TrimSpace(m.SectionName)
	if m.SectionCapacity < 0 {
		return gorm.ErrInvalidData
	}
	return nil
}
