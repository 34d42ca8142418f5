package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SchoolModel is the single settings row. The "current" academic year
// and semester are nullable pointers here instead of is_current booleans
// scattered over the year/semester tables, so exclusivity holds by
// construction.
type SchoolModel struct {
	SchoolID                uuid.UUID  `gorm:"column:school_id;type:uuid;primaryKey" json:"school_id"`
	SchoolName              string     `gorm:"column:school_name;size:160;not null" json:"school_name"`
	SchoolAddress           *string    `gorm:"column:school_address;type:text" json:"school_address,omitempty"`
	SchoolCurrentYearID     *uuid.UUID `gorm:"column:school_current_year_id;type:uuid" json:"school_current_year_id,omitempty"`
	SchoolCurrentSemesterID *uuid.UUID `gorm:"column:school_current_semester_id;type:uuid" json:"school_current_semester_id,omitempty"`

	SchoolCreatedAt time.Time `gorm:"column:school_created_at;type:timestamptz;not null;autoCreateTime" json:"school_created_at"`
	SchoolUpdatedAt time.Time `gorm:"column:school_updated_at;type:timestamptz;not null;autoUpdateTime" json:"school_updated_at"`
}

func (SchoolModel) TableName() string { return "schools" }

func (m *SchoolModel) BeforeCreate(tx *gorm.DB) error {
	if m.SchoolID == uuid.Nil {
		m.SchoolID = uuid.New()
	}
	return nil
}
