package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "schoolku_backend/internals/features/school/classes/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

/* =========================================================
   TIME SLOTS ("Period 1", 08:00-08:45)
========================================================= */

type TimeSlotModel struct {
	TimeSlotID        uuid.UUID `gorm:"column:time_slot_id;type:uuid;primaryKey" json:"time_slot_id"`
	TimeSlotName      string    `gorm:"column:time_slot_name;size:40;not null;uniqueIndex:uq_time_slots_name" json:"time_slot_name"`
	TimeSlotStartTime string    `gorm:"column:time_slot_start_time;size:5;not null" json:"time_slot_start_time"`
	TimeSlotEndTime   string    `gorm:"column:time_slot_end_time;size:5;not null" json:"time_slot_end_time"`
	TimeSlotOrder     int       `gorm:"column:time_slot_order;not null;default:0;index:idx_time_slots_order" json:"time_slot_order"`

	TimeSlotCreatedAt time.Time `gorm:"column:time_slot_created_at;type:timestamptz;not null;autoCreateTime" json:"time_slot_created_at"`
	TimeSlotUpdatedAt time.Time `gorm:"column:time_slot_updated_at;type:timestamptz;not null;autoUpdateTime" json:"time_slot_updated_at"`
}

func (TimeSlotModel) TableName() string { return "time_slots" }

func (m *TimeSlotModel) BeforeCreate(tx *gorm.DB) error {
	if m.TimeSlotID == uuid.Nil {
		m.TimeSlotID = uuid.New()
	}
	return nil
}

func (m *TimeSlotModel) BeforeSave(tx *gorm.DB) error {
	m.TimeSlotName = strings.TrimSpace(m.TimeSlotName)
	for _, v := range []string{m.TimeSlotStartTime, m.TimeSlotEndTime} {
		if _, err := time.Parse("15:04", v); err != nil {
			return errors.New("time slot times must be HH:MM")
		}
	}
	return nil
}

/* =========================================================
   TIMETABLE ENTRIES
   Sparse grid keyed by (section, day, slot); the unique index is
   the conflict check. Rows are hard-deleted: a cleared period
   must free its slot immediately.
========================================================= */

const (
	DayMonday = 1
	DayFriday = 5
	DaySunday = 7
)

type TimetableEntryModel struct {
	TimetableEntryID        uuid.UUID `gorm:"column:timetable_entry_id;type:uuid;primaryKey" json:"timetable_entry_id"`
	TimetableEntrySectionID uuid.UUID `gorm:"column:timetable_entry_section_id;type:uuid;not null;index:idx_timetable_entries_section;uniqueIndex:uq_timetable_entries_slot" json:"timetable_entry_section_id"`
	TimetableEntryDay       int       `gorm:"column:timetable_entry_day;not null;uniqueIndex:uq_timetable_entries_slot" json:"timetable_entry_day"`
	TimetableEntrySlotID    uuid.UUID `gorm:"column:timetable_entry_slot_id;type:uuid;not null;uniqueIndex:uq_timetable_entries_slot" json:"timetable_entry_slot_id"`

	TimetableEntrySubjectID uuid.UUID `gorm:"column:timetable_entry_subject_id;type:uuid;not null" json:"timetable_entry_subject_id"`
	TimetableEntryTeacherID uuid.UUID `gorm:"column:timetable_entry_teacher_id;type:uuid;not null;index:idx_timetable_entries_teacher" json:"timetable_entry_teacher_id"`

	TimetableEntryCreatedAt time.Time `gorm:"column:timetable_entry_created_at;type:timestamptz;not null;autoCreateTime" json:"timetable_entry_created_at"`
	TimetableEntryUpdatedAt time.Time `gorm:"column:timetable_entry_updated_at;type:timestamptz;not null;autoUpdateTime" json:"timetable_entry_updated_at"`

	Section *classModel.SectionModel   `gorm:"foreignKey:TimetableEntrySectionID;references:SectionID" json:"section,omitempty"`
	Slot    *TimeSlotModel             `gorm:"foreignKey:TimetableEntrySlotID;references:TimeSlotID" json:"slot,omitempty"`
	Subject *subjectModel.SubjectModel `gorm:"foreignKey:TimetableEntrySubjectID;references:SubjectID" json:"subject,omitempty"`
}

func (TimetableEntryModel) TableName() string { return "timetable_entries" }

func (m *TimetableEntryModel) BeforeCreate(tx *gorm.DB) error {
	if m.TimetableEntryID == uuid.Nil {
		m.TimetableEntryID = uuid.New()
	}
	return nil
}

func (m *TimetableEntryModel) BeforeSave(tx *gorm.DB) error {
	if m.TimetableEntryDay < DayMonday || m.TimetableEntryDay > DaySunday {
		return errors.New("timetable_entry_day must be 1 (Monday) through 7 (Sunday)")
	}
	return nil
}
