package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   STUDENT ATTENDANCE
   One row per (student, date); marking the same day twice
   overwrites the earlier status via upsert.
========================================================= */

const (
	AttendanceStatusPresent = "present"
	AttendanceStatusAbsent  = "absent"
	AttendanceStatusLate    = "late"
	AttendanceStatusExcused = "excused"
)

var AttendanceStatuses = []string{
	AttendanceStatusPresent,
	AttendanceStatusAbsent,
	AttendanceStatusLate,
	AttendanceStatusExcused,
}

func IsAttendanceStatus(s string) bool {
	for _, v := range AttendanceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type StudentAttendanceModel struct {
	StudentAttendanceID        uuid.UUID `gorm:"column:student_attendance_id;type:uuid;primaryKey" json:"student_attendance_id"`
	StudentAttendanceStudentID uuid.UUID `gorm:"column:student_attendance_student_id;type:uuid;not null;uniqueIndex:uq_student_attendance_day;index:idx_student_attendance_student" json:"student_attendance_student_id"`
	StudentAttendanceDate      time.Time `gorm:"column:student_attendance_date;type:date;not null;uniqueIndex:uq_student_attendance_day" json:"student_attendance_date"`

	StudentAttendanceStatus string `gorm:"column:student_attendance_status;size:10;not null" json:"student_attendance_status"`
	StudentAttendanceNote   string `gorm:"column:student_attendance_note;size:255" json:"student_attendance_note,omitempty"`

	StudentAttendanceMarkedBy *uuid.UUID `gorm:"column:student_attendance_marked_by;type:uuid" json:"student_attendance_marked_by,omitempty"`

	StudentAttendanceCreatedAt time.Time `gorm:"column:student_attendance_created_at;type:timestamptz;not null;autoCreateTime" json:"student_attendance_created_at"`
	StudentAttendanceUpdatedAt time.Time `gorm:"column:student_attendance_updated_at;type:timestamptz;not null;autoUpdateTime" json:"student_attendance_updated_at"`
}

func (StudentAttendanceModel) TableName() string { return "student_attendance" }

func (m *StudentAttendanceModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentAttendanceID == uuid.Nil {
		m.StudentAttendanceID = uuid.New()
	}
	return nil
}
