package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

/* =========================================================
   QUIZZES
========================================================= */

type QuizModel struct {
	QuizID             uuid.UUID `gorm:"column:quiz_id;type:uuid;primaryKey" json:"quiz_id"`
	QuizClassSubjectID uuid.UUID `gorm:"column:quiz_class_subject_id;type:uuid;not null;index:idx_quizzes_class_subject" json:"quiz_class_subject_id"`
	QuizTeacherID      uuid.UUID `gorm:"column:quiz_teacher_id;type:uuid;not null;index:idx_quizzes_teacher" json:"quiz_teacher_id"`

	QuizTitle         string  `gorm:"column:quiz_title;size:160;not null" json:"quiz_title"`
	QuizQuestionCount int     `gorm:"column:quiz_question_count;not null;default:0" json:"quiz_question_count"`
	QuizTotalPoints   float64 `gorm:"column:quiz_total_points;not null;default:100" json:"quiz_total_points"`

	QuizAvailableFrom  time.Time `gorm:"column:quiz_available_from;type:timestamptz;not null" json:"quiz_available_from"`
	QuizAvailableUntil time.Time `gorm:"column:quiz_available_until;type:timestamptz;not null" json:"quiz_available_until"`

	QuizCreatedAt time.Time      `gorm:"column:quiz_created_at;type:timestamptz;not null;autoCreateTime" json:"quiz_created_at"`
	QuizUpdatedAt time.Time      `gorm:"column:quiz_updated_at;type:timestamptz;not null;autoUpdateTime" json:"quiz_updated_at"`
	QuizDeletedAt gorm.DeletedAt `gorm:"column:quiz_deleted_at;index" json:"quiz_deleted_at,omitempty"`

	ClassSubject *subjectModel.ClassSubjectModel `gorm:"foreignKey:QuizClassSubjectID;references:ClassSubjectID" json:"class_subject,omitempty"`
}

func (QuizModel) TableName() string { return "quizzes" }

func (m *QuizModel) BeforeCreate(tx *gorm.DB) error {
	if m.QuizID == uuid.Nil {
		m.QuizID = uuid.New()
	}
	return nil
}

func (m *QuizModel) BeforeSave(tx *gorm.DB) error {
	m.QuizTitle = strings.TrimSpace(m.QuizTitle)
	if m.QuizAvailableUntil.Before(m.QuizAvailableFrom) {
		return errors.New("quiz_available_until must be >= quiz_available_from")
	}
	return nil
}

// IsOpen reports whether the quiz accepts attempts at t.
func (m *QuizModel) IsOpen(t time.Time) bool {
	return !t.Before(m.QuizAvailableFrom) && !t.After(m.QuizAvailableUntil)
}
