package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

/* =========================================================
   ASSIGNMENTS
========================================================= */

type AssignmentModel struct {
	AssignmentID             uuid.UUID `gorm:"column:assignment_id;type:uuid;primaryKey" json:"assignment_id"`
	AssignmentClassSubjectID uuid.UUID `gorm:"column:assignment_class_subject_id;type:uuid;not null;index:idx_assignments_class_subject" json:"assignment_class_subject_id"`
	AssignmentTeacherID      uuid.UUID `gorm:"column:assignment_teacher_id;type:uuid;not null;index:idx_assignments_teacher" json:"assignment_teacher_id"`

	AssignmentTitle       string    `gorm:"column:assignment_title;size:160;not null" json:"assignment_title"`
	AssignmentDescription string    `gorm:"column:assignment_description;type:text" json:"assignment_description,omitempty"`
	AssignmentDueDate     time.Time `gorm:"column:assignment_due_date;not null" json:"assignment_due_date"`
	AssignmentMaxPoints   float64   `gorm:"column:assignment_max_points;not null;default:100" json:"assignment_max_points"`

	AssignmentAttachmentPath *string `gorm:"column:assignment_attachment_path;type:text" json:"assignment_attachment_path,omitempty"`

	AssignmentCreatedAt time.Time      `gorm:"column:assignment_created_at;type:timestamptz;not null;autoCreateTime" json:"assignment_created_at"`
	AssignmentUpdatedAt time.Time      `gorm:"column:assignment_updated_at;type:timestamptz;not null;autoUpdateTime" json:"assignment_updated_at"`
	AssignmentDeletedAt gorm.DeletedAt `gorm:"column:assignment_deleted_at;index" json:"assignment_deleted_at,omitempty"`

	ClassSubject *subjectModel.ClassSubjectModel `gorm:"foreignKey:AssignmentClassSubjectID;references:ClassSubjectID" json:"class_subject,omitempty"`
}

func (AssignmentModel) TableName() string { return "assignments" }

func (m *AssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.AssignmentID == uuid.Nil {
		m.AssignmentID = uuid.New()
	}
	return nil
}

func (m *AssignmentModel) BeforeSave(tx *gorm.DB) error {
	m.AssignmentTitle = strings.TrimSpace(m.AssignmentTitle)
	return nil
}

/* =========================================================
   SUBMISSIONS
   One per (assignment, student). Late submissions are recorded,
   not rejected; the flag is derived from the due date.
========================================================= */

type AssignmentSubmissionModel struct {
	SubmissionID           uuid.UUID `gorm:"column:submission_id;type:uuid;primaryKey" json:"submission_id"`
	SubmissionAssignmentID uuid.UUID `gorm:"column:submission_assignment_id;type:uuid;not null;index:idx_submissions_assignment;uniqueIndex:uq_submissions_assignment_student" json:"submission_assignment_id"`
	SubmissionStudentID    uuid.UUID `gorm:"column:submission_student_id;type:uuid;not null;uniqueIndex:uq_submissions_assignment_student" json:"submission_student_id"`

	SubmissionText           string  `gorm:"column:submission_text;type:text" json:"submission_text,omitempty"`
	SubmissionAttachmentPath *string `gorm:"column:submission_attachment_path;type:text" json:"submission_attachment_path,omitempty"`

	SubmissionSubmittedAt time.Time `gorm:"column:submission_submitted_at;type:timestamptz;not null" json:"submission_submitted_at"`
	SubmissionIsLate      bool      `gorm:"column:submission_is_late;not null;default:false" json:"submission_is_late"`

	SubmissionPoints   *float64   `gorm:"column:submission_points" json:"submission_points,omitempty"`
	SubmissionFeedback string     `gorm:"column:submission_feedback;type:text" json:"submission_feedback,omitempty"`
	SubmissionGradedBy *uuid.UUID `gorm:"column:submission_graded_by;type:uuid" json:"submission_graded_by,omitempty"`
	SubmissionGradedAt *time.Time `gorm:"column:submission_graded_at;type:timestamptz" json:"submission_graded_at,omitempty"`

	SubmissionCreatedAt time.Time `gorm:"column:submission_created_at;type:timestamptz;not null;autoCreateTime" json:"submission_created_at"`
	SubmissionUpdatedAt time.Time `gorm:"column:submission_updated_at;type:timestamptz;not null;autoUpdateTime" json:"submission_updated_at"`

	Assignment *AssignmentModel `gorm:"foreignKey:SubmissionAssignmentID;references:AssignmentID" json:"assignment,omitempty"`
}

func (AssignmentSubmissionModel) TableName() string { return "assignment_submissions" }

func (m *AssignmentSubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubmissionID == uuid.Nil {
		m.SubmissionID = uuid.New()
	}
	return nil
}

func (m *AssignmentSubmissionModel) IsGraded() bool {
	return m.SubmissionPoints != nil
}
