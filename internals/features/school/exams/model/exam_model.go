package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	acModel "schoolku_backend/internals/features/school/academics/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

/* =========================================================
   EXAMS
========================================================= */

type ExamModel struct {
	ExamID         uuid.UUID `gorm:"column:exam_id;type:uuid;primaryKey" json:"exam_id"`
	ExamSemesterID uuid.UUID `gorm:"column:exam_semester_id;type:uuid;not null;index:idx_exams_semester;uniqueIndex:uq_exams_semester_name" json:"exam_semester_id"`
	ExamName       string    `gorm:"column:exam_name;size:80;not null;uniqueIndex:uq_exams_semester_name" json:"exam_name"`
	ExamDate       time.Time `gorm:"column:exam_date;type:date;not null" json:"exam_date"`
	ExamMaxMarks   float64   `gorm:"column:exam_max_marks;not null;default:100" json:"exam_max_marks"`

	ExamCreatedAt time.Time      `gorm:"column:exam_created_at;type:timestamptz;not null;autoCreateTime" json:"exam_created_at"`
	ExamUpdatedAt time.Time      `gorm:"column:exam_updated_at;type:timestamptz;not null;autoUpdateTime" json:"exam_updated_at"`
	ExamDeletedAt gorm.DeletedAt `gorm:"column:exam_deleted_at;index" json:"exam_deleted_at,omitempty"`

	Semester *acModel.SemesterModel `gorm:"foreignKey:ExamSemesterID;references:SemesterID" json:"semester,omitempty"`
}

func (ExamModel) TableName() string { return "exams" }

func (m *ExamModel) BeforeCreate(tx *gorm.DB) error {
	if m.ExamID == uuid.Nil {
		m.ExamID = uuid.New()
	}
	return nil
}

func (m *ExamModel) BeforeSave(tx *gorm.DB) error {
	m.ExamName = strings.TrimSpace(m.ExamName)
	return nil
}

/* =========================================================
   GRADES
   One row per (student, subject, exam). is_published gates what
   students and parents can see.
========================================================= */

type GradeModel struct {
	GradeID        uuid.UUID `gorm:"column:grade_id;type:uuid;primaryKey" json:"grade_id"`
	GradeStudentID uuid.UUID `gorm:"column:grade_student_id;type:uuid;not null;index:idx_grades_student;uniqueIndex:uq_grades_student_subject_exam" json:"grade_student_id"`
	GradeSubjectID uuid.UUID `gorm:"column:grade_subject_id;type:uuid;not null;uniqueIndex:uq_grades_student_subject_exam" json:"grade_subject_id"`
	GradeExamID    uuid.UUID `gorm:"column:grade_exam_id;type:uuid;not null;index:idx_grades_exam;uniqueIndex:uq_grades_student_subject_exam" json:"grade_exam_id"`

	GradeMarks       float64 `gorm:"column:grade_marks;not null" json:"grade_marks"`
	GradePoint       float64 `gorm:"column:grade_point;not null" json:"grade_point"`
	GradeLetter      string  `gorm:"column:grade_letter;size:2;not null" json:"grade_letter"`
	GradeIsPublished bool    `gorm:"column:grade_is_published;not null;default:false;index:idx_grades_published" json:"grade_is_published"`

	GradeEnteredBy *uuid.UUID `gorm:"column:grade_entered_by;type:uuid" json:"grade_entered_by,omitempty"`

	GradeCreatedAt time.Time      `gorm:"column:grade_created_at;type:timestamptz;not null;autoCreateTime" json:"grade_created_at"`
	GradeUpdatedAt time.Time      `gorm:"column:grade_updated_at;type:timestamptz;not null;autoUpdateTime" json:"grade_updated_at"`
	GradeDeletedAt gorm.DeletedAt `gorm:"column:grade_deleted_at;index" json:"grade_deleted_at,omitempty"`

	Exam    *ExamModel                 `gorm:"foreignKey:GradeExamID;references:ExamID" json:"exam,omitempty"`
	Subject *subjectModel.SubjectModel `gorm:"foreignKey:GradeSubjectID;references:SubjectID" json:"subject,omitempty"`
}

func (GradeModel) TableName() string { return "grades" }

func (m *GradeModel) BeforeCreate(tx *gorm.DB) error {
	if m.GradeID == uuid.Nil {
		m.GradeID = uuid.New()
	}
	return nil
}
