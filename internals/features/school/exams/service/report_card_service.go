package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	acModel "schoolku_backend/internals/features/school/academics/model"
	attendanceService "schoolku_backend/internals/features/school/attendance/service"
	enrollModel "schoolku_backend/internals/features/school/enrollments/model"
	examModel "schoolku_backend/internals/features/school/exams/model"
)

var (
	ErrNoActiveEnrollment = errors.New("the student has no active enrollment")
	ErrSemesterNotFound   = errors.New("semester not found")
)

// SubjectLine is one subject row on a report card.
type SubjectLine struct {
	SubjectID   uuid.UUID `json:"subject_id"`
	SubjectCode string    `json:"subject_code"`
	SubjectName string    `json:"subject_name"`
	ExamName    string    `json:"exam_name"`
	Marks       float64   `json:"marks"`
	MaxMarks    float64   `json:"max_marks"`
	GradePoint  float64   `json:"grade_point"`
	Letter      string    `json:"letter"`
}

// ReportCard is the full semester report for one student.
type ReportCard struct {
	StudentID  uuid.UUID     `json:"student_id"`
	SemesterID uuid.UUID     `json:"semester_id"`
	SectionID  uuid.UUID     `json:"section_id"`
	RollNumber int           `json:"roll_number"`
	Subjects   []SubjectLine `json:"subjects"`
	GPA        float64       `json:"gpa"`
	Letter     string        `json:"letter"`
	Rank       int           `json:"rank"`
	ClassSize  int           `json:"class_size"`
	Attendance float64       `json:"attendance_percent"`
}

// BuildReportCard assembles a student's report card for a semester
// from published grades only. Rank is the count of section classmates
// with a strictly greater grade-point average, plus one; tied students
// share a rank and the numbering may skip.
func BuildReportCard(db *gorm.DB, studentID, semesterID uuid.UUID) (*ReportCard, error) {
	var semester acModel.SemesterModel
	if err := db.First(&semester, "semester_id = ?", semesterID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		return nil, err
	}

	var enrollment enrollModel.EnrollmentModel
	if err := db.
		Where("enrollment_student_id = ? AND enrollment_status = ?", studentID, enrollModel.EnrollmentStatusActive).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoActiveEnrollment
		}
		return nil, err
	}

	var examIDs []uuid.UUID
	if err := db.Model(&examModel.ExamModel{}).
		Where("exam_semester_id = ?", semesterID).
		Pluck("exam_id", &examIDs).Error; err != nil {
		return nil, err
	}

	card := &ReportCard{
		StudentID:  studentID,
		SemesterID: semesterID,
		SectionID:  enrollment.EnrollmentSectionID,
		RollNumber: enrollment.EnrollmentRollNumber,
		Subjects:   []SubjectLine{},
	}
	if len(examIDs) == 0 {
		card.Letter = GradeLetter(0)
		card.Rank = 1
		card.ClassSize = 1
		return card, nil
	}

	var grades []examModel.GradeModel
	if err := db.Preload("Subject").Preload("Exam").
		Where("grade_student_id = ? AND grade_exam_id IN ? AND grade_is_published = ?",
			studentID, examIDs, true).
		Find(&grades).Error; err != nil {
		return nil, err
	}

	var sum float64
	for _, g := range grades {
		line := SubjectLine{
			SubjectID:  g.GradeSubjectID,
			Marks:      g.GradeMarks,
			GradePoint: g.GradePoint,
			Letter:     g.GradeLetter,
		}
		if g.Subject != nil {
			line.SubjectCode = g.Subject.SubjectCode
			line.SubjectName = g.Subject.SubjectName
		}
		if g.Exam != nil {
			line.ExamName = g.Exam.ExamName
			line.MaxMarks = g.Exam.ExamMaxMarks
		}
		card.Subjects = append(card.Subjects, line)
		sum += g.GradePoint
	}
	if len(grades) > 0 {
		card.GPA = sum / float64(len(grades))
	}
	card.Letter = GradeLetter(card.GPA)

	rank, size, err := sectionRank(db, enrollment.EnrollmentSectionID, studentID, examIDs)
	if err != nil {
		return nil, err
	}
	card.Rank = rank
	card.ClassSize = size

	card.Attendance, err = semesterAttendance(db, studentID, semester)
	if err != nil {
		return nil, err
	}
	return card, nil
}

// sectionRank computes count(classmates with strictly greater average
// published grade point) + 1 over the given exams.
func sectionRank(db *gorm.DB, sectionID, studentID uuid.UUID, examIDs []uuid.UUID) (int, int, error) {
	var classmates []uuid.UUID
	if err := db.Model(&enrollModel.EnrollmentModel{}).
		Where("enrollment_section_id = ? AND enrollment_status = ?", sectionID, enrollModel.EnrollmentStatusActive).
		Pluck("enrollment_student_id", &classmates).Error; err != nil {
		return 0, 0, err
	}

	type avgRow struct {
		StudentID uuid.UUID
		AvgPoint  float64
	}
	var avgs []avgRow
	if err := db.Model(&examModel.GradeModel{}).
		Select("grade_student_id AS student_id, AVG(grade_point) AS avg_point").
		Where("grade_student_id IN ? AND grade_exam_id IN ? AND grade_is_published = ?",
			classmates, examIDs, true).
		Group("grade_student_id").
		Scan(&avgs).Error; err != nil {
		return 0, 0, err
	}

	var mine float64
	for _, a := range avgs {
		if a.StudentID == studentID {
			mine = a.AvgPoint
		}
	}
	rank := 1
	for _, a := range avgs {
		if a.StudentID != studentID && a.AvgPoint > mine {
			rank++
		}
	}
	return rank, len(classmates), nil
}

func semesterAttendance(db *gorm.DB, studentID uuid.UUID, semester acModel.SemesterModel) (float64, error) {
	type aggRow struct {
		Total   int
		Present int
	}
	var a aggRow
	if err := db.Table("student_attendance").
		Select(`COUNT(*) AS total,
			SUM(CASE WHEN student_attendance_status = 'present' THEN 1 ELSE 0 END) AS present`).
		Where("student_attendance_student_id = ? AND student_attendance_date BETWEEN ? AND ?",
			studentID, semester.SemesterStartDate, semester.SemesterEndDate).
		Scan(&a).Error; err != nil {
		return 0, err
	}
	return attendanceService.Percent(a.Present, a.Total), nil
}
