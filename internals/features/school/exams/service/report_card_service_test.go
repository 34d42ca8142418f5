package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"schoolku_backend/internals/databases"
	acModel "schoolku_backend/internals/features/school/academics/model"
	classModel "schoolku_backend/internals/features/school/classes/model"
	enrollModel "schoolku_backend/internals/features/school/enrollments/model"
	examModel "schoolku_backend/internals/features/school/exams/model"
	subjectModel "schoolku_backend/internals/features/school/subjects/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type cardFixture struct {
	semester acModel.SemesterModel
	exam     examModel.ExamModel
	subject  subjectModel.SubjectModel
	section  classModel.SectionModel
	students []uuid.UUID
}

func seedCard(t *testing.T, db *gorm.DB, points []float64) cardFixture {
	t.Helper()

	class := classModel.ClassModel{ClassName: "Grade 12", ClassLevel: 12}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	section := classModel.SectionModel{SectionClassID: class.ClassID, SectionName: "A", SectionCapacity: 40}
	if err := db.Create(&section).Error; err != nil {
		t.Fatalf("seed section: %v", err)
	}
	year := acModel.AcademicYearModel{
		AcademicYearName:      "2026/2027",
		AcademicYearStartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		AcademicYearEndDate:   time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&year).Error; err != nil {
		t.Fatalf("seed year: %v", err)
	}
	semester := acModel.SemesterModel{
		SemesterYearID:    year.AcademicYearID,
		SemesterName:      "Odd",
		SemesterStartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		SemesterEndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	if err := db.Create(&semester).Error; err != nil {
		t.Fatalf("seed semester: %v", err)
	}
	exam := examModel.ExamModel{
		ExamSemesterID: semester.SemesterID,
		ExamName:       "Midterm",
		ExamDate:       time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC),
		ExamMaxMarks:   100,
	}
	if err := db.Create(&exam).Error; err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	subject := subjectModel.SubjectModel{SubjectCode: "MATH", SubjectName: "Mathematics"}
	if err := db.Create(&subject).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}

	f := cardFixture{semester: semester, exam: exam, subject: subject, section: section}
	for i, gp := range points {
		s := uuid.New()
		f.students = append(f.students, s)
		en := enrollModel.EnrollmentModel{
			EnrollmentStudentID:  s,
			EnrollmentSectionID:  section.SectionID,
			EnrollmentYearID:     year.AcademicYearID,
			EnrollmentRollNumber: i + 1,
			EnrollmentStatus:     enrollModel.EnrollmentStatusActive,
			EnrollmentEnrolledAt: time.Now(),
		}
		if err := db.Create(&en).Error; err != nil {
			t.Fatalf("seed enrollment %d: %v", i, err)
		}
		g := examModel.GradeModel{
			GradeStudentID:   s,
			GradeSubjectID:   subject.SubjectID,
			GradeExamID:      exam.ExamID,
			GradeMarks:       gp * 25,
			GradePoint:       gp,
			GradeLetter:      GradeLetter(gp),
			GradeIsPublished: true,
		}
		if err := db.Create(&g).Error; err != nil {
			t.Fatalf("seed grade %d: %v", i, err)
		}
	}
	return f
}

// Rank is count(strictly greater average) + 1: tied students share a
// rank and the numbering skips past them.
func TestRankSharesTiesAndSkips(t *testing.T) {
	db := newTestDB(t)
	f := seedCard(t, db, []float64{4.0, 3.0, 3.0, 2.0})

	wantRanks := []int{1, 2, 2, 4}
	for i, s := range f.students {
		card, err := BuildReportCard(db, s, f.semester.SemesterID)
		if err != nil {
			t.Fatalf("card %d: %v", i, err)
		}
		if card.Rank != wantRanks[i] {
			t.Errorf("student %d rank = %d, want %d", i, card.Rank, wantRanks[i])
		}
		if card.ClassSize != 4 {
			t.Errorf("student %d class size = %d, want 4", i, card.ClassSize)
		}
	}
}

func TestReportCardUsesPublishedGradesOnly(t *testing.T) {
	db := newTestDB(t)
	f := seedCard(t, db, []float64{3.0})

	science := subjectModel.SubjectModel{SubjectCode: "SCI", SubjectName: "Science"}
	if err := db.Create(&science).Error; err != nil {
		t.Fatalf("seed science: %v", err)
	}
	draft := examModel.GradeModel{
		GradeStudentID: f.students[0],
		GradeSubjectID: science.SubjectID,
		GradeExamID:    f.exam.ExamID,
		GradeMarks:     100,
		GradePoint:     4.0,
		GradeLetter:    GradeLetter(4.0),
	}
	if err := db.Create(&draft).Error; err != nil {
		t.Fatalf("seed draft grade: %v", err)
	}

	card, err := BuildReportCard(db, f.students[0], f.semester.SemesterID)
	if err != nil {
		t.Fatalf("card: %v", err)
	}
	if len(card.Subjects) != 1 {
		t.Fatalf("subject lines = %d, want 1 (draft grade hidden)", len(card.Subjects))
	}
	if card.GPA != 3.0 {
		t.Fatalf("gpa = %v, want 3.0", card.GPA)
	}
	if card.Letter != "B+" {
		t.Fatalf("letter = %q, want B+", card.Letter)
	}
}

func TestReportCardRequiresActiveEnrollment(t *testing.T) {
	db := newTestDB(t)
	f := seedCard(t, db, []float64{3.0})

	_, err := BuildReportCard(db, uuid.New(), f.semester.SemesterID)
	if !errors.Is(err, ErrNoActiveEnrollment) {
		t.Fatalf("err = %v, want ErrNoActiveEnrollment", err)
	}
}

func TestReportCardUnknownSemester(t *testing.T) {
	db := newTestDB(t)
	seedCard(t, db, []float64{3.0})

	_, err := BuildReportCard(db, uuid.New(), uuid.New())
	if !errors.Is(err, ErrSemesterNotFound) {
		t.Fatalf("err = %v, want ErrSemesterNotFound", err)
	}
}
