package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"schoolku_backend/internals/databases"
	acModel "schoolku_backend/internals/features/school/academics/model"
	attendanceModel "schoolku_backend/internals/features/school/attendance/model"
	classModel "schoolku_backend/internals/features/school/classes/model"
	enrollModel "schoolku_backend/internals/features/school/enrollments/model"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name    string
		present int
		total   int
		want    float64
	}{
		{"zero days", 0, 0, 0},
		{"all present", 20, 20, 100},
		{"none present", 0, 20, 0},
		{"two thirds", 2, 3, 66.7},
		{"one of seven", 1, 7, 14.3},
		{"rounds half up", 1, 8, 12.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Percent(tt.present, tt.total); got != tt.want {
				t.Fatalf("Percent(%d, %d) = %v, want %v", tt.present, tt.total, got, tt.want)
			}
		})
	}
}

func TestPercentBounds(t *testing.T) {
	for total := 0; total <= 30; total++ {
		for present := 0; present <= total; present++ {
			got := Percent(present, total)
			if got < 0 || got > 100 {
				t.Fatalf("Percent(%d, %d) = %v, out of [0, 100]", present, total, got)
			}
		}
	}
}

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

type reportFixture struct {
	section  classModel.SectionModel
	students []uuid.UUID
}

// Seeds one section with two enrolled students and a week of marks:
// student 1 present 4 of 5 days, student 2 present 2 of 5 days.
func seedReport(t *testing.T, db *gorm.DB) reportFixture {
	t.Helper()

	class := classModel.ClassModel{ClassName: "Grade 8", ClassLevel: 8}
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

	students := []uuid.UUID{uuid.New(), uuid.New()}
	for i, s := range students {
		// Raw insert into users keeps the fixture independent of the
		// password/profile plumbing.
		if err := db.Exec(
			`INSERT INTO users (user_id, user_name, user_email, user_password_hash, user_is_active, user_created_at, user_updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			s, []string{"Alice Aman", "Budi Besar"}[i], []string{"alice@example.com", "budi@example.com"}[i],
			"x", true, time.Now(), time.Now(),
		).Error; err != nil {
			t.Fatalf("seed user %d: %v", i, err)
		}
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
	}

	statuses := map[uuid.UUID][]string{
		students[0]: {"present", "present", "late", "present", "present"},
		students[1]: {"present", "absent", "absent", "present", "excused"},
	}
	base := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	for s, week := range statuses {
		for d, status := range week {
			row := attendanceModel.StudentAttendanceModel{
				StudentAttendanceStudentID: s,
				StudentAttendanceDate:      base.AddDate(0, 0, d),
				StudentAttendanceStatus:    status,
			}
			if err := db.Create(&row).Error; err != nil {
				t.Fatalf("seed attendance: %v", err)
			}
		}
	}
	return reportFixture{section: section, students: students}
}

func TestSectionReportRollup(t *testing.T) {
	db := newTestDB(t)
	f := seedReport(t, db)

	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	rows, err := SectionReport(db, f.section.SectionID, from, to)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	first := rows[0]
	if first.RollNumber != 1 || first.StudentName != "Alice Aman" {
		t.Fatalf("row 0 = roll %d %q, want roll 1 Alice Aman", first.RollNumber, first.StudentName)
	}
	if first.TotalDays != 5 || first.Present != 4 || first.Late != 1 {
		t.Fatalf("row 0 counts = total %d present %d late %d", first.TotalDays, first.Present, first.Late)
	}
	if first.Percent != 80 {
		t.Fatalf("row 0 percent = %v, want 80", first.Percent)
	}

	second := rows[1]
	if second.Present != 2 || second.Absent != 2 || second.Excused != 1 {
		t.Fatalf("row 1 counts = present %d absent %d excused %d", second.Present, second.Absent, second.Excused)
	}
	if second.Percent != 40 {
		t.Fatalf("row 1 percent = %v, want 40", second.Percent)
	}
}

func TestSectionReportStudentWithoutMarks(t *testing.T) {
	db := newTestDB(t)
	f := seedReport(t, db)

	// A range with no marked days at all.
	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)
	rows, err := SectionReport(db, f.section.SectionID, from, to)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, r := range rows {
		if r.TotalDays != 0 || r.Percent != 0 {
			t.Fatalf("roll %d: total %d percent %v, want zeros", r.RollNumber, r.TotalDays, r.Percent)
		}
	}
}

func TestReportCSVShape(t *testing.T) {
	rows := []ReportRow{
		{RollNumber: 1, StudentName: "Alice Aman", TotalDays: 5, Present: 4, Absent: 0, Late: 1, Percent: Percent(4, 5)},
		{RollNumber: 2, StudentName: "Budi Besar", TotalDays: 5, Present: 2, Absent: 2, Late: 0, Percent: Percent(2, 5)},
		{RollNumber: 3, StudentName: "Citra Cahaya", TotalDays: 0, Present: 0, Percent: Percent(0, 0)},
	}
	body, err := ReportCSV(rows)
	if err != nil {
		t.Fatalf("csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(body), "\n"), "\n")
	if len(lines) != len(rows)+1 {
		t.Fatalf("lines = %d, want %d (header + rows)", len(lines), len(rows)+1)
	}
	if lines[0] != "Roll No,Student Name,Total Days,Present,Absent,Late,Attendance %" {
		t.Fatalf("header = %q", lines[0])
	}
	wantPercents := []string{"80%", "40%", "0%"}
	for i, want := range wantPercents {
		cols := strings.Split(lines[i+1], ",")
		if got := cols[len(cols)-1]; got != want {
			t.Fatalf("row %d percent column = %q, want %q", i+1, got, want)
		}
	}
}
