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

type fixture struct {
	year     acModel.AcademicYearModel
	sectionA classModel.SectionModel
	sectionB classModel.SectionModel
}

func seed(t *testing.T, db *gorm.DB, capacityA, capacityB int) fixture {
	t.Helper()
	class := classModel.ClassModel{ClassName: "Grade 10", ClassLevel: 10}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	f := fixture{
		year: acModel.AcademicYearModel{
			AcademicYearName:      "2026/2027",
			AcademicYearStartDate: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			AcademicYearEndDate:   time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		sectionA: classModel.SectionModel{SectionClassID: class.ClassID, SectionName: "A", SectionCapacity: capacityA},
		sectionB: classModel.SectionModel{SectionClassID: class.ClassID, SectionName: "B", SectionCapacity: capacityB},
	}
	if err := db.Create(&f.year).Error; err != nil {
		t.Fatalf("seed year: %v", err)
	}
	if err := db.Create(&f.sectionA).Error; err != nil {
		t.Fatalf("seed section A: %v", err)
	}
	if err := db.Create(&f.sectionB).Error; err != nil {
		t.Fatalf("seed section B: %v", err)
	}
	return f
}

func countActive(t *testing.T, db *gorm.DB, studentID uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&enrollModel.EnrollmentModel{}).
		Where("enrollment_student_id = ? AND enrollment_status = ?", studentID, enrollModel.EnrollmentStatusActive).
		Count(&n).Error; err != nil {
		t.Fatalf("count active: %v", err)
	}
	return n
}

func TestEnrollDeactivatesPriorActive(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db, 40, 40)
	student := uuid.New()

	first, err := Enroll(db, student, f.sectionA.SectionID, f.year.AcademicYearID, 5, time.Now())
	if err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	if _, err := Enroll(db, student, f.sectionB.SectionID, f.year.AcademicYearID, 1, time.Now()); err != nil {
		t.Fatalf("second enroll: %v", err)
	}

	if got := countActive(t, db, student); got != 1 {
		t.Fatalf("active enrollments = %d, want 1", got)
	}
	var old enrollModel.EnrollmentModel
	if err := db.First(&old, "enrollment_id = ?", first.EnrollmentID).Error; err != nil {
		t.Fatalf("reload first: %v", err)
	}
	if old.EnrollmentStatus != enrollModel.EnrollmentStatusInactive {
		t.Fatalf("first enrollment status = %q, want inactive", old.EnrollmentStatus)
	}
}

func TestEnrollRejectsTakenRollNumber(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db, 40, 40)

	if _, err := Enroll(db, uuid.New(), f.sectionA.SectionID, f.year.AcademicYearID, 5, time.Now()); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	_, err := Enroll(db, uuid.New(), f.sectionA.SectionID, f.year.AcademicYearID, 5, time.Now())
	if !errors.Is(err, ErrRollTaken) {
		t.Fatalf("err = %v, want ErrRollTaken", err)
	}

	var rows int64
	if err := db.Model(&enrollModel.EnrollmentModel{}).
		Where("enrollment_section_id = ?", f.sectionA.SectionID).
		Count(&rows).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 1 {
		t.Fatalf("rows in section = %d, want 1 (failed enroll must not insert)", rows)
	}
}

func TestEnrollRejectsFullSection(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db, 1, 40)

	if _, err := Enroll(db, uuid.New(), f.sectionA.SectionID, f.year.AcademicYearID, 1, time.Now()); err != nil {
		t.Fatalf("first enroll: %v", err)
	}
	_, err := Enroll(db, uuid.New(), f.sectionA.SectionID, f.year.AcademicYearID, 2, time.Now())
	if !errors.Is(err, ErrSectionFull) {
		t.Fatalf("err = %v, want ErrSectionFull", err)
	}
}

func TestEnrollRejectsDuplicatePair(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db, 40, 40)
	student := uuid.New()

	ent, err := Enroll(db, student, f.sectionA.SectionID, f.year.AcademicYearID, 3, time.Now())
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	if _, err := Withdraw(db, ent.EnrollmentID); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	_, err = Enroll(db, student, f.sectionA.SectionID, f.year.AcademicYearID, 4, time.Now())
	if !errors.Is(err, ErrDuplicateEnrollment) {
		t.Fatalf("err = %v, want ErrDuplicateEnrollment", err)
	}
}

// The end-to-end scenario: a transfer into an occupied roll must fail
// and leave the source enrollment exactly as it was.
func TestTransferRollConflictLeavesEnrollmentUnchanged(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db, 40, 40)
	studentS := uuid.New()

	mine, err := Enroll(db, studentS, f.sectionA.SectionID, f.year.AcademicYearID, 5, time.Now())
	if err != nil {
		t.Fatalf("enroll S: %v", err)
	}
	if _, err := Enroll(db, uuid.New(), f.sectionB.SectionID, f.year.AcademicYearID, 3, time.Now()); err != nil {
		t.Fatalf("enroll other: %v", err)
	}

	_, err = Transfer(db, mine.EnrollmentID, f.sectionB.SectionID, 3)
	if !errors.Is(err, ErrRollTaken) {
		t.Fatalf("err = %v, want ErrRollTaken", err)
	}

	var reloaded enrollModel.EnrollmentModel
	if err := db.First(&reloaded, "enrollment_id = ?", mine.EnrollmentID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.EnrollmentSectionID != f.sectionA.SectionID || reloaded.EnrollmentRollNumber != 5 {
		t.Fatalf("enrollment changed after failed transfer: section=%s roll=%d",
			reloaded.EnrollmentSectionID, reloaded.EnrollmentRollNumber)
	}
	if reloaded.EnrollmentStatus != enrollModel.EnrollmentStatusActive {
		t.Fatalf("status = %q, want active", reloaded.EnrollmentStatus)
	}
}

func TestWithdrawKeepsRollNumber(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db, 40, 40)

	ent, err := Enroll(db, uuid.New(), f.sectionA.SectionID, f.year.AcademicYearID, 7, time.Now())
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}
	out, err := Withdraw(db, ent.EnrollmentID)
	if err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	if out.EnrollmentStatus != enrollModel.EnrollmentStatusWithdrawn {
		t.Fatalf("status = %q, want withdrawn", out.EnrollmentStatus)
	}
	if out.EnrollmentRollNumber != 7 {
		t.Fatalf("roll = %d, want 7 kept after withdrawal", out.EnrollmentRollNumber)
	}
}

func TestBulkPromoteReassignsRollsSequentially(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db, 40, 40)

	for _, roll := range []int{2, 5, 9} {
		if _, err := Enroll(db, uuid.New(), f.sectionA.SectionID, f.year.AcademicYearID, roll, time.Now()); err != nil {
			t.Fatalf("seed enroll roll %d: %v", roll, err)
		}
	}

	promoted, err := BulkPromote(db, f.sectionA.SectionID, f.sectionB.SectionID, f.year.AcademicYearID)
	if err != nil {
		t.Fatalf("bulk promote: %v", err)
	}
	if len(promoted) != 3 {
		t.Fatalf("promoted = %d, want 3", len(promoted))
	}
	for i, p := range promoted {
		if p.EnrollmentRollNumber != i+1 {
			t.Fatalf("promoted[%d] roll = %d, want %d", i, p.EnrollmentRollNumber, i+1)
		}
		if p.EnrollmentSectionID != f.sectionB.SectionID {
			t.Fatalf("promoted[%d] section = %s, want target", i, p.EnrollmentSectionID)
		}
	}

	var remaining int64
	if err := db.Model(&enrollModel.EnrollmentModel{}).
		Where("enrollment_section_id = ? AND enrollment_status = ?", f.sectionA.SectionID, enrollModel.EnrollmentStatusActive).
		Count(&remaining).Error; err != nil {
		t.Fatalf("count source actives: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("source actives = %d, want 0", remaining)
	}
}

// A conflict partway through the batch must roll back every row.
func TestBulkPromoteIsAtomic(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db, 40, 40)

	for _, roll := range []int{1, 2, 3} {
		if _, err := Enroll(db, uuid.New(), f.sectionA.SectionID, f.year.AcademicYearID, roll, time.Now()); err != nil {
			t.Fatalf("seed enroll roll %d: %v", roll, err)
		}
	}
	// Roll 2 in the target collides with the second promoted row.
	if _, err := Enroll(db, uuid.New(), f.sectionB.SectionID, f.year.AcademicYearID, 2, time.Now()); err != nil {
		t.Fatalf("seed blocker: %v", err)
	}

	_, err := BulkPromote(db, f.sectionA.SectionID, f.sectionB.SectionID, f.year.AcademicYearID)
	if !errors.Is(err, ErrRollTaken) {
		t.Fatalf("err = %v, want ErrRollTaken", err)
	}

	var sourceActives, targetRows int64
	if err := db.Model(&enrollModel.EnrollmentModel{}).
		Where("enrollment_section_id = ? AND enrollment_status = ?", f.sectionA.SectionID, enrollModel.EnrollmentStatusActive).
		Count(&sourceActives).Error; err != nil {
		t.Fatalf("count source: %v", err)
	}
	if err := db.Model(&enrollModel.EnrollmentModel{}).
		Where("enrollment_section_id = ?", f.sectionB.SectionID).
		Count(&targetRows).Error; err != nil {
		t.Fatalf("count target: %v", err)
	}
	if sourceActives != 3 {
		t.Fatalf("source actives after rollback = %d, want 3", sourceActives)
	}
	if targetRows != 1 {
		t.Fatalf("target rows after rollback = %d, want 1 (only the blocker)", targetRows)
	}
}

func TestBulkPromoteRejectsOverCapacityTarget(t *testing.T) {
	db := newTestDB(t)
	f := seed(t, db, 40, 2)

	for _, roll := range []int{1, 2, 3} {
		if _, err := Enroll(db, uuid.New(), f.sectionA.SectionID, f.year.AcademicYearID, roll, time.Now()); err != nil {
			t.Fatalf("seed enroll roll %d: %v", roll, err)
		}
	}
	_, err := BulkPromote(db, f.sectionA.SectionID, f.sectionB.SectionID, f.year.AcademicYearID)
	if !errors.Is(err, ErrSectionFull) {
		t.Fatalf("err = %v, want ErrSectionFull", err)
	}
}
