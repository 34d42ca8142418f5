package service

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"schoolku_backend/internals/databases"
	readingDTO "schoolku_backend/internals/features/lms/reading/dto"
	readingModel "schoolku_backend/internals/features/lms/reading/model"
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

func seedReading(t *testing.T, db *gorm.DB, minPages int) (readingModel.BookModel, readingModel.BadgeModel) {
	t.Helper()
	book := readingModel.BookModel{BookTitle: "Laskar Pelangi", BookAuthor: "Andrea Hirata", BookPages: 529}
	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("seed book: %v", err)
	}
	badge := readingModel.BadgeModel{
		BadgeName:     "Bookworm",
		BadgeCriteria: readingDTO.CriteriaJSON(minPages),
	}
	if err := db.Create(&badge).Error; err != nil {
		t.Fatalf("seed badge: %v", err)
	}
	return book, badge
}

func addLog(t *testing.T, db *gorm.DB, student, book uuid.UUID, pages int) []readingModel.BadgeModel {
	t.Helper()
	log := readingModel.ReadingLogModel{
		ReadingLogStudentID: student,
		ReadingLogBookID:    book,
		ReadingLogPagesRead: pages,
	}
	awarded, err := AddReadingLog(db, &log)
	if err != nil {
		t.Fatalf("AddReadingLog(%d pages): %v", pages, err)
	}
	return awarded
}

func countAwards(t *testing.T, db *gorm.DB, student uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&readingModel.ReadingBadgeModel{}).
		Where("reading_badge_student_id = ?", student).
		Count(&n).Error; err != nil {
		t.Fatalf("count awards: %v", err)
	}
	return n
}

func TestBadgeAwardedOnceAtThreshold(t *testing.T) {
	db := newTestDB(t)
	book, badge := seedReading(t, db, 100)
	student := uuid.New()

	if awarded := addLog(t, db, student, book.BookID, 60); len(awarded) != 0 {
		t.Fatalf("below threshold, awarded %d badges", len(awarded))
	}
	awarded := addLog(t, db, student, book.BookID, 50)
	if len(awarded) != 1 || awarded[0].BadgeID != badge.BadgeID {
		t.Fatalf("crossing threshold: awarded = %+v", awarded)
	}
	if awarded := addLog(t, db, student, book.BookID, 200); len(awarded) != 0 {
		t.Fatalf("badge re-awarded on later log")
	}
	if n := countAwards(t, db, student); n != 1 {
		t.Fatalf("award rows = %d, want 1", n)
	}
}

func TestMultipleBadgesCanUnlockFromOneLog(t *testing.T) {
	db := newTestDB(t)
	book, _ := seedReading(t, db, 50)
	second := readingModel.BadgeModel{
		BadgeName:     "Page Turner",
		BadgeCriteria: readingDTO.CriteriaJSON(80),
	}
	if err := db.Create(&second).Error; err != nil {
		t.Fatalf("seed second badge: %v", err)
	}
	student := uuid.New()

	if awarded := addLog(t, db, student, book.BookID, 90); len(awarded) != 2 {
		t.Fatalf("awarded %d badges, want both", len(awarded))
	}
	if n := countAwards(t, db, student); n != 2 {
		t.Fatalf("award rows = %d, want 2", n)
	}
}

func TestAwardsAreScopedPerStudent(t *testing.T) {
	db := newTestDB(t)
	book, _ := seedReading(t, db, 100)
	a, b := uuid.New(), uuid.New()

	addLog(t, db, a, book.BookID, 120)
	if n := countAwards(t, db, b); n != 0 {
		t.Fatalf("student b has %d awards without reading", n)
	}
	if awarded := addLog(t, db, b, book.BookID, 150); len(awarded) != 1 {
		t.Fatalf("student b should still earn the badge, got %d", len(awarded))
	}
}

func TestAddReadingLogUnknownBook(t *testing.T) {
	db := newTestDB(t)
	seedReading(t, db, 100)
	log := readingModel.ReadingLogModel{
		ReadingLogStudentID: uuid.New(),
		ReadingLogBookID:    uuid.New(),
		ReadingLogPagesRead: 10,
	}
	if _, err := AddReadingLog(db, &log); !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("err = %v, want ErrBookNotFound", err)
	}
	var n int64
	if err := db.Model(&readingModel.ReadingLogModel{}).Count(&n).Error; err != nil {
		t.Fatalf("count logs: %v", err)
	}
	if n != 0 {
		t.Fatalf("log persisted for unknown book")
	}
}
