package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"schoolku_backend/internals/databases"
	classModel "schoolku_backend/internals/features/school/classes/model"
	ttModel "schoolku_backend/internals/features/school/timetable/model"
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

type gridFixture struct {
	sectionA classModel.SectionModel
	sectionB classModel.SectionModel
	slots    []ttModel.TimeSlotModel
	subject  uuid.UUID
	teacher  uuid.UUID
}

func seedGrid(t *testing.T, db *gorm.DB, slotCount int) gridFixture {
	t.Helper()
	class := classModel.ClassModel{ClassName: "Grade 9", ClassLevel: 9}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("seed class: %v", err)
	}
	f := gridFixture{
		sectionA: classModel.SectionModel{SectionClassID: class.ClassID, SectionName: "A", SectionCapacity: 40},
		sectionB: classModel.SectionModel{SectionClassID: class.ClassID, SectionName: "B", SectionCapacity: 40},
		subject:  uuid.New(),
		teacher:  uuid.New(),
	}
	if err := db.Create(&f.sectionA).Error; err != nil {
		t.Fatalf("seed section A: %v", err)
	}
	if err := db.Create(&f.sectionB).Error; err != nil {
		t.Fatalf("seed section B: %v", err)
	}
	for i := 0; i < slotCount; i++ {
		slot := ttModel.TimeSlotModel{
			TimeSlotName:      fmt.Sprintf("Period %d", i+1),
			TimeSlotStartTime: fmt.Sprintf("%02d:00", 8+i),
			TimeSlotEndTime:   fmt.Sprintf("%02d:45", 8+i),
			TimeSlotOrder:     i + 1,
		}
		if err := db.Create(&slot).Error; err != nil {
			t.Fatalf("seed slot %d: %v", i, err)
		}
		f.slots = append(f.slots, slot)
	}
	return f
}

func addPeriod(t *testing.T, db *gorm.DB, f gridFixture, section classModel.SectionModel, day int, slot ttModel.TimeSlotModel) ttModel.TimetableEntryModel {
	t.Helper()
	ent := ttModel.TimetableEntryModel{
		TimetableEntrySectionID: section.SectionID,
		TimetableEntryDay:       day,
		TimetableEntrySlotID:    slot.TimeSlotID,
		TimetableEntrySubjectID: f.subject,
		TimetableEntryTeacherID: f.teacher,
	}
	if err := AddPeriod(db, &ent); err != nil {
		t.Fatalf("add period day %d: %v", day, err)
	}
	return ent
}

func countEntries(t *testing.T, db *gorm.DB, sectionID uuid.UUID) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&ttModel.TimetableEntryModel{}).
		Where("timetable_entry_section_id = ?", sectionID).
		Count(&n).Error; err != nil {
		t.Fatalf("count entries: %v", err)
	}
	return n
}

func TestAddPeriodRejectsOccupiedSlot(t *testing.T) {
	db := newTestDB(t)
	f := seedGrid(t, db, 1)

	addPeriod(t, db, f, f.sectionA, ttModel.DayMonday, f.slots[0])

	dup := ttModel.TimetableEntryModel{
		TimetableEntrySectionID: f.sectionA.SectionID,
		TimetableEntryDay:       ttModel.DayMonday,
		TimetableEntrySlotID:    f.slots[0].TimeSlotID,
		TimetableEntrySubjectID: uuid.New(),
		TimetableEntryTeacherID: uuid.New(),
	}
	if err := AddPeriod(db, &dup); !errors.Is(err, ErrSlotOccupied) {
		t.Fatalf("err = %v, want ErrSlotOccupied", err)
	}
	if got := countEntries(t, db, f.sectionA.SectionID); got != 1 {
		t.Fatalf("entries = %d, want 1 (conflict must not insert)", got)
	}
}

// A teacher scheduled in two sections at the same day and slot is
// accepted. Cross-section double-booking is intentionally not
// validated; this test pins that behavior down.
func TestTeacherDoubleBookingAcrossSectionsIsAllowed(t *testing.T) {
	db := newTestDB(t)
	f := seedGrid(t, db, 1)

	addPeriod(t, db, f, f.sectionA, ttModel.DayMonday, f.slots[0])
	ent := ttModel.TimetableEntryModel{
		TimetableEntrySectionID: f.sectionB.SectionID,
		TimetableEntryDay:       ttModel.DayMonday,
		TimetableEntrySlotID:    f.slots[0].TimeSlotID,
		TimetableEntrySubjectID: f.subject,
		TimetableEntryTeacherID: f.teacher,
	}
	if err := AddPeriod(db, &ent); err != nil {
		t.Fatalf("same teacher in another section: %v", err)
	}
}

func TestCopyPeriodSkipsOccupiedDays(t *testing.T) {
	db := newTestDB(t)
	f := seedGrid(t, db, 1)

	src := addPeriod(t, db, f, f.sectionA, ttModel.DayMonday, f.slots[0])
	addPeriod(t, db, f, f.sectionA, 3, f.slots[0]) // Wednesday taken

	res, err := CopyPeriod(db, src.TimetableEntryID, []int{2, 3, 4, 5})
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if got, want := fmt.Sprint(res.CopiedDays), fmt.Sprint([]int{2, 4, 5}); got != want {
		t.Fatalf("copied = %v, want %v", res.CopiedDays, want)
	}
	if got, want := fmt.Sprint(res.SkippedDays), fmt.Sprint([]int{3}); got != want {
		t.Fatalf("skipped = %v, want %v", res.SkippedDays, want)
	}
	if got := countEntries(t, db, f.sectionA.SectionID); got != 5 {
		t.Fatalf("entries = %d, want 5", got)
	}
}

func TestCopyMondayToWeekReplacesOtherDays(t *testing.T) {
	db := newTestDB(t)
	f := seedGrid(t, db, 2)

	addPeriod(t, db, f, f.sectionA, ttModel.DayMonday, f.slots[0])
	addPeriod(t, db, f, f.sectionA, ttModel.DayMonday, f.slots[1])
	// A stale Thursday row that must disappear.
	addPeriod(t, db, f, f.sectionA, 4, f.slots[0])

	created, err := CopyMondayToWeek(db, f.sectionA.SectionID)
	if err != nil {
		t.Fatalf("copy monday: %v", err)
	}
	if created != 8 {
		t.Fatalf("created = %d, want 8 (2 slots x Tue..Fri)", created)
	}
	if got := countEntries(t, db, f.sectionA.SectionID); got != 10 {
		t.Fatalf("entries = %d, want 10", got)
	}

	grid, err := Grid(db, f.sectionA.SectionID)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	for day := ttModel.DayMonday; day <= ttModel.DayFriday; day++ {
		if len(grid[day]) != 2 {
			t.Fatalf("day %d has %d entries, want 2", day, len(grid[day]))
		}
	}
}

func TestGridOrdersBySlotOrder(t *testing.T) {
	db := newTestDB(t)
	f := seedGrid(t, db, 3)

	// Insert out of order.
	addPeriod(t, db, f, f.sectionA, ttModel.DayMonday, f.slots[2])
	addPeriod(t, db, f, f.sectionA, ttModel.DayMonday, f.slots[0])
	addPeriod(t, db, f, f.sectionA, ttModel.DayMonday, f.slots[1])

	grid, err := Grid(db, f.sectionA.SectionID)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	day := grid[ttModel.DayMonday]
	if len(day) != 3 {
		t.Fatalf("monday entries = %d, want 3", len(day))
	}
	for i, e := range day {
		if e.TimetableEntrySlotID != f.slots[i].TimeSlotID {
			t.Fatalf("monday[%d] slot = %s, want %s", i, e.TimetableEntrySlotID, f.slots[i].TimeSlotID)
		}
	}
}
