package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	ttModel "schoolku_backend/internals/features/school/timetable/model"
	helper "schoolku_backend/internals/helpers"
)

var (
	ErrSlotOccupied  = errors.New("slot occupied")
	ErrEntryNotFound = errors.New("timetable entry not found")
)

func isSlotViolation(err error) bool {
	return helper.IsUniqueViolation(err, "uq_timetable_entries_slot", "timetable_entry_slot_id")
}

// AddPeriod inserts one grid cell. An occupied (section, day, slot)
// surfaces as ErrSlotOccupied straight from the unique index; nothing
// is inserted. Teacher double-booking across sections is not checked.
func AddPeriod(db *gorm.DB, entry *ttModel.TimetableEntryModel) error {
	if err := db.Create(entry).Error; err != nil {
		if isSlotViolation(err) {
			return ErrSlotOccupied
		}
		return err
	}
	return nil
}

// EditPeriod rewrites an existing cell; moving it onto an occupied
// slot fails the same way AddPeriod does.
func EditPeriod(db *gorm.DB, entryID uuid.UUID, day int, slotID, subjectID, teacherID uuid.UUID) (*ttModel.TimetableEntryModel, error) {
	var out ttModel.TimetableEntryModel
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&out, "timetable_entry_id = ?", entryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}
		out.TimetableEntryDay = day
		out.TimetableEntrySlotID = slotID
		out.TimetableEntrySubjectID = subjectID
		out.TimetableEntryTeacherID = teacherID
		return tx.Save(&out).Error
	})
	if err != nil {
		if isSlotViolation(err) {
			return nil, ErrSlotOccupied
		}
		return nil, err
	}
	return &out, nil
}

// CopyResult reports what CopyPeriod did per target day.
type CopyResult struct {
	CopiedDays  []int `json:"copied_days"`
	SkippedDays []int `json:"skipped_days"`
}

// CopyPeriod duplicates one cell onto other days of the same section,
// skipping days whose slot is already taken.
func CopyPeriod(db *gorm.DB, entryID uuid.UUID, targetDays []int) (*CopyResult, error) {
	res := &CopyResult{CopiedDays: []int{}, SkippedDays: []int{}}
	err := db.Transaction(func(tx *gorm.DB) error {
		var src ttModel.TimetableEntryModel
		if err := tx.First(&src, "timetable_entry_id = ?", entryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}

		for _, day := range targetDays {
			if day == src.TimetableEntryDay {
				res.SkippedDays = append(res.SkippedDays, day)
				continue
			}
			var taken int64
			if err := tx.Model(&ttModel.TimetableEntryModel{}).
				Where("timetable_entry_section_id = ? AND timetable_entry_day = ? AND timetable_entry_slot_id = ?",
					src.TimetableEntrySectionID, day, src.TimetableEntrySlotID).
				Count(&taken).Error; err != nil {
				return err
			}
			if taken > 0 {
				res.SkippedDays = append(res.SkippedDays, day)
				continue
			}
			dup := ttModel.TimetableEntryModel{
				TimetableEntrySectionID: src.TimetableEntrySectionID,
				TimetableEntryDay:       day,
				TimetableEntrySlotID:    src.TimetableEntrySlotID,
				TimetableEntrySubjectID: src.TimetableEntrySubjectID,
				TimetableEntryTeacherID: src.TimetableEntryTeacherID,
			}
			if err := tx.Create(&dup).Error; err != nil {
				return err
			}
			res.CopiedDays = append(res.CopiedDays, day)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CopyMondayToWeek wipes Tuesday through Friday for a section and
// duplicates Monday's rows across them, all in one transaction.
func CopyMondayToWeek(db *gorm.DB, sectionID uuid.UUID) (int, error) {
	created := 0
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("timetable_entry_section_id = ? AND timetable_entry_day BETWEEN ? AND ?",
				sectionID, ttModel.DayMonday+1, ttModel.DayFriday).
			Delete(&ttModel.TimetableEntryModel{}).Error; err != nil {
			return err
		}

		var monday []ttModel.TimetableEntryModel
		if err := tx.
			Where("timetable_entry_section_id = ? AND timetable_entry_day = ?", sectionID, ttModel.DayMonday).
			Find(&monday).Error; err != nil {
			return err
		}

		for day := ttModel.DayMonday + 1; day <= ttModel.DayFriday; day++ {
			for _, src := range monday {
				dup := ttModel.TimetableEntryModel{
					TimetableEntrySectionID: sectionID,
					TimetableEntryDay:       day,
					TimetableEntrySlotID:    src.TimetableEntrySlotID,
					TimetableEntrySubjectID: src.TimetableEntrySubjectID,
					TimetableEntryTeacherID: src.TimetableEntryTeacherID,
				}
				if err := tx.Create(&dup).Error; err != nil {
					return err
				}
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// Grid returns a section's entries grouped by day, each day ordered by
// slot order.
func Grid(db *gorm.DB, sectionID uuid.UUID) (map[int][]ttModel.TimetableEntryModel, error) {
	var rows []ttModel.TimetableEntryModel
	if err := db.Preload("Slot").Preload("Subject").
		Joins("JOIN time_slots ON time_slots.time_slot_id = timetable_entries.timetable_entry_slot_id").
		Where("timetable_entry_section_id = ?", sectionID).
		Order("timetable_entry_day ASC, time_slots.time_slot_order ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	grid := map[int][]ttModel.TimetableEntryModel{}
	for _, r := range rows {
		grid[r.TimetableEntryDay] = append(grid[r.TimetableEntryDay], r)
	}
	return grid, nil
}
