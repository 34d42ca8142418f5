package service

import (
	"errors"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/gorm"

	readingModel "schoolku_backend/internals/features/lms/reading/model"
	helper "schoolku_backend/internals/helpers"
)

var (
	ErrBookNotFound = errors.New("book not found")
)

type badgeCriteria struct {
	MinPages int `json:"min_pages"`
}

// AddReadingLog inserts the log and evaluates badge criteria against the
// student's new lifetime page total inside one transaction. A badge is
// awarded at most once per student; the unique pair index backstops any
// concurrent award.
func AddReadingLog(db *gorm.DB, log *readingModel.ReadingLogModel) ([]readingModel.BadgeModel, error) {
	var awarded []readingModel.BadgeModel

	err := db.Transaction(func(tx *gorm.DB) error {
		var book readingModel.BookModel
		if err := tx.First(&book, "book_id = ?", log.ReadingLogBookID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookNotFound
			}
			return err
		}

		if err := tx.Create(log).Error; err != nil {
			return err
		}

		var totalPages int64
		if err := tx.Model(&readingModel.ReadingLogModel{}).
			Where("reading_log_student_id = ?", log.ReadingLogStudentID).
			Select("COALESCE(SUM(reading_log_pages_read), 0)").
			Scan(&totalPages).Error; err != nil {
			return err
		}

		var badges []readingModel.BadgeModel
		if err := tx.Find(&badges).Error; err != nil {
			return err
		}

		var held []uuid.UUID
		if err := tx.Model(&readingModel.ReadingBadgeModel{}).
			Where("reading_badge_student_id = ?", log.ReadingLogStudentID).
			Pluck("reading_badge_badge_id", &held).Error; err != nil {
			return err
		}
		heldSet := make(map[uuid.UUID]struct{}, len(held))
		for _, id := range held {
			heldSet[id] = struct{}{}
		}

		for i := range badges {
			b := badges[i]
			if _, ok := heldSet[b.BadgeID]; ok {
				continue
			}
			var crit badgeCriteria
			if err := sonic.Unmarshal(b.BadgeCriteria, &crit); err != nil || crit.MinPages <= 0 {
				continue
			}
			if totalPages < int64(crit.MinPages) {
				continue
			}
			award := readingModel.ReadingBadgeModel{
				ReadingBadgeStudentID: log.ReadingLogStudentID,
				ReadingBadgeBadgeID:   b.BadgeID,
			}
			if err := tx.Create(&award).Error; err != nil {
				if helper.IsUniqueViolation(err, "uq_reading_badges_pair", "reading_badge_badge_id") {
					continue
				}
				return err
			}
			awarded = append(awarded, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return awarded, nil
}

// StudentPageTotal sums a student's logged pages across all books.
func StudentPageTotal(db *gorm.DB, studentID uuid.UUID) (int64, error) {
	var total int64
	err := db.Model(&readingModel.ReadingLogModel{}).
		Where("reading_log_student_id = ?", studentID).
		Select("COALESCE(SUM(reading_log_pages_read), 0)").
		Scan(&total).Error
	return total, err
}
