package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================================================
   BOOKS
========================================================= */

type BookModel struct {
	BookID     uuid.UUID `gorm:"column:book_id;type:uuid;primaryKey" json:"book_id"`
	BookTitle  string    `gorm:"column:book_title;size:200;not null" json:"book_title"`
	BookAuthor string    `gorm:"column:book_author;size:120" json:"book_author,omitempty"`
	BookPages  int       `gorm:"column:book_pages;not null;default:0" json:"book_pages"`

	BookCreatedAt time.Time      `gorm:"column:book_created_at;type:timestamptz;not null;autoCreateTime" json:"book_created_at"`
	BookUpdatedAt time.Time      `gorm:"column:book_updated_at;type:timestamptz;not null;autoUpdateTime" json:"book_updated_at"`
	BookDeletedAt gorm.DeletedAt `gorm:"column:book_deleted_at;index" json:"book_deleted_at,omitempty"`
}

func (BookModel) TableName() string { return "books" }

func (m *BookModel) BeforeCreate(tx *gorm.DB) error {
	if m.BookID == uuid.Nil {
		m.BookID = uuid.New()
	}
	return nil
}

func (m *BookModel) BeforeSave(tx *gorm.DB) error {
	m.BookTitle = strings.TrimSpace(m.BookTitle)
	return nil
}

/* =========================================================
   READING LOGS
========================================================= */

type ReadingLogModel struct {
	ReadingLogID        uuid.UUID `gorm:"column:reading_log_id;type:uuid;primaryKey" json:"reading_log_id"`
	ReadingLogStudentID uuid.UUID `gorm:"column:reading_log_student_id;type:uuid;not null;index:idx_reading_logs_student" json:"reading_log_student_id"`
	ReadingLogBookID    uuid.UUID `gorm:"column:reading_log_book_id;type:uuid;not null;index:idx_reading_logs_book" json:"reading_log_book_id"`

	ReadingLogPagesRead int       `gorm:"column:reading_log_pages_read;not null" json:"reading_log_pages_read"`
	ReadingLogDate      time.Time `gorm:"column:reading_log_date;type:date;not null" json:"reading_log_date"`
	ReadingLogNote      string    `gorm:"column:reading_log_note;size:500" json:"reading_log_note,omitempty"`

	ReadingLogCreatedAt time.Time `gorm:"column:reading_log_created_at;type:timestamptz;not null;autoCreateTime" json:"reading_log_created_at"`
	ReadingLogUpdatedAt time.Time `gorm:"column:reading_log_updated_at;type:timestamptz;not null;autoUpdateTime" json:"reading_log_updated_at"`

	Book *BookModel `gorm:"foreignKey:ReadingLogBookID;references:BookID" json:"book,omitempty"`
}

func (ReadingLogModel) TableName() string { return "reading_logs" }

func (m *ReadingLogModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReadingLogID == uuid.Nil {
		m.ReadingLogID = uuid.New()
	}
	if m.ReadingLogDate.IsZero() {
		m.ReadingLogDate = time.Now()
	}
	return nil
}

/* =========================================================
   BADGES
   Criteria is a JSON document; the only rule evaluated today is
   {"min_pages": N} against a student's lifetime page total.
========================================================= */

type BadgeModel struct {
	BadgeID       uuid.UUID      `gorm:"column:badge_id;type:uuid;primaryKey" json:"badge_id"`
	BadgeName     string         `gorm:"column:badge_name;size:80;not null;uniqueIndex:uq_badges_name" json:"badge_name"`
	BadgeIconPath *string        `gorm:"column:badge_icon_path;type:text" json:"badge_icon_path,omitempty"`
	BadgeCriteria datatypes.JSON `gorm:"column:badge_criteria;not null" json:"badge_criteria"`

	BadgeCreatedAt time.Time      `gorm:"column:badge_created_at;type:timestamptz;not null;autoCreateTime" json:"badge_created_at"`
	BadgeUpdatedAt time.Time      `gorm:"column:badge_updated_at;type:timestamptz;not null;autoUpdateTime" json:"badge_updated_at"`
	BadgeDeletedAt gorm.DeletedAt `gorm:"column:badge_deleted_at;index" json:"badge_deleted_at,omitempty"`
}

func (BadgeModel) TableName() string { return "badges" }

func (m *BadgeModel) BeforeCreate(tx *gorm.DB) error {
	if m.BadgeID == uuid.Nil {
		m.BadgeID = uuid.New()
	}
	return nil
}

/* =========================================================
   AWARDED BADGES
   At most one award per (student, badge).
========================================================= */

type ReadingBadgeModel struct {
	ReadingBadgeID        uuid.UUID `gorm:"column:reading_badge_id;type:uuid;primaryKey" json:"reading_badge_id"`
	ReadingBadgeStudentID uuid.UUID `gorm:"column:reading_badge_student_id;type:uuid;not null;index:idx_reading_badges_student;uniqueIndex:uq_reading_badges_pair" json:"reading_badge_student_id"`
	ReadingBadgeBadgeID   uuid.UUID `gorm:"column:reading_badge_badge_id;type:uuid;not null;uniqueIndex:uq_reading_badges_pair" json:"reading_badge_badge_id"`

	ReadingBadgeAwardedAt time.Time `gorm:"column:reading_badge_awarded_at;type:timestamptz;not null;autoCreateTime" json:"reading_badge_awarded_at"`

	Badge *BadgeModel `gorm:"foreignKey:ReadingBadgeBadgeID;references:BadgeID" json:"badge,omitempty"`
}

func (ReadingBadgeModel) TableName() string { return "reading_badges" }

func (m *ReadingBadgeModel) BeforeCreate(tx *gorm.DB) error {
	if m.ReadingBadgeID == uuid.Nil {
		m.ReadingBadgeID = uuid.New()
	}
	return nil
}
