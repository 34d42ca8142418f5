package dto

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	readingModel "schoolku_backend/internals/features/lms/reading/model"
)

/* ===== BOOKS ===== */

type CreateBookRequest struct {
	Title  string `json:"title" form:"title" validate:"required,min=1,max=200"`
	Author string `json:"author" form:"author" validate:"omitempty,max=120"`
	Pages  int    `json:"pages" form:"pages" validate:"omitempty,gte=0"`
}

func (r CreateBookRequest) ToModel() readingModel.BookModel {
	return readingModel.BookModel{
		BookTitle:  strings.TrimSpace(r.Title),
		BookAuthor: strings.TrimSpace(r.Author),
		BookPages:  r.Pages,
	}
}

type UpdateBookRequest struct {
	Title  *string `json:"title" form:"title" validate:"omitempty,min=1,max=200"`
	Author *string `json:"author" form:"author" validate:"omitempty,max=120"`
	Pages  *int    `json:"pages" form:"pages" validate:"omitempty,gte=0"`
}

func (r UpdateBookRequest) Apply(m *readingModel.BookModel) {
	if r.Title != nil {
		m.BookTitle = strings.TrimSpace(*r.Title)
	}
	if r.Author != nil {
		m.BookAuthor = strings.TrimSpace(*r.Author)
	}
	if r.Pages != nil {
		m.BookPages = *r.Pages
	}
}

/* ===== READING LOGS ===== */

type AddReadingLogRequest struct {
	BookID    uuid.UUID `json:"book_id" validate:"required"`
	PagesRead int       `json:"pages_read" validate:"required,gte=1,lte=2000"`
	Date      string    `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Note      string    `json:"note" validate:"omitempty,max=500"`
}

func (r AddReadingLogRequest) ToModel(studentID uuid.UUID) readingModel.ReadingLogModel {
	m := readingModel.ReadingLogModel{
		ReadingLogStudentID: studentID,
		ReadingLogBookID:    r.BookID,
		ReadingLogPagesRead: r.PagesRead,
		ReadingLogNote:      strings.TrimSpace(r.Note),
	}
	if r.Date != "" {
		if d, err := time.Parse("2006-01-02", r.Date); err == nil {
			m.ReadingLogDate = d
		}
	}
	return m
}

type ReadingLogResponse struct {
	Log           readingModel.ReadingLogModel `json:"log"`
	AwardedBadges []readingModel.BadgeModel    `json:"awarded_badges,omitempty"`
}

/* ===== BADGES ===== */

type CreateBadgeRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=1,max=80"`
	MinPages int    `json:"min_pages" form:"min_pages" validate:"required,gte=1"`
}

func (r CreateBadgeRequest) ToModel() readingModel.BadgeModel {
	return readingModel.BadgeModel{
		BadgeName:     strings.TrimSpace(r.Name),
		BadgeCriteria: CriteriaJSON(r.MinPages),
	}
}

type UpdateBadgeRequest struct {
	Name     *string `json:"name" form:"name" validate:"omitempty,min=1,max=80"`
	MinPages *int    `json:"min_pages" form:"min_pages" validate:"omitempty,gte=1"`
}

func (r UpdateBadgeRequest) Apply(m *readingModel.BadgeModel) {
	if r.Name != nil {
		m.BadgeName = strings.TrimSpace(*r.Name)
	}
	if r.MinPages != nil {
		m.BadgeCriteria = CriteriaJSON(*r.MinPages)
	}
}

// CriteriaJSON builds the stored criteria document for a page-count badge.
func CriteriaJSON(minPages int) datatypes.JSON {
	return datatypes.JSON([]byte(`{"min_pages":` + strconv.Itoa(minPages) + `}`))
}
