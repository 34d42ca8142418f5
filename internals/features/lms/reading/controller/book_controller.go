package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	readingDTO "schoolku_backend/internals/features/lms/reading/dto"
	readingModel "schoolku_backend/internals/features/lms/reading/model"
	helper "schoolku_backend/internals/helpers"
)

type BooksController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewBooksController(db *gorm.DB, v interface{ Struct(any) error }) *BooksController {
	return &BooksController{DB: db, Validator: v}
}

func (h *BooksController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&readingModel.BookModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(book_title) LIKE ? OR LOWER(book_author) LIKE ?", like, like)
	}
	var rows []readingModel.BookModel
	if err := q.Order("book_title ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list books")
	}
	return helper.JsonOK(c, "", rows)
}

func (h *BooksController) Create(c *fiber.Ctx) error {
	var p readingDTO.CreateBookRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}
	ent := p.ToModel()
	if err := h.DB.Create(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Book created", ent)
}

func (h *BooksController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var p readingDTO.UpdateBookRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	var ent readingModel.BookModel
	if err := h.DB.First(&ent, "book_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	p.Apply(&ent)
	if err := h.DB.Save(&ent).Error; err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Book updated", ent)
}

// Delete soft-deletes the book; existing reading logs keep their totals.
func (h *BooksController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	res := h.DB.Delete(&readingModel.BookModel{}, "book_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete book")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
	}
	return helper.JsonDeleted(c, "Book deleted", fiber.Map{"book_id": id})
}
