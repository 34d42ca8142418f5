package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	classDTO "schoolku_backend/internals/features/school/classes/dto"
	classModel "schoolku_backend/internals/features/school/classes/model"
	userModel "schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
)

type SectionsController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewSectionsController(db *gorm.DB, v interface{ Struct(any) error }) *SectionsController {
	return &SectionsController{DB: db, Validator: v}
}

/* ===== LIST & DETAIL ===== */

// List returns sections with their active enrollment counts, optionally
// scoped by ?class_id=.
func (h *SectionsController) List(c *fiber.Ctx) error {
	q := h.DB.Model(&classModel.SectionModel{}).Preload("Class")
	if raw := strings.TrimSpace(c.Query("class_id")); raw != "" {
		classID, err := uuid.Parse(raw)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class_id")
		}
		q = q.Where("section_class_id = ?", classID)
	}

	var rows []classModel.SectionModel
	if err := q.Order("section_name ASC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list sections")
	}

	counts := map[uuid.UUID]int64{}
	type countRow struct {
		SectionID uuid.UUID
		Total     int64
	}
	var cr []countRow
	if err := h.DB.Table("enrollments").
		Select("enrollment_section_id AS section_id, COUNT(*) AS total").
		Where("enrollment_status = ? AND enrollment_deleted_at IS NULL", "active").
		Group("enrollment_section_id").
		Scan(&cr).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count enrollments")
	}
	for _, r := range cr {
		counts[r.SectionID] = r.Total
	}

	out := make([]classDTO.SectionWithCountResponse, 0, len(rows))
	for _, s := range rows {
		out = append(out, classDTO.SectionWithCountResponse{
			SectionModel:   s,
			ActiveStudents: counts[s.SectionID],
		})
	}
	return helper.JsonOK(c, "", out)
}

func (h *SectionsController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent classModel.SectionModel
	if err := h.DB.Preload("Class").First(&ent, "section_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "", ent)
}

/* ===== MUTATIONS ===== */

func (h *SectionsController) Create(c *fiber.Ctx) error {
	var p classDTO.CreateSectionRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if p.Capacity == 0 {
		p.Capacity = 40
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	var class classModel.ClassModel
	if err := h.DB.First(&class, "class_id = ?", p.ClassID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if p.HomeroomTeacherID != nil {
		if err := h.requireTeacher(*p.HomeroomTeacherID); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	ent := classModel.SectionModel{
		SectionClassID:           p.ClassID,
		SectionName:              p.Name,
		SectionCapacity:          p.Capacity,
		SectionHomeroomTeacherID: p.HomeroomTeacherID,
	}
	if err := h.DB.Create(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_sections_class_name") {
			return helper.JsonError(c, fiber.StatusConflict, "That section already exists in this class")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonCreated(c, "Section created", ent)
}

func (h *SectionsController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}
	var ent classModel.SectionModel
	if err := h.DB.First(&ent, "section_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Section not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var p classDTO.UpdateSectionRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	if p.Name != nil {
		ent.SectionName = *p.Name
	}
	if p.Capacity != nil {
		ent.SectionCapacity = *p.Capacity
	}
	switch {
	case p.ClearHomeroom:
		ent.SectionHomeroomTeacherID = nil
	case p.HomeroomTeacherID != nil:
		if err := h.requireTeacher(*p.HomeroomTeacherID); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		ent.SectionHomeroomTeacherID = p.HomeroomTeacherID
	}

	if err := h.DB.Save(&ent).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_sections_class_name") {
			return helper.JsonError(c, fiber.StatusConflict, "That section already exists in this class")
		}
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	return helper.JsonUpdated(c, "Section updated", ent)
}

func (h *SectionsController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid id")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var enrollments int64
		if err := tx.Table("enrollments").
			Where("enrollment_section_id = ? AND enrollment_deleted_at IS NULL", id).
			Count(&enrollments).Error; err != nil {
			return err
		}
		if enrollments > 0 {
			return errDeleteHasChildren
		}
		res := tx.Delete(&classModel.SectionModel{}, "section_id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Section not found")
		case errors.Is(err, errDeleteHasChildren) || helper.IsForeignKeyViolation(err):
			return helper.JsonError(c, fiber.StatusConflict, "The section still has enrollments")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete section")
	}
	return helper.JsonDeleted(c, "Section deleted", fiber.Map{"section_id": id})
}

func (h *SectionsController) requireTeacher(userID uuid.UUID) error {
	var u userModel.UserModel
	if err := h.DB.First(&u, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("homeroom teacher user not found")
		}
		return err
	}
	if !u.HasRole(constants.RoleTeacher) && !u.HasRole(constants.RoleLeadingTeacher) {
		return errors.New("homeroom teacher must have a teaching role")
	}
	return nil
}
