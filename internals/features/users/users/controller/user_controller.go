package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	userDTO "schoolku_backend/internals/features/users/users/dto"
	userModel "schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type UsersController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewUsersController(db *gorm.DB, v interface{ Struct(any) error }) *UsersController {
	return &UsersController{DB: db, Validator: v}
}

/* =========================================================
   LIST (admin/principal) — ?q= &role= &is_active=
   ========================================================= */

func (h *UsersController) List(c *fiber.Ctx) error {
	pg := helper.ResolvePaging(c, 20, 100)

	q := h.DB.Model(&userModel.UserModel{})
	if term := strings.TrimSpace(c.Query("q")); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("lower(user_name) LIKE ? OR lower(user_email) LIKE ?", like, like)
	}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		q = q.Where("? = ANY(user_roles)", role)
	}
	if v := strings.TrimSpace(c.Query("is_active")); v != "" {
		q = q.Where("user_is_active = ?", v == "true" || v == "1")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var rows []userModel.UserModel
	if err := q.Order("user_name ASC").Limit(pg.Limit).Offset(pg.Offset).Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to list users")
	}

	return helper.JsonList(c, "", userDTO.FromUserModels(rows), helper.BuildPagination(total, pg, len(rows)))
}

/* =========================================================
   GET BY ID
   ========================================================= */

func (h *UsersController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	// Non-staff may only read themselves.
	if !helperAuth.HasAnyRole(c, constants.ManagementRoles...) && !helperAuth.IsSelf(c, id) {
		return helper.JsonError(c, fiber.StatusForbidden, "Forbidden")
	}

	var mo userModel.UserModel
	if err := h.DB.First(&mo, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	return helper.JsonOK(c, "", userDTO.FromUserModel(mo))
}

/* =========================================================
   CREATE (admin) — user row + role profiles in one tx
   ========================================================= */

func (h *UsersController) Create(c *fiber.Ctx) error {
	var p userDTO.CreateUserRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	p.Normalize()
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	hasStudentRole := false
	for _, r := range p.Roles {
		if r == constants.RoleStudent {
			hasStudentRole = true
		}
	}
	if hasStudentRole && p.StudentCode == nil {
		return helper.JsonValidationError(c, map[string][]string{
			"student_code": {"is required for the student role"},
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	ent := userModel.UserModel{
		UserName:         p.Name,
		UserEmail:        p.Email,
		UserPasswordHash: string(hash),
		UserPhone:        p.Phone,
		UserRoles:        p.Roles,
		UserIsActive:     true,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ent).Error; err != nil {
			return err
		}
		for _, role := range p.Roles {
			switch role {
			case constants.RoleStudent:
				sp := userModel.StudentProfileModel{
					StudentProfileUserID:         ent.UserID,
					StudentProfileCode:           *p.StudentCode,
					StudentProfileDOB:            p.StudentDOB,
					StudentProfileGuardianUserID: p.GuardianUserID,
				}
				if err := tx.Create(&sp).Error; err != nil {
					return err
				}
			case constants.RoleTeacher, constants.RoleLeadingTeacher:
				tp := userModel.TeacherProfileModel{TeacherProfileUserID: ent.UserID}
				if err := tx.Where("teacher_profile_user_id = ?", ent.UserID).
					FirstOrCreate(&tp).Error; err != nil {
					return err
				}
			case constants.RoleParent:
				pp := userModel.ParentProfileModel{ParentProfileUserID: ent.UserID}
				if err := tx.Create(&pp).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		switch {
		case helper.IsUniqueViolation(err, "uq_users_email"):
			return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
		case helper.IsUniqueViolation(err, "uq_student_profiles_code"):
			return helper.JsonError(c, fiber.StatusConflict, "Student code is already used")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create user")
	}

	return helper.JsonCreated(c, "User created", userDTO.FromUserModel(ent))
}

/* =========================================================
   UPDATE (admin)
   ========================================================= */

func (h *UsersController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var mo userModel.UserModel
	if err := h.DB.First(&mo, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var p userDTO.UpdateUserRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	p.Apply(&mo)
	if err := h.DB.Save(&mo).Error; err != nil {
		if helper.IsUniqueViolation(err, "uq_users_email") {
			return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update user")
	}
	return helper.JsonUpdated(c, "User updated", userDTO.FromUserModel(mo))
}

/* =========================================================
   DELETE (admin, soft)
   ========================================================= */

func (h *UsersController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	res := h.DB.Delete(&userModel.UserModel{}, "user_id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete user")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "User not found")
	}
	return helper.JsonDeleted(c, "User deleted", fiber.Map{"user_id": id})
}

/* =========================================================
   PHOTO UPLOAD — self or admin
   ========================================================= */

func (h *UsersController) UploadPhoto(c *fiber.Ctx) error {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}
	if err := helperAuth.RequireSelfOrRole(c, id, constants.RoleAdmin); err != nil {
		return err
	}

	var mo userModel.UserModel
	if err := h.DB.First(&mo, "user_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	fh, err := c.FormFile("photo")
	if err != nil || fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "No photo uploaded")
	}

	rel, err := helper.SaveImageResized(fh, "users/"+id.String(), 512)
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store photo")
	}

	old := mo.UserPhotoPath
	mo.UserPhotoPath = &rel
	if err := h.DB.Model(&mo).Update("user_photo_path", rel).Error; err != nil {
		helper.RemoveUpload(rel)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save photo path")
	}
	if old != nil {
		helper.RemoveUpload(*old)
	}

	return helper.JsonUpdated(c, "Photo updated", fiber.Map{"user_photo_path": rel})
}
