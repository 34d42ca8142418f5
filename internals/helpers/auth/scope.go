package helperauth

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	userModel "schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
)

// RequireCanViewStudent gates student-scoped reads: staff see anyone,
// a student sees themself, a parent sees the students whose guardian
// of record they are. When access is denied the response has already
// been written; callers follow the JsonValidation pattern:
//
//	if done, err := helperAuth.RequireCanViewStudent(c, db, id); done {
//		return err
//	}
func RequireCanViewStudent(c *fiber.Ctx, db *gorm.DB, studentID uuid.UUID) (bool, error) {
	if HasAnyRole(c, constants.StaffRoles...) {
		return false, nil
	}
	if IsSelf(c, studentID) {
		return false, nil
	}
	viewer, err := GetUserID(c)
	if err != nil {
		return true, helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	var n int64
	if err := db.Model(&userModel.StudentProfileModel{}).
		Where("student_profile_user_id = ? AND student_profile_guardian_user_id = ?", studentID, viewer).
		Count(&n).Error; err != nil {
		return true, helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if n == 0 {
		return true, helper.JsonError(c, fiber.StatusForbidden, "You may only view your own children")
	}
	return false, nil
}
