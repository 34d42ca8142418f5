package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	enrollController "schoolku_backend/internals/features/school/enrollments/controller"
	helper "schoolku_backend/internals/helpers"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// EnrollmentAdminRoutes: the enrollment engine. Reads are open to
// staff; every mutation is admin/principal only.
func EnrollmentAdminRoutes(api fiber.Router, db *gorm.DB) {
	h := enrollController.NewEnrollmentsController(db, helper.Validate)

	onlyManagement := authMw.OnlyRoles(
		"Only admins or the principal may manage enrollments",
		constants.ManagementRoles...)
	onlyStaff := authMw.OnlyRoles(
		"Only staff may view enrollments",
		constants.StaffRoles...)

	en := api.Group("/enrollments")
	en.Get("/", onlyStaff, h.List)
	en.Get("/:id", onlyStaff, h.GetByID)
	en.Post("/", onlyManagement, h.Enroll)
	en.Post("/bulk-promote", onlyManagement, h.BulkPromote)
	en.Post("/:id/transfer", onlyManagement, h.Transfer)
	en.Post("/:id/withdraw", onlyManagement, h.Withdraw)
}
