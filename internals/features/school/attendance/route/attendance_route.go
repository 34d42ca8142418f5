package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	attendanceController "schoolku_backend/internals/features/school/attendance/controller"
	helper "schoolku_backend/internals/helpers"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// AttendanceAdminRoutes: marking and section reporting, staff only.
func AttendanceAdminRoutes(api fiber.Router, db *gorm.DB) {
	h := attendanceController.NewAttendanceController(db, helper.Validate)

	onlyStaff := authMw.OnlyRoles(
		"Only staff may mark or report attendance",
		constants.StaffRoles...)

	at := api.Group("/attendance", onlyStaff)
	at.Post("/mark", h.BulkMark)
	at.Get("/report", h.SectionReport)
}

// AttendanceSelfRoutes: per-student day rows; the controller scopes
// access to self, own children, or staff.
func AttendanceSelfRoutes(api fiber.Router, db *gorm.DB) {
	h := attendanceController.NewAttendanceController(db, helper.Validate)
	api.Get("/attendance/students/:student_id", h.ListForStudent)
}
