package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	ttController "schoolku_backend/internals/features/school/timetable/controller"
	helper "schoolku_backend/internals/helpers"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// TimetableAdminRoutes: slot CRUD and grid mutations, management only.
func TimetableAdminRoutes(api fiber.Router, db *gorm.DB) {
	slots := ttController.NewTimeSlotsController(db, helper.Validate)
	table := ttController.NewTimetableController(db, helper.Validate)

	onlyManagement := authMw.OnlyRoles(
		"Only admins or the principal may manage the timetable",
		constants.ManagementRoles...)

	ts := api.Group("/time-slots")
	ts.Get("/", slots.List)
	ts.Post("/", onlyManagement, slots.Create)
	ts.Put("/:id", onlyManagement, slots.Update)
	ts.Delete("/:id", onlyManagement, slots.Delete)

	tt := api.Group("/timetable")
	tt.Post("/periods", onlyManagement, table.AddPeriod)
	tt.Put("/periods/:id", onlyManagement, table.EditPeriod)
	tt.Delete("/periods/:id", onlyManagement, table.DeletePeriod)
	tt.Post("/periods/:id/copy", onlyManagement, table.CopyPeriod)
	tt.Post("/sections/:section_id/copy-monday", onlyManagement, table.CopyMondayToWeek)
}

// TimetableSelfRoutes: the read-only grid for any signed-in user.
func TimetableSelfRoutes(api fiber.Router, db *gorm.DB) {
	table := ttController.NewTimetableController(db, helper.Validate)
	api.Get("/timetable/sections/:section_id", table.Grid)
}
