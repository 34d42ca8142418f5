package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	acController "schoolku_backend/internals/features/school/academics/controller"
	helper "schoolku_backend/internals/helpers"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// AcademicsAdminRoutes: academic year and semester management. Listing is
// open to any signed-in user, mutations are for admin/principal only.
func AcademicsAdminRoutes(api fiber.Router, db *gorm.DB) {
	years := acController.NewAcademicYearsController(db, helper.Validate)
	semesters := acController.NewSemestersController(db, helper.Validate)

	onlyManagement := authMw.OnlyRoles(
		"Only admins or the principal may manage the academic calendar",
		constants.ManagementRoles...)

	api.Get("/school", years.GetSchool)

	yr := api.Group("/academic-years")
	yr.Get("/", years.List)
	yr.Post("/", onlyManagement, years.Create)
	yr.Put("/:id", onlyManagement, years.Update)
	yr.Delete("/:id", onlyManagement, years.Delete)
	yr.Post("/:id/set-current", onlyManagement, years.SetCurrentYear)

	sm := api.Group("/semesters")
	sm.Get("/", semesters.List)
	sm.Post("/", onlyManagement, semesters.Create)
	sm.Put("/:id", onlyManagement, semesters.Update)
	sm.Delete("/:id", onlyManagement, semesters.Delete)
	sm.Post("/:id/set-current", onlyManagement, semesters.SetCurrentSemester)
}
