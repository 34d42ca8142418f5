package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	classController "schoolku_backend/internals/features/school/classes/controller"
	helper "schoolku_backend/internals/helpers"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// ClassAdminRoutes: class and section management. Reads are available
// to any signed-in user, mutations are for admin/principal only.
func ClassAdminRoutes(api fiber.Router, db *gorm.DB) {
	classes := classController.NewClassesController(db, helper.Validate)
	sections := classController.NewSectionsController(db, helper.Validate)

	onlyManagement := authMw.OnlyRoles(
		"Only admins or the principal may manage classes and sections",
		constants.ManagementRoles...)

	cl := api.Group("/classes")
	cl.Get("/", classes.List)
	cl.Get("/:id", classes.GetByID)
	cl.Post("/", onlyManagement, classes.Create)
	cl.Put("/:id", onlyManagement, classes.Update)
	cl.Delete("/:id", onlyManagement, classes.Delete)

	sc := api.Group("/sections")
	sc.Get("/", sections.List)
	sc.Get("/:id", sections.GetByID)
	sc.Post("/", onlyManagement, sections.Create)
	sc.Put("/:id", onlyManagement, sections.Update)
	sc.Delete("/:id", onlyManagement, sections.Delete)
}
