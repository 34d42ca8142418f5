package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	subjectController "schoolku_backend/internals/features/school/subjects/controller"
	helper "schoolku_backend/internals/helpers"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// SubjectAdminRoutes: subject catalog and class-subject assignments.
func SubjectAdminRoutes(api fiber.Router, db *gorm.DB) {
	subjects := subjectController.NewSubjectsController(db, helper.Validate)
	assignments := subjectController.NewClassSubjectsController(db, helper.Validate)

	onlyManagement := authMw.OnlyRoles(
		"Only admins or the principal may manage subjects",
		constants.ManagementRoles...)

	sj := api.Group("/subjects")
	sj.Get("/", subjects.List)
	sj.Get("/:id", subjects.GetByID)
	sj.Post("/", onlyManagement, subjects.Create)
	sj.Put("/:id", onlyManagement, subjects.Update)
	sj.Delete("/:id", onlyManagement, subjects.Delete)

	cs := api.Group("/class-subjects")
	cs.Get("/", assignments.List)
	cs.Post("/", onlyManagement, assignments.Assign)
	cs.Put("/:id", onlyManagement, assignments.Update)
	cs.Delete("/:id", onlyManagement, assignments.Unassign)
}
