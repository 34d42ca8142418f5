package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	assignmentController "schoolku_backend/internals/features/lms/assignments/controller"
	helper "schoolku_backend/internals/helpers"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// AssignmentAdminRoutes: teacher-side assignment management plus
// submission grading.
func AssignmentAdminRoutes(api fiber.Router, db *gorm.DB) {
	assignments := assignmentController.NewAssignmentsController(db, helper.Validate)
	submissions := assignmentController.NewSubmissionsController(db, helper.Validate)

	onlyTeaching := authMw.OnlyRoles(
		"Only teaching staff may manage assignments",
		constants.StaffRoles...)

	as := api.Group("/assignments", onlyTeaching)
	as.Get("/", assignments.List)
	as.Get("/:id", assignments.GetByID)
	as.Post("/", assignments.Create)
	as.Put("/:id", assignments.Update)
	as.Delete("/:id", assignments.Delete)
	as.Get("/:assignment_id/submissions", submissions.ListForAssignment)

	api.Put("/submissions/:id/grade", onlyTeaching, submissions.Grade)
}

// AssignmentSelfRoutes: the student side — browse, submit, review own.
func AssignmentSelfRoutes(api fiber.Router, db *gorm.DB) {
	assignments := assignmentController.NewAssignmentsController(db, helper.Validate)
	submissions := assignmentController.NewSubmissionsController(db, helper.Validate)

	api.Get("/assignments", assignments.List)
	api.Get("/assignments/:id", assignments.GetByID)
	api.Post("/assignments/:assignment_id/submit",
		authMw.OnlyRoles("Only students may submit assignments", constants.RoleStudent),
		submissions.Submit)
	api.Get("/submissions/mine", submissions.Mine)
}
