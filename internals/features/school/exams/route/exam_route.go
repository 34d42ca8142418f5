package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	examController "schoolku_backend/internals/features/school/exams/controller"
	helper "schoolku_backend/internals/helpers"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// ExamAdminRoutes: exam CRUD (management), grade entry (teaching
// staff) and publishing (management).
func ExamAdminRoutes(api fiber.Router, db *gorm.DB) {
	exams := examController.NewExamsController(db, helper.Validate)
	grades := examController.NewGradesController(db, helper.Validate)

	onlyManagement := authMw.OnlyRoles(
		"Only admins or the principal may manage exams",
		constants.ManagementRoles...)
	onlyStaff := authMw.OnlyRoles(
		"Only staff may work with grades",
		constants.StaffRoles...)

	ex := api.Group("/exams")
	ex.Get("/", onlyStaff, exams.List)
	ex.Post("/", onlyManagement, exams.Create)
	ex.Put("/:id", onlyManagement, exams.Update)
	ex.Delete("/:id", onlyManagement, exams.Delete)
	ex.Post("/:id/publish", onlyManagement, exams.SetPublished)
	ex.Get("/:exam_id/grades", onlyStaff, grades.ListForExam)

	api.Post("/grades",
		authMw.OnlyRoles("Only teaching staff may enter grades",
			append(append([]string{}, constants.TeachingRoles...), constants.RoleAdmin)...),
		grades.Enter)
}

// ExamSelfRoutes: report cards; the controller scopes access to self,
// own children, or staff.
func ExamSelfRoutes(api fiber.Router, db *gorm.DB) {
	grades := examController.NewGradesController(db, helper.Validate)
	api.Get("/report-cards/students/:student_id", grades.ReportCard)
}
