package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	quizController "schoolku_backend/internals/features/lms/quizzes/controller"
	helper "schoolku_backend/internals/helpers"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// QuizAdminRoutes: teacher-side quiz management.
func QuizAdminRoutes(api fiber.Router, db *gorm.DB) {
	h := quizController.NewQuizzesController(db, helper.Validate)

	qz := api.Group("/quizzes",
		authMw.OnlyRoles("Only teaching staff may manage quizzes", constants.StaffRoles...))
	qz.Get("/", h.List)
	qz.Post("/", h.Create)
	qz.Put("/:id", h.Update)
	qz.Delete("/:id", h.Delete)
}

// QuizSelfRoutes: read-only listing for students and parents.
func QuizSelfRoutes(api fiber.Router, db *gorm.DB) {
	h := quizController.NewQuizzesController(db, helper.Validate)
	api.Get("/quizzes", h.List)
}
