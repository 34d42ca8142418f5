package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	AssignmentRoutes "schoolku_backend/internals/features/lms/assignments/route"
	QuizRoutes "schoolku_backend/internals/features/lms/quizzes/route"
	ReadingRoutes "schoolku_backend/internals/features/lms/reading/route"
)

/* ===================== ADMIN / STAFF ===================== */

func LmsAdminRoutes(r fiber.Router, db *gorm.DB) {
	AssignmentRoutes.AssignmentAdminRoutes(r, db)
	QuizRoutes.QuizAdminRoutes(r, db)
	ReadingRoutes.ReadingAdminRoutes(r, db)
}

/* ===================== USER (PRIVATE) ===================== */

func LmsSelfRoutes(r fiber.Router, db *gorm.DB) {
	AssignmentRoutes.AssignmentSelfRoutes(r, db)
	QuizRoutes.QuizSelfRoutes(r, db)
	ReadingRoutes.ReadingSelfRoutes(r, db)
}
