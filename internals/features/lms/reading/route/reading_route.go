package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	readingController "schoolku_backend/internals/features/lms/reading/controller"
	helper "schoolku_backend/internals/helpers"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// ReadingAdminRoutes: book catalog and badge definitions.
func ReadingAdminRoutes(api fiber.Router, db *gorm.DB) {
	books := readingController.NewBooksController(db, helper.Validate)
	badges := readingController.NewBadgesController(db, helper.Validate)

	onlyStaff := authMw.OnlyRoles("Only staff may manage the reading program", constants.StaffRoles...)

	bk := api.Group("/books", onlyStaff)
	bk.Get("/", books.List)
	bk.Post("/", books.Create)
	bk.Put("/:id", books.Update)
	bk.Delete("/:id", books.Delete)

	bd := api.Group("/badges", onlyStaff)
	bd.Get("/", badges.List)
	bd.Post("/", badges.Create)
	bd.Put("/:id", badges.Update)
	bd.Delete("/:id", badges.Delete)
}

// ReadingSelfRoutes: a student's own logs and badges.
func ReadingSelfRoutes(api fiber.Router, db *gorm.DB) {
	books := readingController.NewBooksController(db, helper.Validate)
	logs := readingController.NewReadingLogsController(db, helper.Validate)

	api.Get("/books", books.List)

	onlyStudents := authMw.OnlyRoles("Only students keep reading logs", constants.RoleStudent)
	rl := api.Group("/reading-logs", onlyStudents)
	rl.Post("/", logs.Add)
	rl.Get("/mine", logs.Mine)
	rl.Delete("/:id", logs.Delete)

	api.Get("/reading-badges/mine", onlyStudents, logs.MyBadges)
}
