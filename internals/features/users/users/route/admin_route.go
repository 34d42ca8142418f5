package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	userController "schoolku_backend/internals/features/users/users/controller"
	helper "schoolku_backend/internals/helpers"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// UserAdminRoutes: user administration, admin/principal only.
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	h := userController.NewUsersController(db, helper.Validate)

	users := r.Group("/users",
		authMw.OnlyRoles("Only admins or the principal may manage users", constants.ManagementRoles...))
	users.Get("/", h.List)
	users.Get("/:id", h.GetByID)
	users.Post("/", authMw.OnlyRoles("Only admins may create users", constants.RoleAdmin), h.Create)
	users.Patch("/:id", authMw.OnlyRoles("Only admins may update users", constants.RoleAdmin), h.Update)
	users.Delete("/:id", authMw.OnlyRoles("Only admins may delete users", constants.RoleAdmin), h.Delete)
}

// UserSelfRoutes: endpoints any authenticated user may call on themselves.
func UserSelfRoutes(r fiber.Router, db *gorm.DB) {
	h := userController.NewUsersController(db, helper.Validate)

	r.Get("/users/:id", h.GetByID)
	r.Post("/users/:id/photo", h.UploadPhoto)
}
