package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	UserRoutes "schoolku_backend/internals/features/users/users/route"
)

/* ===================== ADMIN ===================== */

func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	UserRoutes.UserAdminRoutes(r, db)
}

/* ===================== USER (PRIVATE) ===================== */

func UserSelfRoutes(r fiber.Router, db *gorm.DB) {
	UserRoutes.UserSelfRoutes(r, db)
}
