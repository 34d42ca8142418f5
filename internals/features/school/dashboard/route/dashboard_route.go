package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dashboardController "schoolku_backend/internals/features/school/dashboard/controller"
)

// DashboardRoutes: one endpoint, shape chosen by the caller's roles.
func DashboardRoutes(api fiber.Router, db *gorm.DB) {
	h := dashboardController.NewDashboardController(db)
	api.Get("/dashboard", h.Show)
}
