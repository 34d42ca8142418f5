package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoutes "schoolku_backend/internals/features/users/auth/route"
	routeDetails "schoolku_backend/internals/route/details"

	authMw "schoolku_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== AUTH BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoutes.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// ADMIN / STAFF → JWT + per-route role checks inside each feature.
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/api/a", authMw.AuthMiddleware(db))

	// PRIVATE (USER) → JWT, any signed-in role.
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api/u", authMw.AuthMiddleware(db))

	// ===================== MOUNT ROUTES =====================

	log.Println("[INFO] Mounting User routes...")
	routeDetails.UserAdminRoutes(admin, db)
	routeDetails.UserSelfRoutes(private, db)

	log.Println("[INFO] Mounting School routes...")
	routeDetails.SchoolAdminRoutes(admin, db)
	routeDetails.SchoolSelfRoutes(private, db)

	log.Println("[INFO] Mounting LMS routes...")
	routeDetails.LmsAdminRoutes(admin, db)
	routeDetails.LmsSelfRoutes(private, db)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"uptime": time.Since(startTime).String(),
		})
	})
}
