package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authController "schoolku_backend/internals/features/users/auth/controller"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/middlewares"
	authMw "schoolku_backend/internals/middlewares/auth"
)

// AuthRoutes wires /api/auth. Login endpoints sit behind the stricter
// rate limiter; logout/me need a valid token.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	h := authController.NewAuthController(db, helper.Validate)

	grp := app.Group("/api/auth")
	grp.Post("/login", middlewares.LoginRateLimiter(), h.Login)
	grp.Post("/login-google", middlewares.LoginRateLimiter(), h.LoginGoogle)
	grp.Post("/refresh-token", h.Refresh)

	grp.Post("/logout", authMw.AuthMiddleware(db), h.Logout)
	grp.Get("/me", authMw.AuthMiddleware(db), h.Me)
}
