package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	authModel "schoolku_backend/internals/features/users/auth/model"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

// AuthMiddleware: requireLogin. Extracts the bearer token (cookie
// fallback), rejects blacklisted tokens, verifies signature + expiry and
// hydrates user id / name / roles into locals.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// Blacklist check, once per request.
		if c.Locals("token_checked") == nil {
			var existing authModel.TokenBlacklistModel
			err := db.Where("token_blacklist_token = ?", tokenString).First(&existing).Error
			if err == nil {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: token is revoked")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("[ERROR] blacklist lookup:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		secret := configs.JWTSecret
		if secret == "" {
			log.Println("[ERROR] JWT_SECRET empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: invalid token")
		}

		if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized: token expired")
		}

		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); authz != "" {
		if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			return strings.TrimSpace(authz[7:]), nil
		}
		return "", errors.New("Unauthorized: malformed Authorization header")
	}
	if raw := strings.TrimSpace(c.Cookies("access_token")); raw != "" {
		return raw, nil
	}
	return "", errors.New("Unauthorized: missing token")
}

func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if sub, _ := claims["sub"].(string); sub != "" {
		c.Locals(helperAuth.LocUserID, sub)
	} else if id, _ := claims["id"].(string); id != "" {
		c.Locals(helperAuth.LocUserID, id)
	}
	if name, _ := claims["user_name"].(string); name != "" {
		c.Locals(helperAuth.LocUserName, name)
	}
	if roles, ok := claims["roles"]; ok {
		c.Locals(helperAuth.LocRoles, roles)
	}
}
