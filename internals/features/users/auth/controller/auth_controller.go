package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	authDTO "schoolku_backend/internals/features/users/auth/dto"
	authService "schoolku_backend/internals/features/users/auth/service"
	userDTO "schoolku_backend/internals/features/users/users/dto"
	userModel "schoolku_backend/internals/features/users/users/model"
	helper "schoolku_backend/internals/helpers"
	helperAuth "schoolku_backend/internals/helpers/auth"
)

type AuthController struct {
	DB        *gorm.DB
	Validator interface{ Struct(any) error }
}

func NewAuthController(db *gorm.DB, v interface{ Struct(any) error }) *AuthController {
	return &AuthController{DB: db, Validator: v}
}

/* ==========================  LOGIN  ========================== */

func (h *AuthController) Login(c *fiber.Ctx) error {
	var p authDTO.LoginRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}

	var u userModel.UserModel
	err := h.DB.Where("user_email = ?", strings.ToLower(strings.TrimSpace(p.Email))).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong email or password")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.UserPasswordHash), []byte(p.Password)) != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Wrong email or password")
	}
	if !u.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	return h.answerTokenPair(c, &u)
}

/* ==========================  GOOGLE LOGIN  ========================== */

// LoginGoogle verifies a Google ID token and signs in the matching
// (pre-provisioned) account. There is no self-provisioning: unknown
// emails are rejected.
func (h *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var p authDTO.GoogleLoginRequest
	if err := c.BodyParser(&p); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if done, err := helper.JsonValidation(c, h.Validator, p); done {
		return err
	}
	if configs.GoogleClientID == "" {
		return helper.JsonError(c, fiber.StatusNotImplemented, "Google sign-in is not configured")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(p.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(p.IDToken)
	if err != nil || strings.TrimSpace(claimSet.Email) == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}

	var u userModel.UserModel
	err = h.DB.Where("user_email = ?", strings.ToLower(claimSet.Email)).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusForbidden, "No account registered for this Google email")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !u.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	return h.answerTokenPair(c, &u)
}

/* ==========================  REFRESH  ========================== */

func (h *AuthController) Refresh(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Cookies("refresh_token"))
	if raw == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		raw = strings.TrimSpace(body.RefreshToken)
	}
	if raw == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Missing refresh token")
	}

	userID, err := authService.ConsumeRefreshToken(h.DB, raw)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrRefreshExpired):
			return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token expired")
		case errors.Is(err, authService.ErrRefreshUnknown):
			return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var u userModel.UserModel
	if err := h.DB.First(&u, "user_id = ?", userID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !u.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	return h.answerTokenPair(c, &u)
}

/* ==========================  LOGOUT  ========================== */

func (h *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}

	// Blacklist the current access token for its remaining lifetime.
	raw := ""
	if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		raw = strings.TrimSpace(authz[7:])
	} else {
		raw = strings.TrimSpace(c.Cookies("access_token"))
	}
	if raw != "" {
		exp := time.Now().Add(authService.AccessTokenTTL)
		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(configs.JWTSecret), nil
		}); err == nil {
			if v, ok := claims["exp"].(float64); ok {
				exp = time.Unix(int64(v), 0)
			}
		}
		if err := authService.BlacklistAccessToken(h.DB, raw, exp); err != nil {
			log.Printf("[WARN] blacklist on logout: %v", err)
		}
	}

	if err := authService.RevokeUserRefreshTokens(h.DB, userID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke refresh tokens")
	}

	c.ClearCookie("access_token", "refresh_token")
	return helper.JsonOK(c, "Logged out", nil)
}

/* ==========================  ME  ========================== */

func (h *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return err
	}
	var u userModel.UserModel
	if err := h.DB.First(&u, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	data := fiber.Map{"user": userDTO.FromUserModel(u)}

	// Attach role profiles when present.
	if u.HasRole("student") {
		var sp userModel.StudentProfileModel
		if err := h.DB.Where("student_profile_user_id = ?", u.UserID).First(&sp).Error; err == nil {
			data["student_profile"] = sp
		}
	}
	if u.HasRole("parent") {
		var children []userModel.StudentProfileModel
		if err := h.DB.Where("student_profile_guardian_user_id = ?", u.UserID).Find(&children).Error; err == nil {
			data["children"] = children
		}
	}

	return helper.JsonOK(c, "", data)
}

/* ==========================  shared  ========================== */

func (h *AuthController) answerTokenPair(c *fiber.Ctx, u *userModel.UserModel) error {
	access, err := authService.IssueAccessToken(u)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	refresh, err := authService.IssueRefreshToken(h.DB, u)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue refresh token")
	}

	secure := strings.HasPrefix(configs.AppURL, "https://")
	c.Cookie(&fiber.Cookie{
		Name: "access_token", Value: access,
		Expires: time.Now().Add(authService.AccessTokenTTL),
		HTTPOnly: true, Secure: secure, SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name: "refresh_token", Value: refresh,
		Expires: time.Now().Add(authService.RefreshTokenTTL),
		HTTPOnly: true, Secure: secure, SameSite: "Lax",
	})

	return helper.JsonOK(c, "Login successful", authDTO.TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(authService.AccessTokenTTL.Seconds()),
		User:         userDTO.FromUserModel(*u),
	})
}
