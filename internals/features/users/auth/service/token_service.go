package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"schoolku_backend/internals/configs"
	authModel "schoolku_backend/internals/features/users/auth/model"
	userModel "schoolku_backend/internals/features/users/users/model"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrRefreshUnknown = errors.New("refresh token unknown")
	ErrRefreshExpired = errors.New("refresh token expired")
)

// IssueAccessToken signs a short-lived access JWT carrying id, name and
// the role set.
func IssueAccessToken(u *userModel.UserModel) (string, error) {
	if configs.JWTSecret == "" {
		return "", errors.New("JWT secret is not configured")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       u.UserID.String(),
		"user_name": u.UserName,
		"roles":     []string(u.UserRoles),
		"iat":       now.Unix(),
		"exp":       now.Add(AccessTokenTTL).Unix(),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(configs.JWTSecret))
}

// IssueRefreshToken signs a refresh JWT and stores its hash.
func IssueRefreshToken(db *gorm.DB, u *userModel.UserModel) (string, error) {
	if configs.JWTRefreshSecret == "" {
		return "", errors.New("JWT refresh secret is not configured")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": u.UserID.String(),
		"iat": now.Unix(),
		"exp": now.Add(RefreshTokenTTL).Unix(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(configs.JWTRefreshSecret))
	if err != nil {
		return "", err
	}

	row := authModel.RefreshTokenModel{
		RefreshTokenUserID:    u.UserID,
		RefreshTokenHash:      RefreshHash(raw),
		RefreshTokenExpiresAt: now.Add(RefreshTokenTTL),
	}
	if err := db.Create(&row).Error; err != nil {
		return "", err
	}
	return raw, nil
}

// ConsumeRefreshToken validates a refresh JWT against the stored hash
// and rotates it out. Returns the user id on success.
func ConsumeRefreshToken(db *gorm.DB, raw string) (uuid.UUID, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(configs.JWTRefreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, ErrRefreshUnknown
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrRefreshUnknown
	}

	var row authModel.RefreshTokenModel
	if err := db.Where("refresh_token_hash = ?", RefreshHash(raw)).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrRefreshUnknown
		}
		return uuid.Nil, err
	}
	if time.Now().After(row.RefreshTokenExpiresAt) {
		_ = db.Delete(&row).Error
		return uuid.Nil, ErrRefreshExpired
	}

	// Rotation: a refresh token is single use.
	if err := db.Delete(&row).Error; err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

// RevokeUserRefreshTokens drops every refresh token of a user (logout).
func RevokeUserRefreshTokens(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("refresh_token_user_id = ?", userID).
		Delete(&authModel.RefreshTokenModel{}).Error
}

// BlacklistAccessToken marks an access token revoked until it expires
// on its own.
func BlacklistAccessToken(db *gorm.DB, raw string, expiresAt time.Time) error {
	row := authModel.TokenBlacklistModel{
		TokenBlacklistToken:     raw,
		TokenBlacklistExpiresAt: expiresAt,
	}
	err := db.Create(&row).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil
	}
	return err
}

// RefreshHash is an HMAC of the raw refresh token; only the hash is
// persisted.
func RefreshHash(raw string) string {
	mac := hmac.New(sha256.New, []byte(configs.JWTRefreshSecret))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}
