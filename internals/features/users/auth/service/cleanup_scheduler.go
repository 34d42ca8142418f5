package service

import (
	"log"
	"time"

	"gorm.io/gorm"

	authModel "schoolku_backend/internals/features/users/auth/model"
)

// StartTokenCleanupScheduler sweeps expired blacklist and refresh rows
// hourly so the tables stay small.
func StartTokenCleanupScheduler(db *gorm.DB) {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			now := time.Now()
			if err := db.Where("token_blacklist_expires_at < ?", now).
				Delete(&authModel.TokenBlacklistModel{}).Error; err != nil {
				log.Printf("[WARN] blacklist cleanup: %v", err)
			}
			if err := db.Where("refresh_token_expires_at < ?", now).
				Delete(&authModel.RefreshTokenModel{}).Error; err != nil {
				log.Printf("[WARN] refresh token cleanup: %v", err)
			}
		}
	}()
}
