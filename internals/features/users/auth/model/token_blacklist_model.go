package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TokenBlacklistModel holds access tokens revoked by logout; checked by
// the auth middleware on every request. Expired rows are swept by the
// cleanup scheduler.
type TokenBlacklistModel struct {
	TokenBlacklistID        uuid.UUID `gorm:"column:token_blacklist_id;type:uuid;primaryKey" json:"token_blacklist_id"`
	TokenBlacklistToken     string    `gorm:"column:token_blacklist_token;type:text;not null;uniqueIndex:uq_token_blacklist_token" json:"-"`
	TokenBlacklistExpiresAt time.Time `gorm:"column:token_blacklist_expires_at;type:timestamptz;not null;index:idx_token_blacklist_expires" json:"token_blacklist_expires_at"`
	TokenBlacklistCreatedAt time.Time `gorm:"column:token_blacklist_created_at;type:timestamptz;not null;autoCreateTime" json:"token_blacklist_created_at"`
}

func (TokenBlacklistModel) TableName() string { return "token_blacklist" }

func (m *TokenBlacklistModel) BeforeCreate(tx *gorm.DB) error {
	if m.TokenBlacklistID == uuid.Nil {
		m.TokenBlacklistID = uuid.New()
	}
	return nil
}
