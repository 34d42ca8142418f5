package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RefreshTokenModel stores a hash of the refresh token, never the raw
// value.
type RefreshTokenModel struct {
	RefreshTokenID        uuid.UUID `gorm:"column:refresh_token_id;type:uuid;primaryKey" json:"refresh_token_id"`
	RefreshTokenUserID    uuid.UUID `gorm:"column:refresh_token_user_id;type:uuid;not null;index:idx_refresh_tokens_user" json:"refresh_token_user_id"`
	RefreshTokenHash      string    `gorm:"column:refresh_token_hash;size:128;not null;uniqueIndex:uq_refresh_tokens_hash" json:"-"`
	RefreshTokenExpiresAt time.Time `gorm:"column:refresh_token_expires_at;type:timestamptz;not null" json:"refresh_token_expires_at"`
	RefreshTokenCreatedAt time.Time `gorm:"column:refresh_token_created_at;type:timestamptz;not null;autoCreateTime" json:"refresh_token_created_at"`
}

func (RefreshTokenModel) TableName() string { return "refresh_tokens" }

func (m *RefreshTokenModel) BeforeCreate(tx *gorm.DB) error {
	if m.RefreshTokenID == uuid.Nil {
		m.RefreshTokenID = uuid.New()
	}
	return nil
}
