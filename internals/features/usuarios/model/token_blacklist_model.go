package model

import (
	"time"

	"github.com/google/uuid"
)

// Tokens de acceso revocados en logout. Un reaper los limpia al expirar.
type TokenBlacklistModel struct {
	TokenBlacklistID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:token_blacklist_id" json:"token_blacklist_id"`
	TokenBlacklistToken    string    `gorm:"type:text;not null;uniqueIndex;column:token_blacklist_token" json:"-"`
	TokenBlacklistExpiraEn time.Time `gorm:"type:timestamptz;not null;index;column:token_blacklist_expira_en" json:"token_blacklist_expira_en"`

	TokenBlacklistCreatedAt time.Time `gorm:"type:timestamptz;not null;default:now();column:token_blacklist_created_at" json:"token_blacklist_created_at"`
}

func (TokenBlacklistModel) TableName() string { return "token_blacklist" }
