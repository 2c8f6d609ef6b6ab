package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// User is a grower account, keyed by the Telegram user id supplied on every
// request. Accounts are created lazily on first contact.
type User struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	TelegramUserID int64        `gorm:"column:telegram_user_id;not null;uniqueIndex" json:"telegram_user_id"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
