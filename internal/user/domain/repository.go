package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, user *User) error
	FindByTelegramID(ctx context.Context, db *gorm.DB, telegramUserID int64) (*User, error)
}
