package repository

import (
	"context"
	"errors"

	"github.com/plantulas/plantbot/internal/user/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, user *domain.User) error {
	return db.WithContext(ctx).Create(user).Error
}

func (r *repo) FindByTelegramID(ctx context.Context, db *gorm.DB, telegramUserID int64) (*domain.User, error) {
	var user domain.User
	err := db.WithContext(ctx).
		Where("telegram_user_id = ?", telegramUserID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
