package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/plantulas/plantbot/internal/indoor/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, indoor *domain.Indoor) error {
	return db.WithContext(ctx).Create(indoor).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (*domain.Indoor, error) {
	var indoor domain.Indoor
	err := db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&indoor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &indoor, nil
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]*domain.Indoor, error) {
	var indoors []*domain.Indoor
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc, id asc").
		Find(&indoors).Error
	if err != nil {
		return nil, err
	}
	return indoors, nil
}

func (r *repo) CountByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Indoor{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, indoor *domain.Indoor) error {
	return db.WithContext(ctx).Save(indoor).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&domain.Indoor{}).Error
}

func (r *repo) InsertHistory(ctx context.Context, db *gorm.DB, entry *domain.IndoorHistory) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) ListHistory(ctx context.Context, db *gorm.DB, indoorID snowflake.ID) ([]*domain.IndoorHistory, error) {
	var entries []*domain.IndoorHistory
	err := db.WithContext(ctx).
		Where("indoor_id = ?", indoorID).
		Order("event_ts desc, id desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) DeleteHistoryByIndoor(ctx context.Context, db *gorm.DB, indoorID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("indoor_id = ?", indoorID).
		Delete(&domain.IndoorHistory{}).Error
}
