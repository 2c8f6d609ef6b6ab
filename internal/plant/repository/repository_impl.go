package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/plantulas/plantbot/internal/plant/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, plant *domain.Plant) error {
	return db.WithContext(ctx).Create(plant).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (*domain.Plant, error) {
	var plant domain.Plant
	err := db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&plant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plant, nil
}

func (r *repo) ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]*domain.Plant, error) {
	var plants []*domain.Plant
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc, id asc").
		Find(&plants).Error
	if err != nil {
		return nil, err
	}
	return plants, nil
}

func (r *repo) ListByIndoor(ctx context.Context, db *gorm.DB, indoorID snowflake.ID) ([]*domain.Plant, error) {
	var plants []*domain.Plant
	err := db.WithContext(ctx).
		Where("indoor_id = ?", indoorID).
		Order("created_at asc, id asc").
		Find(&plants).Error
	if err != nil {
		return nil, err
	}
	return plants, nil
}

func (r *repo) CountByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Plant{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *repo) CountByIndoor(ctx context.Context, db *gorm.DB, indoorID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.Plant{}).
		Where("indoor_id = ?", indoorID).
		Count(&count).Error
	return count, err
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, plant *domain.Plant) error {
	return db.WithContext(ctx).Save(plant).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) error {
	return db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		Delete(&domain.Plant{}).Error
}

func (r *repo) ClearIndoor(ctx context.Context, db *gorm.DB, indoorID snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.Plant{}).
		Where("indoor_id = ?", indoorID).
		Update("indoor_id", nil).Error
}

func (r *repo) InsertWatering(ctx context.Context, db *gorm.DB, entry *domain.WateringHistory) error {
	return db.WithContext(ctx).Create(entry).Error
}

func (r *repo) ListWatering(ctx context.Context, db *gorm.DB, plantID snowflake.ID) ([]*domain.WateringHistory, error) {
	var entries []*domain.WateringHistory
	err := db.WithContext(ctx).
		Where("plant_id = ?", plantID).
		Order("event_ts desc, id desc").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *repo) DeleteWateringByPlant(ctx context.Context, db *gorm.DB, plantID snowflake.ID) error {
	return db.WithContext(ctx).
		Where("plant_id = ?", plantID).
		Delete(&domain.WateringHistory{}).Error
}
