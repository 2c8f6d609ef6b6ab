package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, plant *Plant) error
	FindByID(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (*Plant, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]*Plant, error)
	ListByIndoor(ctx context.Context, db *gorm.DB, indoorID snowflake.ID) ([]*Plant, error)
	CountByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error)
	CountByIndoor(ctx context.Context, db *gorm.DB, indoorID snowflake.ID) (int64, error)
	Update(ctx context.Context, db *gorm.DB, plant *Plant) error
	Delete(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) error
	// ClearIndoor detaches all plants from an indoor without deleting them.
	ClearIndoor(ctx context.Context, db *gorm.DB, indoorID snowflake.ID) error

	InsertWatering(ctx context.Context, db *gorm.DB, entry *WateringHistory) error
	ListWatering(ctx context.Context, db *gorm.DB, plantID snowflake.ID) ([]*WateringHistory, error)
	DeleteWateringByPlant(ctx context.Context, db *gorm.DB, plantID snowflake.ID) error
}
