package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, indoor *Indoor) error
	FindByID(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) (*Indoor, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) ([]*Indoor, error)
	CountByUser(ctx context.Context, db *gorm.DB, userID snowflake.ID) (int64, error)
	Update(ctx context.Context, db *gorm.DB, indoor *Indoor) error
	Delete(ctx context.Context, db *gorm.DB, userID, id snowflake.ID) error

	InsertHistory(ctx context.Context, db *gorm.DB, entry *IndoorHistory) error
	// ListHistory returns entries newest first; ties on event_ts fall back
	// to insertion order.
	ListHistory(ctx context.Context, db *gorm.DB, indoorID snowflake.ID) ([]*IndoorHistory, error)
	DeleteHistoryByIndoor(ctx context.Context, db *gorm.DB, indoorID snowflake.ID) error
}
