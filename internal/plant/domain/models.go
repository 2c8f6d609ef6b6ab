package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Plant is owned by one user and optionally lives in one indoor. Its
// next_water_at is derived from last_watered_at and the interval; clients
// never set it directly.
type Plant struct {
	ID       snowflake.ID  `gorm:"primaryKey" json:"id"`
	UserID   snowflake.ID  `gorm:"not null;index" json:"user_id"`
	IndoorID *snowflake.ID `gorm:"index" json:"indoor_id,omitempty"`

	Name      string     `gorm:"not null" json:"name"`
	Species   *string    `json:"species,omitempty"`
	PlantedAt *time.Time `json:"planted_at,omitempty"`
	Notes     *string    `json:"notes,omitempty"`

	WateringIntervalDays int        `gorm:"not null;default:7" json:"watering_interval_days"`
	DefaultLiters        float64    `gorm:"not null;default:1.0" json:"default_liters"`
	LastWateredAt        *time.Time `json:"last_watered_at,omitempty"`
	NextWaterAt          *time.Time `json:"next_water_at,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Plant) TableName() string {
	return "plants"
}

// WateringHistory is an append-only record of one watering event.
type WateringHistory struct {
	ID      snowflake.ID      `gorm:"primaryKey" json:"id"`
	PlantID snowflake.ID      `gorm:"not null;index" json:"plant_id"`
	EventTS time.Time         `gorm:"column:event_ts;not null;index" json:"event_ts"`
	Liters  float64           `gorm:"not null" json:"liters"`
	Note    *string           `json:"note,omitempty"`
	Ferts   datatypes.JSONMap `json:"ferts,omitempty"`
}

func (WateringHistory) TableName() string {
	return "watering_history"
}

type CreatePlantRequest struct {
	Name                 string
	Species              *string
	IndoorID             *string
	PlantedAt            *time.Time
	WateringIntervalDays int
	DefaultLiters        float64
	Notes                *string
}

// FertilizerInput is one entry of the ordered fertilizer list supplied with
// a watering event.
type FertilizerInput struct {
	Name   string
	Amount string
}

type RegisterWateringRequest struct {
	PlantID   string
	Liters    float64
	EventDate *time.Time
	Note      *string
	Ferts     []FertilizerInput
}

// WateringResult carries the updated plant together with the history row
// created for the event.
type WateringResult struct {
	Plant   Plant           `json:"plant"`
	History WateringHistory `json:"watering_history"`
}
