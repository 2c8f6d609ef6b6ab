package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Indoor is a growing environment owned by exactly one user.
type Indoor struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID snowflake.ID `gorm:"not null;index" json:"user_id"`
	Name   string       `gorm:"not null" json:"name"`

	TempC    *float64 `gorm:"column:temp_c" json:"temp_c,omitempty"`
	Humidity *float64 `json:"humidity,omitempty"`

	FanLocation     *string `json:"fan_location,omitempty"`
	ExtractorTop    bool    `gorm:"not null;default:false" json:"extractor_top"`
	ExtractorBottom bool    `gorm:"not null;default:false" json:"extractor_bottom"`
	Fan             bool    `gorm:"not null;default:false" json:"fan"`

	LightHeightCm *float64 `gorm:"column:light_height_cm" json:"light_height_cm,omitempty"`
	LightPowerPct *int     `gorm:"column:light_power_pct" json:"light_power_pct,omitempty"`
	LightSchedule *string  `json:"light_schedule,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Indoor) TableName() string {
	return "indoors"
}

// IndoorHistory is an append-only event log entry for an indoor. Rows are
// never updated or deleted except when the indoor itself is removed.
type IndoorHistory struct {
	ID       snowflake.ID      `gorm:"primaryKey" json:"id"`
	IndoorID snowflake.ID      `gorm:"not null;index" json:"indoor_id"`
	EventTS  time.Time         `gorm:"column:event_ts;not null;index" json:"event_ts"`
	Message  string            `gorm:"not null" json:"message"`
	Payload  datatypes.JSONMap `json:"payload,omitempty"`
}

func (IndoorHistory) TableName() string {
	return "indoor_history"
}

type CreateIndoorRequest struct {
	Name            string
	TempC           *float64
	Humidity        *float64
	FanLocation     *string
	ExtractorTop    bool
	ExtractorBottom bool
	Fan             bool
	LightHeightCm   *float64
	LightPowerPct   *int
	LightSchedule   *string
}

// UpdateIndoorRequest is a sparse patch: nil fields are left untouched.
type UpdateIndoorRequest struct {
	ID string

	TempC           *float64
	Humidity        *float64
	FanLocation     *string
	ExtractorTop    *bool
	ExtractorBottom *bool
	Fan             *bool
	LightHeightCm   *float64
	LightPowerPct   *int
	LightSchedule   *string
}

type IndoorListItem struct {
	ID          snowflake.ID `json:"id"`
	Name        string       `json:"name"`
	PlantsCount int          `json:"plants_count"`
}

type PlantInIndoor struct {
	ID                   snowflake.ID `json:"id"`
	Name                 string       `json:"name"`
	Species              *string      `json:"species,omitempty"`
	LastWateredAt        *time.Time   `json:"last_watered_at,omitempty"`
	NextWaterAt          *time.Time   `json:"next_water_at,omitempty"`
	WateringIntervalDays int          `json:"watering_interval_days"`
	DaysSincePlanted     *int         `json:"days_since_planted,omitempty"`
}

type IndoorDetail struct {
	Indoor  Indoor          `json:"indoor"`
	Plants  []PlantInIndoor `json:"plants"`
	History []IndoorHistory `json:"history"`
}
