package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/plantulas/plantbot/internal/schedule"
)

// UpcomingPlant is one dashboard row for a plant that has a schedule.
type UpcomingPlant struct {
	PlantID     snowflake.ID    `json:"plant_id"`
	Name        string          `json:"name"`
	NextWaterAt time.Time       `json:"next_water_at"`
	DueInDays   int             `json:"due_in_days"`
	Status      schedule.Status `json:"status"`
}

type Dashboard struct {
	IndoorsTotal   int             `json:"indoors_total"`
	PlantsTotal    int             `json:"plants_total"`
	NeedWaterCount int             `json:"need_water_count"`
	Upcoming       []UpcomingPlant `json:"upcoming"`
}

type Service interface {
	// Build composes the owner's dashboard. Due-ness is computed on read;
	// nothing is scheduled or pushed.
	Build(ctx context.Context) (Dashboard, error)
}
