package service

import (
	"context"
	"sort"

	"github.com/plantulas/plantbot/internal/clock"
	"github.com/plantulas/plantbot/internal/dashboard/domain"
	indoordomain "github.com/plantulas/plantbot/internal/indoor/domain"
	plantdomain "github.com/plantulas/plantbot/internal/plant/domain"
	"github.com/plantulas/plantbot/internal/schedule"
	"github.com/plantulas/plantbot/internal/usercontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Clock      clock.Clock
	PlantRepo  plantdomain.Repository
	IndoorRepo indoordomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	plantRepo  plantdomain.Repository
	indoorRepo indoordomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("dashboard.service"),
		clock:      p.Clock,
		plantRepo:  p.PlantRepo,
		indoorRepo: p.IndoorRepo,
	}
}

func (s *Service) Build(ctx context.Context) (domain.Dashboard, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.Dashboard{}, plantdomain.ErrInvalidOwner
	}

	indoorsTotal, err := s.indoorRepo.CountByUser(ctx, s.db, userID)
	if err != nil {
		return domain.Dashboard{}, err
	}

	plants, err := s.plantRepo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return domain.Dashboard{}, err
	}

	today := schedule.Date(s.clock.Now())

	needWater := 0
	upcoming := make([]domain.UpcomingPlant, 0, len(plants))
	for _, plant := range plants {
		if schedule.NeedsWater(plant.NextWaterAt, today) {
			needWater++
		}

		// Plants that were never watered have no schedule and never
		// appear in the upcoming list.
		if plant.NextWaterAt == nil {
			continue
		}

		status, dueInDays := schedule.Classify(*plant.NextWaterAt, today)
		upcoming = append(upcoming, domain.UpcomingPlant{
			PlantID:     plant.ID,
			Name:        plant.Name,
			NextWaterAt: *plant.NextWaterAt,
			DueInDays:   dueInDays,
			Status:      status,
		})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].NextWaterAt.Before(upcoming[j].NextWaterAt)
	})

	return domain.Dashboard{
		IndoorsTotal:   int(indoorsTotal),
		PlantsTotal:    len(plants),
		NeedWaterCount: needWater,
		Upcoming:       upcoming,
	}, nil
}
