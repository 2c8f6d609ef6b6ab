package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/plantulas/plantbot/internal/clock"
	indoordomain "github.com/plantulas/plantbot/internal/indoor/domain"
	"github.com/plantulas/plantbot/internal/plant/domain"
	"github.com/plantulas/plantbot/internal/schedule"
	"github.com/plantulas/plantbot/internal/usercontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	IndoorRepo indoordomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	indoorRepo indoordomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("plant.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		indoorRepo: p.IndoorRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePlantRequest) (domain.Plant, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.Plant{}, domain.ErrInvalidOwner
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Plant{}, domain.ErrInvalidName
	}

	interval := req.WateringIntervalDays
	if interval == 0 {
		interval = 7
	}
	if interval < 1 {
		return domain.Plant{}, domain.ErrInvalidInterval
	}

	liters := req.DefaultLiters
	if liters == 0 {
		liters = 1.0
	}
	if liters <= 0 {
		return domain.Plant{}, domain.ErrInvalidLiters
	}

	var indoorID *snowflake.ID
	if req.IndoorID != nil && strings.TrimSpace(*req.IndoorID) != "" {
		parsed, err := snowflake.ParseString(strings.TrimSpace(*req.IndoorID))
		if err != nil {
			return domain.Plant{}, indoordomain.ErrInvalidID
		}
		indoor, err := s.indoorRepo.FindByID(ctx, s.db, userID, parsed)
		if err != nil {
			return domain.Plant{}, err
		}
		if indoor == nil {
			return domain.Plant{}, indoordomain.ErrNotFound
		}
		indoorID = &parsed
	}

	var plantedAt *time.Time
	if req.PlantedAt != nil {
		d := schedule.Date(*req.PlantedAt)
		plantedAt = &d
	}

	now := s.clock.Now()
	plant := domain.Plant{
		ID:                   s.genID.Generate(),
		UserID:               userID,
		IndoorID:             indoorID,
		Name:                 name,
		Species:              req.Species,
		PlantedAt:            plantedAt,
		Notes:                req.Notes,
		WateringIntervalDays: interval,
		DefaultLiters:        liters,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Insert(ctx, s.db, &plant); err != nil {
		return domain.Plant{}, err
	}

	return plant, nil
}

func (s *Service) List(ctx context.Context) ([]domain.Plant, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrInvalidOwner
	}

	plants, err := s.repo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Plant, 0, len(plants))
	for _, plant := range plants {
		out = append(out, *plant)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.Plant, []domain.WateringHistory, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.Plant{}, nil, domain.ErrInvalidOwner
	}

	plantID, err := parseID(id)
	if err != nil {
		return domain.Plant{}, nil, err
	}

	plant, err := s.repo.FindByID(ctx, s.db, userID, plantID)
	if err != nil {
		return domain.Plant{}, nil, err
	}
	if plant == nil {
		return domain.Plant{}, nil, domain.ErrNotFound
	}

	history, err := s.repo.ListWatering(ctx, s.db, plantID)
	if err != nil {
		return domain.Plant{}, nil, err
	}

	entries := make([]domain.WateringHistory, 0, len(history))
	for _, entry := range history {
		entries = append(entries, *entry)
	}

	return *plant, entries, nil
}

// RegisterWatering appends one watering event and advances the plant's
// schedule. The event date may be backfilled or lie in the future; the
// schedule always follows the most recently registered event.
func (s *Service) RegisterWatering(ctx context.Context, req domain.RegisterWateringRequest) (domain.WateringResult, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.WateringResult{}, domain.ErrInvalidOwner
	}

	plantID, err := parseID(req.PlantID)
	if err != nil {
		return domain.WateringResult{}, err
	}

	if req.Liters <= 0 {
		return domain.WateringResult{}, domain.ErrInvalidLiters
	}

	now := s.clock.Now()
	eventDate := schedule.Date(now)
	if req.EventDate != nil {
		eventDate = schedule.Date(*req.EventDate)
	}
	// Stamped at the moment of recording, not at midnight of the event date.
	eventTS := time.Date(
		eventDate.Year(), eventDate.Month(), eventDate.Day(),
		now.Hour(), now.Minute(), now.Second(), now.Nanosecond(),
		time.UTC,
	)

	var result domain.WateringResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plant, err := s.repo.FindByID(ctx, tx, userID, plantID)
		if err != nil {
			return err
		}
		if plant == nil {
			return domain.ErrNotFound
		}

		entry := domain.WateringHistory{
			ID:      s.genID.Generate(),
			PlantID: plant.ID,
			EventTS: eventTS,
			Liters:  req.Liters,
			Note:    req.Note,
			Ferts:   fertsToMap(req.Ferts),
		}
		if err := s.repo.InsertWatering(ctx, tx, &entry); err != nil {
			return err
		}

		plant.LastWateredAt = &eventDate
		plant.NextWaterAt = schedule.NextWaterAt(&eventDate, plant.WateringIntervalDays)
		plant.UpdatedAt = now
		if err := s.repo.Update(ctx, tx, plant); err != nil {
			return err
		}

		result = domain.WateringResult{Plant: *plant, History: entry}
		return nil
	})
	if err != nil {
		return domain.WateringResult{}, err
	}

	return result, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.ErrInvalidOwner
	}

	plantID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plant, err := s.repo.FindByID(ctx, tx, userID, plantID)
		if err != nil {
			return err
		}
		if plant == nil {
			return domain.ErrNotFound
		}

		if err := s.repo.DeleteWateringByPlant(ctx, tx, plantID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, userID, plantID)
	})
}

// fertsToMap flattens the ordered fertilizer list into the stored mapping.
// Duplicate names keep the last entry.
func fertsToMap(ferts []domain.FertilizerInput) datatypes.JSONMap {
	if len(ferts) == 0 {
		return nil
	}
	m := datatypes.JSONMap{}
	for _, fert := range ferts {
		m[fert.Name] = fert.Amount
	}
	return m
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
