package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/plantulas/plantbot/internal/clock"
	"github.com/plantulas/plantbot/internal/indoor/domain"
	plantdomain "github.com/plantulas/plantbot/internal/plant/domain"
	"github.com/plantulas/plantbot/internal/schedule"
	"github.com/plantulas/plantbot/internal/usercontext"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Repo      domain.Repository
	PlantRepo plantdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	plantRepo plantdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("indoor.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		repo:      p.Repo,
		plantRepo: p.PlantRepo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateIndoorRequest) (domain.Indoor, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.Indoor{}, domain.ErrInvalidOwner
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Indoor{}, domain.ErrInvalidName
	}
	if err := validateLightPower(req.LightPowerPct); err != nil {
		return domain.Indoor{}, err
	}

	now := s.clock.Now()
	indoor := domain.Indoor{
		ID:              s.genID.Generate(),
		UserID:          userID,
		Name:            name,
		TempC:           req.TempC,
		Humidity:        req.Humidity,
		FanLocation:     req.FanLocation,
		ExtractorTop:    req.ExtractorTop,
		ExtractorBottom: req.ExtractorBottom,
		Fan:             req.Fan,
		LightHeightCm:   req.LightHeightCm,
		LightPowerPct:   req.LightPowerPct,
		LightSchedule:   req.LightSchedule,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Insert(ctx, s.db, &indoor); err != nil {
		return domain.Indoor{}, err
	}

	return indoor, nil
}

func (s *Service) List(ctx context.Context) ([]domain.IndoorListItem, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return nil, domain.ErrInvalidOwner
	}

	indoors, err := s.repo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.IndoorListItem, 0, len(indoors))
	for _, indoor := range indoors {
		count, err := s.plantRepo.CountByIndoor(ctx, s.db, indoor.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.IndoorListItem{
			ID:          indoor.ID,
			Name:        indoor.Name,
			PlantsCount: int(count),
		})
	}

	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (domain.IndoorDetail, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.IndoorDetail{}, domain.ErrInvalidOwner
	}

	indoorID, err := parseID(id)
	if err != nil {
		return domain.IndoorDetail{}, err
	}

	indoor, err := s.repo.FindByID(ctx, s.db, userID, indoorID)
	if err != nil {
		return domain.IndoorDetail{}, err
	}
	if indoor == nil {
		return domain.IndoorDetail{}, domain.ErrNotFound
	}

	plants, err := s.plantRepo.ListByIndoor(ctx, s.db, indoorID)
	if err != nil {
		return domain.IndoorDetail{}, err
	}

	history, err := s.repo.ListHistory(ctx, s.db, indoorID)
	if err != nil {
		return domain.IndoorDetail{}, err
	}

	today := schedule.Date(s.clock.Now())
	plantItems := make([]domain.PlantInIndoor, 0, len(plants))
	for _, plant := range plants {
		item := domain.PlantInIndoor{
			ID:                   plant.ID,
			Name:                 plant.Name,
			Species:              plant.Species,
			LastWateredAt:        plant.LastWateredAt,
			NextWaterAt:          plant.NextWaterAt,
			WateringIntervalDays: plant.WateringIntervalDays,
		}
		if plant.PlantedAt != nil {
			days := schedule.DaysUntil(today, *plant.PlantedAt)
			item.DaysSincePlanted = &days
		}
		plantItems = append(plantItems, item)
	}

	entries := make([]domain.IndoorHistory, 0, len(history))
	for _, entry := range history {
		entries = append(entries, *entry)
	}

	return domain.IndoorDetail{
		Indoor:  *indoor,
		Plants:  plantItems,
		History: entries,
	}, nil
}

func (s *Service) Update(ctx context.Context, req domain.UpdateIndoorRequest) (domain.Indoor, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.Indoor{}, domain.ErrInvalidOwner
	}

	indoorID, err := parseID(req.ID)
	if err != nil {
		return domain.Indoor{}, err
	}
	if err := validateLightPower(req.LightPowerPct); err != nil {
		return domain.Indoor{}, err
	}

	var updated domain.Indoor
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		indoor, err := s.repo.FindByID(ctx, tx, userID, indoorID)
		if err != nil {
			return err
		}
		if indoor == nil {
			return domain.ErrNotFound
		}

		// The change comparison uses the value held before any field of
		// this patch is applied.
		oldPower := indoor.LightPowerPct

		applyPatch(indoor, req)
		indoor.UpdatedAt = s.clock.Now()

		if err := s.repo.Update(ctx, tx, indoor); err != nil {
			return err
		}

		if msg, changed := lightPowerMessage(oldPower, req.LightPowerPct); changed {
			entry := domain.IndoorHistory{
				ID:       s.genID.Generate(),
				IndoorID: indoor.ID,
				EventTS:  s.clock.Now(),
				Message:  msg,
			}
			if err := s.repo.InsertHistory(ctx, tx, &entry); err != nil {
				return err
			}
		}

		updated = *indoor
		return nil
	})
	if err != nil {
		return domain.Indoor{}, err
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok || userID == 0 {
		return domain.ErrInvalidOwner
	}

	indoorID, err := parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		indoor, err := s.repo.FindByID(ctx, tx, userID, indoorID)
		if err != nil {
			return err
		}
		if indoor == nil {
			return domain.ErrNotFound
		}

		// Plants survive their indoor; they just lose the association.
		if err := s.plantRepo.ClearIndoor(ctx, tx, indoorID); err != nil {
			return err
		}
		if err := s.repo.DeleteHistoryByIndoor(ctx, tx, indoorID); err != nil {
			return err
		}
		return s.repo.Delete(ctx, tx, userID, indoorID)
	})
}

func applyPatch(indoor *domain.Indoor, req domain.UpdateIndoorRequest) {
	if req.TempC != nil {
		indoor.TempC = req.TempC
	}
	if req.Humidity != nil {
		indoor.Humidity = req.Humidity
	}
	if req.FanLocation != nil {
		indoor.FanLocation = req.FanLocation
	}
	if req.ExtractorTop != nil {
		indoor.ExtractorTop = *req.ExtractorTop
	}
	if req.ExtractorBottom != nil {
		indoor.ExtractorBottom = *req.ExtractorBottom
	}
	if req.Fan != nil {
		indoor.Fan = *req.Fan
	}
	if req.LightHeightCm != nil {
		indoor.LightHeightCm = req.LightHeightCm
	}
	if req.LightPowerPct != nil {
		indoor.LightPowerPct = req.LightPowerPct
	}
	if req.LightSchedule != nil {
		indoor.LightSchedule = req.LightSchedule
	}
}

// lightPowerMessage reports whether the patch changed light_power_pct and,
// if so, the history message. An increase gets its own wording; everything
// else, including a previously unset power, is an adjustment.
func lightPowerMessage(old, new *int) (string, bool) {
	if new == nil {
		return "", false
	}
	if old != nil && *old == *new {
		return "", false
	}
	if old != nil && *new > *old {
		return fmt.Sprintf("Light power increased to %d%%.", *new), true
	}
	return fmt.Sprintf("Light power adjusted to %d%%.", *new), true
}

func validateLightPower(pct *int) error {
	if pct == nil {
		return nil
	}
	if *pct < 0 || *pct > 100 {
		return domain.ErrInvalidLightPower
	}
	return nil
}

func parseID(raw string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
