package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/plantulas/plantbot/internal/clock"
	indoordomain "github.com/plantulas/plantbot/internal/indoor/domain"
	indoorrepository "github.com/plantulas/plantbot/internal/indoor/repository"
	plantdomain "github.com/plantulas/plantbot/internal/plant/domain"
	plantrepository "github.com/plantulas/plantbot/internal/plant/repository"
	"github.com/plantulas/plantbot/internal/usercontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	node  *snowflake.Node
	clock *clock.FakeClock
	svc   plantdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:plant_svc_test?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&indoordomain.Indoor{},
		&plantdomain.Plant{},
		&plantdomain.WateringHistory{},
	))
	t.Cleanup(func() {
		db.Exec("DELETE FROM watering_history")
		db.Exec("DELETE FROM plants")
		db.Exec("DELETE FROM indoors")
	})

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(time.Date(2024, 6, 1, 14, 30, 0, 0, time.UTC))

	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      fake,
		Repo:       plantrepository.Provide(),
		IndoorRepo: indoorrepository.Provide(),
	})

	return &fixture{db: db, node: node, clock: fake, svc: svc}
}

func (f *fixture) ownerCtx() (context.Context, snowflake.ID) {
	userID := f.node.Generate()
	return usercontext.WithUserID(context.Background(), userID), userID
}

func (f *fixture) createIndoor(t *testing.T, userID snowflake.ID) indoordomain.Indoor {
	t.Helper()
	indoor := indoordomain.Indoor{
		ID:     f.node.Generate(),
		UserID: userID,
		Name:   "Tent",
	}
	require.NoError(t, f.db.Create(&indoor).Error)
	return indoor
}

func strPtr(v string) *string { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func TestCreatePlant_Defaults(t *testing.T) {
	f := newFixture(t)
	ctx, userID := f.ownerCtx()

	plant, err := f.svc.Create(ctx, plantdomain.CreatePlantRequest{Name: "Monstera"})
	require.NoError(t, err)

	assert.Equal(t, userID, plant.UserID)
	assert.Equal(t, 7, plant.WateringIntervalDays)
	assert.Equal(t, 1.0, plant.DefaultLiters)
	// No schedule until the first watering.
	assert.Nil(t, plant.LastWateredAt)
	assert.Nil(t, plant.NextWaterAt)
}

func TestCreatePlant_Validation(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.ownerCtx()

	_, err := f.svc.Create(ctx, plantdomain.CreatePlantRequest{Name: " "})
	assert.ErrorIs(t, err, plantdomain.ErrInvalidName)

	_, err = f.svc.Create(ctx, plantdomain.CreatePlantRequest{
		Name:                 "Monstera",
		WateringIntervalDays: -1,
	})
	assert.ErrorIs(t, err, plantdomain.ErrInvalidInterval)

	_, err = f.svc.Create(ctx, plantdomain.CreatePlantRequest{
		Name:          "Monstera",
		DefaultLiters: -0.5,
	})
	assert.ErrorIs(t, err, plantdomain.ErrInvalidLiters)
}

func TestCreatePlant_IndoorOwnership(t *testing.T) {
	f := newFixture(t)
	ownerCtx, ownerID := f.ownerCtx()
	strangerCtx, _ := f.ownerCtx()

	indoor := f.createIndoor(t, ownerID)
	indoorID := indoor.ID.String()

	plant, err := f.svc.Create(ownerCtx, plantdomain.CreatePlantRequest{
		Name:     "Monstera",
		IndoorID: &indoorID,
	})
	require.NoError(t, err)
	require.NotNil(t, plant.IndoorID)
	assert.Equal(t, indoor.ID, *plant.IndoorID)

	// Another grower cannot place a plant in an indoor they do not own.
	_, err = f.svc.Create(strangerCtx, plantdomain.CreatePlantRequest{
		Name:     "Ficus",
		IndoorID: &indoorID,
	})
	assert.ErrorIs(t, err, indoordomain.ErrNotFound)
}

func TestRegisterWatering_AdvancesSchedule(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.ownerCtx()

	plant, err := f.svc.Create(ctx, plantdomain.CreatePlantRequest{
		Name:                 "Monstera",
		WateringIntervalDays: 7,
	})
	require.NoError(t, err)

	result, err := f.svc.RegisterWatering(ctx, plantdomain.RegisterWateringRequest{
		PlantID: plant.ID.String(),
		Liters:  1.5,
		Note:    strPtr("first watering"),
	})
	require.NoError(t, err)

	// Fake clock: 2024-06-01 14:30 UTC.
	wantLast := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	wantNext := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	require.NotNil(t, result.Plant.LastWateredAt)
	require.NotNil(t, result.Plant.NextWaterAt)
	assert.Equal(t, wantLast, result.Plant.LastWateredAt.UTC())
	assert.Equal(t, wantNext, result.Plant.NextWaterAt.UTC())

	// The event timestamp keeps the recording time of day.
	assert.Equal(t, 14, result.History.EventTS.UTC().Hour())
	assert.Equal(t, 30, result.History.EventTS.UTC().Minute())
	assert.Equal(t, 1.5, result.History.Liters)
}

func TestRegisterWatering_Backfill(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.ownerCtx()

	plant, err := f.svc.Create(ctx, plantdomain.CreatePlantRequest{
		Name:                 "Ficus",
		WateringIntervalDays: 5,
	})
	require.NoError(t, err)

	// Watering registered three days late still anchors on the event date.
	eventDate := time.Date(2024, 5, 29, 0, 0, 0, 0, time.UTC)
	result, err := f.svc.RegisterWatering(ctx, plantdomain.RegisterWateringRequest{
		PlantID:   plant.ID.String(),
		Liters:    1.0,
		EventDate: timePtr(eventDate),
	})
	require.NoError(t, err)

	assert.Equal(t, eventDate, result.Plant.LastWateredAt.UTC())
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), result.Plant.NextWaterAt.UTC())
}

func TestRegisterWatering_FertsLastWins(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.ownerCtx()

	plant, err := f.svc.Create(ctx, plantdomain.CreatePlantRequest{Name: "Basil"})
	require.NoError(t, err)

	result, err := f.svc.RegisterWatering(ctx, plantdomain.RegisterWateringRequest{
		PlantID: plant.ID.String(),
		Liters:  0.5,
		Ferts: []plantdomain.FertilizerInput{
			{Name: "NPK", Amount: "2ml/l"},
			{Name: "CalMag", Amount: "1ml/l"},
			{Name: "NPK", Amount: "5ml/l"},
		},
	})
	require.NoError(t, err)

	require.Len(t, result.History.Ferts, 2)
	assert.Equal(t, "5ml/l", result.History.Ferts["NPK"])
	assert.Equal(t, "1ml/l", result.History.Ferts["CalMag"])
}

func TestRegisterWatering_Validation(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.ownerCtx()

	plant, err := f.svc.Create(ctx, plantdomain.CreatePlantRequest{Name: "Monstera"})
	require.NoError(t, err)

	_, err = f.svc.RegisterWatering(ctx, plantdomain.RegisterWateringRequest{
		PlantID: plant.ID.String(),
		Liters:  0,
	})
	assert.ErrorIs(t, err, plantdomain.ErrInvalidLiters)

	_, err = f.svc.RegisterWatering(ctx, plantdomain.RegisterWateringRequest{
		PlantID: f.node.Generate().String(),
		Liters:  1.0,
	})
	assert.ErrorIs(t, err, plantdomain.ErrNotFound)
}

func TestRegisterWatering_OwnershipIsInvisible(t *testing.T) {
	f := newFixture(t)
	ownerCtx, _ := f.ownerCtx()
	strangerCtx, _ := f.ownerCtx()

	plant, err := f.svc.Create(ownerCtx, plantdomain.CreatePlantRequest{Name: "Monstera"})
	require.NoError(t, err)

	_, err = f.svc.RegisterWatering(strangerCtx, plantdomain.RegisterWateringRequest{
		PlantID: plant.ID.String(),
		Liters:  1.0,
	})
	assert.ErrorIs(t, err, plantdomain.ErrNotFound)
}

func TestGetPlant_HistoryNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.ownerCtx()

	plant, err := f.svc.Create(ctx, plantdomain.CreatePlantRequest{Name: "Monstera"})
	require.NoError(t, err)

	for _, day := range []time.Time{
		time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	} {
		_, err := f.svc.RegisterWatering(ctx, plantdomain.RegisterWateringRequest{
			PlantID:   plant.ID.String(),
			Liters:    1.0,
			EventDate: timePtr(day),
		})
		require.NoError(t, err)
	}

	_, history, err := f.svc.Get(ctx, plant.ID.String())
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 1, history[0].EventTS.UTC().Day())
	assert.Equal(t, 27, history[1].EventTS.UTC().Day())
	assert.Equal(t, 20, history[2].EventTS.UTC().Day())
}

func TestDeletePlant_RemovesHistory(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.ownerCtx()

	plant, err := f.svc.Create(ctx, plantdomain.CreatePlantRequest{Name: "Monstera"})
	require.NoError(t, err)

	_, err = f.svc.RegisterWatering(ctx, plantdomain.RegisterWateringRequest{
		PlantID: plant.ID.String(),
		Liters:  1.0,
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, plant.ID.String()))

	_, _, err = f.svc.Get(ctx, plant.ID.String())
	assert.ErrorIs(t, err, plantdomain.ErrNotFound)

	var count int64
	require.NoError(t, f.db.Model(&plantdomain.WateringHistory{}).
		Where("plant_id = ?", plant.ID).Count(&count).Error)
	assert.Zero(t, count)
}
