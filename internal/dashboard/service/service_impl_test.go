package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/plantulas/plantbot/internal/clock"
	dashboarddomain "github.com/plantulas/plantbot/internal/dashboard/domain"
	indoordomain "github.com/plantulas/plantbot/internal/indoor/domain"
	indoorrepository "github.com/plantulas/plantbot/internal/indoor/repository"
	plantdomain "github.com/plantulas/plantbot/internal/plant/domain"
	plantrepository "github.com/plantulas/plantbot/internal/plant/repository"
	"github.com/plantulas/plantbot/internal/schedule"
	"github.com/plantulas/plantbot/internal/usercontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Fake clock pinned to 2024-06-01; "today" for every test below.
var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db   *gorm.DB
	node *snowflake.Node
	svc  dashboarddomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:dashboard_svc_test?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&indoordomain.Indoor{},
		&plantdomain.Plant{},
	))
	t.Cleanup(func() {
		db.Exec("DELETE FROM plants")
		db.Exec("DELETE FROM indoors")
	})

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		Clock:      clock.NewFakeClock(testNow),
		PlantRepo:  plantrepository.Provide(),
		IndoorRepo: indoorrepository.Provide(),
	})

	return &fixture{db: db, node: node, svc: svc}
}

func (f *fixture) ownerCtx() (context.Context, snowflake.ID) {
	userID := f.node.Generate()
	return usercontext.WithUserID(context.Background(), userID), userID
}

func (f *fixture) addIndoor(t *testing.T, userID snowflake.ID, name string) {
	t.Helper()
	require.NoError(t, f.db.Create(&indoordomain.Indoor{
		ID:     f.node.Generate(),
		UserID: userID,
		Name:   name,
	}).Error)
}

func (f *fixture) addPlant(t *testing.T, userID snowflake.ID, name string, nextInDays *int) {
	t.Helper()
	plant := plantdomain.Plant{
		ID:                   f.node.Generate(),
		UserID:               userID,
		Name:                 name,
		WateringIntervalDays: 7,
		DefaultLiters:        1.0,
	}
	if nextInDays != nil {
		next := schedule.Date(testNow).AddDate(0, 0, *nextInDays)
		plant.NextWaterAt = &next
	}
	require.NoError(t, f.db.Create(&plant).Error)
}

func days(v int) *int { return &v }

func TestBuildDashboard_Empty(t *testing.T) {
	f := newFixture(t)
	ctx, _ := f.ownerCtx()

	dash, err := f.svc.Build(ctx)
	require.NoError(t, err)

	assert.Zero(t, dash.IndoorsTotal)
	assert.Zero(t, dash.PlantsTotal)
	assert.Zero(t, dash.NeedWaterCount)
	assert.Empty(t, dash.Upcoming)
}

func TestBuildDashboard_CountsAndStatus(t *testing.T) {
	f := newFixture(t)
	ctx, userID := f.ownerCtx()

	f.addIndoor(t, userID, "Tent")
	f.addIndoor(t, userID, "Herb Garden")

	f.addPlant(t, userID, "Overdue", days(-1))
	f.addPlant(t, userID, "DueToday", days(0))
	f.addPlant(t, userID, "DueSoon", days(2))
	f.addPlant(t, userID, "Fine", days(6))
	f.addPlant(t, userID, "NeverWatered", nil)

	dash, err := f.svc.Build(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, dash.IndoorsTotal)
	assert.Equal(t, 5, dash.PlantsTotal)
	// Overdue and due today both need water; due in two days does not.
	assert.Equal(t, 2, dash.NeedWaterCount)

	// Never-watered plants have no schedule to show.
	require.Len(t, dash.Upcoming, 4)

	// Ascending by next_water_at.
	assert.Equal(t, "Overdue", dash.Upcoming[0].Name)
	assert.Equal(t, "DueToday", dash.Upcoming[1].Name)
	assert.Equal(t, "DueSoon", dash.Upcoming[2].Name)
	assert.Equal(t, "Fine", dash.Upcoming[3].Name)

	assert.Equal(t, schedule.StatusOverdue, dash.Upcoming[0].Status)
	assert.Equal(t, -1, dash.Upcoming[0].DueInDays)
	assert.Equal(t, schedule.StatusDueSoon, dash.Upcoming[1].Status)
	assert.Equal(t, 0, dash.Upcoming[1].DueInDays)
	assert.Equal(t, schedule.StatusDueSoon, dash.Upcoming[2].Status)
	assert.Equal(t, schedule.StatusOK, dash.Upcoming[3].Status)
}

func TestBuildDashboard_ScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctxA, userA := f.ownerCtx()
	_, userB := f.ownerCtx()

	f.addIndoor(t, userA, "Tent A")
	f.addPlant(t, userA, "Mine", days(1))

	f.addIndoor(t, userB, "Tent B")
	f.addPlant(t, userB, "Theirs", days(-3))

	dash, err := f.svc.Build(ctxA)
	require.NoError(t, err)

	assert.Equal(t, 1, dash.IndoorsTotal)
	assert.Equal(t, 1, dash.PlantsTotal)
	require.Len(t, dash.Upcoming, 1)
	assert.Equal(t, "Mine", dash.Upcoming[0].Name)
}

func TestBuildDashboard_MissingOwner(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Build(context.Background())
	assert.ErrorIs(t, err, plantdomain.ErrInvalidOwner)
}
