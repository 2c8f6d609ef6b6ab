package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/plantulas/plantbot/internal/clock"
	userdomain "github.com/plantulas/plantbot/internal/user/domain"
	userrepository "github.com/plantulas/plantbot/internal/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) userdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:user_svc_test?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userdomain.User{}))
	t.Cleanup(func() {
		db.Exec("DELETE FROM users")
	})

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)),
		Repo:  userrepository.Provide(),
	})
}

func TestResolveOrCreate_FirstContact(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created, err := svc.ResolveOrCreate(ctx, 12345678)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, int64(12345678), created.TelegramUserID)

	// Same header, same account.
	resolved, err := svc.ResolveOrCreate(ctx, 12345678)
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)
}

func TestResolveOrCreate_DistinctTelegramUsers(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a, err := svc.ResolveOrCreate(ctx, 111)
	require.NoError(t, err)
	b, err := svc.ResolveOrCreate(ctx, 222)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestResolveOrCreate_InvalidTelegramID(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.ResolveOrCreate(ctx, 0)
	assert.ErrorIs(t, err, userdomain.ErrInvalidTelegramID)

	_, err = svc.ResolveOrCreate(ctx, -5)
	assert.ErrorIs(t, err, userdomain.ErrInvalidTelegramID)
}
