package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/plantulas/plantbot/internal/config"
	dashboarddomain "github.com/plantulas/plantbot/internal/dashboard/domain"
	indoordomain "github.com/plantulas/plantbot/internal/indoor/domain"
	plantdomain "github.com/plantulas/plantbot/internal/plant/domain"
	userdomain "github.com/plantulas/plantbot/internal/user/domain"
	"github.com/plantulas/plantbot/internal/usercontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserService struct {
	resolved []int64
	user     userdomain.User
}

func (f *fakeUserService) ResolveOrCreate(ctx context.Context, telegramUserID int64) (userdomain.User, error) {
	if telegramUserID <= 0 {
		return userdomain.User{}, userdomain.ErrInvalidTelegramID
	}
	f.resolved = append(f.resolved, telegramUserID)
	return f.user, nil
}

type fakeDashboardService struct {
	lastUserID snowflake.ID
}

func (f *fakeDashboardService) Build(ctx context.Context) (dashboarddomain.Dashboard, error) {
	userID, ok := usercontext.UserIDFromContext(ctx)
	if !ok {
		return dashboarddomain.Dashboard{}, plantdomain.ErrInvalidOwner
	}
	f.lastUserID = userID
	return dashboarddomain.Dashboard{PlantsTotal: 3}, nil
}

type fakeIndoorService struct{}

func (fakeIndoorService) Create(context.Context, indoordomain.CreateIndoorRequest) (indoordomain.Indoor, error) {
	return indoordomain.Indoor{}, nil
}
func (fakeIndoorService) List(context.Context) ([]indoordomain.IndoorListItem, error) {
	return nil, nil
}
func (fakeIndoorService) Get(context.Context, string) (indoordomain.IndoorDetail, error) {
	return indoordomain.IndoorDetail{}, indoordomain.ErrNotFound
}
func (fakeIndoorService) Update(context.Context, indoordomain.UpdateIndoorRequest) (indoordomain.Indoor, error) {
	return indoordomain.Indoor{}, nil
}
func (fakeIndoorService) Delete(context.Context, string) error { return nil }

type fakePlantService struct{}

func (fakePlantService) Create(context.Context, plantdomain.CreatePlantRequest) (plantdomain.Plant, error) {
	return plantdomain.Plant{}, nil
}
func (fakePlantService) List(context.Context) ([]plantdomain.Plant, error) { return nil, nil }
func (fakePlantService) Get(context.Context, string) (plantdomain.Plant, []plantdomain.WateringHistory, error) {
	return plantdomain.Plant{}, nil, plantdomain.ErrNotFound
}
func (fakePlantService) RegisterWatering(context.Context, plantdomain.RegisterWateringRequest) (plantdomain.WateringResult, error) {
	return plantdomain.WateringResult{}, nil
}
func (fakePlantService) Delete(context.Context, string) error { return nil }

func newTestServer(t *testing.T) (*Server, *fakeUserService, *fakeDashboardService) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	users := &fakeUserService{user: userdomain.User{ID: snowflake.ID(42), TelegramUserID: 12345678}}
	dash := &fakeDashboardService{}

	srv := NewServer(ServerParams{
		Gin:          engine,
		Cfg:          config.Config{},
		Log:          zap.NewNop(),
		UserSvc:      users,
		IndoorSvc:    fakeIndoorService{},
		PlantSvc:     fakePlantService{},
		DashboardSvc: dash,
	})

	return srv, users, dash
}

func TestTelegramAuth_MissingHeader(t *testing.T) {
	srv, users, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, users.resolved)

	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation_error", body.Error.Type)
	require.Len(t, body.Error.Errors, 1)
	assert.Equal(t, "x-telegram-userid", body.Error.Errors[0].Field)
	assert.Equal(t, "missing_header", body.Error.Errors[0].Code)
}

func TestTelegramAuth_InvalidHeader(t *testing.T) {
	srv, users, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set(HeaderTelegramUser, "not-a-number")
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, users.resolved)
}

func TestTelegramAuth_ResolvesOwner(t *testing.T) {
	srv, users, dash := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set(HeaderTelegramUser, "12345678")
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{12345678}, users.resolved)
	// The resolved account id travels with the request context.
	assert.Equal(t, snowflake.ID(42), dash.lastUserID)
}

func TestNotFoundMapping(t *testing.T) {
	srv, _, _ := newTestServer(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/plants/123", nil)
	req.Header.Set(HeaderTelegramUser, "12345678")
	srv.Engine().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body.Error.Type)
}
