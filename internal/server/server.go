package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/plantulas/plantbot/internal/config"
	dashboarddomain "github.com/plantulas/plantbot/internal/dashboard/domain"
	indoordomain "github.com/plantulas/plantbot/internal/indoor/domain"
	"github.com/plantulas/plantbot/internal/observability"
	obslogger "github.com/plantulas/plantbot/internal/observability/logger"
	obsmetrics "github.com/plantulas/plantbot/internal/observability/metrics"
	plantdomain "github.com/plantulas/plantbot/internal/plant/domain"
	userdomain "github.com/plantulas/plantbot/internal/user/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(RunHTTP),
)

// NewEngine builds the gin engine with the shared middleware chain and the
// unauthenticated endpoints.
func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	if !obsCfg.Debug() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	log          *zap.Logger
	userSvc      userdomain.Service
	indoorSvc    indoordomain.Service
	plantSvc     plantdomain.Service
	dashboardSvc dashboarddomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	Log          *zap.Logger
	UserSvc      userdomain.Service
	IndoorSvc    indoordomain.Service
	PlantSvc     plantdomain.Service
	DashboardSvc dashboarddomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		log:          p.Log.Named("http.server"),
		userSvc:      p.UserSvc,
		indoorSvc:    p.IndoorSvc,
		plantSvc:     p.PlantSvc,
		dashboardSvc: p.DashboardSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.TelegramAuth())

	api.GET("/dashboard", s.GetDashboard)

	// -------- Indoors --------
	api.GET("/indoors", s.ListIndoors)
	api.POST("/indoors", s.CreateIndoor)
	api.GET("/indoors/:id", s.GetIndoorByID)
	api.PATCH("/indoors/:id", s.UpdateIndoor)
	api.DELETE("/indoors/:id", s.DeleteIndoor)

	// -------- Plants --------
	api.GET("/plants", s.ListPlants)
	api.POST("/plants", s.CreatePlant)
	api.GET("/plants/:id", s.GetPlantByID)
	api.POST("/plants/:id/water", s.WaterPlant)
	api.DELETE("/plants/:id", s.DeletePlant)
}

func RunHTTP(lc fx.Lifecycle, s *Server) {
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
