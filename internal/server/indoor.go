package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	indoordomain "github.com/plantulas/plantbot/internal/indoor/domain"
)

type createIndoorRequest struct {
	Name            string   `json:"name"`
	TempC           *float64 `json:"temp_c"`
	Humidity        *float64 `json:"humidity"`
	FanLocation     *string  `json:"fan_location"`
	ExtractorTop    bool     `json:"extractor_top"`
	ExtractorBottom bool     `json:"extractor_bottom"`
	Fan             bool     `json:"fan"`
	LightHeightCm   *float64 `json:"light_height_cm"`
	LightPowerPct   *int     `json:"light_power_pct"`
	LightSchedule   *string  `json:"light_schedule"`
}

type updateIndoorRequest struct {
	TempC           *float64 `json:"temp_c"`
	Humidity        *float64 `json:"humidity"`
	FanLocation     *string  `json:"fan_location"`
	ExtractorTop    *bool    `json:"extractor_top"`
	ExtractorBottom *bool    `json:"extractor_bottom"`
	Fan             *bool    `json:"fan"`
	LightHeightCm   *float64 `json:"light_height_cm"`
	LightPowerPct   *int     `json:"light_power_pct"`
	LightSchedule   *string  `json:"light_schedule"`
}

func (s *Server) ListIndoors(c *gin.Context) {
	indoors, err := s.indoorSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": indoors})
}

func (s *Server) CreateIndoor(c *gin.Context) {
	var req createIndoorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	indoor, err := s.indoorSvc.Create(c.Request.Context(), indoordomain.CreateIndoorRequest{
		Name:            req.Name,
		TempC:           req.TempC,
		Humidity:        req.Humidity,
		FanLocation:     req.FanLocation,
		ExtractorTop:    req.ExtractorTop,
		ExtractorBottom: req.ExtractorBottom,
		Fan:             req.Fan,
		LightHeightCm:   req.LightHeightCm,
		LightPowerPct:   req.LightPowerPct,
		LightSchedule:   req.LightSchedule,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": indoor})
}

func (s *Server) GetIndoorByID(c *gin.Context) {
	detail, err := s.indoorSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": detail})
}

func (s *Server) UpdateIndoor(c *gin.Context) {
	var req updateIndoorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	indoor, err := s.indoorSvc.Update(c.Request.Context(), indoordomain.UpdateIndoorRequest{
		ID:              c.Param("id"),
		TempC:           req.TempC,
		Humidity:        req.Humidity,
		FanLocation:     req.FanLocation,
		ExtractorTop:    req.ExtractorTop,
		ExtractorBottom: req.ExtractorBottom,
		Fan:             req.Fan,
		LightHeightCm:   req.LightHeightCm,
		LightPowerPct:   req.LightPowerPct,
		LightSchedule:   req.LightSchedule,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": indoor})
}

func (s *Server) DeleteIndoor(c *gin.Context) {
	if err := s.indoorSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
