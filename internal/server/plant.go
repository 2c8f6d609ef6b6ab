package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	plantdomain "github.com/plantulas/plantbot/internal/plant/domain"
)

type createPlantRequest struct {
	Name                 string  `json:"name"`
	Species              *string `json:"species"`
	IndoorID             *string `json:"indoor_id"`
	PlantedAt            string  `json:"planted_at"`
	WateringIntervalDays int     `json:"watering_interval_days"`
	DefaultLiters        float64 `json:"default_liters"`
	Notes                *string `json:"notes"`
}

type fertilizerInput struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type waterPlantRequest struct {
	Liters float64           `json:"liters"`
	Date   string            `json:"date"`
	Note   *string           `json:"note"`
	Ferts  []fertilizerInput `json:"ferts"`
}

type plantDetailResponse struct {
	Plant   plantdomain.Plant             `json:"plant"`
	History []plantdomain.WateringHistory `json:"history"`
}

func (s *Server) ListPlants(c *gin.Context) {
	plants, err := s.plantSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": plants})
}

func (s *Server) CreatePlant(c *gin.Context) {
	var req createPlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	plantedAt, err := parseOptionalDate(req.PlantedAt)
	if err != nil {
		AbortWithError(c, newValidationError("planted_at", "invalid_date", "planted_at must be formatted as YYYY-MM-DD"))
		return
	}

	plant, err := s.plantSvc.Create(c.Request.Context(), plantdomain.CreatePlantRequest{
		Name:                 req.Name,
		Species:              req.Species,
		IndoorID:             req.IndoorID,
		PlantedAt:            plantedAt,
		WateringIntervalDays: req.WateringIntervalDays,
		DefaultLiters:        req.DefaultLiters,
		Notes:                req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": plant})
}

func (s *Server) GetPlantByID(c *gin.Context) {
	plant, history, err := s.plantSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": plantDetailResponse{
		Plant:   plant,
		History: history,
	}})
}

func (s *Server) WaterPlant(c *gin.Context) {
	var req waterPlantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	eventDate, err := parseOptionalDate(req.Date)
	if err != nil {
		AbortWithError(c, newValidationError("date", "invalid_date", "date must be formatted as YYYY-MM-DD"))
		return
	}

	ferts := make([]plantdomain.FertilizerInput, 0, len(req.Ferts))
	for _, f := range req.Ferts {
		ferts = append(ferts, plantdomain.FertilizerInput{
			Name:   f.Name,
			Amount: f.Amount,
		})
	}

	result, err := s.plantSvc.RegisterWatering(c.Request.Context(), plantdomain.RegisterWateringRequest{
		PlantID:   c.Param("id"),
		Liters:    req.Liters,
		EventDate: eventDate,
		Note:      req.Note,
		Ferts:     ferts,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

func (s *Server) DeletePlant(c *gin.Context) {
	if err := s.plantSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
