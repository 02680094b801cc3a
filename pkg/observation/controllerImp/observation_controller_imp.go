package controllerImp

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"smartfield/entities"
	"smartfield/pkg/middleware"
	"smartfield/pkg/observation/repository"
)

type ObservationCtrl struct{ repo repository.ObservationRepository }

func New(repo repository.ObservationRepository) *ObservationCtrl { return &ObservationCtrl{repo} }

// History lists every recorded value for one plot, grouped by trait with the
// newest row first.
func (h *ObservationCtrl) History(c echo.Context) error {
	rows, err := h.repo.History(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	grouped := map[string][]entities.PlantTraitData{}
	for _, row := range rows {
		grouped[row.Trait] = append(grouped[row.Trait], row)
	}
	return c.JSON(http.StatusOK, grouped)
}

type observationReq struct {
	PlantID string `json:"plant_id"`
	Trait   string `json:"trait"`
	Value   string `json:"value"`
}

func (h *ObservationCtrl) Upsert(c echo.Context) error {
	var req observationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	req.Value = strings.TrimSpace(req.Value)
	if req.PlantID == "" || req.Trait == "" || req.Value == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "plant_id, trait and value are required"})
	}
	obs := entities.PlantTraitData{
		PlantID:    req.PlantID,
		Trait:      req.Trait,
		Value:      req.Value,
		UploadedBy: middleware.Actor(c),
	}
	if err := h.repo.UpsertLatest(&obs); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, obs)
}

type bulkEditsReq struct {
	Edits map[string]map[string]string `json:"edits"` // plant_id -> trait -> value
}

// BulkEdits saves inline table edits from the dashboard. Blank values are
// ignored rather than deleting anything.
func (h *ObservationCtrl) BulkEdits(c echo.Context) error {
	var req bulkEditsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	actor := middleware.Actor(c)
	saved := 0
	for plantID, traits := range req.Edits {
		for trait, value := range traits {
			value = strings.TrimSpace(value)
			if value == "" {
				continue
			}
			err := h.repo.UpsertLatest(&entities.PlantTraitData{
				PlantID:    plantID,
				Trait:      trait,
				Value:      value,
				UploadedBy: actor,
			})
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
			}
			saved++
		}
	}
	return c.JSON(http.StatusOK, map[string]any{"saved": saved})
}
