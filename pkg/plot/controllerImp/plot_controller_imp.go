package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"smartfield/entities"
	"smartfield/pkg/plot/repository"
)

type PlotCtrl struct{ repo repository.PlotRepository }

func New(repo repository.PlotRepository) *PlotCtrl { return &PlotCtrl{repo} }

func (h *PlotCtrl) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, err := strconv.Atoi(c.QueryParam("pageSize"))
	if err != nil || pageSize <= 0 {
		pageSize = 100
	}
	plots, total, err := h.repo.List(c.QueryParam("status"), c.QueryParam("location"), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"total": total, "page": page, "data": plots})
}

func (h *PlotCtrl) Get(c echo.Context) error {
	p, err := h.repo.FindByID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "plot not found"})
	}
	return c.JSON(http.StatusOK, p)
}

type createPlotReq struct {
	PlantID      string  `json:"plant_id"`
	PlantingDate *string `json:"planting_date"`
	Location     string  `json:"location"`
	Block        string  `json:"block"`
	Row          string  `json:"row"`
	Column       string  `json:"column"`
}

func (h *PlotCtrl) Create(c echo.Context) error {
	var req createPlotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.PlantID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "plant_id required"})
	}
	plot := entities.FieldPlot{
		PlantID:  req.PlantID,
		Location: req.Location,
		Block:    req.Block,
		Row:      req.Row,
		Column:   req.Column,
	}
	if req.PlantingDate != nil && *req.PlantingDate != "" {
		d, err := time.Parse("2006-01-02", *req.PlantingDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "planting_date must be YYYY-MM-DD"})
		}
		plot.PlantingDate = &d
	}
	if err := h.repo.UpsertBatch([]entities.FieldPlot{plot}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, plot)
}

type gpsReq struct {
	PlantID   string  `json:"plant_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *PlotCtrl) AssignGPS(c echo.Context) error {
	var req gpsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	pid := c.Param("id")
	if pid == "" {
		pid = req.PlantID
	}
	if pid == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "plant_id required"})
	}
	if err := h.repo.AssignGPS(pid, req.Latitude, req.Longitude); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// BulkAssignGPS takes a list of plant_id/lat/lon triples, one UI form submit.
func (h *PlotCtrl) BulkAssignGPS(c echo.Context) error {
	var reqs []gpsReq
	if err := c.Bind(&reqs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	assigned := 0
	var failed []string
	for _, req := range reqs {
		if req.PlantID == "" {
			continue
		}
		if err := h.repo.AssignGPS(req.PlantID, req.Latitude, req.Longitude); err != nil {
			failed = append(failed, req.PlantID)
			continue
		}
		assigned++
	}
	return c.JSON(http.StatusOK, map[string]any{"assigned": assigned, "failed": failed})
}
