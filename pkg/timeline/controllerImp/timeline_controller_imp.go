package controllerImp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"smartfield/pkg/middleware"
	"smartfield/pkg/timeline/repository"
	"smartfield/pkg/timeline/service"
)

type TimelineCtrl struct {
	svc  service.TimelineService
	repo repository.TimelineRepository
}

func New(svc service.TimelineService, repo repository.TimelineRepository) *TimelineCtrl {
	return &TimelineCtrl{svc: svc, repo: repo}
}

func (h *TimelineCtrl) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, err := strconv.Atoi(c.QueryParam("pageSize"))
	if err != nil || pageSize <= 0 {
		pageSize = 100
	}
	rows, total, err := h.repo.List(c.QueryParam("trait"), c.QueryParam("status"), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"total": total, "page": page, "data": rows})
}

func (h *TimelineCtrl) Matrix(c echo.Context) error {
	m, err := h.svc.Matrix()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, m)
}

func (h *TimelineCtrl) Recompute(c echo.Context) error {
	report, err := h.svc.Rebuild(time.Now(), middleware.Actor(c))
	if errors.Is(err, service.ErrRebuildInProgress) {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, report)
}

type actualDateReq struct {
	PlantID    string  `json:"plant_id"`
	Trait      string  `json:"trait"`
	ActualDate *string `json:"actual_date"` // YYYY-MM-DD, null clears the date
	Note       *string `json:"note"`
}

// SetActual is the manual correction endpoint: it touches one row and
// re-derives its status without a full rebuild.
func (h *TimelineCtrl) SetActual(c echo.Context) error {
	var req actualDateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.PlantID == "" || req.Trait == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "plant_id and trait are required"})
	}
	var actual *time.Time
	if req.ActualDate != nil && *req.ActualDate != "" {
		d, err := time.Parse("2006-01-02", *req.ActualDate)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "actual_date must be YYYY-MM-DD"})
		}
		actual = &d
	}
	row, err := h.svc.SetActual(req.PlantID, req.Trait, actual, req.Note, middleware.Actor(c))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "timeline entry not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, row)
}
