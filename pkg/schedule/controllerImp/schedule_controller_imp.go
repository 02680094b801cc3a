package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"smartfield/entities"
	"smartfield/pkg/schedule/repository"
)

type SchedCtrl struct {
	repo     repository.ScheduleRepository
	validate *validator.Validate
}

func New(repo repository.ScheduleRepository) *SchedCtrl {
	return &SchedCtrl{repo: repo, validate: validator.New()}
}

func (h *SchedCtrl) List(c echo.Context) error {
	activeOnly := c.QueryParam("active") == "true"
	rows, err := h.repo.List(c.QueryParam("crop"), activeOnly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type scheduleEntryReq struct {
	Crop              string `json:"crop" validate:"required"`
	Trait             string `json:"trait" validate:"required"`
	DaysAfterPlanting int    `json:"days_after_planting" validate:"gte=0"`
	Active            *bool  `json:"active"`
}

// Replace swaps the whole schedule for the posted set. Rows failing
// validation reject the request; the schedule has no partial-update path.
func (h *SchedCtrl) Replace(c echo.Context) error {
	var reqs []scheduleEntryReq
	if err := c.Bind(&reqs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if len(reqs) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "empty schedule"})
	}
	rows := make([]entities.TraitSchedule, 0, len(reqs))
	for i, req := range reqs {
		if err := h.validate.Struct(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "row " + strconv.Itoa(i) + ": " + err.Error(),
			})
		}
		active := true
		if req.Active != nil {
			active = *req.Active
		}
		rows = append(rows, entities.TraitSchedule{
			Crop:              req.Crop,
			Trait:             req.Trait,
			DaysAfterPlanting: req.DaysAfterPlanting,
			Active:            active,
		})
	}
	if err := h.repo.ReplaceAll(rows); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"replaced": len(rows)})
}

func (h *SchedCtrl) SetActive(c echo.Context) error {
	sid, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad schedule id"})
	}
	var body struct {
		Active bool `json:"active"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := h.repo.SetActive(uint(sid), body.Active); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
