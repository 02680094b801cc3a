package controllerImp

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"smartfield/entities"
	"smartfield/pkg/brapi"
	"smartfield/pkg/middleware"
	obsRepo "smartfield/pkg/observation/repository"
	plotRepo "smartfield/pkg/plot/repository"
	schedRepo "smartfield/pkg/schedule/repository"
)

type BrapiCtrl struct {
	plots  plotRepo.PlotRepository
	obs    obsRepo.ObservationRepository
	scheds schedRepo.ScheduleRepository
}

func New(plots plotRepo.PlotRepository, obs obsRepo.ObservationRepository,
	scheds schedRepo.ScheduleRepository) *BrapiCtrl {
	return &BrapiCtrl{plots: plots, obs: obs, scheds: scheds}
}

func paging(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	pageSize, err := strconv.Atoi(c.QueryParam("pageSize"))
	if err != nil || pageSize <= 0 {
		pageSize = 1000
	}
	return page, pageSize
}

type callInfo struct {
	Call     string   `json:"call"`
	Methods  []string `json:"methods"`
	Versions []string `json:"versions"`
}

func (h *BrapiCtrl) Calls(c echo.Context) error {
	calls := []callInfo{
		{"calls", []string{"GET"}, []string{"2.0"}},
		{"observationunits", []string{"GET"}, []string{"2.0"}},
		{"observations", []string{"GET", "POST"}, []string{"2.0"}},
		{"variables", []string{"GET"}, []string{"2.0"}},
		{"commoncropnames", []string{"GET"}, []string{"2.0"}},
	}
	return c.JSON(http.StatusOK, brapi.NewResponse(calls, int64(len(calls)), 0, len(calls)))
}

type geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type location struct {
	Geometry geometry `json:"geometry"`
	Type     string   `json:"type"`
}

type observationUnit struct {
	ObservationUnitDbId string    `json:"observationUnitDbId"`
	PlantingDate        *string   `json:"plantingDate"`
	Location            *location `json:"location"`
}

func (h *BrapiCtrl) ObservationUnits(c echo.Context) error {
	page, pageSize := paging(c)
	plots, total, err := h.plots.List(c.QueryParam("status"), c.QueryParam("locationName"), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	data := make([]observationUnit, 0, len(plots))
	for _, p := range plots {
		unit := observationUnit{ObservationUnitDbId: p.PlantID}
		if p.PlantingDate != nil {
			d := p.PlantingDate.Format("2006-01-02")
			unit.PlantingDate = &d
		}
		if p.Latitude != nil && p.Longitude != nil {
			unit.Location = &location{
				Type:     "Feature",
				Geometry: geometry{Type: "Point", Coordinates: []float64{*p.Longitude, *p.Latitude}},
			}
		}
		data = append(data, unit)
	}
	return c.JSON(http.StatusOK, brapi.NewResponse(data, total, page, pageSize))
}

type observation struct {
	ObservationDbId     string `json:"observationDbId"`
	ObservationUnitDbId string `json:"observationUnitDbId"`
	TraitName           string `json:"traitName"`
	Value               string `json:"value"`
	Timestamp           string `json:"observationTimeStamp"`
}

func (h *BrapiCtrl) Observations(c echo.Context) error {
	page, pageSize := paging(c)
	rows, total, err := h.obs.List(c.QueryParam("observationVariableName"), page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	data := make([]observation, 0, len(rows))
	for _, row := range rows {
		data = append(data, observation{
			ObservationDbId:     strconv.FormatUint(uint64(row.ID), 10),
			ObservationUnitDbId: row.PlantID,
			TraitName:           row.Trait,
			Value:               row.Value,
			Timestamp:           row.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return c.JSON(http.StatusOK, brapi.NewResponse(data, total, page, pageSize))
}

type observationReq struct {
	ObservationUnitDbId string `json:"observationUnitDbId"`
	TraitName           string `json:"observationVariableName"`
	Value               string `json:"value"`
}

func (h *BrapiCtrl) CreateObservations(c echo.Context) error {
	var reqs []observationReq
	if err := c.Bind(&reqs); err != nil {
		return c.JSON(http.StatusBadRequest, brapi.NewResponse([]any{}, 0, 0, 0,
			brapi.Status{Message: "bad json", Code: "400"}))
	}
	actor := middleware.Actor(c)
	saved := 0
	var statuses []brapi.Status
	for i, req := range reqs {
		if req.ObservationUnitDbId == "" || req.TraitName == "" || strings.TrimSpace(req.Value) == "" {
			statuses = append(statuses, brapi.Status{
				Message: "observation " + strconv.Itoa(i) + ": missing unit, trait or value",
				Code:    "400",
			})
			continue
		}
		err := h.obs.UpsertLatest(&entities.PlantTraitData{
			PlantID:    req.ObservationUnitDbId,
			Trait:      req.TraitName,
			Value:      strings.TrimSpace(req.Value),
			UploadedBy: actor,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		saved++
	}
	return c.JSON(http.StatusOK, brapi.NewResponse(map[string]int{"saved": saved}, int64(saved), 0, saved, statuses...))
}

type variable struct {
	ObservationVariableDbId   string `json:"observationVariableDbId"`
	ObservationVariableName   string `json:"observationVariableName"`
	CommonCropName            string `json:"commonCropName"`
	GrowthStageDaysAfterStart int    `json:"growthStageDaysAfterStart"`
}

func (h *BrapiCtrl) Variables(c echo.Context) error {
	page, pageSize := paging(c)
	rows, err := h.scheds.List(c.QueryParam("commonCropName"), false)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	data := make([]variable, 0, len(rows))
	for _, row := range rows {
		data = append(data, variable{
			ObservationVariableDbId:   strconv.FormatUint(uint64(row.ScheduleID), 10),
			ObservationVariableName:   row.Trait,
			CommonCropName:            row.Crop,
			GrowthStageDaysAfterStart: row.DaysAfterPlanting,
		})
	}
	total := int64(len(data))
	lo := page * pageSize
	if lo > len(data) {
		lo = len(data)
	}
	hi := lo + pageSize
	if hi > len(data) {
		hi = len(data)
	}
	return c.JSON(http.StatusOK, brapi.NewResponse(data[lo:hi], total, page, pageSize))
}

func (h *BrapiCtrl) CommonCropNames(c echo.Context) error {
	crops, err := h.scheds.Crops()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, brapi.NewResponse(crops, int64(len(crops)), 0, len(crops)))
}
