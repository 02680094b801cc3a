package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	obsRepo "smartfield/pkg/observation/repository"
	"smartfield/pkg/status"
	"smartfield/pkg/timeline/repository"
)

type InsightsCtrl struct {
	obs       obsRepo.ObservationRepository
	timelines repository.TimelineRepository
}

func New(obs obsRepo.ObservationRepository, timelines repository.TimelineRepository) *InsightsCtrl {
	return &InsightsCtrl{obs: obs, timelines: timelines}
}

type traitSummary struct {
	Trait      string   `json:"trait"`
	Count      int      `json:"count"`
	NonNumeric int      `json:"non_numeric"`
	Mean       *float64 `json:"mean,omitempty"`
	Median     *float64 `json:"median,omitempty"`
	Min        *float64 `json:"min,omitempty"`
	Max        *float64 `json:"max,omitempty"`
	StdDev     *float64 `json:"std_dev,omitempty"`
}

// TraitSummary computes descriptive statistics over the numeric values
// recorded for one trait. Free-text values are counted, not averaged.
func (h *InsightsCtrl) TraitSummary(c echo.Context) error {
	trait := c.Param("trait")
	values, err := h.obs.ValuesForTrait(trait)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	out := traitSummary{Trait: trait, Count: len(values)}
	var nums []float64
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			out.NonNumeric++
			continue
		}
		nums = append(nums, f)
	}
	if len(nums) > 0 {
		set := func(dst **float64, f func(stats.Float64Data) (float64, error)) {
			if v, err := f(nums); err == nil {
				*dst = &v
			}
		}
		set(&out.Mean, stats.Mean)
		set(&out.Median, stats.Median)
		set(&out.Min, stats.Min)
		set(&out.Max, stats.Max)
		set(&out.StdDev, stats.StandardDeviation)
	}
	return c.JSON(http.StatusOK, out)
}

// StatusCounts buckets the timeline by flag for the dashboard summary chart.
func (h *InsightsCtrl) StatusCounts(c echo.Context) error {
	counts, err := h.timelines.CountByFlag()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	out := map[string]int64{}
	var total int64
	for _, f := range []status.Flag{status.TooEarly, status.DueSoon, status.Overdue, status.Completed} {
		out[string(f)] = counts[string(f)]
		total += counts[string(f)]
	}
	return c.JSON(http.StatusOK, map[string]any{"counts": out, "total": total})
}
