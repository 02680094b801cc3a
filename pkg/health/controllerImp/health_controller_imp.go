package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"smartfield/entities"
)

var started = time.Now()

type HealthCtrl struct{ db *gorm.DB }

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

// Health pings the store and reports how much trial data it currently holds,
// so a monitor can tell an empty database from a broken one.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	var dbErr string
	if sqlDB, err := h.db.DB(); err != nil {
		dbErr = err.Error()
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbErr = err.Error()
	}
	if dbErr != "" {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"ok":         false,
			"error":      dbErr,
			"uptime_sec": int(time.Since(started).Seconds()),
		})
	}

	var plots, timelineRows int64
	h.db.WithContext(ctx).Model(&entities.FieldPlot{}).Count(&plots)
	h.db.WithContext(ctx).Model(&entities.TraitTimeline{}).Count(&timelineRows)

	return c.JSON(http.StatusOK, map[string]any{
		"ok":            true,
		"uptime_sec":    int(time.Since(started).Seconds()),
		"plots":         plots,
		"timeline_rows": timelineRows,
		"time":          time.Now().Format(time.RFC3339),
	})
}
