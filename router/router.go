package router

import (
	"github.com/labstack/echo/v4"

	"smartfield/pkg/middleware"
)

func New(
	e *echo.Echo,
	jwtSecret string,
	requireAuth bool,
	authCtrl interface {
		Register(echo.Context) error
		Login(echo.Context) error
		WhoAmI(echo.Context) error
	},
	plotCtrl interface {
		List(echo.Context) error
		Get(echo.Context) error
		Create(echo.Context) error
		AssignGPS(echo.Context) error
		BulkAssignGPS(echo.Context) error
	},
	schedCtrl interface {
		List(echo.Context) error
		Replace(echo.Context) error
		SetActive(echo.Context) error
	},
	obsCtrl interface {
		History(echo.Context) error
		Upsert(echo.Context) error
		BulkEdits(echo.Context) error
	},
	tlCtrl interface {
		List(echo.Context) error
		Matrix(echo.Context) error
		Recompute(echo.Context) error
		SetActual(echo.Context) error
	},
	importCtrl interface {
		UploadTraitCSV(echo.Context) error
		UploadScheduleCSV(echo.Context) error
		UploadSnapshotCSV(echo.Context) error
		ListBatches(echo.Context) error
		GetBatch(echo.Context) error
	},
	exportCtrl interface {
		StatusCSV(echo.Context) error
		StatusXLSX(echo.Context) error
		TimelineCSV(echo.Context) error
	},
	brapiCtrl interface {
		Calls(echo.Context) error
		ObservationUnits(echo.Context) error
		Observations(echo.Context) error
		CreateObservations(echo.Context) error
		Variables(echo.Context) error
		CommonCropNames(echo.Context) error
	},
	insightsCtrl interface {
		TraitSummary(echo.Context) error
		StatusCounts(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/health", healthCtrl.Health)

	e.POST("/auth/register", authCtrl.Register)
	e.POST("/auth/login", authCtrl.Login)

	api := e.Group("", middleware.JWT(jwtSecret, requireAuth))
	api.GET("/whoami", authCtrl.WhoAmI)

	api.GET("/plots", plotCtrl.List)
	api.POST("/plots", plotCtrl.Create)
	api.GET("/plots/:id", plotCtrl.Get)
	api.PATCH("/plots/:id/gps", plotCtrl.AssignGPS)
	api.POST("/plots/gps", plotCtrl.BulkAssignGPS)
	api.GET("/plots/:id/traits", obsCtrl.History)
	api.POST("/plots/:id/snapshot", importCtrl.UploadSnapshotCSV)

	api.GET("/schedule", schedCtrl.List)
	api.PUT("/schedule", schedCtrl.Replace)
	api.PATCH("/schedule/:id", schedCtrl.SetActive)

	api.POST("/observations", obsCtrl.Upsert)
	api.POST("/observations/edits", obsCtrl.BulkEdits)

	api.GET("/timeline", tlCtrl.List)
	api.GET("/timeline/matrix", tlCtrl.Matrix)
	api.POST("/timeline/recompute", tlCtrl.Recompute)
	api.POST("/timeline/actual-date", tlCtrl.SetActual)

	api.POST("/imports/traits", importCtrl.UploadTraitCSV)
	api.POST("/imports/schedule", importCtrl.UploadScheduleCSV)
	api.GET("/imports", importCtrl.ListBatches)
	api.GET("/imports/:id", importCtrl.GetBatch)

	api.GET("/export/status.csv", exportCtrl.StatusCSV)
	api.GET("/export/status.xlsx", exportCtrl.StatusXLSX)
	api.GET("/export/timeline.csv", exportCtrl.TimelineCSV)

	api.GET("/insights/traits/:trait", insightsCtrl.TraitSummary)
	api.GET("/insights/status", insightsCtrl.StatusCounts)

	// BrAPI v2 — fixed wire contract consumed by external breeding tools.
	b := api.Group("/brapi/v2")
	b.GET("/calls", brapiCtrl.Calls)
	b.GET("/observationunits", brapiCtrl.ObservationUnits)
	b.GET("/observations", brapiCtrl.Observations)
	b.POST("/observations", brapiCtrl.CreateObservations)
	b.GET("/variables", brapiCtrl.Variables)
	b.GET("/commoncropnames", brapiCtrl.CommonCropNames)

	return e
}
