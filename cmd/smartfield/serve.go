package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"smartfield/router"

	authCtrlImp "smartfield/pkg/auth/controllerImp"
	brapiCtrlImp "smartfield/pkg/brapi/controllerImp"
	exportCtrlImp "smartfield/pkg/export/controllerImp"
	healthCtrlImp "smartfield/pkg/health/controllerImp"
	importCtrlImp "smartfield/pkg/importer/controllerImp"
	insightsCtrlImp "smartfield/pkg/insights/controllerImp"
	obsCtrlImp "smartfield/pkg/observation/controllerImp"
	obsRepoImp "smartfield/pkg/observation/repositoryImp"
	plotCtrlImp "smartfield/pkg/plot/controllerImp"
	plotRepoImp "smartfield/pkg/plot/repositoryImp"
	schedCtrlImp "smartfield/pkg/schedule/controllerImp"
	schedRepoImp "smartfield/pkg/schedule/repositoryImp"
	tlCtrlImp "smartfield/pkg/timeline/controllerImp"
	tlRepoImp "smartfield/pkg/timeline/repositoryImp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := buildCore()

		plots := plotRepoImp.New(app.db)
		scheds := schedRepoImp.New(app.db)
		obs := obsRepoImp.New(app.db)
		tlRepo := tlRepoImp.New(app.db)

		e := echo.New()
		e.HideBanner = true
		e.Use(echoMiddleware.Recover())
		e.Use(echoMiddleware.Logger())

		r := router.New(
			e,
			app.cfg.JWTSecret,
			app.cfg.RequireAuth,
			authCtrlImp.New(app.db, app.cfg.JWTSecret),
			plotCtrlImp.New(plots),
			schedCtrlImp.New(scheds),
			obsCtrlImp.New(obs),
			tlCtrlImp.New(app.timelines, tlRepo),
			importCtrlImp.New(app.imports),
			exportCtrlImp.New(app.timelines, tlRepo),
			brapiCtrlImp.New(plots, obs, scheds),
			insightsCtrlImp.New(obs, tlRepo),
			healthCtrlImp.NewHealthCtrl(app.db),
		)

		log.Printf("listening on :%s", app.cfg.Port)
		return r.Start(":" + app.cfg.Port)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
