package main

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"smartfield/config"
	"smartfield/database"
	batchRepoImp "smartfield/pkg/importer/repositoryImp"
	importSvc "smartfield/pkg/importer/service"
	importSvcImp "smartfield/pkg/importer/serviceImp"
	obsRepoImp "smartfield/pkg/observation/repositoryImp"
	plotRepoImp "smartfield/pkg/plot/repositoryImp"
	schedRepoImp "smartfield/pkg/schedule/repositoryImp"
	tlRepoImp "smartfield/pkg/timeline/repositoryImp"
	tlSvc "smartfield/pkg/timeline/service"
	tlSvcImp "smartfield/pkg/timeline/serviceImp"
)

var rootCmd = &cobra.Command{
	Use:   "smartfield",
	Short: "Farm-trial data collection backend",
	Long: `SmartField collects per-plot trait observations, tracks which traits are
due or overdue against a per-crop schedule, and serves the data over a
BrAPI-compatible REST API.

  $ smartfield serve                      # run the HTTP server
  $ smartfield recompute                  # rebuild the trait timeline (cron entrypoint)
  $ smartfield import-schedule sched.csv  # replace the trait schedule from a CSV`,
	SilenceUsage: true,
}

// core bundles the wired services shared by the subcommands.
type core struct {
	db        *gorm.DB
	cfg       config.AppConfig
	timelines tlSvc.TimelineService
	imports   importSvc.ImportService
}

func buildCore() *core {
	cfg := config.Load()
	db := database.OpenSQLite(cfg.DBPath)

	plots := plotRepoImp.New(db)
	scheds := schedRepoImp.New(db)
	obs := obsRepoImp.New(db)
	tlRepo := tlRepoImp.New(db)
	batches := batchRepoImp.New(db)

	timelines := tlSvcImp.New(plots, scheds, obs, tlRepo, cfg.StatusPolicy)
	imports := importSvcImp.New(plots, obs, scheds, timelines, batches)

	return &core{db: db, cfg: cfg, timelines: timelines, imports: imports}
}
