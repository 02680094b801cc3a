package main

import (
	"log"
	"time"

	"github.com/spf13/cobra"
)

// recomputeCmd is the out-of-process entrypoint for scheduled rebuilds: run
// it from cron instead of keeping a scheduler in the server.
var recomputeCmd = &cobra.Command{
	Use:   "recompute",
	Short: "Rebuild the trait timeline from plots, schedule and observations",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := buildCore()

		report, err := app.timelines.Rebuild(time.Now(), nil)
		if err != nil {
			return err
		}
		log.Printf("[recompute] rows=%d plots=%d skipped_plots=%d took=%dms",
			report.Rows, report.Plots, report.SkippedPlots, report.TookMS)
		for _, w := range report.Warnings {
			log.Printf("[recompute] warn: %s", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recomputeCmd)
}
