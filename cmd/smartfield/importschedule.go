package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var importScheduleCmd = &cobra.Command{
	Use:   "import-schedule <file.csv>",
	Short: "Replace the trait schedule from a CSV file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := buildCore()

		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		batch, err := app.imports.ImportScheduleCSV(f, filepath.Base(args[0]), nil)
		if err != nil {
			return err
		}
		log.Printf("[schedule] loaded %d rows, rejected %d (batch %s)",
			batch.RowCount, batch.SkippedCount, batch.BatchID)
		for _, w := range batch.Warnings {
			log.Printf("[schedule] warn: %s", w)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importScheduleCmd)
}
