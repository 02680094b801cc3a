package database

import (
	"fmt"
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"smartfield/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	// Run the dedupe BEFORE AutoMigrate: creating the unique index on
	// (plant_id, trait) fails if an older database still has duplicates.
	if err := migrateTimelineDedupe(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.FieldPlot{},
		&entities.TraitSchedule{},
		&entities.PlantTraitData{},
		&entities.TraitTimeline{},
		&entities.ImportBatch{},
		&entities.User{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}

// migrateTimelineDedupe drops all but the newest trait_timelines row per
// (plant_id, trait). Databases written before the unique index existed can
// hold duplicates from interrupted rebuilds.
func migrateTimelineDedupe(db *gorm.DB) error {
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='trait_timelines'`).Scan(&tbl).Error; err != nil {
		return fmt.Errorf("check table exist: %w", err)
	}
	if tbl == "" {
		// fresh DB, nothing to do
		return nil
	}

	var dupes int64
	if err := db.Raw(`
SELECT count(*) FROM trait_timelines t
WHERE t.id NOT IN (
    SELECT max(id) FROM trait_timelines GROUP BY plant_id, trait
)`).Scan(&dupes).Error; err != nil {
		return fmt.Errorf("count duplicates: %w", err)
	}
	if dupes == 0 {
		return nil
	}

	log.Printf("[db] removing %d duplicate timeline rows", dupes)
	return db.Transaction(func(tx *gorm.DB) error {
		return tx.Exec(`
DELETE FROM trait_timelines
WHERE id NOT IN (
    SELECT max(id) FROM trait_timelines GROUP BY plant_id, trait
)`).Error
	})
}
