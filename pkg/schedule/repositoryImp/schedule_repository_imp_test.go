package repositoryImp

import (
	"testing"

	"smartfield/database"
	"smartfield/entities"
	"smartfield/pkg/schedule/repository"
)

func newRepo(t *testing.T) repository.ScheduleRepository {
	t.Helper()
	return New(database.OpenSQLite(":memory:"))
}

func TestReplaceAllSwapsWholeSchedule(t *testing.T) {
	r := newRepo(t)
	if err := r.ReplaceAll([]entities.TraitSchedule{
		{Crop: "maize", Trait: "height", DaysAfterPlanting: 30, Active: true},
		{Crop: "maize", Trait: "vigor", DaysAfterPlanting: 60, Active: true},
	}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	if err := r.ReplaceAll([]entities.TraitSchedule{
		{Crop: "wheat", Trait: "tillering", DaysAfterPlanting: 20, Active: true},
	}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	rows, err := r.List("", false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].Trait != "tillering" {
		t.Fatalf("rows = %+v, want only tillering", rows)
	}
}

func TestListFiltersByCropAndActive(t *testing.T) {
	r := newRepo(t)
	if err := r.ReplaceAll([]entities.TraitSchedule{
		{Crop: "maize", Trait: "height", DaysAfterPlanting: 30, Active: true},
		{Crop: "maize", Trait: "vigor", DaysAfterPlanting: 60, Active: false},
		{Crop: "wheat", Trait: "tillering", DaysAfterPlanting: 20, Active: true},
	}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	rows, err := r.List("maize", true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 1 || rows[0].Trait != "height" {
		t.Fatalf("rows = %+v, want only active maize height", rows)
	}
}

func TestActiveOffsetsExcludesInactive(t *testing.T) {
	r := newRepo(t)
	if err := r.ReplaceAll([]entities.TraitSchedule{
		{Crop: "maize", Trait: "height", DaysAfterPlanting: 30, Active: true},
		{Crop: "maize", Trait: "vigor", DaysAfterPlanting: 60, Active: false},
	}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	offsets, err := r.ActiveOffsets()
	if err != nil {
		t.Fatalf("ActiveOffsets: %v", err)
	}
	if len(offsets) != 1 || offsets["height"] != 30 {
		t.Fatalf("offsets = %v, want map[height:30]", offsets)
	}
}

func TestSetActiveToggles(t *testing.T) {
	r := newRepo(t)
	if err := r.ReplaceAll([]entities.TraitSchedule{
		{Crop: "maize", Trait: "height", DaysAfterPlanting: 30, Active: true},
	}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	rows, err := r.List("", false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if err := r.SetActive(rows[0].ScheduleID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	offsets, err := r.ActiveOffsets()
	if err != nil {
		t.Fatalf("ActiveOffsets: %v", err)
	}
	if len(offsets) != 0 {
		t.Fatalf("offsets = %v, want empty after deactivation", offsets)
	}
}

func TestCropsAreDistinct(t *testing.T) {
	r := newRepo(t)
	if err := r.ReplaceAll([]entities.TraitSchedule{
		{Crop: "maize", Trait: "height", DaysAfterPlanting: 30, Active: true},
		{Crop: "maize", Trait: "vigor", DaysAfterPlanting: 60, Active: true},
		{Crop: "wheat", Trait: "tillering", DaysAfterPlanting: 20, Active: true},
	}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	crops, err := r.Crops()
	if err != nil {
		t.Fatalf("Crops: %v", err)
	}
	if len(crops) != 2 {
		t.Fatalf("crops = %v, want 2 distinct entries", crops)
	}
}
