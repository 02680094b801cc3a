package serviceImp

import (
	"strings"
	"testing"
	"time"

	"smartfield/database"
	"smartfield/entities"
	batchRepoImp "smartfield/pkg/importer/repositoryImp"
	"smartfield/pkg/importer/service"
	obsRepo "smartfield/pkg/observation/repository"
	obsRepoImp "smartfield/pkg/observation/repositoryImp"
	plotRepo "smartfield/pkg/plot/repository"
	plotRepoImp "smartfield/pkg/plot/repositoryImp"
	schedRepo "smartfield/pkg/schedule/repository"
	schedRepoImp "smartfield/pkg/schedule/repositoryImp"
	"smartfield/pkg/status"
	tlRepoImp "smartfield/pkg/timeline/repositoryImp"
	tlSvcImp "smartfield/pkg/timeline/serviceImp"
)

type deps struct {
	svc    service.ImportService
	plots  plotRepo.PlotRepository
	obs    obsRepo.ObservationRepository
	scheds schedRepo.ScheduleRepository
}

func newDeps(t *testing.T) *deps {
	t.Helper()
	db := database.OpenSQLite(":memory:")
	plots := plotRepoImp.New(db)
	scheds := schedRepoImp.New(db)
	obs := obsRepoImp.New(db)
	timelines := tlSvcImp.New(plots, scheds, obs, tlRepoImp.New(db), status.PolicySimple)
	svc := New(plots, obs, scheds, timelines, batchRepoImp.New(db))
	return &deps{svc: svc, plots: plots, obs: obs, scheds: scheds}
}

func TestNormFoldsHeaderVariants(t *testing.T) {
	cases := map[string]string{
		"\uFEFFPlant_ID":  "plantid",
		" Planting Date ": "plantingdate",
		"days-after":      "daysafter",
		"COL":             "col",
	}
	for in, want := range cases {
		if got := norm(in); got != want {
			t.Errorf("norm(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestImportTraitCSVAliasedHeaders(t *testing.T) {
	d := newDeps(t)
	if err := d.scheds.ReplaceAll([]entities.TraitSchedule{
		{Crop: "default", Trait: "height", DaysAfterPlanting: 30, Active: true},
	}); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}

	csv := "\uFEFFPlot ID,Planted,Site,height\n" +
		"P1,2025-01-01,north,42.5\n" +
		"P2,2025-01-10,north,\n"
	res, err := d.svc.ImportTraitCSV(strings.NewReader(csv), "traits.csv", nil)
	if err != nil {
		t.Fatalf("ImportTraitCSV: %v", err)
	}

	if res.Batch.RowCount != 2 || res.Batch.SkippedCount != 0 {
		t.Fatalf("batch = %+v, want 2 rows and 0 skipped", res.Batch)
	}
	if res.PlotsComplete != 1 || res.PlotsEmpty != 1 {
		t.Errorf("complete=%d empty=%d, want 1 and 1", res.PlotsComplete, res.PlotsEmpty)
	}

	plot, err := d.plots.FindByID("P1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if plot.PlantingDate == nil || plot.PlantingDate.Format("2006-01-02") != "2025-01-01" {
		t.Errorf("planting date = %v, want 2025-01-01", plot.PlantingDate)
	}
	if plot.Location != "north" {
		t.Errorf("location = %q, want north", plot.Location)
	}

	latest, err := d.obs.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	ob, ok := latest[obsRepo.Key{PlantID: "P1", Trait: "height"}]
	if !ok || ob.Value != "42.5" {
		t.Errorf("observation = %+v, want value 42.5", ob)
	}

	if res.Rebuild == nil || res.Rebuild.Rows != 2 {
		t.Errorf("rebuild report = %+v, want 2 rows", res.Rebuild)
	}
}

func TestImportTraitCSVSkipsRowsWithoutPlantID(t *testing.T) {
	d := newDeps(t)
	csv := "plant_id,height\n" +
		",10\n" +
		"P1,11\n"
	res, err := d.svc.ImportTraitCSV(strings.NewReader(csv), "traits.csv", nil)
	if err != nil {
		t.Fatalf("ImportTraitCSV: %v", err)
	}
	if res.Batch.RowCount != 1 || res.Batch.SkippedCount != 1 {
		t.Fatalf("batch = %+v, want 1 row and 1 skipped", res.Batch)
	}
	if len(res.Batch.Warnings) != 1 {
		t.Errorf("warnings = %v, want one entry", res.Batch.Warnings)
	}
}

func TestImportTraitCSVRejectsMissingPlantIDColumn(t *testing.T) {
	d := newDeps(t)
	if _, err := d.svc.ImportTraitCSV(strings.NewReader("height,vigor\n1,2\n"), "x.csv", nil); err == nil {
		t.Fatal("expected error for csv without plant_id column")
	}
}

func TestImportTraitCSVBadPlantingDateKeepsPlot(t *testing.T) {
	d := newDeps(t)
	csv := "plant_id,planting_date,height\n" +
		"P1,01/02/2025,7\n"
	res, err := d.svc.ImportTraitCSV(strings.NewReader(csv), "traits.csv", nil)
	if err != nil {
		t.Fatalf("ImportTraitCSV: %v", err)
	}
	if res.Batch.RowCount != 1 {
		t.Fatalf("row count = %d, want 1", res.Batch.RowCount)
	}
	if len(res.Batch.Warnings) == 0 {
		t.Error("no warning for unparseable planting date")
	}
	plot, err := d.plots.FindByID("P1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if plot.PlantingDate != nil {
		t.Errorf("planting date = %v, want nil", plot.PlantingDate)
	}
}

func TestImportTraitCSVReimportKeepsStoredPlantingDate(t *testing.T) {
	d := newDeps(t)
	first := "plant_id,planting_date,height\nP1,2025-01-01,7\n"
	if _, err := d.svc.ImportTraitCSV(strings.NewReader(first), "a.csv", nil); err != nil {
		t.Fatalf("first import: %v", err)
	}

	second := "plant_id,planting_date,height\nP1,01/02/2025,8\n"
	res, err := d.svc.ImportTraitCSV(strings.NewReader(second), "b.csv", nil)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if len(res.Batch.Warnings) == 0 {
		t.Error("no warning for unparseable planting date on re-import")
	}

	plot, err := d.plots.FindByID("P1")
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if plot.PlantingDate == nil || plot.PlantingDate.Format("2006-01-02") != "2025-01-01" {
		t.Errorf("planting date = %v, want the stored 2025-01-01 kept", plot.PlantingDate)
	}
}

func TestImportTraitCSVSummaryCountsPreviewFlags(t *testing.T) {
	d := newDeps(t)
	if err := d.scheds.ReplaceAll([]entities.TraitSchedule{
		{Crop: "default", Trait: "height", DaysAfterPlanting: 10000, Active: true},
	}); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
	planted := time.Now().UTC().Format("2006-01-02")
	csv := "plant_id,planting_date,height\n" +
		"P1," + planted + ",5\n" +
		"P2," + planted + ",\n"
	res, err := d.svc.ImportTraitCSV(strings.NewReader(csv), "traits.csv", nil)
	if err != nil {
		t.Fatalf("ImportTraitCSV: %v", err)
	}
	summary := res.TraitSummary["height"]
	if summary[string(status.Completed)] != 1 {
		t.Errorf("completed = %d, want 1", summary[string(status.Completed)])
	}
	if summary[string(status.TooEarly)] != 1 {
		t.Errorf("too early = %d, want 1 (expected date far in the future)", summary[string(status.TooEarly)])
	}
}

func TestImportScheduleCSVReplacesAndRejects(t *testing.T) {
	d := newDeps(t)
	if err := d.scheds.ReplaceAll([]entities.TraitSchedule{
		{Crop: "default", Trait: "old_trait", DaysAfterPlanting: 5, Active: true},
	}); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}

	csv := "crop,trait,days_after_planting,active\n" +
		"maize,height,30,true\n" +
		",vigor,60,\n" +
		"maize,broken,soon,true\n"
	batch, err := d.svc.ImportScheduleCSV(strings.NewReader(csv), "sched.csv", nil)
	if err != nil {
		t.Fatalf("ImportScheduleCSV: %v", err)
	}
	if batch.RowCount != 2 || batch.SkippedCount != 1 {
		t.Fatalf("batch = %+v, want 2 rows and 1 rejected", batch)
	}

	rows, err := d.scheds.List("", false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("schedule has %d rows, want 2 (old rows replaced)", len(rows))
	}
	offsets, err := d.scheds.ActiveOffsets()
	if err != nil {
		t.Fatalf("ActiveOffsets: %v", err)
	}
	if offsets["vigor"] != 60 {
		t.Errorf("vigor offset = %d, want 60 (blank crop defaults)", offsets["vigor"])
	}
	if _, ok := offsets["old_trait"]; ok {
		t.Error("old_trait survived the replace")
	}
}

func TestImportScheduleCSVAllRowsInvalid(t *testing.T) {
	d := newDeps(t)
	csv := "crop,trait,days_after_planting\nmaize,height,soon\n"
	if _, err := d.svc.ImportScheduleCSV(strings.NewReader(csv), "sched.csv", nil); err == nil {
		t.Fatal("expected error when every row is rejected")
	}
}

func TestImportSnapshotCSVUnknownPlot(t *testing.T) {
	d := newDeps(t)
	csv := "trait,value\nheight,12\n"
	if _, err := d.svc.ImportSnapshotCSV("nope", strings.NewReader(csv), "snap.csv", nil); err == nil {
		t.Fatal("expected error for unknown plot")
	}
}

func TestImportSnapshotCSVUpsertsObservations(t *testing.T) {
	d := newDeps(t)
	if err := d.plots.UpsertBatch([]entities.FieldPlot{{PlantID: "P1"}}); err != nil {
		t.Fatalf("seed plot: %v", err)
	}

	csv := "trait,value\nheight,12\nvigor,\n"
	batch, err := d.svc.ImportSnapshotCSV("P1", strings.NewReader(csv), "snap.csv", nil)
	if err != nil {
		t.Fatalf("ImportSnapshotCSV: %v", err)
	}
	if batch.RowCount != 1 || batch.SkippedCount != 1 {
		t.Fatalf("batch = %+v, want 1 row and 1 skipped (empty value)", batch)
	}
	latest, err := d.obs.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if ob := latest[obsRepo.Key{PlantID: "P1", Trait: "height"}]; ob.Value != "12" {
		t.Errorf("value = %q, want 12", ob.Value)
	}
}
