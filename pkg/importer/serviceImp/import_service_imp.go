package serviceImp

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"smartfield/entities"
	batchRepo "smartfield/pkg/importer/repository"
	"smartfield/pkg/importer/service"
	obsRepo "smartfield/pkg/observation/repository"
	plotRepo "smartfield/pkg/plot/repository"
	schedRepo "smartfield/pkg/schedule/repository"
	"smartfield/pkg/status"
	timeline "smartfield/pkg/timeline/service"
)

// Columns of the wide trait sheet that are plot metadata, not traits.
var metaAliases = map[string][]string{
	"plant_id":      {"plant_id", "plantid", "plot_id", "plant", "id"},
	"planting_date": {"planting_date", "plantingdate", "planted", "date_planted"},
	"block":         {"block"},
	"row":           {"row"},
	"column":        {"column", "col"},
	"location":      {"location", "site", "location_name"},
}

type observationRow struct {
	PlantID string `validate:"required"`
	Trait   string `validate:"required"`
	Value   string `validate:"required"`
}

type scheduleRow struct {
	Crop  string `validate:"required"`
	Trait string `validate:"required"`
	Days  int    `validate:"gte=0"`
}

type importSvc struct {
	plots     plotRepo.PlotRepository
	obs       obsRepo.ObservationRepository
	scheds    schedRepo.ScheduleRepository
	timelines timeline.TimelineService
	batches   batchRepo.BatchRepository
	validate  *validator.Validate
	now       func() time.Time
}

func New(plots plotRepo.PlotRepository, obs obsRepo.ObservationRepository,
	scheds schedRepo.ScheduleRepository, timelines timeline.TimelineService,
	batches batchRepo.BatchRepository) service.ImportService {
	return &importSvc{
		plots:     plots,
		obs:       obs,
		scheds:    scheds,
		timelines: timelines,
		batches:   batches,
		validate:  validator.New(),
		now:       time.Now,
	}
}

// norm folds a header cell for comparison: BOM stripped, lowercased,
// separators removed.
func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func findColumn(header []string, aliases []string) int {
	for i, h := range header {
		for _, a := range aliases {
			if norm(h) == norm(a) {
				return i
			}
		}
	}
	return -1
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func (s *importSvc) ImportTraitCSV(r io.Reader, fileName string, actor *string) (*service.TraitResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	metaIdx := map[string]int{}
	isMeta := map[int]bool{}
	for name, aliases := range metaAliases {
		idx := findColumn(header, aliases)
		metaIdx[name] = idx
		if idx >= 0 {
			isMeta[idx] = true
		}
	}
	if metaIdx["plant_id"] < 0 {
		return nil, errors.New("trait csv: no plant_id column")
	}

	type traitCol struct {
		idx  int
		name string
	}
	var traitCols []traitCol
	for i, h := range header {
		if !isMeta[i] && strings.TrimSpace(h) != "" {
			traitCols = append(traitCols, traitCol{i, strings.TrimSpace(h)})
		}
	}

	offsets, err := s.scheds.ActiveOffsets()
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}

	batch := entities.ImportBatch{
		BatchID:   uuid.NewString(),
		Kind:      "traits",
		FileName:  fileName,
		CreatedBy: actor,
		CreatedAt: s.now(),
	}
	result := &service.TraitResult{TraitSummary: map[string]map[string]int{}}
	today := s.now()
	var plotsToUpsert []entities.FieldPlot
	plotStatus := map[string]string{}

	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++

		pid := cell(rec, metaIdx["plant_id"])
		if pid == "" {
			s.warn(&batch, fmt.Sprintf("line %d: missing plant_id, row skipped", line))
			continue
		}

		plot := entities.FieldPlot{
			PlantID:  pid,
			Block:    cell(rec, metaIdx["block"]),
			Row:      cell(rec, metaIdx["row"]),
			Column:   cell(rec, metaIdx["column"]),
			Location: cell(rec, metaIdx["location"]),
		}
		if raw := cell(rec, metaIdx["planting_date"]); raw != "" {
			d, err := time.Parse("2006-01-02", raw)
			if err != nil {
				s.warn(&batch, fmt.Sprintf("line %d: bad planting_date %q, plot kept without one", line, raw))
			} else {
				plot.PlantingDate = &d
			}
		}

		recorded := 0
		for _, tc := range traitCols {
			value := cell(rec, tc.idx)
			flag := s.previewFlag(value, plot.PlantingDate, offsets, tc.name, today)
			bucket := result.TraitSummary[tc.name]
			if bucket == nil {
				bucket = map[string]int{}
				result.TraitSummary[tc.name] = bucket
			}
			bucket[string(flag)]++

			if value == "" {
				continue
			}
			row := observationRow{PlantID: pid, Trait: tc.name, Value: value}
			if err := s.validate.Struct(row); err != nil {
				s.warn(&batch, fmt.Sprintf("line %d: trait %s: %v", line, tc.name, err))
				continue
			}
			if err := s.obs.UpsertLatest(&entities.PlantTraitData{
				PlantID:    pid,
				Trait:      tc.name,
				Value:      value,
				UploadedBy: actor,
			}); err != nil {
				return nil, fmt.Errorf("save observation: %w", err)
			}
			recorded++
		}

		switch {
		case len(traitCols) > 0 && recorded == len(traitCols):
			result.PlotsComplete++
			plotStatus[pid] = "complete"
		case recorded == 0:
			result.PlotsEmpty++
			plotStatus[pid] = "empty"
		default:
			result.PlotsPartial++
			plotStatus[pid] = "partial"
		}
		plotsToUpsert = append(plotsToUpsert, plot)
		batch.RowCount++
	}

	if err := s.plots.UpsertBatch(plotsToUpsert); err != nil {
		return nil, fmt.Errorf("save plots: %w", err)
	}
	for pid, st := range plotStatus {
		if err := s.plots.SetStatus(pid, st); err != nil {
			return nil, fmt.Errorf("save plot status: %w", err)
		}
	}
	if err := s.batches.Save(&batch); err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}

	report, err := s.timelines.Rebuild(today, actor)
	if err != nil {
		return nil, fmt.Errorf("rebuild timelines: %w", err)
	}
	result.Batch = batch
	result.Rebuild = report
	return result, nil
}

// previewFlag mirrors the upload screen: a recorded value reads as done, an
// empty cell is flagged by how far today is from the expected date.
func (s *importSvc) previewFlag(value string, planting *time.Time, offsets map[string]int, trait string, today time.Time) status.Flag {
	if value != "" {
		return status.Completed
	}
	var expected *time.Time
	if offset, ok := offsets[trait]; ok && planting != nil {
		e := planting.AddDate(0, 0, offset)
		expected = &e
	}
	return status.Derive(status.PolicyWindowed, expected, nil, today)
}

func (s *importSvc) ImportScheduleCSV(r io.Reader, fileName string, actor *string) (*entities.ImportBatch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cCrop := findColumn(header, []string{"crop"})
	cTrait := findColumn(header, []string{"trait"})
	cDays := findColumn(header, []string{"days_after_planting", "days", "offset", "offset_days"})
	cActive := findColumn(header, []string{"active"})
	if cTrait < 0 || cDays < 0 {
		return nil, errors.New("schedule csv: need trait and days_after_planting columns")
	}

	batch := entities.ImportBatch{
		BatchID:   uuid.NewString(),
		Kind:      "schedule",
		FileName:  fileName,
		CreatedBy: actor,
		CreatedAt: s.now(),
	}
	var rows []entities.TraitSchedule
	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++

		days, err := strconv.Atoi(cell(rec, cDays))
		if err != nil {
			s.warn(&batch, fmt.Sprintf("line %d: non-numeric offset %q, row rejected", line, cell(rec, cDays)))
			continue
		}
		row := scheduleRow{Crop: cell(rec, cCrop), Trait: cell(rec, cTrait), Days: days}
		if row.Crop == "" {
			row.Crop = "default"
		}
		if err := s.validate.Struct(row); err != nil {
			s.warn(&batch, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		rows = append(rows, entities.TraitSchedule{
			Crop:              row.Crop,
			Trait:             row.Trait,
			DaysAfterPlanting: row.Days,
			Active:            parseActive(cell(rec, cActive)),
		})
		batch.RowCount++
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("schedule csv: no valid rows (%d rejected)", batch.SkippedCount)
	}
	if err := s.scheds.ReplaceAll(rows); err != nil {
		return nil, fmt.Errorf("replace schedule: %w", err)
	}
	if err := s.batches.Save(&batch); err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}
	return &batch, nil
}

func parseActive(raw string) bool {
	if raw == "" {
		return true
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

func (s *importSvc) ImportSnapshotCSV(plantID string, r io.Reader, fileName string, actor *string) (*entities.ImportBatch, error) {
	if _, err := s.plots.FindByID(plantID); err != nil {
		return nil, fmt.Errorf("plot %s: %w", plantID, err)
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cTrait := findColumn(header, []string{"trait"})
	cValue := findColumn(header, []string{"value"})
	if cTrait < 0 || cValue < 0 {
		return nil, errors.New("snapshot csv: need trait and value columns")
	}

	batch := entities.ImportBatch{
		BatchID:   uuid.NewString(),
		Kind:      "snapshot",
		FileName:  fileName,
		CreatedBy: actor,
		CreatedAt: s.now(),
	}
	line := 1
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++

		row := observationRow{PlantID: plantID, Trait: cell(rec, cTrait), Value: cell(rec, cValue)}
		if err := s.validate.Struct(row); err != nil {
			s.warn(&batch, fmt.Sprintf("line %d: %v", line, err))
			continue
		}
		if err := s.obs.UpsertLatest(&entities.PlantTraitData{
			PlantID:    plantID,
			Trait:      row.Trait,
			Value:      row.Value,
			UploadedBy: actor,
		}); err != nil {
			return nil, fmt.Errorf("save observation: %w", err)
		}
		batch.RowCount++
	}
	if err := s.batches.Save(&batch); err != nil {
		return nil, fmt.Errorf("save batch: %w", err)
	}
	return &batch, nil
}

const maxStoredWarnings = 50

func (s *importSvc) warn(b *entities.ImportBatch, msg string) {
	b.SkippedCount++
	if len(b.Warnings) < maxStoredWarnings {
		b.Warnings = append(b.Warnings, msg)
	}
}

func (s *importSvc) Batches(page, pageSize int) ([]entities.ImportBatch, int64, error) {
	return s.batches.List(page, pageSize)
}

func (s *importSvc) Batch(batchID string) (*entities.ImportBatch, error) {
	return s.batches.Find(batchID)
}
