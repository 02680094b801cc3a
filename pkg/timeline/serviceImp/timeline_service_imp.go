package serviceImp

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"smartfield/entities"
	obsRepo "smartfield/pkg/observation/repository"
	plotRepo "smartfield/pkg/plot/repository"
	schedRepo "smartfield/pkg/schedule/repository"
	"smartfield/pkg/status"
	"smartfield/pkg/timeline/repository"
	"smartfield/pkg/timeline/service"
)

type timelineSvc struct {
	plots     plotRepo.PlotRepository
	scheds    schedRepo.ScheduleRepository
	obs       obsRepo.ObservationRepository
	timelines repository.TimelineRepository
	policy    status.Policy
	now       func() time.Time

	// Serializes all timeline writers. Rebuild replaces the table per run,
	// and a manual correction committing between its read and its write
	// would be silently reverted, so SetActual takes the same lock.
	mu sync.Mutex
}

func New(plots plotRepo.PlotRepository, scheds schedRepo.ScheduleRepository,
	obs obsRepo.ObservationRepository, timelines repository.TimelineRepository,
	policy status.Policy) service.TimelineService {
	return &timelineSvc{
		plots:     plots,
		scheds:    scheds,
		obs:       obs,
		timelines: timelines,
		policy:    policy,
		now:       time.Now,
	}
}

func (s *timelineSvc) Rebuild(today time.Time, actor *string) (*service.Report, error) {
	if !s.mu.TryLock() {
		return nil, service.ErrRebuildInProgress
	}
	defer s.mu.Unlock()
	start := time.Now()

	offsets, err := s.scheds.ActiveOffsets()
	if err != nil {
		return nil, fmt.Errorf("load schedule: %w", err)
	}
	traits := make([]string, 0, len(offsets))
	for trait := range offsets {
		traits = append(traits, trait)
	}
	sort.Strings(traits)

	plots, _, err := s.plots.List("", "", 0, 0)
	if err != nil {
		return nil, fmt.Errorf("load plots: %w", err)
	}
	latest, err := s.obs.Latest()
	if err != nil {
		return nil, fmt.Errorf("load observations: %w", err)
	}
	existing, err := s.timelines.ListAll()
	if err != nil {
		return nil, fmt.Errorf("load timelines: %w", err)
	}
	prev := make(map[repository.Key]entities.TraitTimeline, len(existing))
	for _, row := range existing {
		prev[repository.Key{PlantID: row.PlantID, Trait: row.Trait}] = row
	}

	report := &service.Report{}
	var rows []entities.TraitTimeline
	for _, plot := range plots {
		if plot.PlantingDate == nil {
			report.SkippedPlots++
			continue
		}
		report.Plots++
		for _, trait := range traits {
			offset := offsets[trait]
			if offset < 0 {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("trait %q: negative offset %d, pair skipped", trait, offset))
				continue
			}
			expected := plot.PlantingDate.AddDate(0, 0, offset)

			var actual *time.Time
			if ob, ok := latest[obsRepo.Key{PlantID: plot.PlantID, Trait: trait}]; ok && ob.Value != "" {
				ts := ob.Timestamp
				actual = &ts
			}

			// Manual corrections on surviving pairs win over observation
			// timestamps; the note rides along unchanged.
			note := ""
			if old, ok := prev[repository.Key{PlantID: plot.PlantID, Trait: trait}]; ok {
				if old.ActualDate != nil {
					actual = old.ActualDate
				}
				note = old.Note
			}

			rows = append(rows, entities.TraitTimeline{
				PlantID:      plot.PlantID,
				Trait:        trait,
				ExpectedDate: &expected,
				ActualDate:   actual,
				StatusFlag:   string(status.Derive(s.policy, &expected, actual, today)),
				Note:         note,
				EnteredBy:    actor,
			})
		}
	}

	if err := s.timelines.Reconcile(rows); err != nil {
		return nil, fmt.Errorf("reconcile timelines: %w", err)
	}
	report.Rows = len(rows)
	report.TookMS = time.Since(start).Milliseconds()
	return report, nil
}

func (s *timelineSvc) SetActual(plantID, trait string, actualDate *time.Time, note *string, actor *string) (*entities.TraitTimeline, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timelines.Update(plantID, trait, func(row *entities.TraitTimeline) error {
		row.ActualDate = actualDate
		if note != nil {
			row.Note = *note
		}
		if actor != nil {
			row.EnteredBy = actor
		}
		row.StatusFlag = string(status.Derive(s.policy, row.ExpectedDate, row.ActualDate, s.now()))
		return nil
	})
}

func (s *timelineSvc) Matrix() (*service.Matrix, error) {
	rows, err := s.timelines.ListAll()
	if err != nil {
		return nil, err
	}
	traitSet := map[string]bool{}
	byPlant := map[string]map[string]string{}
	var plants []string
	for _, row := range rows {
		traitSet[row.Trait] = true
		if byPlant[row.PlantID] == nil {
			byPlant[row.PlantID] = map[string]string{}
			plants = append(plants, row.PlantID)
		}
		byPlant[row.PlantID][row.Trait] = status.Flag(row.StatusFlag).Symbol()
	}
	traits := make([]string, 0, len(traitSet))
	for t := range traitSet {
		traits = append(traits, t)
	}
	sort.Strings(traits)
	sort.Strings(plants)

	m := &service.Matrix{Traits: traits}
	for _, pid := range plants {
		flags := make(map[string]string, len(traits))
		for _, t := range traits {
			if sym, ok := byPlant[pid][t]; ok {
				flags[t] = sym
			} else {
				flags[t] = "-"
			}
		}
		m.Rows = append(m.Rows, service.MatrixRow{PlantID: pid, Flags: flags})
	}
	return m, nil
}
