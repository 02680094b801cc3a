package controllerImp

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"smartfield/pkg/status"
	"smartfield/pkg/timeline/repository"
	"smartfield/pkg/timeline/service"
)

type ExportCtrl struct {
	svc  service.TimelineService
	repo repository.TimelineRepository
}

func New(svc service.TimelineService, repo repository.TimelineRepository) *ExportCtrl {
	return &ExportCtrl{svc: svc, repo: repo}
}

// StatusCSV writes the plants-by-traits glyph matrix, the same table the
// dashboard heatmap shows.
func (h *ExportCtrl) StatusCSV(c echo.Context) error {
	m, err := h.svc.Matrix()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := append([]string{"plant_id"}, m.Traits...)
	if err := w.Write(header); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	for _, row := range m.Rows {
		rec := make([]string, 0, len(header))
		rec = append(rec, row.PlantID)
		for _, trait := range m.Traits {
			rec = append(rec, row.Flags[trait])
		}
		if err := w.Write(rec); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="trait_status.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// Fill colors per flag for the XLSX export.
var flagFills = map[string]string{
	string(status.Completed): "C6EFCE",
	string(status.DueSoon):   "FFEB9C",
	string(status.Overdue):   "FFC7CE",
	string(status.TooEarly):  "D9E1F2",
}

// StatusXLSX renders the same matrix as a colored spreadsheet.
func (h *ExportCtrl) StatusXLSX(c echo.Context) error {
	rows, err := h.repo.ListAll()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	m, err := h.svc.Matrix()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	flagByKey := map[repository.Key]string{}
	for _, row := range rows {
		flagByKey[repository.Key{PlantID: row.PlantID, Trait: row.Trait}] = row.StatusFlag
	}

	x := excelize.NewFile()
	defer x.Close()
	const sheet = "Trait Status"
	x.SetSheetName("Sheet1", sheet)

	styles := map[string]int{}
	for flag, color := range flagFills {
		id, err := x.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{color}},
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		styles[flag] = id
	}

	_ = x.SetCellValue(sheet, "A1", "plant_id")
	for j, trait := range m.Traits {
		col, _ := excelize.ColumnNumberToName(j + 2)
		_ = x.SetCellValue(sheet, col+"1", trait)
	}
	for i, row := range m.Rows {
		rowNo := i + 2
		_ = x.SetCellValue(sheet, fmt.Sprintf("A%d", rowNo), row.PlantID)
		for j, trait := range m.Traits {
			col, _ := excelize.ColumnNumberToName(j + 2)
			ref := fmt.Sprintf("%s%d", col, rowNo)
			_ = x.SetCellValue(sheet, ref, row.Flags[trait])
			if styleID, ok := styles[flagByKey[repository.Key{PlantID: row.PlantID, Trait: trait}]]; ok {
				_ = x.SetCellStyle(sheet, ref, ref, styleID)
			}
		}
	}

	var buf bytes.Buffer
	if err := x.Write(&buf); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="trait_status.xlsx"`)
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// TimelineCSV dumps the full timeline table.
func (h *ExportCtrl) TimelineCSV(c echo.Context) error {
	rows, err := h.repo.ListAll()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"plant_id", "trait", "expected_date", "actual_date", "status_flag", "note", "entered_by", "updated_on"})
	fmtDate := func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("2006-01-02")
	}
	for _, row := range rows {
		enteredBy := ""
		if row.EnteredBy != nil {
			enteredBy = *row.EnteredBy
		}
		rec := []string{
			row.PlantID, row.Trait,
			fmtDate(row.ExpectedDate), fmtDate(row.ActualDate),
			row.StatusFlag, row.Note, enteredBy,
			row.UpdatedOn.Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="trait_timeline.csv"`)
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
