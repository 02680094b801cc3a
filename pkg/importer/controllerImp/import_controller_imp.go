package controllerImp

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"smartfield/pkg/importer/service"
	"smartfield/pkg/middleware"
)

type ImportCtrl struct{ svc service.ImportService }

func New(svc service.ImportService) *ImportCtrl { return &ImportCtrl{svc} }

func formFile(c echo.Context) (multipart.File, string, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, "", err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", err
	}
	return f, fh.Filename, nil
}

func (h *ImportCtrl) UploadTraitCSV(c echo.Context) error {
	f, name, err := formFile(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no file uploaded"})
	}
	defer f.Close()

	result, err := h.svc.ImportTraitCSV(f, name, middleware.Actor(c))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}

func (h *ImportCtrl) UploadScheduleCSV(c echo.Context) error {
	f, name, err := formFile(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no file uploaded"})
	}
	defer f.Close()

	batch, err := h.svc.ImportScheduleCSV(f, name, middleware.Actor(c))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, batch)
}

func (h *ImportCtrl) UploadSnapshotCSV(c echo.Context) error {
	f, name, err := formFile(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no file uploaded"})
	}
	defer f.Close()

	batch, err := h.svc.ImportSnapshotCSV(c.Param("id"), f, name, middleware.Actor(c))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, batch)
}

func (h *ImportCtrl) ListBatches(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, err := strconv.Atoi(c.QueryParam("pageSize"))
	if err != nil || pageSize <= 0 {
		pageSize = 50
	}
	batches, total, err := h.svc.Batches(page, pageSize)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"total": total, "page": page, "data": batches})
}

func (h *ImportCtrl) GetBatch(c echo.Context) error {
	b, err := h.svc.Batch(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "batch not found"})
	}
	return c.JSON(http.StatusOK, b)
}
