package handlers

import (
	"bytes"
	"net/http"
	"time"

	apierrors "github.com/briefmate/briefmate/internal/errors"
	"github.com/briefmate/briefmate/internal/export"
	"github.com/briefmate/briefmate/internal/services"
	"github.com/briefmate/briefmate/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// ExportHandler serves the filtered brief exports. Every format takes the
// listing filters; ordering is always newest first.
type ExportHandler struct {
	exportService *services.ExportService
	loc           *time.Location
	now           func() time.Time
}

// NewExportHandler creates an ExportHandler rendering dates in loc
func NewExportHandler(exportService *services.ExportService, loc *time.Location) *ExportHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ExportHandler{
		exportService: exportService,
		loc:           loc,
		now:           time.Now,
	}
}

// rows loads the export rows for the request, answering on failure
func (h *ExportHandler) rows(c *gin.Context) ([]export.Row, bool) {
	userID, ok := requireUser(c)
	if !ok {
		return nil, false
	}

	rows, err := h.exportService.Rows(userID, briefFilterFromQuery(c))
	if err != nil {
		log.Error("failed to load export rows", "user_id", userID, "err", err)
		apierrors.InternalError(c, "Failed to export briefs")
		return nil, false
	}
	return rows, true
}

// ExportJSON returns the export rows as JSON
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	rows, ok := h.rows(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"briefs": rows,
		"count":  len(rows),
	})
}

// ExportCSV returns the export rows as a CSV download
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, ok := h.rows(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, rows, h.loc); err != nil {
		log.Error("failed to render csv export", "err", err)
		apierrors.InternalError(c, "Failed to generate CSV")
		return
	}

	c.Header("Content-Disposition", utils.AttachmentHeader(utils.ExportFilename(h.now().In(h.loc), "csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportPDF returns the export rows as a PDF table download
func (h *ExportHandler) ExportPDF(c *gin.Context) {
	rows, ok := h.rows(c)
	if !ok {
		return
	}

	now := h.now().In(h.loc)

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, rows, now); err != nil {
		log.Error("failed to render pdf export", "err", err)
		apierrors.InternalError(c, "Failed to generate PDF")
		return
	}

	c.Header("Content-Disposition", utils.AttachmentHeader(utils.ExportFilename(now, "pdf")))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
