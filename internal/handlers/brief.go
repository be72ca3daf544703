package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/briefmate/briefmate/internal/dto"
	apierrors "github.com/briefmate/briefmate/internal/errors"
	"github.com/briefmate/briefmate/internal/export"
	"github.com/briefmate/briefmate/internal/filters"
	"github.com/briefmate/briefmate/internal/middleware"
	"github.com/briefmate/briefmate/internal/repository"
	"github.com/briefmate/briefmate/internal/services"
	"github.com/briefmate/briefmate/internal/utils"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// BriefHandler serves brief listing, CRUD and the single-brief PDF
type BriefHandler struct {
	briefService *services.BriefService
	loc          *time.Location
	now          func() time.Time
}

// NewBriefHandler creates a BriefHandler rendering dates in loc
func NewBriefHandler(briefService *services.BriefService, loc *time.Location) *BriefHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &BriefHandler{
		briefService: briefService,
		loc:          loc,
		now:          time.Now,
	}
}

type briefRequest struct {
	Title          string   `json:"title" binding:"required,max=255"`
	Description    string   `json:"description"`
	Status         string   `json:"status"`
	Priority       string   `json:"priority"`
	Deadline       string   `json:"deadline"`
	Budget         *float64 `json:"budget" binding:"omitempty,gte=0"`
	EstimatedHours *float64 `json:"estimated_hours" binding:"omitempty,gte=0"`
	ClientID       *uint64  `json:"client_id"`
}

func (r briefRequest) input() services.BriefInput {
	return services.BriefInput{
		Title:          r.Title,
		Description:    r.Description,
		Status:         r.Status,
		Priority:       r.Priority,
		Deadline:       r.Deadline,
		Budget:         r.Budget,
		EstimatedHours: r.EstimatedHours,
		ClientID:       r.ClientID,
	}
}

// ListBriefs returns the user's briefs matching the query filters.
// Unknown filter values are ignored and an unknown sort falls back to newest first.
func (h *BriefHandler) ListBriefs(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	opts := repository.BriefListOptions{
		Filter:     briefFilterFromQuery(c),
		Sort:       filters.ParseBriefSort(c.Query("sort")),
		Pagination: utils.OptionalPaginationParams(c),
	}

	briefs, total, err := h.briefService.ListBriefs(userID, opts)
	if err != nil {
		respondBriefError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBriefListResponse(briefs, total, opts.Pagination, opts.Sort.String()))
}

// GetBrief returns the brief loaded by RequireBriefAccess with its client and tasks
func (h *BriefHandler) GetBrief(c *gin.Context) {
	brief, ok := middleware.GetBrief(c)
	if !ok {
		apierrors.InternalError(c, "Brief not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToBriefDTO(*brief))
}

func (h *BriefHandler) CreateBrief(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req briefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	brief, err := h.briefService.CreateBrief(userID, req.input())
	if err != nil {
		respondBriefError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBriefDTO(*brief))
}

// UpdateBrief replaces the editable fields of a brief
func (h *BriefHandler) UpdateBrief(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	briefID, ok := parseIDParam(c, "id", "brief")
	if !ok {
		return
	}

	var req briefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	brief, err := h.briefService.UpdateBrief(userID, briefID, req.input())
	if err != nil {
		respondBriefError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBriefDTO(*brief))
}

// DeleteBrief removes a brief and its tasks
func (h *BriefHandler) DeleteBrief(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	briefID, ok := parseIDParam(c, "id", "brief")
	if !ok {
		return
	}

	if err := h.briefService.DeleteBrief(userID, briefID); err != nil {
		respondBriefError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Brief deleted successfully"})
}

// ExportBriefPDF renders the brief loaded by RequireBriefAccess as a PDF download
func (h *BriefHandler) ExportBriefPDF(c *gin.Context) {
	brief, ok := middleware.GetBrief(c)
	if !ok {
		apierrors.InternalError(c, "Brief not found in context")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteBriefPDF(&buf, brief, h.now().In(h.loc)); err != nil {
		log.Error("failed to render brief pdf", "brief_id", brief.ID, "err", err)
		apierrors.InternalError(c, "Failed to generate PDF")
		return
	}

	filename := fmt.Sprintf("brief-%d.pdf", brief.ID)
	c.Header("Content-Disposition", utils.AttachmentHeader(filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func respondBriefError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBriefNotFound):
		apierrors.NotFound(c, "Brief not found")
	case errors.Is(err, services.ErrBriefTitleRequired),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidDeadline),
		errors.Is(err, services.ErrNegativeAmount),
		errors.Is(err, services.ErrClientNotOwned):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Error("brief request failed", "err", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
