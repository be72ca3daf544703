package handlers

import (
	"errors"
	"net/http"

	"github.com/briefmate/briefmate/internal/dto"
	apierrors "github.com/briefmate/briefmate/internal/errors"
	"github.com/briefmate/briefmate/internal/services"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// TemplateHandler serves brief templates and their instantiation
type TemplateHandler struct {
	templateService *services.TemplateService
}

func NewTemplateHandler(templateService *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type templateRequest struct {
	Name           string   `json:"name" binding:"required,max=255"`
	Description    string   `json:"description"`
	Priority       string   `json:"priority"`
	EstimatedHours *float64 `json:"estimated_hours" binding:"omitempty,gte=0"`
	Tasks          []string `json:"tasks" binding:"max=50"`
}

type useTemplateRequest struct {
	Title    string   `json:"title" binding:"max=255"`
	ClientID *uint64  `json:"client_id"`
	Deadline string   `json:"deadline"`
	Budget   *float64 `json:"budget" binding:"omitempty,gte=0"`
}

func (r templateRequest) input() services.TemplateInput {
	return services.TemplateInput{
		Name:           r.Name,
		Description:    r.Description,
		Priority:       r.Priority,
		EstimatedHours: r.EstimatedHours,
		Tasks:          r.Tasks,
	}
}

// ListTemplates returns the user's templates, newest first
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	templates, err := h.templateService.ListTemplates(userID)
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"templates": dto.ToTemplateDTOs(templates)})
}

func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "id", "template")
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplate(userID, templateID)
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateDTO(*template))
}

func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	template, err := h.templateService.CreateTemplate(userID, req.input())
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTemplateDTO(*template))
}

func (h *TemplateHandler) UpdateTemplate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "id", "template")
	if !ok {
		return
	}

	var req templateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	template, err := h.templateService.UpdateTemplate(userID, templateID, req.input())
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTemplateDTO(*template))
}

func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "id", "template")
	if !ok {
		return
	}

	if err := h.templateService.DeleteTemplate(userID, templateID); err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Template deleted successfully"})
}

// UseTemplate creates a draft brief from a template. An empty body is
// accepted and titles the brief after the template.
func (h *TemplateHandler) UseTemplate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	templateID, ok := parseIDParam(c, "id", "template")
	if !ok {
		return
	}

	var req useTemplateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			apierrors.BindingError(c, err)
			return
		}
	}

	brief, err := h.templateService.UseTemplate(userID, templateID, services.UseTemplateInput{
		Title:    req.Title,
		ClientID: req.ClientID,
		Deadline: req.Deadline,
		Budget:   req.Budget,
	})
	if err != nil {
		respondTemplateError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBriefDTO(*brief))
}

func respondTemplateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTemplateNotFound):
		apierrors.NotFound(c, "Template not found")
	case errors.Is(err, services.ErrTemplateNameRequired),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrInvalidDeadline),
		errors.Is(err, services.ErrNegativeAmount),
		errors.Is(err, services.ErrClientNotOwned):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Error("template request failed", "err", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
