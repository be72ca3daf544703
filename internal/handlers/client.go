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

// ClientHandler serves the client book of the session user
type ClientHandler struct {
	clientService *services.ClientService
}

func NewClientHandler(clientService *services.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type clientRequest struct {
	Name    string `json:"name" binding:"required,max=255"`
	Email   string `json:"email" binding:"omitempty,email,max=255"`
	Phone   string `json:"phone" binding:"max=50"`
	Company string `json:"company" binding:"max=255"`
	Notes   string `json:"notes"`
}

func (r clientRequest) input() services.ClientInput {
	return services.ClientInput{
		Name:    r.Name,
		Email:   r.Email,
		Phone:   r.Phone,
		Company: r.Company,
		Notes:   r.Notes,
	}
}

// ListClients returns the user's clients ordered by name
func (h *ClientHandler) ListClients(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	clients, err := h.clientService.ListClients(userID)
	if err != nil {
		respondClientError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": dto.ToClientDTOs(clients)})
}

// GetClient returns a client with its briefs
func (h *ClientHandler) GetClient(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	clientID, ok := parseIDParam(c, "id", "client")
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(userID, clientID)
	if err != nil {
		respondClientError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClientDetailDTO(*client))
}

func (h *ClientHandler) CreateClient(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	client, err := h.clientService.CreateClient(userID, req.input())
	if err != nil {
		respondClientError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToClientDTO(*client))
}

// UpdateClient replaces every editable field of a client
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	clientID, ok := parseIDParam(c, "id", "client")
	if !ok {
		return
	}

	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	client, err := h.clientService.UpdateClient(userID, clientID, req.input())
	if err != nil {
		respondClientError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToClientDTO(*client))
}

// DeleteClient removes a client; its briefs are kept without a client
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	clientID, ok := parseIDParam(c, "id", "client")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(userID, clientID); err != nil {
		respondClientError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

func respondClientError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrClientNotFound):
		apierrors.NotFound(c, "Client not found")
	case errors.Is(err, services.ErrClientNameRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		log.Error("client request failed", "err", err)
		apierrors.InternalError(c, "Internal server error")
	}
}
