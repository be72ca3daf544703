package handlers

import (
	"net/http"
	"strconv"

	apierrors "github.com/briefmate/briefmate/internal/errors"
	"github.com/briefmate/briefmate/internal/services"
	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	statsService *services.StatsService
}

func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats returns the dashboard figures of the session user.
// fill_months=true reports every month of the trailing window, empty ones included.
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fill, _ := strconv.ParseBool(c.Query("fill_months"))

	stats, err := h.statsService.DashboardStats(userID, services.StatsOptions{FillMonths: fill})
	if err != nil {
		log.Error("failed to compute stats", "user_id", userID, "err", err)
		apierrors.InternalError(c, "Failed to compute statistics")
		return
	}

	c.JSON(http.StatusOK, stats)
}
