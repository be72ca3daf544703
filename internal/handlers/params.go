package handlers

import (
	"strconv"

	apierrors "github.com/briefmate/briefmate/internal/errors"
	"github.com/briefmate/briefmate/internal/filters"
	"github.com/briefmate/briefmate/internal/middleware"
	"github.com/gin-gonic/gin"
)

// requireUser returns the session user, answering 401 when there is none
func requireUser(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return 0, false
	}
	return userID, true
}

// parseIDParam reads a numeric path parameter, answering 400 when malformed
func parseIDParam(c *gin.Context, name, label string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}

// briefFilterFromQuery reads the listing filter parameters shared by the
// brief listing and the exports
func briefFilterFromQuery(c *gin.Context) filters.BriefFilter {
	return filters.ParseBriefFilter(
		c.Query("search"),
		c.Query("status"),
		c.Query("priority"),
		c.Query("client"),
	)
}
