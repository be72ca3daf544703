package middleware

import (
	"errors"
	"strconv"

	"github.com/briefmate/briefmate/internal/constants"
	apierrors "github.com/briefmate/briefmate/internal/errors"
	"github.com/briefmate/briefmate/internal/models"
	"github.com/briefmate/briefmate/internal/services"
	"github.com/gin-gonic/gin"
)

// BriefLookup loads a brief scoped to its owner
type BriefLookup interface {
	GetBrief(userID, briefID uint64) (*models.Brief, error)
}

// RequireBriefAccess loads the brief named by the :id parameter for the
// current user and stores it in the context. Briefs owned by someone else are
// reported exactly like missing ones.
func RequireBriefAccess(briefs BriefLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		briefID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid brief ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		brief, err := briefs.GetBrief(userID, briefID)
		if err != nil {
			if errors.Is(err, services.ErrBriefNotFound) {
				apierrors.NotFound(c, "Brief not found")
			} else {
				apierrors.InternalError(c, "Failed to load brief")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyBrief, brief)
		c.Next()
	}
}

// GetBrief returns the brief stored by RequireBriefAccess
func GetBrief(c *gin.Context) (*models.Brief, bool) {
	value, exists := c.Get(constants.ContextKeyBrief)
	if !exists {
		return nil, false
	}
	brief, ok := value.(*models.Brief)
	return brief, ok
}
