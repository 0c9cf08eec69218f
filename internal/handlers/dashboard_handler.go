package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viewtube/backend/internal/middleware"
	"github.com/viewtube/backend/internal/repository"
)

// DashboardHandler serves a channel owner's own totals and video list,
// unpublished videos included.
type DashboardHandler struct {
	videoRepo        *repository.VideoRepository
	subscriptionRepo *repository.SubscriptionRepository
}

func NewDashboardHandler(videoRepo *repository.VideoRepository, subscriptionRepo *repository.SubscriptionRepository) *DashboardHandler {
	return &DashboardHandler{
		videoRepo:        videoRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

// Stats returns the caller's channel totals.
func (h *DashboardHandler) Stats(c *gin.Context) {
	ownerID, authed := middleware.Viewer(c).ID()
	if !authed {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	stats, err := h.videoRepo.ChannelStats(c.Request.Context(), ownerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	subscribers, err := h.subscriptionRepo.CountForChannel(c.Request.Context(), ownerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	stats.TotalSubscribers = subscribers

	c.JSON(http.StatusOK, stats)
}

// Videos lists all of the caller's videos.
func (h *DashboardHandler) Videos(c *gin.Context) {
	ownerID, authed := middleware.Viewer(c).ID()
	if !authed {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, err := h.videoRepo.ChannelVideos(c.Request.Context(), ownerID, pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
