package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viewtube/backend/internal/middleware"
	"github.com/viewtube/backend/internal/repository"
)

type SubscriptionHandler struct {
	subscriptionRepo *repository.SubscriptionRepository
}

func NewSubscriptionHandler(subscriptionRepo *repository.SubscriptionRepository) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionRepo: subscriptionRepo}
}

// Toggle flips the caller's subscription to a channel.
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}
	subscriberID, authed := middleware.Viewer(c).ID()
	if !authed {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	subscribed, err := h.subscriptionRepo.Toggle(c.Request.Context(), channelID, subscriberID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscribed": subscribed})
}

// Subscribers lists the users subscribed to a channel.
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channelID, ok := pathID(c, "channelId")
	if !ok {
		return
	}

	page, err := h.subscriptionRepo.Subscribers(c.Request.Context(), channelID, pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// SubscribedChannels lists the channels a user subscribes to.
func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	subscriberID, ok := pathID(c, "subscriberId")
	if !ok {
		return
	}

	page, err := h.subscriptionRepo.SubscribedChannels(c.Request.Context(), subscriberID, pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
