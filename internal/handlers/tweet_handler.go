package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viewtube/backend/internal/middleware"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/repository"
)

type TweetHandler struct {
	tweetRepo *repository.TweetRepository
}

func NewTweetHandler(tweetRepo *repository.TweetRepository) *TweetHandler {
	return &TweetHandler{tweetRepo: tweetRepo}
}

// Create posts a tweet.
func (h *TweetHandler) Create(c *gin.Context) {
	viewer := middleware.Viewer(c)
	ownerID, authed := viewer.ID()
	if !authed {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tweet, err := h.tweetRepo.Create(c.Request.Context(), ownerID, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tweet)
}

// ListByUser returns a user's tweets with like data.
func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	page, err := h.tweetRepo.ListByUser(c.Request.Context(), userID, viewer, pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Update rewrites a tweet's content.
func (h *TweetHandler) Update(c *gin.Context) {
	tweetID, ok := pathID(c, "tweetId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	var req models.TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	tweet, err := h.tweetRepo.Update(c.Request.Context(), tweetID, viewer, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, tweet)
}

// Delete removes a tweet.
func (h *TweetHandler) Delete(c *gin.Context) {
	tweetID, ok := pathID(c, "tweetId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	if _, err := h.tweetRepo.Delete(c.Request.Context(), tweetID, viewer); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tweet deleted"})
}
