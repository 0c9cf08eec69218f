package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viewtube/backend/internal/middleware"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/repository"
)

type LikeHandler struct {
	likeRepo *repository.LikeRepository
}

func NewLikeHandler(likeRepo *repository.LikeRepository) *LikeHandler {
	return &LikeHandler{likeRepo: likeRepo}
}

func (h *LikeHandler) toggle(c *gin.Context, target models.LikeTarget, param string) {
	targetID, ok := pathID(c, param)
	if !ok {
		return
	}
	likerID, authed := middleware.Viewer(c).ID()
	if !authed {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	liked, err := h.likeRepo.Toggle(c.Request.Context(), target, targetID, likerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// ToggleVideo flips the like state on a video.
func (h *LikeHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, models.LikeTargetVideo, "videoId")
}

// ToggleComment flips the like state on a comment.
func (h *LikeHandler) ToggleComment(c *gin.Context) {
	h.toggle(c, models.LikeTargetComment, "commentId")
}

// ToggleTweet flips the like state on a tweet.
func (h *LikeHandler) ToggleTweet(c *gin.Context) {
	h.toggle(c, models.LikeTargetTweet, "tweetId")
}

// LikedVideos lists the videos the caller has liked.
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	likerID, authed := middleware.Viewer(c).ID()
	if !authed {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, err := h.likeRepo.LikedVideos(c.Request.Context(), likerID, pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
