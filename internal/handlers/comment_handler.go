package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viewtube/backend/internal/middleware"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/repository"
)

type CommentHandler struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
}

func NewCommentHandler(commentRepo *repository.CommentRepository, videoRepo *repository.VideoRepository) *CommentHandler {
	return &CommentHandler{
		commentRepo: commentRepo,
		videoRepo:   videoRepo,
	}
}

// List returns a video's comments with owner summaries and like data.
func (h *CommentHandler) List(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	page, err := h.commentRepo.ListByVideo(c.Request.Context(), videoID, viewer, pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Create adds a comment to a video.
func (h *CommentHandler) Create(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)
	ownerID, authed := viewer.ID()
	if !authed {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// Commenting on an absent video must fail loudly, not dangle.
	if _, err := h.videoRepo.GetByID(c.Request.Context(), videoID); err != nil {
		HandleError(c, err)
		return
	}

	comment, err := h.commentRepo.Create(c.Request.Context(), videoID, ownerID, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Update rewrites a comment's content.
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	var req models.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	comment, err := h.commentRepo.Update(c.Request.Context(), commentID, viewer, req.Content)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment.
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	if _, err := h.commentRepo.Delete(c.Request.Context(), commentID, viewer); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
