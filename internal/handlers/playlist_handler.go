package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viewtube/backend/internal/middleware"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/repository"
)

type PlaylistHandler struct {
	playlistRepo *repository.PlaylistRepository
	videoRepo    *repository.VideoRepository
}

func NewPlaylistHandler(playlistRepo *repository.PlaylistRepository, videoRepo *repository.VideoRepository) *PlaylistHandler {
	return &PlaylistHandler{
		playlistRepo: playlistRepo,
		videoRepo:    videoRepo,
	}
}

// Create makes an empty playlist for the caller.
func (h *PlaylistHandler) Create(c *gin.Context) {
	ownerID, authed := middleware.Viewer(c).ID()
	if !authed {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req models.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	playlist, err := h.playlistRepo.Create(c.Request.Context(), ownerID, req.Name, req.Description)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, playlist)
}

// ListByUser returns a user's playlists.
func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	page, err := h.playlistRepo.ListByUser(c.Request.Context(), userID, pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get returns one playlist. Playlists are private to their owner.
func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	playlist, err := h.playlistRepo.GetByID(c.Request.Context(), playlistID, viewer)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

// Update rewrites name and description.
func (h *PlaylistHandler) Update(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	var req models.PlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	playlist, err := h.playlistRepo.Update(c.Request.Context(), playlistID, viewer, req.Name, req.Description)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

// Delete removes a playlist.
func (h *PlaylistHandler) Delete(c *gin.Context) {
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	if err := h.playlistRepo.Delete(c.Request.Context(), playlistID, viewer); err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Playlist deleted"})
}

// AddVideo snapshots the video and embeds it into the playlist.
func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	snapshot, err := h.videoRepo.Snapshot(c.Request.Context(), videoID)
	if err != nil {
		HandleError(c, err)
		return
	}

	playlist, err := h.playlistRepo.AddVideo(c.Request.Context(), playlistID, viewer, snapshot)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}

// RemoveVideo pulls a video out of the playlist.
func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	playlistID, ok := pathID(c, "playlistId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	playlist, err := h.playlistRepo.RemoveVideo(c.Request.Context(), playlistID, viewer, videoID)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, playlist)
}
