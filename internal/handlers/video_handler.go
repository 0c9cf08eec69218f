package handlers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/viewtube/backend/internal/middleware"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/query"
	"github.com/viewtube/backend/internal/repository"
	"github.com/viewtube/backend/internal/storage"
)

type VideoHandler struct {
	videoRepo *repository.VideoRepository
	userRepo  *repository.UserRepository
	store     *storage.Client
	log       *logrus.Logger
}

func NewVideoHandler(videoRepo *repository.VideoRepository, userRepo *repository.UserRepository, store *storage.Client, log *logrus.Logger) *VideoHandler {
	return &VideoHandler{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		store:     store,
		log:       log,
	}
}

// List returns published videos, filtered and sorted by query params.
func (h *VideoHandler) List(c *gin.Context) {
	opts := query.VideoListOptions{
		Search:   c.Query("query"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
	}
	if userID := c.Query("userId"); userID != "" {
		ownerID, err := models.ParseID(userID)
		if err != nil {
			HandleError(c, err)
			return
		}
		opts.OwnerID = &ownerID
	}

	page, err := h.videoRepo.List(c.Request.Context(), opts, pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// Upload handles the multipart video publish: both files go to the
// object store first, then the record is persisted.
func (h *VideoHandler) Upload(c *gin.Context) {
	viewer := middleware.Viewer(c)
	ownerID, ok := viewer.ID()
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	title := c.PostForm("title")
	description := c.PostForm("description")
	if title == "" || description == "" {
		ErrorResponse(c, http.StatusBadRequest, "title and description are required")
		return
	}
	var duration float64
	if raw := c.PostForm("duration"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil || d < 0 {
			ErrorResponse(c, http.StatusBadRequest, "duration must be a non-negative number")
			return
		}
		duration = d
	}

	videoFile, err := c.FormFile("videoFile")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "videoFile is required")
		return
	}
	thumbFile, err := c.FormFile("thumbnail")
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "thumbnail is required")
		return
	}

	videoObj, err := h.uploadFile(c, videoFile, "videos")
	if err != nil {
		HandleError(c, err)
		return
	}
	thumbObj, err := h.uploadFile(c, thumbFile, "thumbnails")
	if err != nil {
		h.discard(c, videoObj.Key)
		HandleError(c, err)
		return
	}

	video := &models.Video{
		Title:       title,
		Description: description,
		VideoFile:   models.MediaFile{URL: videoObj.URL, Key: videoObj.Key},
		Thumbnail:   models.MediaFile{URL: thumbObj.URL, Key: thumbObj.Key},
		Duration:    duration,
		IsPublished: true,
		Owner:       ownerID,
	}
	if err := h.videoRepo.Create(c.Request.Context(), video); err != nil {
		h.discard(c, videoObj.Key)
		h.discard(c, thumbObj.Key)
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, video)
}

func (h *VideoHandler) uploadFile(c *gin.Context, fh *multipart.FileHeader, folder string) (*storage.Object, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	return h.store.Upload(c.Request.Context(), f, fh.Size, contentType, folder, fh.Filename)
}

// discard best-effort deletes an uploaded object after a failed
// publish so the store does not accumulate orphans.
func (h *VideoHandler) discard(c *gin.Context, key string) {
	if err := h.store.Delete(c.Request.Context(), key); err != nil {
		h.log.WithError(err).WithField("key", key).Warn("failed to delete orphaned object")
	}
}

// Get returns the video detail view, bumps the view counter and records
// the watch for signed-in viewers.
func (h *VideoHandler) Get(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	detail, err := h.videoRepo.GetDetail(c.Request.Context(), videoID, viewer)
	if err != nil {
		HandleError(c, err)
		return
	}

	if err := h.videoRepo.IncrementViews(c.Request.Context(), videoID); err != nil {
		h.log.WithError(err).WithField("video", videoID.Hex()).Warn("failed to increment views")
	}
	if userID, authed := viewer.ID(); authed {
		if err := h.userRepo.RecordWatch(c.Request.Context(), userID, videoID); err != nil {
			h.log.WithError(err).WithField("user", userID.Hex()).Warn("failed to record watch")
		}
	}

	c.JSON(http.StatusOK, detail)
}

// Update changes title/description and optionally replaces the
// thumbnail; the replaced thumbnail object is deleted afterwards.
func (h *VideoHandler) Update(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	var req models.UpdateVideoRequest
	if err := c.ShouldBind(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var thumbnail *models.MediaFile
	if fh, err := c.FormFile("thumbnail"); err == nil {
		obj, err := h.uploadFile(c, fh, "thumbnails")
		if err != nil {
			HandleError(c, err)
			return
		}
		thumbnail = &models.MediaFile{URL: obj.URL, Key: obj.Key}
	}

	previous, err := h.videoRepo.UpdateDetails(c.Request.Context(), videoID, viewer, req.Title, req.Description, thumbnail)
	if err != nil {
		if thumbnail != nil {
			h.discard(c, thumbnail.Key)
		}
		HandleError(c, err)
		return
	}

	if thumbnail != nil {
		h.discard(c, previous.Thumbnail.Key)
	}

	updated := *previous
	updated.Title = req.Title
	updated.Description = req.Description
	if thumbnail != nil {
		updated.Thumbnail = *thumbnail
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes the video record and its stored media.
func (h *VideoHandler) Delete(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	video, err := h.videoRepo.Delete(c.Request.Context(), videoID, viewer)
	if err != nil {
		HandleError(c, err)
		return
	}

	h.discard(c, video.VideoFile.Key)
	h.discard(c, video.Thumbnail.Key)

	c.JSON(http.StatusOK, gin.H{"message": "Video deleted"})
}

// TogglePublish flips the publish flag.
func (h *VideoHandler) TogglePublish(c *gin.Context) {
	videoID, ok := pathID(c, "videoId")
	if !ok {
		return
	}
	viewer := middleware.Viewer(c)

	video, err := h.videoRepo.TogglePublish(c.Request.Context(), videoID, viewer)
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}
