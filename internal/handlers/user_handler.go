package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/viewtube/backend/internal/middleware"
	"github.com/viewtube/backend/internal/repository"
)

type UserHandler struct {
	userRepo *repository.UserRepository
}

func NewUserHandler(userRepo *repository.UserRepository) *UserHandler {
	return &UserHandler{userRepo: userRepo}
}

// WatchHistory returns the caller's watched videos with owner
// summaries, most recent last (history order is insertion order).
func (h *UserHandler) WatchHistory(c *gin.Context) {
	userID, authed := middleware.Viewer(c).ID()
	if !authed {
		ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, err := h.userRepo.WatchHistory(c.Request.Context(), userID, pageRequest(c))
	if err != nil {
		HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}
