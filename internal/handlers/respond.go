package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/viewtube/backend/internal/apperr"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/query"
)

// ErrorResponse sends a standardized error response and logs at caller if needed
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// HandleError maps a classified error to its HTTP status and message.
func HandleError(c *gin.Context, err error) {
	ErrorResponse(c, apperr.HTTPStatus(err), apperr.Message(err))
}

// pathID parses and validates an object id path parameter. On failure
// it writes the error response and reports false.
func pathID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := models.ParseID(c.Param(param))
	if err != nil {
		HandleError(c, err)
		return primitive.NilObjectID, false
	}
	return id, true
}

// pageRequest reads the page/limit query parameters. Unparseable values
// fall back to the defaults rather than failing the request.
func pageRequest(c *gin.Context) query.PageRequest {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	return query.NewPageRequest(page, limit)
}
