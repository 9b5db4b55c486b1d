package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"transferregistry/internal/appcontext"
	"transferregistry/internal/services"
)

// respondError maps a service error kind onto an HTTP status and emits a
// structured payload. Internal details stay in the log.
func respondError(c *gin.Context, ctx *appcontext.Context, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	switch services.KindOf(err) {
	case services.KindInvalidArgument:
		status = http.StatusBadRequest
		message = err.Error()
	case services.KindNotFound:
		status = http.StatusNotFound
		message = err.Error()
	case services.KindAlreadyExists:
		status = http.StatusConflict
		message = err.Error()
	case services.KindIngestFailure:
		status = http.StatusBadRequest
		message = err.Error()
	default:
		ctx.Logger.Error("request failed", zap.Error(err))
	}

	c.JSON(status, gin.H{"error": message})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}
