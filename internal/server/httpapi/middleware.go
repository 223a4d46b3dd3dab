package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/standup/internal/common"
	"github.com/dmitrijs2005/standup/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "userID"

// requestLogger tags the request context with a request id and logs one line
// per request.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := logging.ContextWith(c.Request.Context(), "request_id", uuid.NewString())
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		logger.Info(ctx, "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// identify copies the caller's id from the identity header. Who the caller
// is has been settled upstream; this only carries it along.
func identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(common.UserIDHeaderName)); id != "" {
			c.Set(userIDKey, id)
			c.Request = c.Request.WithContext(logging.ContextWith(c.Request.Context(), "user_id", id))
		}
		c.Next()
	}
}

func (h *Handler) validateUser(c *gin.Context) {
	id := c.GetString(userIDKey)
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, validationBody(map[string]string{"userId": "User ID not provided"}))
		return
	}

	ok, err := h.users.Exists(c.Request.Context(), id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Server error validating user"})
		return
	}
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, validationBody(map[string]string{"userId": "User not found"}))
		return
	}
	c.Next()
}
