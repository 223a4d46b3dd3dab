package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/standup/internal/common"
	"github.com/gin-gonic/gin"
)

func validationBody(fields map[string]string) gin.H {
	return gin.H{"message": "Validation failed", "errors": fields}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrEditWindow):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders field errors as a validation body; anything else is a
// plain server error with no detail.
func writeError(c *gin.Context, err error) {
	var fe *common.FieldError
	if errors.As(err, &fe) {
		c.JSON(statusFor(err), validationBody(fe.Fields))
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}
