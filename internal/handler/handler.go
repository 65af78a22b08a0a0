package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/user/dayboard/backend/pkg/errors"
)

// respondError maps an error to its HTTP status and JSON body. Unrecognized
// errors surface as a generic 500 so internals never leak to clients.
func respondError(c *gin.Context, err error) {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		c.JSON(appErr.StatusCode, gin.H{"error": appErr})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrInternalError})
}
