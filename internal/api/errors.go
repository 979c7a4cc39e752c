package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/vladimiradmaev/drink-helper/internal/errors"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
)

const operationFailedMessage = "operation failed"

func errorBody(message string) gin.H {
	return gin.H{"error": message}
}

// respondError maps an AppError type to a status. Messages of validation,
// auth and not-found errors are shown to the client; everything else is
// logged and replaced by a generic message.
func respondError(c *gin.Context, err error) {
	errorHandler := apperrors.NewHandler(logger.GetLogger())
	errorHandler.Handle(c.Request.Context(), err)

	status := http.StatusInternalServerError
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeUnauthenticated:
		status = http.StatusUnauthorized
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	default:
		c.JSON(status, errorBody(operationFailedMessage))
		return
	}
	var appErr *apperrors.AppError
	errors.As(err, &appErr)
	c.JSON(status, errorBody(appErr.Message))
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody(err.Error()))
}
