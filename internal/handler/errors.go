package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"streetbite/internal/middleware"
	"streetbite/internal/model"
	"streetbite/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errInternalServer     = "Internal server error"
	errStandNotFound      = "Stand not found"
	errMenuItemNotFound   = "Menu item not found"
	errReviewNotFound     = "Review not found"
	errUserNotFound       = "User not found"
	errForbidden          = "You do not have permission to perform this action"
	errInvalidCredentials = "Invalid email or password"
	errDuplicateEmail     = "A user with this email already exists"
	errUnauthenticated    = "Authentication required"
)

// writeError maps service errors to status codes. Unknown errors are
// logged and reported as 500 without detail.
func writeError(c *gin.Context, logger *slog.Logger, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": vErr.Reason})
	case errors.Is(err, service.ErrDuplicateEmail):
		c.JSON(http.StatusConflict, gin.H{"message": errDuplicateEmail})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"message": errInvalidCredentials})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": errForbidden})
	case errors.Is(err, service.ErrStandNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": errStandNotFound})
	case errors.Is(err, service.ErrMenuItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": errMenuItemNotFound})
	case errors.Is(err, service.ErrReviewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": errReviewNotFound})
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": errUserNotFound})
	default:
		logger.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
	}
}

func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: " + err.Error()})
}

// paramID parses a positive int64 path parameter, answering 400 otherwise
func paramID(c *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + label + " ID"})
		return 0, false
	}
	return id, true
}

// requireActor returns the authenticated caller, answering 401 if there is none
func requireActor(c *gin.Context) (model.Actor, bool) {
	actor, ok := middleware.ActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": errUnauthenticated})
		return model.Actor{}, false
	}
	return actor, true
}
