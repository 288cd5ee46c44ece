package handler

import (
	"log/slog"
	"net/http"

	"streetbite/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
	logger  *slog.Logger
}

func NewUserHandler(s service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: s, logger: logger}
}

func (h *UserHandler) Me(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	user, err := h.service.GetUser(c.Request.Context(), actor.UserID, actor)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// GetUser is limited to the user themself and admins
func (h *UserHandler) GetUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	userID, ok := paramID(c, "userId", "user")
	if !ok {
		return
	}

	user, err := h.service.GetUser(c.Request.Context(), userID, actor)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	user, err := h.service.GetUserByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// RegisterUserRoutes registers account lookups; listing and email lookup are admin-only
func (h *UserHandler) RegisterUserRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, adminMW gin.HandlerFunc) {
	users := rg.Group("/users")
	users.GET("/me", authMW, h.Me)
	users.GET("/:userId", authMW, h.GetUser)

	admin := users.Group("", authMW, adminMW)
	{
		admin.GET("", h.ListUsers)
		admin.GET("/email/:email", h.GetUserByEmail)
	}
}
