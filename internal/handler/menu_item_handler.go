package handler

import (
	"log/slog"
	"net/http"

	"streetbite/internal/model"
	"streetbite/internal/service"

	"github.com/gin-gonic/gin"
)

type MenuItemHandler struct {
	service service.MenuItemService
	logger  *slog.Logger
}

func NewMenuItemHandler(s service.MenuItemService, logger *slog.Logger) *MenuItemHandler {
	return &MenuItemHandler{service: s, logger: logger}
}

func (h *MenuItemHandler) ListMenuItems(c *gin.Context) {
	items, err := h.service.ListMenuItems(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuItemHandler) ListStandMenu(c *gin.Context) {
	standID, ok := paramID(c, "standId", "stand")
	if !ok {
		return
	}
	items, err := h.service.ListStandMenu(c.Request.Context(), standID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *MenuItemHandler) GetMenuItem(c *gin.Context) {
	itemID, ok := paramID(c, "itemId", "menu item")
	if !ok {
		return
	}
	item, err := h.service.GetMenuItem(c.Request.Context(), itemID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuItemHandler) CreateMenuItem(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req model.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	item, err := h.service.CreateMenuItem(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *MenuItemHandler) UpdateMenuItem(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId", "menu item")
	if !ok {
		return
	}
	var req model.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	item, err := h.service.UpdateMenuItem(c.Request.Context(), itemID, actor, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuItemHandler) DeleteMenuItem(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	itemID, ok := paramID(c, "itemId", "menu item")
	if !ok {
		return
	}
	if err := h.service.DeleteMenuItem(c.Request.Context(), itemID, actor); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MenuItemHandler) RegisterMenuItemRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, managerMW gin.HandlerFunc) {
	rg.GET("/stands/:standId/menu-items", h.ListStandMenu)

	items := rg.Group("/menu-items")
	{
		items.GET("", h.ListMenuItems)
		items.GET("/:itemId", h.GetMenuItem)
	}

	manage := rg.Group("/menu-items", authMW, managerMW)
	{
		manage.POST("", h.CreateMenuItem)
		manage.PUT("/:itemId", h.UpdateMenuItem)
		manage.DELETE("/:itemId", h.DeleteMenuItem)
	}
}
