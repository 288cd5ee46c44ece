package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"streetbite/internal/model"
	"streetbite/internal/service"

	"github.com/gin-gonic/gin"
)

// StandHandler handles food stand requests
type StandHandler struct {
	service service.StandService
	logger  *slog.Logger
}

// NewStandHandler creates a new StandHandler
func NewStandHandler(s service.StandService, logger *slog.Logger) *StandHandler {
	return &StandHandler{service: s, logger: logger}
}

func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid value for '" + name + "', use true or false"})
		return nil, false
	}
	return &v, true
}

func (h *StandHandler) ListStands(c *gin.Context) {
	var filters model.StandFilters
	if category := c.Query("category"); category != "" {
		filters.Category = &category
	}
	if ownerParam := c.Query("owner_id"); ownerParam != "" {
		ownerID, err := strconv.ParseInt(ownerParam, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid value for 'owner_id'"})
			return
		}
		filters.OwnerID = &ownerID
	}
	active, ok := queryBool(c, "active")
	if !ok {
		return
	}
	filters.IsActive = active
	openNow, ok := queryBool(c, "open_now")
	if !ok {
		return
	}
	filters.OpenNow = openNow != nil && *openNow

	stands, err := h.service.ListStands(c.Request.Context(), filters)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stands)
}

func (h *StandHandler) GetStand(c *gin.Context) {
	standID, ok := paramID(c, "standId", "stand")
	if !ok {
		return
	}
	stand, err := h.service.GetStand(c.Request.Context(), standID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stand)
}

func (h *StandHandler) GetOpenStatus(c *gin.Context) {
	standID, ok := paramID(c, "standId", "stand")
	if !ok {
		return
	}
	status, err := h.service.GetOpenStatus(c.Request.Context(), standID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *StandHandler) CreateStand(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req model.CreateStandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	stand, err := h.service.CreateStand(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, stand)
}

func (h *StandHandler) UpdateStand(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	standID, ok := paramID(c, "standId", "stand")
	if !ok {
		return
	}
	var req model.UpdateStandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	stand, err := h.service.UpdateStand(c.Request.Context(), standID, actor, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stand)
}

func (h *StandHandler) DeleteStand(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	standID, ok := paramID(c, "standId", "stand")
	if !ok {
		return
	}
	if err := h.service.DeleteStand(c.Request.Context(), standID, actor); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RegisterStandRoutes registers stand routes. Reads are public; writes need
// an owner or admin token and the service checks stand ownership.
func (h *StandHandler) RegisterStandRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc, managerMW gin.HandlerFunc) {
	stands := rg.Group("/stands")
	{
		stands.GET("", h.ListStands)
		stands.GET("/:standId", h.GetStand)
		stands.GET("/:standId/open", h.GetOpenStatus)
	}

	manage := rg.Group("/stands", authMW, managerMW)
	{
		manage.POST("", h.CreateStand)
		manage.PUT("/:standId", h.UpdateStand)
		manage.DELETE("/:standId", h.DeleteStand)
	}
}
