package handler

import (
	"log/slog"
	"net/http"

	"streetbite/internal/model"
	"streetbite/internal/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	service service.ReviewService
	logger  *slog.Logger
}

func NewReviewHandler(s service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{service: s, logger: logger}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.service.ListReviews(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) ListStandReviews(c *gin.Context) {
	standID, ok := paramID(c, "standId", "stand")
	if !ok {
		return
	}
	reviews, err := h.service.ListStandReviews(c.Request.Context(), standID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	reviewID, ok := paramID(c, "reviewId", "review")
	if !ok {
		return
	}
	review, err := h.service.GetReview(c.Request.Context(), reviewID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// CreateReview takes stand_id from the body, or from the path on
// /stands/:standId/reviews. The author is always the token user.
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var req model.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if c.Param("standId") != "" {
		standID, ok := paramID(c, "standId", "stand")
		if !ok {
			return
		}
		req.StandID = standID
	}

	review, err := h.service.CreateReview(c.Request.Context(), actor, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reviewID, ok := paramID(c, "reviewId", "review")
	if !ok {
		return
	}
	var req model.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	review, err := h.service.UpdateReview(c.Request.Context(), reviewID, actor, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	reviewID, ok := paramID(c, "reviewId", "review")
	if !ok {
		return
	}
	if err := h.service.DeleteReview(c.Request.Context(), reviewID, actor); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ReviewHandler) LikeReview(c *gin.Context) {
	reviewID, ok := paramID(c, "reviewId", "review")
	if !ok {
		return
	}
	review, err := h.service.LikeReview(c.Request.Context(), reviewID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// RegisterReviewRoutes registers review routes. Any authenticated user may
// write a review or like one; editing is limited to the author and admins.
func (h *ReviewHandler) RegisterReviewRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/stands/:standId/reviews", h.ListStandReviews)
	rg.POST("/stands/:standId/reviews", authMW, h.CreateReview)

	reviews := rg.Group("/reviews")
	{
		reviews.GET("", h.ListReviews)
		reviews.GET("/:reviewId", h.GetReview)
	}

	authed := rg.Group("/reviews", authMW)
	{
		authed.POST("", h.CreateReview)
		authed.PUT("/:reviewId", h.UpdateReview)
		authed.DELETE("/:reviewId", h.DeleteReview)
		authed.POST("/:reviewId/like", h.LikeReview)
	}
}
