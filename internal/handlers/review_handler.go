package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atikur-24/daily-fit-server/internal/services"
	"github.com/atikur-24/daily-fit-server/internal/utils"
)

type ReviewHandler struct {
	BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(reviewService services.ReviewService, logger utils.Logger) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   NewBaseHandler(logger),
		reviewService: reviewService,
	}
}

// ListReviews
// @Summary List reviews
// @Tags reviews
// @Produce json
// @Success 200 {array} models.Review
// @Router /reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.reviewService.List(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}
