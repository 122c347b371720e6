package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atikur-24/daily-fit-server/internal/services"
	"github.com/atikur-24/daily-fit-server/internal/utils"
)

type CartHandler struct {
	BaseHandler
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService, logger utils.Logger) *CartHandler {
	return &CartHandler{
		BaseHandler: NewBaseHandler(logger),
		cartService: cartService,
	}
}

// ListCart returns the requester's cart
// @Summary List cart items
// @Tags carts
// @Produce json
// @Param email query string true "Cart owner, must be the requester"
// @Success 200 {array} models.CartItem
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /carts [get]
func (h *CartHandler) ListCart(c *gin.Context) {
	requester, ok := h.requesterEmail(c)
	if !ok {
		return
	}

	items, err := h.cartService.ListCart(c.Request.Context(), requester, c.Query("email"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	requester, ok := h.requesterEmail(c)
	if !ok {
		return
	}

	var req services.AddToCartRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.cartService.AddToCart(c.Request.Context(), requester, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	requester, ok := h.requesterEmail(c)
	if !ok {
		return
	}

	result, err := h.cartService.RemoveFromCart(c.Request.Context(), requester, c.Param("id"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
