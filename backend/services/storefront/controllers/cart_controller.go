package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yashrajoria/storefront/backend/services/common/errors"
	"github.com/yashrajoria/storefront/backend/services/storefront/middleware"
	"github.com/yashrajoria/storefront/backend/services/storefront/models"
	"github.com/yashrajoria/storefront/backend/services/storefront/services"
)

// CartController serves the cart of the browsing session named by the
// cart_id cookie.
type CartController struct {
	cartService services.CartService
}

func NewCartController(cartService services.CartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetCart handles GET /cart.
func (cc *CartController) GetCart(c *gin.Context) {
	cart, err := cc.cartService.GetCart(c.Request.Context(), middleware.GetCartID(c))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart.View())
}

// AddItem handles POST /cart/items.
func (cc *CartController) AddItem(c *gin.Context) {
	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	cart, err := cc.cartService.AddProduct(c.Request.Context(), middleware.GetCartID(c), req.ProductID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart.View())
}

// RemoveItem handles DELETE /cart/items/:productId.
func (cc *CartController) RemoveItem(c *gin.Context) {
	productID, ok := parseID(c, "productId")
	if !ok {
		return
	}
	cart, err := cc.cartService.RemoveProduct(c.Request.Context(), middleware.GetCartID(c), productID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, cart.View())
}

// ClearCart handles DELETE /cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	if err := cc.cartService.ClearCart(c.Request.Context(), middleware.GetCartID(c)); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewCart(middleware.GetCartID(c)).View())
}

// Checkout handles POST /cart/checkout.
func (cc *CartController) Checkout(c *gin.Context) {
	var req models.CartCheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
			return
		}
	}

	result, err := cc.cartService.Checkout(c.Request.Context(), middleware.GetCartID(c), req.PaymentMethod)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(checkoutStatus(result), result)
}
