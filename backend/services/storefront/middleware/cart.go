package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	CartCookie = "cart_id"
	cartIDKey  = "cartID"
)

// CartID makes sure the browser has a cart_id cookie. The cookie has no
// Max-Age, so the cart is forgotten when the browser session ends.
func CartID(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(CartCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(CartCookie, id, 0, "/", "", secure, true)
		}
		c.Set(cartIDKey, id)
		c.Next()
	}
}

// GetCartID returns the cart id set by CartID.
func GetCartID(c *gin.Context) string {
	return c.GetString(cartIDKey)
}
