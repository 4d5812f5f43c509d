package routes

import (
	"github.com/gin-gonic/gin"

	commonmw "github.com/yashrajoria/storefront/backend/services/common/middleware"
	"github.com/yashrajoria/storefront/backend/services/storefront/controllers"
	"github.com/yashrajoria/storefront/backend/services/storefront/middleware"
)

// Controllers bundles every handler the router exposes.
type Controllers struct {
	Products *controllers.ProductController
	Carts    *controllers.CartController
	Orders   *controllers.OrderController
	Receipts *controllers.ReceiptController
	Auth     *controllers.AuthController
}

// Options tune route-level middleware.
type Options struct {
	SecureCookies  bool
	AuthPerMinute  int
	AuthBurst      int
	SessionDecoder middleware.SessionParser
}

// RegisterRoutes sets up the storefront, cart, ticket, auth and admin routes.
func RegisterRoutes(r *gin.Engine, h Controllers, opts Options) {
	r.Use(middleware.Session(opts.SessionDecoder))

	r.GET("/products", h.Products.ListProducts)
	r.GET("/products/:id", h.Products.GetProduct)

	r.POST("/orders", h.Orders.CreateOrder)

	cart := r.Group("/cart", middleware.CartID(opts.SecureCookies))
	cart.GET("", h.Carts.GetCart)
	cart.POST("/items", h.Carts.AddItem)
	cart.DELETE("/items/:productId", h.Carts.RemoveItem)
	cart.DELETE("", h.Carts.ClearCart)
	cart.POST("/checkout", h.Carts.Checkout)

	tickets := r.Group("/tickets")
	tickets.GET("/:id", h.Receipts.GetTicket)
	tickets.GET("/:id/print", h.Receipts.PrintTicket)
	tickets.GET("/:id/export", h.Receipts.ExportTicket)

	auth := r.Group("/auth", commonmw.RateLimitMiddleware(opts.AuthPerMinute, opts.AuthBurst))
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/logout", h.Auth.Logout)
	auth.GET("/me", h.Auth.Me)

	admin := r.Group("/admin", middleware.AdminOnly())
	admin.GET("/products", h.Products.ListAdminProducts)
	admin.POST("/products", h.Products.CreateProduct)
	admin.DELETE("/products/:id", h.Products.DeleteProduct)
	admin.GET("/orders", h.Orders.ListOrders)
	admin.POST("/orders/:id/complete", h.Orders.CompleteOrder)
}
