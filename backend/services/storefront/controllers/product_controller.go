package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yashrajoria/storefront/backend/services/common/errors"
	"github.com/yashrajoria/storefront/backend/services/storefront/services"
)

// ProductController handles catalog endpoints, public and admin.
type ProductController struct {
	productService services.ProductService
	validator      *RequestValidator
}

func NewProductController(productService services.ProductService, validator *RequestValidator) *ProductController {
	return &ProductController{productService: productService, validator: validator}
}

// ListProducts handles GET /products.
func (pc *ProductController) ListProducts(c *gin.Context) {
	products, err := pc.productService.ListProducts(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct handles GET /products/:id.
func (pc *ProductController) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	product, err := pc.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

// ListAdminProducts handles GET /admin/products (newest first).
func (pc *ProductController) ListAdminProducts(c *gin.Context) {
	products, err := pc.productService.ListProductsNewestFirst(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// CreateProduct handles POST /admin/products.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize+1024*1024)

	req, closer, err := pc.validator.ParseCreateProductRequest(c)
	defer closer.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	product, err := pc.productService.CreateProduct(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// DeleteProduct handles DELETE /admin/products/:id.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := pc.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
