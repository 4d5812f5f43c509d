package controllers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/yashrajoria/storefront/backend/services/storefront/services"
)

const MaxUploadSize = 10 * 1024 * 1024 // 10MB

// CreateProductForm is the admin product form.
type CreateProductForm struct {
	Name        string `form:"name" validate:"required,max=255"`
	Price       string `form:"price" validate:"required,numeric"`
	Category    string `form:"category" validate:"required,max=64"`
	ImageURL    string `form:"image_url" validate:"omitempty,url"`
	Description string `form:"description" validate:"max=2000"`
}

// RequestValidator handles input validation for form-based admin requests.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validator.New()}
}

// ParseCreateProductRequest binds and validates the product form. The
// returned closer releases the uploaded file, if any, and is never nil.
func (rv *RequestValidator) ParseCreateProductRequest(c *gin.Context) (services.ProductCreateRequest, io.Closer, error) {
	var form CreateProductForm
	if err := c.ShouldBind(&form); err != nil {
		return services.ProductCreateRequest{}, nopCloser{}, fmt.Errorf("invalid form data: %w", err)
	}
	if err := rv.validate.Struct(&form); err != nil {
		return services.ProductCreateRequest{}, nopCloser{}, fmt.Errorf("validation failed: %w", err)
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil || price.IsNegative() {
		return services.ProductCreateRequest{}, nopCloser{}, errors.New("price must be a non-negative number")
	}

	req := services.ProductCreateRequest{
		Name:        form.Name,
		Price:       price,
		Category:    form.Category,
		ImageURL:    form.ImageURL,
		Description: form.Description,
	}

	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return req, nopCloser{}, nil
	}
	if err != nil {
		return services.ProductCreateRequest{}, nopCloser{}, fmt.Errorf("invalid image upload: %w", err)
	}
	if err := rv.ValidateFileSize(fh); err != nil {
		return services.ProductCreateRequest{}, nopCloser{}, err
	}

	f, err := fh.Open()
	if err != nil {
		return services.ProductCreateRequest{}, nopCloser{}, fmt.Errorf("failed to read image: %w", err)
	}
	req.Image = &services.ImageUpload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        f,
	}
	return req, f, nil
}

// ValidateFileSize checks if file size is within limits
func (rv *RequestValidator) ValidateFileSize(file *multipart.FileHeader) error {
	if file.Size > MaxUploadSize {
		return fmt.Errorf("file too large (max %dMB)", MaxUploadSize/(1024*1024))
	}
	return nil
}

// parseID reads a positive integer path parameter, answering 400 otherwise.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
