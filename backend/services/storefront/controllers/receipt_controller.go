package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yashrajoria/storefront/backend/services/common/errors"
	"github.com/yashrajoria/storefront/backend/services/storefront/models"
	"github.com/yashrajoria/storefront/backend/services/storefront/receipt"
	"github.com/yashrajoria/storefront/backend/services/storefront/services"
)

// ReceiptController serves order tickets.
type ReceiptController struct {
	receiptService services.ReceiptService
}

func NewReceiptController(receiptService services.ReceiptService) *ReceiptController {
	return &ReceiptController{receiptService: receiptService}
}

func (rc *ReceiptController) load(c *gin.Context) (*models.Receipt, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		return nil, false
	}
	r, err := rc.receiptService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return nil, false
	}
	return r, true
}

// GetTicket handles GET /tickets/:id.
func (rc *ReceiptController) GetTicket(c *gin.Context) {
	r, ok := rc.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, r)
}

// PrintTicket handles GET /tickets/:id/print.
func (rc *ReceiptController) PrintTicket(c *gin.Context) {
	r, ok := rc.load(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := receipt.WriteText(&buf, r); err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to render ticket", err))
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

// ExportTicket handles GET /tickets/:id/export.
func (rc *ReceiptController) ExportTicket(c *gin.Context) {
	r, ok := rc.load(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := receipt.WriteCSV(&buf, r); err != nil {
		apperrors.Respond(c, apperrors.Internal("Failed to export ticket", err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, receipt.Filename(r)))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}
