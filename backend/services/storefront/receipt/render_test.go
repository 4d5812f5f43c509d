package receipt

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yashrajoria/storefront/backend/services/storefront/models"
)

func sampleReceipt() *models.Receipt {
	return &models.Receipt{
		OrderID:       42,
		Folio:         "000042",
		CreatedAt:     time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC),
		PaymentMethod: "cash",
		PaymentLabel:  "Cash in store",
		Lines: []models.ReceiptLine{
			{ProductID: 1, Quantity: 1, Description: "Ring", UnitPrice: decimal.RequireFromString("10"), Subtotal: decimal.RequireFromString("10")},
			{ProductID: 3, Quantity: 1, Description: models.DeletedProductLabel, UnitPrice: decimal.RequireFromString("25.5"), Subtotal: decimal.RequireFromString("25.5"), Missing: true},
		},
		Total: decimal.RequireFromString("35.5"),
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleReceipt()))

	out := buf.String()
	assert.Contains(t, out, "TICKET #000042")
	assert.Contains(t, out, "2024-05-01 10:30")
	assert.Contains(t, out, "Cash in store")
	assert.Contains(t, out, models.DeletedProductLabel)
	assert.Contains(t, out, "25.50")
	assert.Contains(t, out, "35.50")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleReceipt()))

	rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "folio", rows[0][0])
	assert.Equal(t, []string{"000042", "2024-05-01 10:30", "Cash in store", "1", "Ring", "10.00", "10.00"}, rows[1])
	assert.Equal(t, models.DeletedProductLabel, rows[2][4])
	assert.Equal(t, "TOTAL", rows[3][4])
	assert.Equal(t, "35.50", rows[3][6])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "ticket-000042.csv", Filename(sampleReceipt()))
}
