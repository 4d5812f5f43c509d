// Package receipt renders order tickets for printing and for file export.
package receipt

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/yashrajoria/storefront/backend/services/storefront/models"
)

const dateLayout = "2006-01-02 15:04"

// WriteText writes a fixed-width ticket suitable for a receipt printer.
func WriteText(w io.Writer, r *models.Receipt) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	lines := []string{
		fmt.Sprintf("TICKET #%s\n", r.Folio),
		fmt.Sprintf("Date:\t%s\n", r.CreatedAt.Format(dateLayout)),
		fmt.Sprintf("Payment:\t%s\n", r.PaymentLabel),
		"\n",
		"QTY\tDESCRIPTION\tSUBTOTAL\n",
	}
	for _, l := range r.Lines {
		lines = append(lines, fmt.Sprintf("%d\t%s\t%s\n", l.Quantity, l.Description, l.Subtotal.StringFixed(2)))
	}
	lines = append(lines, "\n", fmt.Sprintf("\tTOTAL\t%s\n", r.Total.StringFixed(2)))

	for _, s := range lines {
		if _, err := io.WriteString(tw, s); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// WriteCSV writes a header row, one row per line and a trailing total row.
func WriteCSV(w io.Writer, r *models.Receipt) error {
	cw := csv.NewWriter(w)

	rows := [][]string{{"folio", "date", "payment_method", "quantity", "description", "unit_price", "subtotal"}}
	for _, l := range r.Lines {
		rows = append(rows, []string{
			r.Folio,
			r.CreatedAt.Format(dateLayout),
			r.PaymentLabel,
			strconv.Itoa(l.Quantity),
			l.Description,
			l.UnitPrice.StringFixed(2),
			l.Subtotal.StringFixed(2),
		})
	}
	rows = append(rows, []string{r.Folio, "", "", "", "TOTAL", "", r.Total.StringFixed(2)})

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write receipt csv: %w", err)
	}
	return nil
}

// Filename is the attachment name for an exported ticket.
func Filename(r *models.Receipt) string {
	return fmt.Sprintf("ticket-%s.csv", r.Folio)
}
