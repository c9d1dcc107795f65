// Package report renders printable PDF documents for completed rentals
// and the fleet as a whole.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"fleetrent/internal/domain"
)

// InvoiceData carries everything an invoice needs; the caller resolves
// it from the manager before the rental is discarded.
type InvoiceData struct {
	RentalID     string
	VehicleLabel string // "Brand Model (Reg)"
	CustomerName string
	CustomerID   string
	StartDate    string
	EndDate      string
	DurationDays int
	TotalCost    float64
}

// BuildInvoicePDF renders a rental invoice and returns the PDF bytes
// plus a suggested filename.
func BuildInvoicePDF(d InvoiceData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Rental Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "RENTAL INVOICE")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice No : INV-"+shortID(d.RentalID))
	pdf.Ln(7)
	pdf.Cell(0, 7, "Issued     : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Customer : %s (%s)", d.CustomerName, d.CustomerID))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Rental:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, fmt.Sprintf("Vehicle  : %s", d.VehicleLabel), "", "", false)
	pdf.MultiCell(0, 6, fmt.Sprintf("Period   : %s - %s (%d days)", d.StartDate, d.EndDate, d.DurationDays), "", "", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Total: %s zl", domain.FormatNumber(d.TotalCost)))
	pdf.Ln(10)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("INVOICE_%s.pdf", shortID(d.RentalID))
	return buf.Bytes(), filename, nil
}

// BuildFleetReportPDF renders a summary table of the fleet with the
// current availability of each vehicle. rented holds the registrations
// with an active rental.
func BuildFleetReportPDF(vehicles []domain.Vehicle, rented map[string]bool) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Fleet Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "FLEET REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Generated : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Vehicles  : %d total, %d rented", len(vehicles), len(rented)))
	pdf.Ln(10)

	colWidths := []float64{28, 26, 38, 34, 26, 24}
	headers := []string{"Type", "Reg", "Brand", "Model", "Cost/day", "Status"}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, v := range vehicles {
		status := "Available"
		if rented[v.Registration()] {
			status = "Rented"
		}
		row := []string{
			string(v.Kind()),
			v.Registration(),
			v.Brand(),
			v.Model(),
			domain.FormatNumber(v.BaseCost()),
			status,
		}
		for i, cell := range row {
			pdf.CellFormat(colWidths[i], 7, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("FLEET_REPORT_%s.pdf", time.Now().Format("20060102_1504"))
	return buf.Bytes(), filename, nil
}

func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return strings.ToUpper(id[:i])
	}
	return strings.ToUpper(id)
}
