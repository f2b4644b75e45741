package booking

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
)

// RenderReceipt lays out a one page A4 booking summary.
func RenderReceipt(b *Booking, serviceNames []string, printedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Booking receipt", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	line := func(label, value string) {
		pdf.Cell(45, 7, tr(label))
		pdf.Cell(0, 7, tr(value))
		pdf.Ln(7)
	}

	line("Reference:", b.ID)
	line("Status:", string(b.Status))
	line("Requested:", b.CreatedAt.Format("02 Jan 2006 15:04"))
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Customer")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	line("Name:", b.Customer.Name)
	line("Email:", b.Customer.Email)
	line("Phone:", b.Customer.Phone)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Vehicle")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	line("Registration:", b.Vehicle.Registration)
	line("Make / model:", strings.TrimSpace(orDash(b.Vehicle.Make)+" "+orDash(b.Vehicle.Model)))
	if b.Vehicle.Year > 0 {
		line("Year:", fmt.Sprintf("%d", b.Vehicle.Year))
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Services")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	for i, name := range serviceNames {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d) %s", i+1, name)), "", "", false)
	}
	if b.OtherService != "" {
		pdf.MultiCell(0, 6, tr("Other: "+b.OtherService), "", "", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, tr(fmt.Sprintf("Estimated total: £%.2f", b.TotalPrice)))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, tr("Prices are the catalogue prices at the time of booking. Printed "+
		printedAt.Format("02 Jan 2006 15:04")+"."), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
