package services

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/asiaagro/silage-backend/internal/ledger"
	"github.com/asiaagro/silage-backend/internal/metrics"
	"github.com/asiaagro/silage-backend/internal/models"
	"github.com/asiaagro/silage-backend/internal/timeutil"
)

// InvoiceService renders the printable bill for a client sale. The layout
// mirrors the printed bill the office hands to drivers: company header,
// client and transport sections side by side, and a highlighted summary
// block with a payment stamp.
type InvoiceService struct {
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
}

func NewInvoiceService() *InvoiceService {
	return &InvoiceService{
		CompanyName:    "Asia Agro Silage",
		CompanyAddress: "Main GT Road, Gujranwala, Punjab",
		CompanyPhone:   "+92 300 0000000",
	}
}

// Render produces the invoice PDF and its download filename.
func (s *InvoiceService) Render(sale *models.Sale) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 20)
	pdf.SetTextColor(22, 101, 52)
	pdf.CellFormat(186, 10, s.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(80, 80, 80)
	pdf.CellFormat(186, 5, s.CompanyAddress, "", 1, "C", false, 0, "")
	pdf.CellFormat(186, 5, s.CompanyPhone, "", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetDrawColor(22, 101, 52)
	pdf.SetLineWidth(0.6)
	pdf.Line(12, pdf.GetY(), 198, pdf.GetY())
	pdf.Ln(4)

	// Bill number and date
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(93, 7, fmt.Sprintf("Bill No: %s", sale.BillNo), "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(93, 7, fmt.Sprintf("Date: %s", timeutil.FormatPKT(sale.CreatedAt, "02-Jan-2006 03:04 PM")), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	// Client and transport sections side by side
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(91, 7, "Client Details", "1", 0, "L", true, 0, "")
	pdf.CellFormat(4, 7, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(91, 7, "Transport Details", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	left := [][2]string{
		{"Name", sale.ClientName},
		{"Phone", sale.PhoneNumber},
		{"Location", sale.Location},
	}
	right := [][2]string{
		{"Driver", sale.DriverName},
		{"Driver Phone", sale.DriverPhoneNumber},
		{"Vehicle", sale.VehicleNumber},
	}
	for i := range left {
		pdf.CellFormat(91, 6, fmt.Sprintf("%s: %s", left[i][0], left[i][1]), "LR", 0, "L", false, 0, "")
		pdf.CellFormat(4, 6, "", "", 0, "L", false, 0, "")
		pdf.CellFormat(91, 6, fmt.Sprintf("%s: %s", right[i][0], right[i][1]), "LR", 1, "L", false, 0, "")
	}
	pdf.CellFormat(91, 0, "", "T", 0, "L", false, 0, "")
	pdf.CellFormat(4, 0, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(91, 0, "", "T", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Items table
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(22, 101, 52)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(56, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Bales", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Weight (kg)", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Rate / kg", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	item := "Silage"
	if sale.Description != "" {
		item = fmt.Sprintf("Silage (%s)", sale.Description)
	}
	gross := sale.WeightInKgs * sale.PricePerKg
	pdf.CellFormat(56, 8, item, "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, fmt.Sprintf("%d", sale.NoOfBales), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", sale.WeightInKgs), "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, ledger.FormatAmount(sale.PricePerKg), "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 8, ledger.FormatAmount(gross), "1", 1, "R", false, 0, "")
	if sale.TransportationCost > 0 {
		pdf.CellFormat(151, 8, "Transportation (paid separately)", "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, ledger.FormatAmount(sale.TransportationCost), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Bill summary block, sky blue like the on-screen preview
	pdf.SetFillColor(224, 242, 254)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(186, 8, "Bill Summary", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	rows := [][2]string{
		{"Gross Total", ledger.FormatAmount(gross)},
		{"Discount", ledger.FormatAmount(sale.Discount)},
		{"Net Total", ledger.FormatAmount(sale.TotalAmount)},
		{"Amount Paid", ledger.FormatAmount(sale.AmountPaid)},
	}
	for _, row := range rows {
		pdf.CellFormat(131, 7, row[0], "L", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, row[1], "R", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(131, 8, "Remaining Amount", "LTB", 0, "L", false, 0, "")
	pdf.CellFormat(55, 8, ledger.FormatAmount(sale.RemainingAmount), "RTB", 1, "R", false, 0, "")
	pdf.Ln(6)

	// Payment stamp
	if sale.RemainingAmount > 0 {
		pdf.SetTextColor(185, 28, 28)
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(186, 10, "NOT PAID", "", 1, "C", false, 0, "")
	} else {
		pdf.SetTextColor(22, 101, 52)
		pdf.SetFont("Arial", "B", 16)
		pdf.CellFormat(186, 10, "PAID", "", 1, "C", false, 0, "")
	}

	pdf.SetTextColor(120, 120, 120)
	pdf.SetFont("Arial", "I", 8)
	pdf.Ln(8)
	pdf.CellFormat(186, 5, "This is a computer generated bill.", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render invoice: %w", err)
	}

	metrics.InvoicesGenerated.Inc()
	return buf.Bytes(), invoiceFilename(sale), nil
}

// invoiceFilename builds the download name, e.g. Bill00042_ALI_TRADERS.pdf.
func invoiceFilename(sale *models.Sale) string {
	name := strings.ReplaceAll(strings.TrimSpace(sale.ClientName), " ", "_")
	if name == "" {
		name = "CLIENT"
	}
	return fmt.Sprintf("Bill%s_%s.pdf", sale.BillNo, name)
}
