package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"campbook/internal/domain/models"
	"campbook/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders the order confirmation PDF handed to customers.
type DocsService struct {
	Orders    OrderStore
	Customers CustomerStore
	Places    AccommodationStore
	RequestID string
}

type confirmationData struct {
	Order     models.Order
	Customer  models.Customer
	PlaceName string
}

func (s DocsService) OrderConfirmation(ctx context.Context, orderID int64) ([]byte, string, error) {
	data, err := s.load(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "order_confirmation", fmt.Sprintf("order_id=%d", orderID))
	return buildConfirmationPDF(data)
}

func (s DocsService) load(ctx context.Context, orderID int64) (confirmationData, error) {
	var out confirmationData
	o, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return out, notFound(err, "order")
	}
	items, err := s.Orders.Items(ctx, orderID)
	if err != nil {
		return out, mapRepoErr(err, "order", "", "")
	}
	o.Items = items
	out.Order = o

	if c, err := s.Customers.GetByID(ctx, o.CustomerID); err == nil {
		out.Customer = c
	} else {
		out.Customer = models.Customer{Name: o.CustomerName, Phone: o.CustomerPhone}
	}
	if o.AccommodationPlaceID != nil && s.Places != nil {
		if p, err := s.Places.GetByID(ctx, *o.AccommodationPlaceID); err == nil {
			out.PlaceName = p.Name
		}
	}
	return out, nil
}

func buildConfirmationPDF(d confirmationData) ([]byte, string, error) {
	o := d.Order
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Order Confirmation "+o.OrderNo, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "ORDER CONFIRMATION")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Order No     : %s", safe(o.OrderNo, "-")),
		fmt.Sprintf("Status       : %s", safe(o.Status, "-")),
		fmt.Sprintf("Visit Date   : %s", safe(dateOnly(o.VisitDate), "-")),
		fmt.Sprintf("Customer     : %s", safe(d.Customer.Name, "-")),
		fmt.Sprintf("Phone        : %s", safe(d.Customer.Phone, "-")),
		fmt.Sprintf("Participants : %d adult(s), %d child(ren)", o.AdultCount, o.ChildCount),
	}
	if d.PlaceName != "" {
		lines = append(lines, fmt.Sprintf("Accommodation: %s", d.PlaceName))
	}
	for _, s := range lines {
		pdf.Cell(0, 7, s)
		pdf.Ln(7)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(221, 235, 247)
	widths := []float64{90, 30, 20, 40}
	for i, h := range []string{"Item", "Unit Price", "Qty", "Subtotal"} {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 11)
	var gross int64
	for _, it := range o.Items {
		gross += it.Subtotal
		pdf.CellFormat(widths[0], 7, truncate(it.Name, 48), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 7, utils.FormatCents(it.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 7, fmt.Sprintf("%d", it.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 7, utils.FormatCents(it.Subtotal), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(4)

	totals := [][2]string{
		{"Subtotal", utils.FormatCents(gross)},
		{"Discount", utils.FormatCents(o.Discount)},
		{"Total", utils.FormatCents(o.TotalAmount)},
		{"Paid", utils.FormatCents(o.PaidAmount)},
		{"Balance", utils.FormatCents(max(o.TotalAmount-o.PaidAmount, 0))},
	}
	for _, row := range totals {
		style := ""
		if row[0] == "Total" {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 11)
		pdf.CellFormat(140, 7, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, row[1], "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if strings.TrimSpace(o.Notes) != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Notes: "+o.Notes, "", "", false)
	}
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Please show this confirmation at check-in. Issued "+utils.Now().Format("2006-01-02 15:04")+".", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("CONFIRMATION_%s_%s.pdf", safeFilenamePart(o.OrderNo), safeFilenamePart(d.Customer.Name))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func dateOnly(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 10 {
		return v[:10]
	}
	return v
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
