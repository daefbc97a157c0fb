package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/timeutil"
)

// ProfitLossPDF renders the P/L report for [from, to] as a printable A4
// sheet.
func (s *ReportService) ProfitLossPDF(ctx context.Context, from, to time.Time) ([]byte, error) {
	report, err := s.ProfitLoss(ctx, from, to)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Food Stall - Profit / Loss Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Period: %s to %s", from.Format("02-Jan-2006"), to.Format("02-Jan-2006")), "", 1, "C", false, 0, "")
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format("02-Jan-2006 03:04 PM")), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Table header
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(60, 7, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Revenue", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Cost", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, "Profit", "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "Margin", "1", 1, "R", true, 0, "")

	// Table rows
	pdf.SetFont("Arial", "", 10)
	for _, row := range report.Rows {
		name := row.Name
		if row.IsGrouped && len(row.ItemNames) > 0 {
			name = fmt.Sprintf("%s (%s)", name, strings.Join(row.ItemNames, ", "))
		}
		if row.IsGeneral {
			name = name + " (general)"
		}
		if len(name) > 38 {
			name = name[:35] + "..."
		}

		margin := fmt.Sprintf("%.1f%%", row.Margin)
		if row.IsGeneral {
			margin = "-"
		}

		pdf.CellFormat(60, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", row.QtySold), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Revenue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Cost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", row.Profit), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, margin, "1", 1, "R", false, 0, "")
	}

	// Totals
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(60, 7, "Total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, fmt.Sprintf("%d", report.TotalQty), "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", report.TotalRevenue), "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", report.TotalCost), "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", report.TotalProfit), "1", 0, "R", true, 0, "")
	pdf.CellFormat(20, 7, "", "1", 1, "R", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
