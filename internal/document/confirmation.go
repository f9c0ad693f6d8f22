package document

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/pkg/helpers"
)

const (
	pageMargin    = 15.0
	lineHeight    = 7.0
	titleHeight   = 10.0
	sectionGap    = 6.0
	labelColWidth = 55.0
	barcodeHeight = 18.0
)

type detailRow struct {
	label string
	value string
}

type section struct {
	title string
	rows  []detailRow
}

// WriteConfirmation renders the customer order confirmation for one
// production slot and writes the PDF to w.
func WriteConfirmation(w io.Writer, order dto.OrderRow, dealerName string) error {
	if order.Chassis == "" {
		return errs.NewValidationError("confirmation requires an order with a chassis")
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()

	drawHeader(pdf, order, dealerName)

	for _, sec := range confirmationSections(order, dealerName) {
		ensureRoom(pdf, sectionHeight(sec))
		drawSection(pdf, sec)
	}

	if encoded := Encode(order.Chassis); encoded != "" {
		ensureRoom(pdf, barcodeHeight+2*lineHeight)
		drawBarcode(pdf, encoded, order.Chassis)
	}

	return pdf.Output(w)
}

func drawHeader(pdf *fpdf.Fpdf, order dto.OrderRow, dealerName string) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, titleHeight, "Order Confirmation", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, lineHeight, dealerName, "", 1, "C", false, 0, "")
	pdf.CellFormat(0, lineHeight, "Chassis "+order.Chassis, "", 1, "C", false, 0, "")
	pdf.Ln(sectionGap)
}

func confirmationSections(order dto.OrderRow, dealerName string) []section {
	dash := func(v string) string { return helpers.FirstNonEmpty(strings.TrimSpace(v), "-") }

	sections := []section{
		{
			title: "Vehicle",
			rows: []detailRow{
				{"Chassis number", dash(order.Chassis)},
				{"Model", dash(order.Model)},
				{"Model year", dash(order.ModelYear)},
				{"Colour", dash(order.Colour)},
				{"Decals", dash(order.Decals)},
				{"Exterior colour", dash(order.ExteriorColour)},
			},
		},
		{
			title: "Order",
			rows: []detailRow{
				{"Customer", dash(order.Customer)},
				{"Dealer", dash(dealerName)},
				{"Order received", dash(order.OrderReceivedDate)},
				{"Signed plans received", dash(order.SignedPlansReceived)},
			},
		},
		{
			title: "Production",
			rows: []detailRow{
				{"Production status", dash(order.ProductionStatus)},
				{"Forecast production", dash(order.ForecastProductionDate)},
				{"Requested delivery", dash(order.RequestedDeliveryDate)},
			},
		},
	}
	return sections
}

// sectionHeight estimates a section before drawing it, so page breaks land
// between sections rather than mid-table.
func sectionHeight(sec section) float64 {
	return titleHeight + float64(len(sec.rows))*lineHeight + sectionGap
}

func ensureRoom(pdf *fpdf.Fpdf, needed float64) {
	_, pageHeight := pdf.GetPageSize()
	if pdf.GetY()+needed > pageHeight-pageMargin {
		pdf.AddPage()
	}
}

func drawSection(pdf *fpdf.Fpdf, sec section) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, titleHeight, sec.title, "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range sec.rows {
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(labelColWidth, lineHeight, row.label, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, lineHeight, row.value, "", 1, "L", false, 0, "")
	}
	pdf.Ln(sectionGap)
}

func drawBarcode(pdf *fpdf.Fpdf, encoded, label string) {
	pageWidth, _ := pdf.GetPageSize()
	available := pageWidth - 2*pageMargin

	unit := FitUnitWidth(encoded, available)
	width := EstimateWidth(encoded, unit)
	x := pageMargin + (available-width)/2

	Draw(pdf, encoded, x, pdf.GetY(), barcodeHeight, unit)
	pdf.SetY(pdf.GetY() + barcodeHeight + 2)
	pdf.SetFont("Courier", "", 10)
	pdf.CellFormat(0, lineHeight, label, "", 1, "C", false, 0, "")
}
