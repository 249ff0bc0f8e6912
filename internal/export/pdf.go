// Package export provides functionality for exporting packing results
// to various file formats.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/BoxPack/internal/model"
)

// itemColor represents an RGB color for a placed item.
type itemColor struct {
	R, G, B int
}

// itemColors is the palette shared by the PDF, SVG and DXF exporters.
var itemColors = []itemColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	viewGap      = 12.0
	drawAreaTop  = marginTop + headerHeight + 10.0
)

// voidMinSide is the smallest void side listed in the report.
const voidMinSide = 1.0

// view selects the two container axes projected onto the page.
type view int

const (
	viewTop   view = iota // X across, Z down the page
	viewFront             // X across, Y up the page
)

func (v view) String() string {
	if v == viewFront {
		return "Front view (X / Y)"
	}
	return "Top view (X / Z)"
}

// ExportPDF generates a PDF document containing the packing result. Each
// container is rendered on its own page with a top and a front projection,
// followed by a summary page with overall statistics.
func ExportPDF(path string, result model.PackResult) error {
	if len(result.Containers) == 0 {
		return fmt.Errorf("no containers to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, c := range result.Containers {
		pdf.AddPage()
		renderContainerPage(pdf, c, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// renderContainerPage draws a single container on the current PDF page.
func renderContainerPage(pdf *fpdf.Fpdf, c model.ContainerResult, containerNum int) {
	dims := c.Dimensions

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Container %d (%s)", containerNum, formatDims(dims))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	voids := model.DetectVoids(c, voidMinSide)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Items: %d | Used volume: %.0f | Total volume: %.0f | Efficiency: %.1f%% | Free slabs: %.0f",
		c.ItemCount(), c.UsedVolume(), c.TotalVolume(), c.Efficiency()*100, model.TotalVoidVolume(voids))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Both views share one scale so they can be compared side by side.
	viewWidth := (pageWidth - marginLeft - marginRight - viewGap) / 2
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	scale := math.Min(viewWidth/dims.Width, drawHeight/math.Max(dims.Depth, dims.Height))

	bottom := drawAreaTop
	for i, v := range []view{viewTop, viewFront} {
		offsetX := marginLeft + float64(i)*(viewWidth+viewGap)
		h := drawView(pdf, c, v, scale, offsetX, drawAreaTop)
		bottom = math.Max(bottom, drawAreaTop+h)
	}

	drawItemsLegend(pdf, c, bottom+8)
}

// drawView renders one projection of a container and returns the height it
// used on the page.
func drawView(pdf *fpdf.Fpdf, c model.ContainerResult, v view, scale, offsetX, offsetY float64) float64 {
	dims := c.Dimensions
	canvasW := dims.Width * scale
	canvasH := dims.Depth * scale
	if v == viewFront {
		canvasH = dims.Height * scale
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(offsetX, offsetY-5)
	pdf.CellFormat(canvasW, 4, v.String(), "", 0, "L", false, 0, "")

	// Container floor (cardboard color)
	pdf.SetFillColor(222, 196, 160)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, idx := range paintOrder(c.Placements, v) {
		p := c.Placements[idx]
		col := itemColors[idx%len(itemColors)]

		px := offsetX + p.Position.X*scale
		pw := p.Placed.Width * scale
		var py, ph float64
		if v == viewTop {
			py = offsetY + p.Position.Z*scale
			ph = p.Placed.Depth * scale
		} else {
			// Y grows upward in the container and downward on the page.
			py = offsetY + canvasH - (p.Position.Y+p.Placed.Height)*scale
			ph = p.Placed.Height * scale
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Item.Label
			labelW := pdf.GetStringWidth(label)
			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, v, dims, offsetX, offsetY, canvasW, canvasH)
	return canvasH
}

// paintOrder returns placement indices sorted so items nearer the viewer are
// drawn last: highest Y last from the top, smallest Z last from the front.
func paintOrder(placements []model.Placement, v view) []int {
	order := make([]int, len(placements))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := placements[order[a]], placements[order[b]]
		if v == viewTop {
			return pa.Position.Y+pa.Placed.Height < pb.Position.Y+pb.Placed.Height
		}
		return pa.Position.Z > pb.Position.Z
	})
	return order
}

// drawDimensionAnnotations adds the side lengths outside the view rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, v view, dims model.Dimensions, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("W %g", dims.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	sideLabel := fmt.Sprintf("D %g", dims.Depth)
	if v == viewFront {
		sideLabel = fmt.Sprintf("H %g", dims.Height)
	}
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	sLabelW := pdf.GetStringWidth(sideLabel)
	pdf.SetXY(offsetX-3-sLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(sLabelW, 4, sideLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawItemsLegend renders a compact legend of placed items at the bottom of
// the container page.
func drawItemsLegend(pdf *fpdf.Fpdf, c model.ContainerResult, startY float64) {
	if len(c.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Items placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range c.Placements {
		col := itemColors[i%len(itemColors)]
		label := fmt.Sprintf("%s (%s)", p.Item.Label, formatDims(p.Placed))
		if p.Orientation != model.OrientWHD {
			label += " " + p.Orientation.String()
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}
		if startY > pageHeight-marginBottom {
			pdf.SetXY(marginLeft, startY-5)
			pdf.CellFormat(40, 4, fmt.Sprintf("... %d more", len(c.Placements)-i), "", 0, "L", false, 0, "")
			return
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.PackResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	rejected := result.Rejected()
	summaryItems := []struct {
		label string
		value string
	}{
		{"Containers Used", fmt.Sprintf("%d", len(result.Containers))},
		{"Global Efficiency", fmt.Sprintf("%.1f%%", result.GlobalEfficiency()*100)},
		{"Items Placed", fmt.Sprintf("%d", result.PlacedCount())},
		{"Items Rejected", fmt.Sprintf("%d", len(rejected))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Container Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 70, 35, 35, 95}
	headers := []string{"Container", "Dimensions", "Items", "Efficiency", "Used / Total Volume"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, c := range result.Containers {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			formatDims(c.Dimensions),
			fmt.Sprintf("%d", c.ItemCount()),
			fmt.Sprintf("%.1f%%", c.Efficiency()*100),
			fmt.Sprintf("%.0f / %.0f", c.UsedVolume(), c.TotalVolume()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(rejected) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Rejected Items", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, o := range rejected {
			if y > pageHeight-marginBottom-5 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- #%d %s: %s (%s)", o.Index, o.Item.Label, formatDims(o.Item.Dimensions), o.Reason)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	if y > pageHeight-marginBottom-40 {
		pdf.AddPage()
		y = marginTop
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Pack Settings", "", 0, "L", false, 0, "")
	y += 9

	s := result.Settings
	settingsItems := []struct {
		label string
		value string
	}{
		{"Rotation", string(s.AllowRotation)},
		{"Heuristic", string(s.Heuristic)},
		{"Bin Policy", string(s.BinPolicy)},
		{"Algorithm", string(s.Algorithm)},
		{"Epsilon", fmt.Sprintf("%g", s.EpsilonFor(result.Container))},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by BoxPack - 3D Bin Packer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}

// formatDims renders dimensions as "W x H x D" without trailing zeros.
func formatDims(d model.Dimensions) string {
	return fmt.Sprintf("%g x %g x %g", d.Width, d.Height, d.Depth)
}
