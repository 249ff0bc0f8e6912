package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/piwi3910/BoxPack/internal/model"
)

// SVG layout in pixels.
const (
	svgViewSize = 400 // longest container side in the top view
	svgPadding  = 30
	svgTitle    = 20
)

// ExportSVG writes the top view of every container to an SVG file.
func ExportSVG(path string, result model.PackResult) error {
	return writeFile(path, func(w io.Writer) error { return WriteSVG(w, result) })
}

// WriteSVG renders the top view of every container, stacked vertically.
// Items are painted from the floor up so the topmost item of a column is
// the one visible.
func WriteSVG(w io.Writer, result model.PackResult) error {
	if len(result.Containers) == 0 {
		return fmt.Errorf("no containers to export")
	}

	type frame struct {
		scale  float64
		width  int
		height int
	}
	frames := make([]frame, len(result.Containers))
	canvasW, canvasH := 0, svgPadding
	for i, c := range result.Containers {
		scale := svgViewSize / math.Max(c.Dimensions.Width, c.Dimensions.Depth)
		fr := frame{
			scale:  scale,
			width:  int(math.Round(c.Dimensions.Width * scale)),
			height: int(math.Round(c.Dimensions.Depth * scale)),
		}
		frames[i] = fr
		canvasW = max(canvasW, fr.width+2*svgPadding)
		canvasH += svgTitle + fr.height + svgPadding
	}

	canvas := svg.New(w)
	canvas.Start(canvasW, canvasH)

	y := svgPadding
	for i, c := range result.Containers {
		fr := frames[i]
		title := fmt.Sprintf("Container %d (%s) %.1f%%", i+1, formatDims(c.Dimensions), c.Efficiency()*100)
		canvas.Text(svgPadding, y+svgTitle-6, title, "font-family:sans-serif;font-size:12px;fill:#333")
		y += svgTitle

		canvas.Rect(svgPadding, y, fr.width, fr.height, "fill:#dec4a0;stroke:#646464;stroke-width:1.5")

		for _, idx := range paintOrder(c.Placements, viewTop) {
			p := c.Placements[idx]
			col := itemColors[idx%len(itemColors)]
			rx := svgPadding + int(math.Round(p.Position.X*fr.scale))
			ry := y + int(math.Round(p.Position.Z*fr.scale))
			rw := int(math.Round(p.Placed.Width * fr.scale))
			rh := int(math.Round(p.Placed.Depth * fr.scale))
			style := fmt.Sprintf("fill:rgb(%d,%d,%d);stroke:#1e1e1e;stroke-width:0.5", col.R, col.G, col.B)
			canvas.Rect(rx, ry, rw, rh, style)
			if rw > 30 && rh > 12 {
				canvas.Text(rx+rw/2, ry+rh/2+4, p.Item.Label, "text-anchor:middle;font-family:sans-serif;font-size:10px;fill:#000")
			}
		}

		y += fr.height + svgPadding
	}

	canvas.End()
	return nil
}
