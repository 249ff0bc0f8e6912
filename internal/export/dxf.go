package export

import (
	"fmt"

	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layer names used for the wireframe export.
const (
	LayerContainers = "CONTAINERS"
	LayerItems      = "ITEMS"
)

// containerSpacing is the gap between containers along the drawing X axis,
// as a fraction of the container width.
const containerSpacing = 0.1

// ExportDXF writes a 3D wireframe of every container and its items. The
// drawing plane is the container floor: container X maps to drawing X,
// container Z (depth) to drawing Y and the vertical axis to drawing Z, so
// the plan view of the file matches the top view of the load. Containers
// are laid out side by side along X.
func ExportDXF(path string, result model.PackResult) error {
	if len(result.Containers) == 0 {
		return fmt.Errorf("no containers to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer(LayerContainers, color.White, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerContainers, err)
	}
	if _, err := d.AddLayer(LayerItems, color.Green, dxf.DefaultLineType, false); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerItems, err)
	}

	var offsetX float64
	for i, c := range result.Containers {
		if err := d.ChangeLayer(LayerContainers); err != nil {
			return err
		}
		if err := wireBox(d, offsetX, model.Position{}, c.Dimensions); err != nil {
			return fmt.Errorf("container %d: %w", i+1, err)
		}

		if err := d.ChangeLayer(LayerItems); err != nil {
			return err
		}
		for j, p := range c.Placements {
			if err := wireBox(d, offsetX, p.Position, p.Placed); err != nil {
				return fmt.Errorf("container %d item %d: %w", i+1, j+1, err)
			}
		}

		offsetX += c.Dimensions.Width * (1 + containerSpacing)
	}

	return d.SaveAs(path)
}

// wireBox draws the twelve edges of a box as LINE entities.
func wireBox(d *drawing.Drawing, offsetX float64, pos model.Position, dims model.Dimensions) error {
	x0, x1 := offsetX+pos.X, offsetX+pos.X+dims.Width
	y0, y1 := pos.Z, pos.Z+dims.Depth
	z0, z1 := pos.Y, pos.Y+dims.Height

	edges := [12][6]float64{
		// floor
		{x0, y0, z0, x1, y0, z0},
		{x1, y0, z0, x1, y1, z0},
		{x1, y1, z0, x0, y1, z0},
		{x0, y1, z0, x0, y0, z0},
		// lid
		{x0, y0, z1, x1, y0, z1},
		{x1, y0, z1, x1, y1, z1},
		{x1, y1, z1, x0, y1, z1},
		{x0, y1, z1, x0, y0, z1},
		// uprights
		{x0, y0, z0, x0, y0, z1},
		{x1, y0, z0, x1, y0, z1},
		{x1, y1, z0, x1, y1, z1},
		{x0, y1, z0, x0, y1, z1},
	}
	for _, e := range edges {
		if _, err := d.Line(e[0], e[1], e[2], e[3], e[4], e[5]); err != nil {
			return err
		}
	}
	return nil
}
