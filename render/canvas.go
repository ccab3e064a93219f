package render

import (
	"math"

	"github.com/lixenwraith/motionfield/parameter"
)

// CellMetrics is the virtual pixel size of one terminal cell
type CellMetrics struct {
	Width, Height float64
}

// DefaultCellMetrics matches a typical 1:2.1 terminal font
func DefaultCellMetrics() CellMetrics {
	return CellMetrics{Width: parameter.CellWidthPx, Height: parameter.CellHeightPx}
}

// PixelToCell returns the cell containing the virtual pixel (x, y)
func (m CellMetrics) PixelToCell(x, y float64) (col, row int) {
	return int(math.Floor(x / m.Width)), int(math.Floor(y / m.Height))
}

// CellCenter returns the virtual pixel at the center of cell (col, row)
func (m CellMetrics) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * m.Width, (float64(row) + 0.5) * m.Height
}

// Viewport returns the pixel dimensions of a cols x rows grid
func (m CellMetrics) Viewport(cols, rows int) (width, height float64) {
	return float64(cols) * m.Width, float64(rows) * m.Height
}

// Canvas rasterizes draw instructions onto a terminal cell grid
// Each cell holds a background color, circles are supersampled per cell
type Canvas struct {
	cells   []RGB
	cols    int
	rows    int
	metrics CellMetrics
	samples int
}

// NewCanvas creates a canvas of cols x rows cells
func NewCanvas(cols, rows int, metrics CellMetrics) *Canvas {
	c := &Canvas{
		metrics: metrics,
		samples: parameter.CellSubSamples,
	}
	c.Resize(cols, rows)
	return c
}

// Resize adjusts grid dimensions, reallocates only if capacity insufficient
func (c *Canvas) Resize(cols, rows int) {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	size := cols * rows
	if cap(c.cells) < size {
		c.cells = make([]RGB, size)
	} else {
		c.cells = c.cells[:size]
	}
	c.cols = cols
	c.rows = rows
}

// Size returns the grid dimensions in cells
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// At returns the color of cell (col, row), black when out of range
func (c *Canvas) At(col, row int) RGB {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return RGBBlack
	}
	return c.cells[row*c.cols+col]
}

// Clear fills every cell with bg
func (c *Canvas) Clear(bg RGB) {
	if len(c.cells) == 0 {
		return
	}
	c.cells[0] = bg
	// Exponential copy
	for filled := 1; filled < len(c.cells); filled *= 2 {
		copy(c.cells[filled:], c.cells[:filled])
	}
}

// FillCircle composites the shadow ring then the dot over affected cells
func (c *Canvas) FillCircle(circle Circle) {
	if circle.Radius <= 0 || c.cols == 0 || c.rows == 0 {
		return
	}
	reach := circle.Radius + math.Max(circle.ShadowBlur, 0)

	minCol, minRow := c.metrics.PixelToCell(circle.X-reach, circle.Y-reach)
	maxCol, maxRow := c.metrics.PixelToCell(circle.X+reach, circle.Y+reach)
	minCol, minRow = max(minCol, 0), max(minRow, 0)
	maxCol, maxRow = min(maxCol, c.cols-1), min(maxRow, c.rows-1)

	n := float64(c.samples * c.samples)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			coverage, shadow := c.sampleCell(circle, col, row)
			if coverage == 0 && shadow == 0 {
				continue
			}
			idx := row*c.cols + col
			cell := c.cells[idx]
			if shadow > 0 {
				cell = cell.Blend(circle.Shadow, circle.ShadowAlpha*shadow/n)
			}
			if coverage > 0 {
				cell = cell.Blend(circle.Fill, circle.Opacity*coverage/n)
			}
			c.cells[idx] = cell
		}
	}
}

// sampleCell returns the number of sub-samples inside the dot and the summed
// shadow falloff of sub-samples in the blur ring
func (c *Canvas) sampleCell(circle Circle, col, row int) (coverage, shadow float64) {
	step := 1.0 / float64(c.samples)
	for sy := 0; sy < c.samples; sy++ {
		py := (float64(row) + (float64(sy)+0.5)*step) * c.metrics.Height
		for sx := 0; sx < c.samples; sx++ {
			px := (float64(col) + (float64(sx)+0.5)*step) * c.metrics.Width
			d := math.Hypot(px-circle.X, py-circle.Y)
			switch {
			case d <= circle.Radius:
				coverage++
			case circle.ShadowBlur > 0 && d <= circle.Radius+circle.ShadowBlur:
				shadow += 1 - (d-circle.Radius)/circle.ShadowBlur
			}
		}
	}
	return coverage, shadow
}

// Blend composites c over a single cell, out of range cells are ignored
func (c *Canvas) Blend(col, row int, color RGB, alpha float64) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return
	}
	idx := row*c.cols + col
	c.cells[idx] = c.cells[idx].Blend(color, alpha)
}
