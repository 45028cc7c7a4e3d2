// Package raster is a minimal pixel canvas for drawing container thumbnails.
//
// It supports exactly what the preview renderers need: a solid background,
// filled rectangles, and thick Bresenham lines in a single foreground color,
// exported as a PNG via the imaging/png encoder.
package raster

import (
	bitmap "github.com/boljen/go-bitmap"

	"github.com/dargueta/bgcode/imaging/png"
)

// Default thumbnail palette: near-black background, orange foreground.
var (
	DefaultBackground = png.Pixel{R: 30, G: 30, B: 30}
	DefaultForeground = png.Pixel{R: 250, G: 104, B: 49}
)

// Canvas is a fixed-size RGB pixel grid. Out-of-bounds drawing is clipped,
// never an error.
type Canvas struct {
	width      int
	height     int
	foreground png.Pixel
	pixels     []png.Pixel
	// painted marks which pixels have been touched by a drawing call, so
	// callers can tell foreground coverage apart from background pixels that
	// happen to share the foreground color.
	painted bitmap.Bitmap
}

// New creates a canvas filled with the default background color, drawing in
// the default foreground color.
func New(width, height int) *Canvas {
	return NewWithColors(width, height, DefaultBackground, DefaultForeground)
}

// NewWithColors creates a canvas filled with `background`, drawing in
// `foreground`.
func NewWithColors(width, height int, background, foreground png.Pixel) *Canvas {
	pixels := make([]png.Pixel, width*height)
	for i := range pixels {
		pixels[i] = background
	}
	return &Canvas{
		width:      width,
		height:     height,
		foreground: foreground,
		pixels:     pixels,
		painted:    bitmap.New(width * height),
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

// Set paints a single pixel in the foreground color. Out-of-bounds
// coordinates are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.pixels[y*c.width+x] = c.foreground
	c.painted.Set(y*c.width+x, true)
}

// Painted reports whether a drawing call has touched the pixel. Out-of-bounds
// coordinates report false.
func (c *Canvas) Painted(x, y int) bool {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return false
	}
	return c.painted.Get(y*c.width + x)
}

// PaintedCount returns the number of distinct pixels drawing calls have
// touched.
func (c *Canvas) PaintedCount() int {
	count := 0
	for i := 0; i < c.width*c.height; i++ {
		if c.painted.Get(i) {
			count++
		}
	}
	return count
}

// FillRect paints the half-open rectangle [x0, x1) x [y0, y1) in the
// foreground color, clipped to the canvas.
func (c *Canvas) FillRect(x0, y0, x1, y1 int) {
	for y := max(0, y0); y < min(c.height, y1); y++ {
		for x := max(0, x0); x < min(c.width, x1); x++ {
			c.Set(x, y)
		}
	}
}

// Line draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm,
// stamping a square of side `thickness` at each step.
func (c *Canvas) Line(x0, y0, x1, y1, thickness int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}

	err := dx - dy
	x, y := x0, y0
	halfThickness := thickness / 2

	for {
		for tx := -halfThickness; tx <= halfThickness; tx++ {
			for ty := -halfThickness; ty <= halfThickness; ty++ {
				c.Set(x+tx, y+ty)
			}
		}
		if x == x1 && y == y1 {
			return
		}
		doubledError := 2 * err
		if doubledError > -dy {
			err -= dy
			x += sx
		}
		if doubledError < dx {
			err += dx
			y += sy
		}
	}
}

// PNG encodes the canvas as a complete PNG file.
func (c *Canvas) PNG() []byte {
	return png.Encode(c.width, c.height, c.pixels)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
