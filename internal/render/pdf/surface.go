// Package pdf draws quote pages onto a Surface and provides the fpdf-backed
// Surface that produces the final document.
package pdf

import (
	"github.com/gompdf/quotepdf/internal/layout"
)

// RectStyle selects how a rectangle is painted.
type RectStyle struct {
	Fill      bool
	FillColor layout.Color
	Stroke    bool
	Color     layout.Color
	LineWidth float64
}

// Surface is the drawing target of the renderer. Coordinates are points with
// the origin at the bottom-left corner of the page and y growing upwards.
type Surface interface {
	layout.Measurer

	Text(x, y float64, f layout.Font, c layout.Color, s string)
	Rect(x, y, w, h float64, st RectStyle)
	Line(x1, y1, x2, y2, width float64, c layout.Color)
	// Image places an 8-bit PNG; name identifies it for reuse across pages.
	Image(name string, png []byte, x, y, w, h float64) error
	NewPage()
	PageCount() int
	Finalize() ([]byte, error)
}

// RenderOptions contains options for rendering
type RenderOptions struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string
	Producer string
	Compress bool
}
